package eventmodels

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

const (
	OptionSymbolPrefix = "O:"

	optionSymbolDateLen   = 6
	optionSymbolStrikeLen = 8

	// date (6) + type (1) + strike (8)
	optionSymbolSuffixLen = optionSymbolDateLen + 1 + optionSymbolStrikeLen

	// strike is packed as an integer number of thousandths
	optionSymbolStrikeExp int32 = -3
)

// OptionSymbol is a packed option ticker, e.g. O:TSLA220916C00300000.
type OptionSymbol string

func (s OptionSymbol) NoPrefix() string {
	if strings.HasPrefix(string(s), OptionSymbolPrefix) {
		return string(s)[len(OptionSymbolPrefix):]
	}

	return string(s)
}

func (s OptionSymbol) String() string {
	return string(s)
}

func (s OptionSymbol) Description() (string, error) {
	components, err := NewOptionSymbolComponents(s)
	if err != nil {
		return "", fmt.Errorf("OptionSymbol.Description: failed to parse option symbol: %w", err)
	}

	// Format the expiration date
	expiration := components.Expiration.Format("Jan 2 2006")

	// Format the option type
	optionType := "Call"
	if components.OptionType == Put {
		optionType = "Put"
	}

	formatted := fmt.Sprintf("%s %s $%s %s", components.Underlying, expiration, components.StrikePrice.StringFixed(2), optionType)

	return formatted, nil
}

// NewOptionSymbolComponents decodes a packed ticker:
//
//	O:<underlying><YYMMDD><C|P><strike * 1000, 8 digits>
//
// The underlying is the leading run of non-digit characters after the prefix.
func NewOptionSymbolComponents(s OptionSymbol) (*OptionSymbolComponents, error) {
	if !strings.HasPrefix(string(s), OptionSymbolPrefix) {
		return nil, fmt.Errorf("NewOptionSymbolComponents: %q: missing %q prefix: %w", s, OptionSymbolPrefix, ErrMalformedTicker)
	}

	body := s.NoPrefix()

	symbolEnd := strings.IndexFunc(body, unicode.IsDigit)
	if symbolEnd < 0 {
		return nil, fmt.Errorf("NewOptionSymbolComponents: %q: no expiration date found: %w", s, ErrMalformedTicker)
	}

	if symbolEnd == 0 {
		return nil, fmt.Errorf("NewOptionSymbolComponents: %q: empty underlying symbol: %w", s, ErrMalformedTicker)
	}

	underlying := body[:symbolEnd]
	remaining := body[symbolEnd:]

	if len(remaining) < optionSymbolSuffixLen {
		return nil, fmt.Errorf("NewOptionSymbolComponents: %q: expected %d characters after symbol, found %d: %w", s, optionSymbolSuffixLen, len(remaining), ErrMalformedTicker)
	}

	datePart := remaining[:optionSymbolDateLen]
	typePart := remaining[optionSymbolDateLen : optionSymbolDateLen+1]
	strikePart := remaining[optionSymbolDateLen+1:]

	expiration, err := parseOptionSymbolDate(datePart)
	if err != nil {
		return nil, fmt.Errorf("NewOptionSymbolComponents: %q: %v: %w", s, err, ErrMalformedTicker)
	}

	if typePart != "C" && typePart != "P" {
		return nil, fmt.Errorf("NewOptionSymbolComponents: %q: invalid option type %q: %w", s, typePart, ErrMalformedTicker)
	}

	optionType, err := NewOptionTypeFromCode(typePart)
	if err != nil {
		return nil, fmt.Errorf("NewOptionSymbolComponents: %q: %v: %w", s, err, ErrMalformedTicker)
	}

	if len(strikePart) != optionSymbolStrikeLen || !isAllDigits(strikePart) {
		return nil, fmt.Errorf("NewOptionSymbolComponents: %q: strike must be %d digits, found %q: %w", s, optionSymbolStrikeLen, strikePart, ErrMalformedTicker)
	}

	rawStrike, err := strconv.ParseInt(strikePart, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("NewOptionSymbolComponents: %q: failed to parse strike: %v: %w", s, err, ErrMalformedTicker)
	}

	return &OptionSymbolComponents{
		Underlying:  underlying,
		Expiration:  expiration,
		OptionType:  optionType,
		StrikePrice: decimal.New(rawStrike, optionSymbolStrikeExp),
		Symbol:      s,
	}, nil
}

// NewOptionSymbol encodes the components back into a packed ticker.
func NewOptionSymbol(option OptionSymbolComponents) (OptionSymbol, error) {
	// Validate the option type
	if err := option.OptionType.Validate(); err != nil {
		return "", fmt.Errorf("NewOptionSymbol: %w", err)
	}

	if option.Underlying == "" || strings.IndexFunc(option.Underlying, unicode.IsDigit) >= 0 {
		return "", fmt.Errorf("NewOptionSymbol: invalid underlying symbol %q", option.Underlying)
	}

	year := option.Expiration.Year()
	if year < 2000 || year > 2099 {
		return "", fmt.Errorf("NewOptionSymbol: expiration year %d out of range", year)
	}

	scaled := option.StrikePrice.Shift(-optionSymbolStrikeExp)
	if !scaled.IsInteger() || !scaled.IsPositive() {
		return "", fmt.Errorf("NewOptionSymbol: strike %s cannot be packed in thousandths", option.StrikePrice)
	}

	strikePrice := fmt.Sprintf("%08d", scaled.IntPart())
	if len(strikePrice) != optionSymbolStrikeLen {
		return "", fmt.Errorf("NewOptionSymbol: strike %s exceeds %d digits", option.StrikePrice, optionSymbolStrikeLen)
	}

	// Construct the option ticker
	ticker := fmt.Sprintf("%s%s%02d%02d%02d%s%s",
		OptionSymbolPrefix, option.Underlying, year%100, int(option.Expiration.Month()), option.Expiration.Day(), option.OptionType.Code(), strikePrice)

	return OptionSymbol(ticker), nil
}

// parseOptionSymbolDate reads YYMMDD, always in the 2000s.
func parseOptionSymbolDate(s string) (time.Time, error) {
	if len(s) != optionSymbolDateLen || !isAllDigits(s) {
		return time.Time{}, fmt.Errorf("invalid expiration date %q", s)
	}

	yy, _ := strconv.Atoi(s[0:2])
	mm, _ := strconv.Atoi(s[2:4])
	dd, _ := strconv.Atoi(s[4:6])

	t := NewDate(2000+yy, time.Month(mm), dd)
	if t.Month() != time.Month(mm) || t.Day() != dd {
		return time.Time{}, fmt.Errorf("invalid expiration date %q", s)
	}

	return t, nil
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return s != ""
}
