package eventmodels

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// OptionRecordCSV is the persisted row layout of an option record.
type OptionRecordCSV struct {
	Ticker                 string `csv:"ticker"`
	DateOnly               string `csv:"date_only"`
	ExpirationDate         string `csv:"expiration_date"`
	UnderlyingSymbol       string `csv:"underlying_symbol"`
	OptionType             string `csv:"option_type"`
	Strike                 string `csv:"strike"`
	Volume                 int64  `csv:"volume"`
	OpenPrice              string `csv:"open_price"`
	ClosePrice             string `csv:"close_price"`
	OtmPct                 string `csv:"otm_pct"`
	ITM                    string `csv:"ITM"`
	Premium                string `csv:"premium"`
	PremiumYieldPct        string `csv:"premium_yield_pct"`
	PremiumLow             string `csv:"premium_low"`
	PremiumYieldPctLow     string `csv:"premium_yield_pct_low"`
	HighPrice              string `csv:"high_price"`
	LowPrice               string `csv:"low_price"`
	MidPrice               string `csv:"mid_price"`
	WindowStart            int64  `csv:"window_start"`
	UnderlyingSpot         string `csv:"underlying_spot"`
	UnderlyingSpotAtExpiry string `csv:"underlying_spot_at_expiry"`
	SplitRatio             string `csv:"split_ratio"`
}

func (c *OptionRecordCSV) ToModel() (*OptionRecord, error) {
	record := &OptionRecord{
		Ticker:      OptionSymbol(strings.TrimSpace(c.Ticker)),
		Volume:      c.Volume,
		WindowStart: c.WindowStart,
	}

	var err error
	if record.TradeDate, err = ParseDate(strings.TrimSpace(c.DateOnly)); err != nil {
		return nil, fmt.Errorf("OptionRecordCSV.ToModel: %s: date_only: %v: %w", c.Ticker, err, ErrInvalidRecord)
	}

	fields := []struct {
		name  string
		value string
		out   *decimal.Decimal
	}{
		{"strike", c.Strike, &record.Strike},
		{"underlying_spot", c.UnderlyingSpot, &record.UnderlyingSpot},
		{"split_ratio", c.SplitRatio, &record.AppliedRatio},
	}

	for _, f := range fields {
		v, err := parseOptionalDecimal(f.value)
		if err != nil {
			return nil, fmt.Errorf("OptionRecordCSV.ToModel: %s: %s: %v: %w", c.Ticker, f.name, err, ErrInvalidRecord)
		}

		if v.Valid {
			*f.out = v.Decimal
		}
	}

	nullFields := []struct {
		name  string
		value string
		out   *decimal.NullDecimal
	}{
		{"open_price", c.OpenPrice, &record.Open},
		{"high_price", c.HighPrice, &record.High},
		{"low_price", c.LowPrice, &record.Low},
		{"close_price", c.ClosePrice, &record.Close},
		{"underlying_spot_at_expiry", c.UnderlyingSpotAtExpiry, &record.SpotAtExpiry},
	}

	for _, f := range nullFields {
		if *f.out, err = parseOptionalDecimal(f.value); err != nil {
			return nil, fmt.Errorf("OptionRecordCSV.ToModel: %s: %s: %v: %w", c.Ticker, f.name, err, ErrInvalidRecord)
		}
	}

	derived, err := c.derivedFields()
	if err != nil {
		return nil, fmt.Errorf("OptionRecordCSV.ToModel: %s: %v: %w", c.Ticker, err, ErrInvalidRecord)
	}

	record.Derived = derived

	return record, nil
}

// derivedFields returns nil unless every derived column is populated.
func (c *OptionRecordCSV) derivedFields() (*DerivedFields, error) {
	values := []string{c.MidPrice, c.Premium, c.PremiumLow, c.PremiumYieldPct, c.PremiumYieldPctLow, c.OtmPct, c.ITM}
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return nil, nil
		}
	}

	var derived DerivedFields
	targets := []*decimal.Decimal{&derived.MidPrice, &derived.Premium, &derived.PremiumLow, &derived.PremiumYieldPct, &derived.PremiumYieldPctLow, &derived.OtmPct}
	for i, target := range targets {
		v, err := decimal.NewFromString(strings.TrimSpace(values[i]))
		if err != nil {
			return nil, fmt.Errorf("invalid derived value %q: %w", values[i], err)
		}

		*target = v
	}

	switch strings.ToUpper(strings.TrimSpace(c.ITM)) {
	case "YES", "TRUE":
		derived.ITM = true
	case "NO", "FALSE":
		derived.ITM = false
	default:
		return nil, fmt.Errorf("invalid ITM value %q", c.ITM)
	}

	return &derived, nil
}

func NewOptionRecordCSV(r *OptionRecord) *OptionRecordCSV {
	row := &OptionRecordCSV{
		Ticker:                 string(r.Ticker),
		DateOnly:               r.TradeDate.Format(DateLayout),
		Strike:                 r.Strike.String(),
		Volume:                 r.Volume,
		OpenPrice:              formatOptionalPrice(r.Open),
		ClosePrice:             formatOptionalPrice(r.Close),
		HighPrice:              formatOptionalPrice(r.High),
		LowPrice:               formatOptionalPrice(r.Low),
		WindowStart:            r.WindowStart,
		UnderlyingSpot:         r.UnderlyingSpot.String(),
		UnderlyingSpotAtExpiry: formatOptionalPrice(r.SpotAtExpiry),
		SplitRatio:             r.GetAppliedRatio().String(),
	}

	if r.Contract != nil {
		row.ExpirationDate = r.Contract.Expiration.Format(DateLayout)
		row.UnderlyingSymbol = r.Contract.Underlying
		row.OptionType = r.Contract.OptionType.Code()
	}

	if d := r.Derived; d != nil {
		row.MidPrice = d.MidPrice.StringFixed(PriceDecimalPlaces)
		row.Premium = d.Premium.StringFixed(PriceDecimalPlaces)
		row.PremiumLow = d.PremiumLow.StringFixed(PriceDecimalPlaces)
		row.PremiumYieldPct = d.PremiumYieldPct.StringFixed(YieldDecimalPlaces)
		row.PremiumYieldPctLow = d.PremiumYieldPctLow.StringFixed(YieldDecimalPlaces)
		row.OtmPct = d.OtmPct.StringFixed(PriceDecimalPlaces)
		row.ITM = d.ItmLabel()
	}

	return row
}

func parseOptionalDecimal(s string) (decimal.NullDecimal, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") {
		return decimal.NullDecimal{}, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}

	return decimal.NewNullDecimal(d), nil
}

func formatOptionalPrice(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}

	return d.Decimal.String()
}
