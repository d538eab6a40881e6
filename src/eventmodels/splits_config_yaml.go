package eventmodels

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// SplitsConfigYAML is the split registry file. Symbols lists underlyings known to have no
// splits, so they resolve when a registry entry is required.
type SplitsConfigYAML struct {
	Symbols []string    `yaml:"symbols,omitempty"`
	Splits  []SplitYAML `yaml:"splits"`
}

type SplitYAML struct {
	Symbol        string `yaml:"symbol"`
	EffectiveDate string `yaml:"effective_date"`
	Ratio         string `yaml:"ratio"`
	Note          string `yaml:"note,omitempty"`
}

func (s SplitYAML) ToModel() (SplitEvent, error) {
	effectiveDate, err := ParseDate(s.EffectiveDate)
	if err != nil {
		return SplitEvent{}, fmt.Errorf("SplitYAML.ToModel: %s: %w", s.Symbol, err)
	}

	ratio, err := decimal.NewFromString(strings.TrimSpace(s.Ratio))
	if err != nil {
		return SplitEvent{}, fmt.Errorf("SplitYAML.ToModel: %s: invalid ratio %q: %w", s.Symbol, s.Ratio, err)
	}

	event := SplitEvent{
		Symbol:        strings.ToUpper(strings.TrimSpace(s.Symbol)),
		EffectiveDate: effectiveDate,
		Ratio:         ratio,
	}

	if err := event.Validate(); err != nil {
		return SplitEvent{}, fmt.Errorf("SplitYAML.ToModel: %w", err)
	}

	return event, nil
}

func (o *SplitsConfigYAML) ToSplitEvents() ([]SplitEvent, error) {
	events := make([]SplitEvent, 0, len(o.Splits))
	for i, split := range o.Splits {
		event, err := split.ToModel()
		if err != nil {
			return nil, fmt.Errorf("SplitsConfigYAML: splits[%d]: %w", i, err)
		}

		events = append(events, event)
	}

	return events, nil
}

func (o *SplitsConfigYAML) ToModel() (SplitRegistryConfig, error) {
	events, err := o.ToSplitEvents()
	if err != nil {
		return SplitRegistryConfig{}, err
	}

	config := SplitRegistryConfig{Splits: events}
	for i, symbol := range o.Symbols {
		symbol = strings.ToUpper(strings.TrimSpace(symbol))
		if symbol == "" {
			return SplitRegistryConfig{}, fmt.Errorf("SplitsConfigYAML: symbols[%d]: empty symbol", i)
		}

		config.Symbols = append(config.Symbols, symbol)
	}

	return config, nil
}

func NewSplitsConfigYAML(config SplitRegistryConfig) SplitsConfigYAML {
	out := SplitsConfigYAML{
		Splits: make([]SplitYAML, 0, len(config.Splits)),
	}

	hasSplits := make(map[string]bool)
	for _, e := range config.Splits {
		hasSplits[e.Symbol] = true
		out.Splits = append(out.Splits, SplitYAML{
			Symbol:        e.Symbol,
			EffectiveDate: e.EffectiveDate.Format(DateLayout),
			Ratio:         e.Ratio.String(),
		})
	}

	for _, symbol := range config.Symbols {
		if !hasSplits[symbol] {
			out.Symbols = append(out.Symbols, symbol)
		}
	}

	return out
}
