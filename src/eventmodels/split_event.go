package eventmodels

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SplitEvent: every strike and price of Symbol dated strictly before EffectiveDate
// is divided by Ratio to be expressed in post-split terms.
type SplitEvent struct {
	Symbol        string
	EffectiveDate time.Time
	Ratio         decimal.Decimal
}

func (e SplitEvent) Validate() error {
	if e.Symbol == "" {
		return fmt.Errorf("SplitEvent.Validate: missing symbol")
	}

	if e.EffectiveDate.IsZero() {
		return fmt.Errorf("SplitEvent.Validate: %s: missing effective date", e.Symbol)
	}

	if !e.Ratio.IsPositive() {
		return fmt.Errorf("SplitEvent.Validate: %s %s: ratio must be positive, found %s", e.Symbol, e.EffectiveDate.Format(DateLayout), e.Ratio)
	}

	return nil
}

// AppliesTo is true when tradeDate falls strictly before the effective date.
func (e SplitEvent) AppliesTo(tradeDate time.Time) bool {
	return ToDate(tradeDate).Before(ToDate(e.EffectiveDate))
}
