package eventservices

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jiaming2012/options-cleaner/src/eventmodels"
)

type InvariantViolation struct {
	Index    int
	Ticker   eventmodels.OptionSymbol
	Field    string
	Expected string
	Actual   string
}

func (v InvariantViolation) String() string {
	return fmt.Sprintf("record %d (%s): %s expected %s, found %s", v.Index, v.Ticker, v.Field, v.Expected, v.Actual)
}

// ValidateDataset re-derives every dependent field of an already-normalized dataset and reports
// each field that disagrees, plus any break in (trade date, strike) ordering. Records without a
// decoded contract are decoded from their ticker first; the input is not modified.
func ValidateDataset(records []*eventmodels.OptionRecord, basis eventmodels.ItmBasis) []InvariantViolation {
	var violations []InvariantViolation

	var previous *eventmodels.OptionRecord
	for i, in := range records {
		if in == nil {
			violations = append(violations, InvariantViolation{Index: i, Field: "record", Expected: "present", Actual: "nil"})
			continue
		}

		record := in
		if record.Contract == nil {
			record = in.Clone()
			contract, err := eventmodels.NewOptionSymbolComponents(record.Ticker)
			if err != nil {
				violations = append(violations, InvariantViolation{Index: i, Ticker: in.Ticker, Field: "ticker", Expected: "packed option ticker", Actual: err.Error()})
				continue
			}

			record.Contract = contract
		}

		if previous != nil && record.Less(previous) {
			violations = append(violations, InvariantViolation{
				Index:    i,
				Ticker:   record.Ticker,
				Field:    "order",
				Expected: fmt.Sprintf(">= (%s, %s)", previous.TradeDate.Format(eventmodels.DateLayout), previous.Strike),
				Actual:   fmt.Sprintf("(%s, %s)", record.TradeDate.Format(eventmodels.DateLayout), record.Strike),
			})
		}

		previous = record

		if record.Derived == nil {
			violations = append(violations, InvariantViolation{Index: i, Ticker: record.Ticker, Field: "derived", Expected: "computed", Actual: "missing"})
			continue
		}

		expected, err := ComputeDerivedFields(record, basis)
		if err != nil {
			violations = append(violations, InvariantViolation{Index: i, Ticker: record.Ticker, Field: "primitives", Expected: "valid", Actual: err.Error()})
			continue
		}

		actual := record.Derived
		checks := []struct {
			field    string
			expected decimal.Decimal
			actual   decimal.Decimal
		}{
			{"mid_price", expected.MidPrice, actual.MidPrice},
			{"premium", actual.MidPrice, actual.Premium},
			{"premium_low", expected.PremiumLow, actual.PremiumLow},
			{"premium_yield_pct", expected.PremiumYieldPct, actual.PremiumYieldPct},
			{"premium_yield_pct_low", expected.PremiumYieldPctLow, actual.PremiumYieldPctLow},
			{"otm_pct", expected.OtmPct, actual.OtmPct},
		}

		for _, c := range checks {
			if !c.expected.Equal(c.actual) {
				violations = append(violations, InvariantViolation{Index: i, Ticker: record.Ticker, Field: c.field, Expected: c.expected.String(), Actual: c.actual.String()})
			}
		}

		if expected.ITM != actual.ITM {
			violations = append(violations, InvariantViolation{Index: i, Ticker: record.Ticker, Field: "ITM", Expected: expected.ItmLabel(), Actual: actual.ItmLabel()})
		}
	}

	return violations
}
