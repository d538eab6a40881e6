package eventservices

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jiaming2012/options-cleaner/src/eventmodels"
)

// AdjustRecord expresses the record's strike and OHLC prices in terms of the resolved split ratio.
//
// The strike is re-derived from the decoded ticker strike. Prices are scaled from the ratio already
// applied to them (record.AppliedRatio) to the resolved one. Raw data resolved to a ratio of 1 is left
// untouched, as is data already expressed at the resolved ratio.
func AdjustRecord(record *eventmodels.OptionRecord, ratio decimal.Decimal) error {
	if !ratio.IsPositive() {
		return fmt.Errorf("AdjustRecord: %s: ratio must be positive, found %s: %w", record.Ticker, ratio, eventmodels.ErrInvalidRecord)
	}

	one := decimal.NewFromInt(1)
	applied := record.GetAppliedRatio()

	if ratio.Equal(one) && applied.Equal(one) {
		return nil
	}

	if record.Contract == nil {
		return fmt.Errorf("AdjustRecord: %s: ticker not decoded: %w", record.Ticker, eventmodels.ErrInvalidRecord)
	}

	if ratio.Equal(one) {
		record.Strike = record.Contract.StrikePrice
	} else {
		record.Strike = record.Contract.StrikePrice.Div(ratio).Round(eventmodels.StrikeDecimalPlaces)
	}

	if ratio.Equal(applied) {
		return nil
	}

	for _, price := range record.PriceFields() {
		if !price.Valid {
			continue
		}

		price.Decimal = price.Decimal.Mul(applied).Div(ratio)
	}

	record.AppliedRatio = ratio

	return nil
}
