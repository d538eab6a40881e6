package eventmodels

import "github.com/shopspring/decimal"

const (
	PriceDecimalPlaces  int32 = 2
	YieldDecimalPlaces  int32 = 4
	StrikeDecimalPlaces int32 = 3
)

// DerivedFields are recomputed from a record's primitives on every normalization pass.
type DerivedFields struct {
	MidPrice           decimal.Decimal
	Premium            decimal.Decimal
	PremiumLow         decimal.Decimal
	PremiumYieldPct    decimal.Decimal
	PremiumYieldPctLow decimal.Decimal
	OtmPct             decimal.Decimal
	ITM                bool
}

func (d *DerivedFields) ItmLabel() string {
	if d.ITM {
		return "YES"
	}

	return "NO"
}
