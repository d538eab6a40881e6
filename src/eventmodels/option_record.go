package eventmodels

import (
	"time"

	"github.com/shopspring/decimal"
)

// OptionRecord is one quoted observation of an option contract.
type OptionRecord struct {
	Ticker OptionSymbol

	// Contract is nil until the ticker has been decoded.
	Contract *OptionSymbolComponents

	TradeDate time.Time

	// Strike in post-split terms. Contract.StrikePrice keeps the ticker value.
	Strike decimal.Decimal

	Open  decimal.NullDecimal
	High  decimal.NullDecimal
	Low   decimal.NullDecimal
	Close decimal.NullDecimal

	Volume int64

	UnderlyingSpot decimal.Decimal
	SpotAtExpiry   decimal.NullDecimal

	// WindowStart is the bucketing timestamp of the quote, never rounded.
	WindowStart int64

	// AppliedRatio is the split ratio already reflected in the OHLC prices.
	// Zero is read as 1.
	AppliedRatio decimal.Decimal

	// Derived is nil until computed.
	Derived *DerivedFields
}

func (r *OptionRecord) Underlying() string {
	if r.Contract != nil {
		return r.Contract.Underlying
	}

	return ""
}

func (r *OptionRecord) GetAppliedRatio() decimal.Decimal {
	if r.AppliedRatio.IsZero() {
		return decimal.NewFromInt(1)
	}

	return r.AppliedRatio
}

func (r *OptionRecord) Clone() *OptionRecord {
	out := *r

	if r.Contract != nil {
		contract := *r.Contract
		out.Contract = &contract
	}

	if r.Derived != nil {
		derived := *r.Derived
		out.Derived = &derived
	}

	return &out
}

// PriceFields returns pointers to every OHLC field, present or not.
func (r *OptionRecord) PriceFields() []*decimal.NullDecimal {
	return []*decimal.NullDecimal{&r.Open, &r.High, &r.Low, &r.Close}
}

// Less orders records by trade date, then strike.
func (r *OptionRecord) Less(other *OptionRecord) bool {
	if !r.TradeDate.Equal(other.TradeDate) {
		return r.TradeDate.Before(other.TradeDate)
	}

	return r.Strike.LessThan(other.Strike)
}
