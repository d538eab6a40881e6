package eventservices

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jiaming2012/options-cleaner/src/eventmodels"
)

var hundred = decimal.NewFromInt(100)

// ComputeDerivedFields derives every dependent field from the record's current primitives
// without modifying it. Prices are read at price precision.
func ComputeDerivedFields(record *eventmodels.OptionRecord, basis eventmodels.ItmBasis) (*eventmodels.DerivedFields, error) {
	if record.Contract == nil {
		return nil, fmt.Errorf("ComputeDerivedFields: %s: ticker not decoded: %w", record.Ticker, eventmodels.ErrInvalidRecord)
	}

	if !record.Strike.IsPositive() {
		return nil, fmt.Errorf("ComputeDerivedFields: %s: strike must be positive, found %s: %w", record.Ticker, record.Strike, eventmodels.ErrInvalidRecord)
	}

	if !record.UnderlyingSpot.IsPositive() {
		return nil, fmt.Errorf("ComputeDerivedFields: %s: underlying spot must be positive, found %s: %w", record.Ticker, record.UnderlyingSpot, eventmodels.ErrInvalidRecord)
	}

	if !record.High.Valid || !record.Low.Valid {
		return nil, fmt.Errorf("ComputeDerivedFields: %s: high and low prices are required: %w", record.Ticker, eventmodels.ErrInvalidRecord)
	}

	for _, price := range record.PriceFields() {
		if price.Valid && price.Decimal.IsNegative() {
			return nil, fmt.Errorf("ComputeDerivedFields: %s: negative price %s: %w", record.Ticker, price.Decimal, eventmodels.ErrInvalidRecord)
		}
	}

	if record.Volume < 0 {
		return nil, fmt.Errorf("ComputeDerivedFields: %s: negative volume %d: %w", record.Ticker, record.Volume, eventmodels.ErrInvalidRecord)
	}

	itmSpot := record.UnderlyingSpot
	switch basis {
	case eventmodels.ItmBasisTradeDate, "":
	case eventmodels.ItmBasisExpiration:
		if !record.SpotAtExpiry.Valid || !record.SpotAtExpiry.Decimal.IsPositive() {
			return nil, fmt.Errorf("ComputeDerivedFields: %s: missing underlying spot at expiration: %w", record.Ticker, eventmodels.ErrInvalidRecord)
		}

		itmSpot = record.SpotAtExpiry.Decimal
	default:
		return nil, fmt.Errorf("ComputeDerivedFields: %w", basis.Validate())
	}

	high := record.High.Decimal.Round(eventmodels.PriceDecimalPlaces)
	low := record.Low.Decimal.Round(eventmodels.PriceDecimalPlaces)

	mid := high.Add(low).Div(decimal.NewFromInt(2)).Round(eventmodels.PriceDecimalPlaces)
	premiumLow := low

	derived := &eventmodels.DerivedFields{
		MidPrice:           mid,
		Premium:            mid,
		PremiumLow:         premiumLow,
		PremiumYieldPct:    mid.Mul(hundred).Div(record.Strike).Round(eventmodels.YieldDecimalPlaces),
		PremiumYieldPctLow: premiumLow.Mul(hundred).Div(record.Strike).Round(eventmodels.YieldDecimalPlaces),
		OtmPct:             record.Strike.Sub(record.UnderlyingSpot).Mul(hundred).Div(record.UnderlyingSpot).Round(eventmodels.PriceDecimalPlaces),
	}

	if record.Contract.OptionType == eventmodels.Put {
		derived.ITM = record.Strike.GreaterThanOrEqual(itmSpot)
	} else {
		derived.ITM = record.Strike.LessThanOrEqual(itmSpot)
	}

	return derived, nil
}

// RecomputeDerivedFields rounds the record's prices and replaces its derived fields. On error the
// record is left as it was.
func RecomputeDerivedFields(record *eventmodels.OptionRecord, basis eventmodels.ItmBasis) error {
	derived, err := ComputeDerivedFields(record, basis)
	if err != nil {
		return fmt.Errorf("RecomputeDerivedFields: %w", err)
	}

	for _, price := range record.PriceFields() {
		if price.Valid {
			price.Decimal = price.Decimal.Round(eventmodels.PriceDecimalPlaces)
		}
	}

	record.Derived = derived

	return nil
}
