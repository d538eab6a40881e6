package eventservices

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/options-cleaner/src/eventmodels"
)

func price(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

// newOptionRecord builds a raw record whose strike agrees with its ticker.
func newOptionRecord(t *testing.T, ticker eventmodels.OptionSymbol, tradeDate time.Time, high, low, spot string) *eventmodels.OptionRecord {
	t.Helper()

	contract, err := eventmodels.NewOptionSymbolComponents(ticker)
	require.NoError(t, err)

	return &eventmodels.OptionRecord{
		Ticker:         ticker,
		TradeDate:      tradeDate,
		Strike:         contract.StrikePrice,
		Open:           price(low),
		High:           price(high),
		Low:            price(low),
		Close:          price(high),
		Volume:         10,
		UnderlyingSpot: decimal.RequireFromString(spot),
		WindowStart:    tradeDate.UnixNano(),
	}
}

func newDecodedRecord(t *testing.T, ticker eventmodels.OptionSymbol, tradeDate time.Time, high, low, spot string) *eventmodels.OptionRecord {
	t.Helper()

	record := newOptionRecord(t, ticker, tradeDate, high, low, spot)
	contract, err := eventmodels.NewOptionSymbolComponents(ticker)
	require.NoError(t, err)
	record.Contract = contract

	return record
}

func newTestRegistry(t *testing.T, events ...eventmodels.SplitEvent) *CorporateActionRegistry {
	t.Helper()

	registry, err := NewCorporateActionRegistry(events)
	require.NoError(t, err)

	return registry
}

func split(symbol string, effective time.Time, ratio int64) eventmodels.SplitEvent {
	return eventmodels.SplitEvent{Symbol: symbol, EffectiveDate: effective, Ratio: decimal.NewFromInt(ratio)}
}
