package eventservices

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/options-cleaner/src/eventmodels"
)

func newTestNormalizer(t *testing.T, config NormalizeConfig) *DatasetNormalizer {
	t.Helper()

	normalizer, err := NewDatasetNormalizer(config)
	require.NoError(t, err)

	return normalizer
}

func TestNewDatasetNormalizer(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		normalizer := newTestNormalizer(t, NormalizeConfig{})

		assert.Equal(t, eventmodels.ItmBasisTradeDate, normalizer.config.ItmBasis)
		assert.Positive(t, normalizer.config.Workers)
		assert.NotNil(t, normalizer.config.Registry)
	})

	t.Run("rejects an unknown itm basis", func(t *testing.T) {
		_, err := NewDatasetNormalizer(NormalizeConfig{ItmBasis: "close"})
		assert.Error(t, err)
	})

	t.Run("rejects an inverted window", func(t *testing.T) {
		_, err := NewDatasetNormalizer(NormalizeConfig{
			From: eventmodels.NewDate(2022, 6, 6),
			To:   eventmodels.NewDate(2022, 6, 5),
		})

		assert.Error(t, err)
	})
}

func TestDatasetNormalizer(t *testing.T) {
	registry := newTestRegistry(t,
		split("T", eventmodels.NewDate(2022, 6, 6), 20),
		split("TSLA", eventmodels.NewDate(2020, 8, 31), 5),
		split("TSLA", eventmodels.NewDate(2022, 8, 25), 3),
	)

	t.Run("adjusts records dated before a split", func(t *testing.T) {
		normalizer := newTestNormalizer(t, NormalizeConfig{Registry: registry, Workers: 2})

		records := []*eventmodels.OptionRecord{
			newOptionRecord(t, "O:T220617C00100000", eventmodels.NewDate(2022, 6, 6), "2", "1", "21"),
			newOptionRecord(t, "O:T220617C00100000", eventmodels.NewDate(2022, 6, 5), "40", "20", "21"),
		}

		result := normalizer.Normalize(records)
		require.Len(t, result.Records, 2)
		assert.Empty(t, result.Failures)

		before, after := result.Records[0], result.Records[1]

		assert.Equal(t, eventmodels.NewDate(2022, 6, 5), before.TradeDate)
		assert.Equal(t, "5", before.Strike.String())
		assert.Equal(t, "2", before.High.Decimal.String())
		assert.Equal(t, "1", before.Low.Decimal.String())
		assert.Equal(t, "20", before.AppliedRatio.String())
		assert.Equal(t, "1.5", before.Derived.MidPrice.String())
		assert.Equal(t, "30", before.Derived.PremiumYieldPct.String())
		assert.True(t, before.Derived.ITM)

		assert.Equal(t, eventmodels.NewDate(2022, 6, 6), after.TradeDate)
		assert.Equal(t, "100", after.Strike.String())
		assert.Equal(t, "2", after.High.Decimal.String())
		assert.False(t, after.Derived.ITM)
	})

	t.Run("input records are not modified", func(t *testing.T) {
		normalizer := newTestNormalizer(t, NormalizeConfig{Registry: registry})

		record := newOptionRecord(t, "O:T220617C00100000", eventmodels.NewDate(2022, 6, 5), "40", "20", "21")
		before := record.Clone()

		normalizer.Normalize([]*eventmodels.OptionRecord{record})

		assert.Equal(t, before, record)
	})

	t.Run("stacks splits", func(t *testing.T) {
		normalizer := newTestNormalizer(t, NormalizeConfig{Registry: registry})

		records := []*eventmodels.OptionRecord{
			newOptionRecord(t, "O:TSLA201218C01500000", eventmodels.NewDate(2020, 6, 1), "150", "120", "880"),
			newOptionRecord(t, "O:TSLA221216C00900000", eventmodels.NewDate(2021, 6, 1), "90", "60", "600"),
		}

		result := normalizer.Normalize(records)
		require.Len(t, result.Records, 2)

		assert.Equal(t, "100", result.Records[0].Strike.String())
		assert.Equal(t, "10", result.Records[0].High.Decimal.String())
		assert.Equal(t, "15", result.Records[0].AppliedRatio.String())

		assert.Equal(t, "300", result.Records[1].Strike.String())
		assert.Equal(t, "30", result.Records[1].High.Decimal.String())
		assert.Equal(t, "3", result.Records[1].AppliedRatio.String())
	})

	t.Run("normalizing twice changes nothing", func(t *testing.T) {
		normalizer := newTestNormalizer(t, NormalizeConfig{Registry: registry})

		records := []*eventmodels.OptionRecord{
			newOptionRecord(t, "O:T220617C00100000", eventmodels.NewDate(2022, 6, 5), "40.33", "20.17", "21.37"),
			newOptionRecord(t, "O:T220617P00022500", eventmodels.NewDate(2022, 6, 7), "1.13", "0.97", "18.92"),
			newOptionRecord(t, "O:TSLA220916C00100000", eventmodels.NewDate(2022, 8, 1), "212.7", "203.1", "891.83"),
			newOptionRecord(t, "O:AAPL220916C00150000", eventmodels.NewDate(2022, 8, 1), "13.7", "13.1", "161.51"),
		}

		once := normalizer.Normalize(records)
		require.Len(t, once.Records, 4)

		twice := normalizer.Normalize(once.Records)
		require.Len(t, twice.Records, 4)
		assert.Empty(t, twice.Failures)

		for i := range once.Records {
			assert.Equal(t, eventmodels.NewOptionRecordCSV(once.Records[i]), eventmodels.NewOptionRecordCSV(twice.Records[i]))
		}
	})

	t.Run("orders by trade date then strike", func(t *testing.T) {
		normalizer := newTestNormalizer(t, NormalizeConfig{Workers: 3})

		records := []*eventmodels.OptionRecord{
			newOptionRecord(t, "O:AAPL220916C00160000", eventmodels.NewDate(2022, 8, 2), "1", "1", "160"),
			newOptionRecord(t, "O:AAPL220916C00150000", eventmodels.NewDate(2022, 8, 2), "1", "1", "160"),
			newOptionRecord(t, "O:AAPL220916C00170000", eventmodels.NewDate(2022, 8, 1), "1", "1", "160"),
			newOptionRecord(t, "O:AAPL220916P00150000", eventmodels.NewDate(2022, 8, 1), "1", "1", "160"),
			newOptionRecord(t, "O:AAPL220916C00150000", eventmodels.NewDate(2022, 8, 1), "1", "1", "160"),
		}

		result := normalizer.Normalize(records)
		require.Len(t, result.Records, 5)

		var got []string
		for _, r := range result.Records {
			got = append(got, string(r.Ticker)+"@"+r.TradeDate.Format(eventmodels.DateLayout))
		}

		assert.Equal(t, []string{
			"O:AAPL220916P00150000@2022-08-01",
			"O:AAPL220916C00150000@2022-08-01",
			"O:AAPL220916C00170000@2022-08-01",
			"O:AAPL220916C00150000@2022-08-02",
			"O:AAPL220916C00160000@2022-08-02",
		}, got)
	})

	t.Run("a malformed record does not affect the batch", func(t *testing.T) {
		normalizer := newTestNormalizer(t, NormalizeConfig{Registry: registry, Workers: 8})

		var records []*eventmodels.OptionRecord
		for i := 0; i < 100; i++ {
			strike := 100 + i
			ticker := eventmodels.OptionSymbol(fmt.Sprintf("O:TSLA221216C%08d", strike*1000))
			records = append(records, newOptionRecord(t, ticker, eventmodels.NewDate(2022, 8, 1), "12.5", "11.5", "891.83"))
		}

		records[42].Ticker = "O:TSLA22121XC00142000"

		result := normalizer.Normalize(records)

		assert.Len(t, result.Records, 99)
		require.Len(t, result.Failures, 1)
		assert.Equal(t, 42, result.Failures[0].Index)
		assert.ErrorIs(t, result.Failures[0], eventmodels.ErrMalformedTicker)

		for _, r := range result.Records {
			assert.Equal(t, "3", r.AppliedRatio.String())
		}
	})

	t.Run("invalid primitives are reported", func(t *testing.T) {
		normalizer := newTestNormalizer(t, NormalizeConfig{Registry: registry})

		bad := newOptionRecord(t, "O:AAPL220916C00150000", eventmodels.NewDate(2022, 8, 1), "13.7", "13.1", "161.51")
		bad.UnderlyingSpot = decimal.Zero

		undated := newOptionRecord(t, "O:AAPL220916C00150000", eventmodels.NewDate(2022, 8, 1), "13.7", "13.1", "161.51")
		undated.TradeDate = time.Time{}

		result := normalizer.Normalize([]*eventmodels.OptionRecord{bad, nil, undated})

		assert.Empty(t, result.Records)
		require.Len(t, result.Failures, 3)
		for _, f := range result.Failures {
			assert.ErrorIs(t, f, eventmodels.ErrInvalidRecord)
		}
	})

	t.Run("require registry entry", func(t *testing.T) {
		normalizer := newTestNormalizer(t, NormalizeConfig{Registry: registry, RequireRegistryEntry: true})

		result := normalizer.Normalize([]*eventmodels.OptionRecord{
			newOptionRecord(t, "O:AAPL220916C00150000", eventmodels.NewDate(2022, 8, 1), "13.7", "13.1", "161.51"),
			newOptionRecord(t, "O:TSLA220916C00300000", eventmodels.NewDate(2022, 8, 26), "13.7", "13.1", "291.51"),
		})

		require.Len(t, result.Records, 1)
		assert.Equal(t, "TSLA", result.Records[0].Underlying())
		require.Len(t, result.Failures, 1)
		assert.ErrorIs(t, result.Failures[0], eventmodels.ErrUnresolvedSymbol)
	})

	t.Run("require registry entry for a symbol that never split", func(t *testing.T) {
		known, err := NewCorporateActionRegistry(nil, "SPY")
		require.NoError(t, err)

		normalizer := newTestNormalizer(t, NormalizeConfig{Registry: known, RequireRegistryEntry: true})

		result := normalizer.Normalize([]*eventmodels.OptionRecord{
			newOptionRecord(t, "O:SPY220916C00400000", eventmodels.NewDate(2022, 8, 1), "12.5", "11.9", "411.99"),
		})

		assert.Empty(t, result.Failures)
		require.Len(t, result.Records, 1)
		assert.Equal(t, "400", result.Records[0].Strike.String())
		assert.Equal(t, "1", result.Records[0].GetAppliedRatio().String())
	})

	t.Run("calls only and trade date window", func(t *testing.T) {
		normalizer := newTestNormalizer(t, NormalizeConfig{
			CallsOnly: true,
			From:      eventmodels.NewDate(2022, 8, 2),
			To:        eventmodels.NewDate(2022, 8, 3),
		})

		result := normalizer.Normalize([]*eventmodels.OptionRecord{
			newOptionRecord(t, "O:AAPL220916C00150000", eventmodels.NewDate(2022, 8, 1), "1", "1", "160"),
			newOptionRecord(t, "O:AAPL220916C00150000", eventmodels.NewDate(2022, 8, 2), "1", "1", "160"),
			newOptionRecord(t, "O:AAPL220916P00150000", eventmodels.NewDate(2022, 8, 2), "1", "1", "160"),
			newOptionRecord(t, "O:AAPL220916C00150000", eventmodels.NewDate(2022, 8, 3), "1", "1", "160"),
			newOptionRecord(t, "O:AAPL220916C00150000", eventmodels.NewDate(2022, 8, 4), "1", "1", "160"),
		})

		assert.Len(t, result.Records, 2)
		assert.Equal(t, 3, result.Dropped)
		assert.Empty(t, result.Failures)
	})

	t.Run("strike is taken from the ticker", func(t *testing.T) {
		normalizer := newTestNormalizer(t, NormalizeConfig{})

		record := newOptionRecord(t, "O:AAPL220916C00150000", eventmodels.NewDate(2022, 8, 1), "13.7", "13.1", "161.51")
		record.Strike = decimal.RequireFromString("149.99")

		result := normalizer.Normalize([]*eventmodels.OptionRecord{record})
		require.Len(t, result.Records, 1)

		assert.Equal(t, "150", result.Records[0].Strike.String())
	})

	t.Run("every record satisfies the derived field relations", func(t *testing.T) {
		normalizer := newTestNormalizer(t, NormalizeConfig{Registry: registry})

		var records []*eventmodels.OptionRecord
		for i := 0; i < 30; i++ {
			ticker := eventmodels.OptionSymbol(fmt.Sprintf("O:T220617P%08d", (15+i)*1000))
			date := eventmodels.NewDate(2022, 6, 1).AddDate(0, 0, i%10)
			high := decimal.NewFromFloat(0.37 + float64(i)*1.13)
			low := high.Mul(decimal.RequireFromString("0.83"))
			records = append(records, newOptionRecord(t, ticker, date, high.String(), low.String(), "20.13"))
		}

		result := normalizer.Normalize(records)
		require.Len(t, result.Records, 30)

		two := decimal.NewFromInt(2)
		for _, r := range result.Records {
			d := r.Derived
			require.NotNil(t, d)

			assert.True(t, d.MidPrice.Equal(r.High.Decimal.Add(r.Low.Decimal).Div(two).Round(2)), r.Ticker)
			assert.True(t, d.Premium.Equal(d.MidPrice))
			assert.True(t, d.PremiumLow.Equal(r.Low.Decimal))
			assert.True(t, d.PremiumYieldPct.Equal(d.Premium.Mul(hundred).Div(r.Strike).Round(4)))
			assert.True(t, d.PremiumYieldPctLow.Equal(d.PremiumLow.Mul(hundred).Div(r.Strike).Round(4)))
			assert.True(t, d.OtmPct.Equal(r.Strike.Sub(r.UnderlyingSpot).Mul(hundred).Div(r.UnderlyingSpot).Round(2)))
			assert.Equal(t, r.Strike.GreaterThanOrEqual(r.UnderlyingSpot), d.ITM)
		}

		assert.Empty(t, ValidateDataset(result.Records, eventmodels.ItmBasisTradeDate))
	})
}
