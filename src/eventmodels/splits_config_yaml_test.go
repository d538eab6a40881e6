package eventmodels

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitsConfigYAML(t *testing.T) {
	config := SplitsConfigYAML{
		Splits: []SplitYAML{
			{Symbol: "tsla", EffectiveDate: "2020-08-31", Ratio: "5"},
			{Symbol: "TSLA", EffectiveDate: "2022-08-25", Ratio: "3", Note: "3-for-1"},
			{Symbol: "NVDA", EffectiveDate: "2024-06-10", Ratio: "10"},
		},
	}

	t.Run("ToSplitEvents", func(t *testing.T) {
		events, err := config.ToSplitEvents()
		require.NoError(t, err)
		require.Len(t, events, 3)

		assert.Equal(t, "TSLA", events[0].Symbol)
		assert.Equal(t, NewDate(2020, 8, 31), events[0].EffectiveDate)
		assert.True(t, events[0].Ratio.Equal(decimal.NewFromInt(5)))
	})

	t.Run("rejects a non-positive ratio", func(t *testing.T) {
		bad := SplitsConfigYAML{Splits: []SplitYAML{{Symbol: "TSLA", EffectiveDate: "2022-08-25", Ratio: "0"}}}

		_, err := bad.ToSplitEvents()
		assert.Error(t, err)
	})

	t.Run("rejects an invalid date", func(t *testing.T) {
		bad := SplitsConfigYAML{Splits: []SplitYAML{{Symbol: "TSLA", EffectiveDate: "25/08/2022", Ratio: "3"}}}

		_, err := bad.ToSplitEvents()
		assert.Error(t, err)
	})

	t.Run("symbols without splits", func(t *testing.T) {
		withSymbols := SplitsConfigYAML{Symbols: []string{" spy ", "XLF"}, Splits: config.Splits}

		model, err := withSymbols.ToModel()
		require.NoError(t, err)

		assert.Equal(t, []string{"SPY", "XLF"}, model.Symbols)
		assert.Len(t, model.Splits, 3)
	})

	t.Run("rejects an empty symbol", func(t *testing.T) {
		bad := SplitsConfigYAML{Symbols: []string{"SPY", " "}}

		_, err := bad.ToModel()
		assert.Error(t, err)
	})

	t.Run("NewSplitsConfigYAML", func(t *testing.T) {
		events, err := config.ToSplitEvents()
		require.NoError(t, err)

		out := NewSplitsConfigYAML(SplitRegistryConfig{
			Symbols: []string{"TSLA", "SPY", "NVDA"},
			Splits:  events,
		})
		require.Len(t, out.Splits, 3)
		assert.Equal(t, SplitYAML{Symbol: "TSLA", EffectiveDate: "2022-08-25", Ratio: "3"}, out.Splits[1])
		assert.Equal(t, []string{"SPY"}, out.Symbols)
	})
}

func TestSplitEventAppliesTo(t *testing.T) {
	split := SplitEvent{Symbol: "T", EffectiveDate: NewDate(2022, 6, 6), Ratio: decimal.NewFromInt(20)}

	assert.True(t, split.AppliesTo(NewDate(2022, 6, 5)))
	assert.False(t, split.AppliesTo(NewDate(2022, 6, 6)))
	assert.False(t, split.AppliesTo(NewDate(2022, 6, 7)))
}
