package eventservices

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jiaming2012/options-cleaner/src/eventmodels"
)

// CorporateActionRegistry holds the split history per underlying symbol. It is read-only
// after construction and safe for concurrent use.
type CorporateActionRegistry struct {
	events map[string][]eventmodels.SplitEvent
}

// NewCorporateActionRegistry indexes events by symbol. knownSymbols registers underlyings that
// have never split; they resolve to 1 even when a registry entry is required.
func NewCorporateActionRegistry(events []eventmodels.SplitEvent, knownSymbols ...string) (*CorporateActionRegistry, error) {
	registry := &CorporateActionRegistry{
		events: make(map[string][]eventmodels.SplitEvent),
	}

	for _, symbol := range knownSymbols {
		key := registryKey(symbol)
		if key == "" {
			return nil, fmt.Errorf("NewCorporateActionRegistry: empty known symbol")
		}

		registry.events[key] = registry.events[key]
	}

	for _, e := range events {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("NewCorporateActionRegistry: %w", err)
		}

		key := registryKey(e.Symbol)
		e.Symbol = key
		e.EffectiveDate = eventmodels.ToDate(e.EffectiveDate)

		for _, existing := range registry.events[key] {
			if existing.EffectiveDate.Equal(e.EffectiveDate) {
				return nil, fmt.Errorf("NewCorporateActionRegistry: duplicate split for %s on %s", key, e.EffectiveDate.Format(eventmodels.DateLayout))
			}
		}

		registry.events[key] = append(registry.events[key], e)
	}

	for _, symbolEvents := range registry.events {
		sort.Slice(symbolEvents, func(i, j int) bool {
			return symbolEvents[i].EffectiveDate.Before(symbolEvents[j].EffectiveDate)
		})
	}

	return registry, nil
}

func registryKey(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

func (r *CorporateActionRegistry) HasSymbol(symbol string) bool {
	if r == nil {
		return false
	}

	_, found := r.events[registryKey(symbol)]
	return found
}

func (r *CorporateActionRegistry) Symbols() []string {
	if r == nil {
		return nil
	}

	symbols := make([]string, 0, len(r.events))
	for s := range r.events {
		symbols = append(symbols, s)
	}

	sort.Strings(symbols)
	return symbols
}

// Events returns the symbol's splits in chronological order.
func (r *CorporateActionRegistry) Events(symbol string) []eventmodels.SplitEvent {
	if r == nil {
		return nil
	}

	events := r.events[registryKey(symbol)]
	out := make([]eventmodels.SplitEvent, len(events))
	copy(out, events)
	return out
}

// ResolveRatio returns the product of the ratios of every split of symbol whose effective
// date is strictly after tradeDate, applied in chronological order. 1 when none apply.
func (r *CorporateActionRegistry) ResolveRatio(symbol string, tradeDate time.Time) decimal.Decimal {
	ratio := decimal.NewFromInt(1)
	if r == nil {
		return ratio
	}

	for _, e := range r.events[registryKey(symbol)] {
		if e.AppliesTo(tradeDate) {
			ratio = ratio.Mul(e.Ratio)
		}
	}

	return ratio
}

// Resolve is ResolveRatio that, when requireEntry is set, fails for symbols the registry has never heard of.
func (r *CorporateActionRegistry) Resolve(symbol string, tradeDate time.Time, requireEntry bool) (decimal.Decimal, error) {
	if requireEntry && !r.HasSymbol(symbol) {
		return decimal.Decimal{}, fmt.Errorf("CorporateActionRegistry.Resolve: %s: %w", symbol, eventmodels.ErrUnresolvedSymbol)
	}

	return r.ResolveRatio(symbol, tradeDate), nil
}
