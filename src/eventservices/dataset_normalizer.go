package eventservices

import (
	"fmt"
	"runtime"
	"sort"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/jiaming2012/options-cleaner/src/eventmodels"
)

// NormalizeConfig parameterizes a single normalization run.
type NormalizeConfig struct {
	Registry *CorporateActionRegistry
	ItmBasis eventmodels.ItmBasis

	// RequireRegistryEntry fails records whose underlying is unknown to the registry
	// instead of treating them as never split.
	RequireRegistryEntry bool

	Workers int

	CallsOnly bool

	// From and To bound the trade date, inclusive. Zero means unbounded.
	From time.Time
	To   time.Time
}

type DatasetNormalizer struct {
	config NormalizeConfig
}

func NewDatasetNormalizer(config NormalizeConfig) (*DatasetNormalizer, error) {
	if config.ItmBasis == "" {
		config.ItmBasis = eventmodels.ItmBasisTradeDate
	}

	if err := config.ItmBasis.Validate(); err != nil {
		return nil, fmt.Errorf("NewDatasetNormalizer: %w", err)
	}

	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}

	if !config.From.IsZero() && !config.To.IsZero() && config.To.Before(config.From) {
		return nil, fmt.Errorf("NewDatasetNormalizer: to %s is before from %s", config.To.Format(eventmodels.DateLayout), config.From.Format(eventmodels.DateLayout))
	}

	if config.Registry == nil {
		config.Registry = &CorporateActionRegistry{}
	}

	return &DatasetNormalizer{config: config}, nil
}

type normalizeOutcome struct {
	record  *eventmodels.OptionRecord
	err     error
	dropped bool
}

// Normalize decodes, split-adjusts and re-derives every record, then orders the survivors by
// (trade date, strike). Input records are not modified. A record that fails is reported in
// Failures and does not affect the rest of the batch.
func (n *DatasetNormalizer) Normalize(records []*eventmodels.OptionRecord) *eventmodels.NormalizeResult {
	outcomes := make([]normalizeOutcome, len(records))

	var g errgroup.Group
	g.SetLimit(n.config.Workers)

	for i, record := range records {
		g.Go(func() error {
			outcomes[i] = n.normalizeRecord(record)
			return nil
		})
	}

	// workers never return an error
	_ = g.Wait()

	result := &eventmodels.NormalizeResult{
		RunID:   uuid.New(),
		Records: make([]*eventmodels.OptionRecord, 0, len(records)),
	}

	for i, outcome := range outcomes {
		switch {
		case outcome.err != nil:
			result.Failures = append(result.Failures, eventmodels.NewRecordFailure(i, records[i], outcome.err))
		case outcome.dropped:
			result.Dropped++
		default:
			result.Records = append(result.Records, outcome.record)
		}
	}

	sort.SliceStable(result.Records, func(i, j int) bool {
		return result.Records[i].Less(result.Records[j])
	})

	log.WithFields(log.Fields{
		"run_id":     result.RunID,
		"normalized": len(result.Records),
		"failed":     len(result.Failures),
		"dropped":    result.Dropped,
	}).Debug("normalized option records")

	return result
}

func (n *DatasetNormalizer) normalizeRecord(in *eventmodels.OptionRecord) normalizeOutcome {
	if in == nil {
		return normalizeOutcome{err: fmt.Errorf("normalizeRecord: nil record: %w", eventmodels.ErrInvalidRecord)}
	}

	record := in.Clone()

	if err := decodeContract(record); err != nil {
		return normalizeOutcome{err: err}
	}

	if !n.inScope(record) {
		return normalizeOutcome{dropped: true}
	}

	ratio, err := n.config.Registry.Resolve(record.Underlying(), record.TradeDate, n.config.RequireRegistryEntry)
	if err != nil {
		return normalizeOutcome{err: err}
	}

	if err := AdjustRecord(record, ratio); err != nil {
		return normalizeOutcome{err: err}
	}

	if err := RecomputeDerivedFields(record, n.config.ItmBasis); err != nil {
		return normalizeOutcome{err: err}
	}

	return normalizeOutcome{record: record}
}

func (n *DatasetNormalizer) inScope(record *eventmodels.OptionRecord) bool {
	if n.config.CallsOnly && record.Contract.OptionType != eventmodels.Call {
		return false
	}

	if !n.config.From.IsZero() && record.TradeDate.Before(eventmodels.ToDate(n.config.From)) {
		return false
	}

	if !n.config.To.IsZero() && record.TradeDate.After(eventmodels.ToDate(n.config.To)) {
		return false
	}

	return true
}

// decodeContract makes sure the record carries both the packed ticker and its decoded form,
// and that its strike agrees with the ticker before any adjustment.
func decodeContract(record *eventmodels.OptionRecord) error {
	if record.TradeDate.IsZero() {
		return fmt.Errorf("decodeContract: %s: missing trade date: %w", record.Ticker, eventmodels.ErrInvalidRecord)
	}

	record.TradeDate = eventmodels.ToDate(record.TradeDate)

	if record.Contract == nil {
		contract, err := eventmodels.NewOptionSymbolComponents(record.Ticker)
		if err != nil {
			return fmt.Errorf("decodeContract: %w", err)
		}

		record.Contract = contract
	} else if record.Ticker == "" {
		symbol, err := eventmodels.NewOptionSymbol(*record.Contract)
		if err != nil {
			return fmt.Errorf("decodeContract: %v: %w", err, eventmodels.ErrInvalidRecord)
		}

		record.Ticker = symbol
		record.Contract.Symbol = symbol
	}

	if !record.Strike.Equal(record.Contract.StrikePrice) {
		record.Strike = record.Contract.StrikePrice
	}

	return nil
}
