package run

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jiaming2012/options-cleaner/src/eventmodels"
	"github.com/jiaming2012/options-cleaner/src/eventservices"
	"github.com/jiaming2012/options-cleaner/src/telemetry"
	"github.com/jiaming2012/options-cleaner/src/utils"
)

type RunArgs struct {
	InPath        string
	OutPath       string
	SplitsPath    string
	Workers       int
	ItmBasis      eventmodels.ItmBasis
	RequireSplits bool
	CallsOnly     bool
	From          time.Time
	To            time.Time
}

type RunResult struct {
	RunID             uuid.UUID
	OutPath           string
	Normalized        int
	Dropped           int
	LoadFailures      []*eventmodels.RecordFailure
	NormalizeFailures []*eventmodels.RecordFailure
}

func (r RunResult) FailureCount() int {
	return len(r.LoadFailures) + len(r.NormalizeFailures)
}

func NewRegistry(splitsPath string) (*eventservices.CorporateActionRegistry, error) {
	var config eventmodels.SplitRegistryConfig
	if splitsPath != "" {
		var err error
		if config, err = utils.LoadSplitsConfig(splitsPath); err != nil {
			return nil, fmt.Errorf("NewRegistry: %w", err)
		}
	}

	registry, err := eventservices.NewCorporateActionRegistry(config.Splits, config.Symbols...)
	if err != nil {
		return nil, fmt.Errorf("NewRegistry: %w", err)
	}

	for _, symbol := range registry.Symbols() {
		for _, e := range registry.Events(symbol) {
			log.Debugf("%s: split %s on %s", symbol, e.Ratio, e.EffectiveDate.Format(eventmodels.DateLayout))
		}
	}

	return registry, nil
}

// Run loads raw option records from args.InPath, normalizes them and writes the cleaned dataset
// to args.OutPath.
func Run(ctx context.Context, args RunArgs) (RunResult, error) {
	tracer := otel.Tracer("normalize_options")
	ctx, span := tracer.Start(ctx, "normalize_options.Run", trace.WithAttributes(
		attribute.String("in", args.InPath),
		attribute.String("out", args.OutPath),
	))
	defer span.End()

	registry, err := NewRegistry(args.SplitsPath)
	if err != nil {
		return RunResult{}, fmt.Errorf("Run: %w", err)
	}

	log.Infof("Loaded %d split symbols from %q", len(registry.Symbols()), args.SplitsPath)

	normalizer, err := eventservices.NewDatasetNormalizer(eventservices.NormalizeConfig{
		Registry:             registry,
		ItmBasis:             args.ItmBasis,
		RequireRegistryEntry: args.RequireSplits,
		Workers:              args.Workers,
		CallsOnly:            args.CallsOnly,
		From:                 args.From,
		To:                   args.To,
	})
	if err != nil {
		return RunResult{}, fmt.Errorf("Run: %w", err)
	}

	records, loadFailures, err := utils.LoadOptionRecordsCSV(args.InPath)
	if err != nil {
		return RunResult{}, fmt.Errorf("Run: %w", err)
	}

	result := normalizer.Normalize(records)

	span.SetAttributes(
		attribute.String("run_id", result.RunID.String()),
		attribute.Int("normalized", len(result.Records)),
		attribute.Int("failed", len(result.Failures)+len(loadFailures)),
	)

	if err := utils.ExportOptionRecordsCSV(args.OutPath, result.Records); err != nil {
		return RunResult{}, fmt.Errorf("Run: %w", err)
	}

	metrics, err := telemetry.NewNormalizeMetrics()
	if err != nil {
		log.Warnf("Run: metrics disabled: %v", err)
	} else {
		metrics.Record(ctx, args.InPath, len(result.Records), len(result.Failures)+len(loadFailures), result.Dropped)
	}

	log.WithField("run_id", result.RunID).Infof("Normalized %d records, %d failed, %d dropped", len(result.Records), len(result.Failures)+len(loadFailures), result.Dropped)

	return RunResult{
		RunID:             result.RunID,
		OutPath:           args.OutPath,
		Normalized:        len(result.Records),
		Dropped:           result.Dropped,
		LoadFailures:      loadFailures,
		NormalizeFailures: result.Failures,
	}, nil
}
