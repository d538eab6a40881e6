package eventservices

import (
	"fmt"
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/jiaming2012/options-cleaner/src/eventmodels"
)

// YearSummary aggregates one trade year of a normalized dataset.
type YearSummary struct {
	Year                  int
	Count                 int
	ItmCount              int
	ItmRatePct            float64
	MeanPremiumYieldPct   float64
	MedianPremiumYieldPct float64
	MeanOtmPct            float64
}

// SummarizeDataset groups records by trade year. Records without derived fields are skipped.
func SummarizeDataset(records []*eventmodels.OptionRecord) ([]*YearSummary, error) {
	type bucket struct {
		itm    int
		yields []float64
		otm    []float64
	}

	buckets := make(map[int]*bucket)
	for _, r := range records {
		if r == nil || r.Derived == nil {
			continue
		}

		year := r.TradeDate.Year()
		b, found := buckets[year]
		if !found {
			b = &bucket{}
			buckets[year] = b
		}

		if r.Derived.ITM {
			b.itm++
		}

		b.yields = append(b.yields, r.Derived.PremiumYieldPct.InexactFloat64())
		b.otm = append(b.otm, r.Derived.OtmPct.InexactFloat64())
	}

	var summaries []*YearSummary
	for year, b := range buckets {
		meanYield, err := stats.Mean(b.yields)
		if err != nil {
			return nil, fmt.Errorf("SummarizeDataset: %d: failed to compute mean yield: %w", year, err)
		}

		medianYield, err := stats.Median(b.yields)
		if err != nil {
			return nil, fmt.Errorf("SummarizeDataset: %d: failed to compute median yield: %w", year, err)
		}

		meanOtm, err := stats.Mean(b.otm)
		if err != nil {
			return nil, fmt.Errorf("SummarizeDataset: %d: failed to compute mean otm pct: %w", year, err)
		}

		count := len(b.yields)
		summaries = append(summaries, &YearSummary{
			Year:                  year,
			Count:                 count,
			ItmCount:              b.itm,
			ItmRatePct:            float64(b.itm) / float64(count) * 100,
			MeanPremiumYieldPct:   meanYield,
			MedianPremiumYieldPct: medianYield,
			MeanOtmPct:            meanOtm,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Year < summaries[j].Year
	})

	return summaries, nil
}
