package eventservices

import (
	"context"
	"fmt"
	"strings"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/options-cleaner/src/eventmodels"
)

type PolygonSplitsFetcher struct {
	Client *polygon.Client
}

func NewPolygonSplitsFetcher(apiKey string) *PolygonSplitsFetcher {
	return &PolygonSplitsFetcher{
		Client: polygon.New(apiKey),
	}
}

// FetchSplits lists the split history of symbol, oldest first.
func (f *PolygonSplitsFetcher) FetchSplits(ctx context.Context, symbol string) ([]eventmodels.SplitEvent, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	log.Debugf("fetching polygon splits for symbol %s", symbol)

	params := models.ListSplitsParams{}.
		WithTicker(models.EQ, symbol).
		WithOrder(models.Asc).
		WithLimit(1000)

	iter := f.Client.ListSplits(ctx, params)

	var events []eventmodels.SplitEvent
	for iter.Next() {
		event, err := NewSplitEventFromPolygon(iter.Item())
		if err != nil {
			return nil, fmt.Errorf("PolygonSplitsFetcher.FetchSplits: %s: %w", symbol, err)
		}

		events = append(events, event)
	}

	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("PolygonSplitsFetcher.FetchSplits: %s: failed to list splits: %w", symbol, err)
	}

	return events, nil
}

// NewSplitEventFromPolygon converts a split_from -> split_to record into a price divisor,
// e.g. a 1-for-20 forward split becomes a ratio of 20.
func NewSplitEventFromPolygon(split models.Split) (eventmodels.SplitEvent, error) {
	if split.SplitFrom <= 0 || split.SplitTo <= 0 {
		return eventmodels.SplitEvent{}, fmt.Errorf("NewSplitEventFromPolygon: %s: invalid split %v-for-%v", split.Ticker, split.SplitTo, split.SplitFrom)
	}

	event := eventmodels.SplitEvent{
		Symbol:        strings.ToUpper(split.Ticker),
		EffectiveDate: eventmodels.ToDate(time.Time(split.ExecutionDate)),
		Ratio:         decimal.NewFromFloat(split.SplitTo).Div(decimal.NewFromFloat(split.SplitFrom)),
	}

	if err := event.Validate(); err != nil {
		return eventmodels.SplitEvent{}, fmt.Errorf("NewSplitEventFromPolygon: %w", err)
	}

	return event, nil
}
