package eventmodels

import (
	"fmt"
	"time"
)

// RecordFailure is a record that could not be processed. Index is its position in the input batch.
type RecordFailure struct {
	Index     int
	Ticker    OptionSymbol
	TradeDate time.Time
	Err       error
}

func (f *RecordFailure) Error() string {
	date := ""
	if !f.TradeDate.IsZero() {
		date = f.TradeDate.Format(DateLayout)
	}

	return fmt.Sprintf("record %d (%s %s): %v", f.Index, f.Ticker, date, f.Err)
}

func (f *RecordFailure) Unwrap() error {
	return f.Err
}

func NewRecordFailure(index int, record *OptionRecord, err error) *RecordFailure {
	failure := &RecordFailure{
		Index: index,
		Err:   err,
	}

	if record != nil {
		failure.Ticker = record.Ticker
		failure.TradeDate = record.TradeDate
	}

	return failure
}
