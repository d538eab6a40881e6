package eventmodels

import "github.com/google/uuid"

type NormalizeResult struct {
	RunID    uuid.UUID
	Records  []*OptionRecord
	Failures []*RecordFailure

	// Dropped counts records filtered out by the run's scope (option type, date window).
	Dropped int
}
