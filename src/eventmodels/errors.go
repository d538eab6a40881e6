package eventmodels

import "errors"

var (
	// ErrMalformedTicker indicates a ticker that does not match the packed option grammar
	ErrMalformedTicker = errors.New("malformed ticker")

	// ErrInvalidRecord indicates a record whose primitives cannot produce derived fields
	ErrInvalidRecord = errors.New("invalid record")

	// ErrUnresolvedSymbol indicates the corporate-action registry has no entry for a required symbol
	ErrUnresolvedSymbol = errors.New("unresolved symbol")
)
