package eventmodels

// SplitRegistryConfig is everything a split registry is built from: the split events and the
// symbols known to the registry regardless of whether they ever split.
type SplitRegistryConfig struct {
	Symbols []string
	Splits  []SplitEvent
}
