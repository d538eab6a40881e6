package eventmodels

import (
	"time"

	"github.com/shopspring/decimal"
)

// OptionSymbolComponents struct to hold parsed option details. StrikePrice is the
// strike exactly as packed in the ticker, before any split adjustment.
type OptionSymbolComponents struct {
	Underlying  string
	Expiration  time.Time
	OptionType  OptionType
	StrikePrice decimal.Decimal
	Symbol      OptionSymbol
}

// Equal compares the contract fields. Symbol is derived from them and is ignored.
func (c *OptionSymbolComponents) Equal(other *OptionSymbolComponents) bool {
	if c == nil || other == nil {
		return c == other
	}

	return c.Underlying == other.Underlying &&
		c.Expiration.Equal(other.Expiration) &&
		c.OptionType == other.OptionType &&
		c.StrikePrice.Equal(other.StrikePrice)
}
