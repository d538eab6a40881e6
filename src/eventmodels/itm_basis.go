package eventmodels

import "fmt"

// ItmBasis selects which underlying spot the in-the-money flag is valued against.
type ItmBasis string

const (
	ItmBasisTradeDate  ItmBasis = "trade_date"
	ItmBasisExpiration ItmBasis = "expiration"
)

func (b ItmBasis) Validate() error {
	if b != ItmBasisTradeDate && b != ItmBasisExpiration {
		return fmt.Errorf("ItmBasis: Validate: invalid itm basis: %s", b)
	}

	return nil
}
