package stockbook

import (
	"context"

	"github.com/etnz/stockbook/date"
	"github.com/shopspring/decimal"
)

// Quote is the latest known price of an instrument.
type Quote struct {
	Symbol string
	Date   date.Date // day of the price, the "last updated" information
	Price  decimal.Decimal
}

// MarketData gives access to market prices of instruments and indices.
//
// Implementations fetch data on each call and report failures as
// *ProviderError wrapping ErrSymbolNotFound, ErrEmptySeries or ErrNetwork.
type MarketData interface {
	// Latest returns the latest price of symbol together with its date.
	Latest(ctx context.Context, symbol string) (Quote, error)
	// History returns the daily closing prices of symbol within r.
	History(ctx context.Context, symbol string, r date.Range) (*date.History[float64], error)
}
