package stockbook

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// LotSize is the number of units in one lot.
const LotSize = 100

var lotSize = decimal.NewFromInt(LotSize)

// Position is the running aggregate of the lots held for one instrument.
type Position struct {
	Symbol      string
	Quantity    int64           // in lots
	AverageCost decimal.Decimal // per unit
}

// NewPosition returns a validated Position.
func NewPosition(symbol string, quantity int64, averageCost decimal.Decimal) (Position, error) {
	symbol = NormalizeSymbol(symbol)
	if symbol == "" {
		return Position{}, fmt.Errorf("empty symbol: %w", ErrInvalidInput)
	}
	if quantity < 0 {
		return Position{}, fmt.Errorf("negative quantity %d for %s: %w", quantity, symbol, ErrInvalidInput)
	}
	if averageCost.IsNegative() {
		return Position{}, fmt.Errorf("negative price %s for %s: %w", averageCost, symbol, ErrInvalidInput)
	}
	return Position{Symbol: symbol, Quantity: quantity, AverageCost: averageCost}, nil
}

// NormalizeSymbol returns the canonical form of an instrument code.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// Units returns the number of units held.
func (p Position) Units() int64 { return p.Quantity * LotSize }

// IsZero reports whether no lot is held. Zero positions stay in the portfolio
// until deleted.
func (p Position) IsZero() bool { return p.Quantity == 0 }

// Cost returns the amount invested in the position: averageCost·quantity·LotSize.
func (p Position) Cost() decimal.Decimal {
	return p.AverageCost.Mul(decimal.NewFromInt(p.Quantity)).Mul(lotSize)
}

// Equal reports whether p and q hold the same state.
func (p Position) Equal(q Position) bool {
	return p.Symbol == q.Symbol && p.Quantity == q.Quantity && p.AverageCost.Equal(q.AverageCost)
}

func (p Position) String() string {
	return fmt.Sprintf("%s %d lots @ %s", p.Symbol, p.Quantity, p.AverageCost.StringFixed(2))
}
