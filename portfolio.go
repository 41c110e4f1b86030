package stockbook

import (
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

// Portfolio maps instrument codes to their Position.
//
// A Portfolio is not safe for concurrent use: callers must serialize
// mutations.
type Portfolio struct {
	positions map[string]Position // index positions by symbol
	// basis holds the exact Σ quantity·price of each position.
	basis map[string]decimal.Decimal
}

// AverageCostPrecision is the number of decimal places of an average cost.
//
// Averages are rounded half away from zero from the exact total cost, so
// they do not depend on the order of the purchases.
const AverageCostPrecision = 16

// NewPortfolio creates an empty portfolio.
func NewPortfolio() *Portfolio {
	return &Portfolio{
		positions: make(map[string]Position),
		basis:     make(map[string]decimal.Decimal),
	}
}

// costBasis returns Σ quantity·price of pos, exact when Add built it.
func (p *Portfolio) costBasis(pos Position) decimal.Decimal {
	if c, ok := p.basis[pos.Symbol]; ok {
		return c
	}
	return lotsCost(pos)
}

// lotsCost returns averageCost·quantity, the cost of pos counted in lots.
func lotsCost(pos Position) decimal.Decimal {
	return pos.AverageCost.Mul(decimal.NewFromInt(pos.Quantity))
}

// Add buys quantity lots of symbol at price per unit.
//
// When the symbol is already held, the average cost becomes the quantity
// weighted mean of all purchase prices, rounded to AverageCostPrecision
// places. It returns the resulting position.
func (p *Portfolio) Add(symbol string, quantity int64, price decimal.Decimal) (Position, error) {
	symbol = NormalizeSymbol(symbol)
	if quantity <= 0 {
		return Position{}, fmt.Errorf("cannot add %d lots of %s: %w", quantity, symbol, ErrInvalidInput)
	}
	incoming, err := NewPosition(symbol, quantity, price)
	if err != nil {
		return Position{}, err
	}

	held, ok := p.positions[symbol]
	if !ok {
		p.positions[symbol] = incoming
		p.basis[symbol] = lotsCost(incoming)
		return incoming, nil
	}

	total := held.Quantity + quantity
	cost := p.costBasis(held).Add(lotsCost(incoming))
	held.Quantity = total
	held.AverageCost = cost.DivRound(decimal.NewFromInt(total), AverageCostPrecision)
	p.positions[symbol] = held
	p.basis[symbol] = cost
	return held, nil
}

// Remove sells quantity lots of symbol. The average cost is unchanged.
//
// The portfolio is left untouched when symbol is not held (ErrNotFound) or
// when less than quantity lots are held (ErrInsufficientQuantity).
func (p *Portfolio) Remove(symbol string, quantity int64) (Position, error) {
	symbol = NormalizeSymbol(symbol)
	held, ok := p.positions[symbol]
	if !ok {
		return Position{}, fmt.Errorf("cannot remove %s: %w", symbol, ErrNotFound)
	}
	if quantity <= 0 {
		return held, fmt.Errorf("cannot remove %d lots of %s: %w", quantity, symbol, ErrInvalidInput)
	}
	if quantity > held.Quantity {
		return held, fmt.Errorf("cannot remove %d lots of %s, only %d held: %w", quantity, symbol, held.Quantity, ErrInsufficientQuantity)
	}
	held.Quantity -= quantity
	p.positions[symbol] = held
	// the remaining lots keep the current average
	p.basis[symbol] = lotsCost(held)
	return held, nil
}

// Update overwrites both the quantity and the average cost of a held symbol.
// It is a correction, not a trade.
func (p *Portfolio) Update(symbol string, quantity int64, price decimal.Decimal) (Position, error) {
	symbol = NormalizeSymbol(symbol)
	if _, ok := p.positions[symbol]; !ok {
		return Position{}, fmt.Errorf("cannot update %s: %w", symbol, ErrNotFound)
	}
	pos, err := NewPosition(symbol, quantity, price)
	if err != nil {
		return Position{}, err
	}
	p.positions[symbol] = pos
	p.basis[symbol] = lotsCost(pos)
	return pos, nil
}

// Delete removes symbol from the portfolio.
func (p *Portfolio) Delete(symbol string) error {
	symbol = NormalizeSymbol(symbol)
	if _, ok := p.positions[symbol]; !ok {
		return fmt.Errorf("cannot delete %s: %w", symbol, ErrNotFound)
	}
	delete(p.positions, symbol)
	delete(p.basis, symbol)
	return nil
}

// Position returns the position held for symbol.
func (p *Portfolio) Position(symbol string) (Position, bool) {
	pos, ok := p.positions[NormalizeSymbol(symbol)]
	return pos, ok
}

// Len returns the number of positions, zero quantity ones included.
func (p *Portfolio) Len() int { return len(p.positions) }

// List returns a copy of the positions indexed by symbol.
func (p *Portfolio) List() map[string]Position { return maps.Clone(p.positions) }

// Symbols returns the held symbols in alphabetical order.
func (p *Portfolio) Symbols() []string {
	return slices.Sorted(maps.Keys(p.positions))
}

// Positions iterates over the positions in alphabetical order of symbol.
func (p *Portfolio) Positions() iter.Seq[Position] {
	return func(yield func(Position) bool) {
		for _, symbol := range p.Symbols() {
			if !yield(p.positions[symbol]) {
				return
			}
		}
	}
}
