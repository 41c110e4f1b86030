// Package warrant finds the break-even resale price of warrants.
//
// The scenario is a reference position of Lots lots of the underlying stock
// bought at StockPrice that falls to its board's auto reject lower limit.
// Warrants received with the position at a ratio of WarrantUnits for
// StockUnits shares must then be resold at a price that offsets the loss.
package warrant

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	// Lots is the size of the reference position, in lots.
	Lots = 10_000
	// LotSize is the number of units in one lot.
	LotSize = 100
	// MaxPrice bounds the search of the resale price.
	MaxPrice = 10_000_000
)

var (
	lots    = decimal.NewFromInt(Lots)
	lotSize = decimal.NewFromInt(LotSize)
	one     = decimal.NewFromInt(1)
)

// Input of the break-even solver.
type Input struct {
	StockPrice   decimal.Decimal
	Board        int   // 0, 1 or 2
	WarrantUnits int64 // warrants received for StockUnits shares
	StockUnits   int64
}

// Scenario is the loss scenario of an Input.
type Scenario struct {
	Input
	LossPrice   decimal.Decimal // stock price after the maximal loss
	Multiplier  decimal.Decimal // warrants per share
	WarrantLots decimal.Decimal
	BaseStock   decimal.Decimal // cost of the reference position
	BaseLoss    decimal.Decimal // value of the reference position at LossPrice
}

// NewScenario validates in and computes its loss scenario.
func NewScenario(in Input) (Scenario, error) {
	if !in.StockPrice.IsPositive() {
		return Scenario{}, fmt.Errorf("stock price %s: %w", in.StockPrice, ErrInvalidInput)
	}
	if in.WarrantUnits <= 0 || in.StockUnits <= 0 {
		return Scenario{}, fmt.Errorf("ratio %d:%d: %w", in.WarrantUnits, in.StockUnits, ErrInvalidInput)
	}
	loss, err := LossPrice(in.StockPrice, in.Board)
	if err != nil {
		return Scenario{}, err
	}
	multiplier := decimal.NewFromInt(in.WarrantUnits).Div(decimal.NewFromInt(in.StockUnits))
	return Scenario{
		Input:       in,
		LossPrice:   loss,
		Multiplier:  multiplier,
		WarrantLots: lots.Mul(multiplier),
		BaseStock:   lots.Mul(in.StockPrice).Mul(lotSize),
		BaseLoss:    lots.Mul(lotSize).Mul(loss),
	}, nil
}

// BreakEvenRatio returns (BaseLoss + p·WarrantLots·LotSize)/BaseStock - 1, the
// relative result of the scenario when warrants are resold at p.
func (s Scenario) BreakEvenRatio(p int64) decimal.Decimal {
	proceeds := decimal.NewFromInt(p).Mul(s.WarrantLots).Mul(lotSize)
	return s.BaseLoss.Add(proceeds).Div(s.BaseStock).Sub(one)
}

// Result of the break-even solver.
type Result struct {
	Scenario
	Price int64           // minimal resale price of a warrant
	Ratio decimal.Decimal // BreakEvenRatio(Price)
}

// Solve returns the first whole price p = 1, 2, … at which the scenario's
// BreakEvenRatio is positive.
func Solve(in Input) (Result, error) {
	s, err := NewScenario(in)
	if err != nil {
		return Result{}, err
	}
	for p := int64(1); p <= MaxPrice; p++ {
		if r := s.BreakEvenRatio(p); r.IsPositive() {
			return Result{Scenario: s, Price: p, Ratio: r}, nil
		}
	}
	return Result{}, fmt.Errorf("no break-even price up to %d: %w", MaxPrice, ErrInvalidInput)
}
