package stockbook

import (
	"context"
	"fmt"

	"github.com/etnz/stockbook/date"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Valuation is a Position priced at the market.
type Valuation struct {
	Position
	Date          date.Date // day of the market price
	MarketPrice   Money     // per unit
	Cost          Money     // averageCost·quantity·LotSize
	MarketValue   Money     // marketPrice·quantity·LotSize
	ProfitLoss    Money
	PercentChange Percent // change of the market price against the average cost
}

// NewValuation prices pos at price, in currency.
func NewValuation(pos Position, price decimal.Decimal, on date.Date, currency string) Valuation {
	units := decimal.NewFromInt(pos.Units())
	cost := M(pos.Cost(), currency)
	value := M(price.Mul(units), currency)
	return Valuation{
		Position:      pos,
		Date:          on,
		MarketPrice:   M(price, currency),
		Cost:          cost,
		MarketValue:   value,
		ProfitLoss:    value.Sub(cost),
		PercentChange: percentChange(pos.AverageCost, price),
	}
}

// ValuationReport is the valuation of a whole portfolio.
type ValuationReport struct {
	Currency    string
	Valuations  []Valuation   // in alphabetical order of symbol
	Failures    []SymbolError // positions that could not be priced
	LastUpdated date.Date     // most recent market price date among Valuations
	positions   int
}

// Overall returns the aggregated performance of all priced positions.
//
// It returns false when the portfolio holds no position at all.
func (r *ValuationReport) Overall() (Performance, bool) {
	if r.positions == 0 {
		return Performance{}, false
	}
	investment, value := M(0, r.Currency), M(0, r.Currency)
	for _, v := range r.Valuations {
		investment = investment.Add(v.Cost)
		value = value.Add(v.MarketValue)
	}
	return NewPerformance(investment, value), true
}

// Valuator prices portfolios against a MarketData.
type Valuator struct {
	Market      MarketData
	Currency    string
	Concurrency int // maximum number of concurrent quotes, 1 if not positive
}

// Value fetches the latest quote of every position of p and values them.
//
// A failing quote is reported in the Failures of the report and does not stop
// the valuation of other positions. An error is returned only if ctx is done.
func (v Valuator) Value(ctx context.Context, p *Portfolio) (*ValuationReport, error) {
	positions := make([]Position, 0, p.Len())
	for pos := range p.Positions() {
		positions = append(positions, pos)
	}

	type result struct {
		quote Quote
		err   error
	}
	results := make([]result, len(positions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(v.Concurrency, 1))
	for i, pos := range positions {
		g.Go(func() error {
			q, err := v.Market.Latest(gctx, pos.Symbol)
			results[i] = result{quote: q, err: err}
			return nil
		})
	}
	_ = g.Wait() // goroutines never fail, errors are collected in results.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &ValuationReport{Currency: v.Currency, positions: len(positions)}
	for i, pos := range positions {
		res := results[i]
		if res.err == nil && res.quote.Price.IsNegative() {
			res.err = fmt.Errorf("negative price %s: %w", res.quote.Price, ErrInvalidInput)
		}
		if res.err != nil {
			report.Failures = append(report.Failures, SymbolError{Symbol: pos.Symbol, Err: res.err})
			continue
		}
		report.Valuations = append(report.Valuations, NewValuation(pos, res.quote.Price, res.quote.Date, v.Currency))
		if res.quote.Date.After(report.LastUpdated) {
			report.LastUpdated = res.quote.Date
		}
	}
	return report, nil
}
