package stockbook

import "github.com/shopspring/decimal"

// Performance compares the amount invested with its current market value.
type Performance struct {
	Investment  Money
	MarketValue Money
}

func NewPerformance(investment, marketValue Money) Performance {
	return Performance{Investment: investment, MarketValue: marketValue}
}

// ProfitLoss returns MarketValue - Investment.
func (p Performance) ProfitLoss() Money {
	return p.MarketValue.Sub(p.Investment)
}

// Percent returns the profit or loss relative to the investment.
//
// It is 0 when nothing was invested.
func (p Performance) Percent() Percent {
	return percentChange(p.Investment.Decimal(), p.MarketValue.Decimal())
}

var hundred = decimal.NewFromInt(100)

// percentChange returns (to-from)/from*100, or 0 when from is zero.
func percentChange(from, to decimal.Decimal) Percent {
	if from.IsZero() {
		return 0
	}
	return Percent(to.Sub(from).Div(from).Mul(hundred).InexactFloat64())
}
