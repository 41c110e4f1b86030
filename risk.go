package stockbook

import (
	"context"
	"errors"
	"math"

	"github.com/etnz/stockbook/date"
	"golang.org/x/sync/errgroup"
)

// RiskMetrics holds the risk statistics of a single instrument.
//
// A statistic that could not be computed is NaN.
type RiskMetrics struct {
	Symbol       string
	Observations int // number of daily returns of the instrument
	Overlap      int // number of daily returns shared with the benchmark
	Volatility   float64
	Alpha        float64
	Beta         float64
	Sharpe       float64
}

// ComputeRisk derives the risk metrics of an instrument from its returns and
// the benchmark's. benchmark may be empty, then Alpha and Beta are NaN.
//
// It fails with ErrInsufficientHistory when returns has less than 2
// observations. Other undefined statistics are NaN.
func ComputeRisk(symbol string, returns, benchmark ReturnSeries, riskFree float64, r Regressor) (RiskMetrics, error) {
	m := RiskMetrics{
		Symbol:       symbol,
		Observations: returns.Len(),
		Alpha:        math.NaN(),
		Beta:         math.NaN(),
		Sharpe:       math.NaN(),
	}
	vol, err := Volatility(returns.Returns)
	if err != nil {
		return m, err
	}
	m.Volatility = vol
	// Only ErrUndefined is expected past this point: keep NaN.
	if sharpe, err := Sharpe(returns.Returns, riskFree); err == nil {
		m.Sharpe = sharpe
	}

	ra, rb := Align(returns, benchmark)
	m.Overlap = ra.Len()
	if beta, err := Beta(ra.Returns, rb.Returns); err == nil {
		m.Beta = beta
	}
	if alpha, err := Alpha(r, ra.Returns, rb.Returns); err == nil {
		m.Alpha = alpha
	}
	return m, nil
}

// RiskReport is the result of a risk analysis of several instruments.
type RiskReport struct {
	Benchmark    string
	Window       date.Range
	Metrics      []RiskMetrics // in the order of the requested symbols
	Failures     []SymbolError
	BenchmarkErr error // set when the benchmark could not be fetched
}

// RiskEngine computes RiskMetrics from market history.
type RiskEngine struct {
	Market       MarketData
	Benchmark    string  // symbol of the benchmark index
	Lookback     int     // number of trading days, TradingDays if not positive
	RiskFreeRate float64 // per trading day
	Regressor    Regressor
	Concurrency  int       // maximum number of concurrent requests, 1 if not positive
	Today        date.Date // end of the window, date.Today() if zero
}

// Window returns the calendar range requested to cover the lookback.
func (e RiskEngine) Window() date.Range {
	today := e.Today
	if today.IsZero() {
		today = date.Today()
	}
	return date.Lookback(today, e.lookback()*365/TradingDays+10)
}

func (e RiskEngine) lookback() int {
	if e.Lookback <= 0 {
		return TradingDays
	}
	return e.Lookback
}

// returns fetches the history of symbol and computes its returns over the
// last lookback prices.
func (e RiskEngine) returns(ctx context.Context, symbol string, window date.Range) (ReturnSeries, error) {
	h, err := e.Market.History(ctx, symbol, window)
	if err != nil {
		return ReturnSeries{}, err
	}
	return Returns(h.Tail(e.lookback() + 1)), nil
}

// Analyze computes the risk metrics of each symbol against the benchmark.
//
// Symbols are analyzed independently, a failing symbol is reported in
// Failures. If the benchmark cannot be fetched, BenchmarkErr is set and Alpha
// and Beta are NaN. An error is returned only if ctx is done.
func (e RiskEngine) Analyze(ctx context.Context, symbols ...string) (*RiskReport, error) {
	window := e.Window()
	report := &RiskReport{Benchmark: e.Benchmark, Window: window}

	var benchmark ReturnSeries
	instruments := make([]ReturnSeries, len(symbols))
	errs := make([]error, len(symbols))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(e.Concurrency, 1))
	if e.Benchmark != "" {
		g.Go(func() error {
			benchmark, report.BenchmarkErr = e.returns(gctx, e.Benchmark, window)
			return nil
		})
	}
	for i, symbol := range symbols {
		g.Go(func() error {
			instruments[i], errs[i] = e.returns(gctx, symbol, window)
			return nil
		})
	}
	_ = g.Wait() // goroutines never fail, errors are collected.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if e.Benchmark == "" {
		report.BenchmarkErr = errors.New("no benchmark configured")
	}

	for i, symbol := range symbols {
		if errs[i] != nil {
			report.Failures = append(report.Failures, SymbolError{Symbol: symbol, Err: errs[i]})
			continue
		}
		m, err := ComputeRisk(symbol, instruments[i], benchmark, e.RiskFreeRate, e.Regressor)
		if err != nil {
			report.Failures = append(report.Failures, SymbolError{Symbol: symbol, Err: err})
			continue
		}
		report.Metrics = append(report.Metrics, m)
	}
	return report, nil
}
