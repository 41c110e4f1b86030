package stockbook

import (
	"errors"
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/mat"
)

// TradingDays is the number of trading days in a year, used to annualize
// daily statistics and as the default risk lookback.
const TradingDays = 252

// Volatility returns the annualized sample standard deviation of returns.
func Volatility(returns []float64) (float64, error) {
	if len(returns) < 2 {
		return math.NaN(), fmt.Errorf("volatility needs 2 returns, got %d: %w", len(returns), ErrInsufficientHistory)
	}
	sd, err := stats.StandardDeviationSample(returns)
	if err != nil {
		return math.NaN(), err
	}
	return sd * math.Sqrt(TradingDays), nil
}

// Beta returns cov(returns, benchmark)/var(benchmark) using sample
// estimators. Both series must be aligned.
func Beta(returns, benchmark []float64) (float64, error) {
	if err := checkAligned(returns, benchmark); err != nil {
		return math.NaN(), err
	}
	variance, err := stats.SampleVariance(benchmark)
	if err != nil {
		return math.NaN(), err
	}
	if variance == 0 {
		return math.NaN(), fmt.Errorf("benchmark variance is zero: %w", ErrUndefined)
	}
	cov, err := stats.Covariance(returns, benchmark)
	if err != nil {
		return math.NaN(), err
	}
	return cov / variance, nil
}

// Sharpe returns (mean(returns) - riskFree) / stddev(returns).
//
// riskFree is a rate per period of the returns, daily for daily returns.
func Sharpe(returns []float64, riskFree float64) (float64, error) {
	if len(returns) < 2 {
		return math.NaN(), fmt.Errorf("sharpe ratio needs 2 returns, got %d: %w", len(returns), ErrInsufficientHistory)
	}
	mean, err := stats.Mean(returns)
	if err != nil {
		return math.NaN(), err
	}
	sd, err := stats.StandardDeviationSample(returns)
	if err != nil {
		return math.NaN(), err
	}
	if sd == 0 {
		return math.NaN(), fmt.Errorf("standard deviation is zero: %w", ErrUndefined)
	}
	return (mean - riskFree) / sd, nil
}

// Alpha returns the intercept of the regression of returns on benchmark,
// rounded to 2 decimal places. A nil r uses OLS.
func Alpha(r Regressor, returns, benchmark []float64) (float64, error) {
	if err := checkAligned(returns, benchmark); err != nil {
		return math.NaN(), err
	}
	// A constant regressor cannot be told apart from the intercept.
	if variance, err := stats.SampleVariance(benchmark); err != nil || variance == 0 {
		return math.NaN(), fmt.Errorf("benchmark variance is zero: %w", ErrUndefined)
	}
	if r == nil {
		r = OLS{}
	}
	x := make([][]float64, len(benchmark))
	for i, b := range benchmark {
		x[i] = []float64{1, b} // intercept column first
	}
	coef, err := r.Fit(returns, x)
	if err != nil {
		return math.NaN(), err
	}
	if len(coef) == 0 {
		return math.NaN(), fmt.Errorf("regression returned no coefficient: %w", ErrUndefined)
	}
	return round2(coef[0]), nil
}

func checkAligned(returns, benchmark []float64) error {
	if len(returns) != len(benchmark) {
		return fmt.Errorf("series are not aligned: %d returns for %d benchmark returns: %w", len(returns), len(benchmark), ErrInvalidInput)
	}
	if len(returns) < 2 {
		return fmt.Errorf("need 2 overlapping returns, got %d: %w", len(returns), ErrInsufficientHistory)
	}
	return nil
}

func round2(x float64) float64 { return math.Round(x*100) / 100 }

// Regressor fits a linear model y = x·coef.
type Regressor interface {
	// Fit returns the coefficients, one per column of x. Rows of x have the
	// same length, one row per observation in y.
	Fit(y []float64, x [][]float64) ([]float64, error)
}

// OLS is an ordinary least squares Regressor.
type OLS struct{}

// Fit solves the least squares problem min ‖x·coef - y‖.
func (OLS) Fit(y []float64, x [][]float64) ([]float64, error) {
	if len(x) == 0 || len(x) != len(y) {
		return nil, fmt.Errorf("%d observations for %d responses: %w", len(x), len(y), ErrInvalidInput)
	}
	cols := len(x[0])
	if cols == 0 || len(x) < cols {
		return nil, fmt.Errorf("%d observations cannot fit %d coefficients: %w", len(x), cols, ErrInsufficientHistory)
	}
	data := make([]float64, 0, len(x)*cols)
	for _, row := range x {
		if len(row) != cols {
			return nil, fmt.Errorf("ragged design matrix: %w", ErrInvalidInput)
		}
		data = append(data, row...)
	}

	a := mat.NewDense(len(x), cols, data)
	b := mat.NewVecDense(len(y), append([]float64(nil), y...))
	var coef mat.VecDense
	if err := coef.SolveVec(a, b); err != nil {
		var cond mat.Condition
		if errors.As(err, &cond) {
			return nil, fmt.Errorf("regression is ill-conditioned (%v): %w", err, ErrUndefined)
		}
		return nil, err
	}
	res := make([]float64, cols)
	for i := range res {
		res[i] = coef.AtVec(i)
	}
	return res, nil
}
