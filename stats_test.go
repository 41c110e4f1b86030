package stockbook

import (
	"errors"
	"math"
	"testing"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestVolatility(t *testing.T) {
	got, err := Volatility([]float64{0.01, -0.01, 0.02, 0})
	if err != nil {
		t.Fatalf("Volatility() unexpected error: %v", err)
	}
	// sample variance is 5e-4/3, annualized over 252 days.
	if want := math.Sqrt(5e-4 / 3 * 252); !approx(got, want) {
		t.Errorf("Volatility() = %v, want %v", got, want)
	}

	for _, returns := range [][]float64{nil, {0.01}} {
		if _, err := Volatility(returns); !errors.Is(err, ErrInsufficientHistory) {
			t.Errorf("Volatility(%v) error = %v, want %v", returns, err, ErrInsufficientHistory)
		}
	}

	got, err = Volatility([]float64{0.125, 0.125, 0.125})
	if err != nil || got != 0 {
		t.Errorf("Volatility(constant) = %v, %v, want 0", got, err)
	}
}

func TestBeta(t *testing.T) {
	benchmark := []float64{0.01, -0.02, 0.015, 0.005, -0.01}
	tests := []struct {
		name    string
		returns []float64
		want    float64
	}{
		{"same", benchmark, 1},
		{"leveraged", scale(benchmark, 2, 0), 2},
		{"inverse", scale(benchmark, -0.5, 0.001), -0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Beta(tt.returns, benchmark)
			if err != nil {
				t.Fatalf("Beta() unexpected error: %v", err)
			}
			if !approx(got, tt.want) {
				t.Errorf("Beta() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBeta_Errors(t *testing.T) {
	if _, err := Beta([]float64{0.01, 0.02}, []float64{0.125, 0.125}); !errors.Is(err, ErrUndefined) {
		t.Errorf("Beta(flat benchmark) error = %v, want %v", err, ErrUndefined)
	}
	if _, err := Beta([]float64{0.01}, []float64{0.02}); !errors.Is(err, ErrInsufficientHistory) {
		t.Errorf("Beta(1 observation) error = %v, want %v", err, ErrInsufficientHistory)
	}
	if _, err := Beta([]float64{0.01, 0.02, 0.03}, []float64{0.02, 0.01}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Beta(unaligned) error = %v, want %v", err, ErrInvalidInput)
	}
}

func TestAlpha(t *testing.T) {
	benchmark := []float64{0.01, -0.02, 0.015, 0.005, -0.01}
	tests := []struct {
		name    string
		returns []float64
		want    float64
	}{
		{"no intercept", scale(benchmark, 2, 0), 0},
		{"intercept", scale(benchmark, 1.5, 0.5), 0.5},
		{"rounded", scale(benchmark, 1, 0.123), 0.12},
		{"negative", scale(benchmark, 0.3, -0.257), -0.26},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Alpha(nil, tt.returns, benchmark)
			if err != nil {
				t.Fatalf("Alpha() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Alpha() = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := Alpha(nil, []float64{0.01, 0.02}, []float64{0.125, 0.125}); !errors.Is(err, ErrUndefined) {
		t.Errorf("Alpha(flat benchmark) error = %v, want %v", err, ErrUndefined)
	}
}

// regressorFunc adapts a function to a Regressor.
type regressorFunc func(y []float64, x [][]float64) ([]float64, error)

func (f regressorFunc) Fit(y []float64, x [][]float64) ([]float64, error) { return f(y, x) }

func TestAlpha_Regressor(t *testing.T) {
	var rows [][]float64
	r := regressorFunc(func(y []float64, x [][]float64) ([]float64, error) {
		rows = x
		return []float64{0.987, 1}, nil
	})
	got, err := Alpha(r, []float64{0.1, 0.2, 0.3}, []float64{0.4, 0.5, 0.6})
	if err != nil {
		t.Fatal(err)
	}
	if got != 0.99 {
		t.Errorf("Alpha() = %v, want intercept 0.99", got)
	}
	for i, row := range rows {
		if len(row) != 2 || row[0] != 1 {
			t.Errorf("design row %d = %v, want an intercept column first", i, row)
		}
	}
}

func TestOLS_Fit(t *testing.T) {
	// y = 3 + 2x exactly.
	x := [][]float64{{1, 0}, {1, 1}, {1, 2}, {1, 3}}
	y := []float64{3, 5, 7, 9}
	coef, err := OLS{}.Fit(y, x)
	if err != nil {
		t.Fatalf("Fit() unexpected error: %v", err)
	}
	if len(coef) != 2 || !approx(coef[0], 3) || !approx(coef[1], 2) {
		t.Errorf("Fit() = %v, want [3 2]", coef)
	}

	if _, err := (OLS{}).Fit([]float64{1}, [][]float64{{1, 0}}); !errors.Is(err, ErrInsufficientHistory) {
		t.Errorf("Fit(underdetermined) error = %v, want %v", err, ErrInsufficientHistory)
	}
	if _, err := (OLS{}).Fit([]float64{1, 2}, [][]float64{{1, 0}}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Fit(mismatch) error = %v, want %v", err, ErrInvalidInput)
	}
}

func TestSharpe(t *testing.T) {
	returns := []float64{0.01, -0.01, 0.02, 0}
	sd := math.Sqrt(5e-4 / 3)
	tests := []struct {
		name     string
		riskFree float64
		want     float64
	}{
		{"no risk free", 0, 0.005 / sd},
		{"risk free", 0.001, 0.004 / sd},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Sharpe(returns, tt.riskFree)
			if err != nil {
				t.Fatalf("Sharpe() unexpected error: %v", err)
			}
			if !approx(got, tt.want) {
				t.Errorf("Sharpe() = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := Sharpe([]float64{0.125, 0.125, 0.125}, 0); !errors.Is(err, ErrUndefined) {
		t.Errorf("Sharpe(constant) error = %v, want %v", err, ErrUndefined)
	}
	if _, err := Sharpe([]float64{0.01}, 0); !errors.Is(err, ErrInsufficientHistory) {
		t.Errorf("Sharpe(1 observation) error = %v, want %v", err, ErrInsufficientHistory)
	}
}

// scale returns a·x+b for each x.
func scale(xs []float64, a, b float64) []float64 {
	res := make([]float64, len(xs))
	for i, x := range xs {
		res[i] = a*x + b
	}
	return res
}
