package stockbook

import (
	"math"

	"github.com/etnz/stockbook/date"
)

// ReturnSeries is a series of simple daily returns. Returns[i] is the return
// realized on Dates[i] relative to the previous valid price.
type ReturnSeries struct {
	Dates   []date.Date
	Returns []float64
}

// Len returns the number of observations.
func (s ReturnSeries) Len() int { return len(s.Returns) }

// validPrice reports whether p can be used to compute a return.
func validPrice(p float64) bool {
	return !math.IsNaN(p) && !math.IsInf(p, 0) && p > 0
}

// Returns computes r_t = p_t/p_{t-1} - 1 over consecutive prices of h.
//
// A missing price (NaN, infinite or not positive) is a gap: both returns
// adjacent to it are dropped, it is never bridged.
func Returns(h *date.History[float64]) ReturnSeries {
	var s ReturnSeries
	if h == nil {
		return s
	}
	prev, hasPrev := 0.0, false
	for day, p := range h.Values() {
		if !validPrice(p) {
			hasPrev = false
			continue
		}
		if hasPrev {
			s.Dates = append(s.Dates, day)
			s.Returns = append(s.Returns, p/prev-1)
		}
		prev, hasPrev = p, true
	}
	return s
}

// Align keeps only the observations of a and b that share the same date.
//
// Both series must be in chronological order. The two results have the same
// length and their i-th observations are on the same day.
func Align(a, b ReturnSeries) (ReturnSeries, ReturnSeries) {
	var ra, rb ReturnSeries
	i, j := 0, 0
	for i < len(a.Dates) && j < len(b.Dates) {
		switch {
		case a.Dates[i].Before(b.Dates[j]):
			i++
		case b.Dates[j].Before(a.Dates[i]):
			j++
		default:
			ra.Dates = append(ra.Dates, a.Dates[i])
			ra.Returns = append(ra.Returns, a.Returns[i])
			rb.Dates = append(rb.Dates, b.Dates[j])
			rb.Returns = append(rb.Returns, b.Returns[j])
			i++
			j++
		}
	}
	return ra, rb
}
