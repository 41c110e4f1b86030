package stockbook

import (
	"fmt"
	"math"
)

// Percent is a value in percentage points: 12.5 reads "12.50%".
type Percent float64

// PercentOf converts a fraction into a Percent: 0.125 is 12.5%.
func PercentOf(fraction float64) Percent { return Percent(fraction * 100) }

// Equal compares percents up to a ten thousandth of a point.
func (p Percent) Equal(q Percent) bool {
	return math.Abs(float64(p-q)) < 1e-4
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}

// SignedString always prints the sign, and "-" for zero.
func (p Percent) SignedString() string {
	s := fmt.Sprintf("%+.2f%%", float64(p))
	if s == "+0.00%" || s == "-0.00%" {
		return "-"
	}
	return s
}
