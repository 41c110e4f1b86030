package renderer

import (
	"fmt"
	"math"

	"github.com/etnz/stockbook"
	md "github.com/nao1215/markdown"
)

// notAvailable replaces statistics that could not be computed.
const notAvailable = "n/a"

// ratio formats a statistic with 2 decimals, or n/a.
func ratio(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return notAvailable
	}
	return fmt.Sprintf("%.2f", v)
}

// percent formats a fraction as a percentage, or n/a.
func percent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return notAvailable
	}
	return stockbook.PercentOf(v).String()
}

// failures appends a section listing errs. Nothing is written when errs is empty.
func failures(doc *md.Markdown, title string, errs []stockbook.SymbolError) {
	if len(errs) == 0 {
		return
	}
	doc.H2(title)
	items := make([]string, 0, len(errs))
	for _, err := range errs {
		items = append(items, fmt.Sprintf("%s: %v", err.Symbol, err.Err))
	}
	doc.BulletList(items...)
}
