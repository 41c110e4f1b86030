package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/stockbook"
	md "github.com/nao1215/markdown"
)

// RiskMarkdown renders the risk metrics of a RiskReport. Statistics that could
// not be computed read "n/a".
func RiskMarkdown(r *stockbook.RiskReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Risk Metrics")
	doc.PlainTextf("Benchmark: %s, from %s to %s", r.Benchmark, r.Window.From, r.Window.To)
	doc.LF()
	if r.BenchmarkErr != nil {
		doc.Warningf("Alpha and Beta are not available: %v", r.BenchmarkErr)
		doc.LF()
	}

	if len(r.Metrics) == 0 {
		doc.PlainText("No metrics.")
	} else {
		rows := make([][]string, 0, len(r.Metrics))
		for _, m := range r.Metrics {
			rows = append(rows, []string{
				m.Symbol,
				fmt.Sprint(m.Observations),
				percent(m.Volatility),
				ratio(m.Beta),
				ratio(m.Alpha),
				ratio(m.Sharpe),
			})
		}
		doc.Table(md.TableSet{
			Header:    []string{"Symbol", "Days", "Volatility", "Beta", "Alpha", "Sharpe"},
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight},
			Rows:      rows,
		})
	}

	failures(doc, "Failures", r.Failures)
	return doc.String()
}
