package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/stockbook"
	md "github.com/nao1215/markdown"
)

// ValuationMarkdown renders the market value and profit or loss of every
// priced position, followed by the overall performance.
func ValuationMarkdown(r *stockbook.ValuationReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Portfolio Valuation")
	overall, ok := r.Overall()
	if !ok {
		doc.PlainText("No positions.")
		return doc.String()
	}
	if !r.LastUpdated.IsZero() {
		doc.PlainTextf("Last updated: %s", r.LastUpdated)
		doc.LF()
	}

	if len(r.Valuations) > 0 {
		rows := make([][]string, 0, len(r.Valuations))
		for _, v := range r.Valuations {
			rows = append(rows, []string{
				v.Symbol,
				fmt.Sprint(v.Quantity),
				stockbook.M(v.AverageCost, r.Currency).String(),
				v.MarketPrice.String(),
				v.Cost.String(),
				v.MarketValue.String(),
				v.ProfitLoss.SignedString(),
				v.PercentChange.SignedString(),
			})
		}
		doc.Table(md.TableSet{
			Header:    []string{"Symbol", "Lots", "Average Price", "Market Price", "Cost", "Market Value", "Profit/Loss", "Change"},
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight},
			Rows:      rows,
		})
	}

	doc.H2("Overall")
	doc.Table(md.TableSet{
		Header:    []string{"Investment", "Market Value", "Profit/Loss", "Change"},
		Alignment: []md.TableAlignment{md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight},
		Rows: [][]string{{
			overall.Investment.String(),
			overall.MarketValue.String(),
			overall.ProfitLoss().SignedString(),
			overall.Percent().SignedString(),
		}},
	})

	failures(doc, "Unpriced Positions", r.Failures)
	return doc.String()
}
