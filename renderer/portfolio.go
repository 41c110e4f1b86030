package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/stockbook"
	md "github.com/nao1215/markdown"
)

// PortfolioMarkdown lists the positions of p, their average cost and cost in
// currency.
func PortfolioMarkdown(p *stockbook.Portfolio, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Portfolio")
	if p.Len() == 0 {
		doc.PlainText("No positions.")
		return doc.String()
	}

	total := stockbook.M(0, currency)
	rows := make([][]string, 0, p.Len())
	for pos := range p.Positions() {
		cost := stockbook.M(pos.Cost(), currency)
		total = total.Add(cost)
		rows = append(rows, []string{
			pos.Symbol,
			fmt.Sprint(pos.Quantity),
			fmt.Sprint(pos.Units()),
			stockbook.M(pos.AverageCost, currency).String(),
			cost.String(),
		})
	}
	rows = append(rows, []string{"**Total**", "", "", "", total.String()})

	doc.Table(md.TableSet{
		Header:    []string{"Symbol", "Lots", "Units", "Average Price", "Cost"},
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight},
		Rows:      rows,
	})
	return doc.String()
}
