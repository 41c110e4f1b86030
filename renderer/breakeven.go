package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/stockbook"
	"github.com/etnz/stockbook/warrant"
	md "github.com/nao1215/markdown"
)

// BreakEvenMarkdown renders the loss scenario and the break-even warrant price
// of a warrant.Result, amounts in currency.
func BreakEvenMarkdown(r warrant.Result, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Warrant Break-Even")
	doc.PlainTextf("A warrant must be resold at least **%s** for the position to break even after a maximal price drop.",
		stockbook.M(r.Price, currency))
	doc.LF()

	doc.Table(md.TableSet{
		Header:    []string{"Scenario", "Value"},
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Rows: [][]string{
			{"Stock price", stockbook.M(r.StockPrice, currency).String()},
			{"Board", fmt.Sprint(r.Board)},
			{"Conversion", fmt.Sprintf("%d warrants for %d shares", r.WarrantUnits, r.StockUnits)},
			{"Price after loss", stockbook.M(r.LossPrice, currency).String()},
			{"Stock value", stockbook.M(r.BaseStock, currency).String()},
			{"Value after loss", stockbook.M(r.BaseLoss, currency).String()},
			{"Warrant lots", r.WarrantLots.String()},
			{"Break-even price", stockbook.M(r.Price, currency).String()},
			{"Result at break-even", stockbook.PercentOf(r.Ratio.InexactFloat64()).SignedString()},
		},
	})
	return doc.String()
}
