package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stockbook/renderer"
	"github.com/etnz/stockbook/warrant"
	"github.com/google/subcommands"
)

type breakevenCmd struct {
	price        string
	board        int
	warrantUnits int64
	stockUnits   int64
	currency     string
}

func (*breakevenCmd) Name() string { return "breakeven" }
func (*breakevenCmd) Synopsis() string {
	return "compute the warrant price that offsets a maximal stock price drop"
}
func (*breakevenCmd) Usage() string {
	return `stocks breakeven -p <price> [-b <board>] [-w <warrants>] [-u <shares>]

  Considers 10,000 lots of a stock bought at price, that receive w warrants for
  every u shares, and fall by the maximal daily loss allowed on their board.
  Prints the minimal warrant resale price that breaks even.

  The board selects the tier of the auto rejection rules: tier = board + 1.

Usage Examples:
# 1 warrant for 2 shares of a board 1 stock at 1000.
$ stocks breakeven -p 1000 -b 1 -w 1 -u 2
`
}

func (c *breakevenCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.price, "p", "", "Stock price")
	f.IntVar(&c.board, "b", 1, "Listing board: 0, 1 or 2")
	f.Int64Var(&c.warrantUnits, "w", 1, "Number of warrants received")
	f.Int64Var(&c.stockUnits, "u", 1, "For this number of shares")
	f.StringVar(&c.currency, "c", "IDR", "Currency of the prices")
}

func (c *breakevenCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.price == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	price, err := parsePrice(c.price)
	if err != nil {
		return fail("parsing price", err)
	}

	res, err := warrant.Solve(warrant.Input{
		StockPrice:   price,
		Board:        c.board,
		WarrantUnits: c.warrantUnits,
		StockUnits:   c.stockUnits,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing break-even price: %v\n", err)
		if errors.Is(err, warrant.ErrInvalidInput) || errors.Is(err, warrant.ErrUnsupportedBoard) {
			return subcommands.ExitUsageError
		}
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.BreakEvenMarkdown(res, c.currency))
	return subcommands.ExitSuccess
}
