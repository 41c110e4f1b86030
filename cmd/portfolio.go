package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stockbook"
	"github.com/etnz/stockbook/renderer"
	"github.com/google/subcommands"
)

// --- Add Command ---

type addCmd struct {
	symbol string
	lots   int64
	price  string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "buy lots of a stock to open or add to a position" }
func (*addCmd) Usage() string {
	return `stocks add -s <symbol> -q <lots> -p <price>

  Buys lots of a stock at a price per share. The average price of the position
  becomes the weighted average of the held and bought lots.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Stock symbol (e.g. BBCA)")
	f.Int64Var(&c.lots, "q", 0, "Number of lots (1 lot = 100 shares)")
	f.StringVar(&c.price, "p", "", "Price per share")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" || c.lots <= 0 || c.price == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	price, err := parsePrice(c.price)
	if err != nil {
		return fail("parsing price", err)
	}

	p, err := openPortfolio()
	if err != nil {
		return fail("loading portfolio", err)
	}
	pos, err := p.Add(c.symbol, c.lots, price)
	if err != nil {
		return fail("adding stock", err)
	}
	if status := savePortfolio(p); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Printf("%s added. Total: %d units. Weighted Average Price: %s\n", pos.Symbol, pos.Units(), pos.AverageCost.StringFixed(2))
	return subcommands.ExitSuccess
}

// --- Remove Command ---

type removeCmd struct {
	symbol string
	lots   int64
}

func (*removeCmd) Name() string     { return "remove" }
func (*removeCmd) Synopsis() string { return "sell lots of a held stock" }
func (*removeCmd) Usage() string {
	return `stocks remove -s <symbol> -q <lots>

  Sells lots of a held stock. The average price of the position is unchanged.
  A position sold entirely is kept with 0 lots until deleted.
`
}

func (c *removeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Stock symbol")
	f.Int64Var(&c.lots, "q", 0, "Number of lots to sell")
}

func (c *removeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" || c.lots <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	p, err := openPortfolio()
	if err != nil {
		return fail("loading portfolio", err)
	}
	pos, err := p.Remove(c.symbol, c.lots)
	if err != nil {
		return fail("removing stock", err)
	}
	if status := savePortfolio(p); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Printf("%s removed. Remaining: %d units.\n", pos.Symbol, pos.Units())
	return subcommands.ExitSuccess
}

// --- Update Command ---

type updateCmd struct {
	symbol string
	lots   int64
	price  string
}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "correct the lots and average price of a position" }
func (*updateCmd) Usage() string {
	return `stocks update -s <symbol> -q <lots> -p <price>

  Overwrites both the number of lots and the average price of a held stock.
  It is a correction, not a trade.
`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Stock symbol")
	f.Int64Var(&c.lots, "q", -1, "New number of lots")
	f.StringVar(&c.price, "p", "", "New average price per share")
}

func (c *updateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" || c.lots < 0 || c.price == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	price, err := parsePrice(c.price)
	if err != nil {
		return fail("parsing price", err)
	}
	p, err := openPortfolio()
	if err != nil {
		return fail("loading portfolio", err)
	}
	pos, err := p.Update(c.symbol, c.lots, price)
	if err != nil {
		return fail("updating stock", err)
	}
	if status := savePortfolio(p); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Printf("%s updated.\n", pos)
	return subcommands.ExitSuccess
}

// --- Delete Command ---

type deleteCmd struct {
	symbol string
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "remove a position from the portfolio" }
func (*deleteCmd) Usage() string {
	return `stocks delete -s <symbol>

  Removes a stock from the portfolio, whatever the number of lots held.
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Stock symbol")
}

func (c *deleteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	p, err := openPortfolio()
	if err != nil {
		return fail("loading portfolio", err)
	}
	if err := p.Delete(c.symbol); err != nil {
		return fail("deleting stock", err)
	}
	if status := savePortfolio(p); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Printf("%s deleted.\n", stockbook.NormalizeSymbol(c.symbol))
	return subcommands.ExitSuccess
}

// --- List Command ---

type listCmd struct {
	currency string
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "display the positions of the portfolio" }
func (*listCmd) Usage() string {
	return `stocks list [-c <currency>]

  Displays the lots, shares, average price and cost of every position.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "c", "", "Currency of the prices, the configured currency by default")
}

func (c *listCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	p, err := openPortfolio()
	if err != nil {
		return fail("loading portfolio", err)
	}
	printMarkdown(renderer.PortfolioMarkdown(p, or(c.currency, cfg.Currency)))
	return subcommands.ExitSuccess
}
