// Package cmd implements the CLI application to manage a stock portfolio.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/stockbook"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// groups of subcommands, in the order of the help message.
var groups = []struct {
	name     string
	commands []subcommands.Command
}{
	{"portfolio", []subcommands.Command{&addCmd{}, &removeCmd{}, &updateCmd{}, &deleteCmd{}, &listCmd{}}},
	{"analysis", []subcommands.Command{&valueCmd{}, &riskCmd{}}},
	{"warrants", []subcommands.Command{&breakevenCmd{}}},
	{"help", []subcommands.Command{&topicCmd{}}},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, g := range groups {
		for _, cmd := range g.commands {
			c.Register(cmd, g.name)
		}
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var portfolioFile = flag.String("portfolio-file", "stock_data.json", "Path to the portfolio file (JSON format)")
var configFile = flag.String("config", "stocks.yaml", "Path to the configuration file (YAML format)")
var eodhdAPIKey = flag.String("eodhd-api-key", "", "EODHD API key. This flag takes precedence over the configuration file and the EODHD_API_KEY environment variable.")
var rawMarkdown = flag.Bool("markdown", false, "Print reports as raw markdown instead of rendering them for the terminal")

// openPortfolio loads the portfolio file.
//
// A corrupt file is reported and replaced by an empty portfolio, which is
// what the next save will write.
func openPortfolio() (*stockbook.Portfolio, error) {
	p, err := stockbook.LoadPortfolio(*portfolioFile)
	if errors.Is(err, stockbook.ErrCorruptLedger) {
		log.Warn().Err(err).Str("file", *portfolioFile).Msg("starting from an empty portfolio")
		return p, nil
	}
	return p, err
}

// savePortfolio writes p into the portfolio file.
func savePortfolio(p *stockbook.Portfolio) subcommands.ExitStatus {
	if err := stockbook.SavePortfolio(*portfolioFile, p); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// fail prints err and returns the matching exit status: invalid inputs are
// usage errors.
func fail(action string, err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error %s: %v\n", action, err)
	if errors.Is(err, stockbook.ErrInvalidInput) {
		return subcommands.ExitUsageError
	}
	return subcommands.ExitFailure
}

// parsePrice parses a non negative decimal price.
func parsePrice(s string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price %q: %w", s, stockbook.ErrInvalidInput)
	}
	if price.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative price %s: %w", s, stockbook.ErrInvalidInput)
	}
	return price, nil
}

// printMarkdown prints md to the terminal, rendered by glamour unless raw
// markdown was requested or rendering fails.
func printMarkdown(md string) {
	if !*rawMarkdown {
		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
		if err == nil {
			var out string
			if out, err = r.Render(md); err == nil {
				fmt.Print(out)
				return
			}
		}
		log.Debug().Err(err).Msg("could not render markdown")
	}
	fmt.Println(md)
}
