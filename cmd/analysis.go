package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/etnz/stockbook"
	"github.com/etnz/stockbook/date"
	"github.com/etnz/stockbook/renderer"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

// --- Value Command ---

type valueCmd struct{}

func (*valueCmd) Name() string     { return "value" }
func (*valueCmd) Synopsis() string { return "value the portfolio at the latest market prices" }
func (*valueCmd) Usage() string {
	return `stocks value

  Fetches the latest price of every position and displays its market value
  and profit or loss, then the overall performance of the portfolio.
  Positions whose price cannot be fetched are listed separately.
`
}

func (c *valueCmd) SetFlags(f *flag.FlagSet) {}

func (c *valueCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	market, _, err := cfg.Market()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	p, err := openPortfolio()
	if err != nil {
		return fail("loading portfolio", err)
	}

	v := stockbook.Valuator{Market: market, Currency: cfg.Currency, Concurrency: cfg.Concurrency}
	report, err := v.Value(ctx, p)
	if err != nil {
		return fail("valuing portfolio", err)
	}
	for _, failure := range report.Failures {
		log.Warn().Str("symbol", failure.Symbol).Err(failure.Err).Msg("could not value position")
	}
	printMarkdown(renderer.ValuationMarkdown(report))
	return subcommands.ExitSuccess
}

// --- Risk Command ---

type riskCmd struct {
	benchmark string
	lookback  int
	riskFree  optionalFloat
	date      string
}

// optionalFloat is a float64 flag that records whether it was set.
type optionalFloat struct {
	value float64
	set   bool
}

func (o *optionalFloat) String() string {
	if o == nil || !o.set {
		return ""
	}
	return strconv.FormatFloat(o.value, 'g', -1, 64)
}

func (o *optionalFloat) Set(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	o.value, o.set = v, true
	return nil
}

func (*riskCmd) Name() string     { return "risk" }
func (*riskCmd) Synopsis() string { return "compute volatility, beta, alpha and Sharpe ratio of stocks" }
func (*riskCmd) Usage() string {
	return `stocks risk [-b <benchmark>] [-n <days>] [-rf <rate>] [-d <date>] [<symbol>...]

  Computes the risk metrics of the given stocks, or of every held stock, from
  their daily returns over the last trading days. Beta and alpha are measured
  against the benchmark index.
`
}

func (c *riskCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.benchmark, "b", "", "Benchmark symbol, the configured one by default")
	f.IntVar(&c.lookback, "n", 0, "Number of trading days, the configured lookback by default")
	f.Var(&c.riskFree, "rf", "Risk free rate per trading day, the configured one by default")
	f.StringVar(&c.date, "d", date.Today().String(), "Last day of the analysis")
}

func (c *riskCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	today, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	cfg, err := config()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	market, benchmark, err := cfg.Market()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var symbols []string
	for _, arg := range f.Args() {
		symbols = append(symbols, stockbook.NormalizeSymbol(arg))
	}
	if len(symbols) == 0 {
		p, err := openPortfolio()
		if err != nil {
			return fail("loading portfolio", err)
		}
		symbols = p.Symbols()
	}
	if len(symbols) == 0 {
		fmt.Fprintf(os.Stderr, "Warning: no stock to analyze.\n")
		return subcommands.ExitSuccess
	}

	e := c.engine(cfg, market, benchmark)
	e.Today = today

	report, err := e.Analyze(ctx, symbols...)
	if err != nil {
		return fail("analyzing risk", err)
	}
	if report.BenchmarkErr != nil {
		log.Warn().Str("benchmark", report.Benchmark).Err(report.BenchmarkErr).Msg("alpha and beta not available")
	}
	for _, failure := range report.Failures {
		log.Warn().Str("symbol", failure.Symbol).Err(failure.Err).Msg("could not compute risk")
	}
	printMarkdown(renderer.RiskMarkdown(report))
	return subcommands.ExitSuccess
}

// engine configures a RiskEngine from cfg, overridden by the flags.
func (c *riskCmd) engine(cfg Config, market stockbook.MarketData, benchmark string) stockbook.RiskEngine {
	e := stockbook.RiskEngine{
		Market:       market,
		Benchmark:    or(c.benchmark, benchmark),
		Lookback:     cfg.LookbackDays,
		RiskFreeRate: cfg.RiskFreeRate,
		Concurrency:  cfg.Concurrency,
	}
	if c.lookback > 0 {
		e.Lookback = c.lookback
	}
	if c.riskFree.set {
		e.RiskFreeRate = c.riskFree.value
	}
	return e
}
