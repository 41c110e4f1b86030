package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/etnz/stockbook"
	"github.com/etnz/stockbook/eodhd"
	"github.com/etnz/stockbook/internal/httpx"
	"github.com/etnz/stockbook/yahoo"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Config holds the settings of the CLI, read from a YAML file.
type Config struct {
	Provider       string        `yaml:"provider"`        // yahoo or eodhd
	ExchangeSuffix string        `yaml:"exchange_suffix"` // yahoo suffix of plain symbols
	Benchmark      string        `yaml:"benchmark"`       // provider's index if empty
	Currency       string        `yaml:"currency"`
	LookbackDays   int           `yaml:"lookback_days"`
	RiskFreeRate   float64       `yaml:"risk_free_rate"` // per trading day
	Concurrency    int           `yaml:"concurrency"`
	RateLimit      float64       `yaml:"rate_limit"` // requests per second
	Timeout        time.Duration `yaml:"timeout"`
	EODHD          struct {
		APIKey   string `yaml:"api_key"`
		Exchange string `yaml:"exchange"`
	} `yaml:"eodhd"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Provider:       "yahoo",
		ExchangeSuffix: yahoo.DefaultSuffix,
		Currency:       "IDR",
		LookbackDays:   stockbook.TradingDays,
		Concurrency:    4,
		RateLimit:      5,
		Timeout:        10 * time.Second,
	}
}

// LoadConfig reads the configuration file. Settings missing from the file keep
// their default value, and a missing file gives the DefaultConfig.
//
// The EODHD API key falls back to the EODHD_API_KEY environment variable.
func LoadConfig(file string) (Config, error) {
	c := DefaultConfig()
	content, err := os.ReadFile(file)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Debug().Str("file", file).Msg("no configuration file, using defaults")
	case err != nil:
		return c, fmt.Errorf("could not read configuration %q: %w", file, err)
	default:
		if err := yaml.Unmarshal(content, &c); err != nil {
			return c, fmt.Errorf("could not decode configuration %q: %w", file, err)
		}
	}
	if c.EODHD.APIKey == "" {
		c.EODHD.APIKey = os.Getenv(eodhd.APIKeyEnv)
	}
	return c, c.validate()
}

func (c Config) validate() error {
	switch {
	case c.Provider != "yahoo" && c.Provider != "eodhd":
		return fmt.Errorf("unknown provider %q, want yahoo or eodhd", c.Provider)
	case c.Currency == "":
		return errors.New("empty currency")
	case c.LookbackDays < 2:
		return fmt.Errorf("lookback_days must be at least 2, got %d", c.LookbackDays)
	case c.Concurrency < 1:
		return fmt.Errorf("concurrency must be positive, got %d", c.Concurrency)
	case c.RateLimit <= 0:
		return fmt.Errorf("rate_limit must be positive, got %v", c.RateLimit)
	}
	return nil
}

// Market returns the configured market data provider and the symbol of its
// benchmark index.
func (c Config) Market() (stockbook.MarketData, string, error) {
	opts := httpx.Options{RateLimit: c.RateLimit, Timeout: c.Timeout}
	switch c.Provider {
	case "eodhd":
		if c.EODHD.APIKey == "" {
			return nil, "", fmt.Errorf("EODHD API key is not set. Use -eodhd-api-key flag, eodhd.api_key setting or %s environment variable", eodhd.APIKeyEnv)
		}
		p := eodhd.New(c.EODHD.APIKey, opts)
		if c.EODHD.Exchange != "" {
			p.Exchange = c.EODHD.Exchange
		}
		return p, or(c.Benchmark, eodhd.Benchmark), nil
	default:
		p := yahoo.New(opts)
		p.Suffix = c.ExchangeSuffix
		return p, or(c.Benchmark, yahoo.Benchmark), nil
	}
}

func or(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// config loads the configuration file selected by the global flags.
func config() (Config, error) {
	c, err := LoadConfig(*configFile)
	if err != nil {
		return c, err
	}
	if *eodhdAPIKey != "" {
		c.EODHD.APIKey = *eodhdAPIKey
	}
	return c, nil
}
