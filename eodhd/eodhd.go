// Package eodhd fetches market data from eodhd.com.
package eodhd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/stockbook"
	"github.com/etnz/stockbook/internal/httpx"
)

const (
	// DefaultBaseURL is the eodhd.com API.
	DefaultBaseURL = "https://eodhd.com/api"
	// DefaultExchange is eodhd's code of the Indonesia Stock Exchange.
	DefaultExchange = "JK"
	// Benchmark is the Jakarta Composite Index.
	Benchmark = "JKSE.INDX"
	// APIKeyEnv is the environment variable holding the api key.
	APIKeyEnv = "EODHD_API_KEY"
)

// Provider implements stockbook.MarketData.
type Provider struct {
	BaseURL  string
	Exchange string // eodhd exchange code of plain symbols
	apiKey   string
	client   *httpx.Client
}

// New returns a Provider for the Indonesia Stock Exchange.
func New(apiKey string, opts httpx.Options) *Provider {
	return &Provider{
		BaseURL:  DefaultBaseURL,
		Exchange: DefaultExchange,
		apiKey:   apiKey,
		client:   httpx.New("eodhd", opts),
	}
}

// Ticker returns the eodhd ticker of symbol, in the format "SYMBOL.EXCHANGECODE".
func (p *Provider) Ticker(symbol string) string {
	if strings.Contains(symbol, ".") {
		return symbol
	}
	return symbol + "." + p.Exchange
}

func (p *Provider) fail(symbol string, err error) error {
	switch {
	case errors.Is(err, stockbook.ErrSymbolNotFound), errors.Is(err, stockbook.ErrEmptySeries):
	case httpx.IsNotFound(err):
		err = fmt.Errorf("%w: %v", stockbook.ErrSymbolNotFound, err)
	default:
		err = fmt.Errorf("%w: %v", stockbook.ErrNetwork, err)
	}
	return &stockbook.ProviderError{Provider: "eodhd", Symbol: symbol, Err: err}
}
