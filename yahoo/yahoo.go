// Package yahoo fetches market data from the Yahoo Finance chart API.
package yahoo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/stockbook"
	"github.com/etnz/stockbook/date"
	"github.com/etnz/stockbook/internal/httpx"
	"github.com/shopspring/decimal"
)

const (
	// DefaultBaseURL is the Yahoo Finance chart API.
	DefaultBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart/"
	// DefaultSuffix is the Yahoo suffix of the Indonesia Stock Exchange.
	DefaultSuffix = ".JK"
	// Benchmark is the Jakarta Composite Index.
	Benchmark = "^JKSE"
)

// Provider implements stockbook.MarketData.
type Provider struct {
	BaseURL string
	Suffix  string // appended to plain symbols
	client  *httpx.Client
}

// New returns a Provider for the Indonesia Stock Exchange.
func New(opts httpx.Options) *Provider {
	return &Provider{
		BaseURL: DefaultBaseURL,
		Suffix:  DefaultSuffix,
		client:  httpx.New("yahoo", opts),
	}
}

// Ticker returns the Yahoo ticker of symbol.
//
// Indices (^JKSE) and symbols already qualified by an exchange (BBCA.JK) are
// left untouched.
func (p *Provider) Ticker(symbol string) string {
	if strings.HasPrefix(symbol, "^") || strings.Contains(symbol, ".") {
		return symbol
	}
	return symbol + p.Suffix
}

func (p *Provider) fail(symbol string, err error) error {
	switch {
	case errors.Is(err, stockbook.ErrSymbolNotFound), errors.Is(err, stockbook.ErrEmptySeries):
	case httpx.IsNotFound(err):
		err = fmt.Errorf("%w: %v", stockbook.ErrSymbolNotFound, err)
	default:
		err = fmt.Errorf("%w: %v", stockbook.ErrNetwork, err)
	}
	return &stockbook.ProviderError{Provider: "yahoo", Symbol: symbol, Err: err}
}

func (p *Provider) chart(symbol string, query url.Values) string {
	return p.BaseURL + url.PathEscape(p.Ticker(symbol)) + "?" + query.Encode()
}

// Latest returns the regular market price of symbol.
func (p *Provider) Latest(ctx context.Context, symbol string) (stockbook.Quote, error) {
	addr := p.chart(symbol, url.Values{"range": {"5d"}, "interval": {"1d"}})
	var jobj any
	if err := p.client.GetJSON(ctx, addr, &jobj); err != nil {
		return stockbook.Quote{}, p.fail(symbol, err)
	}
	if _, err := jsonpath.Get("$.chart.result[0]", jobj); err != nil {
		return stockbook.Quote{}, p.fail(symbol, fmt.Errorf("%w: no chart in response", stockbook.ErrSymbolNotFound))
	}

	price, err := number("$.chart.result[0].meta.regularMarketPrice", jobj)
	if err != nil {
		return stockbook.Quote{}, p.fail(symbol, fmt.Errorf("%w: %v", stockbook.ErrEmptySeries, err))
	}
	at, err := number("$.chart.result[0].meta.regularMarketTime", jobj)
	if err != nil {
		return stockbook.Quote{}, p.fail(symbol, fmt.Errorf("%w: %v", stockbook.ErrEmptySeries, err))
	}
	offset, _ := number("$.chart.result[0].meta.gmtoffset", jobj) // missing is UTC
	return stockbook.Quote{
		Symbol: symbol,
		Date:   day(int64(at), int64(offset)),
		Price:  decimal.NewFromFloat(price),
	}, nil
}

// number evaluates path on jobj and returns it as a float.
func number(path string, jobj any) (float64, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return math.NaN(), fmt.Errorf("error parsing %q: %w", path, err)
	}
	// jsonpath may return a list of 1 answer, keep the first one.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return math.NaN(), fmt.Errorf("error parsing %q: not a number %v", path, jval)
	}
	return val, nil
}

// day returns the exchange's calendar day of a unix time.
func day(unix, gmtoffset int64) date.Date {
	return date.FromTime(time.Unix(unix+gmtoffset, 0).UTC())
}

// chartResponse is the part of the chart API response used for history.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				GmtOffset int64 `json:"gmtoffset"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
				AdjClose []struct {
					AdjClose []*float64 `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// History returns the daily closing prices of symbol, adjusted for splits and
// dividends. Missing closes are NaN.
func (p *Provider) History(ctx context.Context, symbol string, r date.Range) (*date.History[float64], error) {
	addr := p.chart(symbol, url.Values{
		"period1":  {fmt.Sprint(r.From.Unix())},
		"period2":  {fmt.Sprint(r.To.Add(1).Unix())},
		"interval": {"1d"},
		"events":   {"div,splits"},
	})
	var resp chartResponse
	if err := p.client.GetJSON(ctx, addr, &resp); err != nil {
		return nil, p.fail(symbol, err)
	}
	if e := resp.Chart.Error; e != nil {
		return nil, p.fail(symbol, fmt.Errorf("%w: %s", stockbook.ErrSymbolNotFound, e.Description))
	}
	if len(resp.Chart.Result) == 0 {
		return nil, p.fail(symbol, fmt.Errorf("%w: no chart in response", stockbook.ErrSymbolNotFound))
	}
	res := resp.Chart.Result[0]

	var closes []*float64
	if adj := res.Indicators.AdjClose; len(adj) > 0 {
		closes = adj[0].AdjClose
	} else if q := res.Indicators.Quote; len(q) > 0 {
		closes = q[0].Close
	}

	h := new(date.History[float64])
	for i, ts := range res.Timestamp {
		price := math.NaN()
		if i < len(closes) && closes[i] != nil {
			price = *closes[i]
		}
		h.Append(day(ts, res.Meta.GmtOffset), price)
	}
	h = h.Between(r)
	if h.Len() == 0 {
		return nil, p.fail(symbol, fmt.Errorf("%w: no price in %s", stockbook.ErrEmptySeries, r))
	}
	return h, nil
}
