package eodhd

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/etnz/stockbook"
	"github.com/etnz/stockbook/date"
	"github.com/shopspring/decimal"
)

// This file contains functions to access the EODHD API.

func (p *Provider) addr(endpoint, symbol string, query url.Values) string {
	if query == nil {
		query = url.Values{}
	}
	query.Set("fmt", "json")
	query.Set("api_token", p.apiKey)
	return fmt.Sprintf("%s/%s/%s?%s", p.BaseURL, endpoint, url.PathEscape(p.Ticker(symbol)), query.Encode())
}

// History returns the daily close prices of symbol, adjusted for splits and dividends.
func (p *Provider) History(ctx context.Context, symbol string, r date.Range) (*date.History[float64], error) {
	// https://eodhd.com/api/eod/BBCA.JK?api_token=demo&fmt=json&from=2024-02-01&to=2024-02-13
	// [
	//
	//	{
	//		"date": "2024-02-13",
	//		"open": 9500,
	//		"high": 9600,
	//		"low": 9475,
	//		"close": 9575,
	//		"adjusted_close": 9412.0713,
	//		"volume": 46530500
	//	  },
	//
	// bounds are included in the response, and time is limited to 1 year with free subscription.
	addr := p.addr("eod", symbol, url.Values{"from": {r.From.String()}, "to": {r.To.String()}})
	type Info struct {
		Date  date.Date `json:"date"`
		Close float64   `json:"adjusted_close"`
	}

	// that's the payload
	content := make([]Info, 0)
	if err := p.client.GetJSON(ctx, addr, &content); err != nil {
		return nil, p.fail(symbol, err)
	}
	if len(content) == 0 {
		return nil, p.fail(symbol, fmt.Errorf("%w: no price in %s", stockbook.ErrEmptySeries, r))
	}

	h := new(date.History[float64])
	for _, info := range content {
		h.Append(info.Date, info.Close)
	}
	return h, nil
}

// Latest returns the live (delayed) price of symbol.
func (p *Provider) Latest(ctx context.Context, symbol string) (stockbook.Quote, error) {
	// https://eodhd.com/api/real-time/BBCA.JK?api_token=demo&fmt=json
	// {
	//	"code": "BBCA.JK",
	//	"timestamp": 1715925000,
	//	"gmtoffset": 0,
	//	"open": 9150,
	//	"close": 9175,
	//	"previousClose": 9100,
	//	...
	// }
	//
	// Unknown tickers come back with "NA" values.
	addr := p.addr("real-time", symbol, nil)
	var info struct {
		Code      string `json:"code"`
		Timestamp any    `json:"timestamp"`
		GmtOffset any    `json:"gmtoffset"`
		Close     any    `json:"close"`
	}
	if err := p.client.GetJSON(ctx, addr, &info); err != nil {
		return stockbook.Quote{}, p.fail(symbol, err)
	}
	ts, ok := info.Timestamp.(float64)
	if !ok {
		return stockbook.Quote{}, p.fail(symbol, fmt.Errorf("%w: no real-time data for %s", stockbook.ErrSymbolNotFound, p.Ticker(symbol)))
	}
	price, ok := info.Close.(float64)
	if !ok {
		return stockbook.Quote{}, p.fail(symbol, fmt.Errorf("%w: no close price for %s", stockbook.ErrEmptySeries, p.Ticker(symbol)))
	}
	offset, _ := info.GmtOffset.(float64)
	return stockbook.Quote{
		Symbol: symbol,
		Date:   date.FromTime(time.Unix(int64(ts+offset), 0).UTC()),
		Price:  decimal.NewFromFloat(price),
	}, nil
}
