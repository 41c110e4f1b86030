package stockbook

import (
	"context"
	"sync"

	"github.com/etnz/stockbook/date"
	"github.com/shopspring/decimal"
)

// IDR is a helper for test to create rupiah money from const
func IDR(v float64) Money { return M(v, "IDR") }

// dec is a helper for test to create decimals from const
func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// fakeMarket is an in-memory MarketData.
type fakeMarket struct {
	mu      sync.Mutex
	quotes  map[string]Quote
	history map[string]*date.History[float64]
	errs    map[string]error // failing symbols
	calls   map[string]int
}

func newFakeMarket() *fakeMarket {
	return &fakeMarket{
		quotes:  make(map[string]Quote),
		history: make(map[string]*date.History[float64]),
		errs:    make(map[string]error),
		calls:   make(map[string]int),
	}
}

func (m *fakeMarket) quote(symbol, day, price string) *fakeMarket {
	m.quotes[symbol] = Quote{Symbol: symbol, Date: date.MustParse(day), Price: dec(price)}
	return m
}

// prices sets the daily history of symbol, one price per day starting on day.
func (m *fakeMarket) prices(symbol, day string, prices ...float64) *fakeMarket {
	h := new(date.History[float64])
	d := date.MustParse(day)
	for i, p := range prices {
		h.Append(d.Add(i), p)
	}
	m.history[symbol] = h
	return m
}

func (m *fakeMarket) fail(symbol string, err error) *fakeMarket {
	m.errs[symbol] = err
	return m
}

func (m *fakeMarket) called(symbol string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[symbol]
}

func (m *fakeMarket) Latest(ctx context.Context, symbol string) (Quote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[symbol]++
	if err := m.errs[symbol]; err != nil {
		return Quote{}, err
	}
	q, ok := m.quotes[symbol]
	if !ok {
		return Quote{}, &ProviderError{Provider: "fake", Symbol: symbol, Err: ErrSymbolNotFound}
	}
	return q, nil
}

func (m *fakeMarket) History(ctx context.Context, symbol string, r date.Range) (*date.History[float64], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[symbol]++
	if err := m.errs[symbol]; err != nil {
		return nil, err
	}
	h, ok := m.history[symbol]
	if !ok {
		return nil, &ProviderError{Provider: "fake", Symbol: symbol, Err: ErrSymbolNotFound}
	}
	return h.Between(r), nil
}
