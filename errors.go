package stockbook

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a symbol is not held in the portfolio.
	ErrNotFound = errors.New("symbol not found")
	// ErrInsufficientQuantity is returned when removing more lots than held.
	ErrInsufficientQuantity = errors.New("insufficient quantity")
	// ErrInvalidInput is returned for quantities or prices out of their domain.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInsufficientHistory is returned when a statistic lacks observations.
	ErrInsufficientHistory = errors.New("insufficient history")
	// ErrUndefined is returned when a statistic would divide by zero.
	ErrUndefined = errors.New("undefined statistic")
	// ErrCorruptLedger is returned when a persisted portfolio cannot be decoded.
	ErrCorruptLedger = errors.New("corrupt portfolio file")
)

// Market data failures.
var (
	ErrSymbolNotFound = errors.New("unknown symbol")
	ErrEmptySeries    = errors.New("empty price series")
	ErrNetwork        = errors.New("network error")
)

// ProviderError is the failure of a market data provider for a given symbol.
//
// Err usually wraps one of ErrSymbolNotFound, ErrEmptySeries or ErrNetwork.
type ProviderError struct {
	Provider string
	Symbol   string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Symbol, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// SymbolError reports the failure of a computation for a single symbol inside a
// report that otherwise succeeded.
type SymbolError struct {
	Symbol string
	Err    error
}

func (e SymbolError) Error() string { return e.Symbol + ": " + e.Err.Error() }

func (e SymbolError) Unwrap() error { return e.Err }
