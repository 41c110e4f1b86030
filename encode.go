package stockbook

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
)

// This file contains the persistence of a Portfolio as a single JSON object:
//
//	{
//	  "BBCA": {"quantity": 10, "price": 9150.5},
//	  "TLKM": {"quantity": 3, "price": 3800}
//	}
//
// Symbols are written in alphabetical order and positions always list
// "quantity" then "price", so that the file stays diff friendly.

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// record is the persisted form of a Position.
type record struct {
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

func (r record) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("quantity", r.Quantity)
	w.Append("price", r.Price)
	return w.MarshalJSON()
}

// EncodePortfolio writes the portfolio as an indented JSON object.
func EncodePortfolio(w io.Writer, p *Portfolio) error {
	records := make(map[string]record, p.Len())
	for pos := range p.Positions() {
		records[pos.Symbol] = record{Quantity: pos.Quantity, Price: pos.AverageCost}
	}
	// json sorts map keys.
	content, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode portfolio: %w", err)
	}
	content = append(content, '\n')
	_, err = w.Write(content)
	return err
}

// DecodePortfolio reads a portfolio written by EncodePortfolio.
//
// Empty content decodes to an empty portfolio. Any other decoding failure
// wraps ErrCorruptLedger.
func DecodePortfolio(r io.Reader) (*Portfolio, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	p := NewPortfolio()
	if len(bytes.TrimSpace(content)) == 0 {
		return p, nil
	}

	var records map[string]record
	if err := json.Unmarshal(content, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptLedger, err)
	}
	for symbol, rec := range records {
		pos, err := NewPosition(symbol, rec.Quantity, rec.Price)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptLedger, err)
		}
		if _, exists := p.positions[pos.Symbol]; exists {
			return nil, fmt.Errorf("%w: symbol %q is defined twice", ErrCorruptLedger, pos.Symbol)
		}
		p.positions[pos.Symbol] = pos
	}
	return p, nil
}

// LoadPortfolio loads the portfolio stored in file.
//
// A missing file is created empty and gives an empty portfolio. A corrupt
// file gives an empty portfolio together with an error wrapping
// ErrCorruptLedger, so that the caller can report it and carry on.
func LoadPortfolio(file string) (*Portfolio, error) {
	f, err := os.Open(file)
	if errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
			return NewPortfolio(), fmt.Errorf("could not create directory for portfolio %q: %w", file, err)
		}
		if err := os.WriteFile(file, nil, 0644); err != nil {
			return NewPortfolio(), fmt.Errorf("could not create portfolio file %q: %w", file, err)
		}
		return NewPortfolio(), nil
	}
	if err != nil {
		return NewPortfolio(), fmt.Errorf("could not open portfolio file %q: %w", file, err)
	}
	defer f.Close()

	p, err := DecodePortfolio(f)
	if err != nil {
		return NewPortfolio(), fmt.Errorf("could not decode portfolio file %q: %w", file, err)
	}
	return p, nil
}

// SavePortfolio writes the portfolio into file, replacing its content.
func SavePortfolio(file string, p *Portfolio) error {
	if dir := filepath.Dir(file); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("could not create directory for portfolio %q: %w", file, err)
		}
	}

	var buf bytes.Buffer
	if err := EncodePortfolio(&buf, p); err != nil {
		return err
	}
	// Write to a sibling file first so that a failure never truncates the ledger.
	tmp := file + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("error writing portfolio file %q: %w", tmp, err)
	}
	if err := os.Rename(tmp, file); err != nil {
		return fmt.Errorf("error replacing portfolio file %q: %w", file, err)
	}
	return nil
}
