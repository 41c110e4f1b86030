package stockbook

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var positionComparer = cmp.Comparer(func(a, b Position) bool { return a.Equal(b) })

func TestEncodePortfolio(t *testing.T) {
	p := NewPortfolio()
	p.Add("TLKM", 3, dec("3800"))
	p.Add("BBCA", 10, dec("9150.5"))

	var buf bytes.Buffer
	if err := EncodePortfolio(&buf, p); err != nil {
		t.Fatalf("EncodePortfolio() unexpected error: %v", err)
	}
	want := `{
  "BBCA": {
    "quantity": 10,
    "price": 9150.5
  },
  "TLKM": {
    "quantity": 3,
    "price": 3800
  }
}
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("EncodePortfolio() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodePortfolio(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    map[string]Position
		wantErr error
	}{
		{
			name:  "empty",
			input: "",
			want:  map[string]Position{},
		},
		{
			name:  "blank",
			input: "  \n",
			want:  map[string]Position{},
		},
		{
			name:  "positions",
			input: `{"bbca": {"quantity": 10, "price": 9150.5}, "ASII": {"quantity": 0, "price": 5000}}`,
			want: map[string]Position{
				"BBCA": {Symbol: "BBCA", Quantity: 10, AverageCost: dec("9150.5")},
				"ASII": {Symbol: "ASII", Quantity: 0, AverageCost: dec("5000")},
			},
		},
		{
			name:    "not json",
			input:   "BBCA 10 9150",
			wantErr: ErrCorruptLedger,
		},
		{
			name:    "negative quantity",
			input:   `{"BBCA": {"quantity": -1, "price": 10}}`,
			wantErr: ErrCorruptLedger,
		},
		{
			name:    "negative price",
			input:   `{"BBCA": {"quantity": 1, "price": -10}}`,
			wantErr: ErrCorruptLedger,
		},
		{
			name:    "duplicate symbol",
			input:   `{"BBCA": {"quantity": 1, "price": 10}, "bbca": {"quantity": 2, "price": 10}}`,
			wantErr: ErrCorruptLedger,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodePortfolio(strings.NewReader(tt.input))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("DecodePortfolio() error = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if diff := cmp.Diff(tt.want, got.List(), positionComparer); diff != "" {
				t.Errorf("DecodePortfolio() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSaveLoadPortfolio(t *testing.T) {
	file := filepath.Join(t.TempDir(), "data", "stock_data.json")

	p := NewPortfolio()
	p.Add("BBCA", 10, dec("100"))
	p.Add("BBCA", 10, dec("120"))
	p.Add("UNVR", 7, dec("2512.75"))
	p.Remove("UNVR", 7)

	if err := SavePortfolio(file, p); err != nil {
		t.Fatalf("SavePortfolio() unexpected error: %v", err)
	}
	got, err := LoadPortfolio(file)
	if err != nil {
		t.Fatalf("LoadPortfolio() unexpected error: %v", err)
	}
	if diff := cmp.Diff(p.List(), got.List(), positionComparer); diff != "" {
		t.Errorf("round trip mismatch (-saved +loaded):\n%s", diff)
	}
	if _, err := os.Stat(file + ".tmp"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("temporary file left behind: %v", err)
	}
}

func TestLoadPortfolio_Missing(t *testing.T) {
	tests := []struct {
		name string
		file string
	}{
		{"existing dir", "stock_data.json"},
		{"missing parent dirs", filepath.Join("data", "2026", "stock_data.json")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := filepath.Join(t.TempDir(), tt.file)

			p, err := LoadPortfolio(file)
			if err != nil {
				t.Fatalf("LoadPortfolio() unexpected error: %v", err)
			}
			if p.Len() != 0 {
				t.Errorf("LoadPortfolio() Len() = %d, want 0", p.Len())
			}
			info, err := os.Stat(file)
			if err != nil {
				t.Fatalf("missing file was not created: %v", err)
			}
			if info.Size() != 0 {
				t.Errorf("created file size = %d, want 0", info.Size())
			}
		})
	}
}

func TestLoadPortfolio_Corrupt(t *testing.T) {
	file := filepath.Join(t.TempDir(), "stock_data.json")
	if err := os.WriteFile(file, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadPortfolio(file)
	if !errors.Is(err, ErrCorruptLedger) {
		t.Errorf("LoadPortfolio() error = %v, want %v", err, ErrCorruptLedger)
	}
	if p == nil || p.Len() != 0 {
		t.Errorf("LoadPortfolio() = %v, want an empty portfolio", p)
	}
}
