package stockbook

import (
	"context"
	"errors"
	"testing"

	"github.com/etnz/stockbook/date"
)

func TestNewValuation(t *testing.T) {
	tests := []struct {
		name        string
		qty         int64
		avg, price  string
		wantCost    Money
		wantValue   Money
		wantPL      Money
		wantPercent Percent
	}{
		{"gain", 10, "100", "110", IDR(100_000), IDR(110_000), IDR(10_000), 10},
		{"loss", 2, "5000", "4500", IDR(1_000_000), IDR(900_000), IDR(-100_000), -10},
		{"flat", 1, "250", "250", IDR(25_000), IDR(25_000), IDR(0), 0},
		{"free shares", 3, "0", "120", IDR(0), IDR(36_000), IDR(36_000), 0},
		{"sold out", 0, "100", "150", IDR(0), IDR(0), IDR(0), 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := Position{Symbol: "BBCA", Quantity: tt.qty, AverageCost: dec(tt.avg)}
			v := NewValuation(pos, dec(tt.price), date.New(2024, 5, 17), "IDR")
			if !v.Cost.Equal(tt.wantCost) {
				t.Errorf("Cost = %v, want %v", v.Cost, tt.wantCost)
			}
			if !v.MarketValue.Equal(tt.wantValue) {
				t.Errorf("MarketValue = %v, want %v", v.MarketValue, tt.wantValue)
			}
			if !v.ProfitLoss.Equal(tt.wantPL) {
				t.Errorf("ProfitLoss = %v, want %v", v.ProfitLoss, tt.wantPL)
			}
			if !v.PercentChange.Equal(tt.wantPercent) {
				t.Errorf("PercentChange = %v, want %v", v.PercentChange, tt.wantPercent)
			}
		})
	}
}

func TestValuator_Value(t *testing.T) {
	p := NewPortfolio()
	p.Add("BBCA", 10, dec("100"))
	p.Add("TLKM", 5, dec("4000"))
	p.Add("GOTO", 100, dec("60"))

	market := newFakeMarket().
		quote("BBCA", "2024-05-16", "110").
		quote("TLKM", "2024-05-17", "3600").
		fail("GOTO", &ProviderError{Provider: "fake", Symbol: "GOTO", Err: ErrNetwork})

	report, err := Valuator{Market: market, Currency: "IDR", Concurrency: 2}.Value(context.Background(), p)
	if err != nil {
		t.Fatalf("Value() unexpected error: %v", err)
	}

	if got, want := len(report.Valuations), 2; got != want {
		t.Fatalf("len(Valuations) = %d, want %d", got, want)
	}
	if report.Valuations[0].Symbol != "BBCA" || report.Valuations[1].Symbol != "TLKM" {
		t.Errorf("Valuations are not sorted by symbol: %v, %v", report.Valuations[0].Symbol, report.Valuations[1].Symbol)
	}
	if len(report.Failures) != 1 || report.Failures[0].Symbol != "GOTO" || !errors.Is(report.Failures[0], ErrNetwork) {
		t.Errorf("Failures = %v, want GOTO network failure", report.Failures)
	}
	if want := date.New(2024, 5, 17); report.LastUpdated != want {
		t.Errorf("LastUpdated = %v, want %v", report.LastUpdated, want)
	}

	overall, ok := report.Overall()
	if !ok {
		t.Fatalf("Overall() reported no position")
	}
	// 100 000 + 2 000 000 invested, 110 000 + 1 800 000 valued; GOTO is excluded.
	if want := IDR(2_100_000); !overall.Investment.Equal(want) {
		t.Errorf("Overall().Investment = %v, want %v", overall.Investment, want)
	}
	if want := IDR(1_910_000); !overall.MarketValue.Equal(want) {
		t.Errorf("Overall().MarketValue = %v, want %v", overall.MarketValue, want)
	}
	if want := IDR(-190_000); !overall.ProfitLoss().Equal(want) {
		t.Errorf("Overall().ProfitLoss() = %v, want %v", overall.ProfitLoss(), want)
	}
}

func TestValuator_LastUpdatedOrderIndependent(t *testing.T) {
	p := NewPortfolio()
	p.Add("AAAA", 1, dec("1"))
	p.Add("ZZZZ", 1, dec("1"))

	// The most recent quote comes first in symbol order.
	market := newFakeMarket().
		quote("AAAA", "2024-05-20", "1").
		quote("ZZZZ", "2024-05-10", "1")

	report, err := Valuator{Market: market, Currency: "IDR"}.Value(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if want := date.New(2024, 5, 20); report.LastUpdated != want {
		t.Errorf("LastUpdated = %v, want %v", report.LastUpdated, want)
	}
}

func TestValuator_Empty(t *testing.T) {
	report, err := Valuator{Market: newFakeMarket(), Currency: "IDR"}.Value(context.Background(), NewPortfolio())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := report.Overall(); ok {
		t.Errorf("Overall() reported positions for an empty portfolio")
	}
	if !report.LastUpdated.IsZero() {
		t.Errorf("LastUpdated = %v, want zero", report.LastUpdated)
	}
}

func TestValuator_AllFailed(t *testing.T) {
	p := NewPortfolio()
	p.Add("BBCA", 1, dec("100"))
	report, err := Valuator{Market: newFakeMarket(), Currency: "IDR"}.Value(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Failures) != 1 || !errors.Is(report.Failures[0], ErrSymbolNotFound) {
		t.Errorf("Failures = %v, want BBCA not found", report.Failures)
	}
	overall, ok := report.Overall()
	if !ok {
		t.Fatalf("Overall() reported no position")
	}
	if !overall.Investment.IsZero() || !overall.MarketValue.IsZero() {
		t.Errorf("Overall() = %v, want zero", overall)
	}
}

func TestValuator_Canceled(t *testing.T) {
	p := NewPortfolio()
	p.Add("BBCA", 1, dec("100"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (Valuator{Market: newFakeMarket(), Currency: "IDR"}).Value(ctx, p); !errors.Is(err, context.Canceled) {
		t.Errorf("Value() error = %v, want %v", err, context.Canceled)
	}
}
