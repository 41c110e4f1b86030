package cmd

import (
	"flag"
	"io"
	"testing"
)

func TestRiskCmd_Flags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RiskFreeRate = 0.0002
	cfg.LookbackDays = 120

	tests := []struct {
		name         string
		args         []string
		wantRate     float64
		wantLookback int
		wantBench    string
	}{
		{"configured", nil, 0.0002, 120, "^JKSE"},
		{"zero rate", []string{"-rf", "0"}, 0, 120, "^JKSE"},
		{"negative rate", []string{"-rf", "-0.0001"}, -0.0001, 120, "^JKSE"},
		{"all flags", []string{"-rf", "0.001", "-n", "60", "-b", "LQ45"}, 0.001, 60, "LQ45"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &riskCmd{}
			f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
			c.SetFlags(f)
			if err := f.Parse(tt.args); err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.args, err)
			}
			e := c.engine(cfg, nil, "^JKSE")
			if e.RiskFreeRate != tt.wantRate {
				t.Errorf("RiskFreeRate = %v, want %v", e.RiskFreeRate, tt.wantRate)
			}
			if e.Lookback != tt.wantLookback {
				t.Errorf("Lookback = %d, want %d", e.Lookback, tt.wantLookback)
			}
			if e.Benchmark != tt.wantBench {
				t.Errorf("Benchmark = %q, want %q", e.Benchmark, tt.wantBench)
			}
		})
	}
}

func TestRiskCmd_InvalidRate(t *testing.T) {
	c := &riskCmd{}
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	f.SetOutput(io.Discard)
	c.SetFlags(f)
	if err := f.Parse([]string{"-rf", "two"}); err == nil {
		t.Errorf("Parse(-rf two) expected an error")
	}
}
