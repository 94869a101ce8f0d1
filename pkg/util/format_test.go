package util

import (
	"errors"
	"math"
	"testing"
)

func TestFormatBR(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		kind     Kind
		decimals int
		want     string
	}{
		{name: "currency", value: 1234.5, kind: KindCurrency, decimals: 2, want: "R$ 1.234,50"},
		{name: "percent rounds", value: 12.3456, kind: KindPercent, decimals: 2, want: "12,35%"},
		{name: "plain four decimals", value: 0.00123, kind: KindPlain, decimals: 4, want: "0,0012"},
		{name: "several groups", value: 1234567.891, kind: KindPlain, decimals: 2, want: "1.234.567,89"},
		{name: "exact group boundary", value: 100000, kind: KindPlain, decimals: 0, want: "100.000"},
		{name: "negative currency", value: -1234.5, kind: KindCurrency, decimals: 2, want: "R$ -1.234,50"},
		{name: "negative percent", value: -0.5, kind: KindPercent, decimals: 1, want: "-0,5%"},
		{name: "no decimals", value: 999.6, kind: KindPlain, decimals: 0, want: "1.000"},
		{name: "small value", value: 7, kind: KindCurrency, decimals: 2, want: "R$ 7,00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatBR(tt.value, tt.kind, tt.decimals)
			if err != nil {
				t.Fatalf("FormatBR: %v", err)
			}
			if got != tt.want {
				t.Errorf("FormatBR(%v, %q, %d) = %q, want %q", tt.value, tt.kind, tt.decimals, got, tt.want)
			}
		})
	}
}

func TestFormatBRRejectsNonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := FormatBR(v, KindPercent, 2); !errors.Is(err, ErrNotFinite) {
			t.Errorf("FormatBR(%v): expected ErrNotFinite, got %v", v, err)
		}
	}
	if _, err := FormatBR(1, KindPlain, -1); err == nil {
		t.Error("expected error for negative decimals")
	}
}

func TestDisplayBR(t *testing.T) {
	if got := DisplayBR(math.NaN(), KindCurrency, 2); got != Placeholder {
		t.Errorf("DisplayBR(NaN) = %q, want placeholder", got)
	}
	if got := DisplayBR(50, KindPercent, 2); got != "50,00%" {
		t.Errorf("DisplayBR(50) = %q", got)
	}
}
