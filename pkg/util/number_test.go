package util

import (
	"errors"
	"math"
	"testing"
)

func TestParseBRNumber(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  float64
	}{
		{name: "thousands and decimal", input: "1.234,56", want: 1234.56},
		{name: "decimal comma", input: "12,5", want: 12.5},
		{name: "currency", input: "R$ 3.000,00", want: 3000},
		{name: "percent", input: "87,3%", want: 87.3},
		{name: "several groups", input: "1.234.567,8", want: 1234567.8},
		{name: "negative", input: "-1.500,25", want: -1500.25},
		{name: "plain integer", input: "42", want: 42},
		{name: "decimal dot kept", input: "1.5", want: 1.5},
		{name: "four digits after dot", input: "1.2345", want: 1.2345},
		{name: "three decimals read as thousands", input: "1.234", want: 1234},
		{name: "surrounding spaces", input: "  78,90 ", want: 78.9},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseBRNumber(tc.input)
			if err != nil {
				t.Fatalf("ParseBRNumber(%q): %v", tc.input, err)
			}
			if got != tc.want {
				t.Fatalf("got %v want %v", got, tc.want)
			}
		})
	}
}

func TestParseBRNumberErrors(t *testing.T) {
	for _, input := range []string{"", "   ", "n/a", "R$", "-", "1,2,3"} {
		_, err := ParseBRNumber(input)
		if err == nil {
			t.Errorf("ParseBRNumber(%q): expected error", input)
			continue
		}
		if !errors.Is(err, ErrParse) {
			t.Errorf("ParseBRNumber(%q): error %v is not ErrParse", input, err)
		}
		var pe *ParseError
		if !errors.As(err, &pe) || pe.Raw != input {
			t.Errorf("ParseBRNumber(%q): expected *ParseError with raw text, got %v", input, err)
		}
	}
}

func TestParseBRColumn(t *testing.T) {
	got, err := ParseBRColumn([]string{"1,5", "2.000", "3"})
	if err != nil {
		t.Fatalf("ParseBRColumn: %v", err)
	}
	want := []float64{1.5, 2000, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %v want %v", i, got[i], want[i])
		}
	}

	_, err = ParseBRColumn([]string{"1", "x"})
	if !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
	var colErr *ColumnError
	if !errors.As(err, &colErr) || colErr.Index != 1 {
		t.Fatalf("expected ColumnError at index 1, got %v", err)
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	values := []float64{0, 0.5, 12.3456, 99.99, 1234.5, 1234567.891, -42.25, -98765.4}
	kinds := []Kind{KindCurrency, KindPercent, KindPlain}

	for _, kind := range kinds {
		for _, v := range values {
			for _, decimals := range []int{0, 2, 4} {
				s, err := FormatBR(v, kind, decimals)
				if err != nil {
					t.Fatalf("FormatBR(%v, %q, %d): %v", v, kind, decimals, err)
				}
				back, err := ParseBRNumber(s)
				if err != nil {
					t.Fatalf("ParseBRNumber(%q): %v", s, err)
				}
				tol := 0.5 * math.Pow10(-decimals)
				if math.Abs(back-v) > tol+1e-9 {
					t.Errorf("round trip %v -> %q -> %v exceeds %v", v, s, back, tol)
				}
			}
		}
	}
}
