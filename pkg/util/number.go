package util

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrParse marks text that is not a number after Brazilian-format cleanup.
var ErrParse = errors.New("not a number")

// ParseError reports the raw text that failed to parse.
type ParseError struct {
	Raw     string
	Cleaned string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q (cleaned %q): %v", e.Raw, e.Cleaned, ErrParse)
}

func (e *ParseError) Unwrap() error { return ErrParse }

// ParseBRNumber converts Brazilian-formatted text ("R$ 3.000,00", "12,5%",
// "1.234,56") into a float64.
//
// Everything except digits, ',', '.' and '-' is dropped. A '.' followed by
// exactly three digits and then a non-digit (or the end) is a thousands
// separator and is removed; any other '.' is kept as a decimal point. Commas
// then become decimal points. "1.234" is therefore read as 1234, never 1.234.
func ParseBRNumber(raw string) (float64, error) {
	cleaned := dropThousands(keepNumeric(raw))
	cleaned = strings.ReplaceAll(cleaned, ",", ".")

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, &ParseError{Raw: raw, Cleaned: cleaned}
	}
	return v, nil
}

// ColumnError names the index of the first unparseable value in a column.
type ColumnError struct {
	Index int
	Err   error
}

func (e *ColumnError) Error() string { return fmt.Sprintf("value %d: %v", e.Index, e.Err) }

func (e *ColumnError) Unwrap() error { return e.Err }

// ParseBRColumn parses a whole column. Failures are *ColumnError.
func ParseBRColumn(values []string) ([]float64, error) {
	out := make([]float64, len(values))
	for i, raw := range values {
		v, err := ParseBRNumber(raw)
		if err != nil {
			return nil, &ColumnError{Index: i, Err: err}
		}
		out[i] = v
	}
	return out, nil
}

func keepNumeric(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// dropThousands removes periods followed by exactly three digits and a
// boundary. Input is ASCII after keepNumeric.
func dropThousands(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '.' && isThousandsDot(s, i) {
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isThousandsDot(s string, i int) bool {
	if i+3 >= len(s) {
		return false
	}
	for j := i + 1; j <= i+3; j++ {
		if !isDigit(s[j]) {
			return false
		}
	}
	return i+4 == len(s) || !isDigit(s[i+4])
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
