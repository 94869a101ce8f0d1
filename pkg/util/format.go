package util

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind selects the decoration FormatBR applies.
type Kind string

const (
	KindCurrency Kind = "R$"
	KindPercent  Kind = "%"
	KindPlain    Kind = ""
)

// Placeholder is shown instead of a value that cannot be formatted.
const Placeholder = "—"

// ErrNotFinite is returned for NaN and infinities.
var ErrNotFinite = errors.New("value is not finite")

// FormatBR renders v with '.' as thousands separator and ',' as decimal
// separator. Currency gets an "R$ " prefix and percent a "%" suffix.
func FormatBR(v float64, kind Kind, decimals int) (string, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "", fmt.Errorf("format %v: %w", v, ErrNotFinite)
	}
	if decimals < 0 {
		return "", fmt.Errorf("format %v: negative decimals %d", v, decimals)
	}

	s := strconv.FormatFloat(v, 'f', decimals, 64)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	b.WriteString(sign)
	b.WriteString(groupThousands(intPart))
	if fracPart != "" {
		b.WriteByte(',')
		b.WriteString(fracPart)
	}
	number := b.String()

	switch kind {
	case KindCurrency:
		return "R$ " + number, nil
	case KindPercent:
		return number + "%", nil
	default:
		return number, nil
	}
}

// DisplayBR is FormatBR for presentation code: it never fails and shows
// Placeholder for values that cannot be formatted.
func DisplayBR(v float64, kind Kind, decimals int) string {
	s, err := FormatBR(v, kind, decimals)
	if err != nil {
		return Placeholder
	}
	return s
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	var b strings.Builder
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		b.WriteByte('.')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
