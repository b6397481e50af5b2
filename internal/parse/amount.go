package parse

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxAmount bounds every amount so whole cents always fit in an int64 and
// survive a float64 round trip exactly.
const MaxAmount = 1e9

// ParseAmount reads a currency amount such as "12.5", "$1,024.00" or " 3 ".
// Non-numeric, negative or out-of-range input yields (0, false); it never
// fails loudly.
func ParseAmount(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	if v < 0 || v >= MaxAmount {
		return 0, false
	}
	return v, true
}

// Cents converts an amount to whole cents, rounding half away from zero.
func Cents(v float64) int64 {
	return int64(math.Round(v * 100))
}

// FormatCents renders whole cents as a two-decimal string.
func FormatCents(c int64) string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}

// FormatAmount renders v with two decimals.
func FormatAmount(v float64) string {
	return FormatCents(Cents(v))
}

// NormalizeAmount returns raw formatted to two decimals, or "" when it is not a number.
func NormalizeAmount(raw string) string {
	v, ok := ParseAmount(raw)
	if !ok {
		return ""
	}
	return FormatAmount(v)
}

// ComputeTotal adds base and tip. Either may be empty; when both are empty the
// result is ("", false). Unparseable parts count as zero.
func ComputeTotal(base, tip string) (string, bool) {
	if base == "" && tip == "" {
		return "", false
	}
	b, _ := ParseAmount(base)
	t, _ := ParseAmount(tip)
	return FormatCents(Cents(b) + Cents(t)), true
}

// ApplyRate returns amount*rate rounded to cents, e.g. a tax or tip share.
func ApplyRate(amount string, rate float64) string {
	v, _ := ParseAmount(amount)
	return FormatCents(Cents(v * rate))
}

// WithRate returns amount plus amount*rate, rounded to cents.
func WithRate(amount string, rate float64) string {
	v, _ := ParseAmount(amount)
	return FormatCents(Cents(v) + Cents(v*rate))
}
