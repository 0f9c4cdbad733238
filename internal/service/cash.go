package service

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// maxCashDigits bounds cash input to nine digits (< 1 billion rupiah).
const maxCashDigits = 9

// ParseCash reads an operator's cash amount such as "30.000", "Rp 50,000"
// or "20000". Dots, commas and whitespace are dropped and a leading "rp"
// (any case) is stripped; what remains must be 1–9 ASCII digits.
// Rupiah has no fractional unit, so separators carry no decimal meaning.
func ParseCash(text string) (decimal.Decimal, bool) {
	cleaned := strings.Map(func(r rune) rune {
		if r == '.' || r == ',' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
	cleaned = strings.TrimPrefix(strings.ToLower(cleaned), "rp")

	if cleaned == "" || len(cleaned) > maxCashDigits {
		return decimal.Zero, false
	}
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return decimal.Zero, false
		}
	}
	n, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return decimal.Zero, false
	}
	return decimal.NewFromInt(n), true
}
