// Package currency holds the set of currencies users can pick for their
// settings, along with display formatting for transaction amounts.
package currency

import (
	"math"
	"strconv"
	"strings"
)

// Currency describes one supported settings currency and how amounts
// are rendered in it.
type Currency struct {
	Code         string `json:"code"`
	Label        string `json:"label"`
	Symbol       string `json:"symbol"`
	ThousandsSep string `json:"-"`
	DecimalSep   string `json:"-"`
	Decimals     int    `json:"-"`
	SymbolSuffix bool   `json:"-"`
}

// DefaultCode is the currency assigned when settings are created lazily.
const DefaultCode = "IDR"

// Supported lists the selectable currencies in display order.
var Supported = []Currency{
	{Code: "IDR", Label: "Rp Rupiah", Symbol: "Rp", ThousandsSep: ".", DecimalSep: ",", Decimals: 0},
	{Code: "USD", Label: "$ Dollar", Symbol: "$", ThousandsSep: ",", DecimalSep: ".", Decimals: 2},
	{Code: "EUR", Label: "€ Euro", Symbol: "€", ThousandsSep: ".", DecimalSep: ",", Decimals: 2, SymbolSuffix: true},
	{Code: "GBP", Label: "£ Pound", Symbol: "£", ThousandsSep: ",", DecimalSep: ".", Decimals: 2},
	{Code: "JPY", Label: "¥ Yen", Symbol: "¥", ThousandsSep: ",", DecimalSep: ".", Decimals: 0},
}

var byCode = func() map[string]Currency {
	m := make(map[string]Currency, len(Supported))
	for _, c := range Supported {
		m[c.Code] = c
	}
	return m
}()

// IsSupported reports whether code is a selectable currency.
func IsSupported(code string) bool {
	_, ok := byCode[code]
	return ok
}

// Format renders an amount in the given currency, e.g. 1234.5 as
// "Rp1.235" (IDR), "$1,234.50" (USD) or "1.234,50 €" (EUR). Unknown
// codes fall back to the default currency so a stale settings row can
// never break transaction listings.
func Format(code string, amount float64) string {
	c, ok := byCode[code]
	if !ok {
		c = byCode[DefaultCode]
	}

	neg := math.Signbit(amount)
	rounded := math.Abs(amount)
	shift := math.Pow(10, float64(c.Decimals))
	rounded = math.Round(rounded*shift) / shift

	intPart := int64(rounded)
	frac := rounded - float64(intPart)

	var b strings.Builder
	if neg {
		b.WriteString("-")
	}
	if !c.SymbolSuffix {
		b.WriteString(c.Symbol)
	}
	b.WriteString(group(intPart, c.ThousandsSep))
	if c.Decimals > 0 {
		b.WriteString(c.DecimalSep)
		fracDigits := int64(math.Round(frac * shift))
		s := strconv.FormatInt(fracDigits, 10)
		b.WriteString(strings.Repeat("0", c.Decimals-len(s)))
		b.WriteString(s)
	}
	if c.SymbolSuffix {
		b.WriteString(" ")
		b.WriteString(c.Symbol)
	}
	return b.String()
}

// group inserts the thousands separator into a non-negative integer.
func group(n int64, sep string) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
