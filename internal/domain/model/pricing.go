package model

import (
	"strconv"
	"strings"
)

type ProductType string

const (
	ProductTypeIndividual ProductType = "individual"
	ProductTypeBundle     ProductType = "bundle"
)

// ValidProductType reports whether t is one of the known product types.
func ValidProductType(t ProductType) bool {
	return t == ProductTypeIndividual || t == ProductTypeBundle
}

// Product identifies something a buyer can purchase: a single report or a
// bundle of reports.
type Product struct {
	ID   string      `json:"id" yaml:"id"`
	Type ProductType `json:"type" yaml:"type"`
	Name string      `json:"name" yaml:"name"`
}

type PriceSource string

const (
	PriceSourceLive     PriceSource = "live"     // fetched from the live pricing provider
	PriceSourceFallback PriceSource = "fallback" // served from the bundled table
)

// RegionalPrice is an immutable value object: a product's price resolved for
// one region. Entries are produced per request or per cache window and never
// mutated in place.
type RegionalPrice struct {
	ProductID string      `json:"product_id"`
	Region    string      `json:"region"`
	Amount    int64       `json:"amount"` // whole currency units, integer to avoid float errors
	Currency  string      `json:"currency"`
	Display   string      `json:"display"`
	Source    PriceSource `json:"source"`
}

type currencyFormat struct {
	symbol string
	suffix bool // symbol after the amount
}

var currencyFormats = map[string]currencyFormat{
	"USD": {symbol: "$"},
	"CAD": {symbol: "C$"},
	"AUD": {symbol: "A$"},
	"GBP": {symbol: "£"},
	"EUR": {symbol: "€"},
	"PKR": {symbol: "₨"},
	"INR": {symbol: "₹"},
	"BDT": {symbol: "৳"},
	"NGN": {symbol: "₦"},
	"AED": {symbol: "AED ", suffix: false},
	"SEK": {symbol: " kr", suffix: true},
}

// FormatAmount renders an amount for display, deterministically per currency
// code: symbol placement plus thousands separators. Unknown currencies fall
// back to "<CODE> <amount>".
func FormatAmount(amount int64, currency string) string {
	grouped := groupThousands(amount)
	f, ok := currencyFormats[strings.ToUpper(currency)]
	if !ok {
		return strings.ToUpper(currency) + " " + grouped
	}
	if f.suffix {
		return grouped + f.symbol
	}
	return f.symbol + grouped
}

func groupThousands(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	if len(s) > 3 {
		var b strings.Builder
		lead := len(s) % 3
		if lead > 0 {
			b.WriteString(s[:lead])
		}
		for i := lead; i < len(s); i += 3 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(s[i : i+3])
		}
		s = b.String()
	}
	if neg {
		return "-" + s
	}
	return s
}
