package types

import (
	"strings"

	"github.com/shopspring/decimal"
)

// zero-decimal currencies per ISO 4217; amounts in these are already in
// major units on the wire
var zeroDecimalCurrencies = map[string]struct{}{
	"bif": {}, "clp": {}, "djf": {}, "gnf": {}, "jpy": {}, "kmf": {},
	"krw": {}, "mga": {}, "pyg": {}, "rwf": {}, "ugx": {}, "vnd": {},
	"vuv": {}, "xaf": {}, "xof": {}, "xpf": {},
}

// AmountToDisplay converts an integer minor-unit amount to its
// human-readable major-unit value, e.g. 2000 "usd" -> 20.00
func AmountToDisplay(minor int64, currency string) decimal.Decimal {
	amount := decimal.NewFromInt(minor)
	if _, ok := zeroDecimalCurrencies[strings.ToLower(currency)]; ok {
		return amount
	}
	return amount.Div(decimal.NewFromInt(100))
}
