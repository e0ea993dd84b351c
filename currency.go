package cashflowr

import (
	"slices"

	"github.com/Rhymond/go-money"
)

// DefaultCurrency is the currency used when a transaction or a setting does
// not carry one of its own.
const DefaultCurrency = "PHP"

// PivotCurrency is the single reference currency all cached exchange rates
// are expressed relative to.
const PivotCurrency = "USD"

// supportedCurrencies lists the currency codes transactions may be recorded
// in. The pivot is always part of the set.
var supportedCurrencies = []string{"PHP", "USD", "EUR", "JPY"}

// display names for supported currencies; go-money carries symbols and
// fraction digits but no long names.
var currencyNames = map[string]string{
	"PHP": "Philippine Peso",
	"USD": "US Dollar",
	"EUR": "Euro",
	"JPY": "Japanese Yen",
}

// Currencies returns the supported currency codes in declaration order.
func Currencies() []string {
	return slices.Clone(supportedCurrencies)
}

// KnownCurrency reports whether code is one of the supported currencies.
func KnownCurrency(code string) bool {
	return slices.Contains(supportedCurrencies, code)
}

// SymbolOf returns the display symbol for a currency code. Unknown codes
// fall back to the default currency's symbol.
func SymbolOf(code string) string {
	if !KnownCurrency(code) {
		code = DefaultCurrency
	}
	return money.New(0, code).Currency().Grapheme
}

// NameOf returns the display name for a currency code, or the code itself
// when no name is registered.
func NameOf(code string) string {
	if name, ok := currencyNames[code]; ok {
		return name
	}
	return code
}
