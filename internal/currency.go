package internal

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Currency formats monetary values for display: fixed two fraction digits,
// locale-aware grouping, and symbol placement.
type Currency struct {
	Code    string // "USD", "EUR", "SEK"
	unit    currency.Unit
	printer *message.Printer
}

// symbolOverrides provides custom symbols where x/text defaults aren't ideal
var symbolOverrides = map[string]string{
	"SEK": "kr",
	"NOK": "kr",
	"DKK": "kr",
}

// homeLocale maps a currency code to a locale whose formatting conventions
// (grouping, decimal separator) suit it.
var homeLocale = map[string]language.Tag{
	"USD": language.AmericanEnglish,
	"EUR": language.German,
	"GBP": language.BritishEnglish,
	"SEK": language.Swedish,
	"NOK": language.Norwegian,
	"DKK": language.Danish,
	"CHF": language.German,
	"JPY": language.Japanese,
	"CAD": language.CanadianFrench,
	"AUD": language.MustParse("en-AU"),
	"BRL": language.BrazilianPortuguese,
	"MXN": language.LatinAmericanSpanish,
	"INR": language.MustParse("en-IN"),
	"SGD": language.MustParse("en-SG"),
	"NZD": language.MustParse("en-NZ"),
	"PLN": language.Polish,
}

// GetCurrency returns the Currency for a given ISO code.
func GetCurrency(code string) Currency {
	code = strings.ToUpper(code)

	// Get the currency unit (validates the code)
	unit, err := currency.ParseISO(code)
	if err != nil {
		unit = currency.USD // fallback unit for number formatting only
		symbolOverrides[code] = code
	}

	tag, ok := homeLocale[code]
	if !ok {
		tag = language.English
	}

	return Currency{
		Code:    code,
		unit:    unit,
		printer: message.NewPrinter(tag),
	}
}

// getSymbol returns the currency symbol, using overrides where needed
func (c Currency) getSymbol() string {
	if sym, ok := symbolOverrides[c.Code]; ok {
		return sym
	}
	return c.printer.Sprint(currency.NarrowSymbol(c.unit))
}

// isPrefix returns true if this currency symbol should be placed before the
// amount. x/text/currency doesn't expose CLDR symbol positioning, so the
// prefix currencies are listed manually.
func (c Currency) isPrefix() bool {
	switch c.Code {
	case "USD", "GBP", "JPY", "CAD", "AUD", "MXN", "SGD", "NZD":
		return true
	default:
		return false
	}
}

// Format formats an amount with grouping, exactly two fraction digits, and
// the currency symbol.
func (c Currency) Format(amount decimal.Decimal) string {
	formatted := c.printer.Sprint(number.Decimal(amount.InexactFloat64(),
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
	symbol := c.getSymbol()

	if c.isPrefix() {
		return symbol + formatted
	}
	return formatted + " " + symbol
}
