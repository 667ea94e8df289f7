// Package format renders amounts, percentages and labels for display in the
// user's language.
package format

import (
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/sells-group/bizhealth/internal/model"
)

var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"CHF": "CHF",
}

func tag(lang model.Language) language.Tag {
	if lang == model.LanguageEN {
		return language.AmericanEnglish
	}
	return language.German
}

func printer(lang model.Language) *message.Printer {
	return message.NewPrinter(tag(lang))
}

// Symbol returns the display symbol for an ISO 4217 code. Unknown codes are
// returned unchanged.
func Symbol(code model.Currency) string {
	unit, err := currency.ParseISO(string(code))
	if err != nil {
		return string(code)
	}
	if s, ok := symbols[unit.String()]; ok {
		return s
	}
	return unit.String()
}

// Currency formats a whole amount with grouping and no decimals. German puts
// the symbol after the number ("1.234 €"), English before it ("$1,234").
func Currency(amount int64, code model.Currency, lang model.Language) string {
	sym := Symbol(code)
	p := printer(lang)

	neg := amount < 0
	if neg {
		amount = -amount
	}
	n := p.Sprint(number.Decimal(amount, number.Scale(0)))

	var out string
	switch {
	case lang == model.LanguageEN && len(sym) > 1:
		out = sym + " " + n
	case lang == model.LanguageEN:
		out = sym + n
	default:
		out = n + " " + sym
	}
	if neg {
		return "-" + out
	}
	return out
}

// Percentage formats value (0 to 100) with a fixed number of decimals.
func Percentage(value float64, decimals int, lang model.Language) string {
	if decimals < 0 {
		decimals = 0
	}
	n := printer(lang).Sprint(number.Decimal(value, number.Scale(decimals)))
	if lang == model.LanguageEN {
		return n + "%"
	}
	return n + " %"
}

// Number formats an integer with locale grouping.
func Number(v int64, lang model.Language) string {
	return printer(lang).Sprint(number.Decimal(v))
}

// Date formats t as a calendar date in UTC.
func Date(t time.Time, lang model.Language) string {
	t = t.UTC()
	if lang == model.LanguageEN {
		return t.Format("Jan 2, 2006 15:04")
	}
	return t.Format("02.01.2006 15:04")
}
