package utils

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// MoneyFormatter renders integral currency amounts with locale-aware digit grouping.
// Example: 20000 with locale "en" and currency "RON" returns "20,000 RON".
type MoneyFormatter struct {
	printer  *message.Printer
	currency string
}

// NewMoneyFormatter builds a formatter; an unparsable locale falls back to English.
func NewMoneyFormatter(locale, currency string) MoneyFormatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return MoneyFormatter{printer: message.NewPrinter(tag), currency: currency}
}

// Format formats an amount followed by the currency label.
func (f MoneyFormatter) Format(amount int64) string {
	if f.currency == "" {
		return f.printer.Sprintf("%d", amount)
	}
	return f.printer.Sprintf("%d %s", amount, f.currency)
}

// Currency returns the configured currency label.
func (f MoneyFormatter) Currency() string {
	return f.currency
}

// FormatQuantity prints a quantity without trailing zeros ("2", "1.5").
func FormatQuantity(q decimal.Decimal) string {
	return q.String()
}

// FormatPercent prints a percentage such as "12.5%".
func FormatPercent(p decimal.Decimal) string {
	return p.String() + "%"
}
