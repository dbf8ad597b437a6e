package conversion

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders amounts with the thousands and decimal separators of one locale.
type Formatter struct {
	printer *message.Printer
}

var defaultFormatter = &Formatter{printer: message.NewPrinter(language.English)}

// FormatAmount renders a converted amount in English notation, e.g. "5,600.00".
func FormatAmount(value float64) string { return defaultFormatter.FormatAmount(value) }

// FormatAmount always prints exactly two decimals.
func (f *Formatter) FormatAmount(value float64) string {
	if !isFinite(value) {
		return "-"
	}
	return f.printer.Sprintf("%v", number.Decimal(Round2(value), number.Scale(2)))
}

// FormatNumber prints value with grouping but without padding decimals, used to echo input.
func (f *Formatter) FormatNumber(value float64) string {
	if !isFinite(value) {
		return "-"
	}
	return f.printer.Sprintf("%v", number.Decimal(value, number.MaxFractionDigits(8)))
}

func (f *Formatter) FormatRate(base string, rate float64, quote string) string {
	return f.printer.Sprintf("1 %s = %v %s", base, number.Decimal(rate, number.Scale(4)), quote)
}

func NewFormatter(locale string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("failed to parse display locale %q: %w", locale, err)
	}
	return &Formatter{printer: message.NewPrinter(tag)}, nil
}
