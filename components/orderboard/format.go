package orderboard

import (
	"strconv"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var defaultDisplayLocale = language.AmericanEnglish

// FormatKPIValue renders an aggregated value per the widget's data format
// with fixed decimal places, using en-US conventions.
func FormatKPIValue(value float64, s KPISettings) string {
	return FormatKPIValueLocale(value, s, defaultDisplayLocale)
}

// FormatKPIValueLocale renders the value for a specific locale.
func FormatKPIValueLocale(value float64, s KPISettings, tag language.Tag) string {
	precision := s.DecimalPrecision
	if precision < 0 {
		precision = 0
	}
	if precision > 4 {
		precision = 4
	}
	p := message.NewPrinter(tag)
	dec := number.Decimal(value,
		number.MinFractionDigits(precision),
		number.MaxFractionDigits(precision),
	)
	if s.DataFormat == FormatCurrency {
		return p.Sprintf("%v%v", currency.Symbol(currency.USD), dec)
	}
	return p.Sprintf("%v", dec)
}

func formatInt(v int) string {
	return strconv.Itoa(v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
