package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Localizer renders catalog messages and numbers for one locale.
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

// Tag returns the locale the localizer renders for.
func (l *Localizer) Tag() language.Tag {
	return l.tag
}

// T formats the message stored under key.
func (l *Localizer) T(key string, args ...any) string {
	return l.printer.Sprintf(key, args...)
}

// Decimal formats v with exactly precision fraction digits using the
// locale's separators.
func (l *Localizer) Decimal(v float64, precision int) string {
	if v == 0 {
		v = 0 // drop the sign of -0
	}
	return l.printer.Sprint(number.Decimal(v, number.Scale(precision), number.NoSeparator()))
}
