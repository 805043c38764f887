// Package format renders challenge values for display in the pt-BR locale.
package format

import (
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const isoLayout = "2006-01-02"

var printer = message.NewPrinter(language.BrazilianPortuguese)

// BRL formats v as Brazilian reais, e.g. 1234.5 -> "R$ 1.234,50".
func BRL(v float64) string {
	if v < 0 {
		return "-" + BRL(-v)
	}
	return printer.Sprintf("R$ %.2f", v)
}

// DateBR turns "2026-01-29" into "29/01/2026". Input that is not a calendar
// date is returned unchanged.
func DateBR(iso string) string {
	t, err := time.Parse(isoLayout, iso)
	if err != nil {
		return iso
	}
	return t.Format("02/01/2006")
}

// TodayISO returns the local calendar day of now as YYYY-MM-DD.
func TodayISO(now time.Time) string {
	return now.Format(isoLayout)
}

// Relative describes iso relative to the day of now, e.g. "3 days from now".
// It returns "" when iso is not a calendar date.
func Relative(iso string, now time.Time) string {
	t, err := time.Parse(isoLayout, iso)
	if err != nil {
		return ""
	}
	today, _ := time.Parse(isoLayout, TodayISO(now))
	if t.Equal(today) {
		return "today"
	}
	return humanize.RelTime(t, today, "ago", "from now")
}

// Percent formats a 0-100 value with one decimal, e.g. "25,0%".
func Percent(p float64) string {
	return printer.Sprintf("%.1f%%", p)
}
