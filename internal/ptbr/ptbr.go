// Package ptbr formats dates in Brazilian Portuguese for both the
// terminal output and the Telegram messages.
package ptbr

import (
	"fmt"
	"time"
)

var monthNames = []string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// FormatDate renders a YYYY-MM-DD date as "2 de março de 2026". Dates that
// do not parse are passed through untouched.
func FormatDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%d de %s de %d", t.Day(), monthNames[t.Month()-1], t.Year())
}

// FormatTimestamp renders an instant as "02 de março de 2026 às 14:05"
func FormatTimestamp(t time.Time) string {
	return fmt.Sprintf("%02d de %s de %d às %02d:%02d",
		t.Day(), monthNames[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}
