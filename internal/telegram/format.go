package telegram

import (
	"fmt"
	"strings"

	"github.com/cinesystem/cinebot/internal/domain"
	"github.com/cinesystem/cinebot/internal/ptbr"
)

// MaxMessageLength is Telegram's per-message size limit
const MaxMessageLength = 4096

func formatPrice(v float64) string {
	return strings.Replace(fmt.Sprintf("%.2f", v), ".", ",", 1)
}

// FormatProgram renders a day's program as a Markdown message
func FormatProgram(program domain.Program) string {
	var b strings.Builder

	b.WriteString("*🎬 PROGRAMAÇÃO - CINESYSTEM MACEIÓ*\n")
	fmt.Fprintf(&b, "📅 Data: %s\n\n", ptbr.FormatDate(program.Date))

	for _, movie := range program.Movies {
		fmt.Fprintf(&b, "*🎭 %s*\n", movie.Name)

		for _, s := range movie.Sessions {
			var priceInfo string
			switch {
			case s.Gratuito:
				priceInfo = "Gratuito ✨"
			case s.PriceInteira != nil && s.PriceMeia != nil:
				priceInfo = fmt.Sprintf("💰 R$ %s (inteira) / R$ %s (meia)",
					formatPrice(*s.PriceInteira), formatPrice(*s.PriceMeia))
			default:
				priceInfo = "(preço não disponível)"
			}
			fmt.Fprintf(&b, "   %s - %s\n", s.Time, priceInfo)
		}

		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "✅ _Atualizado em: %s_", ptbr.FormatTimestamp(program.ScrapedAt))
	return b.String()
}

// FormatUpcoming renders the coming-soon listing as a Markdown message
func FormatUpcoming(items []domain.UpcomingMovie) string {
	if len(items) == 0 {
		return "⭐ *Próximos Lançamentos*\n\nNenhum lançamento anunciado no momento."
	}

	var b strings.Builder
	b.WriteString("⭐ *Próximos Lançamentos*\n\n")
	for _, m := range items {
		fmt.Fprintf(&b, "*🎬 %s*\n", m.Title)
		if m.PremiereDate != "" {
			fmt.Fprintf(&b, "   📅 Estreia: %s\n", ptbr.FormatDate(m.PremiereDate))
		}
		if len(m.Genres) > 0 {
			fmt.Fprintf(&b, "   🎞 %s\n", strings.Join(m.Genres, ", "))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// SplitMessage breaks a message exceeding MaxMessageLength into parts,
// splitting only at line boundaries, never mid-line. A single line longer
// than the limit becomes its own oversized part rather than being cut.
func SplitMessage(message string) []string {
	if len([]rune(message)) <= MaxMessageLength {
		return []string{message}
	}

	var parts []string
	var current strings.Builder
	currentLen := 0

	for _, line := range strings.Split(message, "\n") {
		lineLen := len([]rune(line)) + 1
		if currentLen+lineLen > MaxMessageLength && currentLen > 0 {
			parts = append(parts, strings.TrimRight(current.String(), "\n"))
			current.Reset()
			currentLen = 0
		}
		current.WriteString(line)
		current.WriteString("\n")
		currentLen += lineLen
	}

	if currentLen > 0 {
		parts = append(parts, strings.TrimRight(current.String(), "\n"))
	}

	return parts
}
