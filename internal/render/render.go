// Package render prints a day's program to the terminal.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/cinesystem/cinebot/internal/domain"
	"github.com/cinesystem/cinebot/internal/ptbr"
)

var (
	gold    = lipgloss.Color("#E5A00D")
	dimGray = lipgloss.Color("#6B7280")
	white   = lipgloss.Color("#F9FAFB")
	green   = lipgloss.Color("#10B981")

	headerStyle = lipgloss.NewStyle().
			Foreground(gold).
			Bold(true)

	titleStyle = lipgloss.NewStyle().
			Foreground(white).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(dimGray)

	freeStyle = lipgloss.NewStyle().
			Foreground(green)
)

// Program renders a day's program for terminal output
func Program(program domain.Program) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Programação Cinesystem Maceió"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(ptbr.FormatDate(program.Date)))
	b.WriteString("\n\n")

	if program.Empty() {
		b.WriteString(dimStyle.Render("Nenhuma sessão encontrada para esta data."))
		b.WriteString("\n")
		return b.String()
	}

	for _, movie := range program.Movies {
		fmt.Fprintf(&b, "%s %s\n",
			titleStyle.Render(movie.Name),
			dimStyle.Render(fmt.Sprintf("(%d sessões)", len(movie.Sessions))))

		for _, s := range movie.Sessions {
			line := "  " + s.Time
			if s.Format != "" {
				line += " " + s.Format
			}
			if s.Audio != "" {
				line += " " + s.Audio
			}
			switch {
			case s.Gratuito:
				line += " " + freeStyle.Render("gratuito")
			case s.PriceInteira != nil:
				line += dimStyle.Render(fmt.Sprintf(" R$ %.2f", *s.PriceInteira))
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// FilterMovies keeps the movies whose title fuzzy-matches the query,
// preserving order. An empty query matches everything.
func FilterMovies(movies []domain.MovieProgram, query string) []domain.MovieProgram {
	if query == "" {
		return movies
	}

	var out []domain.MovieProgram
	for _, m := range movies {
		if fuzzy.MatchNormalizedFold(query, m.Name) || fuzzy.MatchNormalizedFold(query, m.OriginalTitle) {
			out = append(out, m)
		}
	}
	return out
}
