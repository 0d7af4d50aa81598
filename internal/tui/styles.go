package tui

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/blackjack/internal/deck"
	"github.com/muesli/termenv"
)

// Styles holds every style used when rendering the table. They are bound to a
// renderer so that output to a file or a --no-color terminal stays plain.
type Styles struct {
	Header    lipgloss.Style
	Dealer    lipgloss.Style
	HandInfo  lipgloss.Style
	Actions   lipgloss.Style
	RedCard   lipgloss.Style
	BlackCard lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Info      lipgloss.Style
}

// NewStyles builds the table styles for r.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Header: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1),
		Dealer: r.NewStyle().
			Foreground(lipgloss.Color("#C9A0DC")).
			Bold(true),
		HandInfo: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Actions: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		RedCard: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		BlackCard: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true),
		Success: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Error: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		Warning: r.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true),
		Info: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
	}
}

// PlainRenderer returns a renderer for w that never emits escape codes.
func PlainRenderer(w io.Writer) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.Ascii)
	return r
}

// Card renders a single card in its suit colour.
func (s Styles) Card(c deck.Card) string {
	if c.IsRed() {
		return s.RedCard.Render(c.String())
	}
	return s.BlackCard.Render(c.String())
}

// Cards renders a hand as space separated cards.
func (s Styles) Cards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = s.Card(c)
	}
	return strings.Join(parts, " ")
}
