package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
	"github.com/muesli/termenv"
)

// ChartCmd prints the strategy the book follows.
type ChartCmd struct{}

func (c *ChartCmd) Run(g *Globals) error {
	r := lipgloss.NewRenderer(os.Stdout)
	if g.NoColor {
		r.SetColorProfile(termenv.Ascii)
	}
	fmt.Fprintln(os.Stdout, renderChart(r))
	fmt.Fprintln(os.Stdout, "H hit, S stand, D double (hit if not allowed), P split")
	return nil
}

// upcardValues are the dealer upcards in column order, Ace last.
var upcardValues = []int{2, 3, 4, 5, 6, 7, 8, 9, 10, 11}

type chartRow struct {
	label string
	cards []deck.Card
}

func card(r deck.Rank) deck.Card {
	return deck.NewCard(deck.Spades, r)
}

// chartRows lists two-card hands covering every hard total from 5 to 20,
// every soft total and every pair.
func chartRows() []chartRow {
	var rows []chartRow
	for total := 5; total <= 20; total++ {
		var cards []deck.Card
		if total <= 11 {
			cards = []deck.Card{card(deck.Rank(total - 2)), card(deck.Two)}
		} else {
			cards = []deck.Card{card(deck.Ten), card(deck.Rank(total - 10))}
		}
		rows = append(rows, chartRow{label: fmt.Sprintf("Hard %d", total), cards: cards})
	}
	for kicker := deck.Two; kicker <= deck.Nine; kicker++ {
		rows = append(rows, chartRow{
			label: fmt.Sprintf("A,%s", kicker),
			cards: []deck.Card{card(deck.Ace), card(kicker)},
		})
	}
	for _, rank := range []deck.Rank{deck.Two, deck.Three, deck.Four, deck.Five, deck.Six, deck.Seven, deck.Eight, deck.Nine, deck.Ten, deck.Ace} {
		rows = append(rows, chartRow{
			label: fmt.Sprintf("%s,%s", rank, rank),
			cards: []deck.Card{card(rank), card(rank)},
		})
	}
	return rows
}

func actionCode(a game.Action) string {
	switch a {
	case game.Hit:
		return "H"
	case game.Stand:
		return "S"
	case game.Double:
		return "D"
	case game.Split:
		return "P"
	}
	return "?"
}

// chartCells evaluates the book for every row against every upcard.
func chartCells() [][]string {
	rows := chartRows()
	cells := make([][]string, len(rows))
	for i, row := range rows {
		cells[i] = []string{row.label}
		for _, up := range upcardValues {
			action := game.Recommend(row.cards, up, 1, true, true)
			cells[i] = append(cells[i], actionCode(action))
		}
	}
	return cells
}

func renderChart(r *lipgloss.Renderer) string {
	colours := map[string]lipgloss.Color{
		"H": lipgloss.Color("#FF6B6B"),
		"S": lipgloss.Color("#96CEB4"),
		"D": lipgloss.Color("#FFD700"),
		"P": lipgloss.Color("#7D56F4"),
	}
	headers := []string{"Hand", "2", "3", "4", "5", "6", "7", "8", "9", "10", "A"}
	cells := chartCells()

	base := r.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.NewStyle().Foreground(lipgloss.Color("#626262"))).
		Headers(headers...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow || col == 0 {
				return base.Bold(true)
			}
			if c, ok := colours[cells[row][col]]; ok {
				return base.Foreground(c)
			}
			return base
		})
	return t.Render()
}
