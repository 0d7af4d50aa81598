package tui

import (
	"bytes"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func typeKeys(m tea.Model, s string) tea.Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestPromptModelEnterCapturesAnswer(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	var m tea.Model = newPromptModel(plainStyles(&buf), "Bet?")

	m = typeKeys(m, " 50 ")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	pm := m.(promptModel)
	assert.True(t, pm.done)
	assert.False(t, pm.quit)
	assert.Equal(t, "50", pm.answer)
	assert.NotNil(t, cmd)
	assert.Equal(t, "Bet? 50\n", pm.View())
}

func TestPromptModelEscQuits(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	var m tea.Model = newPromptModel(plainStyles(&buf), "Bet?")

	m = typeKeys(m, "h")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	pm := m.(promptModel)
	assert.True(t, pm.quit)
	assert.Empty(t, pm.answer)
}

func TestPromptModelViewShowsQuestion(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	m := newPromptModel(plainStyles(&buf), "(H)it (S)tand?")
	assert.Contains(t, m.View(), "(H)it (S)tand?")
}
