package tui

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

// ErrQuit is returned when the player abandons a prompt with ctrl+c or esc.
var ErrQuit = errors.New("player quit")

// Prompter asks the player a question and returns the typed answer.
type Prompter interface {
	Prompt(ctx context.Context, question string) (string, error)
}

// promptModel is a single-line bubbletea input.
type promptModel struct {
	styles   Styles
	question string
	input    textinput.Model
	answer   string
	done     bool
	quit     bool
}

func newPromptModel(styles Styles, question string) promptModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 32
	ti.Width = 32
	ti.Focus()
	return promptModel{styles: styles, question: question, input: ti}
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quit = true
			return m, tea.Quit
		case tea.KeyEnter:
			m.answer = strings.TrimSpace(m.input.Value())
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	if m.done || m.quit {
		// leave the answered question on screen
		return m.styles.Actions.Render(m.question) + " " + m.answer + "\n"
	}
	return m.styles.Actions.Render(m.question) + "\n" + m.input.View() + "\n"
}

// TeaPrompter runs a short-lived bubbletea program per question.
type TeaPrompter struct {
	in     io.Reader
	out    io.Writer
	styles Styles
	logger *log.Logger
}

// NewTeaPrompter creates a prompter reading keys from in and drawing to out.
func NewTeaPrompter(in io.Reader, out io.Writer, styles Styles, logger *log.Logger) *TeaPrompter {
	return &TeaPrompter{in: in, out: out, styles: styles, logger: logger.WithPrefix("prompt")}
}

// Prompt implements Prompter
func (p *TeaPrompter) Prompt(ctx context.Context, question string) (string, error) {
	program := tea.NewProgram(newPromptModel(p.styles, question),
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)
	final, err := program.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", err
	}
	m, ok := final.(promptModel)
	if !ok || m.quit {
		return "", ErrQuit
	}
	p.logger.Debug("Prompt answered", "question", question, "answer", m.answer)
	return m.answer, nil
}

// Confirm asks a yes/no question. An empty answer takes def.
func Confirm(ctx context.Context, p Prompter, question string, def bool) (bool, error) {
	hint := " [y/N]"
	if def {
		hint = " [Y/n]"
	}
	for {
		answer, err := p.Prompt(ctx, question+hint)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
	}
}
