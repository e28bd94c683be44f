package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kamal-hamza/alib-cli/pkg/ui"
)

// promptModel reads one line of input, optionally masked
type promptModel struct {
	label     string
	input     textinput.Model
	validate  func(string) error
	err       error
	done      bool
	cancelled bool
}

func newPromptModel(label, placeholder string, secret bool, validate func(string) error) promptModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = 50
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	ti.Focus()
	return promptModel{label: label, input: ti, validate: validate}
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		case tea.KeyEnter:
			if m.validate != nil {
				if err := m.validate(m.input.Value()); err != nil {
					m.err = err
					return m, nil
				}
			}
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.err = nil
	return m, cmd
}

func (m promptModel) View() string {
	if m.done || m.cancelled {
		return ""
	}
	var s strings.Builder
	s.WriteString(ui.StyleHeader.Render(m.label) + "\n")
	s.WriteString(m.input.View() + "\n")
	if m.err != nil {
		s.WriteString(ui.StyleFieldError.Render(m.err.Error()) + "\n")
	}
	s.WriteString(ui.StyleMuted.Render("enter to confirm • esc to cancel") + "\n")
	return s.String()
}

// prompt asks for a single value
func prompt(label, placeholder string, secret bool, validate func(string) error) (string, error) {
	final, err := tea.NewProgram(newPromptModel(label, placeholder, secret, validate)).Run()
	if err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}
	m := final.(promptModel)
	if m.cancelled {
		return "", errAborted
	}
	return m.input.Value(), nil
}

func notBlank(field string) func(string) error {
	return func(v string) error {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}
