package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wippyai/ffi-types/ctype"
	"github.com/wippyai/ffi-types/typespec"
)

type interactiveModel struct {
	err     error
	current *ctype.Type
	theme   theme
	input   textinput.Model
	last    string
	clones  int
}

func newInteractiveModel() *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "{i64, {u8, pointer}, f64}"
	ti.Prompt = "type: "
	ti.Width = 60
	ti.Focus()

	return &interactiveModel{
		theme: newTheme(true),
		input: ti,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.release()
			return m, tea.Quit
		case "ctrl+d":
			m.roundTrip()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != m.last {
		m.reparse()
	}
	return m, cmd
}

// reparse replaces the current tree with one built from the input.
func (m *interactiveModel) reparse() {
	m.last = m.input.Value()
	m.release()
	m.clones = 0

	if strings.TrimSpace(m.last) == "" {
		m.err = nil
		return
	}
	m.current, m.err = typespec.Parse(m.last)
}

// roundTrip clones and frees the current tree once, so the logs show the
// allocator traffic a clone produces.
func (m *interactiveModel) roundTrip() {
	if m.current == nil {
		return
	}
	c := m.current.Clone()
	c.Free()
	m.clones++
}

func (m *interactiveModel) release() {
	if m.current != nil {
		m.current.Free()
		m.current = nil
	}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(m.theme.title.Render("ffi_type explorer"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(m.theme.err.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	case m.current != nil:
		b.WriteString(m.theme.scalar.Render(typespec.Format(m.current.Descriptor())))
		b.WriteString("\n\n")
		b.WriteString(m.theme.renderTree(m.current.Descriptor(), m.current.Owned()))
		if m.clones > 0 {
			b.WriteString(m.theme.ok.Render(fmt.Sprintf("\n%d clone/free round trip(s)", m.clones)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.theme.help.Render("type a signature • ctrl+d clone+free • esc quit"))
	return b.String()
}

func runInteractive() error {
	m := newInteractiveModel()
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	m.release()
	return err
}
