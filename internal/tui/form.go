package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zcontact/internal/contact"
)

// editModel is the edit form for one contact: name and email inputs.
type editModel struct {
	old    contact.Contact
	inputs []textinput.Model
	focus  int
	flash  string
}

// updateContactMsg asks the root to replace old with the new values.
type updateContactMsg struct {
	old      contact.Contact
	newName  string
	newEmail string
}

func newEditModel(c contact.Contact) editModel {
	name := textinput.New()
	name.Placeholder = "name"
	name.SetValue(c.Name)
	name.CharLimit = 64
	name.Width = 40
	name.Focus()

	email := textinput.New()
	email.Placeholder = "email"
	email.SetValue(c.Email)
	email.CharLimit = 128
	email.Width = 40

	return editModel{
		old:    c,
		inputs: []textinput.Model{name, email},
	}
}

func (m editModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m editModel) Update(msg tea.Msg) (editModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit

		case tea.KeyEsc:
			old := m.old
			return m, func() tea.Msg { return viewContactMsg{contact: old} }

		case tea.KeyTab, tea.KeyShiftTab:
			return m.cycleFocus(msg.Type == tea.KeyShiftTab), nil
		}

		if key.Matches(msg, zstyle.KeyEnter) {
			return m.handleSubmit()
		}

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m editModel) cycleFocus(backwards bool) editModel {
	m.inputs[m.focus].Blur()
	if backwards {
		m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	} else {
		m.focus = (m.focus + 1) % len(m.inputs)
	}
	m.inputs[m.focus].Focus()
	return m
}

func (m editModel) handleSubmit() (editModel, tea.Cmd) {
	newName := m.inputs[0].Value()
	newEmail := m.inputs[1].Value()
	if newName == "" || newEmail == "" {
		m.flash = "name and email are required"
		return m, clearFlashAfter()
	}

	old := m.old
	return m, func() tea.Msg {
		return updateContactMsg{old: old, newName: newName, newEmail: newEmail}
	}
}

func (m editModel) View() string {
	s := "\n  " + zstyle.Subtitle.Render(m.old.Name) + "\n\n"

	labels := []string{"nome", "email"}
	for i, in := range m.inputs {
		s += "  " + zstyle.MutedText.Render(labels[i]) + "\n"
		s += "  " + in.View() + "\n\n"
	}

	// always reserve a line for flash to prevent layout shift
	if m.flash != "" {
		s += "  " + zstyle.StatusErr.Render(m.flash) + "\n"
	} else {
		s += "\n"
	}

	return s
}
