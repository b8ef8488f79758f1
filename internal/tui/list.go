package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zcontact/internal/book"
	"github.com/zarlcorp/zcontact/internal/contact"
)

// listModel displays the contact set with inline filtering and sorting.
// all holds the full set; visible is the filtered (and possibly sorted)
// projection the cursor moves over.
type listModel struct {
	all     []contact.Contact
	visible []contact.Contact
	cursor  int
	sorted  bool

	filter    textinput.Model
	filtering bool

	flash string
}

// viewContactMsg requests viewing a specific contact.
type viewContactMsg struct {
	contact contact.Contact
}

// deleteContactMsg starts the delete flow for a contact.
type deleteContactMsg struct {
	contact contact.Contact
}

func newListModel(contacts []contact.Contact) listModel {
	ti := textinput.New()
	ti.Placeholder = "name"
	ti.CharLimit = 64
	ti.Width = 30

	return listModel{
		all:     contacts,
		visible: contacts,
		filter:  ti,
	}
}

func (m listModel) Init() tea.Cmd {
	return nil
}

func (m listModel) Update(msg tea.Msg) (listModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.filtering {
			return m.handleFilterKey(msg)
		}
		return m.handleKey(msg)

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	return m, nil
}

func (m listModel) handleFilterKey(msg tea.KeyMsg) (listModel, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit

	case tea.KeyEsc:
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.visible = m.project()
		m.cursor = 0
		return m, nil

	case tea.KeyEnter:
		m.filtering = false
		m.filter.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.visible = m.project()
	m.cursor = 0
	return m, cmd
}

func (m listModel) handleKey(msg tea.KeyMsg) (listModel, tea.Cmd) {
	if key.Matches(msg, zstyle.KeyQuit) {
		return m, tea.Quit
	}

	if key.Matches(msg, zstyle.KeyBack) {
		return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
	}

	switch msg.String() {
	case "/":
		m.filtering = true
		m.filter.Focus()
		return m, textinput.Blink

	case "s":
		m.sorted = !m.sorted
		m.visible = m.project()
		m.cursor = 0
		return m, nil
	}

	if len(m.visible) == 0 {
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyUp) {
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyDown) {
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyEnter) {
		c := m.visible[m.cursor]
		return m, func() tea.Msg { return viewContactMsg{contact: c} }
	}

	if msg.String() == "d" {
		c := m.visible[m.cursor]
		return m, func() tea.Msg { return deleteContactMsg{contact: c} }
	}

	return m, nil
}

// project applies the current filter term and sort flag to the full set.
func (m listModel) project() []contact.Contact {
	out := book.FilterByName(m.all, m.filter.Value())
	if m.sorted {
		out = book.SortByName(out)
	}
	return out
}

func (m listModel) View() string {
	accentStyle := lipgloss.NewStyle().Foreground(zstyle.ZburnAccent).Bold(true)

	s := "\n"

	if m.filtering || m.filter.Value() != "" {
		s += "  " + zstyle.MutedText.Render("filter:") + " " + m.filter.View() + "\n\n"
	}

	if len(m.visible) == 0 {
		if len(m.all) == 0 {
			s += "  " + zstyle.MutedText.Render("no contacts, generate or load some first") + "\n"
		} else {
			s += "  " + zstyle.MutedText.Render("no contact matches the filter") + "\n"
		}
		s += "\n\n"
		return s
	}

	for i, c := range m.visible {
		name := truncate(c.Name, 24)
		email := truncate(c.Email, 34)
		line := fmt.Sprintf("%-24s %-34s", name, email)

		if i == m.cursor {
			s += "  " + accentStyle.Render("▸") + " " + line + "\n"
		} else {
			s += "    " + line + "\n"
		}
	}

	if m.sorted {
		s += "\n  " + zstyle.MutedText.Render("sorted by name") + "\n"
	} else {
		s += "\n\n"
	}

	// always reserve a line for flash to prevent layout shift
	if m.flash != "" {
		s += "  " + zstyle.StatusOK.Render(m.flash) + "\n"
	} else {
		s += "\n"
	}

	return s
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
