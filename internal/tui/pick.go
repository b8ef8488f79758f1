package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zcontact/internal/contact"
)

type pickAction int

const (
	pickDelete pickAction = iota
	pickUpdate
)

// pickModel disambiguates an ambiguous name match: it lists the candidate
// contacts and lets the user choose the one to delete or update. The
// chosen candidate's email becomes the secondary key.
type pickModel struct {
	candidates []contact.Contact
	action     pickAction
	term       string
	newName    string
	newEmail   string
	cursor     int
	flash      string
}

// pickContactMsg resolves the ambiguity with the chosen candidate.
type pickContactMsg struct {
	contact contact.Contact
}

func newPickModel(candidates []contact.Contact, action pickAction, term, newName, newEmail string) pickModel {
	return pickModel{
		candidates: candidates,
		action:     action,
		term:       term,
		newName:    newName,
		newEmail:   newEmail,
	}
}

func (m pickModel) Init() tea.Cmd {
	return nil
}

func (m pickModel) Update(msg tea.Msg) (pickModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	return m, nil
}

func (m pickModel) handleKey(msg tea.KeyMsg) (pickModel, tea.Cmd) {
	if key.Matches(msg, zstyle.KeyQuit) {
		return m, tea.Quit
	}

	if key.Matches(msg, zstyle.KeyBack) {
		return m, func() tea.Msg { return navigateMsg{view: viewList} }
	}

	if key.Matches(msg, zstyle.KeyUp) {
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyDown) {
		if m.cursor < len(m.candidates)-1 {
			m.cursor++
		}
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyEnter) {
		c := m.candidates[m.cursor]
		return m, func() tea.Msg { return pickContactMsg{contact: c} }
	}

	return m, nil
}

func (m pickModel) View() string {
	accentStyle := lipgloss.NewStyle().Foreground(zstyle.ZburnAccent).Bold(true)

	verb := "delete"
	if m.action == pickUpdate {
		verb = "update"
	}

	s := "\n  " + zstyle.MutedText.Render(
		fmt.Sprintf("%d contacts match %q, choose the one to %s", len(m.candidates), m.term, verb)) + "\n\n"

	for i, c := range m.candidates {
		line := fmt.Sprintf("%-24s %-34s", truncate(c.Name, 24), truncate(c.Email, 34))
		if i == m.cursor {
			s += "  " + accentStyle.Render("▸") + " " + line + "\n"
		} else {
			s += "    " + line + "\n"
		}
	}

	s += "\n"

	// always reserve a line for flash to prevent layout shift
	if m.flash != "" {
		s += "  " + zstyle.StatusErr.Render(m.flash) + "\n"
	} else {
		s += "\n"
	}

	return s
}
