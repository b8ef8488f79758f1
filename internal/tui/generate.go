package tui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
)

// generateModel asks how many contacts to generate.
type generateModel struct {
	input textinput.Model
	flash string
}

// generateMsg asks the root to generate count random contacts.
type generateMsg struct {
	count int
}

// flashMsg clears the flash after a timeout.
type flashMsg struct{}

func newGenerateModel() generateModel {
	ti := textinput.New()
	ti.Placeholder = "10"
	ti.Focus()
	ti.CharLimit = 4
	ti.Width = 10

	return generateModel{input: ti}
}

func (m generateModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m generateModel) Update(msg tea.Msg) (generateModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		if key.Matches(msg, zstyle.KeyBack) {
			return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
		}

		if key.Matches(msg, zstyle.KeyEnter) {
			return m.handleSubmit()
		}

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m generateModel) handleSubmit() (generateModel, tea.Cmd) {
	val := m.input.Value()
	if val == "" {
		return m, nil
	}

	n, err := strconv.Atoi(val)
	if err != nil || n < 1 {
		m.flash = fmt.Sprintf("invalid count %q", val)
		m.input.SetValue("")
		return m, clearFlashAfter()
	}

	return m, func() tea.Msg { return generateMsg{count: n} }
}

func clearFlashAfter() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return flashMsg{}
	})
}

func (m generateModel) View() string {
	s := "\n  " + zstyle.MutedText.Render("how many contacts?") + "\n\n"
	s += "  " + m.input.View() + "\n\n"

	// always reserve a line for flash to prevent layout shift
	if m.flash != "" {
		s += "  " + zstyle.StatusErr.Render(m.flash) + "\n"
	} else {
		s += "\n"
	}

	return s
}
