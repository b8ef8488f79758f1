// Package tui implements the root Bubble Tea model for zcontact.
package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zcontact/internal/book"
	"github.com/zarlcorp/zcontact/internal/codec"
	"github.com/zarlcorp/zcontact/internal/config"
	"github.com/zarlcorp/zcontact/internal/contact"
	"github.com/zarlcorp/zcontact/internal/gen"
	"github.com/zarlcorp/zcontact/internal/translate"
)

type viewID int

const (
	viewMenu viewID = iota
	viewGenerate
	viewList
	viewDetail
	viewEdit
	viewPick
)

// Model is the root TUI model. It owns the in-memory contact set; views
// send messages and never mutate the set themselves.
type Model struct {
	version    string
	cfg        config.Config
	gen        *gen.Generator
	fs         zfilesystem.ReadWriteFileFS
	translator translate.Translator

	contacts []contact.Contact

	active   viewID
	menu     menuModel
	generate generateModel
	list     listModel
	detail   detailModel
	edit     editModel
	pick     pickModel

	// terminal dimensions
	width  int
	height int
}

// New creates the root TUI model. contacts is the set loaded at startup;
// translator may be nil, in which case messages render untranslated.
func New(version string, cfg config.Config, g *gen.Generator, fs zfilesystem.ReadWriteFileFS, contacts []contact.Contact, translator translate.Translator) Model {
	return Model{
		version:    version,
		cfg:        cfg,
		gen:        g,
		fs:         fs,
		translator: translator,
		contacts:   contacts,
		active:     viewMenu,
		menu:       newMenuModel(version, len(contacts)),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case navigateMsg:
		return m.navigate(msg.view)

	case generateMsg:
		return m.handleGenerate(msg.count)

	case viewContactMsg:
		m.detail = newDetailModel(msg.contact)
		m.active = viewDetail
		return m, tea.ClearScreen

	case editContactMsg:
		m.edit = newEditModel(msg.contact)
		m.active = viewEdit
		return m, tea.Batch(m.edit.Init(), tea.ClearScreen)

	case deleteContactMsg:
		return m.handleDelete(msg.contact)

	case updateContactMsg:
		return m.handleUpdate(msg)

	case pickContactMsg:
		return m.handlePick(msg.contact)

	case exportMsg:
		return m.handleExport()

	case loadMsg:
		return m.handleLoad()
	}

	return m.updateActive(msg)
}

func (m Model) View() string {
	// the menu includes the logo, render directly
	if m.active == viewMenu {
		return m.menu.View()
	}

	var content string
	switch m.active {
	case viewGenerate:
		content = m.generate.View()
	case viewList:
		content = m.list.View()
	case viewDetail:
		content = m.detail.View()
	case viewEdit:
		content = m.edit.View()
	case viewPick:
		content = m.pick.View()
	}

	header := zstyle.RenderHeader("zcontact", viewTitle(m.active), zstyle.ZburnAccent)
	sep := zstyle.RenderSeparator(m.width)
	footer := zstyle.RenderFooter(helpFor(m.active))

	return "\n" + header + "\n" + sep + "\n" + content + "\n" + footer + "\n"
}

// viewTitle returns the display title for each view.
func viewTitle(id viewID) string {
	switch id {
	case viewGenerate:
		return "Generate Contacts"
	case viewList:
		return "Contacts"
	case viewDetail:
		return "Contact Details"
	case viewEdit:
		return "Edit Contact"
	case viewPick:
		return "Choose Contact"
	}
	return ""
}

// helpFor returns keybinding pairs for each view's footer.
func helpFor(id viewID) []zstyle.HelpPair {
	switch id {
	case viewGenerate:
		return []zstyle.HelpPair{
			{Key: "enter", Desc: "generate"},
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	case viewList:
		return []zstyle.HelpPair{
			{Key: "j/k", Desc: "navigate"},
			{Key: "/", Desc: "filter"},
			{Key: "s", Desc: "sort"},
			{Key: "enter", Desc: "view"},
			{Key: "d", Desc: "delete"},
			{Key: "esc", Desc: "back"},
		}
	case viewDetail:
		return []zstyle.HelpPair{
			{Key: "enter", Desc: "copy field"},
			{Key: "e", Desc: "edit"},
			{Key: "d", Desc: "delete"},
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	case viewEdit:
		return []zstyle.HelpPair{
			{Key: "tab", Desc: "next"},
			{Key: "enter", Desc: "save"},
			{Key: "esc", Desc: "cancel"},
		}
	case viewPick:
		return []zstyle.HelpPair{
			{Key: "j/k", Desc: "navigate"},
			{Key: "enter", Desc: "choose"},
			{Key: "esc", Desc: "cancel"},
		}
	}
	return nil
}

func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.active {
	case viewMenu:
		m.menu, cmd = m.menu.Update(msg)
	case viewGenerate:
		m.generate, cmd = m.generate.Update(msg)
	case viewList:
		m.list, cmd = m.list.Update(msg)
	case viewDetail:
		m.detail, cmd = m.detail.Update(msg)
	case viewEdit:
		m.edit, cmd = m.edit.Update(msg)
	case viewPick:
		m.pick, cmd = m.pick.Update(msg)
	}

	return m, cmd
}

func (m Model) navigate(view viewID) (tea.Model, tea.Cmd) {
	switch view {
	case viewMenu:
		m.menu = newMenuModel(m.version, len(m.contacts))
		m.active = viewMenu
		return m, tea.ClearScreen

	case viewGenerate:
		m.generate = newGenerateModel()
		m.active = viewGenerate
		return m, tea.Batch(m.generate.Init(), tea.ClearScreen)

	case viewList:
		m.list = newListModel(m.contacts)
		m.active = viewList
		return m, tea.ClearScreen

	case viewDetail:
		m.active = viewDetail
		return m, tea.ClearScreen
	}

	return m, nil
}

func (m Model) handleGenerate(count int) (tea.Model, tea.Cmd) {
	contacts, err := book.Generate(count, m.gen, m.cfg.Names, m.cfg.Domains)
	if err != nil {
		m.generate.flash = m.errMsg(err)
		return m, clearFlashAfter()
	}

	// generation replaces the working set, like the original menu did
	m.contacts = contacts
	m.list = newListModel(m.contacts)
	m.list.flash = fmt.Sprintf("%d contacts generated", count)
	m.active = viewList
	return m, tea.Batch(clearFlashAfter(), tea.ClearScreen)
}

// handleDelete applies the delete multiplicity policy: a unique name match
// is removed outright; several matches open the picker.
func (m Model) handleDelete(c contact.Contact) (tea.Model, tea.Cmd) {
	updated, count := book.DeleteByName(m.contacts, c.Name)
	switch {
	case count <= 1:
		m.contacts = updated
		m.list = newListModel(m.contacts)
		m.list.flash = "deleted"
		m.active = viewList
		return m, tea.Batch(clearFlashAfter(), tea.ClearScreen)

	default:
		candidates := book.FilterByName(m.contacts, c.Name)
		m.pick = newPickModel(candidates, pickDelete, c.Name, "", "")
		m.active = viewPick
		return m, tea.ClearScreen
	}
}

// handleUpdate applies the same policy for edits: the name of the contact
// being edited either matches uniquely or the picker resolves it by email.
func (m Model) handleUpdate(msg updateContactMsg) (tea.Model, tea.Cmd) {
	updated, count, err := book.UpdateByName(m.contacts, msg.old.Name, msg.newName, msg.newEmail, m.cfg.Domains)
	if err != nil {
		m.edit.flash = m.errMsg(err)
		return m, clearFlashAfter()
	}

	switch {
	case count == 1:
		m.contacts = updated
		return m.showUpdated(msg.newName, msg.newEmail)

	case count == 0:
		m.edit.flash = m.errMsg(book.ErrNotFound)
		return m, clearFlashAfter()

	default:
		candidates := book.FilterByName(m.contacts, msg.old.Name)
		m.pick = newPickModel(candidates, pickUpdate, msg.old.Name, msg.newName, msg.newEmail)
		m.active = viewPick
		return m, tea.ClearScreen
	}
}

// handlePick resolves an ambiguous delete or update with the candidate the
// user chose, disambiguating by that candidate's email.
func (m Model) handlePick(c contact.Contact) (tea.Model, tea.Cmd) {
	switch m.pick.action {
	case pickDelete:
		updated, err := book.DeleteByEmail(m.contacts, m.pick.term, c.Email)
		if err != nil {
			m.pick.flash = m.errMsg(err)
			return m, clearFlashAfter()
		}
		m.contacts = updated
		m.list = newListModel(m.contacts)
		m.list.flash = "deleted"
		m.active = viewList
		return m, tea.Batch(clearFlashAfter(), tea.ClearScreen)

	case pickUpdate:
		updated, err := book.UpdateByEmail(m.contacts, m.pick.term, c.Email, m.pick.newName, m.pick.newEmail, m.cfg.Domains)
		if err != nil {
			m.pick.flash = m.errMsg(err)
			return m, clearFlashAfter()
		}
		m.contacts = updated
		return m.showUpdated(m.pick.newName, m.pick.newEmail)
	}

	return m, nil
}

func (m Model) showUpdated(name, email string) (tea.Model, tea.Cmd) {
	for _, c := range m.contacts {
		if c.Name == name && c.Email == email {
			m.detail = newDetailModel(c)
			m.detail.flash = "updated"
			m.active = viewDetail
			return m, tea.Batch(clearFlashAfter(), tea.ClearScreen)
		}
	}

	m.list = newListModel(m.contacts)
	m.list.flash = "updated"
	m.active = viewList
	return m, tea.Batch(clearFlashAfter(), tea.ClearScreen)
}

func (m Model) handleExport() (tea.Model, tea.Cmd) {
	if err := codec.Export(m.fs, m.cfg.ContactsFile, m.contacts); err != nil {
		m.menu.flash = m.errMsg(err)
		return m, clearFlashAfter()
	}

	m.menu.flash = "exported to " + m.cfg.ContactsFile
	return m, clearFlashAfter()
}

func (m Model) handleLoad() (tea.Model, tea.Cmd) {
	contacts, err := codec.Load(m.fs, m.cfg.ContactsFile, m.cfg.Domains)
	if err != nil {
		if errors.Is(err, codec.ErrFileNotFound) {
			m.menu.flash = "no contacts file yet"
			return m, clearFlashAfter()
		}
		m.menu.flash = m.errMsg(err)
		return m, clearFlashAfter()
	}

	m.contacts = contacts
	m.menu = newMenuModel(m.version, len(m.contacts))
	m.menu.flash = fmt.Sprintf("%d contacts loaded", len(contacts))
	return m, clearFlashAfter()
}

// errMsg renders an error for display, through the translator when one is
// configured.
func (m Model) errMsg(err error) string {
	return translate.Message(context.Background(), m.translator, err)
}

// Contacts returns the current in-memory set. Used by main to offer a
// final export and by tests.
func (m Model) Contacts() []contact.Contact {
	return m.contacts
}
