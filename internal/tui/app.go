package tui

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/quantmind-br/ado2tf/internal/config"
)

type state int

const (
	stateMenu state = iota
	stateForm
	stateConfirm
	stateSaved
	stateError
)

type Model struct {
	state       state
	values      *ConfigValues
	path        string
	menuIndex   int
	currentForm *huh.Form
	err         error
	width       int
	height      int
	dirty       bool
	saved       bool
	saveFunc    func(*config.Config) error
	accessible  bool
}

type Options struct {
	Config *config.Config
	// Path is shown in the header
	Path       string
	SaveFunc   func(*config.Config) error
	Accessible bool
	Input      io.Reader
	Output     io.Writer
}

func NewModel(opts Options) Model {
	return Model{
		state:      stateMenu,
		values:     FromConfig(opts.Config),
		path:       opts.Path,
		saveFunc:   opts.SaveFunc,
		accessible: opts.Accessible,
	}
}

// Saved reports whether the configuration was written during the session
func (m Model) Saved() bool {
	return m.saved
}

// Values exposes the values being edited
func (m Model) Values() *ConfigValues {
	return m.values
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.state == stateForm && m.currentForm != nil {
			return m.forwardToForm(msg)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case stateMenu:
			return m.updateMenu(msg)
		case stateForm:
			if msg.String() == "esc" {
				m.state = stateMenu
				return m, nil
			}
			return m.forwardToForm(msg)
		case stateConfirm:
			return m.updateConfirm(msg)
		case stateSaved, stateError:
			return m, tea.Quit
		}
	}

	if m.state == stateForm && m.currentForm != nil {
		return m.forwardToForm(msg)
	}

	return m, nil
}

func (m Model) forwardToForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.currentForm == nil {
		return m, nil
	}
	form, cmd := m.currentForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.currentForm = f
	}
	if m.currentForm.State == huh.StateCompleted {
		m.dirty = true
		m.state = stateMenu
		return m, nil
	}
	return m, cmd
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		if m.dirty {
			m.state = stateConfirm
			return m, nil
		}
		return m, tea.Quit

	case "up", "k":
		if m.menuIndex > 0 {
			m.menuIndex--
		}

	case "down", "j":
		// The extra slot past the categories is the save entry
		if m.menuIndex < len(Categories) {
			m.menuIndex++
		}

	case "enter":
		if m.menuIndex == len(Categories) {
			return m.handleSave()
		}
		return m.openForm(Categories[m.menuIndex].ID)

	case "s":
		return m.handleSave()
	}

	return m, nil
}

func (m Model) openForm(categoryID string) (tea.Model, tea.Cmd) {
	form := GetFormForCategory(categoryID, m.values)
	if form == nil {
		return m, nil
	}
	if m.accessible {
		form = form.WithAccessible(true).WithTheme(GetAccessibleTheme())
	}
	m.currentForm = form
	m.state = stateForm
	return m, form.Init()
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		return m.handleSave()
	case "n", "N", "esc":
		return m, tea.Quit
	case "c":
		m.state = stateMenu
	}
	return m, nil
}

func (m Model) handleSave() (tea.Model, tea.Cmd) {
	cfg, err := m.values.ToConfig()
	if err != nil {
		m.state = stateError
		m.err = err
		return m, nil
	}

	if m.saveFunc != nil {
		if err := m.saveFunc(cfg); err != nil {
			m.state = stateError
			m.err = err
			return m, nil
		}
	}

	m.state = stateSaved
	m.dirty = false
	m.saved = true
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("ado2tf configuration"))
	s.WriteString("\n")
	if m.path != "" {
		s.WriteString(PathStyle.Render(m.path))
		s.WriteString("\n")
	}
	s.WriteString("\n")

	switch m.state {
	case stateMenu:
		s.WriteString(m.renderMenu())
	case stateForm:
		if m.currentForm != nil {
			s.WriteString(m.currentForm.View())
		}
	case stateConfirm:
		s.WriteString(ConfirmStyle.Render("You have unsaved changes.\n\nSave before quitting?\n\n[y] Yes  [n] No  [c] Cancel"))
	case stateSaved:
		s.WriteString(SuccessStyle.Render("Configuration saved."))
		s.WriteString("\n\nPress any key to exit.")
	case stateError:
		s.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		s.WriteString("\n\nPress any key to exit.")
	}

	return s.String()
}

func (m Model) renderMenu() string {
	var s strings.Builder

	for i, cat := range Categories {
		cursor := "  "
		style := UnselectedStyle
		if i == m.menuIndex {
			cursor = "> "
			style = SelectedStyle
		}
		s.WriteString(style.Render(cursor + cat.Name))
		if i == m.menuIndex {
			s.WriteString(DescriptionStyle.Render("  " + cat.Description))
		}
		s.WriteString("\n")
	}

	saveStyle := UnselectedStyle
	saveCursor := "  "
	if m.menuIndex == len(Categories) {
		saveCursor = "> "
		saveStyle = SelectedStyle
	}
	saveText := saveCursor + "Save Configuration"
	if m.dirty {
		saveText += " *"
	}
	s.WriteString("\n")
	s.WriteString(saveStyle.Render(saveText))
	s.WriteString("\n\n")
	s.WriteString(HelpStyle.Render("↑/↓ navigate • enter select • s save • q quit"))

	return s.String()
}

// Run starts the editor and reports whether the configuration was saved
func Run(opts Options) (bool, error) {
	var progOpts []tea.ProgramOption
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}
	if !opts.Accessible {
		progOpts = append(progOpts, tea.WithAltScreen())
	}

	final, err := tea.NewProgram(NewModel(opts), progOpts...).Run()
	if err != nil {
		return false, err
	}
	if m, ok := final.(Model); ok {
		return m.Saved(), nil
	}
	return false, nil
}
