package views

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pablasso/sensei/internal/tui/components"
	"github.com/pablasso/sensei/internal/tui/msgs"
	"github.com/pablasso/sensei/internal/tui/styles"
)

// FilePickerModel is the model for the schedule file picker view.
type FilePickerModel struct {
	picker filepicker.Model
	width  int
	height int
	err    error
}

// NewFilePickerModel creates a FilePickerModel starting in the given
// directory, restricted to MS Project XML exports.
func NewFilePickerModel(startDir string) FilePickerModel {
	fp := filepicker.New()
	fp.CurrentDirectory = startDir
	fp.AllowedTypes = []string{".xml"}
	fp.ShowHidden = false
	fp.ShowPermissions = false
	fp.ShowSize = false
	fp.DirAllowed = false
	fp.FileAllowed = true

	return FilePickerModel{picker: fp}
}

// Init implements tea.Model.
func (m FilePickerModel) Init() tea.Cmd {
	return m.picker.Init()
}

// Update implements tea.Model.
func (m FilePickerModel) Update(msg tea.Msg) (FilePickerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Reserve space for title (2 lines) and status bar (1 line)
		m.picker.Height = m.height - 4
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return msgs.GoToHomeMsg{} }
		case "ctrl+c":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if didSelect, path := m.picker.DidSelectFile(msg); didSelect {
		absPath, err := filepath.Abs(path)
		if err != nil {
			m.err = err
			return m, nil
		}
		return m, func() tea.Msg { return msgs.FileSelectedMsg{Path: absPath} }
	}

	// Non-.xml selections are disabled by the AllowedTypes filter.
	return m, cmd
}

// View implements tea.Model.
func (m FilePickerModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var b strings.Builder

	title := styles.TitleStyle.Render("Select Project Schedule (.xml)")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, title))
	b.WriteString("\n\n")
	b.WriteString(m.picker.View())

	lines := strings.Count(b.String(), "\n") + 1
	remainingLines := m.height - lines - 1
	if remainingLines > 0 {
		b.WriteString(strings.Repeat("\n", remainingLines))
	}

	statusItems := []string{"↑↓ Navigate", "Enter Select", "Esc Back"}
	b.WriteString(components.NewStatusBar().Render(m.width, statusItems))

	return b.String()
}

// SetSize updates the model dimensions.
func (m *FilePickerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.picker.Height = height - 4
}

// Err returns any error that occurred.
func (m FilePickerModel) Err() error {
	return m.err
}
