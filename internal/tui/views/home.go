package views

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pablasso/sensei/internal/tui/components"
	"github.com/pablasso/sensei/internal/tui/msgs"
	"github.com/pablasso/sensei/internal/tui/styles"
)

// MenuItem represents a menu option in the home view.
type MenuItem struct {
	Label       string
	Shortcut    string
	Description string
}

// HomeModel is the model for the landing screen.
type HomeModel struct {
	items  []MenuItem
	cursor int
	width  int
	height int
}

// NewHomeModel creates a new HomeModel.
func NewHomeModel() HomeModel {
	return HomeModel{
		items: []MenuItem{
			{Label: "Open Schedule", Shortcut: "o", Description: "Pick an MS Project XML export to review"},
			{Label: "Quit", Shortcut: "q"},
		},
	}
}

// Init implements tea.Model.
func (m HomeModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m HomeModel) Update(msg tea.Msg) (HomeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "o":
			return m, func() tea.Msg { return msgs.GoToFilePickerMsg{} }
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "enter":
			switch m.items[m.cursor].Shortcut {
			case "o":
				return m, func() tea.Msg { return msgs.GoToFilePickerMsg{} }
			case "q":
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m HomeModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var b strings.Builder

	title := styles.TitleStyle.Render("S E N S E I")
	tagline := styles.SubtleStyle.Render("AI Schedule Review for MS Project")
	titleLine := lipgloss.PlaceHorizontal(m.width, lipgloss.Center, title)
	taglineLine := lipgloss.PlaceHorizontal(m.width, lipgloss.Center, tagline)

	var menuLines []string
	for i, item := range m.items {
		line := "[" + item.Shortcut + "] " + item.Label
		if i == m.cursor {
			line = styles.SelectedStyle.Render(line)
		} else {
			line = styles.SubtleStyle.Render(line)
		}
		if item.Description != "" {
			line += "  " + styles.SubtleStyle.Render(item.Description)
		}
		menuLines = append(menuLines, line)
	}
	menu := strings.Join(menuLines, "\n")

	statusBarHeight := 1
	contentHeight := 4 + len(menuLines)
	availableHeight := m.height - statusBarHeight

	topPadding := (availableHeight - contentHeight) / 2
	if topPadding < 0 {
		topPadding = 0
	}

	b.WriteString(strings.Repeat("\n", topPadding))
	b.WriteString(titleLine)
	b.WriteString("\n")
	b.WriteString(taglineLine)
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, menu))

	bottomPadding := availableHeight - topPadding - contentHeight
	if bottomPadding > 0 {
		b.WriteString(strings.Repeat("\n", bottomPadding))
	}

	statusItems := []string{"↑↓ Navigate", "Enter Select", "q Quit"}
	b.WriteString(components.NewStatusBar().Render(m.width, statusItems))

	return b.String()
}

// SetSize updates the model dimensions.
func (m *HomeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Cursor returns the current cursor position.
func (m HomeModel) Cursor() int {
	return m.cursor
}
