// Package tui implements the interactive terminal UI.
package tui

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pablasso/sensei/internal/config"
	"github.com/pablasso/sensei/internal/tui/msgs"
	"github.com/pablasso/sensei/internal/tui/views"
)

// View represents the different screens in the TUI.
type View int

const (
	ViewHome View = iota
	ViewFilePicker
	ViewConsole
)

// Model is the main Bubble Tea model that routes between views.
type Model struct {
	currentView View
	cfg         config.Config

	home    views.HomeModel
	picker  views.FilePickerModel
	console views.ConsoleModel

	width  int
	height int
}

// Run starts the TUI application.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// New creates the root model.
func New(cfg config.Config) Model {
	return Model{
		currentView: ViewHome,
		cfg:         cfg,
		home:        views.NewHomeModel(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.home.Init()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.home.SetSize(msg.Width, msg.Height)
		m.picker.SetSize(msg.Width, msg.Height)
		m.console.SetSize(msg.Width, msg.Height)
		return m, nil

	case msgs.GoToHomeMsg:
		m.currentView = ViewHome
		m.home.SetSize(m.width, m.height)
		return m, m.home.Init()

	case msgs.GoToFilePickerMsg:
		startDir, err := os.Getwd()
		if err != nil {
			startDir = "."
		}
		m.picker = views.NewFilePickerModel(startDir)
		m.picker.SetSize(m.width, m.height)
		m.currentView = ViewFilePicker
		return m, m.picker.Init()

	case msgs.FileSelectedMsg:
		// A fresh console means any prior parse result and AI response are
		// discarded before the new parse starts.
		m.console = views.NewConsoleModel(m.cfg, msg.Path)
		m.console.SetSize(m.width, m.height)
		m.currentView = ViewConsole
		return m, m.console.Init()
	}

	var cmd tea.Cmd
	switch m.currentView {
	case ViewHome:
		m.home, cmd = m.home.Update(msg)
	case ViewFilePicker:
		m.picker, cmd = m.picker.Update(msg)
	case ViewConsole:
		m.console, cmd = m.console.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	switch m.currentView {
	case ViewFilePicker:
		return m.picker.View()
	case ViewConsole:
		return m.console.View()
	default:
		return m.home.View()
	}
}
