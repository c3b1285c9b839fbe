package views

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pablasso/sensei/internal/config"
	"github.com/pablasso/sensei/internal/schedule"
	"github.com/pablasso/sensei/internal/session"
	"github.com/pablasso/sensei/internal/tui/components"
	"github.com/pablasso/sensei/internal/tui/msgs"
	"github.com/pablasso/sensei/internal/tui/styles"
)

// ConsultFunc performs the AI round-trip. Injected so tests can stub it.
type ConsultFunc func(ctx context.Context, tasks []schedule.Task, question, apiKey string) (string, error)

// consoleFocus identifies which input field has keyboard focus.
type consoleFocus int

const (
	focusQuestion consoleFocus = iota
	focusCredential
)

// ParseDoneMsg carries the outcome of the background parse.
type ParseDoneMsg struct {
	Tasks []schedule.Task
	Err   error
}

// ConsultDoneMsg carries the outcome of the AI round-trip.
type ConsultDoneMsg struct {
	Response string
	Err      error
}

// ConsoleModel drives one schedule review: it parses the selected file on
// entry, collects the question and credential, runs the consult call, and
// renders the response. All of its mutable state lives in a session.State.
type ConsoleModel struct {
	cfg   config.Config
	state *session.State

	question   textarea.Model
	credential textinput.Model
	focus      consoleFocus

	spinner  spinner.Model
	response viewport.Model

	consult ConsultFunc

	width  int
	height int
}

// NewConsoleModel creates a console for the given schedule file. The parse
// starts when Init runs; any prior session state is gone by construction.
func NewConsoleModel(cfg config.Config, path string) ConsoleModel {
	st := session.New()
	st.SelectFile(path)

	qa := textarea.New()
	qa.Placeholder = "Optional question... leave blank for a full audit"
	qa.SetHeight(3)
	qa.ShowLineNumbers = false
	qa.Prompt = ""
	qa.FocusedStyle.Base = lipgloss.NewStyle()
	qa.BlurredStyle.Base = lipgloss.NewStyle()
	qa.FocusedStyle.CursorLine = lipgloss.NewStyle()
	qa.BlurredStyle.CursorLine = lipgloss.NewStyle()
	qa.Focus()

	cred := textinput.New()
	cred.Placeholder = "API key"
	cred.EchoMode = textinput.EchoPassword
	cred.EchoCharacter = '•'
	cred.Prompt = ""
	// Prefill from the environment so most users never type the key.
	cred.SetValue(config.APIKey())

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SelectedStyle

	m := ConsoleModel{
		cfg:        cfg,
		state:      st,
		question:   qa,
		credential: cred,
		spinner:    sp,
		response:   viewport.New(80, 10),
	}
	m.consult = m.defaultConsult
	return m
}

// defaultConsult builds a real client from config and the given credential.
func (m ConsoleModel) defaultConsult(ctx context.Context, tasks []schedule.Task, question, apiKey string) (string, error) {
	return m.cfg.Client(apiKey).Consult(ctx, tasks, question)
}

// SetConsultFunc replaces the AI round-trip (for testing).
func (m *ConsoleModel) SetConsultFunc(f ConsultFunc) {
	m.consult = f
}

// State exposes the session state (for testing).
func (m ConsoleModel) State() *session.State {
	return m.state
}

// Init implements tea.Model.
func (m ConsoleModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		textarea.Blink,
		parseFileCmd(m.state.FilePath),
	)
}

// parseFileCmd reads and parses the schedule in the background.
func parseFileCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return ParseDoneMsg{Err: err}
		}
		defer f.Close()

		tasks, err := schedule.Parse(f)
		return ParseDoneMsg{Tasks: tasks, Err: err}
	}
}

// Update implements tea.Model.
func (m ConsoleModel) Update(msg tea.Msg) (ConsoleModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ParseDoneMsg:
		if msg.Err != nil {
			m.state.SetParseError(msg.Err)
		} else {
			m.state.SetTasks(msg.Tasks)
		}
		return m, nil

	case ConsultDoneMsg:
		m.state.FinishConsult(msg.Response, msg.Err)
		if msg.Err == nil {
			m.response.SetContent(lipgloss.NewStyle().Width(m.response.Width).Render(msg.Response))
			m.response.GotoTop()
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			// The in-flight request cannot be aborted; leaving just
			// abandons its result with the session.
			return m, func() tea.Msg { return msgs.GoToHomeMsg{} }
		case "tab", "shift+tab":
			m.toggleFocus()
			return m, nil
		case "ctrl+s":
			return m, m.sendCmd()
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.response, cmd = m.response.Update(msg)
			return m, cmd
		}
	}

	// Everything else goes to the focused input.
	var cmd tea.Cmd
	if m.focus == focusQuestion {
		m.question, cmd = m.question.Update(msg)
	} else {
		m.credential, cmd = m.credential.Update(msg)
	}
	return m, cmd
}

func (m *ConsoleModel) toggleFocus() {
	if m.focus == focusQuestion {
		m.focus = focusCredential
		m.question.Blur()
		m.credential.Focus()
	} else {
		m.focus = focusQuestion
		m.credential.Blur()
		m.question.Focus()
	}
}

// sendCmd starts the consult round-trip. A second send while one is in
// flight is ignored.
func (m *ConsoleModel) sendCmd() tea.Cmd {
	if m.state.Loading {
		return nil
	}

	m.state.Question = m.question.Value()
	m.state.Credential = m.credential.Value()
	m.state.BeginConsult()

	tasks := schedule.ForAnalysis(m.state.Tasks)
	question := m.state.Question
	apiKey := m.state.Credential
	consult := m.consult

	return tea.Batch(
		m.spinner.Tick,
		func() tea.Msg {
			response, err := consult(context.Background(), tasks, question, apiKey)
			return ConsultDoneMsg{Response: response, Err: err}
		},
	)
}

// View implements tea.Model.
func (m ConsoleModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var b strings.Builder

	title := styles.TitleStyle.Render("Reviewing " + filepath.Base(m.state.FilePath))
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	b.WriteString(m.parseStatusLine())
	b.WriteString("\n\n")

	questionBox := styles.BoxStyle
	credBox := styles.BoxStyle
	if m.focus == focusQuestion {
		questionBox = styles.FocusedBoxStyle
	} else {
		credBox = styles.FocusedBoxStyle
	}

	b.WriteString(styles.SubtleStyle.Render("Question"))
	b.WriteString("\n")
	b.WriteString(questionBox.Width(m.width - 2).Render(m.question.View()))
	b.WriteString("\n")
	b.WriteString(styles.SubtleStyle.Render("API key"))
	b.WriteString("\n")
	b.WriteString(credBox.Width(m.width - 2).Render(m.credential.View()))
	b.WriteString("\n\n")

	b.WriteString(m.responseArea())
	b.WriteString("\n")

	lines := strings.Count(b.String(), "\n") + 1
	if remaining := m.height - lines - 1; remaining > 0 {
		b.WriteString(strings.Repeat("\n", remaining))
	}

	statusItems := []string{"Tab Switch Field", "Ctrl+S Send", "PgUp/PgDn Scroll", "Esc Back"}
	b.WriteString(components.NewStatusBar().Render(m.width, statusItems))

	return b.String()
}

// parseStatusLine summarizes the parse outcome, previewing the first task on
// success.
func (m ConsoleModel) parseStatusLine() string {
	switch {
	case m.state.ParseErr != nil:
		return styles.ErrorStyle.Render(m.state.ParseErr.Error())
	case !m.state.HasTasks():
		return m.spinner.View() + " Parsing schedule..."
	default:
		first := m.state.Tasks[0]
		leaves := schedule.Leaves(m.state.Tasks)
		return styles.SuccessStyle.Render(fmt.Sprintf("%d tasks (%d leaf)", len(m.state.Tasks), len(leaves))) +
			styles.SubtleStyle.Render(fmt.Sprintf("  first: #%d %s (%s)", first.UID, first.Name, first.Duration))
	}
}

func (m ConsoleModel) responseArea() string {
	switch {
	case m.state.Loading:
		return m.spinner.View() + " Consulting ScheduleSensei..."
	case m.state.ConsultErr != nil:
		return styles.ErrorStyle.Render(m.state.ConsultErr.Error())
	case m.state.Response != "":
		return m.response.View()
	default:
		return styles.SubtleStyle.Render("No response yet. Ctrl+S to send.")
	}
}

// SetSize updates the model dimensions and re-lays-out the inputs.
func (m *ConsoleModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.question.SetWidth(width - 6)
	m.credential.Width = width - 8
	m.response.Width = width - 2

	// Title, parse line, two boxed inputs with labels, hints, status bar.
	fixed := 18
	vh := height - fixed
	if vh < 3 {
		vh = 3
	}
	m.response.Height = vh
}
