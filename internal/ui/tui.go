package ui

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/kiki-go/internal/session"
)

var (
	colorBorder = lipgloss.Color("#3F4451")
	colorMuted  = lipgloss.Color("#636B78")
	colorRed    = lipgloss.Color("#E06C75")
	colorYellow = lipgloss.Color("#E5C07B")
	colorBlue   = lipgloss.Color("#61AFEF")

	titleStyle   = lipgloss.NewStyle().Foreground(colorBlue).Bold(true).PaddingLeft(1)
	outputStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder).Padding(0, 1)
	inputStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBlue).Padding(0, 1)
	echoStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle   = lipgloss.NewStyle().Foreground(colorRed)
	warningStyle = lipgloss.NewStyle().Foreground(colorYellow)
	footerStyle  = lipgloss.NewStyle().Foreground(colorMuted).PaddingLeft(1)
)

type keyMap struct {
	Submit   key.Binding
	Quit     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "run"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll down"),
		),
	}
}

// RunTUI runs sess in a full-screen terminal program until the user types
// bye or quits.
func RunTUI(ctx context.Context, sess *session.Session) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	defer sess.Close()
	model := newTUIModel(sess)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type tuiModel struct {
	sess     *session.Session
	input    textinput.Model
	viewport viewport.Model
	keys     keyMap
	entries  []string
	ready    bool
	done     bool
	width    int
}

func newTUIModel(sess *session.Session) *tuiModel {
	ti := textinput.New()
	ti.Placeholder = "todo read book"
	ti.Prompt = "> "
	ti.CharLimit = 0
	ti.Width = 60
	ti.Focus()

	m := &tuiModel{
		sess:     sess,
		input:    ti,
		viewport: viewport.New(60, 10),
		keys:     defaultKeyMap(),
		width:    60,
	}
	if diag := sess.Load(); diag != "" {
		m.append(errorStyle.Render(diag))
	}
	m.append(session.Welcome)
	return m
}

func (m *tuiModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.ready = true
		// title, input box (3), footer, output borders (2)
		m.viewport.Width = max(msg.Width-4, 10)
		m.viewport.Height = max(msg.Height-7, 1)
		m.input.Width = max(msg.Width-8, 10)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.sess.Close()
			return m, tea.Quit
		case key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.PageDown):
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		case key.Matches(msg, m.keys.Submit):
			return m, m.submit()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit hands the typed line to the session and records the reply.
func (m *tuiModel) submit() tea.Cmd {
	line := m.input.Value()
	m.input.Reset()
	if strings.TrimSpace(line) == "" {
		return nil
	}

	reply := m.sess.Handle(line)
	m.append(echoStyle.Render("> " + line))
	switch {
	case reply.Error != "":
		m.append(errorStyle.Render(reply.Error))
	default:
		m.append(reply.Message)
		if reply.Warning != "" {
			m.append(warningStyle.Render(reply.Warning))
		}
	}

	if reply.Exit {
		m.done = true
		m.sess.Close()
		return tea.Quit
	}
	return nil
}

func (m *tuiModel) append(entry string) {
	m.entries = append(m.entries, entry)
	m.refresh()
}

func (m *tuiModel) refresh() {
	m.viewport.SetContent(strings.Join(m.entries, "\n\n"))
	m.viewport.GotoBottom()
}

func (m *tuiModel) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Kiki"))
	b.WriteString("\n")
	b.WriteString(outputStyle.Width(max(m.width-2, 10)).Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(inputStyle.Width(max(m.width-2, 10)).Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(footerStyle.Render("enter run | pgup/pgdn scroll | esc quit | type bye to exit"))
	return b.String()
}
