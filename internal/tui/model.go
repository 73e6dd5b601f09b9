package tui

import (
	"fmt"
	"strings"

	"autoopen/internal/config"
	"autoopen/internal/log"
	"autoopen/internal/monitor"
	"autoopen/internal/tui/components"
	"autoopen/internal/tui/messages"
	"autoopen/internal/tui/views"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	defaultLogWidth  = 80
	defaultLogHeight = 12
	// Rows taken by everything around the log box
	chromeHeight = 14
)

type Model struct {
	controller *monitor.Controller
	feed       *feed

	form      *components.WatchForm
	statusBar *components.StatusBar
	logView   *components.LogView

	showHelp bool
	notice   string

	copyToClipboard func(string) error
}

// Option customizes a Model
type Option func(*Model)

// WithClipboard replaces the system clipboard writer
func WithClipboard(write func(string) error) Option {
	return func(m *Model) {
		m.copyToClipboard = write
	}
}

func New(ctrl *monitor.Controller, defaults config.Defaults, opts ...Option) *Model {
	logFeed, backlog := newFeed(ctrl.Journal())
	m := &Model{
		controller:      ctrl,
		feed:            logFeed,
		form:            components.NewWatchForm(defaults),
		statusBar:       components.NewStatusBar(),
		logView:         components.NewLogView(defaultLogWidth, defaultLogHeight),
		copyToClipboard: clipboard.WriteAll,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.logView.Append(backlog...)
	m.statusBar.SetStatus(ctrl.Status())
	return m
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.feed.wait)
}

// View implements tea.Model
func (m *Model) View() string {
	return views.RenderMainView(m)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.form.SetWidth(msg.Width - 8)
		height := msg.Height - chromeHeight
		if height < 3 {
			height = 3
		}
		m.logView.SetSize(msg.Width-8, height)
		return m, nil

	case messages.StartMsg:
		return m, m.start(config.New(msg.EditorPath, msg.WatchedDirectory))

	case messages.EntriesMsg:
		m.logView.Append(msg.Entries...)
		return m, m.feed.wait

	case messages.ClipboardMsg:
		if msg.Err != nil {
			m.notice = fmt.Sprintf("could not copy log: %v", msg.Err)
		} else {
			m.notice = fmt.Sprintf("copied %d log lines", msg.Lines)
		}
		return m, nil

	}

	// Cursor blinks and spinner ticks
	return m, tea.Batch(m.form.Update(msg), m.statusBar.Update(msg))
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "ctrl+y":
		return m, m.copyLog
	case "f1":
		m.showHelp = !m.showHelp
		return m, nil
	case "pgup", "pgdown", "up", "down":
		return m, m.logView.Update(msg)
	}

	m.notice = ""
	return m, m.form.Update(msg)
}

// start runs the controller synchronously; the outcome arrives through the
// journal like every other entry.
func (m *Model) start(cfg config.WatchConfig) tea.Cmd {
	if err := m.controller.StartMonitoring(cfg); err != nil {
		log.LogWithError(err).Debug("Start rejected")
	}
	return m.statusBar.SetStatus(m.controller.Status())
}

func (m *Model) copyLog() tea.Msg {
	lines := m.logView.Lines()
	if err := m.copyToClipboard(strings.Join(lines, "\n")); err != nil {
		return messages.ClipboardMsg{Err: err}
	}
	return messages.ClipboardMsg{Lines: len(lines)}
}

// Getters used by views

func (m *Model) FormView() string {
	return m.form.View()
}

func (m *Model) StatusLine() string {
	return m.statusBar.View()
}

func (m *Model) LogView() string {
	return m.logView.View()
}

func (m *Model) Notice() string {
	return m.notice
}

func (m *Model) ShowHelp() bool {
	return m.showHelp
}

// Status returns the indicator the model last rendered
func (m *Model) Status() monitor.Status {
	return m.statusBar.Status()
}

// LogLines returns the log as plain text lines
func (m *Model) LogLines() []string {
	return m.logView.Lines()
}

// Run starts the terminal shell and blocks until the user quits
func Run(ctrl *monitor.Controller, defaults config.Defaults) error {
	p := tea.NewProgram(New(ctrl, defaults), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
