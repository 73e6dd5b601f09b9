package components

import (
	"autoopen/internal/monitor"
	"autoopen/internal/tui/styles"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// StatusBar shows the monitoring indicator, with a spinner while a
// session is running.
type StatusBar struct {
	status  monitor.Status
	spinner spinner.Model
}

func NewStatusBar() *StatusBar {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Theme.Monitoring

	return &StatusBar{
		status:  monitor.StatusNotMonitoring,
		spinner: s,
	}
}

// SetStatus updates the indicator. The returned command starts the
// spinner when monitoring begins.
func (s *StatusBar) SetStatus(status monitor.Status) tea.Cmd {
	started := s.status != monitor.StatusMonitoring && status == monitor.StatusMonitoring
	s.status = status
	if started {
		return s.spinner.Tick
	}
	return nil
}

func (s *StatusBar) Status() monitor.Status {
	return s.status
}

func (s *StatusBar) Update(msg tea.Msg) tea.Cmd {
	if s.status != monitor.StatusMonitoring {
		return nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return cmd
}

func (s *StatusBar) View() string {
	if s.status == monitor.StatusMonitoring {
		return s.spinner.View() + " " + styles.Theme.Monitoring.Render(string(s.status))
	}
	return styles.Theme.NotMonitoring.Render(string(s.status))
}
