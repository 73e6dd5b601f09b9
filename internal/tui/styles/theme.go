package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the core UI styles
var Theme = struct {
	App           lipgloss.Style
	Title         lipgloss.Style
	Focused       lipgloss.Style
	Blurred       lipgloss.Style
	Help          lipgloss.Style
	Monitoring    lipgloss.Style
	NotMonitoring lipgloss.Style
	Error         lipgloss.Style
	Timestamp     lipgloss.Style
	LogBox        lipgloss.Style
}{
	App: lipgloss.NewStyle().
		Padding(1, 2),
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7B61FF")).
		MarginBottom(1),
	Focused: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#73F59F")).
		Bold(true),
	Blurred: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666666")),
	Help: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#5A9")),
	Monitoring: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#00FF00")).
		Bold(true),
	NotMonitoring: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#959595")),
	Error: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF0000")),
	Timestamp: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666666")),
	LogBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#7B61FF")).
		Padding(0, 1),
}

// RenderLogLine colors a rendered log entry: the timestamp is dimmed and
// error entries are shown in red.
func RenderLogLine(line string) string {
	if !strings.HasPrefix(line, "[") {
		return line
	}
	stamp, msg, ok := strings.Cut(line, "] ")
	if !ok {
		return line
	}
	if strings.HasPrefix(msg, "error:") {
		msg = Theme.Error.Render(msg)
	}
	return Theme.Timestamp.Render(stamp+"]") + " " + msg
}
