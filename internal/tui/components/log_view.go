package components

import (
	"strings"

	"autoopen/internal/tui/styles"
	"autoopen/internal/watch"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// LogView is the read-only scrolling activity log
type LogView struct {
	viewport viewport.Model
	lines    []string
}

func NewLogView(width, height int) *LogView {
	return &LogView{viewport: viewport.New(width, height)}
}

// Append adds entries and keeps the newest one in view
func (lv *LogView) Append(entries ...watch.LogEntry) {
	for _, e := range entries {
		lv.lines = append(lv.lines, e.String())
	}
	lv.refresh()
	lv.viewport.GotoBottom()
}

func (lv *LogView) refresh() {
	rendered := make([]string, len(lv.lines))
	for i, l := range lv.lines {
		rendered[i] = styles.RenderLogLine(l)
	}
	lv.viewport.SetContent(strings.Join(rendered, "\n"))
}

// Lines returns the plain log text, one entry per line
func (lv *LogView) Lines() []string {
	out := make([]string, len(lv.lines))
	copy(out, lv.lines)
	return out
}

func (lv *LogView) SetSize(width, height int) {
	lv.viewport.Width = width
	lv.viewport.Height = height
	lv.refresh()
}

func (lv *LogView) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	lv.viewport, cmd = lv.viewport.Update(msg)
	return cmd
}

func (lv *LogView) View() string {
	return styles.Theme.LogBox.Render(lv.viewport.View())
}
