package components

import (
	"strings"

	"autoopen/internal/config"
	"autoopen/internal/tui/messages"
	"autoopen/internal/tui/styles"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	EditorField = iota
	DirectoryField
)

var fieldLabels = []string{"Editor", "Folder"}

// WatchForm holds the editor and folder inputs
type WatchForm struct {
	inputs []textinput.Model
	cursor int
}

func NewWatchForm(defaults config.Defaults) *WatchForm {
	wf := &WatchForm{inputs: make([]textinput.Model, 2)}

	editor := textinput.New()
	editor.Placeholder = "/usr/bin/gimp"
	editor.SetValue(defaults.EditorPath)
	editor.Width = 50
	wf.inputs[EditorField] = editor

	dir := textinput.New()
	dir.Placeholder = "Folder to watch"
	dir.SetValue(defaults.WatchedDirectory)
	dir.Width = 50
	wf.inputs[DirectoryField] = dir

	wf.inputs[EditorField].Focus()
	return wf
}

func (wf *WatchForm) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch s := key.String(); s {
		case "enter":
			return wf.Submit
		case "tab", "shift+tab":
			if s == "shift+tab" {
				wf.cursor--
			} else {
				wf.cursor++
			}
			if wf.cursor >= len(wf.inputs) {
				wf.cursor = 0
			} else if wf.cursor < 0 {
				wf.cursor = len(wf.inputs) - 1
			}
			return wf.focusCursor()
		}
	}

	// Only the focused input takes keystrokes
	var cmd tea.Cmd
	wf.inputs[wf.cursor], cmd = wf.inputs[wf.cursor].Update(msg)
	return cmd
}

func (wf *WatchForm) focusCursor() tea.Cmd {
	var cmds []tea.Cmd
	for i := range wf.inputs {
		if i == wf.cursor {
			cmds = append(cmds, wf.inputs[i].Focus())
		} else {
			wf.inputs[i].Blur()
		}
	}
	return tea.Batch(cmds...)
}

// Submit turns the current input values into a start request
func (wf *WatchForm) Submit() tea.Msg {
	return messages.StartMsg{
		EditorPath:       strings.TrimSpace(wf.inputs[EditorField].Value()),
		WatchedDirectory: strings.TrimSpace(wf.inputs[DirectoryField].Value()),
	}
}

// Focused returns the index of the focused input
func (wf *WatchForm) Focused() int {
	return wf.cursor
}

func (wf *WatchForm) Value(field int) string {
	return wf.inputs[field].Value()
}

func (wf *WatchForm) SetWidth(width int) {
	for i := range wf.inputs {
		wf.inputs[i].Width = width
	}
}

func (wf *WatchForm) View() string {
	var s strings.Builder
	for i, input := range wf.inputs {
		label := styles.Theme.Blurred
		if i == wf.cursor {
			label = styles.Theme.Focused
		}
		s.WriteString(label.Render(fieldLabels[i]+":") + "\n")
		s.WriteString(input.View() + "\n")
	}
	return s.String()
}
