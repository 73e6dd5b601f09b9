package views

import (
	"strings"

	"autoopen/internal/tui/common"
	"autoopen/internal/tui/styles"
)

func RenderMainView(m common.ModelReader) string {
	var sb strings.Builder

	sb.WriteString(styles.Theme.Title.Render("autoopen"))
	sb.WriteString("\n")
	sb.WriteString(m.FormView())
	sb.WriteString("\nStatus: " + m.StatusLine() + "\n\n")
	sb.WriteString(m.LogView())

	if notice := m.Notice(); notice != "" {
		sb.WriteString("\n" + styles.Theme.Help.Render(notice))
	}
	if m.ShowHelp() {
		sb.WriteString("\n" + RenderHelp())
	}
	sb.WriteString("\n" + RenderKeyCommands())

	return styles.Theme.App.Render(sb.String())
}

func RenderKeyCommands() string {
	return styles.Theme.Help.Render("[Tab] Next field  [Enter] Start monitoring  [Ctrl+Y] Copy log  [F1] Help  [Esc] Quit")
}

func RenderHelp() string {
	return styles.Theme.Help.Render(`
Enter the editor executable and the folder to watch, then press Enter.
Every file created in the folder (except *.tmp) is opened in the editor.
Files renamed into the folder are opened too. Changes to .png files are
only logged. Scroll the log with PgUp/PgDn.
`)
}
