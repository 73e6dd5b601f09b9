//go:build !nogui
// +build !nogui

package gui

import (
	"image/color"
	"strings"
	"sync"

	"autoopen/internal/config"
	"autoopen/internal/log"
	"autoopen/internal/monitor"
	"autoopen/internal/watch"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// App is the GUI application
type App struct {
	fyneApp    fyne.App
	mainWindow fyne.Window
	controller *monitor.Controller
	defaults   config.Defaults

	editorEntry *widget.Entry
	dirEntry    *widget.Entry
	startButton *widget.Button
	statusLabel *widget.Label

	// Log lines, bound to logList. Safe to append from the session goroutine.
	logItems binding.StringList
	logList  *widget.List
	logMu    sync.Mutex

	accentColor color.NRGBA
}

// NewApp creates the desktop application around ctrl
func NewApp(ctrl *monitor.Controller, defaults config.Defaults) *App {
	return New(app.NewWithID("io.github.autoopen"), ctrl, defaults)
}

// New builds the application on an existing fyne.App, such as the one from
// fyne's test package.
func New(fyneApp fyne.App, ctrl *monitor.Controller, defaults config.Defaults) *App {
	a := &App{
		fyneApp:     fyneApp,
		controller:  ctrl,
		defaults:    defaults,
		logItems:    binding.NewStringList(),
		accentColor: color.NRGBA{R: 255, G: 165, B: 0, A: 255},
	}
	a.mainWindow = a.fyneApp.NewWindow("autoopen")
	a.setupMainWindow()
	return a
}

// GetMainWindow returns the main window instance
func (a *App) GetMainWindow() fyne.Window {
	return a.mainWindow
}

// Run shows the window and blocks until it is closed
func (a *App) Run() {
	a.mainWindow.Show()
	a.fyneApp.Run()
}

// setupMainWindow sets up the main window content
func (a *App) setupMainWindow() {
	a.mainWindow.Resize(fyne.NewSize(720, 480))

	title := canvas.NewText("autoopen", a.accentColor)
	title.TextStyle.Bold = true
	title.TextSize = 18

	a.editorEntry = widget.NewEntry()
	a.editorEntry.SetPlaceHolder("/usr/bin/gimp")
	a.editorEntry.SetText(a.defaults.EditorPath)

	a.dirEntry = widget.NewEntry()
	a.dirEntry.SetPlaceHolder("Folder to watch")
	a.dirEntry.SetText(a.defaults.WatchedDirectory)

	browseEditor := widget.NewButtonWithIcon("", theme.FileApplicationIcon(), func() {
		dialog.ShowFileOpen(a.chooseEditor, a.mainWindow)
	})
	browseDir := widget.NewButtonWithIcon("", theme.FolderOpenIcon(), func() {
		dialog.ShowFolderOpen(a.chooseFolder, a.mainWindow)
	})

	form := widget.NewForm(
		widget.NewFormItem("Editor", container.NewBorder(nil, nil, nil, browseEditor, a.editorEntry)),
		widget.NewFormItem("Folder", container.NewBorder(nil, nil, nil, browseDir, a.dirEntry)),
	)

	a.startButton = widget.NewButtonWithIcon("Start monitoring", theme.MediaPlayIcon(), a.startMonitoring)
	a.startButton.Importance = widget.HighImportance

	a.statusLabel = widget.NewLabel(string(a.controller.Status()))
	a.controller.OnStatusChange(func(s monitor.Status) {
		a.statusLabel.SetText(string(s))
	})

	a.logList = widget.NewListWithData(a.logItems,
		func() fyne.CanvasObject {
			l := widget.NewLabel("")
			l.TextStyle.Monospace = true
			return l
		},
		func(item binding.DataItem, obj fyne.CanvasObject) {
			obj.(*widget.Label).Bind(item.(binding.String))
		},
	)

	// Entries logged before the window existed come first. Holding logMu
	// keeps a concurrent append from landing ahead of them.
	a.logMu.Lock()
	backlog := a.controller.Journal().SubscribeWithBacklog(a.appendLogLine)
	for _, e := range backlog {
		a.appendLogLineLocked(e)
	}
	a.logMu.Unlock()

	controls := container.NewHBox(a.startButton, layout.NewSpacer(), widget.NewLabel("Status:"), a.statusLabel)

	content := container.NewBorder(
		container.NewVBox(title, form, controls, canvas.NewLine(a.accentColor)),
		nil,
		nil,
		nil,
		a.logList,
	)
	a.mainWindow.SetContent(content)

	a.mainWindow.SetOnClosed(func() {
		if err := a.controller.Close(); err != nil {
			log.LogWithError(err).Warn("Failed to stop monitoring")
		}
	})
}

// appendLogLine adds one entry to the visible log. Called from whichever
// goroutine appended to the journal.
func (a *App) appendLogLine(e watch.LogEntry) {
	a.logMu.Lock()
	defer a.logMu.Unlock()
	a.appendLogLineLocked(e)
}

func (a *App) appendLogLineLocked(e watch.LogEntry) {
	if err := a.logItems.Append(e.String()); err != nil {
		log.LogWithError(err).Warn("Failed to append log line")
		return
	}
	if a.logList != nil {
		a.logList.ScrollToBottom()
	}
}

// startMonitoring hands the current inputs to the controller. Failures are
// reported in the log list, not in a dialog.
func (a *App) startMonitoring() {
	cfg := config.New(
		strings.TrimSpace(a.editorEntry.Text),
		strings.TrimSpace(a.dirEntry.Text),
	)
	if err := a.controller.StartMonitoring(cfg); err != nil {
		log.LogWithError(err).Debug("Start rejected")
	}
}

// chooseEditor fills the editor input from the file picker
func (a *App) chooseEditor(reader fyne.URIReadCloser, err error) {
	if err != nil {
		a.ShowError("Could not choose editor", err)
		return
	}
	if reader == nil {
		return
	}
	defer reader.Close()
	a.editorEntry.SetText(reader.URI().Path())
}

// chooseFolder fills the folder input from the folder picker
func (a *App) chooseFolder(uri fyne.ListableURI, err error) {
	if err != nil {
		a.ShowError("Could not choose folder", err)
		return
	}
	if uri == nil {
		return
	}
	a.dirEntry.SetText(uri.Path())
}

// ShowError displays an error dialog
func (a *App) ShowError(title string, err error) {
	if err == nil {
		return
	}
	log.LogWithError(err).Error(title)
	dialog.ShowError(err, a.mainWindow)
}

// StartGUI runs the desktop shell until its window is closed
func StartGUI(ctrl *monitor.Controller, defaults config.Defaults) error {
	shell, err := NewFactory(ctrl, defaults).Create()
	if err != nil {
		return err
	}
	shell.Run()
	return nil
}

// IsGUIAvailable returns whether the GUI is available in this build
func IsGUIAvailable() bool {
	return true
}

// Create returns a new GUI instance
func (f *Factory) Create() (Interface, error) {
	return NewApp(f.controller, f.defaults), nil
}
