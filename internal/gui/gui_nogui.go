//go:build nogui
// +build nogui

package gui

import (
	"fmt"

	"autoopen/internal/config"
	"autoopen/internal/monitor"
)

// StartGUI is a stub implementation for builds with GUI disabled
func StartGUI(ctrl *monitor.Controller, defaults config.Defaults) error {
	return fmt.Errorf("GUI not available in this build, use 'autoopen tui' or 'autoopen watch'")
}

// IsGUIAvailable returns whether the GUI is available in this build
func IsGUIAvailable() bool {
	return false
}

// Create always fails without a GUI
func (f *Factory) Create() (Interface, error) {
	return nil, fmt.Errorf("GUI not available in this build")
}
