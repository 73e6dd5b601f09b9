package gui

import (
	"autoopen/internal/config"
	"autoopen/internal/monitor"
)

// Interface defines the contract for GUI operations
type Interface interface {
	Run()
	ShowError(title string, err error)
}

// Factory creates GUI instances
type Factory struct {
	controller *monitor.Controller
	defaults   config.Defaults
}

// NewFactory creates a new GUI factory
func NewFactory(ctrl *monitor.Controller, defaults config.Defaults) *Factory {
	return &Factory{
		controller: ctrl,
		defaults:   defaults,
	}
}
