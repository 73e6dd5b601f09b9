package common

// ModelReader defines the interface that views use to read model state
type ModelReader interface {
	FormView() string
	StatusLine() string
	LogView() string
	Notice() string
	ShowHelp() bool
}
