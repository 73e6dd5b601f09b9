package watch

import (
	"fmt"

	"github.com/gobwas/glob"
)

// Suffix patterns. Compiled without separators so `*` spans the whole path,
// which makes each one a literal, case-sensitive suffix match.
var (
	transientPattern = glob.MustCompile("*.tmp")
	imagePattern     = glob.MustCompile("*.png")
)

// Action is what the dispatcher does with a classified event
type Action int

const (
	ActionIgnore Action = iota
	ActionLog
	ActionLogAndLaunch
)

func (a Action) String() string {
	switch a {
	case ActionIgnore:
		return "ignore"
	case ActionLog:
		return "log"
	case ActionLogAndLaunch:
		return "log+launch"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Decision is the outcome of classifying one event
type Decision struct {
	Action  Action
	Message string // log text; empty when ignored
	Target  string // file handed to the editor; empty unless launching
}

var ignore = Decision{Action: ActionIgnore}

// Classify applies the reaction policy to ev. It has no side effects.
//
// Created files are opened unless they are transient .tmp files. Modified
// .png files are only logged. Files renamed to .png are opened at their new
// path. Directory events are never acted on.
func Classify(ev FileEvent) Decision {
	if ev.IsDir {
		return ignore
	}

	switch ev.Kind {
	case Created:
		if transientPattern.Match(ev.Path) {
			return ignore
		}
		return Decision{
			Action:  ActionLogAndLaunch,
			Message: fmt.Sprintf("new file created: %s", ev.Path),
			Target:  ev.Path,
		}

	case Modified:
		if !imagePattern.Match(ev.Path) {
			return ignore
		}
		return Decision{
			Action:  ActionLog,
			Message: fmt.Sprintf("file changed: %s", ev.Path),
		}

	case Moved:
		dest := ev.DestinationPath()
		if !imagePattern.Match(dest) {
			return ignore
		}
		return Decision{
			Action:  ActionLogAndLaunch,
			Message: fmt.Sprintf("file renamed: %s -> %s", ev.PreviousPath, dest),
			Target:  dest,
		}
	}

	return ignore
}
