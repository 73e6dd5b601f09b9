package watch

import "fmt"

// Kind is the sort of change a FileEvent reports
type Kind int

const (
	Created Kind = iota
	Modified
	Moved
)

func (k Kind) String() string {
	switch k {
	case Created:
		return "created"
	case Modified:
		return "modified"
	case Moved:
		return "moved"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// FileEvent is one change observed in the watched directory. For Moved
// events Path is the destination and PreviousPath the source.
type FileEvent struct {
	Kind         Kind
	Path         string
	PreviousPath string
	IsDir        bool
}

// DestinationPath returns where a moved file ended up
func (e FileEvent) DestinationPath() string {
	return e.Path
}

func (e FileEvent) String() string {
	if e.Kind == Moved {
		return fmt.Sprintf("%s %s -> %s", e.Kind, e.PreviousPath, e.Path)
	}
	return fmt.Sprintf("%s %s", e.Kind, e.Path)
}
