package subtitle

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a caption file does not exist
var ErrNotFound = errors.New("subtitle file not found")

// FormatError reports content that is not a valid SRT document
type FormatError struct {
	Path   string
	Line   int
	Reason string
}

func (e *FormatError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid SRT at line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("invalid SRT %s at line %d: %s", e.Path, e.Line, e.Reason)
}

// Entry is one timed caption
type Entry struct {
	Index int           // sequence number as written in the file
	Start time.Duration // start time
	End   time.Duration // end time
	Text  string        // caption text, physical lines joined with "\n"
}
