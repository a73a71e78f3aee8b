package session

import (
	"errors"
)

// State is the lifecycle of a Session
type State int

const (
	// Idle is a session that has not started
	Idle State = iota
	// Running means items are being looked up, translated, and shown
	Running
	// Paused means the session is waiting for the learner's answer
	Paused
	// Done means the learner quit or every item was shown
	Done
	// Aborted means the session was interrupted or failed
	Aborted
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Done:
		return "done"
	case Aborted:
		return "aborted"
	default:
		return "unknown"
	}
}

var (
	// ErrInterrupted is returned when the session context is cancelled,
	// typically by SIGINT
	ErrInterrupted = errors.New("session interrupted")

	// ErrAlreadyStarted is returned when a Session is run twice
	ErrAlreadyStarted = errors.New("session already started")
)

// Summary counts what happened during a run
type Summary struct {
	State      State
	Shown      int // items displayed to the learner
	Skipped    int // items skipped without display
	Cached     int // translations served from the cache
	Translated int // fresh translations written to the cache
	Failed     int // provider failures shown with the failure marker
}
