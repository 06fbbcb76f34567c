package player

import (
	"errors"

	"github.com/google/uuid"

	"github.com/lowaak/interval-coach/internal/workout"
)

// ErrNoIntervals is returned when a session is opened without any intervals
var ErrNoIntervals = errors.New("player: no intervals to play")

// Status represents the current state of a playback session
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusPaused
	StatusFinished
	StatusClosed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "Idle"
	case StatusRunning:
		return "Running"
	case StatusPaused:
		return "Paused"
	case StatusFinished:
		return "Finished"
	case StatusClosed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// State is the full player state for one session. Values are copied on every
// transition; Intervals is shared and never modified.
type State struct {
	SessionID   string
	Intervals   []workout.Interval
	Index       int
	SecondsLeft int
	Status      Status
	Muted       bool

	// Announced is set once the "get ready" cue for the upcoming work
	// interval has been spoken and cleared whenever the index moves.
	Announced bool
}

// Open starts a new session positioned on the first interval
func Open(intervals []workout.Interval, muted bool) (State, error) {
	if len(intervals) == 0 {
		return State{}, ErrNoIntervals
	}
	return State{
		SessionID:   uuid.NewString(),
		Intervals:   intervals,
		SecondsLeft: intervals[0].DurationSeconds,
		Status:      StatusIdle,
		Muted:       muted,
	}, nil
}

// Playing reports whether the countdown is advancing
func (s State) Playing() bool {
	return s.Status == StatusRunning
}

// Done reports whether the session accepts no further transport commands
func (s State) Done() bool {
	return s.Status == StatusFinished || s.Status == StatusClosed
}

// Current returns the interval at Index
func (s State) Current() (workout.Interval, bool) {
	if s.Index < 0 || s.Index >= len(s.Intervals) {
		return workout.Interval{}, false
	}
	return s.Intervals[s.Index], true
}

// Next returns the interval after the current one, if any
func (s State) Next() (workout.Interval, bool) {
	if s.Index+1 >= len(s.Intervals) {
		return workout.Interval{}, false
	}
	return s.Intervals[s.Index+1], true
}
