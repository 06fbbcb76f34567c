package player

import (
	"fmt"

	"github.com/lowaak/interval-coach/internal/workout"
)

// Event is an input to the state machine
type Event int

const (
	EventOpen Event = iota
	EventTick
	EventTogglePlay
	EventSkip
	EventToggleMute
	EventClose
)

func (e Event) String() string {
	switch e {
	case EventOpen:
		return "open"
	case EventTick:
		return "tick"
	case EventTogglePlay:
		return "togglePlay"
	case EventSkip:
		return "skip"
	case EventToggleMute:
		return "toggleMute"
	case EventClose:
		return "close"
	default:
		return fmt.Sprintf("Event(%d)", int(e))
	}
}

// EffectKind identifies a side effect requested by a transition
type EffectKind int

const (
	// EffectTone is a short countdown beep
	EffectTone EffectKind = iota
	// EffectAnnounce asks for a spoken "get ready" for Effect.Exercise
	EffectAnnounce
	// EffectClosed tells the owner of the session to dismiss it
	EffectClosed
)

// Effect is a side effect the caller must perform after a transition
type Effect struct {
	Kind     EffectKind
	Exercise string
}

// announceAt is the countdown value at which the upcoming work interval is announced
const announceAt = 5

// countdownFrom is the highest countdown value that triggers a beep
const countdownFrom = 3

// Reduce applies event to state and returns the new state together with the
// effects to perform. It never blocks and has no side effects of its own.
func Reduce(state State, event Event) (State, []Effect) {
	var effects []Effect

	switch event {
	case EventOpen:
		// Re-opening rewinds to the first interval, keeping the mute flag
		if len(state.Intervals) == 0 {
			state.Status = StatusClosed
			return state, []Effect{{Kind: EffectClosed}}
		}
		state.Index = 0
		state.SecondsLeft = state.Intervals[0].DurationSeconds
		state.Status = StatusIdle
		state.Announced = false
		return settle(state), nil

	case EventClose:
		if state.Status == StatusClosed {
			return state, nil
		}
		state.Status = StatusClosed
		return state, []Effect{{Kind: EffectClosed}}

	case EventTick:
		if !state.Playing() || state.SecondsLeft <= 0 {
			return state, nil
		}
		state.SecondsLeft--
		state = settle(state)

	case EventTogglePlay:
		switch state.Status {
		case StatusRunning:
			state.Status = StatusPaused
		case StatusIdle, StatusPaused:
			state.Status = StatusRunning
		default:
			return state, nil
		}

	case EventSkip:
		if state.Status == StatusClosed {
			return state, nil
		}
		if _, ok := state.Next(); !ok {
			state.Status = StatusClosed
			return state, []Effect{{Kind: EffectClosed}}
		}
		state = settle(advance(state))

	case EventToggleMute:
		state.Muted = !state.Muted

	default:
		return state, nil
	}

	state, effects = cues(state, effects)
	return state, effects
}

// advance moves to the next interval and loads its duration
func advance(state State) State {
	state.Index++
	state.SecondsLeft = state.Intervals[state.Index].DurationSeconds
	state.Announced = false
	return state
}

// settle resolves an exhausted countdown: advance while there is a next
// interval, otherwise finish. Zero-length intervals are passed through.
func settle(state State) State {
	for state.SecondsLeft <= 0 && !state.Done() {
		if _, ok := state.Next(); ok {
			state = advance(state)
			continue
		}
		state.Status = StatusFinished
	}
	return state
}

// cues evaluates the audio cue rules against the settled state
func cues(state State, effects []Effect) (State, []Effect) {
	if state.Muted || state.Status == StatusClosed {
		return state, effects
	}

	current, hasCurrent := state.Current()
	next, hasNext := state.Next()
	if hasCurrent && hasNext &&
		current.Kind == workout.IntervalKindRest &&
		next.Kind == workout.IntervalKindWork &&
		state.SecondsLeft == announceAt &&
		!state.Announced {
		state.Announced = true
		effects = append(effects, Effect{Kind: EffectAnnounce, Exercise: next.Exercise})
	}

	if state.Playing() && state.SecondsLeft >= 1 && state.SecondsLeft <= countdownFrom {
		effects = append(effects, Effect{Kind: EffectTone})
	}

	return state, effects
}
