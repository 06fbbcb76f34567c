package player

import (
	"log"
	"sync"
	"time"

	"github.com/lowaak/interval-coach/internal/events"
	"github.com/lowaak/interval-coach/internal/go_func_utils"
	"github.com/lowaak/interval-coach/internal/workout"
)

const tickInterval = 1 * time.Second

// Cues performs audio side effects. Implementations must return quickly;
// the driver calls them from its own goroutine.
type Cues interface {
	Tone()
	Announce(exercise string)
}

// Driver runs one playback session in real time. A single goroutine owns the
// ticker and serializes ticks with transport commands.
type Driver struct {
	cues   Cues
	clock  Clock
	logger *log.Logger

	mu    sync.RWMutex
	state State

	stateEvent  *events.Event[State]
	closedEvent *events.Event[struct{}]

	// Goroutine management
	cmdChan      chan Event
	doneChan     chan struct{} // Closed to signal shutdown
	exitedChan   chan struct{} // Closed when the loop returns
	wg           sync.WaitGroup
	shutdownOnce sync.Once
}

// NewDriver opens a session over intervals and starts its loop. The session
// begins paused on the first interval.
func NewDriver(intervals []workout.Interval, muted bool, cues Cues, clock Clock, logger *log.Logger) (*Driver, error) {
	if cues == nil {
		panic("PlayerDriver: cues cannot be nil")
	}
	if clock == nil {
		panic("PlayerDriver: clock cannot be nil")
	}
	if logger == nil {
		panic("PlayerDriver: logger cannot be nil")
	}

	state, err := Open(intervals, muted)
	if err != nil {
		return nil, err
	}

	d := &Driver{
		cues:        cues,
		clock:       clock,
		logger:      logger,
		state:       state,
		stateEvent:  events.NewEvent[State](true),
		closedEvent: events.NewEvent[struct{}](true),
		cmdChan:     make(chan Event, 8),
		doneChan:    make(chan struct{}),
		exitedChan:  make(chan struct{}),
	}
	d.stateEvent.Notify(state)

	d.logger.Printf("PlayerDriver: Session %s opened with %d intervals (%ds)",
		state.SessionID, len(intervals), workout.TotalSeconds(intervals))

	d.wg.Add(1)
	go_func_utils.SafeGo(logger, func() { d.runLoop() })

	return d, nil
}

// State returns the latest state
func (d *Driver) State() State {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state
}

// ListenToState registers a channel to receive every new state.
// Returns a deregistration function.
func (d *Driver) ListenToState(ch chan<- State) func() {
	return d.stateEvent.Listen(ch)
}

// ListenToClosed registers a channel that receives once the session is closed.
// Returns a deregistration function.
func (d *Driver) ListenToClosed(ch chan<- struct{}) func() {
	return d.closedEvent.Listen(ch)
}

// TogglePlay starts, pauses or resumes the countdown
func (d *Driver) TogglePlay() {
	d.send(EventTogglePlay)
}

// Skip jumps to the next interval, or closes the session on the last one
func (d *Driver) Skip() {
	d.send(EventSkip)
}

// ToggleMute switches audio cues on or off
func (d *Driver) ToggleMute() {
	d.send(EventToggleMute)
}

// Restart rewinds to the first interval
func (d *Driver) Restart() {
	d.send(EventOpen)
}

// Close ends the session
func (d *Driver) Close() {
	d.send(EventClose)
}

// Shutdown stops the loop and waits for it to exit.
// Safe to call multiple times - only the first call has effect
func (d *Driver) Shutdown() {
	d.shutdownOnce.Do(func() {
		d.logger.Printf("PlayerDriver: Shutting down")
		close(d.doneChan)
		d.wg.Wait()
		d.logger.Printf("PlayerDriver: Shutdown complete")
	})
}

func (d *Driver) send(event Event) {
	select {
	case d.cmdChan <- event:
	case <-d.exitedChan:
		d.logger.Printf("PlayerDriver: Ignoring %s, session has ended", event)
	}
}

// handleEvent runs the reduction under lock and returns what to act on
func (d *Driver) handleEvent(event Event) (State, []Effect) {
	d.mu.Lock()
	defer d.mu.Unlock()

	next, effects := Reduce(d.state, event)
	if next.Index != d.state.Index {
		d.logger.Printf("PlayerDriver: Moved to interval %d of %d", next.Index+1, len(next.Intervals))
	}
	if next.Status != d.state.Status {
		d.logger.Printf("PlayerDriver: %s -> %s", d.state.Status, next.Status)
	}
	d.state = next
	return next, effects
}

// runLoop is the goroutine that owns the ticker
func (d *Driver) runLoop() {
	defer d.wg.Done()
	defer close(d.exitedChan)

	ticker := d.clock.NewTicker(tickInterval)
	ticker.Stop() // Start stopped, will be started when the session runs
	ticking := false

	for {
		var event Event
		select {
		case <-d.doneChan:
			ticker.Stop()
			d.logger.Printf("PlayerDriver: Goroutine exiting")
			return
		case event = <-d.cmdChan:
		case <-ticker.C():
			event = EventTick
		}

		state, effects := d.handleEvent(event)

		// The ticker runs exactly while there is time left to count down
		shouldTick := state.Playing() && state.SecondsLeft > 0
		if shouldTick && (!ticking || event == EventTogglePlay) {
			ticker.Reset(tickInterval)
		} else if !shouldTick && ticking {
			ticker.Stop()
		}
		ticking = shouldTick

		d.stateEvent.Notify(state)

		closed := false
		for _, effect := range effects {
			switch effect.Kind {
			case EffectTone:
				d.cues.Tone()
			case EffectAnnounce:
				d.cues.Announce(effect.Exercise)
			case EffectClosed:
				closed = true
			}
		}

		if state.Status == StatusFinished && event == EventTick {
			d.logger.Printf("PlayerDriver: Session %s complete!", state.SessionID)
		}
		if closed {
			ticker.Stop()
			d.closedEvent.Notify(struct{}{})
			d.logger.Printf("PlayerDriver: Session %s closed", state.SessionID)
			return
		}
	}
}
