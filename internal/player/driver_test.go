package player

import (
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowaak/interval-coach/internal/workout"
)

type fakeTicker struct {
	c       chan time.Time
	mu      sync.Mutex
	running bool
}

func (t *fakeTicker) C() <-chan time.Time { return t.c }

func (t *fakeTicker) Reset(time.Duration) {
	t.mu.Lock()
	t.running = true
	t.mu.Unlock()
}

func (t *fakeTicker) Stop() {
	t.mu.Lock()
	t.running = false
	t.mu.Unlock()
}

func (t *fakeTicker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// fire delivers one tick and returns once the loop has picked it up
func (t *fakeTicker) fire(tb testing.TB) {
	tb.Helper()
	select {
	case t.c <- time.Now():
	case <-time.After(time.Second):
		tb.Fatal("tick was not consumed")
	}
}

type fakeClock struct {
	ticker *fakeTicker
}

func newFakeClock() *fakeClock {
	return &fakeClock{ticker: &fakeTicker{c: make(chan time.Time)}}
}

func (c *fakeClock) NewTicker(time.Duration) Ticker { return c.ticker }

type recordingCues struct {
	mu        sync.Mutex
	tones     int
	announced []string
}

func (r *recordingCues) Tone() {
	r.mu.Lock()
	r.tones++
	r.mu.Unlock()
}

func (r *recordingCues) Announce(exercise string) {
	r.mu.Lock()
	r.announced = append(r.announced, exercise)
	r.mu.Unlock()
}

func (r *recordingCues) counts() (int, []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tones, append([]string(nil), r.announced...)
}

func newTestDriver(t *testing.T, intervals []workout.Interval, muted bool) (*Driver, *fakeClock, *recordingCues) {
	t.Helper()
	clock := newFakeClock()
	cues := &recordingCues{}
	d, err := NewDriver(intervals, muted, cues, clock, log.New(io.Discard, "", 0))
	require.NoError(t, err)
	t.Cleanup(d.Shutdown)
	return d, clock, cues
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, time.Second, 2*time.Millisecond)
}

func TestNewDriver_NoIntervals(t *testing.T) {
	d, err := NewDriver(nil, false, &recordingCues{}, newFakeClock(), log.New(io.Discard, "", 0))
	assert.Nil(t, d)
	assert.ErrorIs(t, err, ErrNoIntervals)
}

func TestNewDriver_NilDependencies(t *testing.T) {
	logger := log.New(io.Discard, "", 0)
	intervals := []workout.Interval{work("A", 5)}

	assert.Panics(t, func() { _, _ = NewDriver(intervals, false, nil, newFakeClock(), logger) })
	assert.Panics(t, func() { _, _ = NewDriver(intervals, false, &recordingCues{}, nil, logger) })
	assert.Panics(t, func() { _, _ = NewDriver(intervals, false, &recordingCues{}, newFakeClock(), nil) })
}

func TestDriver_RunsToCompletion(t *testing.T) {
	d, clock, cues := newTestDriver(t, []workout.Interval{work("A", 3), rest("A", 2)}, false)

	assert.False(t, clock.ticker.Running())
	assert.Equal(t, StatusIdle, d.State().Status)

	d.TogglePlay()
	waitFor(t, clock.ticker.Running)

	for i := 0; i < 5; i++ {
		clock.ticker.fire(t)
	}

	waitFor(t, func() bool { return d.State().Status == StatusFinished })
	waitFor(t, func() bool { return !clock.ticker.Running() })

	state := d.State()
	assert.Equal(t, 1, state.Index)
	assert.Equal(t, 0, state.SecondsLeft)

	// 3,2,1 on the work interval, then 2,1 on the rest
	waitFor(t, func() bool {
		tones, _ := cues.counts()
		return tones == 5
	})
}

func TestDriver_PauseStopsTicker(t *testing.T) {
	d, clock, _ := newTestDriver(t, []workout.Interval{work("A", 30)}, false)

	d.TogglePlay()
	waitFor(t, clock.ticker.Running)
	clock.ticker.fire(t)
	waitFor(t, func() bool { return d.State().SecondsLeft == 29 })

	d.TogglePlay()
	waitFor(t, func() bool { return !clock.ticker.Running() })
	assert.Equal(t, StatusPaused, d.State().Status)
	assert.Equal(t, 29, d.State().SecondsLeft)
}

func TestDriver_MutedNeverCallsCues(t *testing.T) {
	intervals := []workout.Interval{work("A", 6), rest("A", 6), work("B", 6)}
	d, clock, cues := newTestDriver(t, intervals, true)

	d.TogglePlay()
	waitFor(t, clock.ticker.Running)
	for i := 0; i < 18; i++ {
		clock.ticker.fire(t)
	}
	waitFor(t, func() bool { return d.State().Status == StatusFinished })

	tones, announced := cues.counts()
	assert.Zero(t, tones)
	assert.Empty(t, announced)
}

func TestDriver_AnnouncesUpcomingWork(t *testing.T) {
	intervals := []workout.Interval{rest("Warm", 6), work("Burpee", 10)}
	d, clock, cues := newTestDriver(t, intervals, false)

	d.TogglePlay()
	waitFor(t, clock.ticker.Running)
	clock.ticker.fire(t)
	waitFor(t, func() bool { return d.State().SecondsLeft == 5 })

	waitFor(t, func() bool {
		_, announced := cues.counts()
		return len(announced) == 1 && announced[0] == "Burpee"
	})
}

func TestDriver_SkipOnLastCloses(t *testing.T) {
	d, clock, _ := newTestDriver(t, []workout.Interval{work("A", 30)}, false)

	closedCh := make(chan struct{}, 1)
	defer d.ListenToClosed(closedCh)()

	d.TogglePlay()
	waitFor(t, clock.ticker.Running)

	d.Skip()
	select {
	case <-closedCh:
	case <-time.After(time.Second):
		t.Fatal("session was not closed")
	}

	assert.Equal(t, StatusClosed, d.State().Status)
	waitFor(t, func() bool { return !clock.ticker.Running() })

	// Commands after the session ended must not block
	d.TogglePlay()
	d.Close()
}

func TestDriver_PublishesState(t *testing.T) {
	d, clock, _ := newTestDriver(t, []workout.Interval{work("A", 30), rest("A", 10)}, false)

	stateCh := make(chan State, 16)
	defer d.ListenToState(stateCh)()

	// Replay of the opening state
	initial := <-stateCh
	assert.Equal(t, 30, initial.SecondsLeft)

	d.Skip()
	select {
	case s := <-stateCh:
		assert.Equal(t, 1, s.Index)
		assert.Equal(t, 10, s.SecondsLeft)
	case <-time.After(time.Second):
		t.Fatal("no state published")
	}
	assert.False(t, clock.ticker.Running())
}

func TestDriver_ShutdownIsIdempotent(t *testing.T) {
	d, _, _ := newTestDriver(t, []workout.Interval{work("A", 30)}, false)

	d.Shutdown()
	d.Shutdown()

	// The loop is gone; commands are dropped
	d.Skip()
}
