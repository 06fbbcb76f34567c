package trainer

import (
	"context"
	"log"
	"sync"

	"github.com/lowaak/interval-coach/internal/go_func_utils"
	"github.com/lowaak/interval-coach/internal/player"
	"github.com/lowaak/interval-coach/internal/workout"
)

// WorkoutManager owns the playback session of the current workout and
// mirrors its state into the UIModel
type WorkoutManager struct {
	model  *UIModel
	cues   player.Cues
	clock  player.Clock
	logger *log.Logger

	// Current session (protected by mu)
	mu            sync.Mutex
	driver        *player.Driver
	cancelForward context.CancelFunc

	// Goroutine management
	wg           sync.WaitGroup
	shutdownOnce sync.Once
}

// NewWorkoutManager creates a new WorkoutManager
func NewWorkoutManager(model *UIModel, cues player.Cues, clock player.Clock, logger *log.Logger) *WorkoutManager {
	if model == nil {
		panic("WorkoutManager: model cannot be nil")
	}
	if cues == nil {
		panic("WorkoutManager: cues cannot be nil")
	}
	if clock == nil {
		panic("WorkoutManager: clock cannot be nil")
	}
	if logger == nil {
		panic("WorkoutManager: logger cannot be nil")
	}

	return &WorkoutManager{
		model:  model,
		cues:   cues,
		clock:  clock,
		logger: logger,
	}
}

// Open starts a session over intervals and switches to the player. Any
// session already open is discarded.
func (wm *WorkoutManager) Open(intervals []workout.Interval) error {
	wm.mu.Lock()
	defer wm.mu.Unlock()

	wm.endSessionLocked()

	driver, err := player.NewDriver(intervals, wm.model.IsMuted(), wm.cues, wm.clock, wm.logger)
	if err != nil {
		wm.logger.Printf("WorkoutManager: Cannot open session: %v", err)
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	wm.driver = driver
	wm.cancelForward = cancel

	wm.model.SetPlayerState(driver.State())

	wm.wg.Add(1)
	go_func_utils.SafeGo(wm.logger, func() { wm.forwardSession(ctx, driver) })

	wm.model.SetMode(UIModePlayer)
	return nil
}

// HasSession reports whether a session is open
func (wm *WorkoutManager) HasSession() bool {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	return wm.driver != nil
}

// TogglePlay starts, pauses or resumes the open session
func (wm *WorkoutManager) TogglePlay() {
	if d := wm.current("TogglePlay"); d != nil {
		d.TogglePlay()
	}
}

// Skip moves the open session to its next interval
func (wm *WorkoutManager) Skip() {
	if d := wm.current("Skip"); d != nil {
		d.Skip()
	}
}

// ToggleMute switches audio cues of the open session
func (wm *WorkoutManager) ToggleMute() {
	if d := wm.current("ToggleMute"); d != nil {
		d.ToggleMute()
	}
}

// Restart rewinds the open session to its first interval
func (wm *WorkoutManager) Restart() {
	if d := wm.current("Restart"); d != nil {
		d.Restart()
	}
}

// Close ends the open session. The UI returns to the checklist once the
// session reports it has closed.
func (wm *WorkoutManager) Close() {
	if d := wm.current("Close"); d != nil {
		d.Close()
	}
}

// Shutdown ends any open session and waits for background goroutines.
// Safe to call multiple times - only the first call has effect
func (wm *WorkoutManager) Shutdown() {
	wm.shutdownOnce.Do(func() {
		wm.logger.Println("WorkoutManager: Shutting down")
		wm.mu.Lock()
		wm.endSessionLocked()
		wm.mu.Unlock()
		wm.wg.Wait()
		wm.logger.Println("WorkoutManager: Shutdown complete")
	})
}

func (wm *WorkoutManager) current(action string) *player.Driver {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	if wm.driver == nil {
		wm.logger.Printf("WorkoutManager: %s ignored, no open session", action)
	}
	return wm.driver
}

// endSessionLocked stops the open session without touching the UI mode
// Must be called with mu held
func (wm *WorkoutManager) endSessionLocked() {
	if wm.driver == nil {
		return
	}
	wm.cancelForward()
	wm.driver.Shutdown()
	wm.driver = nil
	wm.cancelForward = nil
}

// forwardSession copies session states into the model until the session
// closes or is discarded
func (wm *WorkoutManager) forwardSession(ctx context.Context, driver *player.Driver) {
	defer wm.wg.Done()

	stateChan := make(chan player.State, 16)
	unregisterState := driver.ListenToState(stateChan)
	defer unregisterState()

	closedChan := make(chan struct{}, 1)
	unregisterClosed := driver.ListenToClosed(closedChan)
	defer unregisterClosed()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stateChan:
			// The latest state wins over whatever was queued
			wm.model.SetPlayerState(driver.State())
		case <-closedChan:
			wm.sessionClosed(driver)
			return
		}
	}
}

// sessionClosed clears the session if it is still the current one and
// returns to the checklist
func (wm *WorkoutManager) sessionClosed(driver *player.Driver) {
	wm.mu.Lock()
	if wm.driver != driver {
		wm.mu.Unlock()
		return
	}
	cancel := wm.cancelForward
	wm.driver = nil
	wm.cancelForward = nil
	wm.mu.Unlock()

	cancel()
	driver.Shutdown()
	wm.logger.Printf("WorkoutManager: Session %s closed", driver.State().SessionID)
	wm.model.ClearPlayerState()
	wm.model.SetMode(UIModeChecklist)
}
