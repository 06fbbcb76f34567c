package trainer

import (
	"context"
	"log"
	"sync"

	"github.com/lowaak/interval-coach/internal/events"
	"github.com/lowaak/interval-coach/internal/go_func_utils"
	"github.com/lowaak/interval-coach/internal/i18n"
	"github.com/lowaak/interval-coach/internal/player"
	"github.com/lowaak/interval-coach/internal/workout"
)

// UIState holds the current state of the UI that views need to render
type UIState struct {
	Mode UIMode
	Lang i18n.Lang
}

// FormValues are the inputs of the setup form
type FormValues struct {
	Focus     string
	Equipment EquipmentID
	Minutes   int
}

// SetupState is what the setup page renders
type SetupState struct {
	Form         FormValues
	Generating   bool
	ErrorMessage string // Already translated, empty when there is no error
}

// WorkoutState is the loaded workout together with its derived intervals and
// which checklist items are ticked
type WorkoutState struct {
	Workout       *workout.Workout
	TargetMinutes *int
	Intervals     []workout.Interval
	Checked       map[workout.Section][]bool
}

// HasWorkout reports whether a workout has been generated or loaded
func (s WorkoutState) HasWorkout() bool {
	return s.Workout != nil
}

// PlayerViewState is the player page state. Active is false when no session
// is open.
type PlayerViewState struct {
	Active bool
	State  player.State
}

// Preferences are the startup values of the setup form and audio
type Preferences struct {
	Focus     string
	Equipment EquipmentID
	Minutes   int
	Lang      i18n.Lang
	Muted     bool
}

type UIModel struct {
	logEvent              *events.Event[string]
	closeApplicationEvent *events.Event[struct{}]
	uiStateEvent          *events.Event[UIState]
	uiState               UIState
	setupStateEvent       *events.Event[SetupState]
	setupState            SetupState
	workoutStateEvent     *events.Event[WorkoutState]
	workout               *workout.Workout
	targetMinutes         *int
	intervals             []workout.Interval
	checklist             *workout.Checklist
	playerStateEvent      *events.Event[PlayerViewState]
	playerState           PlayerViewState
	muted                 bool
	persistence           *uiModelPersistence
	logLines              []string
	logMu                 sync.RWMutex
	mu                    sync.RWMutex
	ctx                   context.Context
	cancel                context.CancelFunc
	wg                    sync.WaitGroup
	logger                *log.Logger
}

// NewUIModel creates the model. Values persisted at statePath from an
// earlier run take precedence over defaults; muting sticks if either asks
// for it.
func NewUIModel(defaults Preferences, statePath string, logger *log.Logger, uiLogChan <-chan string) *UIModel {
	if logger == nil {
		panic("UIModel: logger cannot be nil")
	}
	if uiLogChan == nil {
		panic("UIModel: uiLogChan cannot be nil")
	}

	persistence := newUIModelPersistence(statePath, logger)
	prefs := persistence.apply(defaults)

	ctx, cancel := context.WithCancel(context.Background())
	model := &UIModel{
		logEvent:              events.NewEvent[string](false),
		closeApplicationEvent: events.NewEvent[struct{}](true),
		uiStateEvent:          events.NewEvent[UIState](true),
		uiState:               UIState{Mode: UIModeSetup, Lang: prefs.Lang},
		setupStateEvent:       events.NewEvent[SetupState](true),
		setupState: SetupState{Form: FormValues{
			Focus:     prefs.Focus,
			Equipment: prefs.Equipment,
			Minutes:   ClampMinutes(prefs.Minutes),
		}},
		workoutStateEvent: events.NewEvent[WorkoutState](true),
		checklist:         workout.NewChecklist(),
		playerStateEvent:  events.NewEvent[PlayerViewState](true),
		muted:             prefs.Muted,
		persistence:       persistence,
		logLines:          make([]string, 0, maxLogLines),
		ctx:               ctx,
		cancel:            cancel,
		logger:            logger,
	}

	// Read from the UI log channel and populate logLines
	model.wg.Add(1)
	go_func_utils.SafeGo(model.logger, func() { model.readFromLogChannel(ctx, uiLogChan) })

	return model
}

// Shutdown stops all goroutines and waits for them to finish
func (m *UIModel) Shutdown() {
	m.logger.Println("UIModel: Shutting down")
	m.cancel()
	m.wg.Wait()
	m.logger.Println("UIModel: Shutdown complete")
}

// ListenToLog registers a channel to receive log messages
// Returns a deregistration function that can be called to remove the listener
func (m *UIModel) ListenToLog(ch chan<- string) func() {
	return m.logEvent.Listen(ch)
}

// ListenToCloseApplication registers a channel to receive close application signals
// Returns a deregistration function that can be called to remove the listener
func (m *UIModel) ListenToCloseApplication(ch chan<- struct{}) func() {
	return m.closeApplicationEvent.Listen(ch)
}

// RequestCloseApplication signals that the application should close
func (m *UIModel) RequestCloseApplication() {
	m.closeApplicationEvent.Notify(struct{}{})
}

// ListenToUIState registers a channel to receive UI state changes
// Returns a deregistration function that can be called to remove the listener
func (m *UIModel) ListenToUIState(ch chan<- UIState) func() {
	return m.uiStateEvent.Listen(ch)
}

// GetUIState returns the current UI state
func (m *UIModel) GetUIState() UIState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.uiState
}

// SetMode updates the current UI mode and notifies listeners
func (m *UIModel) SetMode(mode UIMode) {
	m.mu.Lock()
	if m.uiState.Mode == mode {
		m.mu.Unlock()
		return
	}
	m.uiState.Mode = mode
	state := m.uiState
	m.mu.Unlock()

	m.uiStateEvent.Notify(state)
}

// SetLanguage switches the display language, persists it and notifies listeners
func (m *UIModel) SetLanguage(lang i18n.Lang) {
	m.mu.Lock()
	if m.uiState.Lang == lang {
		m.mu.Unlock()
		return
	}
	m.uiState.Lang = lang
	state := m.uiState
	m.persistence.setLanguage(lang)
	m.mu.Unlock()

	m.uiStateEvent.Notify(state)
}

// Translator returns a translator for the current language
func (m *UIModel) Translator() i18n.Translator {
	return i18n.NewTranslator(m.GetUIState().Lang)
}

// ListenToSetupState registers a channel to receive setup form changes
// Returns a deregistration function that can be called to remove the listener
func (m *UIModel) ListenToSetupState(ch chan<- SetupState) func() {
	return m.setupStateEvent.Listen(ch)
}

// GetSetupState returns the current setup state
func (m *UIModel) GetSetupState() SetupState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.setupState
}

// SetFormValues stores the form inputs and remembers them for the next run
func (m *UIModel) SetFormValues(form FormValues) {
	m.mu.Lock()
	m.setupState.Form = form
	state := m.setupState
	m.persistence.setForm(form)
	m.mu.Unlock()

	m.setupStateEvent.Notify(state)
}

// SetGenerating marks a generation request as in flight. Starting a new
// request clears the previous error.
func (m *UIModel) SetGenerating(generating bool) {
	m.mu.Lock()
	m.setupState.Generating = generating
	if generating {
		m.setupState.ErrorMessage = ""
	}
	state := m.setupState
	m.mu.Unlock()

	m.setupStateEvent.Notify(state)
}

// SetGenerationError ends the in-flight request with a user-facing message
func (m *UIModel) SetGenerationError(message string) {
	m.mu.Lock()
	m.setupState.Generating = false
	m.setupState.ErrorMessage = message
	state := m.setupState
	m.mu.Unlock()

	m.setupStateEvent.Notify(state)
}

// ListenToWorkoutState registers a channel to receive workout changes
// Returns a deregistration function that can be called to remove the listener
func (m *UIModel) ListenToWorkoutState(ch chan<- WorkoutState) func() {
	return m.workoutStateEvent.Listen(ch)
}

// GetWorkoutState returns the current workout state
func (m *UIModel) GetWorkoutState() WorkoutState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.buildWorkoutStateSnapshot()
}

// SetWorkout replaces the current workout, derives its intervals for
// targetMinutes (nil keeps the default work time) and clears the checklist
func (m *UIModel) SetWorkout(w *workout.Workout, targetMinutes *int) {
	m.mu.Lock()
	m.workout = w
	m.targetMinutes = targetMinutes
	m.intervals = nil
	if w != nil {
		m.intervals = workout.BuildIntervals(w.MainWorkout, targetMinutes)
	}
	m.checklist.Reset()
	m.setupState.Generating = false
	m.setupState.ErrorMessage = ""
	state := m.buildWorkoutStateSnapshot()
	setup := m.setupState
	m.mu.Unlock()

	if w != nil {
		m.logger.Printf("UIModel: Workout %q with %d intervals (%ds)",
			w.Title, len(state.Intervals), workout.TotalSeconds(state.Intervals))
	}
	m.setupStateEvent.Notify(setup)
	m.workoutStateEvent.Notify(state)
}

// ToggleChecklistItem flips one checklist item. Out of range items are ignored.
func (m *UIModel) ToggleChecklistItem(section workout.Section, index int) bool {
	m.mu.Lock()
	if m.workout == nil || index < 0 || index >= sectionLen(m.workout, section) {
		m.mu.Unlock()
		return false
	}
	checked := m.checklist.Toggle(section, index)
	state := m.buildWorkoutStateSnapshot()
	m.mu.Unlock()

	m.workoutStateEvent.Notify(state)
	return checked
}

// buildWorkoutStateSnapshot creates a snapshot of the workout and checklist
// Must be called with mu held
func (m *UIModel) buildWorkoutStateSnapshot() WorkoutState {
	state := WorkoutState{
		Workout:       m.workout,
		TargetMinutes: m.targetMinutes,
		Intervals:     m.intervals,
		Checked:       make(map[workout.Section][]bool),
	}
	if m.workout == nil {
		return state
	}
	for _, section := range []workout.Section{workout.SectionWarmup, workout.SectionMain, workout.SectionCooldown} {
		flags := make([]bool, sectionLen(m.workout, section))
		for i := range flags {
			flags[i] = m.checklist.IsChecked(section, i)
		}
		state.Checked[section] = flags
	}
	return state
}

func sectionLen(w *workout.Workout, section workout.Section) int {
	switch section {
	case workout.SectionWarmup:
		return len(w.Warmup)
	case workout.SectionMain:
		return len(w.MainWorkout)
	case workout.SectionCooldown:
		return len(w.Cooldown)
	default:
		return 0
	}
}

// ListenToPlayerState registers a channel to receive player updates
// Returns a deregistration function that can be called to remove the listener
func (m *UIModel) ListenToPlayerState(ch chan<- PlayerViewState) func() {
	return m.playerStateEvent.Listen(ch)
}

// GetPlayerState returns the current player state
func (m *UIModel) GetPlayerState() PlayerViewState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.playerState
}

// SetPlayerState publishes a session state. The mute flag is remembered
// for the next session.
func (m *UIModel) SetPlayerState(state player.State) {
	m.mu.Lock()
	m.playerState = PlayerViewState{Active: state.Status != player.StatusClosed, State: state}
	if m.muted != state.Muted {
		m.muted = state.Muted
		m.persistence.setMuted(state.Muted)
	}
	snapshot := m.playerState
	m.mu.Unlock()

	m.playerStateEvent.Notify(snapshot)
}

// ClearPlayerState marks that no session is open
func (m *UIModel) ClearPlayerState() {
	m.mu.Lock()
	m.playerState = PlayerViewState{}
	snapshot := m.playerState
	m.mu.Unlock()

	m.playerStateEvent.Notify(snapshot)
}

// IsMuted reports whether new sessions start muted
func (m *UIModel) IsMuted() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.muted
}

// readFromLogChannel reads log lines from the channel and populates logLines
func (m *UIModel) readFromLogChannel(ctx context.Context, logChan <-chan string) {
	defer m.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-logChan:
			if !ok {
				return
			}

			m.logMu.Lock()
			m.logLines = append(m.logLines, line)
			if len(m.logLines) > maxLogLines {
				m.logLines = m.logLines[len(m.logLines)-maxLogLines:]
			}
			m.logMu.Unlock()

			m.logEvent.Notify(line)
		}
	}
}

// GetLogTail returns the last n lines of logs
func (m *UIModel) GetLogTail(n int) []string {
	m.logMu.RLock()
	defer m.logMu.RUnlock()

	if n <= 0 {
		return []string{}
	}
	if n > len(m.logLines) {
		n = len(m.logLines)
	}
	result := make([]string, n)
	copy(result, m.logLines[len(m.logLines)-n:])
	return result
}
