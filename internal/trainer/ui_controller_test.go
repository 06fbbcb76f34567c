package trainer

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowaak/interval-coach/internal/generator"
	"github.com/lowaak/interval-coach/internal/i18n"
	"github.com/lowaak/interval-coach/internal/player"
	"github.com/lowaak/interval-coach/internal/workout"
)

const waitTimeout = time.Second

type stubGenerator struct {
	mu       sync.Mutex
	requests []generator.Request
	workout  *workout.Workout
	err      error
}

func (g *stubGenerator) Generate(_ context.Context, req generator.Request) (*workout.Workout, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.requests = append(g.requests, req)
	return g.workout, g.err
}

func (g *stubGenerator) lastRequest() (generator.Request, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.requests) == 0 {
		return generator.Request{}, false
	}
	return g.requests[len(g.requests)-1], true
}

// stillTicker never fires; tests drive sessions with transport commands only
type stillTicker struct {
	c chan time.Time
}

func (t *stillTicker) C() <-chan time.Time { return t.c }
func (t *stillTicker) Reset(time.Duration) {}
func (t *stillTicker) Stop()               {}

type stillClock struct{}

func (stillClock) NewTicker(time.Duration) player.Ticker {
	return &stillTicker{c: make(chan time.Time)}
}

type recordingCueSink struct {
	mu   sync.Mutex
	lang i18n.Lang
}

func (r *recordingCueSink) Tone()           {}
func (r *recordingCueSink) Announce(string) {}

func (r *recordingCueSink) SetLanguage(lang i18n.Lang) {
	r.mu.Lock()
	r.lang = lang
	r.mu.Unlock()
}

func (r *recordingCueSink) language() i18n.Lang {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lang
}

type controllerFixture struct {
	model      *testModel
	manager    *WorkoutManager
	controller *UIController
	generator  *stubGenerator
	cues       *recordingCueSink
}

func newControllerFixture(t *testing.T) *controllerFixture {
	t.Helper()
	model := newTestModel(t, defaultPrefs())
	cues := &recordingCueSink{}
	gen := &stubGenerator{workout: sampleWorkout()}
	manager := NewWorkoutManager(model.UIModel, cues, stillClock{}, testLogger())
	controller := NewUIController(model.UIModel, manager, gen, cues, testLogger())
	t.Cleanup(controller.Shutdown)
	return &controllerFixture{
		model:      model,
		manager:    manager,
		controller: controller,
		generator:  gen,
		cues:       cues,
	}
}

func (f *controllerFixture) waitForMode(t *testing.T, mode UIMode) {
	t.Helper()
	require.Eventually(t, func() bool { return f.model.GetUIState().Mode == mode }, waitTimeout, 5*time.Millisecond)
}

func (f *controllerFixture) waitForStatus(t *testing.T, status player.Status) {
	t.Helper()
	require.Eventually(t, func() bool {
		view := f.model.GetPlayerState()
		return view.Active && view.State.Status == status
	}, waitTimeout, 5*time.Millisecond)
}

func TestUIController_NewControllerSyncsCueLanguage(t *testing.T) {
	f := newControllerFixture(t)
	assert.Equal(t, i18n.EN, f.cues.language())
}

func TestUIController_SubmitSetupGeneratesWorkout(t *testing.T) {
	f := newControllerFixture(t)

	f.controller.SubmitSetup(FormValues{Focus: "  ", Equipment: EquipmentDumbbells, Minutes: 500})
	f.waitForMode(t, UIModeChecklist)

	req, ok := f.generator.lastRequest()
	require.True(t, ok)
	assert.Equal(t, generator.Request{
		Focus:     "General fitness",
		Equipment: "Dumbbells / Bands",
		Minutes:   MaxTargetMinutes,
		Language:  i18n.EN,
	}, req)

	state := f.model.GetWorkoutState()
	require.True(t, state.HasWorkout())
	require.NotNil(t, state.TargetMinutes)
	assert.Equal(t, MaxTargetMinutes, *state.TargetMinutes)
	assert.Equal(t, FormValues{Focus: "", Equipment: EquipmentDumbbells, Minutes: MaxTargetMinutes}, f.model.GetSetupState().Form)
	assert.False(t, f.model.GetSetupState().Generating)
}

func TestUIController_SubmitSetupInChinese(t *testing.T) {
	f := newControllerFixture(t)
	f.controller.SetLanguage(i18n.ZH)

	f.controller.SubmitSetup(FormValues{Focus: "腰痛", Equipment: EquipmentFullGym, Minutes: 30})
	f.waitForMode(t, UIModeChecklist)

	req, ok := f.generator.lastRequest()
	require.True(t, ok)
	assert.Equal(t, i18n.ZH, req.Language)
	assert.Equal(t, i18n.Translate(i18n.ZH, "equipmentFullGym", nil), req.Equipment)
}

func TestUIController_SubmitSetupShowsTranslatedError(t *testing.T) {
	f := newControllerFixture(t)
	f.generator.err = fmt.Errorf("calling model: %w", generator.ErrRateLimited)

	f.controller.SubmitSetup(FormValues{Focus: "strength", Equipment: EquipmentBodyweight, Minutes: 45})

	want := i18n.Translate(i18n.EN, "errorRateLimited", nil)
	require.Eventually(t, func() bool { return f.model.GetSetupState().ErrorMessage == want }, waitTimeout, 5*time.Millisecond)
	assert.False(t, f.model.GetSetupState().Generating)
	assert.Equal(t, UIModeSetup, f.model.GetUIState().Mode)
	assert.False(t, f.model.GetWorkoutState().HasWorkout())
}

func TestUIController_LoadWorkoutFile(t *testing.T) {
	f := newControllerFixture(t)

	err := f.controller.LoadWorkoutFile("/definitely/not/here.json")
	assert.Error(t, err)
	assert.NotEmpty(t, f.model.GetSetupState().ErrorMessage)
	assert.Equal(t, UIModeSetup, f.model.GetUIState().Mode)
}

func TestUIController_StartPlayerRequiresIntervals(t *testing.T) {
	f := newControllerFixture(t)

	f.controller.StartPlayer()
	assert.False(t, f.manager.HasSession(), "no workout loaded")

	f.model.SetWorkout(&workout.Workout{Title: "Stretch only", Cooldown: []string{"Breathe"}}, nil)
	f.controller.StartPlayer()
	assert.False(t, f.manager.HasSession(), "no timed sets")
	assert.Equal(t, UIModeSetup, f.model.GetUIState().Mode)
}

func TestUIController_PlayerSession(t *testing.T) {
	f := newControllerFixture(t)
	f.model.SetWorkout(sampleWorkout(), nil)
	f.model.SetMode(UIModeChecklist)

	f.controller.StartPlayer()
	assert.True(t, f.manager.HasSession())
	assert.Equal(t, UIModePlayer, f.model.GetUIState().Mode)
	f.waitForStatus(t, player.StatusIdle)

	f.controller.TogglePlay()
	f.waitForStatus(t, player.StatusRunning)

	f.controller.SkipInterval()
	require.Eventually(t, func() bool { return f.model.GetPlayerState().State.Index == 1 }, waitTimeout, 5*time.Millisecond)

	f.controller.TogglePlay()
	f.waitForStatus(t, player.StatusPaused)

	f.controller.RestartPlayer()
	f.waitForStatus(t, player.StatusIdle)
	assert.Equal(t, 0, f.model.GetPlayerState().State.Index)

	// Mode keys are ignored while the player is open
	f.controller.OnModeChange(UIModeSetup)
	assert.Equal(t, UIModePlayer, f.model.GetUIState().Mode)

	f.controller.OnEscapeKey()
	f.waitForMode(t, UIModeChecklist)
	assert.False(t, f.manager.HasSession())
	assert.False(t, f.model.GetPlayerState().Active)
}

func TestUIController_SkipPastLastIntervalCloses(t *testing.T) {
	f := newControllerFixture(t)
	f.model.SetWorkout(&workout.Workout{
		Title:       "Single",
		MainWorkout: []workout.Exercise{{Name: "Plank", Sets: 1, RestTime: "30s"}},
	}, nil)

	f.controller.StartPlayer()
	f.controller.SkipInterval()
	f.controller.SkipInterval()

	f.waitForMode(t, UIModeChecklist)
	assert.False(t, f.manager.HasSession())
}

func TestUIController_MuteCarriesToNextSession(t *testing.T) {
	f := newControllerFixture(t)
	f.model.SetWorkout(sampleWorkout(), nil)

	f.controller.StartPlayer()
	f.controller.ToggleMute()
	require.Eventually(t, f.model.IsMuted, waitTimeout, 5*time.Millisecond)

	f.controller.ClosePlayer()
	f.waitForMode(t, UIModeChecklist)

	f.controller.StartPlayer()
	assert.True(t, f.model.GetPlayerState().State.Muted)
}

func TestUIController_EscapeWithoutSessionClosesApp(t *testing.T) {
	f := newControllerFixture(t)
	ch := make(chan struct{}, 1)
	unregister := f.model.ListenToCloseApplication(ch)
	defer unregister()

	f.controller.OnEscapeKey()

	select {
	case <-ch:
	case <-time.After(waitTimeout):
		t.Fatal("close application was not requested")
	}
}

func TestUIController_ToggleLanguage(t *testing.T) {
	f := newControllerFixture(t)

	f.controller.ToggleLanguage()
	assert.Equal(t, i18n.ZH, f.model.GetUIState().Lang)
	assert.Equal(t, i18n.ZH, f.cues.language())

	f.controller.ToggleLanguage()
	assert.Equal(t, i18n.EN, f.model.GetUIState().Lang)
}

func TestUIController_GenerateAnother(t *testing.T) {
	f := newControllerFixture(t)
	f.model.SetWorkout(sampleWorkout(), nil)
	f.model.SetMode(UIModeChecklist)

	f.controller.GenerateAnother()
	assert.Equal(t, UIModeSetup, f.model.GetUIState().Mode)
	assert.False(t, f.model.GetWorkoutState().HasWorkout())
}

func TestUIController_OnModeChange(t *testing.T) {
	f := newControllerFixture(t)

	f.controller.OnModeChange(UIModeChecklist)
	assert.Equal(t, UIModeChecklist, f.model.GetUIState().Mode)

	// The player can only be entered with a playable workout
	f.controller.OnModeChange(UIModePlayer)
	assert.Equal(t, UIModeChecklist, f.model.GetUIState().Mode)
}
