package trainer

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowaak/interval-coach/internal/i18n"
)

// fakeUIView records what BaseUIView pushes to it
type fakeUIView struct {
	mu             sync.Mutex
	initialized    bool
	keysSetUp      bool
	mode           UIMode
	lang           i18n.Lang
	stopped        bool
	logLines       []string
	setupUpdates   int
	workoutUpdates int
	playerUpdates  int
	lastWorkout    WorkoutState
}

func (v *fakeUIView) Initialize(*UIController) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.initialized = true
}

func (v *fakeUIView) SetupKeyboardHandlers(*UIController) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.keysSetUp = true
}

func (v *fakeUIView) Run() error { return nil }

func (v *fakeUIView) Stop() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.stopped = true
}

func (v *fakeUIView) Draw() error { return nil }

func (v *fakeUIView) SetMode(mode UIMode) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.mode = mode
}

func (v *fakeUIView) GetCurrentMode() UIMode {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mode
}

func (v *fakeUIView) SetLanguage(lang i18n.Lang) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lang = lang
}

func (v *fakeUIView) GetLogViewHeight() int { return 3 }

func (v *fakeUIView) ClearLogView() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.logLines = nil
}

func (v *fakeUIView) WriteLogLine(line string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.logLines = append(v.logLines, line)
	return nil
}

func (v *fakeUIView) UpdateSetupState(SetupState) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.setupUpdates++
}

func (v *fakeUIView) UpdateWorkoutState(state WorkoutState) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.workoutUpdates++
	v.lastWorkout = state
}

func (v *fakeUIView) UpdatePlayerState(PlayerViewState) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.playerUpdates++
}

type viewSnapshot struct {
	initialized    bool
	keysSetUp      bool
	mode           UIMode
	lang           i18n.Lang
	stopped        bool
	logLines       []string
	setupUpdates   int
	workoutUpdates int
	playerUpdates  int
	lastWorkout    WorkoutState
}

func (v *fakeUIView) snapshot() viewSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return viewSnapshot{
		initialized:    v.initialized,
		keysSetUp:      v.keysSetUp,
		mode:           v.mode,
		lang:           v.lang,
		stopped:        v.stopped,
		logLines:       append([]string(nil), v.logLines...),
		setupUpdates:   v.setupUpdates,
		workoutUpdates: v.workoutUpdates,
		playerUpdates:  v.playerUpdates,
		lastWorkout:    v.lastWorkout,
	}
}

func newTestBaseView(t *testing.T) (*fakeUIView, *controllerFixture) {
	t.Helper()
	f := newControllerFixture(t)
	view := &fakeUIView{mode: UIMode(-1)}
	base := NewBaseUIView(NewBaseUIViewArg{
		UIViewImpl:   view,
		UIModel:      f.model.UIModel,
		UIController: f.controller,
		Logger:       testLogger(),
	})
	t.Cleanup(base.Shutdown)
	return view, f
}

func TestBaseUIView_InitializesFromModel(t *testing.T) {
	view, _ := newTestBaseView(t)

	s := view.snapshot()
	assert.True(t, s.initialized)
	assert.True(t, s.keysSetUp)
	assert.Equal(t, UIModeSetup, s.mode)
	assert.Equal(t, i18n.EN, s.lang)
}

func TestBaseUIView_FollowsModeChanges(t *testing.T) {
	view, f := newTestBaseView(t)

	f.model.SetMode(UIModeChecklist)
	require.Eventually(t, func() bool { return view.GetCurrentMode() == UIModeChecklist }, waitTimeout, 5*time.Millisecond)
}

func TestBaseUIView_LanguageChangeRerendersPages(t *testing.T) {
	view, f := newTestBaseView(t)

	f.controller.SetLanguage(i18n.ZH)
	require.Eventually(t, func() bool {
		s := view.snapshot()
		return s.lang == i18n.ZH && s.playerUpdates > 0
	}, waitTimeout, 5*time.Millisecond)

	s := view.snapshot()
	assert.Positive(t, s.setupUpdates)
	assert.Positive(t, s.workoutUpdates)
}

func TestBaseUIView_ForwardsWorkoutUpdates(t *testing.T) {
	view, f := newTestBaseView(t)

	f.model.SetWorkout(sampleWorkout(), nil)
	require.Eventually(t, func() bool { return view.snapshot().lastWorkout.HasWorkout() }, waitTimeout, 5*time.Millisecond)
	assert.Equal(t, "Leg Day", view.snapshot().lastWorkout.Workout.Title)
}

func TestBaseUIView_ShowsLogTail(t *testing.T) {
	view, f := newTestBaseView(t)

	for _, line := range []string{"one\n", "two\n", "three\n", "four\n"} {
		f.model.logChan <- line
	}

	require.Eventually(t, func() bool {
		return strings.Join(view.snapshot().logLines, "") == "two\nthree\nfour\n"
	}, waitTimeout, 5*time.Millisecond)
}

func TestBaseUIView_StopsOnCloseRequest(t *testing.T) {
	view, f := newTestBaseView(t)

	f.model.RequestCloseApplication()
	require.Eventually(t, func() bool { return view.snapshot().stopped }, waitTimeout, 5*time.Millisecond)
}
