package trainer

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/lowaak/interval-coach/internal/generator"
	"github.com/lowaak/interval-coach/internal/go_func_utils"
	"github.com/lowaak/interval-coach/internal/i18n"
	"github.com/lowaak/interval-coach/internal/workout"
)

// WorkoutGenerator produces a workout for the setup form inputs
type WorkoutGenerator interface {
	Generate(ctx context.Context, req generator.Request) (*workout.Workout, error)
}

// LanguageSetter is implemented by components with translated output
type LanguageSetter interface {
	SetLanguage(lang i18n.Lang)
}

// UIController handles UI events and coordinates with the UIModel
type UIController struct {
	model          *UIModel
	workoutManager *WorkoutManager
	generator      WorkoutGenerator
	cues           LanguageSetter
	logger         *log.Logger
	ctx            context.Context
	cancel         context.CancelFunc
	wg             sync.WaitGroup
}

// NewUIController creates a new UIController with the given dependencies
func NewUIController(model *UIModel, workoutManager *WorkoutManager, gen WorkoutGenerator, cues LanguageSetter, logger *log.Logger) *UIController {
	if model == nil {
		panic("UIController: model cannot be nil")
	}
	if workoutManager == nil {
		panic("UIController: workoutManager cannot be nil")
	}
	if gen == nil {
		panic("UIController: generator cannot be nil")
	}
	if cues == nil {
		panic("UIController: cues cannot be nil")
	}
	if logger == nil {
		panic("UIController: logger cannot be nil")
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &UIController{
		model:          model,
		workoutManager: workoutManager,
		generator:      gen,
		cues:           cues,
		logger:         logger,
		ctx:            ctx,
		cancel:         cancel,
	}
	cues.SetLanguage(model.GetUIState().Lang)
	return c
}

// --- Setup Methods ---

// SubmitSetup stores the form and generates a workout in the background.
// Ignored while a request is already in flight.
func (c *UIController) SubmitSetup(form FormValues) {
	form.Focus = strings.TrimSpace(form.Focus)
	form.Minutes = ClampMinutes(form.Minutes)
	if form.Equipment == "" {
		form.Equipment = EquipmentBodyweight
	}
	c.model.SetFormValues(form)

	if c.model.GetSetupState().Generating {
		c.logger.Printf("Generation already in progress")
		return
	}

	lang := c.model.GetUIState().Lang
	t := i18n.NewTranslator(lang)
	focus := form.Focus
	if focus == "" {
		focus = t.T("generalFitness")
	}
	req := generator.Request{
		Focus:     focus,
		Equipment: EquipmentLabel(lang, form.Equipment),
		Minutes:   form.Minutes,
		Language:  lang,
	}

	c.model.SetGenerating(true)
	c.logger.Printf("Generating %d min workout for %q (%s)", req.Minutes, req.Focus, req.Equipment)

	c.wg.Add(1)
	go_func_utils.SafeGo(c.logger, func() { c.generate(req) })
}

func (c *UIController) generate(req generator.Request) {
	defer c.wg.Done()

	w, err := c.generator.Generate(c.ctx, req)
	if err != nil {
		if c.ctx.Err() != nil {
			return
		}
		c.logger.Printf("Generation failed: %v", err)
		t := i18n.NewTranslator(req.Language)
		c.model.SetGenerationError(t.T(generator.Kind(err).MessageKey()))
		return
	}

	minutes := req.Minutes
	c.model.SetWorkout(w, &minutes)
	c.model.SetMode(UIModeChecklist)
}

// LoadWorkoutFile loads a saved workout instead of generating one. Loaded
// workouts keep the default work time per set.
func (c *UIController) LoadWorkoutFile(path string) error {
	path = strings.TrimSpace(path)
	w, err := workout.LoadFile(path)
	if err != nil {
		c.logger.Printf("Load failed: %v", err)
		c.model.SetGenerationError(err.Error())
		return err
	}
	c.logger.Printf("Loaded workout %q from %s", w.Title, path)
	c.model.SetWorkout(w, nil)
	c.model.SetMode(UIModeChecklist)
	return nil
}

// GenerateAnother drops the current workout and returns to the form
func (c *UIController) GenerateAnother() {
	if c.workoutManager.HasSession() {
		c.logger.Printf("Close the player first (Esc)")
		return
	}
	c.model.SetWorkout(nil, nil)
	c.model.SetMode(UIModeSetup)
}

// --- Checklist Methods ---

// ToggleChecklistItem ticks or unticks one item of the checklist
func (c *UIController) ToggleChecklistItem(section workout.Section, index int) {
	c.model.ToggleChecklistItem(section, index)
}

// StartPlayer opens the interval player for the current workout
func (c *UIController) StartPlayer() {
	state := c.model.GetWorkoutState()
	if !state.HasWorkout() {
		c.logger.Printf("No workout loaded - generate one first (press 1)")
		return
	}
	if len(state.Intervals) == 0 {
		c.logger.Print(c.model.Translator().T("errorNoIntervals"))
		return
	}
	if err := c.workoutManager.Open(state.Intervals); err != nil {
		c.logger.Printf("Cannot start player: %v", err)
	}
}

// --- Player Methods ---

// TogglePlay starts, pauses or resumes the player
func (c *UIController) TogglePlay() {
	c.workoutManager.TogglePlay()
}

// SkipInterval jumps to the next interval
func (c *UIController) SkipInterval() {
	c.workoutManager.Skip()
}

// ToggleMute switches audio cues
func (c *UIController) ToggleMute() {
	c.workoutManager.ToggleMute()
}

// RestartPlayer rewinds the player to the first interval
func (c *UIController) RestartPlayer() {
	c.workoutManager.Restart()
}

// ClosePlayer dismisses the player
func (c *UIController) ClosePlayer() {
	c.workoutManager.Close()
}

// OnEscapeKey closes the player when it is open and the application otherwise
func (c *UIController) OnEscapeKey() {
	if c.workoutManager.HasSession() {
		c.workoutManager.Close()
		return
	}
	c.model.RequestCloseApplication()
}

// OnModeChange handles when the user requests a mode change
func (c *UIController) OnModeChange(mode UIMode) {
	if c.workoutManager.HasSession() {
		c.logger.Printf("Close the player first (Esc)")
		return
	}
	if mode == UIModePlayer {
		c.StartPlayer()
		return
	}
	if info, ok := GetUIModeInfo(mode); ok {
		c.logger.Printf("Switching to %s", c.model.Translator().T(info.TitleKey))
	}
	c.model.SetMode(mode)
}

// SetLanguage switches the display and voice language
func (c *UIController) SetLanguage(lang i18n.Lang) {
	c.model.SetLanguage(lang)
	c.cues.SetLanguage(lang)
}

// ToggleLanguage cycles through the supported languages
func (c *UIController) ToggleLanguage() {
	current := c.model.GetUIState().Lang
	for i, lang := range AllLanguages {
		if lang == current {
			c.SetLanguage(AllLanguages[(i+1)%len(AllLanguages)])
			return
		}
	}
	c.SetLanguage(AllLanguages[0])
}

// Shutdown cancels pending requests and stops the player
func (c *UIController) Shutdown() {
	c.cancel()
	c.wg.Wait()
	c.workoutManager.Shutdown()
}
