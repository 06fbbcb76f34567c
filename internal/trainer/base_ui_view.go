package trainer

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/lowaak/interval-coach/internal/go_func_utils"
	"github.com/lowaak/interval-coach/internal/i18n"
)

// BaseUIView contains the base logic shared by all UI implementations
type BaseUIView struct {
	uiViewImpl   UIViewImpl
	uiModel      *UIModel
	uiController *UIController
	context      context.Context
	cancelFunc   context.CancelFunc
	waitGroup    sync.WaitGroup
	logger       *log.Logger
}

// NewBaseUIViewArg holds the arguments for creating a new BaseUIView
type NewBaseUIViewArg struct {
	UIViewImpl   UIViewImpl
	UIModel      *UIModel
	UIController *UIController
	Logger       *log.Logger
}

// NewBaseUIView creates a new BaseUIView with the given implementation
func NewBaseUIView(args NewBaseUIViewArg) *BaseUIView {
	if args.Logger == nil {
		panic("BaseUIView: logger cannot be nil")
	}
	if args.UIViewImpl == nil {
		panic("BaseUIView: UIViewImpl cannot be nil")
	}
	if args.UIModel == nil {
		panic("BaseUIView: UIModel cannot be nil")
	}
	if args.UIController == nil {
		panic("BaseUIView: UIController cannot be nil")
	}
	ctx, cancel := context.WithCancel(context.Background())

	base := &BaseUIView{
		uiViewImpl:   args.UIViewImpl,
		uiModel:      args.UIModel,
		uiController: args.UIController,
		context:      ctx,
		cancelFunc:   cancel,
		logger:       args.Logger,
	}

	// Initialize framework-specific widgets
	args.UIViewImpl.Initialize(args.UIController)

	// Set up keyboard handlers
	args.UIViewImpl.SetupKeyboardHandlers(args.UIController)

	// Set initial language and mode from model
	uiState := args.UIModel.GetUIState()
	args.UIViewImpl.SetLanguage(uiState.Lang)
	args.UIViewImpl.SetMode(uiState.Mode)

	// Set up periodic resize check and initial display
	base.waitGroup.Add(1)
	go_func_utils.SafeGo(base.logger, func() { base.monitorLogResize() })
	base.updateLogDisplay()

	base.setupEventListeners()

	return base
}

// listen runs handle for every value of a model event until the view shuts down
func listen[T any](base *BaseUIView, register func(chan<- T) func(), handle func(T)) {
	ch := make(chan T, 1)
	unregister := register(ch)
	base.waitGroup.Add(1)
	go_func_utils.SafeGo(base.logger, func() {
		defer base.waitGroup.Done()
		defer unregister()
		for {
			select {
			case <-base.context.Done():
				return
			case value, ok := <-ch:
				if !ok {
					return
				}
				handle(value)
			}
		}
	})
}

func (base *BaseUIView) setupEventListeners() {
	// When a new log arrives, update the display to show the tail
	listen(base, base.uiModel.ListenToLog, func(string) {
		base.updateLogDisplay()
	})

	listen(base, base.uiModel.ListenToCloseApplication, func(struct{}) {
		base.uiViewImpl.Stop()
	})

	lastLang := base.uiModel.GetUIState().Lang
	listen(base, base.uiModel.ListenToUIState, func(state UIState) {
		if state.Lang != lastLang {
			lastLang = state.Lang
			base.refreshLanguage(state.Lang)
		}
		base.uiViewImpl.SetMode(state.Mode)
		base.draw()
	})

	listen(base, base.uiModel.ListenToSetupState, func(state SetupState) {
		base.uiViewImpl.UpdateSetupState(state)
		base.draw()
	})

	listen(base, base.uiModel.ListenToWorkoutState, func(state WorkoutState) {
		base.uiViewImpl.UpdateWorkoutState(state)
		base.draw()
	})

	listen(base, base.uiModel.ListenToPlayerState, func(state PlayerViewState) {
		base.uiViewImpl.UpdatePlayerState(state)
		base.draw()
	})
}

// refreshLanguage relabels the view and re-renders every page with the
// current model state
func (base *BaseUIView) refreshLanguage(lang i18n.Lang) {
	base.uiViewImpl.SetLanguage(lang)
	base.uiViewImpl.UpdateSetupState(base.uiModel.GetSetupState())
	base.uiViewImpl.UpdateWorkoutState(base.uiModel.GetWorkoutState())
	base.uiViewImpl.UpdatePlayerState(base.uiModel.GetPlayerState())
}

func (base *BaseUIView) draw() {
	if err := base.uiViewImpl.Draw(); err != nil {
		base.logger.Printf("BaseUIView: Error drawing: %v", err)
	}
}

func (base *BaseUIView) updateLogDisplay() {
	// Get the visible height of the log view
	height := base.uiViewImpl.GetLogViewHeight()
	if height <= 0 {
		return
	}

	logLines := base.uiModel.GetLogTail(height)

	base.uiViewImpl.ClearLogView()
	for _, line := range logLines {
		if err := base.uiViewImpl.WriteLogLine(line); err != nil {
			base.logger.Printf("BaseUIView: Error writing to log view: %v", err)
		}
	}
}

func (base *BaseUIView) monitorLogResize() {
	defer base.waitGroup.Done()
	var lastHeight int
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-base.context.Done():
			return
		case <-ticker.C:
			height := base.uiViewImpl.GetLogViewHeight()
			if height != lastHeight && height > 0 {
				lastHeight = height
				base.updateLogDisplay()
				base.draw()
			}
		}
	}
}

// Shutdown stops all goroutines and waits for them to finish
func (base *BaseUIView) Shutdown() {
	base.logger.Println("BaseUIView: Shutting down")
	base.cancelFunc()
	base.waitGroup.Wait()
	base.logger.Println("BaseUIView: Shutdown complete")
}

// Run starts the UI and blocks until it exits
func (base *BaseUIView) Run() error {
	return base.uiViewImpl.Run()
}
