package trainer

import "github.com/lowaak/interval-coach/internal/i18n"

// UIViewImpl defines the interface for framework-specific UI implementations
type UIViewImpl interface {
	// Initialize is called after construction to set up framework-specific widgets
	// controller is used to handle UI events
	Initialize(controller *UIController)

	// SetupKeyboardHandlers sets up keyboard event handlers
	// controller is used to handle keyboard events
	SetupKeyboardHandlers(controller *UIController)

	// Run starts the UI framework and blocks until it exits
	Run() error

	// Stop stops the UI framework
	Stop()

	// Draw refreshes/redraws the UI
	Draw() error

	// --- Mode Management ---

	// SetMode switches the UI to the specified mode
	SetMode(mode UIMode)

	// GetCurrentMode returns the currently active UI mode
	GetCurrentMode() UIMode

	// SetLanguage changes the language of all static labels. The next
	// Update* calls render content in the new language.
	SetLanguage(lang i18n.Lang)

	// --- Log View (shared across modes) ---

	// GetLogViewHeight returns the visible height of the log view
	GetLogViewHeight() int

	// ClearLogView clears the log view
	ClearLogView()

	// WriteLogLine writes a line to the log view
	WriteLogLine(line string) error

	// --- Setup Mode ---

	// UpdateSetupState updates the form values, progress and error display
	UpdateSetupState(state SetupState)

	// --- Checklist Mode ---

	// UpdateWorkoutState updates the checklist and estimated duration
	UpdateWorkoutState(state WorkoutState)

	// --- Player Mode ---

	// UpdatePlayerState updates the countdown display
	UpdatePlayerState(state PlayerViewState)
}
