package trainer

import (
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/lowaak/interval-coach/internal/i18n"
	"github.com/lowaak/interval-coach/internal/player"
	"github.com/lowaak/interval-coach/internal/workout"
)

// Page names for tview.Pages
const (
	pageSetup     = "setup"
	pageChecklist = "checklist"
	pagePlayer    = "player"
)

const howToSearchURL = "https://www.youtube.com/results?search_query="

// CursesUIViewImpl implements UIViewImpl using tview (curses-based terminal UI)
type CursesUIViewImpl struct {
	logger      *log.Logger
	app         *tview.Application
	model       *UIModel
	controller  *UIController
	currentMode UIMode
	t           i18n.Translator

	// Root container that holds all pages
	pages *tview.Pages

	// Shared components (visible in all modes)
	logView  *tview.TextView
	mainFlex *tview.Flex // Main layout: mode content on left, logs on right

	// Setup mode components
	setupFlex   *tview.Flex
	setupForm   *tview.Form
	setupStatus *tview.TextView

	// Checklist mode components
	checklistFlex       *tview.Flex
	checklistHeader     *tview.TextView
	checklistLists      map[workout.Section]*tview.List
	checklistTabWidgets []*tview.List
	workoutState        WorkoutState

	// Player mode components
	playerFlex  *tview.Flex
	playerPanel *tview.TextView
	playerHelp  *tview.TextView
}

func NewCursesUIView(logger *log.Logger, app *tview.Application, model *UIModel) *CursesUIViewImpl {
	return &CursesUIViewImpl{
		logger:         logger,
		app:            app,
		model:          model,
		currentMode:    UIModeSetup,
		t:              i18n.NewTranslator(i18n.EN),
		checklistLists: make(map[workout.Section]*tview.List),
	}
}

// Initialize sets up the tview widgets
func (ui *CursesUIViewImpl) Initialize(controller *UIController) {
	ui.controller = controller
	ui.t = ui.model.Translator()

	// Note: Don't use SetChangedFunc with app.Draw() - it can hang during shutdown
	// when the app has been stopped but log messages are still being written.
	ui.logView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false)
	ui.logView.SetBorder(true).SetTitle(" Logs ")

	ui.pages = tview.NewPages()

	ui.initSetupMode()
	ui.initChecklistMode()
	ui.initPlayerMode()

	ui.pages.AddPage(pageSetup, ui.setupFlex, true, true)
	ui.pages.AddPage(pageChecklist, ui.checklistFlex, true, false)
	ui.pages.AddPage(pagePlayer, ui.playerFlex, true, false)

	// Main layout: pages on the left, logs on the right
	ui.mainFlex = tview.NewFlex().
		AddItem(ui.pages, 0, 2, true).
		AddItem(ui.logView, 0, 1, false)

	ui.UpdateSetupState(ui.model.GetSetupState())
	ui.UpdateWorkoutState(ui.model.GetWorkoutState())
	ui.UpdatePlayerState(ui.model.GetPlayerState())

	ui.setFocusForCurrentMode()
}

// --- Setup Mode ---

func (ui *CursesUIViewImpl) initSetupMode() {
	ui.setupForm = tview.NewForm()
	ui.setupForm.SetBorder(true)

	ui.setupStatus = tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true)

	ui.setupFlex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(ui.setupForm, 0, 1, true).
		AddItem(ui.setupStatus, 3, 0, false)

	ui.buildSetupForm(ui.model.GetSetupState().Form, "")
}

// buildSetupForm (re)creates the form items in the current language
func (ui *CursesUIViewImpl) buildSetupForm(form FormValues, filePath string) {
	ui.setupForm.Clear(true)
	ui.setupForm.SetTitle(fmt.Sprintf(" %s ", ui.t.T("appTitle")))

	ui.setupForm.AddInputField(ui.t.T("goalDescriptionLabel"), form.Focus, 48, nil, nil)
	if field, ok := ui.setupForm.GetFormItem(0).(*tview.InputField); ok {
		field.SetPlaceholder(ui.t.T("goalDescriptionPlaceholder"))
	}

	equipmentLabels := make([]string, len(AllEquipmentOptions))
	equipmentIndex := 0
	for i, opt := range AllEquipmentOptions {
		equipmentLabels[i] = ui.t.T(opt.LabelKey)
		if opt.ID == form.Equipment {
			equipmentIndex = i
		}
	}
	ui.setupForm.AddDropDown(ui.t.T("equipment"), equipmentLabels, equipmentIndex, nil)

	minutesLabel := fmt.Sprintf("%s (%s)", ui.t.T("timeAvailable"), ui.t.T("timeRange"))
	ui.setupForm.AddInputField(minutesLabel, strconv.Itoa(form.Minutes), 5, tview.InputFieldInteger, nil)

	langLabels := make([]string, len(AllLanguages))
	langIndex := 0
	for i, lang := range AllLanguages {
		langLabels[i] = i18n.Translate(lang, "languageName", nil)
		if lang == ui.t.Lang {
			langIndex = i
		}
	}
	ui.setupForm.AddDropDown(ui.t.T("language"), langLabels, langIndex, func(_ string, index int) {
		if index >= 0 && index < len(AllLanguages) && AllLanguages[index] != ui.t.Lang {
			ui.controller.SetLanguage(AllLanguages[index])
		}
	})

	ui.setupForm.AddInputField(ui.t.T("workoutFile"), filePath, 48, nil, nil)

	ui.setupForm.AddButton(ui.t.T("generateButton"), func() {
		ui.controller.SubmitSetup(ui.readSetupForm())
	})
	ui.setupForm.AddButton(ui.t.T("loadWorkout"), func() {
		if err := ui.controller.LoadWorkoutFile(ui.readFilePath()); err != nil {
			ui.logger.Printf("UI: Load workout failed: %v", err)
		}
	})
}

// readSetupForm collects the current form inputs
func (ui *CursesUIViewImpl) readSetupForm() FormValues {
	form := ui.model.GetSetupState().Form
	if field, ok := ui.setupForm.GetFormItem(0).(*tview.InputField); ok {
		form.Focus = field.GetText()
	}
	if dropDown, ok := ui.setupForm.GetFormItem(1).(*tview.DropDown); ok {
		if index, _ := dropDown.GetCurrentOption(); index >= 0 && index < len(AllEquipmentOptions) {
			form.Equipment = AllEquipmentOptions[index].ID
		}
	}
	if field, ok := ui.setupForm.GetFormItem(2).(*tview.InputField); ok {
		if minutes, err := strconv.Atoi(strings.TrimSpace(field.GetText())); err == nil {
			form.Minutes = minutes
		}
	}
	return form
}

func (ui *CursesUIViewImpl) readFilePath() string {
	if field, ok := ui.setupForm.GetFormItem(4).(*tview.InputField); ok {
		return field.GetText()
	}
	return ""
}

func (ui *CursesUIViewImpl) UpdateSetupState(state SetupState) {
	if ui.setupStatus == nil {
		return
	}

	var text string
	switch {
	case state.Generating:
		text = fmt.Sprintf(" [yellow]%s[white]", ui.t.T("buildingWorkout"))
	case state.ErrorMessage != "":
		text = fmt.Sprintf(" [red]%s[white]", tview.Escape(state.ErrorMessage))
	default:
		text = fmt.Sprintf(" [gray]%s[white]\n [gray]%s[white]", ui.t.T("goalDescriptionHint"), ui.t.T("footerTailored"))
	}
	ui.setupStatus.SetText(text)
}

// --- Checklist Mode ---

func (ui *CursesUIViewImpl) initChecklistMode() {
	ui.checklistHeader = tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true)

	listsFlex := tview.NewFlex().SetDirection(tview.FlexRow)
	for _, section := range []workout.Section{workout.SectionWarmup, workout.SectionMain, workout.SectionCooldown} {
		section := section
		list := tview.NewList().
			ShowSecondaryText(section == workout.SectionMain).
			SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
				ui.controller.ToggleChecklistItem(section, index)
			})
		list.SetBorder(true)
		ui.checklistLists[section] = list
		ui.checklistTabWidgets = append(ui.checklistTabWidgets, list)

		proportion := 1
		if section == workout.SectionMain {
			proportion = 2
		}
		listsFlex.AddItem(list, 0, proportion, section == workout.SectionWarmup)
	}

	ui.checklistFlex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(ui.checklistHeader, 4, 0, false).
		AddItem(listsFlex, 0, 1, true)
}

func (ui *CursesUIViewImpl) UpdateWorkoutState(state WorkoutState) {
	if ui.checklistHeader == nil {
		return
	}
	ui.workoutState = state

	sectionTitles := map[workout.Section]string{
		workout.SectionWarmup:   ui.t.T("warmup"),
		workout.SectionMain:     ui.t.T("mainWorkout"),
		workout.SectionCooldown: ui.t.T("cooldown"),
	}
	for section, list := range ui.checklistLists {
		title := sectionTitles[section]
		if state.HasWorkout() {
			title = fmt.Sprintf("%s %d/%d", title, countChecked(state.Checked[section]), len(state.Checked[section]))
		}
		list.SetTitle(fmt.Sprintf(" %s ", title))
	}

	if !state.HasWorkout() {
		ui.checklistHeader.SetText(fmt.Sprintf("\n  [gray]%s[white]", ui.t.T("noWorkout")))
		for _, list := range ui.checklistLists {
			list.Clear()
		}
		return
	}

	w := state.Workout
	header := fmt.Sprintf(" [yellow]%s[white]\n", tview.Escape(w.Title))
	header += fmt.Sprintf(" %s: ~%d %s", ui.t.T("estimatedDuration"), workout.EstimatedMinutes(state.Intervals), ui.t.T("min"))
	if state.TargetMinutes != nil {
		header += fmt.Sprintf(" [gray](%s)[white]", ui.t.T("matchedToTarget", i18n.Params{"min": *state.TargetMinutes}))
	}
	header += fmt.Sprintf("\n [gray]%s[white]", ui.t.T("checklistHelp"))
	ui.checklistHeader.SetText(header)

	warmup := make([]string, len(w.Warmup))
	for i, item := range w.Warmup {
		warmup[i] = tview.Escape(item)
	}
	ui.fillChecklist(workout.SectionWarmup, warmup, nil, state.Checked[workout.SectionWarmup])

	exercises := make([]string, len(w.MainWorkout))
	notes := make([]string, len(w.MainWorkout))
	for i, ex := range w.MainWorkout {
		exercises[i] = tview.Escape(fmt.Sprintf("%s  %d %s × %s %s · %s %s",
			ex.Name, ex.Sets, ui.t.T("sets"), ex.Reps, ui.t.T("reps"), ui.t.T("rest"), ex.RestTime))
		notes[i] = "   " + tview.Escape(ex.FocusNote)
	}
	ui.fillChecklist(workout.SectionMain, exercises, notes, state.Checked[workout.SectionMain])

	cooldown := make([]string, len(w.Cooldown))
	for i, item := range w.Cooldown {
		cooldown[i] = tview.Escape(item)
	}
	ui.fillChecklist(workout.SectionCooldown, cooldown, nil, state.Checked[workout.SectionCooldown])
}

// fillChecklist replaces the items of one list, keeping the selection
func (ui *CursesUIViewImpl) fillChecklist(section workout.Section, items, secondary []string, checked []bool) {
	list := ui.checklistLists[section]
	current := list.GetCurrentItem()
	list.Clear()
	for i, item := range items {
		mark := tview.Escape("[ ]")
		if i < len(checked) && checked[i] {
			mark = "[green]" + tview.Escape("[x]") + "[white]"
		}
		second := ""
		if i < len(secondary) {
			second = secondary[i]
		}
		list.AddItem(mark+" "+item, second, 0, nil)
	}
	if current >= 0 && current < len(items) {
		list.SetCurrentItem(current)
	}
}

func countChecked(flags []bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}

// howToURL is a video search for the exercise
func howToURL(exercise string) string {
	return howToSearchURL + url.QueryEscape(exercise+" exercise how to")
}

func (ui *CursesUIViewImpl) logHowToForSelection() {
	list := ui.checklistLists[workout.SectionMain]
	if !list.HasFocus() || ui.workoutState.Workout == nil {
		return
	}
	index := list.GetCurrentItem()
	exercises := ui.workoutState.Workout.MainWorkout
	if index < 0 || index >= len(exercises) {
		return
	}
	ui.logger.Printf("%s: %s", ui.t.T("howToExercise"), howToURL(exercises[index].Name))
}

// --- Player Mode ---

func (ui *CursesUIViewImpl) initPlayerMode() {
	ui.playerPanel = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	ui.playerPanel.SetBorder(true)

	ui.playerHelp = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)

	ui.playerFlex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(ui.playerPanel, 0, 1, true).
		AddItem(ui.playerHelp, 1, 0, false)
}

func (ui *CursesUIViewImpl) UpdatePlayerState(view PlayerViewState) {
	if ui.playerPanel == nil {
		return
	}
	ui.playerPanel.SetTitle(fmt.Sprintf(" %s ", ui.t.T("startWorkout")))
	ui.playerHelp.SetText(fmt.Sprintf("[gray]%s[white]", ui.t.T("playerHelp")))

	if !view.Active {
		ui.playerPanel.SetText("")
		return
	}
	ui.playerPanel.SetText(ui.formatPlayer(view.State))
}

func (ui *CursesUIViewImpl) formatPlayer(state player.State) string {
	current, ok := state.Current()
	if !ok {
		return ""
	}

	kindLabel := fmt.Sprintf("[green::b]%s[white::-]", ui.t.T("playerWork"))
	if current.Kind == workout.IntervalKindRest {
		kindLabel = fmt.Sprintf("[blue::b]%s[white::-]", ui.t.T("playerRest"))
	}

	text := "\n\n"
	text += kindLabel + "\n\n"
	text += fmt.Sprintf("[yellow::b]%s[white::-]\n", tview.Escape(current.Exercise))
	text += ui.t.T("setOf", i18n.Params{"n": current.SetIndex, "total": current.TotalSets}) + "\n\n"
	text += fmt.Sprintf("[::b]%s[::-]\n\n", formatClock(state.SecondsLeft))

	if next, ok := state.Next(); ok {
		nextLabel := ui.t.T("playerWork")
		if next.Kind == workout.IntervalKindRest {
			nextLabel = ui.t.T("playerRest")
		}
		text += fmt.Sprintf("[gray]%s: %s · %s · %s[white]\n",
			ui.t.T("playerNext"), nextLabel, tview.Escape(next.Exercise), formatClock(next.DurationSeconds))
	}
	text += progressDots(state.Index, len(state.Intervals)) + "\n\n"

	var flags []string
	switch state.Status {
	case player.StatusIdle:
		flags = append(flags, ui.t.T("playerIdle"))
	case player.StatusPaused:
		flags = append(flags, ui.t.T("playerPaused"))
	case player.StatusFinished:
		flags = append(flags, "[green]"+ui.t.T("playerFinished")+"[white]")
	}
	if state.Muted {
		flags = append(flags, "[red]"+ui.t.T("playerMuted")+"[white]")
	}
	text += strings.Join(flags, "  ")
	return text
}

// formatClock renders seconds as m:ss
func formatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// progressDots shows one dot per interval, long sessions are summarized
func progressDots(index, total int) string {
	const maxDots = 40
	if total <= 0 {
		return ""
	}
	if total > maxDots {
		return fmt.Sprintf("[gray]%d / %d[white]", index+1, total)
	}
	var b strings.Builder
	for i := 0; i < total; i++ {
		switch {
		case i < index:
			b.WriteString("[green]●")
		case i == index:
			b.WriteString("[yellow]●")
		default:
			b.WriteString("[gray]○")
		}
	}
	b.WriteString("[white]")
	return b.String()
}

// --- Mode Management ---

func (ui *CursesUIViewImpl) SetMode(mode UIMode) {
	if ui.currentMode == mode {
		return
	}

	ui.currentMode = mode

	switch mode {
	case UIModeSetup:
		ui.pages.SwitchToPage(pageSetup)
	case UIModeChecklist:
		ui.pages.SwitchToPage(pageChecklist)
	case UIModePlayer:
		ui.pages.SwitchToPage(pagePlayer)
	}

	ui.setFocusForCurrentMode()
}

func (ui *CursesUIViewImpl) GetCurrentMode() UIMode {
	return ui.currentMode
}

func (ui *CursesUIViewImpl) SetLanguage(lang i18n.Lang) {
	if ui.setupForm == nil {
		ui.t = i18n.NewTranslator(lang)
		return
	}
	form := ui.readSetupForm()
	filePath := ui.readFilePath()
	ui.t = i18n.NewTranslator(lang)
	ui.buildSetupForm(form, filePath)
	if ui.currentMode == UIModeSetup {
		ui.setFocusForCurrentMode()
	}
}

func (ui *CursesUIViewImpl) setFocusForCurrentMode() {
	switch ui.currentMode {
	case UIModeSetup:
		ui.app.SetFocus(ui.setupForm)
	case UIModeChecklist:
		if len(ui.checklistTabWidgets) > 0 {
			ui.app.SetFocus(ui.checklistTabWidgets[0])
		}
	case UIModePlayer:
		ui.app.SetFocus(ui.playerPanel)
	}
}

// typing reports whether keystrokes belong to a text field
func (ui *CursesUIViewImpl) typing() bool {
	_, ok := ui.app.GetFocus().(*tview.InputField)
	return ok
}

func (ui *CursesUIViewImpl) SetupKeyboardHandlers(controller *UIController) {
	ui.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape {
			controller.OnEscapeKey()
			return nil
		}

		if event.Key() == tcell.KeyRune && !ui.typing() {
			if mode, ok := GetUIModeByKey(event.Rune()); ok {
				controller.OnModeChange(mode)
				return nil
			}
			if event.Rune() == 'l' && ui.currentMode != UIModePlayer {
				controller.ToggleLanguage()
				return nil
			}
		}

		switch ui.currentMode {
		case UIModeChecklist:
			if event.Key() == tcell.KeyTab {
				ui.cycleChecklistFocus()
				return nil
			}
			if event.Key() != tcell.KeyRune {
				return event
			}
			switch event.Rune() {
			case 's':
				controller.StartPlayer()
				return nil
			case 'g':
				controller.GenerateAnother()
				return nil
			case 'h':
				ui.logHowToForSelection()
				return nil
			}
		case UIModePlayer:
			if event.Key() != tcell.KeyRune {
				return event
			}
			switch event.Rune() {
			case ' ':
				controller.TogglePlay()
				return nil
			case 'n':
				controller.SkipInterval()
				return nil
			case 'm':
				controller.ToggleMute()
				return nil
			case 'r':
				controller.RestartPlayer()
				return nil
			}
		}

		return event
	})
}

func (ui *CursesUIViewImpl) cycleChecklistFocus() {
	widgets := ui.checklistTabWidgets
	for i, widget := range widgets {
		if widget.HasFocus() {
			ui.app.SetFocus(widgets[(i+1)%len(widgets)])
			return
		}
	}
	if len(widgets) > 0 {
		ui.app.SetFocus(widgets[0])
	}
}

// --- Log View ---

func (ui *CursesUIViewImpl) GetLogViewHeight() int {
	_, _, _, height := ui.logView.GetInnerRect()
	return height
}

func (ui *CursesUIViewImpl) ClearLogView() {
	ui.logView.Clear()
}

func (ui *CursesUIViewImpl) WriteLogLine(line string) error {
	_, err := fmt.Fprint(ui.logView, tview.Escape(line))
	return err
}

func (ui *CursesUIViewImpl) Draw() error {
	ui.app.Draw()
	return nil
}

func (ui *CursesUIViewImpl) Run() error {
	ui.app.SetRoot(ui.mainFlex, true)
	ui.setFocusForCurrentMode()
	return ui.app.Run()
}

func (ui *CursesUIViewImpl) Stop() {
	ui.app.Stop()
}
