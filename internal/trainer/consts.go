package trainer

import "github.com/lowaak/interval-coach/internal/i18n"

// UIMode represents the current UI mode/screen
type UIMode int

const (
	UIModeSetup     UIMode = iota // Goal, equipment and time form
	UIModeChecklist               // Generated workout as a checklist
	UIModePlayer                  // Interval timer
)

// UIModeInfo contains display information for a UI mode
type UIModeInfo struct {
	Mode       UIMode
	TitleKey   string // i18n key for the page title
	KeyBinding rune   // Function key number to activate this mode, 0 when not user selectable
}

// AllUIModes defines all UI modes in order. The player is only entered by
// starting a workout.
var AllUIModes = []UIModeInfo{
	{Mode: UIModeSetup, TitleKey: "appTitle", KeyBinding: '1'},
	{Mode: UIModeChecklist, TitleKey: "mainWorkout", KeyBinding: '2'},
	{Mode: UIModePlayer, TitleKey: "startWorkout"},
}

// GetUIModeByKey returns the mode for a given key binding
func GetUIModeByKey(key rune) (UIMode, bool) {
	if key == 0 {
		return 0, false
	}
	for _, info := range AllUIModes {
		if info.KeyBinding == key {
			return info.Mode, true
		}
	}
	return 0, false
}

// GetUIModeInfo returns the info for a given mode
func GetUIModeInfo(mode UIMode) (UIModeInfo, bool) {
	for _, info := range AllUIModes {
		if info.Mode == mode {
			return info, true
		}
	}
	return UIModeInfo{}, false
}

// EquipmentID identifies one of the equipment choices of the setup form
type EquipmentID string

const (
	EquipmentBodyweight EquipmentID = "bodyweight"
	EquipmentDumbbells  EquipmentID = "dumbbells"
	EquipmentFullGym    EquipmentID = "full_gym"
)

// EquipmentOption pairs an equipment id with its i18n label key
type EquipmentOption struct {
	ID       EquipmentID
	LabelKey string
}

var AllEquipmentOptions = []EquipmentOption{
	{ID: EquipmentBodyweight, LabelKey: "equipmentBodyweight"},
	{ID: EquipmentDumbbells, LabelKey: "equipmentDumbbells"},
	{ID: EquipmentFullGym, LabelKey: "equipmentFullGym"},
}

// GetEquipmentOption returns the option for id
func GetEquipmentOption(id EquipmentID) (EquipmentOption, bool) {
	for _, opt := range AllEquipmentOptions {
		if opt.ID == id {
			return opt, true
		}
	}
	return EquipmentOption{}, false
}

// EquipmentLabel is the text sent to the generator for id. Unknown ids are
// free-form equipment descriptions and pass through unchanged.
func EquipmentLabel(lang i18n.Lang, id EquipmentID) string {
	if opt, ok := GetEquipmentOption(id); ok {
		return i18n.Translate(lang, opt.LabelKey, nil)
	}
	return string(id)
}

// Setup form limits for the target time
const (
	MinTargetMinutes     = 15
	MaxTargetMinutes     = 120
	DefaultTargetMinutes = 45
)

// ClampMinutes limits a requested time to the supported range
func ClampMinutes(minutes int) int {
	if minutes < MinTargetMinutes {
		return MinTargetMinutes
	}
	if minutes > MaxTargetMinutes {
		return MaxTargetMinutes
	}
	return minutes
}

// AllLanguages is the order languages are offered in the setup form
var AllLanguages = []i18n.Lang{i18n.EN, i18n.ZH}

const maxLogLines = 1000
