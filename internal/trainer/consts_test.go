package trainer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lowaak/interval-coach/internal/i18n"
)

func TestGetUIModeByKey(t *testing.T) {
	mode, ok := GetUIModeByKey('1')
	assert.True(t, ok)
	assert.Equal(t, UIModeSetup, mode)

	mode, ok = GetUIModeByKey('2')
	assert.True(t, ok)
	assert.Equal(t, UIModeChecklist, mode)

	_, ok = GetUIModeByKey('3')
	assert.False(t, ok)
	_, ok = GetUIModeByKey(0)
	assert.False(t, ok, "the player has no key binding")
}

func TestClampMinutes(t *testing.T) {
	assert.Equal(t, MinTargetMinutes, ClampMinutes(0))
	assert.Equal(t, 45, ClampMinutes(45))
	assert.Equal(t, MaxTargetMinutes, ClampMinutes(240))
}

func TestEquipmentLabel(t *testing.T) {
	assert.Equal(t, "Full Gym", EquipmentLabel(i18n.EN, EquipmentFullGym))
	assert.Equal(t, i18n.Translate(i18n.ZH, "equipmentBodyweight", nil), EquipmentLabel(i18n.ZH, EquipmentBodyweight))
	assert.Equal(t, "kettlebell", EquipmentLabel(i18n.EN, EquipmentID("kettlebell")))
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "0:00", formatClock(0))
	assert.Equal(t, "0:05", formatClock(5))
	assert.Equal(t, "1:30", formatClock(90))
	assert.Equal(t, "0:00", formatClock(-3))
}

func TestHowToURL(t *testing.T) {
	assert.Equal(t, "https://www.youtube.com/results?search_query=Goblet+Squat+exercise+how+to", howToURL("Goblet Squat"))
}
