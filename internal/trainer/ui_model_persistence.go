package trainer

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"github.com/lowaak/interval-coach/internal/config"
	"github.com/lowaak/interval-coach/internal/i18n"
)

// uiModelPersistenceData is the file format. Empty fields were never saved.
type uiModelPersistenceData struct {
	Focus     string `json:"focus,omitempty"`
	Equipment string `json:"equipment,omitempty"`
	Minutes   int    `json:"minutes,omitempty"`
	Language  string `json:"language,omitempty"`
	Muted     bool   `json:"muted,omitempty"`
}

type uiModelPersistence struct {
	filePath string
	data     uiModelPersistenceData
	logger   *log.Logger
}

// DefaultStatePath is where UI preferences are kept between runs
func DefaultStatePath() string {
	return filepath.Join(config.AppDir(), "ui_state.json")
}

func newUIModelPersistence(filePath string, logger *log.Logger) *uiModelPersistence {
	if filePath == "" {
		filePath = DefaultStatePath()
	}
	p := &uiModelPersistence{
		filePath: filePath,
		logger:   logger,
	}
	p.load()
	return p
}

// apply overlays saved values on defaults
func (p *uiModelPersistence) apply(defaults Preferences) Preferences {
	prefs := defaults
	if p.data.Focus != "" {
		prefs.Focus = p.data.Focus
	}
	if p.data.Equipment != "" {
		prefs.Equipment = EquipmentID(p.data.Equipment)
	}
	if p.data.Minutes > 0 {
		prefs.Minutes = p.data.Minutes
	}
	if p.data.Language != "" {
		prefs.Lang = i18n.ParseLang(p.data.Language)
	}
	prefs.Muted = prefs.Muted || p.data.Muted
	if prefs.Equipment == "" {
		prefs.Equipment = EquipmentBodyweight
	}
	if prefs.Minutes <= 0 {
		prefs.Minutes = DefaultTargetMinutes
	}
	if prefs.Lang == "" {
		prefs.Lang = i18n.EN
	}
	return prefs
}

func (p *uiModelPersistence) setForm(form FormValues) {
	p.logger.Printf("UIModelPersistence: setForm %+v", form)
	p.data.Focus = form.Focus
	p.data.Equipment = string(form.Equipment)
	p.data.Minutes = form.Minutes
	p.save()
}

func (p *uiModelPersistence) setLanguage(lang i18n.Lang) {
	p.logger.Printf("UIModelPersistence: setLanguage %s", lang)
	p.data.Language = string(lang)
	p.save()
}

func (p *uiModelPersistence) setMuted(muted bool) {
	p.logger.Printf("UIModelPersistence: setMuted %v", muted)
	p.data.Muted = muted
	p.save()
}

func (p *uiModelPersistence) load() {
	p.data = uiModelPersistenceData{}
	raw, err := os.ReadFile(p.filePath)
	if err != nil {
		p.logger.Printf("UIModelPersistence: load %s (no existing file)", p.filePath)
		return
	}
	if err := json.Unmarshal(raw, &p.data); err != nil {
		p.logger.Printf("UIModelPersistence: load %s failed to parse: %v", p.filePath, err)
		p.data = uiModelPersistenceData{}
		return
	}
	p.logger.Printf("UIModelPersistence: load %s -> %+v", p.filePath, p.data)
}

func (p *uiModelPersistence) save() {
	if err := os.MkdirAll(filepath.Dir(p.filePath), 0755); err != nil {
		p.logger.Printf("UIModelPersistence: save mkdir failed: %v", err)
		return
	}
	raw, err := json.MarshalIndent(p.data, "", "  ")
	if err != nil {
		p.logger.Printf("UIModelPersistence: save marshal failed: %v", err)
		return
	}
	if err := os.WriteFile(p.filePath, raw, 0644); err != nil {
		p.logger.Printf("UIModelPersistence: save %s failed: %v", p.filePath, err)
		return
	}
	p.logger.Printf("UIModelPersistence: save %s -> %+v", p.filePath, p.data)
}
