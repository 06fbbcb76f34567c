package workout

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Exercise is one entry of the main workout as produced by the generator
type Exercise struct {
	Name      string `json:"exercise" yaml:"exercise"`
	Sets      int    `json:"sets" yaml:"sets"`
	Reps      string `json:"reps" yaml:"reps"`
	RestTime  string `json:"rest_time" yaml:"rest_time"`
	FocusNote string `json:"focus_note" yaml:"focus_note"`
}

// Workout is a complete generated plan
type Workout struct {
	Title       string     `json:"title" yaml:"title"`
	Warmup      []string   `json:"warmup" yaml:"warmup"`
	MainWorkout []Exercise `json:"main_workout" yaml:"main_workout"`
	Cooldown    []string   `json:"cooldown" yaml:"cooldown"`
}

// Interval is a single timed segment of a playback session
type Interval struct {
	Kind            IntervalKind `json:"type"`
	DurationSeconds int          `json:"duration_seconds"`
	Exercise        string       `json:"exercise"`
	SetIndex        int          `json:"set_index"`
	TotalSets       int          `json:"total_sets"`
}

// LoadFile reads a workout from a JSON or YAML file. The format is chosen by
// extension; anything that is not .yaml/.yml is decoded as JSON.
func LoadFile(path string) (*Workout, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workout file: %w", err)
	}

	var w Workout
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &w)
	default:
		err = json.Unmarshal(raw, &w)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing workout file %s: %w", path, err)
	}
	if w.Title == "" {
		return nil, fmt.Errorf("workout file %s: title is required", path)
	}
	return &w, nil
}
