// Package generator asks a chat-completions model for a workout plan and
// turns its answer into a validated workout.Workout.
package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/lowaak/interval-coach/internal/i18n"
	"github.com/lowaak/interval-coach/internal/workout"
)

// Request describes the workout the user wants
type Request struct {
	Focus     string    `json:"focus"`
	Equipment string    `json:"equipment"`
	Minutes   int       `json:"time"`
	Language  i18n.Lang `json:"language"`
}

func (r Request) validate() error {
	if strings.TrimSpace(r.Focus) == "" {
		return fmt.Errorf("%w: focus is required", ErrInvalidInput)
	}
	if strings.TrimSpace(r.Equipment) == "" {
		return fmt.Errorf("%w: equipment is required", ErrInvalidInput)
	}
	if r.Minutes <= 0 {
		return fmt.Errorf("%w: time must be positive, got %d", ErrInvalidInput, r.Minutes)
	}
	return nil
}

// Chatter is the model call the generator depends on
type Chatter interface {
	Chat(ctx context.Context, messages []Message) (string, error)
}

// Generator builds workouts through a Chatter
type Generator struct {
	chat   Chatter
	logger *log.Logger
}

func New(chat Chatter, logger *log.Logger) *Generator {
	if chat == nil {
		panic("Generator: chat cannot be nil")
	}
	if logger == nil {
		panic("Generator: logger cannot be nil")
	}
	return &Generator{chat: chat, logger: logger}
}

// Generate returns a workout for req or one of the package's sentinel errors
func (g *Generator) Generate(ctx context.Context, req Request) (*workout.Workout, error) {
	if req.Language == "" {
		req.Language = i18n.EN
	}
	if err := req.validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	g.logger.Printf("Generator: Requesting %d min workout (%s, %s)", req.Minutes, req.Equipment, req.Language)

	content, err := g.chat.Chat(ctx, []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userMessage(req)},
	})
	if err != nil {
		g.logger.Printf("Generator: Request failed after %v: %v", time.Since(start).Round(time.Millisecond), err)
		return nil, err
	}

	w, err := ParseWorkout(content)
	if err != nil {
		g.logger.Printf("Generator: Could not parse response: %v", err)
		return nil, err
	}

	g.logger.Printf("Generator: Got '%s' with %d exercises in %v", w.Title, len(w.MainWorkout), time.Since(start).Round(time.Millisecond))
	return w, nil
}

var fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// ExtractJSON returns the body of the first fenced code block, or the
// trimmed content when there is none.
func ExtractJSON(content string) string {
	if m := fencedJSON.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(content)
}

// ParseWorkout decodes and validates a model answer
func ParseWorkout(content string) (*workout.Workout, error) {
	raw := []byte(ExtractJSON(content))

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: not a JSON object: %v", ErrMalformedResponse, err)
	}
	for _, key := range []string{"warmup", "main_workout", "cooldown"} {
		if !isJSONArray(fields[key]) {
			return nil, fmt.Errorf("%w: %s must be an array", ErrMalformedResponse, key)
		}
	}

	var w workout.Workout
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if strings.TrimSpace(w.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrMalformedResponse)
	}
	return &w, nil
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return strings.HasPrefix(trimmed, "[")
}
