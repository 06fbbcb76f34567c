package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lowaak/interval-coach/internal/generator"
	"github.com/lowaak/interval-coach/internal/i18n"
	"github.com/lowaak/interval-coach/internal/workout"
)

// maxBodyBytes bounds JSON request bodies
const maxBodyBytes = 1 << 20

type generateRequest struct {
	Focus     string `json:"focus"`
	Equipment string `json:"equipment"`
	Time      *int   `json:"time"`
	Language  string `json:"language"`
}

type intervalsRequest struct {
	MainWorkout   []workout.Exercise `json:"main_workout"`
	TargetMinutes *int               `json:"target_minutes"`
}

type intervalsResponse struct {
	Intervals        []workout.Interval `json:"intervals"`
	TotalSeconds     int                `json:"total_seconds"`
	EstimatedMinutes int                `json:"estimated_minutes"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var body generateRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	lang := i18n.ParseLang(body.Language)
	if body.Focus == "" || body.Equipment == "" || body.Time == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing required fields: focus, equipment, time"})
		return
	}

	result, err := s.gen.Generate(r.Context(), generator.Request{
		Focus:     body.Focus,
		Equipment: body.Equipment,
		Minutes:   *body.Time,
		Language:  lang,
	})
	if err != nil {
		s.logger.Printf("Server: generate error: %v", err)
		kind := generator.Kind(err)
		status := http.StatusInternalServerError
		if errors.Is(err, generator.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, map[string]string{
			"error": i18n.Translate(lang, kind.MessageKey(), nil),
			"kind":  kindName(kind),
		})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleIntervals(w http.ResponseWriter, r *http.Request) {
	var body intervalsRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if err := workout.CheckSets(body.MainWorkout); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	intervals := workout.BuildIntervals(body.MainWorkout, body.TargetMinutes)
	writeJSON(w, http.StatusOK, intervalsResponse{
		Intervals:        intervals,
		TotalSeconds:     workout.TotalSeconds(intervals),
		EstimatedMinutes: workout.EstimatedMinutes(intervals),
	})
}

func kindName(kind generator.ErrorKind) string {
	switch kind {
	case generator.KindMissingConfig:
		return "missing_config"
	case generator.KindInvalidInput:
		return "invalid_input"
	case generator.KindRateLimited:
		return "rate_limited"
	case generator.KindAuthFailed:
		return "auth_failed"
	case generator.KindAccessDenied:
		return "access_denied"
	case generator.KindMalformedResponse:
		return "malformed_response"
	default:
		return "upstream"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
