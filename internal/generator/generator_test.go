package generator

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowaak/interval-coach/internal/i18n"
)

const sampleWorkout = `{
  "title": "Knee-Friendly Strength",
  "warmup": ["March in place", "Hip circles"],
  "main_workout": [
    {"exercise": "Glute Bridge (臀橋)", "sets": 3, "reps": "12", "rest_time": "30 seconds", "focus_note": "Squeeze at the top"},
    {"exercise": "Wall Sit (靠牆蹲)", "sets": 2, "reps": "30s", "rest_time": "1 minute", "focus_note": "Knees over ankles"}
  ],
  "cooldown": ["Hamstring stretch"]
}`

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// newTestServer answers chat completions with the given status and body and
// records the last decoded request.
func newTestServer(t *testing.T, status int, body string, got *chatRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		if got != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(got))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func completion(content string) string {
	b, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{{"message": map[string]string{"role": "assistant", "content": content}}},
	})
	return string(b)
}

func validRequest() Request {
	return Request{Focus: "weak knees, want stronger legs", Equipment: "bodyweight", Minutes: 30, Language: i18n.EN}
}

func TestGenerate_Success(t *testing.T) {
	var got chatRequest
	srv := newTestServer(t, http.StatusOK, completion("```json\n"+sampleWorkout+"\n```"), &got)
	gen := New(NewChatClient("test-key", WithBaseURL(srv.URL+"/")), testLogger())

	w, err := gen.Generate(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "Knee-Friendly Strength", w.Title)
	assert.Len(t, w.Warmup, 2)
	require.Len(t, w.MainWorkout, 2)
	assert.Equal(t, "Glute Bridge (臀橋)", w.MainWorkout[0].Name)
	assert.Equal(t, 3, w.MainWorkout[0].Sets)
	assert.Equal(t, "1 minute", w.MainWorkout[1].RestTime)

	assert.Equal(t, DefaultModel, got.Model)
	assert.InDelta(t, 0.7, got.Temperature, 1e-9)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Contains(t, got.Messages[1].Content, "weak knees, want stronger legs")
	assert.Contains(t, got.Messages[1].Content, "Time Limit: 30 minutes")
	assert.Contains(t, got.Messages[1].Content, "English name (中文名)")
}

func TestGenerate_ChineseInstruction(t *testing.T) {
	var got chatRequest
	srv := newTestServer(t, http.StatusOK, completion(sampleWorkout), &got)
	gen := New(NewChatClient("test-key", WithBaseURL(srv.URL), WithModel("gpt-4o")), testLogger())

	req := validRequest()
	req.Language = i18n.ZH
	_, err := gen.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o", got.Model)
	assert.Contains(t, got.Messages[1].Content, "繁體中文")
}

func TestGenerate_StatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
		kind   ErrorKind
	}{
		{http.StatusUnauthorized, ErrAuthFailed, KindAuthFailed},
		{http.StatusForbidden, ErrAccessDenied, KindAccessDenied},
		{http.StatusTooManyRequests, ErrRateLimited, KindRateLimited},
		{http.StatusInternalServerError, ErrUpstream, KindUpstream},
		{http.StatusBadGateway, ErrUpstream, KindUpstream},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := newTestServer(t, tt.status, `{"error":{"message":"nope","type":"x"}}`, nil)
			gen := New(NewChatClient("test-key", WithBaseURL(srv.URL)), testLogger())

			_, err := gen.Generate(context.Background(), validRequest())
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), err.Error())
			assert.Equal(t, tt.kind, Kind(err))
			assert.Contains(t, err.Error(), "nope")
		})
	}
}

func TestGenerate_MalformedResponses(t *testing.T) {
	tests := map[string]string{
		"no choices":    `{"choices": []}`,
		"empty content": completion("   "),
		"not json":      completion("Here is your workout: squats!"),
		"missing title": completion(`{"warmup": [], "main_workout": [], "cooldown": []}`),
		"warmup string": completion(`{"title": "x", "warmup": "jog", "main_workout": [], "cooldown": []}`),
		"missing main":  completion(`{"title": "x", "warmup": [], "cooldown": []}`),
		"bad sets type": completion(`{"title": "x", "warmup": [], "main_workout": [{"sets": "three"}], "cooldown": []}`),
		"not json body": `<html>oops</html>`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			srv := newTestServer(t, http.StatusOK, body, nil)
			gen := New(NewChatClient("test-key", WithBaseURL(srv.URL)), testLogger())

			_, err := gen.Generate(context.Background(), validRequest())
			assert.ErrorIs(t, err, ErrMalformedResponse)
			assert.Equal(t, KindMalformedResponse, Kind(err))
		})
	}
}

func TestGenerate_MissingKey(t *testing.T) {
	gen := New(NewChatClient(""), testLogger())

	_, err := gen.Generate(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrMissingConfig)
	assert.Equal(t, "errorMissingKey", Kind(err).MessageKey())
}

func TestGenerate_InvalidInput(t *testing.T) {
	gen := New(NewChatClient("test-key"), testLogger())

	for name, req := range map[string]Request{
		"no focus":     {Equipment: "gym", Minutes: 30},
		"no equipment": {Focus: "run 5K", Minutes: 30},
		"zero minutes": {Focus: "run 5K", Equipment: "gym"},
		"negative":     {Focus: "run 5K", Equipment: "gym", Minutes: -5},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := gen.Generate(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestGenerate_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	gen := New(NewChatClient("test-key", WithBaseURL(srv.URL)), testLogger())

	_, err := gen.Generate(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestExtractJSON(t *testing.T) {
	tests := map[string]string{
		"```json\n{\"a\":1}\n```":          `{"a":1}`,
		"Sure!\n```\n{\"a\":2}\n```\nEnjoy": `{"a":2}`,
		"  {\"a\":3}  ":                     `{"a":3}`,
	}
	for input, want := range tests {
		assert.Equal(t, want, ExtractJSON(input), input)
	}
}

func TestKind(t *testing.T) {
	assert.Equal(t, KindNone, Kind(nil))
	assert.Equal(t, KindUpstream, Kind(errors.New("boom")))
	assert.Equal(t, "errorFailed", KindUpstream.MessageKey())
	assert.Equal(t, "", KindNone.MessageKey())

	wrapped := errors.Join(errors.New("context"), ErrRateLimited)
	assert.Equal(t, KindRateLimited, Kind(wrapped))
}

func TestUserMessage(t *testing.T) {
	msg := userMessage(Request{Focus: "back pain", Equipment: "dumbbells", Minutes: 45, Language: i18n.EN})
	assert.True(t, strings.HasPrefix(msg, "User's description (goal/problem/situation): back pain\n"))
	assert.Contains(t, msg, "Available Equipment: dumbbells")
}
