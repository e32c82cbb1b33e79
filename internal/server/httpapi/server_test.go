package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dmitrijs2005/postplanner/internal/logging"
	"github.com/dmitrijs2005/postplanner/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/postplanner/internal/server/services"
)

type fakeLLM struct {
	answer string
	err    error
}

func (f *fakeLLM) GenerateText(context.Context, string, string, int) (string, error) {
	return f.answer, f.err
}

func newTestServer(t *testing.T, llm services.TextGenerator) (*Server, *services.PostcardService) {
	t.Helper()
	ps := services.NewPostcardService(repomanager.NewMemoryManager())
	gen := services.NewGenerationService(ps, llm, logging.Nop())
	return NewServer("127.0.0.1:0", zap.NewNop(), gen, time.Minute, false), ps
}

func post(t *testing.T, s *Server, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, GeneratePhasePath, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return rec, out
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, nil)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, HealthPath, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestGeneratePhase_OK(t *testing.T) {
	answer := `[{"primaryContent":"one","template":"story"},{"primaryContent":"two","template":"tool"}]`
	s, ps := newTestServer(t, &fakeLLM{answer: answer})

	rec, out := post(t, s, `{"title":"Launch","postsPerDay":1,"durationDays":3}`)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.EqualValues(t, 3, out["requested"])
	assert.EqualValues(t, 1, out["failed"])
	assert.Equal(t, "the model returned 2 of 3 posts", out["note"])

	items, ok := out["items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 2)
	first := items[0].(map[string]any)
	assert.Equal(t, "one", first["primaryContent"])
	assert.Equal(t, "draft", first["state"])
	assert.NotEmpty(t, first["id"])
	assert.NotContains(t, first, "scheduledDate")

	stored, err := ps.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestGeneratePhase_Errors(t *testing.T) {
	tests := []struct {
		name       string
		llm        services.TextGenerator
		body       string
		wantStatus int
		wantError  string
	}{
		{
			name:       "malformed body",
			llm:        &fakeLLM{},
			body:       `{"title":`,
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid request body",
		},
		{
			name:       "invalid phase",
			llm:        &fakeLLM{},
			body:       `{"title":"x","postsPerDay":0,"durationDays":1}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "not configured",
			llm:        nil,
			body:       `{"title":"x","postsPerDay":1,"durationDays":1}`,
			wantStatus: http.StatusServiceUnavailable,
			wantError:  "generation is not available",
		},
		{
			name:       "provider failure",
			llm:        &fakeLLM{err: errors.New("quota exceeded")},
			body:       `{"title":"x","postsPerDay":1,"durationDays":1}`,
			wantStatus: http.StatusBadGateway,
			wantError:  "AI provider failed",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestServer(t, tt.llm)
			rec, out := post(t, s, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			require.Contains(t, out, "error")
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, out["error"])
			}
		})
	}
}

func TestGeneratePhase_ProviderDetails(t *testing.T) {
	s, _ := newTestServer(t, &fakeLLM{err: errors.New("quota exceeded")})

	_, out := post(t, s, `{"title":"x","postsPerDay":1,"durationDays":1}`)
	assert.Equal(t, "quota exceeded", out["details"])
}

func TestCORS_Preflight(t *testing.T) {
	s, _ := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodOptions, GeneratePhasePath, nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	s, _ := newTestServer(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	ps := services.NewPostcardService(repomanager.NewMemoryManager())
	s := NewServer("127.0.0.1:99999", zap.NewNop(), services.NewGenerationService(ps, nil, logging.Nop()), 0, false)

	assert.Error(t, s.Run(context.Background()))
}
