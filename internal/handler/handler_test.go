package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/metrics"
	"github.com/vaultpass/passgen-go/internal/middleware"
	"github.com/vaultpass/passgen-go/internal/model"
	"github.com/vaultpass/passgen-go/internal/repository"
	"github.com/vaultpass/passgen-go/internal/service"
)

func newTestRouter(t *testing.T, limiter *middleware.RateLimiter) http.Handler {
	t.Helper()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	gen := service.NewGeneratorService(crypto.NewChaChaSource(1), service.DefaultLimits(), m)
	store := repository.NewSessionStore[*service.Session](16, time.Hour, nil)

	return NewRouter(RouterDeps{
		Generator:   NewGeneratorHandler(gen),
		Sessions:    NewSessionHandler(service.NewSessionService(gen, store, m)),
		RateLimiter: limiter,
		Gatherer:    reg,
	})
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestRouter(t, nil), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestHandleGenerate(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		wantStatus   int
		wantLength   int
		wantAlphabet int
	}{
		{name: "empty body uses defaults", body: "", wantStatus: http.StatusOK, wantLength: 8, wantAlphabet: 52},
		{name: "empty object", body: `{}`, wantStatus: http.StatusOK, wantLength: 8, wantAlphabet: 52},
		{name: "all sets", body: `{"length":12,"numbers":true,"symbols":true}`, wantStatus: http.StatusOK, wantLength: 12, wantAlphabet: 74},
		{name: "single character", body: `{"length":1}`, wantStatus: http.StatusOK, wantLength: 1, wantAlphabet: 52},
		{name: "negative length", body: `{"length":-3}`, wantStatus: http.StatusBadRequest},
		{name: "too long", body: `{"length":5000}`, wantStatus: http.StatusBadRequest},
		{name: "malformed", body: `{"length":`, wantStatus: http.StatusBadRequest},
	}

	h := newTestRouter(t, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/v1/generate", tt.body)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			if tt.wantStatus != http.StatusOK {
				assert.NotEmpty(t, decode[map[string]string](t, rec)["error"])
				return
			}

			resp := decode[model.GenerateResponse](t, rec)
			assert.Len(t, resp.Password, tt.wantLength)
			assert.Equal(t, tt.wantLength, resp.Length)
			assert.Equal(t, tt.wantAlphabet, resp.AlphabetSize)
		})
	}
}

func TestHandleGenerate_BodyTooLarge(t *testing.T) {
	body := `{"length":8,"pad":"` + strings.Repeat("a", maxBodyBytes) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	newTestRouter(t, nil).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestSessionEndpoints(t *testing.T) {
	h := newTestRouter(t, nil)

	rec := do(t, h, http.MethodPost, "/api/v1/sessions", `{"length":10}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[model.SessionResponse](t, rec)
	assert.Len(t, created.Password, 10)
	assert.NotEmpty(t, created.ID)

	rec = do(t, h, http.MethodGet, "/api/v1/sessions/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created.Password, decode[model.SessionResponse](t, rec).Password)

	rec = do(t, h, http.MethodPatch, "/api/v1/sessions/"+created.ID, `{"numbers":true,"length":16}`)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[model.SessionResponse](t, rec)
	assert.True(t, updated.Numbers)
	assert.Len(t, updated.Password, 16)
	assert.Equal(t, 2, updated.Generations)

	rec = do(t, h, http.MethodPatch, "/api/v1/sessions/"+created.ID, `{"length":0}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/v1/sessions/"+created.ID+"/regenerate", "")
	require.Equal(t, http.StatusOK, rec.Code)
	regen := decode[model.SessionResponse](t, rec)
	assert.Equal(t, 3, regen.Generations)
	assert.Equal(t, 16, regen.Length)

	rec = do(t, h, http.MethodDelete, "/api/v1/sessions/"+created.ID, "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/sessions/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessionEndpoints_Errors(t *testing.T) {
	h := newTestRouter(t, nil)

	rec := do(t, h, http.MethodPost, "/api/v1/sessions", `{"length":-1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/sessions/"+strings.Repeat("a", 40), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodDelete, "/api/v1/sessions/unknown", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRateLimitedRoutes(t *testing.T) {
	limiter := middleware.NewRateLimiter(0.001, 2)
	t.Cleanup(limiter.Close)
	h := newTestRouter(t, limiter)

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/v1/generate", "").Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/v1/generate", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, do(t, h, http.MethodPost, "/api/v1/generate", "").Code)

	// Health checks are not limited.
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/health", "").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestRouter(t, nil)
	do(t, h, http.MethodPost, "/api/v1/generate", `{"length":12}`)

	rec := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `passgen_passwords_generated_total{digits="false",symbols="false"} 1`)
}
