package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/api/middleware"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const demoScore = `{
  "name": "demo",
  "settings": {"tempo": 120},
  "patterns": {"lead": {"notes": ["C4:q", "D4:q", "E4:q", "F4:q"]}},
  "sections": {"main": {"bars": 1, "tracks": {"piano": {"pattern": "lead"}}}},
  "arrangement": ["main"]
}`

// setupTestRouter wires the handlers without auth or storage backends
func setupTestRouter(maxBytes int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(gin.Recovery())

	svc := services.NewCompileService(nil, services.NewHistoryService(nil), nil, nil)
	router.GET("/health", NewHealthHandler(nil, nil).HealthCheck)
	router.GET("/api/metrics", NewMetricsHandler("test", svc).GetMetrics)

	v1 := router.Group("/api/v1", middleware.NoAuth(), middleware.BodyLimit(maxBytes))
	h := NewCompileHandler(svc)
	v1.POST("/compile", h.Compile)
	v1.POST("/validate", h.Validate)
	v1.POST("/analyze", h.Analyze)
	v1.POST("/script/compile", h.CompileScript)
	v1.GET("/compilations", h.History)
	v1.GET("/compilations/:hash", h.Compilation)
	v1.DELETE("/compilations/:hash/cache", h.InvalidateCache)
	return router
}

func do(t *testing.T, router *gin.Engine, method, path, contentType, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	}
	return w, resp
}

func TestCompileEndpoint(t *testing.T) {
	router := setupTestRouter(1 << 20)

	w, resp := do(t, router, http.MethodPost, "/api/v1/compile", "application/json", `{"score": `+demoScore+`}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, cacheMiss, w.Header().Get(cacheHeader))

	stats := resp["stats"].(map[string]any)
	assert.Equal(t, float64(4), stats["notes"])
	assert.Equal(t, false, resp["cached"])
	assert.Len(t, resp["hash"], 64)

	tl := resp["timeline"].(map[string]any)
	assert.InDelta(t, 2.0, tl["totalSeconds"], 1e-9)
}

func TestCompileEndpointYAML(t *testing.T) {
	router := setupTestRouter(1 << 20)
	body := `score:
  settings: {tempo: 60}
  patterns:
    lead: {notes: ["C4:h", "G4:h"]}
  sections:
    main:
      bars: 1
      tracks:
        piano: {pattern: lead}
  arrangement: [main]
`
	w, resp := do(t, router, http.MethodPost, "/api/v1/compile", "application/x-yaml", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	tl := resp["timeline"].(map[string]any)
	assert.InDelta(t, 4.0, tl["totalSeconds"], 1e-9)
}

func TestCompileEndpointErrors(t *testing.T) {
	router := setupTestRouter(1 << 20)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantKind   string
	}{
		{
			name:       "invalid json",
			body:       `{"score": `,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed notation",
			body:       `{"score": {"patterns": {"p": {"notes": ["H9:q"]}}, "sections": {"s": {"bars": 1, "tracks": {"x": {"pattern": "p"}}}}, "arrangement": ["s"]}}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantKind:   "malformed_notation",
		},
		{
			name:       "unknown start section",
			body:       `{"score": ` + demoScore + `, "startSection": "bridge"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantKind:   "missing_reference",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := do(t, router, http.MethodPost, "/api/v1/compile", "application/json", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			assert.NotEmpty(t, resp["error"])
			if tt.wantKind != "" {
				assert.Equal(t, tt.wantKind, resp["kind"])
			}
		})
	}
}

func TestBodyLimit(t *testing.T) {
	router := setupTestRouter(64)
	w, _ := do(t, router, http.MethodPost, "/api/v1/compile", "application/json", `{"score": `+demoScore+`}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestValidateEndpoint(t *testing.T) {
	router := setupTestRouter(1 << 20)

	w, resp := do(t, router, http.MethodPost, "/api/v1/validate", "application/json", demoScore)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["valid"])
	assert.Empty(t, resp["problems"])

	broken := strings.Replace(demoScore, `"arrangement": ["main"]`, `"arrangement": ["main", "outro"]`, 1)
	w, resp = do(t, router, http.MethodPost, "/api/v1/validate", "application/json", broken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, resp["valid"])
	assert.Len(t, resp["problems"], 1)
}

func TestAnalyzeEndpoint(t *testing.T) {
	router := setupTestRouter(1 << 20)
	w, resp := do(t, router, http.MethodPost, "/api/v1/analyze", "application/json", demoScore)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), resp["bars"])
	assert.InDelta(t, 2.0, resp["estimatedSeconds"], 1e-9)
	assert.Equal(t, []any{"piano"}, resp["instruments"])
}

func TestCompileScriptEndpoint(t *testing.T) {
	router := setupTestRouter(1 << 20)

	payload, err := json.Marshal(ScriptRequest{
		Script: `pattern(name=lead, notes="C4:q D4:q E4:q F4:q"); section(name=main, bars=1); track(section=main, instrument=piano, pattern=lead)`,
		Tempo:  60,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/script/compile", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out struct {
		Stats struct {
			Notes           int     `json:"notes"`
			DurationSeconds float64 `json:"durationSeconds"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, 4, out.Stats.Notes)
	assert.InDelta(t, 4.0, out.Stats.DurationSeconds, 1e-9)

	w, resp := do(t, router, http.MethodPost, "/api/v1/script/compile", "application/json", `{"script": "track(section=nope, instrument=x, pattern=y)"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "script", resp["kind"])
}

func TestHistoryWithoutDatabase(t *testing.T) {
	router := setupTestRouter(1 << 20)
	w, _ := do(t, router, http.MethodGet, "/api/v1/compilations", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w, _ = do(t, router, http.MethodGet, "/api/v1/compilations/abc", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestInvalidateCacheWithoutRedis(t *testing.T) {
	router := setupTestRouter(1 << 20)
	w, resp := do(t, router, http.MethodDelete, "/api/v1/compilations/abc/cache", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, resp["error"], "cache")
}

func TestHealthAndMetrics(t *testing.T) {
	router := setupTestRouter(1 << 20)

	w, resp := do(t, router, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, "disabled", resp["database"])
	assert.Equal(t, "disabled", resp["cache"])

	w, resp = do(t, router, http.MethodGet, "/api/metrics", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "test", resp["version"])
	compiler := resp["compiler"].(map[string]any)
	assert.Equal(t, false, compiler["history_enabled"])
	assert.NotEmpty(t, compiler["scales"])
	assert.NotEmpty(t, compiler["grooves"])
}

func TestFormatUptime(t *testing.T) {
	assert.Equal(t, "5.00s", formatUptime(5e9))
	assert.Equal(t, "2m3.00s", formatUptime(123e9))
	assert.Equal(t, "1h1m1.00s", formatUptime(3661e9))
}
