package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/time/rate"

	"github.com/nvandermeer/suburbfall/internal/config"
	"github.com/nvandermeer/suburbfall/internal/notify"
	"github.com/nvandermeer/suburbfall/internal/resources"
	"github.com/nvandermeer/suburbfall/internal/sim"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.Default()
	cfg.Seed = 9
	return &Server{
		World:    sim.NewWorld(cfg, notify.NewBus()),
		AdminKey: "test-key",
	}
}

func TestStatusEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.handleStatus(rec, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Suburbfall", body["name"])
	assert.EqualValues(t, 1, body["day"])
	assert.EqualValues(t, 3, body["survivors"])
}

func TestResourcesEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.handleResources(rec, httptest.NewRequest(http.MethodGet, "/api/v1/resources", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Stock map[string]int `json:"stock"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 50, body.Stock[resources.Nuggets])
}

func TestAdminAuthRequired(t *testing.T) {
	s := newTestServer(t)
	handler := s.adminOnly(s.handleSpeed)

	// POST without a token is rejected.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/speed",
		bytes.NewBufferString(`{"scale": 2}`))
	rec := httptest.NewRecorder()
	handler(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// With the bearer token it goes through.
	req = httptest.NewRequest(http.MethodPost, "/api/v1/speed",
		bytes.NewBufferString(`{"scale": 2}`))
	req.Header.Set("Authorization", "Bearer test-key")
	rec = httptest.NewRecorder()
	handler(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.InDelta(t, 2, s.World.Clock.Scale(), 0.001)

	// GET passes through without auth.
	rec = httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/v1/speed", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBuildEndpoint(t *testing.T) {
	s := newTestServer(t)

	// conspiracy_board starts unlocked; top up fabric past its cost.
	s.World.Ledger.Add(resources.Fabric, 10)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/build",
		bytes.NewBufferString(`{"recipe_id": "conspiracy_board", "x": 300, "y": 200}`))
	rec := httptest.NewRecorder()
	s.handleBuild(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["building_id"])
	assert.Len(t, s.World.Yard.Buildings(), 1)
}

func TestBuildEndpointRejectsLockedRecipe(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/build",
		bytes.NewBufferString(`{"recipe_id": "pool_moat", "x": 300, "y": 200}`))
	rec := httptest.NewRecorder()
	s.handleBuild(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestModeEndpoint(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/mode",
		bytes.NewBufferString(`{"defense": true}`))
	rec := httptest.NewRecorder()
	s.handleMode(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, s.World.Shared.DefenseMode())
	assert.False(t, s.World.Shared.BuildMode())
}

func TestSurvivorDetailNotFound(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.handleSurvivorDetail(rec,
		httptest.NewRequest(http.MethodGet, "/api/v1/survivor/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRateLimiter(t *testing.T) {
	l := NewPerIPLimiter(rate.Limit(1), 2)

	assert.True(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"), "burst of 2 exhausted")
	assert.True(t, l.Allow("10.0.0.2"), "separate bucket per IP")
}

func TestClientIPParsing(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.168.1.5:4321"
	assert.Equal(t, "192.168.1.5", clientIP(r))

	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", clientIP(r))
}
