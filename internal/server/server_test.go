package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/impactlab/volunteer-matcher/internal/config"
	"github.com/impactlab/volunteer-matcher/internal/matching"
	"github.com/impactlab/volunteer-matcher/internal/store"
	"github.com/impactlab/volunteer-matcher/internal/types"
)

// newTestServer builds a server on an in-memory store, bypassing env-based
// config so tests need no environment setup.
func newTestServer(t *testing.T) (*Server, *store.MemoryStore) {
	t.Helper()

	mem := store.NewMemoryStore()
	jwtService := newTestJWTService(24)
	userService := NewUserService(mem, &config.PasswordConfig{BcryptCost: 10})

	s := &Server{
		store:       mem,
		engine:      matching.NewDefaultEngine(),
		minScore:    matching.DefaultMinScore,
		limit:       matching.DefaultLimit,
		jwtService:  jwtService,
		userService: userService,
		authHandler: NewAuthHandler(userService, jwtService),
	}
	return s, mem
}

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	payload, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(payload)
}

func TestHandleHealth(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.handleHealth(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestRoutes_AuthRequired(t *testing.T) {
	s, _ := newTestServer(t)
	mux := s.routes()

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/v1/matching/recommendations"},
		{http.MethodGet, "/v1/matching/diversity"},
		{http.MethodGet, "/v1/matching/stats"},
		{http.MethodPost, "/v1/matching/feedback"},
		{http.MethodGet, "/v1/profiles/me"},
		{http.MethodPut, "/v1/profiles/me"},
		{http.MethodPost, "/v1/opportunities"},
	}

	for _, route := range protected {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			req := httptest.NewRequest(route.method, route.path, nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestRoutes_PublicReads(t *testing.T) {
	s, mem := newTestServer(t)
	require.NoError(t, mem.SeedDemo(context.Background(), 0, 1))
	mux := s.routes()

	req := httptest.NewRequest(http.MethodGet, "/v1/opportunities", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, 2, body.Count)
}

func TestRoutes_TokenFlow(t *testing.T) {
	s, mem := newTestServer(t)
	require.NoError(t, mem.SeedDemo(context.Background(), 0, 1))
	mux := s.routes()

	// Register
	w := postJSON(t, s.authHandler.Register, "/v1/auth/register", types.CreateUserRequest{
		Name:     "Lena",
		Email:    "lena@example.org",
		Password: "strong-password",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var login types.LoginResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&login))

	// Store a profile with the issued token
	req := httptest.NewRequest(http.MethodPut, "/v1/profiles/me",
		jsonBody(t, types.UserProfile{Skills: []string{"teaching"}, Location: "Kuala Lumpur, Malaysia"}))
	req.Header.Set("Authorization", "Bearer "+login.Token)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// Recommendations now work for the same token
	req = httptest.NewRequest(http.MethodGet, "/v1/matching/recommendations", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var recs types.RecommendationSet
	require.NoError(t, json.NewDecoder(w.Body).Decode(&recs))
	assert.Equal(t, len(recs.Recommendations), recs.Metadata.TotalFound)
}

func TestBuildEngine_Overrides(t *testing.T) {
	engine, err := buildEngine(map[string]float64{"skills": 0.35, "location": 0.15})
	require.NoError(t, err)
	assert.Equal(t, 0.35, engine.Weights().Skills)
	assert.Equal(t, 0.15, engine.Weights().Location)
}

func TestBuildEngine_UnknownFactor(t *testing.T) {
	_, err := buildEngine(map[string]float64{"charisma": 0.2})
	assert.Error(t, err)
}

func TestBuildEngine_InvalidSum(t *testing.T) {
	_, err := buildEngine(map[string]float64{"skills": 0.9})
	assert.Error(t, err)
}

func TestExtractClientID(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "203.0.113.7:54321"
	assert.Equal(t, "203.0.113.7", s.extractClientID(req))

	req.RemoteAddr = "no-port-here"
	assert.Equal(t, "no-port-here", s.extractClientID(req))
}
