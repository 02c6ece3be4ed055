package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/impactlab/volunteer-matcher/internal/types"
)

func TestHandlePutProfile_ThenGet(t *testing.T) {
	s, _ := newTestServer(t)
	identity := types.UserIdentity{ID: uuid.New(), Role: types.RoleVolunteer}

	profile := types.UserProfile{
		Skills:    []string{"design"},
		Location:  "Nairobi, Kenya",
		Interests: []string{"community"},
	}

	req := identityRequest(http.MethodPut, "/v1/profiles/me", jsonBody(t, profile), identity)
	w := httptest.NewRecorder()
	s.handlePutProfile(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var saved types.UserProfile
	require.NoError(t, json.NewDecoder(w.Body).Decode(&saved))
	// Normalized form comes back
	assert.Equal(t, types.ExperienceBeginner, saved.ExperienceLevel)

	req = identityRequest(http.MethodGet, "/v1/profiles/me", nil, identity)
	w = httptest.NewRecorder()
	s.handleGetProfile(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var got types.UserProfile
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, []string{"design"}, got.Skills)
}

func TestHandleGetProfile_NotFound(t *testing.T) {
	s, _ := newTestServer(t)
	identity := types.UserIdentity{ID: uuid.New(), Role: types.RoleVolunteer}

	req := identityRequest(http.MethodGet, "/v1/profiles/me", nil, identity)
	w := httptest.NewRecorder()
	s.handleGetProfile(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandlePutProfile_InvalidExperience(t *testing.T) {
	s, _ := newTestServer(t)
	identity := types.UserIdentity{ID: uuid.New(), Role: types.RoleVolunteer}

	profile := types.UserProfile{ExperienceLevel: "grandmaster"}

	req := identityRequest(http.MethodPut, "/v1/profiles/me", jsonBody(t, profile), identity)
	w := httptest.NewRecorder()
	s.handlePutProfile(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlePutProfile_ProfileIsPerUser(t *testing.T) {
	s, _ := newTestServer(t)
	alice := types.UserIdentity{ID: uuid.New(), Role: types.RoleVolunteer}
	bob := types.UserIdentity{ID: uuid.New(), Role: types.RoleVolunteer}

	req := identityRequest(http.MethodPut, "/v1/profiles/me",
		jsonBody(t, types.UserProfile{Skills: []string{"teaching"}}), alice)
	w := httptest.NewRecorder()
	s.handlePutProfile(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// Bob has no profile yet
	req = identityRequest(http.MethodGet, "/v1/profiles/me", nil, bob)
	w = httptest.NewRecorder()
	s.handleGetProfile(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	_, err := s.store.GetProfile(context.Background(), alice.ID)
	assert.NoError(t, err)
}
