package server

import (
	"encoding/json"
	"net/http"

	"github.com/impactlab/volunteer-matcher/internal/server/middleware"
	"github.com/impactlab/volunteer-matcher/internal/types"
)

// handleGetProfile returns the caller's matching profile.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.GetIdentity(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	profile, err := s.store.GetProfile(r.Context(), identity.ID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, profile)
}

// handlePutProfile creates or replaces the caller's matching profile.
func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.GetIdentity(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var profile types.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := profile.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	if err := s.store.PutProfile(r.Context(), identity.ID, &profile); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to save profile")
		return
	}

	// Echo the normalized form back
	saved, err := s.store.GetProfile(r.Context(), identity.ID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to load saved profile")
		return
	}

	s.jsonResponse(w, http.StatusOK, saved)
}
