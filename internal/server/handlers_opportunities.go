package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/impactlab/volunteer-matcher/internal/server/middleware"
	"github.com/impactlab/volunteer-matcher/internal/types"
)

// handleListOpportunities returns all stored listings.
func (s *Server) handleListOpportunities(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.ListOpportunities(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to list opportunities")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"opportunities": records,
		"count":         len(records),
	})
}

// handleGetOpportunity returns a single listing by ID.
func (s *Server) handleGetOpportunity(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid opportunity ID")
		return
	}

	record, err := s.store.GetOpportunity(r.Context(), id)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, record)
}

// handleCreateOpportunity stores a new listing. Only organizers may post.
func (s *Server) handleCreateOpportunity(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.GetIdentity(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if identity.Role != types.RoleOrganizer {
		s.errorResponse(w, http.StatusForbidden, "only organizers can create opportunities")
		return
	}

	var record types.OpportunityRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := record.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}
	if record.Status == "" {
		record.Status = "active"
	}

	if err := s.store.CreateOpportunity(r.Context(), &record); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to create opportunity")
		return
	}

	s.jsonResponse(w, http.StatusCreated, record)
}

// handleUpdateOpportunity replaces an existing listing.
func (s *Server) handleUpdateOpportunity(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.GetIdentity(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if identity.Role != types.RoleOrganizer {
		s.errorResponse(w, http.StatusForbidden, "only organizers can update opportunities")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid opportunity ID")
		return
	}

	var record types.OpportunityRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	record.ID = id

	if err := record.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	if err := s.store.UpdateOpportunity(r.Context(), &record); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, record)
}

// handleDeleteOpportunity removes a listing.
func (s *Server) handleDeleteOpportunity(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.GetIdentity(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if identity.Role != types.RoleOrganizer {
		s.errorResponse(w, http.StatusForbidden, "only organizers can delete opportunities")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid opportunity ID")
		return
	}

	if err := s.store.DeleteOpportunity(r.Context(), id); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
