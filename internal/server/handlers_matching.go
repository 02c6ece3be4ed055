package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/impactlab/volunteer-matcher/internal/matching"
	"github.com/impactlab/volunteer-matcher/internal/server/middleware"
	"github.com/impactlab/volunteer-matcher/internal/store"
	"github.com/impactlab/volunteer-matcher/internal/types"
)

// Qualitative labels attached to compatibility responses.
const (
	labelHighlyRecommended = "Highly Recommended"
	labelGoodMatch         = "Good Match"
	labelModerateMatch     = "Moderate Match"
	labelPoorMatch         = "Poor Match"
)

// recommendationLabel maps an overall score to its qualitative label.
func recommendationLabel(score float64) string {
	switch {
	case score >= 0.7:
		return labelHighlyRecommended
	case score >= 0.5:
		return labelGoodMatch
	case score >= 0.3:
		return labelModerateMatch
	default:
		return labelPoorMatch
	}
}

// handleRecommendations returns ranked opportunities for the caller.
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.GetIdentity(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	minScore := s.minScore
	if raw := r.URL.Query().Get("min_score"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 || parsed > 1 {
			s.errorResponse(w, http.StatusBadRequest, "min_score must be a number between 0 and 1")
			return
		}
		minScore = parsed
	}

	limit := s.limit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			s.errorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	profile, err := s.store.GetProfile(r.Context(), identity.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.errorResponse(w, http.StatusNotFound, "profile not found; create one via PUT /v1/profiles/me")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	records, err := s.store.ListOpportunities(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to load opportunities")
		return
	}

	engine := s.currentEngine()
	results, err := engine.Rank(profile, records, minScore, limit)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, types.RecommendationSet{
		Recommendations: results,
		Metadata: types.RecommendationMetadata{
			TotalFound:  len(results),
			MinScore:    minScore,
			GeneratedAt: time.Now().UTC(),
			Weights:     engine.Weights().Map(),
		},
	})
}

// handleCompatibility scores a single opportunity against the caller's profile.
func (s *Server) handleCompatibility(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.GetIdentity(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid opportunity ID")
		return
	}

	profile, err := s.store.GetProfile(r.Context(), identity.ID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	record, err := s.store.GetOpportunity(r.Context(), id)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	result, err := s.currentEngine().Compatibility(profile, *record)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"compatibility":  result,
		"recommendation": recommendationLabel(result.OverallScore),
	})
}

// handleDiversity returns mid-band picks outside the caller's usual areas.
func (s *Server) handleDiversity(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.GetIdentity(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	limit := 3
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			s.errorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	profile, err := s.store.GetProfile(r.Context(), identity.ID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	records, err := s.store.ListOpportunities(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to load opportunities")
		return
	}

	picks, err := s.currentEngine().DiversityPicks(profile, records, limit)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"picks": picks})
}

// feedbackRequest is the request body for POST /v1/matching/feedback.
type feedbackRequest struct {
	OpportunityID uuid.UUID `json:"opportunity_id"`
	Action        string    `json:"action"`
	Comment       string    `json:"comment,omitempty"`
}

// handleFeedback records the caller's reaction to a recommendation.
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.GetIdentity(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	record := types.FeedbackRecord{
		UserID:        identity.ID,
		OpportunityID: req.OpportunityID,
		Action:        req.Action,
		Comment:       req.Comment,
	}
	if err := record.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "action must be one of: applied, dismissed, interested, not_interested")
		return
	}

	// The referenced opportunity must exist.
	opportunity, err := s.store.GetOpportunity(r.Context(), req.OpportunityID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	if err := s.store.AddFeedback(r.Context(), record); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to record feedback")
		return
	}

	// Positive feedback nudges the weight vector toward the factors that
	// made this match score well. Callers without a profile skip this.
	if req.Action == types.FeedbackApplied || req.Action == types.FeedbackInterested {
		if profile, err := s.store.GetProfile(r.Context(), identity.ID); err == nil {
			_, sub := s.currentEngine().Score(profile, matching.ExtractFeatures(*opportunity))
			s.reinforceEngine(sub)
		}
	}

	s.jsonResponse(w, http.StatusCreated, map[string]string{"message": "feedback recorded"})
}

// handleStats returns aggregate matching statistics for the caller. All
// figures are computed from stored data.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.GetIdentity(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	records, err := s.store.ListOpportunities(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to load opportunities")
		return
	}

	feedback, err := s.store.ListFeedback(r.Context(), identity.ID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to load feedback")
		return
	}

	byAction := map[string]int{}
	for _, f := range feedback {
		byAction[f.Action]++
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"opportunities_available": len(records),
		"feedback_total":          len(feedback),
		"feedback_by_action":      byAction,
		"weights":                 s.currentEngine().Weights().Map(),
	})
}
