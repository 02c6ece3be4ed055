package types

import (
	"time"

	"github.com/google/uuid"
)

// SubScores is the per-factor breakdown behind an overall match score.
// Every value is in [0,1].
type SubScores struct {
	Skill        float64 `json:"skill"`
	Location     float64 `json:"location"`
	Availability float64 `json:"availability"`
	Interest     float64 `json:"interest"`
	Experience   float64 `json:"experience"`
	Impact       float64 `json:"impact"`
}

// MatchResult is a single scored opportunity. Reasons holds at most three
// human-readable justifications in rule order.
type MatchResult struct {
	OpportunityID uuid.UUID `json:"opportunity_id"`
	Title         string    `json:"title,omitempty"`
	OverallScore  float64   `json:"overall_score"`
	SubScores     SubScores `json:"sub_scores"`
	Reasons       []string  `json:"reasons"`
}

// RecommendationMetadata describes how a recommendation set was produced.
type RecommendationMetadata struct {
	TotalFound  int                `json:"total_found"`
	MinScore    float64            `json:"min_score"`
	GeneratedAt time.Time          `json:"generated_at"`
	Weights     map[string]float64 `json:"weights"`
}

// RecommendationSet is the wire shape returned by the recommendations
// endpoint and written by the recommend CLI command.
type RecommendationSet struct {
	Recommendations []MatchResult          `json:"recommendations"`
	Metadata        RecommendationMetadata `json:"metadata"`
}

// Feedback actions accepted by the feedback endpoint.
const (
	FeedbackApplied       = "applied"
	FeedbackDismissed     = "dismissed"
	FeedbackInterested    = "interested"
	FeedbackNotInterested = "not_interested"
)

// FeedbackRecord captures a user's reaction to a recommendation. The store
// retains only the most recent records per user.
type FeedbackRecord struct {
	UserID        uuid.UUID `json:"user_id"`
	OpportunityID uuid.UUID `json:"opportunity_id"`
	Action        string    `json:"action" validate:"required,oneof=applied dismissed interested not_interested"`
	Comment       string    `json:"comment,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
