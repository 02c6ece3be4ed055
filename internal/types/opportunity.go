package types

import (
	"time"

	"github.com/google/uuid"
)

// OpportunityLocation is the structured location of a listing. All fields are
// optional; Remote short-circuits location scoring.
type OpportunityLocation struct {
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
	Remote  bool   `json:"remote,omitempty"`
}

// String returns a single free-text form ("City, Country") for display and
// for feature extraction when only unstructured matching is possible.
func (l OpportunityLocation) String() string {
	switch {
	case l.City != "" && l.Country != "":
		return l.City + ", " + l.Country
	case l.City != "":
		return l.City
	default:
		return l.Country
	}
}

// OpportunityRecord is a raw volunteering listing as stored. Structured
// fields are optional; the extractor infers what is missing from the free
// text, so a record with only a title and description still scores.
type OpportunityRecord struct {
	ID             uuid.UUID           `json:"id"`
	Title          string              `json:"title" validate:"required,min=1"`
	Description    string              `json:"description,omitempty"`
	Category       string              `json:"category,omitempty"`
	Location       OpportunityLocation `json:"location,omitempty"`
	RequiredSkills []string            `json:"required_skills,omitempty"`
	TimeCommitment string              `json:"time_commitment,omitempty"` // e.g. "5 hours/week"
	Tags           []string            `json:"tags,omitempty"`
	Status         string              `json:"status,omitempty"` // active, urgent, closed
	IsUrgent       bool                `json:"is_urgent,omitempty"`
	CreatedAt      time.Time           `json:"created_at,omitempty"`
	UpdatedAt      time.Time           `json:"updated_at,omitempty"`
}

// Classification values produced by feature extraction.
const (
	CommitmentLow    = "low"
	CommitmentMedium = "medium"
	CommitmentHigh   = "high"

	UrgencyLow    = "low"
	UrgencyMedium = "medium"
	UrgencyHigh   = "high"

	ExperienceAny = "any"

	TeamIndividual = "individual"
	TeamSmall      = "small"
	TeamMedium     = "medium"
	TeamLarge      = "large"
)

// OpportunityFeatures is the normalized view of a record used for scoring.
// It is derived fresh on every scoring pass and never persisted; its only
// identity is the source record's ID.
type OpportunityFeatures struct {
	OpportunityID      uuid.UUID           `json:"opportunity_id"`
	RequiredSkills     []string            `json:"required_skills"`
	ImpactArea         string              `json:"impact_area"`
	Location           OpportunityLocation `json:"location"`
	TimeCommitment     string              `json:"time_commitment"`      // low, medium, high
	Urgency            string              `json:"urgency"`              // low, medium, high
	ExperienceRequired string              `json:"experience_required"`  // beginner, intermediate, advanced, any
	TeamSize           string              `json:"team_size"`            // individual, small, medium, large
}
