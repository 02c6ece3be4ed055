// Package types provides type definitions for structured data used throughout the volunteer-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Experience levels a volunteer can declare.
const (
	ExperienceBeginner     = "beginner"
	ExperienceIntermediate = "intermediate"
	ExperienceAdvanced     = "advanced"
)

// MatchingPreferences holds optional per-user overrides for the matching engine.
type MatchingPreferences struct {
	MaxDistanceKm     int    `json:"max_distance_km,omitempty"`
	UrgencyPreference string `json:"urgency_preference,omitempty"` // low, medium, high
}

// UserProfile is the caller-owned view of a volunteer used for matching.
// The engine only reads it; Normalize guarantees all collection fields are
// non-nil so sub-score functions can assume presence.
type UserProfile struct {
	Skills               []string            `json:"skills"`
	Location             string              `json:"location,omitempty"`
	Interests            []string            `json:"interests"`
	PreferredImpactAreas []string            `json:"preferred_impact_areas"`
	Availability         []string            `json:"availability"` // qualitative tags: weekends, flexible, ...
	HoursPerWeek         int                 `json:"hours_per_week,omitempty"`
	ExperienceLevel      string              `json:"experience_level,omitempty" validate:"omitempty,oneof=beginner intermediate advanced"`
	Preferences          MatchingPreferences `json:"matching_preferences,omitempty"`
}

// Normalize replaces nil collections with empty slices and defaults the
// experience level to beginner when unset.
func (p *UserProfile) Normalize() {
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Interests == nil {
		p.Interests = []string{}
	}
	if p.PreferredImpactAreas == nil {
		p.PreferredImpactAreas = []string{}
	}
	if p.Availability == nil {
		p.Availability = []string{}
	}
	if p.ExperienceLevel == "" {
		p.ExperienceLevel = ExperienceBeginner
	}
}
