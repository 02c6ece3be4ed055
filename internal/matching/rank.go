package matching

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/impactlab/volunteer-matcher/internal/parsing"
	"github.com/impactlab/volunteer-matcher/internal/types"
)

// ErrInvalidInput marks whole-input contract violations (missing profile).
// Per-record anomalies never produce this: a record with missing fields is
// scored with neutral defaults instead.
var ErrInvalidInput = errors.New("invalid input")

// Defaults applied by callers that take the ranking parameters from
// untrusted input.
const (
	DefaultMinScore = 0.4
	DefaultLimit    = 10
)

// Rank scores every opportunity against the profile, drops results below
// minScore, sorts the remainder by overall score descending (ties keep
// input order) and truncates to limit. An empty input yields an empty
// result, not an error.
func (e *Engine) Rank(profile *types.UserProfile, records []types.OpportunityRecord, minScore float64, limit int) ([]types.MatchResult, error) {
	if profile == nil {
		return nil, fmt.Errorf("%w: profile is required", ErrInvalidInput)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	p := *profile
	p.Normalize()

	results := make([]types.MatchResult, 0, len(records))
	for _, record := range records {
		features := ExtractFeatures(record)
		overall, sub := e.Score(&p, features)
		if overall < minScore {
			continue
		}
		results = append(results, types.MatchResult{
			OpportunityID: record.ID,
			Title:         record.Title,
			OverallScore:  overall,
			SubScores:     sub,
			Reasons:       Reasons(sub, features),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].OverallScore > results[j].OverallScore
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// Compatibility scores a single opportunity with no threshold, for the
// per-project compatibility view.
func (e *Engine) Compatibility(profile *types.UserProfile, record types.OpportunityRecord) (types.MatchResult, error) {
	results, err := e.Rank(profile, []types.OpportunityRecord{record}, 0, 1)
	if err != nil {
		return types.MatchResult{}, err
	}
	return results[0], nil
}

// Diversity band: opportunities neither too similar nor too foreign.
const (
	diversityLow  = 0.3
	diversityHigh = 0.7
	diversityMid  = 0.5
)

// DiversityPicks returns opportunities in the medium-match band, ordered by
// closeness to the band's midpoint, with reasons encouraging the user to
// try something outside their usual profile.
func (e *Engine) DiversityPicks(profile *types.UserProfile, records []types.OpportunityRecord, limit int) ([]types.MatchResult, error) {
	if profile == nil {
		return nil, fmt.Errorf("%w: profile is required", ErrInvalidInput)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	p := *profile
	p.Normalize()

	results := make([]types.MatchResult, 0, len(records))
	for _, record := range records {
		features := ExtractFeatures(record)
		overall, sub := e.Score(&p, features)
		if overall < diversityLow || overall > diversityHigh {
			continue
		}
		results = append(results, types.MatchResult{
			OpportunityID: record.ID,
			Title:         record.Title,
			OverallScore:  overall,
			SubScores:     sub,
			Reasons:       diversityReasons(&p, features),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return math.Abs(diversityMid-results[i].OverallScore) < math.Abs(diversityMid-results[j].OverallScore)
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func diversityReasons(profile *types.UserProfile, features types.OpportunityFeatures) []string {
	var reasons []string

	preferred := false
	for _, area := range profile.PreferredImpactAreas {
		if parsing.NormalizeTag(area) == features.ImpactArea {
			preferred = true
			break
		}
	}
	if !preferred {
		reasons = append(reasons, fmt.Sprintf("Explore %s volunteering", features.ImpactArea))
	}

	if features.ExperienceRequired != types.ExperienceAny && features.ExperienceRequired != profile.ExperienceLevel {
		reasons = append(reasons, "Challenge yourself with a different experience level")
	}

	if !hasSkillOverlap(profile.Skills, features.RequiredSkills) {
		reasons = append(reasons, "Learn new skills while helping")
	}

	if len(reasons) == 0 {
		return []string{"Step outside your comfort zone"}
	}
	if len(reasons) > maxReasons {
		reasons = reasons[:maxReasons]
	}
	return reasons
}

func hasSkillOverlap(userSkills, requiredSkills []string) bool {
	for _, raw := range userSkills {
		skill := parsing.NormalizeTag(raw)
		if skill == "" {
			continue
		}
		for _, req := range requiredSkills {
			if req == "" {
				continue
			}
			if strings.Contains(skill, req) || strings.Contains(req, skill) {
				return true
			}
		}
	}
	return false
}
