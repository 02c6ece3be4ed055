package matching

import (
	"fmt"
	"math"
	"strings"

	"github.com/impactlab/volunteer-matcher/internal/parsing"
	"github.com/impactlab/volunteer-matcher/internal/types"
)

// Neutral defaults returned when one side of a comparison is missing.
// These are the documented partial-data behavior, not errors.
const (
	neutralSkillScore        = 0.5
	neutralLocationScore     = 0.3
	neutralAvailabilityScore = 0.6
	neutralInterestScore     = 0.5
	neutralExperienceScore   = 0.6
	neutralImpactScore       = 0.6
)

// weightSumTolerance bounds floating point drift when validating that a
// weight vector is a convex combination.
const weightSumTolerance = 1e-9

// Weights is the factor weighting used to combine sub-scores. A valid
// vector sums to 1.0.
type Weights struct {
	Skills       float64 `json:"skills"`
	Location     float64 `json:"location"`
	Availability float64 `json:"availability"`
	Interests    float64 `json:"interests"`
	Experience   float64 `json:"experience"`
	Impact       float64 `json:"impact"`
}

// DefaultWeights returns the canonical six-factor weight vector.
func DefaultWeights() Weights {
	return Weights{
		Skills:       0.30,
		Location:     0.20,
		Availability: 0.15,
		Interests:    0.15,
		Experience:   0.10,
		Impact:       0.10,
	}
}

// WeightsWithOverrides applies per-factor overrides on top of the defaults.
// Unknown factor names are rejected; the result is not validated here so
// callers can surface the sum error from NewEngine.
func WeightsWithOverrides(overrides map[string]float64) (Weights, error) {
	weights := DefaultWeights()
	for factor, value := range overrides {
		switch factor {
		case "skills":
			weights.Skills = value
		case "location":
			weights.Location = value
		case "availability":
			weights.Availability = value
		case "interests":
			weights.Interests = value
		case "experience":
			weights.Experience = value
		case "impact":
			weights.Impact = value
		default:
			return Weights{}, fmt.Errorf("unknown weight factor: %s", factor)
		}
	}
	return weights, nil
}

// Sum returns the total of all factor weights.
func (w Weights) Sum() float64 {
	return w.Skills + w.Location + w.Availability + w.Interests + w.Experience + w.Impact
}

// Validate checks that every weight is non-negative and the vector sums to 1.0.
func (w Weights) Validate() error {
	for name, v := range w.Map() {
		if v < 0 {
			return fmt.Errorf("weight %q is negative: %v", name, v)
		}
	}
	if math.Abs(w.Sum()-1.0) > weightSumTolerance {
		return fmt.Errorf("weights must sum to 1.0, got %v", w.Sum())
	}
	return nil
}

// Map returns the weights keyed by factor name, the shape used in response
// metadata.
func (w Weights) Map() map[string]float64 {
	return map[string]float64{
		"skills":       w.Skills,
		"location":     w.Location,
		"availability": w.Availability,
		"interests":    w.Interests,
		"experience":   w.Experience,
		"impact":       w.Impact,
	}
}

// Reinforcement caps and step, per factor. A factor is only nudged upward
// when it clearly contributed to an accepted match.
const (
	reinforceStep      = 0.01
	reinforceThreshold = 0.8
	maxSkillsWeight    = 0.5
	maxLocationWeight  = 0.4
	maxInterestsWeight = 0.3
)

// Reinforce returns a new weight vector nudged toward the factors that
// scored at or above the reinforcement threshold in an accepted match. The
// result is re-normalized so it remains a convex combination; the receiver
// is not modified.
func (w Weights) Reinforce(sub types.SubScores) Weights {
	next := w
	if sub.Skill >= reinforceThreshold {
		next.Skills = math.Min(next.Skills+reinforceStep, maxSkillsWeight)
	}
	if sub.Location >= reinforceThreshold {
		next.Location = math.Min(next.Location+reinforceStep, maxLocationWeight)
	}
	if sub.Interest >= reinforceThreshold {
		next.Interests = math.Min(next.Interests+reinforceStep, maxInterestsWeight)
	}
	if next == w {
		return w
	}

	total := next.Sum()
	if total <= 0 {
		return DefaultWeights()
	}
	next.Skills /= total
	next.Location /= total
	next.Availability /= total
	next.Interests /= total
	next.Experience /= total
	next.Impact /= total
	return next
}

// Engine computes match scores for (profile, opportunity) pairs. It holds
// only configuration and is safe for concurrent use.
type Engine struct {
	weights Weights
}

// NewEngine creates an engine with the given weight vector. The weights are
// validated once here so scoring never has to.
func NewEngine(w Weights) (*Engine, error) {
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("invalid weight configuration: %w", err)
	}
	return &Engine{weights: w}, nil
}

// NewDefaultEngine creates an engine with the canonical weight vector.
func NewDefaultEngine() *Engine {
	return &Engine{weights: DefaultWeights()}
}

// Weights returns the engine's weight vector.
func (e *Engine) Weights() Weights {
	return e.weights
}

// Score computes the six sub-scores for a profile/features pair and combines
// them into an overall score in [0,1]. It is pure and never fails: missing
// inputs yield the neutral defaults instead.
func (e *Engine) Score(profile *types.UserProfile, features types.OpportunityFeatures) (float64, types.SubScores) {
	sub := types.SubScores{
		Skill:        skillScore(profile.Skills, features.RequiredSkills),
		Location:     locationScore(profile.Location, features.Location),
		Availability: availabilityScore(profile.Availability, features.TimeCommitment),
		Interest:     interestScore(profile.Interests, features.ImpactArea),
		Experience:   experienceScore(profile.ExperienceLevel, features.ExperienceRequired),
		Impact:       impactScore(profile.PreferredImpactAreas, features.ImpactArea),
	}

	overall := sub.Skill*e.weights.Skills +
		sub.Location*e.weights.Location +
		sub.Availability*e.weights.Availability +
		sub.Interest*e.weights.Interests +
		sub.Experience*e.weights.Experience +
		sub.Impact*e.weights.Impact

	return clamp01(overall), sub
}

// skillScore is the fraction of required skills the user covers, with
// substring tolerance in both directions.
func skillScore(userSkills, requiredSkills []string) float64 {
	if len(requiredSkills) == 0 || len(userSkills) == 0 {
		return neutralSkillScore
	}

	matched := 0
	for _, raw := range userSkills {
		skill := parsing.NormalizeTag(raw)
		if skill == "" {
			continue
		}
		for _, req := range requiredSkills {
			required := parsing.NormalizeTag(req)
			if required == "" {
				continue
			}
			if strings.Contains(skill, required) || strings.Contains(required, skill) {
				matched++
				break
			}
		}
	}

	return clamp01(float64(matched) / float64(len(requiredSkills)))
}

func locationScore(userLocation string, loc types.OpportunityLocation) float64 {
	if loc.Remote {
		return 1.0
	}

	user := strings.ToLower(strings.TrimSpace(userLocation))
	opp := strings.ToLower(loc.String())
	if user == "" || opp == "" {
		return neutralLocationScore
	}

	city := strings.ToLower(loc.City)
	if user == opp || (city != "" && user == city) {
		return 1.0
	}
	if strings.Contains(user, opp) || strings.Contains(opp, user) {
		return 0.7
	}
	if country := strings.ToLower(loc.Country); country != "" && strings.Contains(user, country) {
		return 0.7
	}

	return 0.2
}

// availabilityScore compares the user's qualitative availability tags
// against the opportunity's time-commitment class. Each class has tags that
// satisfy it fully and a floor when none are present.
func availabilityScore(availability []string, commitment string) float64 {
	if len(availability) == 0 {
		return neutralAvailabilityScore
	}

	has := func(tags ...string) bool {
		for _, a := range availability {
			normalized := parsing.NormalizeTag(a)
			for _, tag := range tags {
				if normalized == tag {
					return true
				}
			}
		}
		return false
	}

	switch commitment {
	case types.CommitmentHigh:
		if has("full-time", "weekdays") {
			return 1.0
		}
		return 0.3
	case types.CommitmentMedium:
		if has("part-time", "weekends") {
			return 1.0
		}
		return 0.7
	case types.CommitmentLow:
		if has("flexible", "evenings") {
			return 1.0
		}
		return 0.8
	default:
		return neutralAvailabilityScore
	}
}

func interestScore(interests []string, impactArea string) float64 {
	if len(interests) == 0 {
		return neutralInterestScore
	}

	area := strings.ToLower(impactArea)
	for _, raw := range interests {
		if parsing.NormalizeTag(raw) == area {
			return 1.0
		}
	}
	for _, raw := range interests {
		interest := parsing.NormalizeTag(raw)
		if interest == "" {
			continue
		}
		if strings.Contains(area, interest) || strings.Contains(interest, area) {
			return 0.7
		}
	}

	return 0.3
}

// experienceMatrix is keyed by (user level, required level). A requirement
// of "any" always scores 1.0; unknown pairs fall back to the neutral value.
var experienceMatrix = map[string]map[string]float64{
	types.ExperienceBeginner: {
		types.ExperienceBeginner:     1.0,
		types.ExperienceIntermediate: 0.7,
		types.ExperienceAdvanced:     0.3,
		types.ExperienceAny:          1.0,
	},
	types.ExperienceIntermediate: {
		types.ExperienceBeginner:     1.0,
		types.ExperienceIntermediate: 1.0,
		types.ExperienceAdvanced:     0.8,
		types.ExperienceAny:          1.0,
	},
	types.ExperienceAdvanced: {
		types.ExperienceBeginner:     1.0,
		types.ExperienceIntermediate: 1.0,
		types.ExperienceAdvanced:     1.0,
		types.ExperienceAny:          1.0,
	},
}

func experienceScore(userLevel, requiredLevel string) float64 {
	if requiredLevel == types.ExperienceAny {
		return 1.0
	}
	if row, ok := experienceMatrix[userLevel]; ok {
		if score, ok := row[requiredLevel]; ok {
			return score
		}
	}
	return neutralExperienceScore
}

func impactScore(preferredAreas []string, impactArea string) float64 {
	if len(preferredAreas) == 0 {
		return neutralImpactScore
	}

	area := strings.ToLower(impactArea)
	for _, raw := range preferredAreas {
		if parsing.NormalizeTag(raw) == area {
			return 1.0
		}
	}
	return 0.4
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
