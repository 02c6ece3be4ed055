// Package matching implements the weighted multi-factor engine that ranks
// volunteer opportunities against a user profile.
package matching

import (
	"strings"

	"github.com/impactlab/volunteer-matcher/internal/parsing"
	"github.com/impactlab/volunteer-matcher/internal/types"
)

// keywordRule pairs a classification value with the keywords that imply it.
// Tables built from keywordRule slices are evaluated in order and the first
// match wins, so table order is part of the contract.
type keywordRule struct {
	value    string
	keywords []string
}

// skillCategories maps coarse skill categories to trigger keywords found in
// listing text. A category applies when any keyword appears as a substring.
var skillCategories = []keywordRule{
	{"programming", []string{"code", "coding", "programming", "software", "web", "app", "development", "tech"}},
	{"design", []string{"design", "ui", "ux", "graphic", "visual", "creative", "branding"}},
	{"marketing", []string{"marketing", "social media", "promotion", "outreach", "advertising", "content"}},
	{"teaching", []string{"teach", "mentor", "tutor", "education", "training", "workshop"}},
	{"leadership", []string{"lead", "manage", "coordinate", "organize", "facilitate", "direct"}},
	{"communication", []string{"communicate", "speak", "present", "write", "translate", "mediate"}},
	{"healthcare", []string{"medical", "health", "nursing", "therapy", "wellness", "mental health"}},
	{"environment", []string{"environment", "climate", "sustainability", "green", "eco", "conservation"}},
	{"fundraising", []string{"fundraise", "donation", "grant", "finance", "budget", "sponsor"}},
	{"event-planning", []string{"event", "party", "ceremony", "celebration", "logistics", "coordination"}},
}

var impactAreas = []keywordRule{
	{"education", []string{"education", "school", "student", "learning", "teach", "mentor"}},
	{"environment", []string{"environment", "climate", "green", "sustainability", "nature", "eco"}},
	{"health", []string{"health", "medical", "wellness", "mental", "fitness", "nutrition"}},
	{"community", []string{"community", "neighborhood", "local", "social", "cultural", "civic"}},
	{"poverty", []string{"poverty", "homeless", "hunger", "food", "shelter", "assistance"}},
	{"youth", []string{"youth", "children", "kids", "teen", "young", "school"}},
	{"elderly", []string{"elderly", "senior", "aging", "retirement", "old"}},
	{"technology", []string{"technology", "digital", "tech", "innovation", "coding", "ai"}},
}

var timeCommitmentRules = []keywordRule{
	{types.CommitmentHigh, []string{"urgent", "immediate", "asap"}},
	{types.CommitmentMedium, []string{"ongoing", "long-term", "commitment"}},
	{types.CommitmentLow, []string{"quick", "one-time", "short"}},
}

var experienceRules = []keywordRule{
	{types.ExperienceBeginner, []string{"beginner", "no experience", "entry"}},
	{types.ExperienceAdvanced, []string{"experienced", "advanced", "expert"}},
	{types.ExperienceIntermediate, []string{"intermediate", "some experience"}},
}

var teamSizeRules = []keywordRule{
	{types.TeamIndividual, []string{"solo", "individual", "alone"}},
	{types.TeamSmall, []string{"small", "few people"}},
	{types.TeamLarge, []string{"large", "many", "crowd"}},
}

// DefaultImpactArea is reported when no impact table entry matches.
const DefaultImpactArea = "general"

// ExtractFeatures normalizes a raw opportunity record into the structured
// view the scoring engine consumes. It is a pure function with no failure
// path: missing fields are inferred from the listing text and fall back to
// documented defaults.
func ExtractFeatures(record types.OpportunityRecord) types.OpportunityFeatures {
	text := strings.ToLower(record.Title + " " + record.Description)

	return types.OpportunityFeatures{
		OpportunityID:      record.ID,
		RequiredSkills:     extractRequiredSkills(record, text),
		ImpactArea:         classifyFirstMatch(impactAreas, text, DefaultImpactArea),
		Location:           record.Location,
		TimeCommitment:     classifyFirstMatch(timeCommitmentRules, text, types.CommitmentMedium),
		Urgency:            classifyUrgency(record, text),
		ExperienceRequired: classifyFirstMatch(experienceRules, text, types.ExperienceAny),
		TeamSize:           classifyFirstMatch(teamSizeRules, text, types.TeamMedium),
	}
}

// extractRequiredSkills uses the structured skill list when the record has
// one; otherwise it falls back to the skill categories keyword-matched from
// the listing text. Text inference fills gaps, it never dilutes an explicit
// skill list.
func extractRequiredSkills(record types.OpportunityRecord, text string) []string {
	if skills := parsing.NormalizeTagSet(record.RequiredSkills); len(skills) > 0 {
		return skills
	}

	skills := []string{}
	for _, rule := range skillCategories {
		if containsAny(text, rule.keywords) {
			skills = append(skills, rule.value)
		}
	}
	return skills
}

// classifyFirstMatch walks an ordered rule table and returns the value of
// the first rule whose keyword list matches the text.
func classifyFirstMatch(rules []keywordRule, text, fallback string) string {
	for _, rule := range rules {
		if containsAny(text, rule.keywords) {
			return rule.value
		}
	}
	return fallback
}

// classifyUrgency prefers the structured status over text inference.
func classifyUrgency(record types.OpportunityRecord, text string) string {
	if record.IsUrgent || strings.EqualFold(record.Status, "urgent") {
		return types.UrgencyHigh
	}
	if containsAny(text, []string{"urgent", "emergency", "asap"}) {
		return types.UrgencyHigh
	}
	if containsAny(text, []string{"soon", "quickly"}) {
		return types.UrgencyMedium
	}
	return types.UrgencyLow
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
