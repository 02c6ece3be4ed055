package matching

import (
	"testing"

	"github.com/google/uuid"
	"github.com/impactlab/volunteer-matcher/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestExtractFeatures_StructuredSkillsWin(t *testing.T) {
	record := types.OpportunityRecord{
		ID:             uuid.New(),
		Title:          "Youth Coding Bootcamp",
		Description:    "Teaching programming skills to underprivileged youth",
		RequiredSkills: []string{"JavaScript", "Teaching"},
	}

	features := ExtractFeatures(record)

	// Explicit skills are used as-is; the text would otherwise have added
	// "programming" and diluted skill matching.
	assert.Equal(t, []string{"javascript", "teaching"}, features.RequiredSkills)
	assert.Equal(t, record.ID, features.OpportunityID)
}

func TestExtractFeatures_InfersSkillsFromText(t *testing.T) {
	record := types.OpportunityRecord{
		Title:       "Community Website Redesign",
		Description: "Help us build a web app and run social media outreach",
	}

	features := ExtractFeatures(record)

	assert.Contains(t, features.RequiredSkills, "programming")
	assert.Contains(t, features.RequiredSkills, "design")
	assert.Contains(t, features.RequiredSkills, "marketing")
}

func TestExtractFeatures_ImpactAreaFirstMatchWins(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		expected string
	}{
		{"education", "After-school tutoring for students", "education"},
		{"environment", "Climate action rally", "environment"},
		{"health", "Free wellness checkups", "health"},
		{"poverty", "Soup kitchen for the homeless", "poverty"},
		// "school" appears in both the education and youth tables;
		// education is earlier in the table, so it wins.
		{"table order decides", "School supply drive", "education"},
		{"fallback", "Something else entirely", "general"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			features := ExtractFeatures(types.OpportunityRecord{Title: tt.title})
			assert.Equal(t, tt.expected, features.ImpactArea)
		})
	}
}

func TestExtractFeatures_TimeCommitment(t *testing.T) {
	tests := []struct {
		text     string
		expected string
	}{
		{"Urgent help needed asap", types.CommitmentHigh},
		{"Ongoing long-term project", types.CommitmentMedium},
		{"Quick one-time task", types.CommitmentLow},
		{"Nothing indicative", types.CommitmentMedium},
		// Both "urgent" and "quick" keywords present: the high-commitment
		// rule is earlier in the table, so it resolves first.
		{"Urgent but quick", types.CommitmentHigh},
	}

	for _, tt := range tests {
		features := ExtractFeatures(types.OpportunityRecord{Title: tt.text})
		assert.Equal(t, tt.expected, features.TimeCommitment, "text: %s", tt.text)
	}
}

func TestExtractFeatures_Urgency(t *testing.T) {
	assert.Equal(t, types.UrgencyHigh, ExtractFeatures(types.OpportunityRecord{Title: "x", Status: "urgent"}).Urgency)
	assert.Equal(t, types.UrgencyHigh, ExtractFeatures(types.OpportunityRecord{Title: "x", IsUrgent: true}).Urgency)
	assert.Equal(t, types.UrgencyHigh, ExtractFeatures(types.OpportunityRecord{Title: "Emergency flood relief"}).Urgency)
	assert.Equal(t, types.UrgencyMedium, ExtractFeatures(types.OpportunityRecord{Title: "Starting soon"}).Urgency)
	assert.Equal(t, types.UrgencyLow, ExtractFeatures(types.OpportunityRecord{Title: "Garden maintenance"}).Urgency)
}

func TestExtractFeatures_ExperienceRequired(t *testing.T) {
	assert.Equal(t, types.ExperienceBeginner, ExtractFeatures(types.OpportunityRecord{Title: "No experience needed"}).ExperienceRequired)
	assert.Equal(t, types.ExperienceAdvanced, ExtractFeatures(types.OpportunityRecord{Title: "Expert gardeners wanted"}).ExperienceRequired)
	assert.Equal(t, types.ExperienceIntermediate, ExtractFeatures(types.OpportunityRecord{Title: "Some experience preferred"}).ExperienceRequired)
	assert.Equal(t, types.ExperienceAny, ExtractFeatures(types.OpportunityRecord{Title: "Everyone welcome"}).ExperienceRequired)
}

func TestExtractFeatures_TeamSize(t *testing.T) {
	assert.Equal(t, types.TeamIndividual, ExtractFeatures(types.OpportunityRecord{Title: "Work alone at your pace"}).TeamSize)
	assert.Equal(t, types.TeamSmall, ExtractFeatures(types.OpportunityRecord{Title: "Join a small group"}).TeamSize)
	assert.Equal(t, types.TeamLarge, ExtractFeatures(types.OpportunityRecord{Title: "Join a large crowd event"}).TeamSize)
	assert.Equal(t, types.TeamMedium, ExtractFeatures(types.OpportunityRecord{Title: "Join us"}).TeamSize)
}

func TestExtractFeatures_EmptyRecord(t *testing.T) {
	features := ExtractFeatures(types.OpportunityRecord{})

	assert.Empty(t, features.RequiredSkills)
	assert.Equal(t, "general", features.ImpactArea)
	assert.Equal(t, types.CommitmentMedium, features.TimeCommitment)
	assert.Equal(t, types.UrgencyLow, features.Urgency)
	assert.Equal(t, types.ExperienceAny, features.ExperienceRequired)
	assert.Equal(t, types.TeamMedium, features.TeamSize)
}
