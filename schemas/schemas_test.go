package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/impactlab/volunteer-matcher/internal/schemas"
)

var schemaFiles = []string{
	"user_profile.schema.json",
	"opportunity.schema.json",
	"match_result.schema.json",
}

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			schemaPath := filepath.Join(".", schemaFile)
			data, err := os.ReadFile(schemaPath)
			require.NoError(t, err, "should be able to read schema file")

			var v interface{}
			err = json.Unmarshal(data, &v)
			assert.NoError(t, err, "schema file should be valid JSON: %s", schemaFile)
		})
	}
}

func TestSchemaFiles_ValidJSONSchema(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			schemaPath := filepath.Join(".", schemaFile)
			data, err := os.ReadFile(schemaPath)
			require.NoError(t, err)

			var schemaObj map[string]interface{}
			err = json.Unmarshal(data, &schemaObj)
			require.NoError(t, err)

			assert.Contains(t, schemaObj, "$schema")
			assert.Contains(t, schemaObj, "type")
			assert.Contains(t, schemaObj, "properties")
		})
	}
}

func TestUserProfileSchema_AcceptsValidProfile(t *testing.T) {
	profileJSON := `{
		"skills": ["javascript", "teaching"],
		"location": "Kuala Lumpur",
		"interests": ["education"],
		"availability": ["weekends"],
		"hours_per_week": 6,
		"experience_level": "intermediate",
		"matching_preferences": {"urgency_preference": "high"}
	}`

	schemaData, err := os.ReadFile("user_profile.schema.json")
	require.NoError(t, err)

	err = schemas.ValidateJSONString(string(schemaData), profileJSON)
	assert.NoError(t, err)
}

func TestUserProfileSchema_RejectsBadExperience(t *testing.T) {
	profileJSON := `{
		"skills": ["teaching"],
		"experience_level": "grandmaster"
	}`

	schemaData, err := os.ReadFile("user_profile.schema.json")
	require.NoError(t, err)

	err = schemas.ValidateJSONString(string(schemaData), profileJSON)
	require.Error(t, err)

	validationErr, ok := err.(*schemas.ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestOpportunitySchema_RequiresTitle(t *testing.T) {
	schemaData, err := os.ReadFile("opportunity.schema.json")
	require.NoError(t, err)

	err = schemas.ValidateJSONString(string(schemaData), `{"description": "no title here"}`)
	require.Error(t, err)

	validationErr, ok := err.(*schemas.ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestMatchResultSchema_AcceptsRecommendationSet(t *testing.T) {
	setJSON := `{
		"recommendations": [
			{
				"opportunity_id": "6a1f0bb2-9be1-4c3d-b1c5-0de9807d2a44",
				"title": "Youth Coding Bootcamp",
				"overall_score": 0.9,
				"sub_scores": {
					"skill": 1.0, "location": 1.0, "availability": 0.6,
					"interest": 1.0, "experience": 0.6, "impact": 0.6
				},
				"reasons": ["Your skills match 2 required skills"]
			}
		],
		"metadata": {
			"total_found": 1,
			"min_score": 0.4,
			"generated_at": "2026-01-15T10:00:00Z",
			"weights": {"skills": 0.3}
		}
	}`

	schemaData, err := os.ReadFile("match_result.schema.json")
	require.NoError(t, err)

	err = schemas.ValidateJSONString(string(schemaData), setJSON)
	assert.NoError(t, err)
}

func TestMatchResultSchema_RejectsOutOfRangeScore(t *testing.T) {
	setJSON := `{
		"recommendations": [
			{
				"opportunity_id": "6a1f0bb2-9be1-4c3d-b1c5-0de9807d2a44",
				"overall_score": 1.7,
				"sub_scores": {
					"skill": 1.0, "location": 1.0, "availability": 0.6,
					"interest": 1.0, "experience": 0.6, "impact": 0.6
				},
				"reasons": []
			}
		],
		"metadata": {
			"total_found": 1,
			"min_score": 0.4,
			"generated_at": "2026-01-15T10:00:00Z",
			"weights": {}
		}
	}`

	schemaData, err := os.ReadFile("match_result.schema.json")
	require.NoError(t, err)

	err = schemas.ValidateJSONString(string(schemaData), setJSON)
	require.Error(t, err)
}
