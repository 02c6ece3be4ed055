package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTag(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"JavaScript", "javascript"},
		{"  Teaching ", "teaching"},
		{"js", "javascript"},
		{"Node.js", "javascript"},
		{"Social Media", "marketing"},
		{"Event Planning", "event-planning"},
		{"", ""},
		{"   ", ""},
		{"Fundraising", "fundraising"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeTag(tt.input))
		})
	}
}

func TestNormalizeTagSet_Dedupes(t *testing.T) {
	got := NormalizeTagSet([]string{"JS", "javascript", "Teaching", "", "Mentoring"})
	assert.Equal(t, []string{"javascript", "teaching"}, got)
}

func TestNormalizeTagSet_NilInput(t *testing.T) {
	got := NormalizeTagSet(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSplitTagList(t *testing.T) {
	got := SplitTagList("JavaScript, Teaching / Mentoring; Design")
	assert.Equal(t, []string{"javascript", "teaching", "design"}, got)

	assert.Empty(t, SplitTagList("  "))
}
