// Package parsing provides normalization of skill and tag strings coming
// from free-text opportunity records and user profiles.
package parsing

import "strings"

// tagNormalizations maps common variants to canonical lowercase tags.
// Matching elsewhere is substring-tolerant, so this only has to collapse
// spelling variants, not synonyms.
var tagNormalizations = map[string]string{
	"js":             "javascript",
	"java script":    "javascript",
	"node.js":        "javascript",
	"nodejs":         "javascript",
	"ui/ux":          "design",
	"graphic design": "design",
	"social media":   "marketing",
	"tutoring":       "teaching",
	"mentoring":      "teaching",
	"event planning": "event-planning",
	"eco":            "environment",
	"sustainability": "environment",
	"medical":        "healthcare",
	"fund raising":   "fundraising",
}

// NormalizeTag lowercases, trims and canonicalizes a single skill or
// interest tag. Empty input yields empty output.
func NormalizeTag(tag string) string {
	normalized := strings.ToLower(strings.TrimSpace(tag))
	if normalized == "" {
		return ""
	}
	if canonical, ok := tagNormalizations[normalized]; ok {
		return canonical
	}
	return normalized
}

// NormalizeTagSet normalizes every tag, drops empties, and deduplicates
// while preserving first-seen order.
func NormalizeTagSet(tags []string) []string {
	if len(tags) == 0 {
		return []string{}
	}

	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		normalized := NormalizeTag(tag)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		out = append(out, normalized)
	}
	return out
}

// SplitTagList splits a free-text skill list on common delimiters and
// normalizes the pieces. "JavaScript, Teaching / Mentoring" becomes
// ["javascript", "teaching"].
func SplitTagList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}

	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == '/' || r == '|'
	})
	return NormalizeTagSet(fields)
}
