// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/impactlab/volunteer-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func joinTruncated(items []string, limit int) string {
	joined := strings.Join(items, ", ")
	if len(joined) > limit {
		joined = joined[:limit-3] + "..."
	}
	return joined
}

// PrintUserProfile outputs a human-readable summary of a volunteer profile.
func (p *Printer) PrintUserProfile(profile *types.UserProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Location:    %s\n", profile.Location))
	sb.WriteString(fmt.Sprintf("Experience:  %s\n", profile.ExperienceLevel))
	if profile.HoursPerWeek > 0 {
		sb.WriteString(fmt.Sprintf("Hours/week:  %d\n", profile.HoursPerWeek))
	}
	sb.WriteString("\n")

	if len(profile.Skills) > 0 {
		sb.WriteString("Skills:\n")
		count := min(len(profile.Skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", profile.Skills[i]))
		}
		if len(profile.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.Skills)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(profile.Interests) > 0 {
		sb.WriteString(fmt.Sprintf("Interests:     %s\n", joinTruncated(profile.Interests, 40)))
	}
	if len(profile.Availability) > 0 {
		sb.WriteString(fmt.Sprintf("Availability:  %s\n", joinTruncated(profile.Availability, 40)))
	}

	p.printBox("VOLUNTEER PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFeatures outputs the normalized view of one opportunity.
func (p *Printer) PrintFeatures(features *types.OpportunityFeatures) {
	if features == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Opportunity:  %s\n", features.OpportunityID))
	sb.WriteString(fmt.Sprintf("Impact area:  %s\n", features.ImpactArea))
	sb.WriteString(fmt.Sprintf("Location:     %s", features.Location.String()))
	if features.Location.Remote {
		sb.WriteString(" (remote)")
	}
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Commitment:   %s\n", features.TimeCommitment))
	sb.WriteString(fmt.Sprintf("Urgency:      %s\n", features.Urgency))
	sb.WriteString(fmt.Sprintf("Experience:   %s\n", features.ExperienceRequired))
	sb.WriteString(fmt.Sprintf("Team size:    %s\n", features.TeamSize))

	if len(features.RequiredSkills) > 0 {
		sb.WriteString(fmt.Sprintf("\nSkills: %s\n", joinTruncated(features.RequiredSkills, 40)))
	}

	p.printBox("EXTRACTED FEATURES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRecommendations outputs the top matches with scores and reasons.
func (p *Printer) PrintRecommendations(set *types.RecommendationSet) {
	if set == nil || len(set.Recommendations) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "NO MATCHES ABOVE THRESHOLD")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total matches: %d (min score %.2f)\n\n",
		set.Metadata.TotalFound, set.Metadata.MinScore))

	count := min(len(set.Recommendations), maxItemsToShow)
	for i := 0; i < count; i++ {
		match := set.Recommendations[i]
		title := match.Title
		if title == "" {
			title = match.OpportunityID.String()
		}
		if len(title) > 45 {
			title = title[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, title))
		sb.WriteString(fmt.Sprintf("    Score: %.2f (skill %.2f, loc %.2f, int %.2f)\n",
			match.OverallScore, match.SubScores.Skill, match.SubScores.Location, match.SubScores.Interest))
		for _, reason := range match.Reasons {
			if len(reason) > 48 {
				reason = reason[:45] + "..."
			}
			sb.WriteString(fmt.Sprintf("    - %s\n", reason))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(set.Recommendations) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more matches", len(set.Recommendations)-maxItemsToShow))
	}

	p.printBox("TOP RECOMMENDATIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintWeights outputs the active factor weights.
func (p *Printer) PrintWeights(weights map[string]float64) {
	if len(weights) == 0 {
		return
	}

	order := []string{"skills", "location", "availability", "interests", "experience", "impact"}

	var sb strings.Builder
	for _, factor := range order {
		if w, ok := weights[factor]; ok {
			sb.WriteString(fmt.Sprintf("%-13s %.2f\n", factor, w))
		}
	}

	p.printBox("FACTOR WEIGHTS", strings.TrimSuffix(sb.String(), "\n"))
}
