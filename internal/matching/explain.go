package matching

import (
	"fmt"

	"github.com/impactlab/volunteer-matcher/internal/types"
)

// maxReasons bounds the justification list on every result.
const maxReasons = 3

// fallbackReason is emitted when no rule fires.
const fallbackReason = "Good general match for your profile"

// Reasons derives human-readable justifications from a sub-score breakdown.
// Rules are evaluated in a fixed order and every firing rule emits its
// message, truncated to the first three. The output is deterministic for a
// given breakdown.
func Reasons(sub types.SubScores, features types.OpportunityFeatures) []string {
	var reasons []string

	if sub.Skill > 0.7 {
		reasons = append(reasons, fmt.Sprintf("Strong skill match - you have %d%% of required skills", int(sub.Skill*100)))
	}

	if sub.Location > 0.8 {
		if features.Location.Remote {
			reasons = append(reasons, "Remote work available")
		} else {
			reasons = append(reasons, "Located in your area")
		}
	}

	if sub.Availability > 0.8 {
		reasons = append(reasons, "Time commitment fits your availability")
	}

	if sub.Interest > 0.6 {
		reasons = append(reasons, "Matches your interests and causes you care about")
	}

	if features.Urgency == types.UrgencyHigh {
		reasons = append(reasons, "Urgent opportunity - immediate impact possible")
	}

	if len(reasons) == 0 {
		return []string{fallbackReason}
	}
	if len(reasons) > maxReasons {
		reasons = reasons[:maxReasons]
	}
	return reasons
}
