// Package fetch - platform.go provides platform detection and platform-specific selectors.
package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known volunteer listing platform.
type Platform string

const (
	// PlatformVolunteerMatch is the VolunteerMatch listing platform
	PlatformVolunteerMatch Platform = "volunteermatch"
	// PlatformIdealist is the Idealist listing platform
	PlatformIdealist Platform = "idealist"
	// PlatformPoints is the Points of Light engagement platform
	PlatformPoints Platform = "pointsoflight"
	// PlatformUnknown is an unrecognized platform
	PlatformUnknown Platform = "unknown"
)

// DetectPlatform identifies the volunteer listing platform from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Host)

	if strings.Contains(host, "volunteermatch.org") {
		return PlatformVolunteerMatch
	}

	if strings.Contains(host, "idealist.org") {
		return PlatformIdealist
	}

	if strings.Contains(host, "pointsoflight.org") ||
		strings.Contains(host, "engage.pointsoflight.org") {
		return PlatformPoints
	}

	return PlatformUnknown
}

// PlatformContentSelectors returns content selectors optimized for a specific platform.
func PlatformContentSelectors(platform Platform) []string {
	switch platform {
	case PlatformVolunteerMatch:
		return []string{
			".opp-detail__description", // Primary VolunteerMatch selector
			".opp-detail",              // Fallback
			".opportunity-detail",      // Alternative
			"#content",                 // Generic fallback
			".main-container",          // Container level
		}
	case PlatformIdealist:
		return []string{
			"[data-qa-id='listing-description']",
			".listing-description",
			".listing-body",
			".content",
		}
	case PlatformPoints:
		return []string{
			"[data-automation-id='opportunityDescription']",
			".opportunity-description",
			".need-body",
			".description",
		}
	default:
		return OpportunitySelectors()
	}
}

// PlatformNoiseSelectors returns noise exclusion selectors for a specific platform.
func PlatformNoiseSelectors(platform Platform) []string {
	// Common noise selectors for all platforms
	common := []string{
		// Signup and application forms
		"form",
		"#signup-form",
		".signup-form",
		".apply-button-container",
		"[data-testid='signup-form']",

		// Donation and fundraising prompts
		".donate-banner",
		".donation-prompt",
		".fundraising-cta",

		// Social and share buttons
		".social-share",
		".share-buttons",
		".social-links",

		// Cookie and GDPR
		".cookie-banner",
		".cookie-consent",
		".gdpr-notice",

		// Generic navigation already handled in fetch.go
	}

	switch platform {
	case PlatformVolunteerMatch:
		return append(common,
			".opp-detail__sidebar",
			".related-opportunities",
			".org-donate-widget",
		)
	case PlatformIdealist:
		return append(common,
			".listing-apply",
			".save-listing",
			".similar-listings",
		)
	case PlatformPoints:
		return append(common,
			"[data-automation-id='respondButton']",
			".need-respond-section",
			".impact-stats-widget",
		)
	default:
		return common
	}
}
