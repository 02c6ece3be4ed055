// Package ingest turns fetched listing pages into opportunity records.
package ingest

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/impactlab/volunteer-matcher/internal/types"
)

// cardSelectors locate individual opportunity blocks on a listing page.
// Tried in order; the first selector with matches wins.
var cardSelectors = []string{
	".opportunity",
	".opportunity-card",
	".listing-item",
	"[data-testid='opportunity']",
	"article",
}

// ParseListing extracts opportunity records from a listing page.
// Each card needs at least a title; cards without one are skipped so a
// single malformed block never fails the page. Structured fields left
// empty here are inferred later by feature extraction.
func ParseListing(html string) ([]types.OpportunityRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse listing HTML: %w", err)
	}

	var cards *goquery.Selection
	for _, selector := range cardSelectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			cards = selection
			break
		}
	}
	if cards == nil {
		return nil, nil
	}

	var records []types.OpportunityRecord
	cards.Each(func(_ int, card *goquery.Selection) {
		record, ok := parseCard(card)
		if ok {
			records = append(records, record)
		}
	})

	return records, nil
}

func parseCard(card *goquery.Selection) (types.OpportunityRecord, bool) {
	title := firstText(card, "h1, h2, h3, .title, .opportunity-title")
	if title == "" {
		return types.OpportunityRecord{}, false
	}

	record := types.OpportunityRecord{
		Title:       title,
		Description: firstText(card, ".description, .summary, p"),
		Category:    firstText(card, ".category, .cause-area"),
	}

	if loc := firstText(card, ".location, .opp-location"); loc != "" {
		record.Location = parseLocationText(loc)
	}

	card.Find(".skill, .skills li, .required-skills li").Each(func(_ int, s *goquery.Selection) {
		if skill := strings.TrimSpace(s.Text()); skill != "" {
			record.RequiredSkills = append(record.RequiredSkills, skill)
		}
	})

	card.Find(".tag, .tags li").Each(func(_ int, s *goquery.Selection) {
		if tag := strings.TrimSpace(s.Text()); tag != "" {
			record.Tags = append(record.Tags, tag)
		}
	})

	if commitment := firstText(card, ".time-commitment, .commitment"); commitment != "" {
		record.TimeCommitment = commitment
	}

	return record, true
}

// parseLocationText splits "City, Country" free text into a structured
// location. A single token becomes the city; "remote" anywhere marks the
// listing remote.
func parseLocationText(text string) types.OpportunityLocation {
	text = strings.TrimSpace(text)
	if strings.Contains(strings.ToLower(text), "remote") {
		return types.OpportunityLocation{Remote: true}
	}

	parts := strings.SplitN(text, ",", 2)
	loc := types.OpportunityLocation{City: strings.TrimSpace(parts[0])}
	if len(parts) == 2 {
		loc.Country = strings.TrimSpace(parts[1])
	}
	return loc
}

func firstText(sel *goquery.Selection, selector string) string {
	found := sel.Find(selector)
	if found.Length() == 0 {
		return ""
	}
	return strings.TrimSpace(found.First().Text())
}
