package store

import (
	"context"
	"fmt"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/impactlab/volunteer-matcher/internal/types"
)

// demoImpactAreas and demoSkills feed the generated listings so that
// extraction and scoring have realistic material to chew on.
var (
	demoImpactAreas = []string{"education", "environment", "health", "community", "poverty", "youth", "elderly", "technology"}
	demoSkills      = []string{"teaching", "programming", "design", "marketing", "leadership", "communication", "fundraising", "event-planning", "healthcare"}
	demoCommitments = []string{"2 hours", "5 hours/week", "10 hours/week", "one-time event", "ongoing commitment"}
)

// fixtureRecords are the canonical demo listings; tests and documentation
// refer to them by title.
func fixtureRecords() []types.OpportunityRecord {
	return []types.OpportunityRecord{
		{
			Title:          "Youth Coding Bootcamp",
			Description:    "Teaching programming skills to underprivileged youth",
			Category:       "education",
			Location:       types.OpportunityLocation{City: "Kuala Lumpur", Country: "Malaysia"},
			RequiredSkills: []string{"JavaScript", "Teaching"},
			TimeCommitment: "5 hours/week",
			Tags:           []string{"education", "youth", "technology"},
			Status:         "active",
		},
		{
			Title:          "Beach Cleanup Initiative",
			Description:    "Coastal cleanup to protect marine ecosystems",
			Category:       "environment",
			Location:       types.OpportunityLocation{City: "Mumbai", Country: "India"},
			RequiredSkills: []string{"Physical fitness"},
			TimeCommitment: "4 hours",
			Tags:           []string{"environment", "cleanup", "marine"},
			Status:         "active",
			IsUrgent:       true,
		},
	}
}

// SeedDemo fills the store with the canonical fixture listings plus n
// generated ones. Seeding is deterministic for a given seed value.
func (s *MemoryStore) SeedDemo(ctx context.Context, n int, seed uint64) error {
	faker := gofakeit.New(int64(seed))

	for _, record := range fixtureRecords() {
		r := record
		if err := s.CreateOpportunity(ctx, &r); err != nil {
			return fmt.Errorf("failed to seed fixture %q: %w", record.Title, err)
		}
	}

	for i := 0; i < n; i++ {
		area := demoImpactAreas[faker.Number(0, len(demoImpactAreas)-1)]
		record := types.OpportunityRecord{
			Title:       fmt.Sprintf("%s %s drive", faker.City(), area),
			Description: faker.Sentence(12),
			Category:    area,
			Location: types.OpportunityLocation{
				City:    faker.City(),
				Country: faker.Country(),
				Remote:  faker.Bool(),
			},
			RequiredSkills: []string{
				demoSkills[faker.Number(0, len(demoSkills)-1)],
				demoSkills[faker.Number(0, len(demoSkills)-1)],
			},
			TimeCommitment: demoCommitments[faker.Number(0, len(demoCommitments)-1)],
			Tags:           []string{area},
			Status:         "active",
			IsUrgent:       faker.Number(0, 9) == 0,
		}
		if err := s.CreateOpportunity(ctx, &record); err != nil {
			return fmt.Errorf("failed to seed generated listing %d: %w", i, err)
		}
	}

	return nil
}
