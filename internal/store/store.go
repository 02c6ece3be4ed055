// Package store provides persistence for opportunities, profiles, accounts
// and recommendation feedback. The matching engine never touches storage;
// callers load snapshots from a Store and hand them to the engine.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/impactlab/volunteer-matcher/internal/types"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// maxFeedbackPerUser bounds retained feedback records per user; older
// entries are discarded first.
const maxFeedbackPerUser = 100

// UserAccount is the stored form of a platform account, including the
// password hash that never leaves this package's callers.
type UserAccount struct {
	ID           uuid.UUID
	Name         string
	Email        string
	Role         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// User converts the account to its API-safe representation.
func (a *UserAccount) User() *types.User {
	return &types.User{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Role:      a.Role,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// Store is the persistence interface the API layer depends on. MemoryStore
// backs it for development and tests, PostgresStore for deployments.
type Store interface {
	CreateOpportunity(ctx context.Context, record *types.OpportunityRecord) error
	GetOpportunity(ctx context.Context, id uuid.UUID) (*types.OpportunityRecord, error)
	ListOpportunities(ctx context.Context) ([]types.OpportunityRecord, error)
	UpdateOpportunity(ctx context.Context, record *types.OpportunityRecord) error
	DeleteOpportunity(ctx context.Context, id uuid.UUID) error

	GetProfile(ctx context.Context, userID uuid.UUID) (*types.UserProfile, error)
	PutProfile(ctx context.Context, userID uuid.UUID, profile *types.UserProfile) error

	AddFeedback(ctx context.Context, record types.FeedbackRecord) error
	ListFeedback(ctx context.Context, userID uuid.UUID) ([]types.FeedbackRecord, error)

	CreateUser(ctx context.Context, name, email, passwordHash, role string) (uuid.UUID, error)
	GetUser(ctx context.Context, id uuid.UUID) (*UserAccount, error)
	GetUserByEmail(ctx context.Context, email string) (*UserAccount, error)

	Close()
}
