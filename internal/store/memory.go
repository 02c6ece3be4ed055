package store

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/impactlab/volunteer-matcher/internal/types"
)

// MemoryStore is a mutex-guarded in-memory Store. It backs the API in
// development mode and the tests; list order follows insertion order so
// rankings are reproducible.
type MemoryStore struct {
	mu            sync.RWMutex
	opportunities map[uuid.UUID]*types.OpportunityRecord
	order         []uuid.UUID
	profiles      map[uuid.UUID]*types.UserProfile
	feedback      map[uuid.UUID][]types.FeedbackRecord
	users         map[uuid.UUID]*UserAccount
	usersByEmail  map[string]uuid.UUID
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		opportunities: make(map[uuid.UUID]*types.OpportunityRecord),
		profiles:      make(map[uuid.UUID]*types.UserProfile),
		feedback:      make(map[uuid.UUID][]types.FeedbackRecord),
		users:         make(map[uuid.UUID]*UserAccount),
		usersByEmail:  make(map[string]uuid.UUID),
	}
}

// CreateOpportunity stores a new record, assigning an ID when missing.
func (s *MemoryStore) CreateOpportunity(_ context.Context, record *types.OpportunityRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if _, exists := s.opportunities[record.ID]; exists {
		return fmt.Errorf("opportunity %s already exists", record.ID)
	}

	now := time.Now()
	record.CreatedAt = now
	record.UpdatedAt = now

	clone := *record
	s.opportunities[record.ID] = &clone
	s.order = append(s.order, record.ID)
	return nil
}

// GetOpportunity returns the record or ErrNotFound.
func (s *MemoryStore) GetOpportunity(_ context.Context, id uuid.UUID) (*types.OpportunityRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.opportunities[id]
	if !ok {
		return nil, fmt.Errorf("opportunity %s: %w", id, ErrNotFound)
	}
	clone := *record
	return &clone, nil
}

// ListOpportunities returns all records in insertion order.
func (s *MemoryStore) ListOpportunities(_ context.Context) ([]types.OpportunityRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.OpportunityRecord, 0, len(s.order))
	for _, id := range s.order {
		if record, ok := s.opportunities[id]; ok {
			out = append(out, *record)
		}
	}
	return out, nil
}

// UpdateOpportunity replaces an existing record.
func (s *MemoryStore) UpdateOpportunity(_ context.Context, record *types.OpportunityRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.opportunities[record.ID]
	if !ok {
		return fmt.Errorf("opportunity %s: %w", record.ID, ErrNotFound)
	}

	record.CreatedAt = existing.CreatedAt
	record.UpdatedAt = time.Now()
	clone := *record
	s.opportunities[record.ID] = &clone
	return nil
}

// DeleteOpportunity removes a record.
func (s *MemoryStore) DeleteOpportunity(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.opportunities[id]; !ok {
		return fmt.Errorf("opportunity %s: %w", id, ErrNotFound)
	}
	delete(s.opportunities, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// GetProfile returns the stored profile or ErrNotFound.
func (s *MemoryStore) GetProfile(_ context.Context, userID uuid.UUID) (*types.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, ok := s.profiles[userID]
	if !ok {
		return nil, fmt.Errorf("profile for user %s: %w", userID, ErrNotFound)
	}
	clone := *profile
	return &clone, nil
}

// PutProfile creates or replaces a user's profile.
func (s *MemoryStore) PutProfile(_ context.Context, userID uuid.UUID, profile *types.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *profile
	clone.Normalize()
	s.profiles[userID] = &clone
	return nil
}

// AddFeedback appends a feedback record, keeping only the most recent
// entries per user.
func (s *MemoryStore) AddFeedback(_ context.Context, record types.FeedbackRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	records := append(s.feedback[record.UserID], record)
	if len(records) > maxFeedbackPerUser {
		records = records[len(records)-maxFeedbackPerUser:]
	}
	s.feedback[record.UserID] = records
	return nil
}

// ListFeedback returns a user's feedback, oldest first.
func (s *MemoryStore) ListFeedback(_ context.Context, userID uuid.UUID) ([]types.FeedbackRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.feedback[userID]
	out := make([]types.FeedbackRecord, len(records))
	copy(out, records)
	return out, nil
}

// CreateUser stores a new account. Emails are unique, case-insensitive.
func (s *MemoryStore) CreateUser(_ context.Context, name, email, passwordHash, role string) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(email)
	if _, exists := s.usersByEmail[key]; exists {
		return uuid.Nil, fmt.Errorf("email %s already registered", email)
	}

	now := time.Now()
	account := &UserAccount{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		Role:         role,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.users[account.ID] = account
	s.usersByEmail[key] = account.ID
	return account.ID, nil
}

// GetUser returns the account or ErrNotFound.
func (s *MemoryStore) GetUser(_ context.Context, id uuid.UUID) (*UserAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	clone := *account
	return &clone, nil
}

// GetUserByEmail returns the account or ErrNotFound.
func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (*UserAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.usersByEmail[strings.ToLower(email)]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", email, ErrNotFound)
	}
	clone := *s.users[id]
	return &clone, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() {}
