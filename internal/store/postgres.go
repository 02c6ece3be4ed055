package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/impactlab/volunteer-matcher/internal/types"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements Store on a pgx connection pool. Opportunity
// locations and user profiles are stored as JSONB so the record shape can
// evolve without migrations for every optional field.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database.
func Connect(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// CreateOpportunity inserts a new listing, assigning an ID when missing.
func (s *PostgresStore) CreateOpportunity(ctx context.Context, record *types.OpportunityRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	locationJSON, err := json.Marshal(record.Location)
	if err != nil {
		return fmt.Errorf("failed to marshal location: %w", err)
	}

	err = s.pool.QueryRow(ctx,
		`INSERT INTO opportunities (id, title, description, category, location, required_skills, time_commitment, tags, status, is_urgent)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING created_at, updated_at`,
		record.ID, record.Title, record.Description, record.Category, locationJSON,
		record.RequiredSkills, record.TimeCommitment, record.Tags, record.Status, record.IsUrgent,
	).Scan(&record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create opportunity: %w", err)
	}
	return nil
}

// GetOpportunity retrieves a listing by ID.
func (s *PostgresStore) GetOpportunity(ctx context.Context, id uuid.UUID) (*types.OpportunityRecord, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, title, description, category, location, required_skills, time_commitment, tags, status, is_urgent, created_at, updated_at
		 FROM opportunities WHERE id = $1`, id)

	record, err := scanOpportunity(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("opportunity %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get opportunity: %w", err)
	}
	return record, nil
}

// ListOpportunities returns all listings, oldest first.
func (s *PostgresStore) ListOpportunities(ctx context.Context) ([]types.OpportunityRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, title, description, category, location, required_skills, time_commitment, tags, status, is_urgent, created_at, updated_at
		 FROM opportunities ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list opportunities: %w", err)
	}
	defer rows.Close()

	var out []types.OpportunityRecord
	for rows.Next() {
		record, err := scanOpportunity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan opportunity: %w", err)
		}
		out = append(out, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate opportunities: %w", err)
	}
	return out, nil
}

// UpdateOpportunity replaces an existing listing.
func (s *PostgresStore) UpdateOpportunity(ctx context.Context, record *types.OpportunityRecord) error {
	locationJSON, err := json.Marshal(record.Location)
	if err != nil {
		return fmt.Errorf("failed to marshal location: %w", err)
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE opportunities
		 SET title = $2, description = $3, category = $4, location = $5, required_skills = $6,
		     time_commitment = $7, tags = $8, status = $9, is_urgent = $10, updated_at = NOW()
		 WHERE id = $1`,
		record.ID, record.Title, record.Description, record.Category, locationJSON,
		record.RequiredSkills, record.TimeCommitment, record.Tags, record.Status, record.IsUrgent,
	)
	if err != nil {
		return fmt.Errorf("failed to update opportunity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("opportunity %s: %w", record.ID, ErrNotFound)
	}
	return nil
}

// DeleteOpportunity removes a listing.
func (s *PostgresStore) DeleteOpportunity(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM opportunities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete opportunity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("opportunity %s: %w", id, ErrNotFound)
	}
	return nil
}

// GetProfile loads a user's matching profile.
func (s *PostgresStore) GetProfile(ctx context.Context, userID uuid.UUID) (*types.UserProfile, error) {
	var profileJSON []byte
	err := s.pool.QueryRow(ctx,
		`SELECT profile FROM volunteer_profiles WHERE user_id = $1`, userID,
	).Scan(&profileJSON)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("profile for user %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	var profile types.UserProfile
	if err := json.Unmarshal(profileJSON, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	profile.Normalize()
	return &profile, nil
}

// PutProfile creates or replaces a user's matching profile.
func (s *PostgresStore) PutProfile(ctx context.Context, userID uuid.UUID, profile *types.UserProfile) error {
	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO volunteer_profiles (user_id, profile)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET profile = $2, updated_at = NOW()`,
		userID, profileJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to put profile: %w", err)
	}
	return nil
}

// AddFeedback inserts a feedback record and trims the user's history to the
// retention limit.
func (s *PostgresStore) AddFeedback(ctx context.Context, record types.FeedbackRecord) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO match_feedback (user_id, opportunity_id, action, comment)
		 VALUES ($1, $2, $3, $4)`,
		record.UserID, record.OpportunityID, record.Action, record.Comment,
	)
	if err != nil {
		return fmt.Errorf("failed to add feedback: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`DELETE FROM match_feedback
		 WHERE user_id = $1 AND created_at NOT IN (
		     SELECT created_at FROM match_feedback
		     WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2
		 )`,
		record.UserID, maxFeedbackPerUser,
	)
	if err != nil {
		return fmt.Errorf("failed to trim feedback: %w", err)
	}
	return nil
}

// ListFeedback returns a user's feedback, oldest first.
func (s *PostgresStore) ListFeedback(ctx context.Context, userID uuid.UUID) ([]types.FeedbackRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT user_id, opportunity_id, action, comment, created_at
		 FROM match_feedback WHERE user_id = $1 ORDER BY created_at ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	defer rows.Close()

	var out []types.FeedbackRecord
	for rows.Next() {
		var record types.FeedbackRecord
		if err := rows.Scan(&record.UserID, &record.OpportunityID, &record.Action, &record.Comment, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate feedback: %w", err)
	}
	return out, nil
}

// CreateUser inserts a new account.
func (s *PostgresStore) CreateUser(ctx context.Context, name, email, passwordHash, role string) (uuid.UUID, error) {
	var id uuid.UUID
	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, role, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		name, strings.ToLower(email), role, passwordHash,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

// GetUser retrieves an account by ID.
func (s *PostgresStore) GetUser(ctx context.Context, id uuid.UUID) (*UserAccount, error) {
	account := &UserAccount{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, email, role, password_hash, created_at, updated_at
		 FROM users WHERE id = $1`, id,
	).Scan(&account.ID, &account.Name, &account.Email, &account.Role, &account.PasswordHash, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return account, nil
}

// GetUserByEmail retrieves an account by email.
func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*UserAccount, error) {
	account := &UserAccount{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, email, role, password_hash, created_at, updated_at
		 FROM users WHERE email = $1`, strings.ToLower(email),
	).Scan(&account.ID, &account.Name, &account.Email, &account.Role, &account.PasswordHash, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return account, nil
}

// scanOpportunity reads one opportunity row from either QueryRow or Rows.
func scanOpportunity(row pgx.Row) (*types.OpportunityRecord, error) {
	record := &types.OpportunityRecord{}
	var locationJSON []byte

	err := row.Scan(
		&record.ID, &record.Title, &record.Description, &record.Category,
		&locationJSON, &record.RequiredSkills, &record.TimeCommitment,
		&record.Tags, &record.Status, &record.IsUrgent,
		&record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(locationJSON) > 0 {
		if err := json.Unmarshal(locationJSON, &record.Location); err != nil {
			return nil, fmt.Errorf("failed to unmarshal location: %w", err)
		}
	}
	return record, nil
}
