package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// User roles recognized by the platform.
const (
	RoleVolunteer = "volunteer"
	RoleOrganizer = "organizer"
)

// CreateUserRequest represents the request to register a new account.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=1"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=volunteer organizer"`
}

// LoginRequest represents the login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// User represents an account for API responses (avoids import cycle with the store package).
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserIdentity is the authenticated caller as seen by the core: an id and a
// role, nothing else. The matching engine never authenticates.
type UserIdentity struct {
	ID   uuid.UUID `json:"id"`
	Role string    `json:"role"`
}

// LoginResponse represents the login/register response with user data and authentication token.
type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// Validate validates the CreateUserRequest using the validator.
func (r *CreateUserRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the FeedbackRecord's user-supplied fields.
func (f *FeedbackRecord) Validate() error {
	validate := validator.New()
	return validate.Struct(f)
}

// Validate validates a stored opportunity record.
func (o *OpportunityRecord) Validate() error {
	validate := validator.New()
	return validate.Struct(o)
}

// Validate validates a user profile's declared enums.
func (p *UserProfile) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}
