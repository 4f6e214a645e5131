package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Referral answers stored in User.WasReferred.
const (
	ReferredYes = "yes"
	ReferredNo  = "no"
)

// User represents a registered account. Company fields are derived from the
// email domain at signup and never updated.
type User struct {
	ID                 uuid.UUID
	Email              string
	PasswordHash       string
	Name               string
	CompanyDomain      string
	CompanyDisplayName string
	Department         string
	Role               string
	WasReferred        string
	ReferrerName       string
	ReferrerEmail      string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
