package handler

import (
	"time"

	"github.com/msomdec/lamenar/internal/domain"
)

// UserDTO is the JSON representation of a user.
type UserDTO struct {
	ID                 string  `json:"id"`
	Email              string  `json:"email"`
	Name               string  `json:"name"`
	CompanyDomain      string  `json:"company_domain"`
	CompanyDisplayName string  `json:"company_display_name"`
	Department         *string `json:"department"`
	Role               string  `json:"role"`
	WasReferred        string  `json:"was_referred"`
	ReferrerName       *string `json:"referrer_name"`
	ReferrerEmail      *string `json:"referrer_email"`
	CreatedAt          string  `json:"created_at"`
	UpdatedAt          string  `json:"updated_at"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:                 u.ID.String(),
		Email:              u.Email,
		Name:               u.Name,
		CompanyDomain:      u.CompanyDomain,
		CompanyDisplayName: u.CompanyDisplayName,
		Department:         optional(u.Department),
		Role:               u.Role,
		WasReferred:        u.WasReferred,
		ReferrerName:       optional(u.ReferrerName),
		ReferrerEmail:      optional(u.ReferrerEmail),
		CreatedAt:          u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          u.UpdatedAt.Format(time.RFC3339),
	}
}

// optional renders empty strings as JSON null.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// TokenDTO is the access token returned on login.
type TokenDTO struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// LoginResponse is the body of a successful login.
type LoginResponse struct {
	Message string   `json:"message"`
	User    UserDTO  `json:"user"`
	Token   TokenDTO `json:"token"`
}

type signupRequest struct {
	Email         string `json:"email" validate:"required,email,workemail"`
	Password      string `json:"password" validate:"required,min=8"`
	Name          string `json:"name" validate:"required"`
	Department    string `json:"department"`
	Role          string `json:"role" validate:"required"`
	WasReferred   string `json:"was_referred" validate:"required,oneof=yes no"`
	ReferrerName  string `json:"referrer_name"`
	ReferrerEmail string `json:"referrer_email" validate:"omitempty,email"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}
