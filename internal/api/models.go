package api

import (
	"time"

	"github.com/google/uuid"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`

	// ExpiresAt is the ISO 8601 timestamp when the access token expires
	ExpiresAt string `json:"expires_at,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token refresh endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    string `json:"expires_at"`
}

// CreateCardRequest defines the payload for creating a card.
type CreateCardRequest struct {
	Word       string     `json:"word"    validate:"required,max=255"`
	Meaning    string     `json:"meaning" validate:"required"`
	WordListID *uuid.UUID `json:"word_list_id,omitempty"`
}

// ReviewOutcomeRequest defines the payload for submitting a review outcome
// or a test result. IsSuccess is a pointer so that an explicit false passes
// required validation.
type ReviewOutcomeRequest struct {
	IsSuccess *bool `json:"is_success" validate:"required"`
}

// UpdateScheduleRequest defines the payload for replacing the caller's
// interval table.
type UpdateScheduleRequest struct {
	Intervals []int `json:"intervals" validate:"required,min=1,dive,gt=0"`
}

// ScheduleResponse defines the response for interval table endpoints.
type ScheduleResponse struct {
	Intervals []int `json:"intervals"`
}

// StreakResponse defines the response for the streak endpoint.
type StreakResponse struct {
	CurrentStreak  int        `json:"current_streak"`
	LongestStreak  int        `json:"longest_streak"`
	LastReviewDate *time.Time `json:"last_review_date,omitempty"`
}
