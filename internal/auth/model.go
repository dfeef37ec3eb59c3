// File: internal/auth/model.go
package auth

import (
	"mynunny_backend/internal/profile"
)

// RegisterRequest is the registration payload: a full profile draft plus the
// password handed to the identity provider. The draft's own group-exclusivity
// checks run in the workflow; the wizard enforces the 6-character minimum
// before submission and the binding tag repeats it here.
type RegisterRequest struct {
	profile.Draft
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest is the credential payload for password sign-in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// EmailRequest covers the resend-verification and reset-password operations.
type EmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// RegisterResult mirrors the registration outcome: success with optional
// deferred verification, or a failure carrying the provider's own words.
type RegisterResult struct {
	Success              bool   `json:"success"`
	RequiresVerification bool   `json:"requires_verification,omitempty"`
	Error                string `json:"error,omitempty"`
}

// LoginResult carries the session material and the materialized profile on
// success.
type LoginResult struct {
	Success bool              `json:"success"`
	Error   string            `json:"error,omitempty"`
	Session *SessionResponse  `json:"session,omitempty"`
	Profile *profile.Response `json:"profile,omitempty"`
}

// SessionResponse is the client-facing session material.
type SessionResponse struct {
	IDToken          string `json:"id_token"`
	RefreshToken     string `json:"refresh_token"`
	ExpiresInSeconds int64  `json:"expires_in_seconds"`
}

// ActionResult is the outcome of the thin passthrough operations
// (resend-verification, reset-password, logout).
type ActionResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
