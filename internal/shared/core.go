package shared

import (
	"context"
	"errors"
	"time"
)

// Identity is the provider-managed authentication principal: subject id,
// email, verification flag, plus the opaque metadata bag a pending profile
// draft is parked in until the email is verified.
type Identity struct {
	UID            string
	Email          string
	EmailVerified  bool
	PendingProfile map[string]interface{}
}

// Session is the result of a password sign-in with the provider.
type Session struct {
	UID          string
	IDToken      string
	RefreshToken string
	ExpiresIn    time.Duration
}

// AuthClaims is the decoded, verified content of a provider ID token.
type AuthClaims struct {
	UID           string
	Email         string
	EmailVerified bool
}

// IdentityProvider is the external session provider's API as consumed by the
// auth workflow. All session issuance, password hashing and verification
// token delivery happen on the provider's side.
type IdentityProvider interface {
	SignUp(ctx context.Context, email, password string, pendingProfile map[string]interface{}) (*Identity, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context, uid string) error
	GetIdentity(ctx context.Context, uid string) (*Identity, error)
	GetIdentityByEmail(ctx context.Context, email string) (*Identity, error)
	ClearPendingProfile(ctx context.Context, uid string) error
	SendVerificationEmail(ctx context.Context, email string) error
	SendPasswordReset(ctx context.Context, email string) error
}

// TokenVerifier validates provider ID tokens on incoming requests.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*AuthClaims, error)
}

// ProviderError carries a rejection message reported by the external
// provider. The workflow surfaces these verbatim; anything else is collapsed
// to a generic message before it reaches a user.
type ProviderError struct {
	Message string
}

func (e *ProviderError) Error() string {
	return e.Message
}

// NewProviderError wraps a provider-reported rejection message.
func NewProviderError(message string) *ProviderError {
	return &ProviderError{Message: message}
}

// ErrIdentityNotFound is the provider rejection for an unknown email or UID.
// The password-reset flow matches on it to avoid leaking account existence.
var ErrIdentityNotFound = NewProviderError("Identity not found.")

// AsProviderError reports whether err is (or wraps) a provider rejection.
func AsProviderError(err error) (*ProviderError, bool) {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
