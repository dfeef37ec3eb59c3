// File: internal/auth/service.go
package auth

import (
	"context"
	"errors"

	"mynunny_backend/internal/common"
	"mynunny_backend/internal/profile"
	"mynunny_backend/internal/shared"

	"go.uber.org/zap"
)

// Fixed user-facing messages. Provider rejections pass through verbatim;
// everything else collapses to the generic message so raw transport detail
// never reaches a user.
const (
	unverifiedLoginMessage = "Please verify your email address before logging in."
	genericErrorMessage    = "An unexpected error occurred"
	profileCreationMessage = "Failed to create profile"
)

// Workflow drives registration, login and the session state over the
// external identity provider and the local profile store. Every operation
// resolves to a result object; none panics or retries.
type Workflow struct {
	provider shared.IdentityProvider
	profiles profile.Service
	tracker  *StateTracker
	logger   *zap.Logger
}

// NewWorkflow creates the auth workflow.
func NewWorkflow(provider shared.IdentityProvider, profiles profile.Service, tracker *StateTracker, logger *zap.Logger) *Workflow {
	return &Workflow{
		provider: provider,
		profiles: profiles,
		tracker:  tracker,
		logger:   logger,
	}
}

// Tracker exposes the session state tracker for the HTTP surface.
func (w *Workflow) Tracker() *StateTracker {
	return w.tracker
}

// Register signs the draft up with the provider, parking it in the
// identity's metadata bag. When the provider reports the email already
// verified the profile is materialized immediately; otherwise creation is
// deferred to the first verified login.
func (w *Workflow) Register(ctx context.Context, draft profile.Draft, password string) RegisterResult {
	if err := draft.Validate(); err != nil {
		return RegisterResult{Success: false, Error: err.Error()}
	}

	claims, err := draft.ToClaims()
	if err != nil {
		w.logger.Error("Failed to serialize registration draft", zap.Error(err))
		return RegisterResult{Success: false, Error: genericErrorMessage}
	}

	identity, err := w.provider.SignUp(ctx, draft.Email, password, claims)
	if err != nil {
		if pe, ok := shared.AsProviderError(err); ok {
			return RegisterResult{Success: false, Error: pe.Message}
		}
		w.logger.Error("Registration failed", zap.Error(err), zap.String("email", draft.Email))
		return RegisterResult{Success: false, Error: genericErrorMessage}
	}

	if identity.EmailVerified {
		if _, err := w.profiles.Materialize(ctx, identity.UID, &draft); err != nil {
			w.logger.Error("Immediate profile materialization failed",
				zap.Error(err), zap.String("uid", identity.UID))
			return RegisterResult{Success: false, Error: profileCreationMessage}
		}
		if err := w.provider.ClearPendingProfile(ctx, identity.UID); err != nil {
			w.logger.Warn("Pending profile not cleared after materialization",
				zap.Error(err), zap.String("uid", identity.UID))
		}
		return RegisterResult{Success: true}
	}

	w.logger.Info("Registration deferred pending email verification",
		zap.String("uid", identity.UID), zap.String("type", string(draft.Type)))
	return RegisterResult{Success: true, RequiresVerification: true}
}

// Login authenticates the credentials and, on a verified session, heals the
// deferred-provisioning case by materializing the profile from the metadata
// bag left at registration. An authenticated-but-unverified session is
// terminated on the spot so it never persists.
func (w *Workflow) Login(ctx context.Context, email, password string) LoginResult {
	session, err := w.provider.SignIn(ctx, email, password)
	if err != nil {
		if pe, ok := shared.AsProviderError(err); ok {
			return LoginResult{Success: false, Error: pe.Message}
		}
		w.logger.Error("Login failed", zap.Error(err), zap.String("email", email))
		return LoginResult{Success: false, Error: genericErrorMessage}
	}

	identity, err := w.provider.GetIdentity(ctx, session.UID)
	if err != nil {
		w.logger.Error("Failed to read identity after sign-in",
			zap.Error(err), zap.String("uid", session.UID))
		w.revokeSession(ctx, session.UID)
		return LoginResult{Success: false, Error: genericErrorMessage}
	}

	if !identity.EmailVerified {
		// Compensate: the provider issued a session before we could check
		// the verification flag. Kill it so none persists.
		w.revokeSession(ctx, session.UID)
		w.tracker.HandleAuthChange(ctx, identity)
		return LoginResult{Success: false, Error: unverifiedLoginMessage}
	}

	p, err := w.ensureProfile(ctx, identity)
	if err != nil {
		w.logger.Error("Profile materialization at login failed",
			zap.Error(err), zap.String("uid", identity.UID))
		return LoginResult{Success: false, Error: genericErrorMessage}
	}

	w.tracker.HandleAuthChange(ctx, identity)

	resp := profile.ToResponse(p)
	return LoginResult{
		Success: true,
		Session: &SessionResponse{
			IDToken:          session.IDToken,
			RefreshToken:     session.RefreshToken,
			ExpiresInSeconds: int64(session.ExpiresIn.Seconds()),
		},
		Profile: &resp,
	}
}

// ensureProfile returns the identity's profile, materializing it from the
// pending draft when absent. The store's uniqueness constraint makes a
// racing duplicate insert a benign no-op inside Materialize.
func (w *Workflow) ensureProfile(ctx context.Context, identity *shared.Identity) (*profile.Profile, error) {
	p, err := w.profiles.GetByFirebaseUID(ctx, identity.UID)
	if err == nil {
		return p, nil
	}
	apiErr, ok := common.IsAPIError(err)
	if !ok || apiErr.StatusCode != common.ErrNotFound.StatusCode {
		return nil, err
	}

	draft, err := profile.DraftFromClaims(identity.PendingProfile)
	if err != nil {
		return nil, err
	}
	p, err = w.profiles.Materialize(ctx, identity.UID, draft)
	if err != nil {
		return nil, err
	}
	if err := w.provider.ClearPendingProfile(ctx, identity.UID); err != nil {
		w.logger.Warn("Pending profile not cleared after materialization",
			zap.Error(err), zap.String("uid", identity.UID))
	}
	return p, nil
}

func (w *Workflow) revokeSession(ctx context.Context, uid string) {
	if err := w.provider.SignOut(ctx, uid); err != nil {
		w.logger.Error("Compensating sign-out failed", zap.Error(err), zap.String("uid", uid))
	}
}

// Logout terminates the provider session. The tracker is cleared locally as
// well, so identity and profile empty out even if the provider's change
// notification never arrives.
func (w *Workflow) Logout(ctx context.Context, uid string) ActionResult {
	if err := w.provider.SignOut(ctx, uid); err != nil {
		w.logger.Error("Logout failed", zap.Error(err), zap.String("uid", uid))
		w.tracker.Clear()
		return ActionResult{Success: false, Error: genericErrorMessage}
	}
	w.tracker.Clear()
	return ActionResult{Success: true}
}

// SendVerificationEmail asks the provider to resend the verification link.
// Already-verified identities are refused rather than mailed a dead link.
func (w *Workflow) SendVerificationEmail(ctx context.Context, email string) ActionResult {
	identity, err := w.provider.GetIdentityByEmail(ctx, email)
	if err != nil {
		if pe, ok := shared.AsProviderError(err); ok {
			return ActionResult{Success: false, Error: pe.Message}
		}
		w.logger.Error("Resend verification lookup failed", zap.Error(err), zap.String("email", email))
		return ActionResult{Success: false, Error: genericErrorMessage}
	}
	if identity.EmailVerified {
		return ActionResult{Success: false, Error: "Email is already verified."}
	}

	if err := w.provider.SendVerificationEmail(ctx, email); err != nil {
		if pe, ok := shared.AsProviderError(err); ok {
			return ActionResult{Success: false, Error: pe.Message}
		}
		w.logger.Error("Resend verification failed", zap.Error(err), zap.String("email", email))
		return ActionResult{Success: false, Error: genericErrorMessage}
	}
	return ActionResult{Success: true}
}

// ResetPassword initiates a password reset. An unknown email still gets a
// success-shaped result so the operation never confirms whether an account
// exists.
func (w *Workflow) ResetPassword(ctx context.Context, email string) ActionResult {
	if err := w.provider.SendPasswordReset(ctx, email); err != nil {
		if errors.Is(err, shared.ErrIdentityNotFound) {
			w.logger.Info("Password reset requested for unknown email", zap.String("email", email))
			return ActionResult{Success: true}
		}
		if pe, ok := shared.AsProviderError(err); ok {
			return ActionResult{Success: false, Error: pe.Message}
		}
		w.logger.Error("Password reset failed", zap.Error(err), zap.String("email", email))
		return ActionResult{Success: false, Error: genericErrorMessage}
	}
	return ActionResult{Success: true}
}

// GetProfile fetches the current profile for an authenticated subject.
func (w *Workflow) GetProfile(ctx context.Context, firebaseUID string) (*profile.Profile, error) {
	return w.profiles.GetByFirebaseUID(ctx, firebaseUID)
}

// UpdateProfile applies a partial update for the authenticated subject and
// refreshes the tracker with the authoritative stored state.
func (w *Workflow) UpdateProfile(ctx context.Context, firebaseUID string, req profile.UpdateRequest) (*profile.Profile, error) {
	if firebaseUID == "" {
		return nil, common.ErrUnauthorized.WithDetails("No user logged in")
	}
	p, err := w.profiles.Update(ctx, firebaseUID, req)
	if err != nil {
		return nil, err
	}
	w.tracker.RefreshProfile(firebaseUID, p)
	return p, nil
}
