package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"mynunny_backend/internal/config"
	"mynunny_backend/internal/shared"
)

// pendingProfileClaim is the custom-claim key holding a registration draft
// until the email is verified and the profile row is materialized.
const pendingProfileClaim = "pending_profile"

const identityToolkitSignInURL = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword"

// Service implements shared.IdentityProvider and shared.TokenVerifier on top
// of Firebase Auth. Session issuance, password hashing and email delivery all
// live on the provider's side; this adapter only translates calls.
type Service struct {
	authClient *firebaseauth.Client
	httpClient *http.Client
	apiKey     string
	cfg        *config.Config
	logger     *zap.Logger
}

var _ shared.IdentityProvider = (*Service)(nil)
var _ shared.TokenVerifier = (*Service)(nil)

// NewService initializes the Firebase Admin SDK and creates a new Service.
func NewService(cfg *config.Config, logger *zap.Logger) (*Service, error) {
	if cfg.FirebaseServiceAccountKeyPath == "" {
		logger.Error("Firebase service account key path is not configured.")
		return nil, fmt.Errorf("firebase service account key path is required")
	}

	cleanPath := filepath.Clean(cfg.FirebaseServiceAccountKeyPath)
	opt := option.WithCredentialsFile(cleanPath)

	var app *firebase.App
	var err error
	if cfg.FirebaseProjectID != "" {
		conf := &firebase.Config{ProjectID: cfg.FirebaseProjectID}
		app, err = firebase.NewApp(context.Background(), conf, opt)
	} else {
		app, err = firebase.NewApp(context.Background(), nil, opt)
	}
	if err != nil {
		logger.Error("Failed to initialize Firebase Admin SDK app", zap.Error(err), zap.String("keyPath", cleanPath))
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}

	authClient, err := app.Auth(context.Background())
	if err != nil {
		logger.Error("Failed to get Firebase Auth client", zap.Error(err))
		return nil, fmt.Errorf("error getting Firebase Auth client: %w", err)
	}

	logger.Info("Firebase Admin SDK initialized successfully.")
	return &Service{
		authClient: authClient,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		apiKey:     cfg.FirebaseWebAPIKey,
		cfg:        cfg,
		logger:     logger,
	}, nil
}

// SignUp creates a new identity and parks the registration draft in its
// custom-claims bag. The draft stays there until first verified login.
func (s *Service) SignUp(ctx context.Context, email, password string, pendingProfile map[string]interface{}) (*shared.Identity, error) {
	params := (&firebaseauth.UserToCreate{}).
		Email(email).
		Password(password)

	record, err := s.authClient.CreateUser(ctx, params)
	if err != nil {
		s.logger.Warn("Firebase sign-up rejected", zap.String("email", email), zap.Error(err))
		if firebaseauth.IsEmailAlreadyExists(err) {
			return nil, shared.NewProviderError("User with this email already exists.")
		}
		return nil, shared.NewProviderError(err.Error())
	}

	if pendingProfile != nil {
		claims := map[string]interface{}{pendingProfileClaim: pendingProfile}
		if err := s.authClient.SetCustomUserClaims(ctx, record.UID, claims); err != nil {
			s.logger.Error("Failed to attach pending profile to new identity",
				zap.String("uid", record.UID), zap.Error(err))
			return nil, fmt.Errorf("failed to store pending profile: %w", err)
		}
	}

	s.logger.Info("Identity created", zap.String("uid", record.UID),
		zap.Bool("emailVerified", record.EmailVerified))
	return &shared.Identity{
		UID:            record.UID,
		Email:          record.Email,
		EmailVerified:  record.EmailVerified,
		PendingProfile: pendingProfile,
	}, nil
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	LocalID      string `json:"localId"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

type signInError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// SignIn authenticates email+password against the Identity Toolkit REST
// endpoint. The Admin SDK has no password sign-in, so this goes through the
// same endpoint web clients use, keyed by the project's web API key.
func (s *Service) SignIn(ctx context.Context, email, password string) (*shared.Session, error) {
	body, err := json.Marshal(signInRequest{Email: email, Password: password, ReturnSecureToken: true})
	if err != nil {
		return nil, fmt.Errorf("failed to encode sign-in request: %w", err)
	}

	url := fmt.Sprintf("%s?key=%s", identityToolkitSignInURL, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build sign-in request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sign-in request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read sign-in response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var rejection signInError
		if err := json.Unmarshal(respBody, &rejection); err == nil && rejection.Error.Message != "" {
			s.logger.Info("Firebase sign-in rejected", zap.String("email", email),
				zap.String("reason", rejection.Error.Message))
			return nil, shared.NewProviderError(rejection.Error.Message)
		}
		return nil, fmt.Errorf("sign-in failed with status %s", resp.Status)
	}

	var ok signInResponse
	if err := json.Unmarshal(respBody, &ok); err != nil {
		return nil, fmt.Errorf("failed to decode sign-in response: %w", err)
	}

	expiresIn, _ := time.ParseDuration(ok.ExpiresIn + "s")
	return &shared.Session{
		UID:          ok.LocalID,
		IDToken:      ok.IDToken,
		RefreshToken: ok.RefreshToken,
		ExpiresIn:    expiresIn,
	}, nil
}

// SignOut terminates every session for the identity by revoking its refresh
// tokens. Used both for logout and as the compensating action when an
// unverified identity manages to authenticate.
func (s *Service) SignOut(ctx context.Context, uid string) error {
	if err := s.authClient.RevokeRefreshTokens(ctx, uid); err != nil {
		s.logger.Error("Failed to revoke refresh tokens", zap.Error(err), zap.String("uid", uid))
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}
	s.logger.Info("Revoked refresh tokens for identity", zap.String("uid", uid))
	return nil
}

// GetIdentity reads the identity record, including any pending profile draft
// still parked in its claims.
func (s *Service) GetIdentity(ctx context.Context, uid string) (*shared.Identity, error) {
	record, err := s.authClient.GetUser(ctx, uid)
	if err != nil {
		if firebaseauth.IsUserNotFound(err) {
			return nil, shared.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("failed to fetch identity %s: %w", uid, err)
	}

	identity := &shared.Identity{
		UID:           record.UID,
		Email:         record.Email,
		EmailVerified: record.EmailVerified,
	}
	if record.CustomClaims != nil {
		if pending, ok := record.CustomClaims[pendingProfileClaim].(map[string]interface{}); ok {
			identity.PendingProfile = pending
		}
	}
	return identity, nil
}

// GetIdentityByEmail is GetIdentity keyed by email, for flows that run before
// the caller holds a subject id.
func (s *Service) GetIdentityByEmail(ctx context.Context, email string) (*shared.Identity, error) {
	record, err := s.authClient.GetUserByEmail(ctx, email)
	if err != nil {
		if firebaseauth.IsUserNotFound(err) {
			return nil, shared.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("failed to fetch identity for %s: %w", email, err)
	}

	identity := &shared.Identity{
		UID:           record.UID,
		Email:         record.Email,
		EmailVerified: record.EmailVerified,
	}
	if record.CustomClaims != nil {
		if pending, ok := record.CustomClaims[pendingProfileClaim].(map[string]interface{}); ok {
			identity.PendingProfile = pending
		}
	}
	return identity, nil
}

// ClearPendingProfile drops the draft claims after materialization so future
// tokens stay small.
func (s *Service) ClearPendingProfile(ctx context.Context, uid string) error {
	if err := s.authClient.SetCustomUserClaims(ctx, uid, nil); err != nil {
		s.logger.Warn("Failed to clear pending profile claims", zap.String("uid", uid), zap.Error(err))
		return fmt.Errorf("failed to clear pending profile: %w", err)
	}
	return nil
}

// SendVerificationEmail generates a fresh verification link pointing back at
// the application's /auth/callback route. Delivery is the provider project's
// email template configuration.
func (s *Service) SendVerificationEmail(ctx context.Context, email string) error {
	settings := &firebaseauth.ActionCodeSettings{URL: s.cfg.VerificationRedirectURL()}
	link, err := s.authClient.EmailVerificationLinkWithSettings(ctx, email, settings)
	if err != nil {
		if firebaseauth.IsUserNotFound(err) {
			return shared.ErrIdentityNotFound
		}
		return fmt.Errorf("failed to generate verification link: %w", err)
	}
	s.logger.Debug("Verification link generated", zap.String("email", email), zap.String("link", link))
	return nil
}

// SendPasswordReset generates a reset link pointing at /auth/reset-password.
func (s *Service) SendPasswordReset(ctx context.Context, email string) error {
	settings := &firebaseauth.ActionCodeSettings{URL: s.cfg.PasswordResetRedirectURL()}
	link, err := s.authClient.PasswordResetLinkWithSettings(ctx, email, settings)
	if err != nil {
		if firebaseauth.IsUserNotFound(err) {
			return shared.ErrIdentityNotFound
		}
		return fmt.Errorf("failed to generate password reset link: %w", err)
	}
	s.logger.Debug("Password reset link generated", zap.String("email", email), zap.String("link", link))
	return nil
}

// VerifyIDToken verifies a provider ID token and returns its subject claims.
func (s *Service) VerifyIDToken(ctx context.Context, idToken string) (*shared.AuthClaims, error) {
	if idToken == "" {
		return nil, fmt.Errorf("ID token must not be empty")
	}

	token, err := s.authClient.VerifyIDToken(ctx, idToken)
	if err != nil {
		s.logger.Warn("Firebase ID token verification failed", zap.Error(err))
		return nil, fmt.Errorf("failed to verify Firebase ID token: %w", err)
	}

	claims := &shared.AuthClaims{UID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		claims.Email = email
	}
	if verified, ok := token.Claims["email_verified"].(bool); ok {
		claims.EmailVerified = verified
	}
	return claims, nil
}
