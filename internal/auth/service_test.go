package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"mynunny_backend/internal/common"
	"mynunny_backend/internal/profile"
	"mynunny_backend/internal/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockIdentityProvider is a mock type for shared.IdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) SignUp(ctx context.Context, email, password string, pendingProfile map[string]interface{}) (*shared.Identity, error) {
	args := m.Called(ctx, email, password, pendingProfile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Identity), args.Error(1)
}

func (m *MockIdentityProvider) SignIn(ctx context.Context, email, password string) (*shared.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Session), args.Error(1)
}

func (m *MockIdentityProvider) SignOut(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}

func (m *MockIdentityProvider) GetIdentity(ctx context.Context, uid string) (*shared.Identity, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Identity), args.Error(1)
}

func (m *MockIdentityProvider) GetIdentityByEmail(ctx context.Context, email string) (*shared.Identity, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Identity), args.Error(1)
}

func (m *MockIdentityProvider) ClearPendingProfile(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}

func (m *MockIdentityProvider) SendVerificationEmail(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockIdentityProvider) SendPasswordReset(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

// MockProfileService is a mock type for profile.Service
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) Materialize(ctx context.Context, firebaseUID string, draft *profile.Draft) (*profile.Profile, error) {
	args := m.Called(ctx, firebaseUID, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.Profile), args.Error(1)
}

func (m *MockProfileService) GetByFirebaseUID(ctx context.Context, firebaseUID string) (*profile.Profile, error) {
	args := m.Called(ctx, firebaseUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.Profile), args.Error(1)
}

func (m *MockProfileService) GetByID(ctx context.Context, id uuid.UUID) (*profile.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.Profile), args.Error(1)
}

func (m *MockProfileService) Update(ctx context.Context, firebaseUID string, req profile.UpdateRequest) (*profile.Profile, error) {
	args := m.Called(ctx, firebaseUID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.Profile), args.Error(1)
}

func testDraft() profile.Draft {
	return profile.Draft{
		Type:        profile.TypeNunny,
		Email:       "jane@example.com",
		FirstName:   "Jane",
		LastName:    "Wanjiku",
		Gender:      profile.GenderFemale,
		IDNumber:    "12345678",
		Region:      "Nairobi",
		County:      "Nairobi",
		PhoneNumber: "+254712345678",
		Services:    []string{"Childcare"},
		AgeRange:    "25-34",
	}
}

func testProfile(uid string) *profile.Profile {
	p := &profile.Profile{
		FirebaseUID: uid,
		Email:       "jane@example.com",
		FirstName:   "Jane",
		LastName:    "Wanjiku",
		Type:        profile.TypeNunny,
	}
	p.ID = uuid.New()
	return p
}

func newTestWorkflow(provider *MockIdentityProvider, profiles *MockProfileService) *Workflow {
	logger := zap.NewNop()
	tracker := NewStateTracker(profiles.GetByFirebaseUID, logger)
	return NewWorkflow(provider, profiles, tracker, logger)
}

func TestWorkflow_Register_DefersUnverifiedIdentity(t *testing.T) {
	provider := new(MockIdentityProvider)
	profiles := new(MockProfileService)
	wf := newTestWorkflow(provider, profiles)
	ctx := context.Background()

	provider.On("SignUp", ctx, "jane@example.com", "secret99", mock.Anything).
		Return(&shared.Identity{UID: "fb-1", Email: "jane@example.com", EmailVerified: false}, nil).Once()

	result := wf.Register(ctx, testDraft(), "secret99")

	assert.True(t, result.Success)
	assert.True(t, result.RequiresVerification)
	assert.Empty(t, result.Error)
	profiles.AssertNotCalled(t, "Materialize")
	provider.AssertExpectations(t)
}

func TestWorkflow_Register_MaterializesPreVerifiedIdentity(t *testing.T) {
	provider := new(MockIdentityProvider)
	profiles := new(MockProfileService)
	wf := newTestWorkflow(provider, profiles)
	ctx := context.Background()

	provider.On("SignUp", ctx, "jane@example.com", "secret99", mock.Anything).
		Return(&shared.Identity{UID: "fb-1", Email: "jane@example.com", EmailVerified: true}, nil).Once()
	profiles.On("Materialize", ctx, "fb-1", mock.AnythingOfType("*profile.Draft")).
		Return(testProfile("fb-1"), nil).Once()
	provider.On("ClearPendingProfile", ctx, "fb-1").Return(nil).Once()

	result := wf.Register(ctx, testDraft(), "secret99")

	assert.True(t, result.Success)
	assert.False(t, result.RequiresVerification)
	provider.AssertExpectations(t)
	profiles.AssertExpectations(t)
}

func TestWorkflow_Register_SurfacesProviderRejectionVerbatim(t *testing.T) {
	provider := new(MockIdentityProvider)
	profiles := new(MockProfileService)
	wf := newTestWorkflow(provider, profiles)
	ctx := context.Background()

	provider.On("SignUp", ctx, "jane@example.com", "secret99", mock.Anything).
		Return(nil, shared.NewProviderError("User with this email already exists.")).Once()

	result := wf.Register(ctx, testDraft(), "secret99")

	assert.False(t, result.Success)
	assert.Equal(t, "User with this email already exists.", result.Error)
}

func TestWorkflow_Register_CollapsesTransportErrors(t *testing.T) {
	provider := new(MockIdentityProvider)
	profiles := new(MockProfileService)
	wf := newTestWorkflow(provider, profiles)
	ctx := context.Background()

	provider.On("SignUp", ctx, "jane@example.com", "secret99", mock.Anything).
		Return(nil, errors.New("dial tcp: connection refused")).Once()

	result := wf.Register(ctx, testDraft(), "secret99")

	assert.False(t, result.Success)
	assert.Equal(t, genericErrorMessage, result.Error)
}

func TestWorkflow_Login_RejectsUnverifiedAndRevokesSession(t *testing.T) {
	provider := new(MockIdentityProvider)
	profiles := new(MockProfileService)
	wf := newTestWorkflow(provider, profiles)
	ctx := context.Background()

	provider.On("SignIn", ctx, "jane@example.com", "secret99").
		Return(&shared.Session{UID: "fb-1", IDToken: "tok", ExpiresIn: time.Hour}, nil).Once()
	provider.On("GetIdentity", ctx, "fb-1").
		Return(&shared.Identity{UID: "fb-1", Email: "jane@example.com", EmailVerified: false}, nil).Once()
	provider.On("SignOut", ctx, "fb-1").Return(nil).Once()

	result := wf.Login(ctx, "jane@example.com", "secret99")

	assert.False(t, result.Success)
	assert.Equal(t, unverifiedLoginMessage, result.Error)
	assert.Nil(t, result.Session, "no session material may survive an unverified login")
	assert.Equal(t, PhaseUnauthenticated, wf.Tracker().Snapshot().Phase)
	provider.AssertExpectations(t)
}

func TestWorkflow_Login_MaterializesDeferredProfile(t *testing.T) {
	provider := new(MockIdentityProvider)
	profiles := new(MockProfileService)
	wf := newTestWorkflow(provider, profiles)
	ctx := context.Background()

	draft := testDraft()
	claims, err := draft.ToClaims()
	require.NoError(t, err)
	identity := &shared.Identity{UID: "fb-1", Email: "jane@example.com", EmailVerified: true, PendingProfile: claims}
	stored := testProfile("fb-1")

	provider.On("SignIn", ctx, "jane@example.com", "secret99").
		Return(&shared.Session{UID: "fb-1", IDToken: "tok", RefreshToken: "ref", ExpiresIn: time.Hour}, nil).Once()
	provider.On("GetIdentity", ctx, "fb-1").Return(identity, nil).Once()
	profiles.On("GetByFirebaseUID", ctx, "fb-1").
		Return(nil, common.ErrNotFound.WithDetails("Profile not found for this identity.")).Once()
	profiles.On("Materialize", ctx, "fb-1", mock.AnythingOfType("*profile.Draft")).
		Return(stored, nil).Once()
	provider.On("ClearPendingProfile", ctx, "fb-1").Return(nil).Once()
	// tracker fetch after transition
	profiles.On("GetByFirebaseUID", ctx, "fb-1").Return(stored, nil).Once()

	result := wf.Login(ctx, "jane@example.com", "secret99")

	assert.True(t, result.Success)
	require.NotNil(t, result.Session)
	assert.Equal(t, "tok", result.Session.IDToken)
	require.NotNil(t, result.Profile)
	assert.Equal(t, profile.TypeNunny, result.Profile.Type)
	assert.Equal(t, PhaseAuthenticated, wf.Tracker().Snapshot().Phase)
	provider.AssertExpectations(t)
	profiles.AssertExpectations(t)
}

func TestWorkflow_Login_ExistingProfileSkipsMaterialization(t *testing.T) {
	provider := new(MockIdentityProvider)
	profiles := new(MockProfileService)
	wf := newTestWorkflow(provider, profiles)
	ctx := context.Background()

	identity := &shared.Identity{UID: "fb-1", Email: "jane@example.com", EmailVerified: true}
	stored := testProfile("fb-1")

	provider.On("SignIn", ctx, "jane@example.com", "secret99").
		Return(&shared.Session{UID: "fb-1", IDToken: "tok", ExpiresIn: time.Hour}, nil).Once()
	provider.On("GetIdentity", ctx, "fb-1").Return(identity, nil).Once()
	profiles.On("GetByFirebaseUID", ctx, "fb-1").Return(stored, nil)

	result := wf.Login(ctx, "jane@example.com", "secret99")

	assert.True(t, result.Success)
	profiles.AssertNotCalled(t, "Materialize")
	provider.AssertNotCalled(t, "ClearPendingProfile")
}

func TestWorkflow_Login_SurfacesBadCredentialsVerbatim(t *testing.T) {
	provider := new(MockIdentityProvider)
	profiles := new(MockProfileService)
	wf := newTestWorkflow(provider, profiles)
	ctx := context.Background()

	provider.On("SignIn", ctx, "jane@example.com", "wrong").
		Return(nil, shared.NewProviderError("INVALID_LOGIN_CREDENTIALS")).Once()

	result := wf.Login(ctx, "jane@example.com", "wrong")

	assert.False(t, result.Success)
	assert.Equal(t, "INVALID_LOGIN_CREDENTIALS", result.Error)
}

func TestWorkflow_Logout_ClearsStateEvenOnProviderFailure(t *testing.T) {
	provider := new(MockIdentityProvider)
	profiles := new(MockProfileService)
	wf := newTestWorkflow(provider, profiles)
	ctx := context.Background()

	stored := testProfile("fb-1")
	profiles.On("GetByFirebaseUID", ctx, "fb-1").Return(stored, nil)
	wf.Tracker().HandleAuthChange(ctx, &shared.Identity{UID: "fb-1", EmailVerified: true})
	require.Equal(t, PhaseAuthenticated, wf.Tracker().Snapshot().Phase)

	provider.On("SignOut", ctx, "fb-1").Return(errors.New("provider unreachable")).Once()

	result := wf.Logout(ctx, "fb-1")

	assert.False(t, result.Success)
	assert.Equal(t, PhaseUnauthenticated, wf.Tracker().Snapshot().Phase,
		"local state must clear even when the provider call fails")
}

func TestWorkflow_ResetPassword_NeverLeaksAccountExistence(t *testing.T) {
	provider := new(MockIdentityProvider)
	profiles := new(MockProfileService)
	wf := newTestWorkflow(provider, profiles)
	ctx := context.Background()

	provider.On("SendPasswordReset", ctx, "ghost@example.com").
		Return(shared.ErrIdentityNotFound).Once()

	result := wf.ResetPassword(ctx, "ghost@example.com")

	assert.True(t, result.Success)
	assert.Empty(t, result.Error)
}

func TestWorkflow_SendVerificationEmail_Passthrough(t *testing.T) {
	provider := new(MockIdentityProvider)
	profiles := new(MockProfileService)
	wf := newTestWorkflow(provider, profiles)
	ctx := context.Background()

	provider.On("GetIdentityByEmail", ctx, "jane@example.com").
		Return(&shared.Identity{UID: "fb-1", Email: "jane@example.com", EmailVerified: false}, nil).Once()
	provider.On("SendVerificationEmail", ctx, "jane@example.com").Return(nil).Once()

	result := wf.SendVerificationEmail(ctx, "jane@example.com")
	assert.True(t, result.Success)
	provider.AssertExpectations(t)
}

func TestWorkflow_SendVerificationEmail_RefusesVerifiedIdentity(t *testing.T) {
	provider := new(MockIdentityProvider)
	profiles := new(MockProfileService)
	wf := newTestWorkflow(provider, profiles)
	ctx := context.Background()

	provider.On("GetIdentityByEmail", ctx, "jane@example.com").
		Return(&shared.Identity{UID: "fb-1", Email: "jane@example.com", EmailVerified: true}, nil).Once()

	result := wf.SendVerificationEmail(ctx, "jane@example.com")
	assert.False(t, result.Success)
	assert.Equal(t, "Email is already verified.", result.Error)
	provider.AssertNotCalled(t, "SendVerificationEmail", mock.Anything, mock.Anything)
}

func TestWorkflow_UpdateProfile_RequiresSubject(t *testing.T) {
	provider := new(MockIdentityProvider)
	profiles := new(MockProfileService)
	wf := newTestWorkflow(provider, profiles)

	_, err := wf.UpdateProfile(context.Background(), "", profile.UpdateRequest{})

	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, common.ErrUnauthorized.StatusCode, apiErr.StatusCode)
	assert.Equal(t, "No user logged in", apiErr.Details)
}
