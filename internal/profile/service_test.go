package profile

import (
	"context"
	"errors"
	"testing"

	"mynunny_backend/internal/common"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockProfileRepository is a mock type for profile.Repository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Create(ctx context.Context, p *Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProfileRepository) FindByFirebaseUID(ctx context.Context, firebaseUID string) (*Profile, error) {
	args := m.Called(ctx, firebaseUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Profile), args.Error(1)
}

func (m *MockProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Profile), args.Error(1)
}

func (m *MockProfileRepository) Update(ctx context.Context, p *Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func nunnyDraft() *Draft {
	return &Draft{
		Type:        TypeNunny,
		Email:       "jane@example.com",
		FirstName:   "Jane",
		LastName:    "Wanjiku",
		Gender:      GenderFemale,
		IDNumber:    "12345678",
		Region:      "Nairobi",
		County:      "Nairobi",
		PhoneNumber: "+254712345678",
		Services:    []string{"Childcare", "Cleaning"},
		AgeRange:    "25-34",
	}
}

func storedNunny(uid string) *Profile {
	p := &Profile{
		FirebaseUID: uid,
		Email:       "jane@example.com",
		FirstName:   "Jane",
		LastName:    "Wanjiku",
		Gender:      GenderFemale,
		IDNumber:    "12345678",
		Region:      "Nairobi",
		County:      "Nairobi",
		Type:        TypeNunny,
	}
	p.ID = uuid.New()
	p.NunnyDetails = &NunnyDetails{
		ID:          uuid.New(),
		ProfileID:   p.ID,
		PhoneNumber: "+254712345678",
		Services:    []string{"Childcare", "Cleaning"},
		AgeRange:    "25-34",
	}
	return p
}

func TestProfileService_Materialize_CreatesRow(t *testing.T) {
	logger := zap.NewNop()
	mockRepo := new(MockProfileRepository)
	svc := NewService(mockRepo, logger)
	ctx := context.Background()

	stored := storedNunny("fb-uid-1")
	mockRepo.On("Create", ctx, mock.AnythingOfType("*profile.Profile")).Return(nil).Once()
	mockRepo.On("FindByFirebaseUID", ctx, "fb-uid-1").Return(stored, nil).Once()

	p, err := svc.Materialize(ctx, "fb-uid-1", nunnyDraft())

	assert.NoError(t, err)
	assert.Equal(t, TypeNunny, p.Type)
	assert.NotNil(t, p.NunnyDetails)
	assert.Nil(t, p.ClientDetails)
	mockRepo.AssertExpectations(t)
}

func TestProfileService_Materialize_DuplicateIsNoOp(t *testing.T) {
	logger := zap.NewNop()
	mockRepo := new(MockProfileRepository)
	svc := NewService(mockRepo, logger)
	ctx := context.Background()

	existing := storedNunny("fb-uid-1")
	mockRepo.On("Create", ctx, mock.AnythingOfType("*profile.Profile")).
		Return(ErrDuplicateIdentity).Once()
	mockRepo.On("FindByFirebaseUID", ctx, "fb-uid-1").Return(existing, nil).Once()

	p, err := svc.Materialize(ctx, "fb-uid-1", nunnyDraft())

	assert.NoError(t, err)
	assert.Equal(t, existing.ID, p.ID)
	mockRepo.AssertExpectations(t)
}

func TestProfileService_Materialize_EmailConflictIsNotANoOp(t *testing.T) {
	logger := zap.NewNop()
	mockRepo := new(MockProfileRepository)
	svc := NewService(mockRepo, logger)
	ctx := context.Background()

	mockRepo.On("Create", ctx, mock.AnythingOfType("*profile.Profile")).
		Return(common.ErrConflict.WithDetails("A profile with this email already exists.")).Once()

	p, err := svc.Materialize(ctx, "fb-uid-1", nunnyDraft())

	require.Error(t, err)
	assert.Nil(t, p)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, common.ErrConflict.StatusCode, apiErr.StatusCode)
	mockRepo.AssertNotCalled(t, "FindByFirebaseUID", mock.Anything, mock.Anything)
}

func TestProfileService_Materialize_RepoErrorSurfaces(t *testing.T) {
	logger := zap.NewNop()
	mockRepo := new(MockProfileRepository)
	svc := NewService(mockRepo, logger)
	ctx := context.Background()

	mockRepo.On("Create", ctx, mock.AnythingOfType("*profile.Profile")).
		Return(errors.New("connection refused")).Once()

	p, err := svc.Materialize(ctx, "fb-uid-1", nunnyDraft())

	assert.Error(t, err)
	assert.Nil(t, p)
	mockRepo.AssertExpectations(t)
}

func TestProfileService_Materialize_RejectsContaminatedDraft(t *testing.T) {
	logger := zap.NewNop()
	mockRepo := new(MockProfileRepository)
	svc := NewService(mockRepo, logger)

	d := nunnyDraft()
	d.DailyRate = 1500 // client field on a nunny draft

	p, err := svc.Materialize(context.Background(), "fb-uid-1", d)

	assert.Error(t, err)
	assert.Nil(t, p)
	apiErr, ok := common.IsAPIError(err)
	assert.True(t, ok)
	assert.Equal(t, common.ErrUnprocessableEntity.StatusCode, apiErr.StatusCode)
	mockRepo.AssertNotCalled(t, "Create")
}

func TestProfileService_Update_IgnoresOtherGroupFields(t *testing.T) {
	logger := zap.NewNop()
	mockRepo := new(MockProfileRepository)
	svc := NewService(mockRepo, logger)
	ctx := context.Background()

	stored := storedNunny("fb-uid-1")
	rate := 2500.0
	desc := "Need a cleaner"
	newCounty := "Mombasa"
	req := UpdateRequest{
		County:             &newCounty,
		DailyRate:          &rate, // belongs to client group, must be ignored
		ServiceDescription: &desc,
	}

	mockRepo.On("FindByFirebaseUID", ctx, "fb-uid-1").Return(stored, nil).Twice()
	mockRepo.On("Update", ctx, mock.MatchedBy(func(p *Profile) bool {
		return p.County == "Mombasa" && p.ClientDetails == nil
	})).Return(nil).Once()

	p, err := svc.Update(ctx, "fb-uid-1", req)

	assert.NoError(t, err)
	assert.Equal(t, TypeNunny, p.Type)
	assert.Nil(t, p.ClientDetails)
	mockRepo.AssertExpectations(t)
}

func TestProfileService_Update_MergesOwnGroupFields(t *testing.T) {
	logger := zap.NewNop()
	mockRepo := new(MockProfileRepository)
	svc := NewService(mockRepo, logger)
	ctx := context.Background()

	stored := storedNunny("fb-uid-1")
	phone := "0722000111"
	req := UpdateRequest{
		PhoneNumber: &phone,
		Services:    []string{"Cooking"},
	}

	mockRepo.On("FindByFirebaseUID", ctx, "fb-uid-1").Return(stored, nil).Twice()
	mockRepo.On("Update", ctx, mock.MatchedBy(func(p *Profile) bool {
		return p.NunnyDetails.PhoneNumber == "0722000111" &&
			len(p.NunnyDetails.Services) == 1 &&
			p.NunnyDetails.Services[0] == "Cooking"
	})).Return(nil).Once()

	_, err := svc.Update(ctx, "fb-uid-1", req)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestProfileService_Update_NotFound(t *testing.T) {
	logger := zap.NewNop()
	mockRepo := new(MockProfileRepository)
	svc := NewService(mockRepo, logger)
	ctx := context.Background()

	mockRepo.On("FindByFirebaseUID", ctx, "ghost-uid").
		Return(nil, common.ErrNotFound.WithDetails("Profile not found for this identity.")).Once()

	p, err := svc.Update(ctx, "ghost-uid", UpdateRequest{})

	assert.Error(t, err)
	assert.Nil(t, p)
	mockRepo.AssertNotCalled(t, "Update")
}
