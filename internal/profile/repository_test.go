package profile

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"mynunny_backend/internal/common"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDBCounter int

// setupRepositoryTest opens an in-memory SQLite database, migrates the
// profile tables and returns a ready repository.
func setupRepositoryTest(t *testing.T) Repository {
	t.Helper()

	testDBCounter++
	dsn := fmt.Sprintf("file:profile_repo_test_%d?mode=memory&cache=shared", testDBCounter)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "Failed to connect to test database")

	err = db.AutoMigrate(&Profile{}, &NunnyDetails{}, &ClientDetails{})
	require.NoError(t, err, "Failed to migrate test database")

	return NewGORMRepository(db)
}

func seedNunnyProfile(uid, email string) *Profile {
	p := &Profile{
		FirebaseUID: uid,
		Email:       email,
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
		ProfileID:   p.ID,
		PhoneNumber: "+254712345678",
		Services:    []string{"Childcare", "Cleaning"},
		AgeRange:    "25-34",
	}
	return p
}

func TestGORMRepository_CreateAndFind(t *testing.T) {
	repo := setupRepositoryTest(t)
	ctx := context.Background()

	p := seedNunnyProfile("fb-uid-1", "Jane@Example.com")
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.FindByFirebaseUID(ctx, "fb-uid-1")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, "jane@example.com", got.Email, "email should be normalized to lowercase")
	assert.Equal(t, TypeNunny, got.Type)
	require.NotNil(t, got.NunnyDetails, "detail row should be preloaded")
	assert.Equal(t, []string{"Childcare", "Cleaning"}, []string(got.NunnyDetails.Services))
	assert.Nil(t, got.ClientDetails)

	byID, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, got.FirebaseUID, byID.FirebaseUID)
}

func TestGORMRepository_DuplicateFirebaseUIDIsConflict(t *testing.T) {
	repo := setupRepositoryTest(t)
	ctx := context.Background()

	first := seedNunnyProfile("fb-uid-1", "jane@example.com")
	require.NoError(t, repo.Create(ctx, first))

	second := seedNunnyProfile("fb-uid-1", "other@example.com")
	err := repo.Create(ctx, second)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateIdentity),
		"a duplicate subject id must map to the identity sentinel")
}

func TestGORMRepository_DuplicateEmailIsPlainConflict(t *testing.T) {
	repo := setupRepositoryTest(t)
	ctx := context.Background()

	first := seedNunnyProfile("fb-uid-1", "jane@example.com")
	require.NoError(t, repo.Create(ctx, first))

	second := seedNunnyProfile("fb-uid-2", "jane@example.com")
	err := repo.Create(ctx, second)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrDuplicateIdentity),
		"an email collision is a real conflict, not a materialization race")
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, common.ErrConflict.StatusCode, apiErr.StatusCode)
}

func TestGORMRepository_FindMissingIsNotFound(t *testing.T) {
	repo := setupRepositoryTest(t)

	_, err := repo.FindByFirebaseUID(context.Background(), "nobody")
	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, common.ErrNotFound.StatusCode, apiErr.StatusCode)
}

func TestGORMRepository_UpdatePersistsDetailChanges(t *testing.T) {
	repo := setupRepositoryTest(t)
	ctx := context.Background()

	p := seedNunnyProfile("fb-uid-1", "jane@example.com")
	require.NoError(t, repo.Create(ctx, p))

	p.County = "Mombasa"
	p.NunnyDetails.Services = []string{"Cooking"}
	require.NoError(t, repo.Update(ctx, p))

	got, err := repo.FindByFirebaseUID(ctx, "fb-uid-1")
	require.NoError(t, err)
	assert.Equal(t, "Mombasa", got.County)
	assert.Equal(t, []string{"Cooking"}, []string(got.NunnyDetails.Services))
}
