// File: internal/profile/repository.go
package profile

import (
	"context"
	"errors"
	"strings"

	"mynunny_backend/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrDuplicateIdentity marks a Create that lost the race on the firebase-uid
// unique index. Callers treat it as a benign no-op; any other conflict, such
// as a duplicate email, surfaces as a plain conflict.
var ErrDuplicateIdentity = common.ErrConflict.WithDetails("A profile already exists for this identity.")

// Repository defines the interface for profile data operations.
type Repository interface {
	Create(ctx context.Context, p *Profile) error
	FindByFirebaseUID(ctx context.Context, firebaseUID string) (*Profile, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Profile, error)
	Update(ctx context.Context, p *Profile) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM profile repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) preloader(query *gorm.DB) *gorm.DB {
	return query.Preload("NunnyDetails").Preload("ClientDetails")
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "unique constraint") ||
		strings.Contains(err.Error(), "duplicate key value violates unique constraint") ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Create inserts a new profile row plus its detail row. A duplicate on the
// FirebaseUID unique index surfaces as ErrDuplicateIdentity so the caller can
// treat a racing materialization as a no-op.
func (r *gormRepository) Create(ctx context.Context, p *Profile) error {
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	err := r.db.WithContext(ctx).Create(p).Error
	if err != nil {
		if isUniqueViolation(err) {
			if strings.Contains(err.Error(), "uq_profiles_firebase_uid") ||
				strings.Contains(err.Error(), "firebase_uid") {
				return ErrDuplicateIdentity
			}
			return common.ErrConflict.WithDetails("A profile with this email already exists.")
		}
		return err
	}
	return nil
}

// FindByFirebaseUID retrieves a profile by its provider subject id.
func (r *gormRepository) FindByFirebaseUID(ctx context.Context, firebaseUID string) (*Profile, error) {
	var p Profile
	err := r.preloader(r.db.WithContext(ctx)).
		Where("firebase_uid = ?", firebaseUID).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Profile not found for this identity.")
		}
		return nil, err
	}
	return &p, nil
}

// FindByID retrieves a profile by its row ID.
func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Profile, error) {
	var p Profile
	err := r.preloader(r.db.WithContext(ctx)).
		Where("id = ?", id).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Profile not found with this ID.")
		}
		return nil, err
	}
	return &p, nil
}

// Update saves the profile and its detail row.
func (r *gormRepository) Update(ctx context.Context, p *Profile) error {
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	err := r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(p).Error
	if err != nil {
		if isUniqueViolation(err) {
			return common.ErrConflict.WithDetails("Update failed due to a conflict.")
		}
		return err
	}
	return nil
}
