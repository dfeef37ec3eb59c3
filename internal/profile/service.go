// File: internal/profile/service.go
package profile

import (
	"context"
	"errors"
	"fmt"

	"mynunny_backend/internal/common"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the profile business logic consumed by the auth workflow
// and the HTTP handlers.
type Service interface {
	Materialize(ctx context.Context, firebaseUID string, draft *Draft) (*Profile, error)
	GetByFirebaseUID(ctx context.Context, firebaseUID string) (*Profile, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Profile, error)
	Update(ctx context.Context, firebaseUID string, req UpdateRequest) (*Profile, error)
}

// ServiceImplementation implements the profile Service interface.
type ServiceImplementation struct {
	repo   Repository
	logger *zap.Logger
}

var _ Service = (*ServiceImplementation)(nil)

// NewService creates a new profile service.
func NewService(repo Repository, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{repo: repo, logger: logger}
}

// Materialize writes the profile row for a confirmed identity from a
// registration draft. It is idempotent under retry: a uniqueness violation on
// the FirebaseUID index means another materialization already won, so the
// existing row is returned instead of an error.
func (s *ServiceImplementation) Materialize(ctx context.Context, firebaseUID string, draft *Draft) (*Profile, error) {
	if err := draft.Validate(); err != nil {
		return nil, common.ErrUnprocessableEntity.WithDetails(err.Error())
	}

	p := &Profile{
		FirebaseUID:       firebaseUID,
		Email:             draft.Email,
		FirstName:         draft.FirstName,
		LastName:          draft.LastName,
		Gender:            draft.Gender,
		IDNumber:          draft.IDNumber,
		Region:            draft.Region,
		County:            draft.County,
		ProfilePictureURL: draft.ProfilePictureURL,
		IDImageURL:        draft.IDImageURL,
		Type:              draft.Type,
	}
	p.ID = uuid.New()

	switch draft.Type {
	case TypeNunny:
		p.NunnyDetails = &NunnyDetails{
			ProfileID:   p.ID,
			PhoneNumber: draft.PhoneNumber,
			Services:    draft.Services,
			AgeRange:    draft.AgeRange,
		}
	case TypeClient:
		p.ClientDetails = &ClientDetails{
			ProfileID:          p.ID,
			ServiceDescription: draft.ServiceDescription,
			DailyRate:          draft.DailyRate,
		}
	}

	if err := s.repo.Create(ctx, p); err != nil {
		if errors.Is(err, ErrDuplicateIdentity) {
			// Another login materialized this profile first. Benign.
			s.logger.Info("Profile already materialized, treating duplicate insert as no-op",
				zap.String("firebaseUID", firebaseUID))
			return s.repo.FindByFirebaseUID(ctx, firebaseUID)
		}
		s.logger.Error("Failed to materialize profile", zap.Error(err), zap.String("firebaseUID", firebaseUID))
		if _, ok := common.IsAPIError(err); ok {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	s.logger.Info("Profile materialized",
		zap.String("firebaseUID", firebaseUID),
		zap.String("profileID", p.ID.String()),
		zap.String("type", string(p.Type)))
	return s.repo.FindByFirebaseUID(ctx, firebaseUID)
}

// GetByFirebaseUID fetches the profile for a provider subject id.
func (s *ServiceImplementation) GetByFirebaseUID(ctx context.Context, firebaseUID string) (*Profile, error) {
	p, err := s.repo.FindByFirebaseUID(ctx, firebaseUID)
	if err != nil {
		if _, ok := common.IsAPIError(err); !ok {
			s.logger.Error("Error fetching profile by firebase UID", zap.Error(err),
				zap.String("firebaseUID", firebaseUID))
		}
		return nil, err
	}
	return p, nil
}

// GetByID fetches a profile by row ID.
func (s *ServiceImplementation) GetByID(ctx context.Context, id uuid.UUID) (*Profile, error) {
	return s.repo.FindByID(ctx, id)
}

// Update applies a partial update to the profile. Common fields always merge;
// discriminator-specific fields merge only when they belong to the profile's
// own group, so a payload carrying the other group's fields leaves the row
// untouched. The returned profile is re-fetched from the store so callers see
// the authoritative state, not the optimistic merge.
func (s *ServiceImplementation) Update(ctx context.Context, firebaseUID string, req UpdateRequest) (*Profile, error) {
	p, err := s.repo.FindByFirebaseUID(ctx, firebaseUID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		p.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		p.LastName = *req.LastName
	}
	if req.Gender != nil {
		p.Gender = *req.Gender
	}
	if req.Region != nil {
		p.Region = *req.Region
	}
	if req.County != nil {
		p.County = *req.County
	}
	if req.ProfilePictureURL != nil {
		p.ProfilePictureURL = req.ProfilePictureURL
	}

	switch p.Type {
	case TypeNunny:
		if p.NunnyDetails != nil {
			if req.PhoneNumber != nil {
				p.NunnyDetails.PhoneNumber = *req.PhoneNumber
			}
			if req.Services != nil {
				p.NunnyDetails.Services = req.Services
			}
			if req.AgeRange != nil {
				p.NunnyDetails.AgeRange = *req.AgeRange
			}
		}
	case TypeClient:
		if p.ClientDetails != nil {
			if req.ServiceDescription != nil {
				p.ClientDetails.ServiceDescription = *req.ServiceDescription
			}
			if req.DailyRate != nil {
				p.ClientDetails.DailyRate = *req.DailyRate
			}
		}
	}

	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.Error("Failed to update profile", zap.Error(err), zap.String("firebaseUID", firebaseUID))
		return nil, err
	}

	return s.repo.FindByFirebaseUID(ctx, firebaseUID)
}
