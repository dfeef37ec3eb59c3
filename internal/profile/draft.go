// File: internal/profile/draft.go
package profile

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Draft is a registration draft: everything a profile row needs, before the
// identity it belongs to is confirmed. It rides to the provider inside the
// identity's opaque metadata bag and comes back out at first verified login.
type Draft struct {
	Type              Type     `json:"type" binding:"required,oneof=nunny client"`
	Email             string   `json:"email" binding:"required,email"`
	FirstName         string   `json:"first_name" binding:"required,max=100"`
	LastName          string   `json:"last_name" binding:"required,max=100"`
	Gender            Gender   `json:"gender" binding:"required,oneof=male female other"`
	IDNumber          string   `json:"id_number" binding:"required,max=20"`
	Region            string   `json:"region" binding:"required"`
	County            string   `json:"county" binding:"required"`
	ProfilePictureURL *string  `json:"profile_picture_url,omitempty"`
	IDImageURL        *string  `json:"id_image_url,omitempty"`

	// Nunny group
	PhoneNumber string   `json:"phone_number,omitempty"`
	Services    []string `json:"services,omitempty"`
	AgeRange    string   `json:"age_range,omitempty"`

	// Client group
	ServiceDescription string  `json:"service_description,omitempty"`
	DailyRate          float64 `json:"daily_rate,omitempty"`
}

// Validate checks the draft's discriminator group is internally consistent.
// Cross-group contamination is rejected here rather than silently stored.
func (d *Draft) Validate() error {
	if strings.TrimSpace(d.Email) == "" {
		return fmt.Errorf("draft email must not be empty")
	}
	switch d.Type {
	case TypeNunny:
		if len(d.Services) == 0 {
			return fmt.Errorf("nunny draft requires at least one service")
		}
		if d.AgeRange == "" {
			return fmt.Errorf("nunny draft requires an age range")
		}
		if d.ServiceDescription != "" || d.DailyRate != 0 {
			return fmt.Errorf("nunny draft must not carry client fields")
		}
	case TypeClient:
		if strings.TrimSpace(d.ServiceDescription) == "" {
			return fmt.Errorf("client draft requires a service description")
		}
		if d.DailyRate <= 0 {
			return fmt.Errorf("client draft requires a positive daily rate")
		}
		if len(d.Services) > 0 || d.AgeRange != "" || d.PhoneNumber != "" {
			return fmt.Errorf("client draft must not carry nunny fields")
		}
	default:
		return fmt.Errorf("unknown profile type %q", d.Type)
	}
	return nil
}

// ToClaims serializes the draft into the JSON-compatible map shape the
// provider accepts as custom claims.
func (d *Draft) ToClaims() (map[string]interface{}, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to encode draft: %w", err)
	}
	var claims map[string]interface{}
	if err := json.Unmarshal(raw, &claims); err != nil {
		return nil, fmt.Errorf("failed to shape draft claims: %w", err)
	}
	return claims, nil
}

// DraftFromClaims is the inverse of ToClaims, used when materializing a
// deferred profile from the identity's metadata bag.
func DraftFromClaims(claims map[string]interface{}) (*Draft, error) {
	if claims == nil {
		return nil, fmt.Errorf("no pending profile attached to identity")
	}
	raw, err := json.Marshal(claims)
	if err != nil {
		return nil, fmt.Errorf("failed to encode pending profile claims: %w", err)
	}
	var d Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("failed to decode pending profile: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("pending profile is not a valid draft: %w", err)
	}
	return &d, nil
}

// UpdateRequest is a partial profile update. Nil fields are left unchanged.
// Fields belonging to the other discriminator group are silently ignored by
// Service.Update, never mis-applied.
type UpdateRequest struct {
	FirstName         *string `json:"first_name,omitempty" binding:"omitempty,max=100"`
	LastName          *string `json:"last_name,omitempty" binding:"omitempty,max=100"`
	Gender            *Gender `json:"gender,omitempty" binding:"omitempty,oneof=male female other"`
	Region            *string `json:"region,omitempty"`
	County            *string `json:"county,omitempty"`
	ProfilePictureURL *string `json:"profile_picture_url,omitempty"`

	// Nunny group
	PhoneNumber *string  `json:"phone_number,omitempty"`
	Services    []string `json:"services,omitempty"`
	AgeRange    *string  `json:"age_range,omitempty"`

	// Client group
	ServiceDescription *string  `json:"service_description,omitempty"`
	DailyRate          *float64 `json:"daily_rate,omitempty" binding:"omitempty,gt=0"`
}
