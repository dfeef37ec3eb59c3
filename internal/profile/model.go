// File: internal/profile/model.go
package profile

import (
	"time"

	"mynunny_backend/internal/common"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Type is the profile discriminator. It is immutable after creation and
// selects which detail row (NunnyDetails or ClientDetails) is populated.
type Type string

const (
	TypeNunny  Type = "nunny"
	TypeClient Type = "client"
)

// Gender enumeration as captured at registration.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Profile is the application-level user record, one-to-one with a provider
// identity via FirebaseUID. The unique index on FirebaseUID is the guard that
// makes deferred materialization idempotent: a racing duplicate insert is
// rejected by the store, not coordinated in application logic.
type Profile struct {
	common.BaseModel
	FirebaseUID       string   `gorm:"type:varchar(128);not null;uniqueIndex:uq_profiles_firebase_uid"`
	Email             string   `gorm:"type:varchar(255);not null;uniqueIndex"`
	FirstName         string   `gorm:"type:varchar(100);not null"`
	LastName          string   `gorm:"type:varchar(100);not null"`
	Gender            Gender   `gorm:"type:varchar(10);not null"`
	IDNumber          string   `gorm:"type:varchar(20);not null"`
	Region            string   `gorm:"type:varchar(50);not null"`
	County            string   `gorm:"type:varchar(50);not null"`
	ProfilePictureURL *string  `gorm:"type:text"`
	IDImageURL        *string  `gorm:"type:text"`
	IsVerified        bool     `gorm:"not null;default:false"`
	Rating            *float64 `gorm:"type:decimal(3,2)"`
	ReviewCount       *int

	Type Type `gorm:"column:profile_type;type:varchar(10);not null"`

	NunnyDetails  *NunnyDetails  `gorm:"foreignKey:ProfileID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	ClientDetails *ClientDetails `gorm:"foreignKey:ProfileID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (Profile) TableName() string {
	return "profiles"
}

// NunnyDetails holds the service-provider field group.
type NunnyDetails struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ProfileID   uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	PhoneNumber string         `gorm:"type:varchar(20);not null"`
	Services    pq.StringArray `gorm:"type:text[];not null"`
	AgeRange    string         `gorm:"type:varchar(10);not null"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
}

func (NunnyDetails) TableName() string {
	return "nunny_details"
}

func (d *NunnyDetails) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// ClientDetails holds the service-requester field group.
type ClientDetails struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProfileID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	ServiceDescription string    `gorm:"type:text;not null"`
	DailyRate          float64   `gorm:"type:decimal(10,2);not null"`
	CreatedAt          time.Time `gorm:"autoCreateTime"`
}

func (ClientDetails) TableName() string {
	return "client_details"
}

func (d *ClientDetails) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// --- DTOs ---

// Response is the profile shape sent in API responses. Only the detail group
// matching the discriminator is ever populated.
type Response struct {
	ID                uuid.UUID `json:"id"`
	Type              Type      `json:"type"`
	Email             string    `json:"email"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	Gender            Gender    `json:"gender"`
	IDNumber          string    `json:"id_number"`
	Region            string    `json:"region"`
	County            string    `json:"county"`
	ProfilePictureURL *string   `json:"profile_picture_url,omitempty"`
	IDImageURL        *string   `json:"id_image_url,omitempty"`
	IsVerified        bool      `json:"is_verified"`
	Rating            *float64  `json:"rating,omitempty"`
	ReviewCount       *int      `json:"review_count,omitempty"`
	CreatedAt         time.Time `json:"created_at"`

	PhoneNumber string   `json:"phone_number,omitempty"`
	Services    []string `json:"services,omitempty"`
	AgeRange    string   `json:"age_range,omitempty"`

	ServiceDescription string  `json:"service_description,omitempty"`
	DailyRate          float64 `json:"daily_rate,omitempty"`
}

// ToResponse converts a Profile to its API response shape.
func ToResponse(p *Profile) Response {
	resp := Response{
		ID:                p.ID,
		Type:              p.Type,
		Email:             p.Email,
		FirstName:         p.FirstName,
		LastName:          p.LastName,
		Gender:            p.Gender,
		IDNumber:          p.IDNumber,
		Region:            p.Region,
		County:            p.County,
		ProfilePictureURL: p.ProfilePictureURL,
		IDImageURL:        p.IDImageURL,
		IsVerified:        p.IsVerified,
		Rating:            p.Rating,
		ReviewCount:       p.ReviewCount,
		CreatedAt:         p.CreatedAt,
	}
	switch p.Type {
	case TypeNunny:
		if p.NunnyDetails != nil {
			resp.PhoneNumber = p.NunnyDetails.PhoneNumber
			resp.Services = p.NunnyDetails.Services
			resp.AgeRange = p.NunnyDetails.AgeRange
		}
	case TypeClient:
		if p.ClientDetails != nil {
			resp.ServiceDescription = p.ClientDetails.ServiceDescription
			resp.DailyRate = p.ClientDetails.DailyRate
		}
	}
	return resp
}
