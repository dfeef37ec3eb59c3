// File: internal/listing/model.go
package listing

import (
	"time"

	"github.com/google/uuid"
)

// NunnyCard is a browsable service-provider entry on the client dashboard.
type NunnyCard struct {
	ID                uuid.UUID `json:"id"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	Email             string    `json:"email"`
	PhoneNumber       string    `json:"phone_number"`
	Region            string    `json:"region"`
	County            string    `json:"county"`
	Services          []string  `json:"services"`
	AgeRange          string    `json:"age_range"`
	Rating            float64   `json:"rating"`
	ReviewCount       int       `json:"review_count"`
	IsVerified        bool      `json:"is_verified"`
	ProfilePictureURL string    `json:"profile_picture_url,omitempty"`
	JoinedAt          time.Time `json:"joined_at"`
}

// ClientSummary is the client snapshot embedded in a service offer.
type ClientSummary struct {
	ID                 uuid.UUID `json:"id"`
	FirstName          string    `json:"first_name"`
	LastName           string    `json:"last_name"`
	Email              string    `json:"email"`
	Region             string    `json:"region"`
	County             string    `json:"county"`
	ServiceDescription string    `json:"service_description"`
	DailyRate          float64   `json:"daily_rate"`
	Rating             float64   `json:"rating"`
	ReviewCount        int       `json:"review_count"`
}

// ServiceOffer is a client's open request shown on the nunny dashboard.
// Offers are seeded; no user action creates or mutates them. Only the expiry
// job flips IsActive.
type ServiceOffer struct {
	ID          uuid.UUID     `json:"id"`
	ClientID    uuid.UUID     `json:"client_id"`
	Client      ClientSummary `json:"client"`
	Description string        `json:"description"`
	DailyRate   float64       `json:"daily_rate"`
	Region      string        `json:"region"`
	County      string        `json:"county"`
	PostedAt    time.Time     `json:"posted_at"`
	IsActive    bool          `json:"is_active"`
}

// NunnySort selects the client-dashboard ordering.
type NunnySort string

const (
	NunnySortRating NunnySort = "rating"
	NunnySortNewest NunnySort = "newest"
	NunnySortName   NunnySort = "name"
)

// OfferSort selects the nunny-dashboard ordering.
type OfferSort string

const (
	OfferSortNewest     OfferSort = "newest"
	OfferSortHighestPay OfferSort = "highest_pay"
	OfferSortRating     OfferSort = "rating"
)

// NunnyQuery is the client dashboard's search/filter/sort input.
type NunnyQuery struct {
	Search  string    `form:"search"`
	Region  string    `form:"region"`
	Service string    `form:"service"`
	SortBy  NunnySort `form:"sort_by"`
}

// OfferQuery is the nunny dashboard's search/filter/sort input.
type OfferQuery struct {
	Search string    `form:"search"`
	Region string    `form:"region"`
	SortBy OfferSort `form:"sort_by"`
}
