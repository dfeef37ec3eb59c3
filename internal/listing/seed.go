// File: internal/listing/seed.go
package listing

import (
	"time"

	"github.com/google/uuid"
)

// Seed catalog. The dashboards browse these fixed collections; nothing in
// the application writes to them except the expiry job's IsActive flip.

// SeedNunnies returns the browsable provider catalog with join dates
// computed relative to now.
func SeedNunnies(now time.Time) []NunnyCard {
	day := 24 * time.Hour
	return []NunnyCard{
		{
			ID:                uuid.MustParse("a1b4df25-0001-4c01-9e5a-0d41f4b60001"),
			FirstName:         "Grace",
			LastName:          "Wanjiku",
			Email:             "grace@example.com",
			PhoneNumber:       "+254712345678",
			Region:            "Nairobi",
			County:            "Nairobi",
			Services:          []string{"Babysitter", "House Cleaning", "Cooking"},
			AgeRange:          "26-35",
			Rating:            4.8,
			ReviewCount:       24,
			IsVerified:        true,
			ProfilePictureURL: "https://images.pexels.com/photos/1239291/pexels-photo-1239291.jpeg",
			JoinedAt:          now.Add(-30 * day),
		},
		{
			ID:                uuid.MustParse("a1b4df25-0002-4c01-9e5a-0d41f4b60002"),
			FirstName:         "Mary",
			LastName:          "Akinyi",
			Email:             "mary@example.com",
			PhoneNumber:       "+254723456789",
			Region:            "Central",
			County:            "Kiambu",
			Services:          []string{"House Cleaning", "Laundry", "General Cleaning"},
			AgeRange:          "36-45",
			Rating:            4.9,
			ReviewCount:       18,
			IsVerified:        true,
			ProfilePictureURL: "https://images.pexels.com/photos/1181686/pexels-photo-1181686.jpeg",
			JoinedAt:          now.Add(-15 * day),
		},
		{
			ID:                uuid.MustParse("a1b4df25-0003-4c01-9e5a-0d41f4b60003"),
			FirstName:         "Jane",
			LastName:          "Muthoni",
			Email:             "jane@example.com",
			PhoneNumber:       "+254734567890",
			Region:            "Nairobi",
			County:            "Nairobi",
			Services:          []string{"Babysitter", "Elderly Care", "Cooking"},
			AgeRange:          "26-35",
			Rating:            4.7,
			ReviewCount:       31,
			IsVerified:        true,
			ProfilePictureURL: "https://images.pexels.com/photos/1181424/pexels-photo-1181424.jpeg",
			JoinedAt:          now.Add(-45 * day),
		},
		{
			ID:                uuid.MustParse("a1b4df25-0004-4c01-9e5a-0d41f4b60004"),
			FirstName:         "Esther",
			LastName:          "Njeri",
			Email:             "esther@example.com",
			PhoneNumber:       "+254745678901",
			Region:            "Coastal",
			County:            "Mombasa",
			Services:          []string{"House Cleaning", "Cooking", "Pet Care"},
			AgeRange:          "18-25",
			Rating:            4.6,
			ReviewCount:       14,
			IsVerified:        true,
			ProfilePictureURL: "https://images.pexels.com/photos/1181690/pexels-photo-1181690.jpeg",
			JoinedAt:          now.Add(-60 * day),
		},
		{
			ID:                uuid.MustParse("a1b4df25-0005-4c01-9e5a-0d41f4b60005"),
			FirstName:         "Faith",
			LastName:          "Wanjiru",
			Email:             "faith@example.com",
			PhoneNumber:       "+254756789012",
			Region:            "Western",
			County:            "Kakamega",
			Services:          []string{"Babysitter", "House Cleaning", "Laundry", "Gardening"},
			AgeRange:          "26-35",
			Rating:            4.5,
			ReviewCount:       9,
			IsVerified:        true,
			ProfilePictureURL: "https://images.pexels.com/photos/1181519/pexels-photo-1181519.jpeg",
			JoinedAt:          now.Add(-20 * day),
		},
		{
			ID:                uuid.MustParse("a1b4df25-0006-4c01-9e5a-0d41f4b60006"),
			FirstName:         "Susan",
			LastName:          "Kamau",
			Email:             "susan@example.com",
			PhoneNumber:       "+254767890123",
			Region:            "Central",
			County:            "Nyeri",
			Services:          []string{"Elderly Care", "Cooking", "General Cleaning"},
			AgeRange:          "46-55",
			Rating:            4.9,
			ReviewCount:       22,
			IsVerified:        true,
			ProfilePictureURL: "https://images.pexels.com/photos/1181562/pexels-photo-1181562.jpeg",
			JoinedAt:          now.Add(-10 * day),
		},
	}
}

// SeedOffers returns the open service-offer catalog with post times computed
// relative to now.
func SeedOffers(now time.Time) []ServiceOffer {
	return []ServiceOffer{
		{
			ID:       uuid.MustParse("0f7e9c11-0001-4bb2-8d63-50c2e9a70001"),
			ClientID: uuid.MustParse("c11e4a02-0001-4f30-b2da-7aa6f1c50001"),
			Client: ClientSummary{
				ID:                 uuid.MustParse("c11e4a02-0001-4f30-b2da-7aa6f1c50001"),
				FirstName:          "Jane",
				LastName:           "Doe",
				Email:              "jane@example.com",
				Region:             "Nairobi",
				County:             "Nairobi",
				ServiceDescription: "Need a babysitter for my 2 toddlers",
				DailyRate:          2000,
				Rating:             4.5,
				ReviewCount:        12,
			},
			Description: "Need a babysitter for my 2 toddlers (ages 2 and 4). Looking for someone experienced and patient. Must be available Monday to Friday, 8 AM to 6 PM.",
			DailyRate:   2000,
			Region:      "Nairobi",
			County:      "Nairobi",
			PostedAt:    now.Add(-2 * time.Hour),
			IsActive:    true,
		},
		{
			ID:       uuid.MustParse("0f7e9c11-0002-4bb2-8d63-50c2e9a70002"),
			ClientID: uuid.MustParse("c11e4a02-0002-4f30-b2da-7aa6f1c50002"),
			Client: ClientSummary{
				ID:                 uuid.MustParse("c11e4a02-0002-4f30-b2da-7aa6f1c50002"),
				FirstName:          "John",
				LastName:           "Smith",
				Email:              "john@example.com",
				Region:             "Central",
				County:             "Kiambu",
				ServiceDescription: "Weekly house cleaning service needed",
				DailyRate:          1500,
				Rating:             4.8,
				ReviewCount:        8,
			},
			Description: "Weekly house cleaning service needed for a 3-bedroom house. Includes general cleaning, laundry, and organizing. Flexible schedule.",
			DailyRate:   1500,
			Region:      "Central",
			County:      "Kiambu",
			PostedAt:    now.Add(-5 * time.Hour),
			IsActive:    true,
		},
		{
			ID:       uuid.MustParse("0f7e9c11-0003-4bb2-8d63-50c2e9a70003"),
			ClientID: uuid.MustParse("c11e4a02-0003-4f30-b2da-7aa6f1c50003"),
			Client: ClientSummary{
				ID:                 uuid.MustParse("c11e4a02-0003-4f30-b2da-7aa6f1c50003"),
				FirstName:          "Mary",
				LastName:           "Johnson",
				Email:              "mary@example.com",
				Region:             "Coastal",
				County:             "Mombasa",
				ServiceDescription: "Elderly care and cooking assistance",
				DailyRate:          2500,
				Rating:             5.0,
				ReviewCount:        5,
			},
			Description: "Looking for someone to help with elderly care and cooking. Must be compassionate, patient, and experienced with elderly care.",
			DailyRate:   2500,
			Region:      "Coastal",
			County:      "Mombasa",
			PostedAt:    now.Add(-24 * time.Hour),
			IsActive:    true,
		},
		{
			ID:       uuid.MustParse("0f7e9c11-0004-4bb2-8d63-50c2e9a70004"),
			ClientID: uuid.MustParse("c11e4a02-0004-4f30-b2da-7aa6f1c50004"),
			Client: ClientSummary{
				ID:                 uuid.MustParse("c11e4a02-0004-4f30-b2da-7aa6f1c50004"),
				FirstName:          "Peter",
				LastName:           "Kimani",
				Email:              "peter@example.com",
				Region:             "Nairobi",
				County:             "Nairobi",
				ServiceDescription: "Daily cooking and light cleaning",
				DailyRate:          1800,
				Rating:             4.2,
				ReviewCount:        15,
			},
			Description: "Need help with daily cooking and light cleaning. Must be skilled in Kenyan cuisine and available Monday to Saturday.",
			DailyRate:   1800,
			Region:      "Nairobi",
			County:      "Nairobi",
			PostedAt:    now.Add(-6 * time.Hour),
			IsActive:    true,
		},
	}
}
