// File: internal/listing/service.go
package listing

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

// FilterNunnies is a pure function over the provider catalog: search text is
// matched case-insensitively as a substring, OR-combined across first name,
// last name, service tags, region and county; region filter is exact;
// service filter matches slug-canonical tag membership. All sorts are stable
// so equal keys keep their input order.
func FilterNunnies(nunnies []NunnyCard, q NunnyQuery) []NunnyCard {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	serviceSlug := slug.Make(q.Service)

	filtered := make([]NunnyCard, 0, len(nunnies))
	for _, n := range nunnies {
		if search != "" && !nunnyMatchesSearch(n, search) {
			continue
		}
		if q.Region != "" && n.Region != q.Region {
			continue
		}
		if q.Service != "" && !hasServiceTag(n.Services, serviceSlug) {
			continue
		}
		filtered = append(filtered, n)
	}

	switch q.SortBy {
	case NunnySortNewest:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].JoinedAt.After(filtered[j].JoinedAt)
		})
	case NunnySortName:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].FirstName < filtered[j].FirstName
		})
	default: // rating
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Rating > filtered[j].Rating
		})
	}
	return filtered
}

func nunnyMatchesSearch(n NunnyCard, search string) bool {
	if strings.Contains(strings.ToLower(n.FirstName), search) ||
		strings.Contains(strings.ToLower(n.LastName), search) ||
		strings.Contains(strings.ToLower(n.Region), search) ||
		strings.Contains(strings.ToLower(n.County), search) {
		return true
	}
	for _, s := range n.Services {
		if strings.Contains(strings.ToLower(s), search) {
			return true
		}
	}
	return false
}

func hasServiceTag(services []string, wantSlug string) bool {
	for _, s := range services {
		if slug.Make(s) == wantSlug {
			return true
		}
	}
	return false
}

// FilterOffers is the offer-catalog counterpart: search over description,
// region, county and the client's name; exact region filter; stable sorts by
// recency, pay or client rating. Inactive offers are never returned.
func FilterOffers(offers []ServiceOffer, q OfferQuery) []ServiceOffer {
	search := strings.ToLower(strings.TrimSpace(q.Search))

	filtered := make([]ServiceOffer, 0, len(offers))
	for _, o := range offers {
		if !o.IsActive {
			continue
		}
		if search != "" && !offerMatchesSearch(o, search) {
			continue
		}
		if q.Region != "" && o.Region != q.Region {
			continue
		}
		filtered = append(filtered, o)
	}

	switch q.SortBy {
	case OfferSortHighestPay:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].DailyRate > filtered[j].DailyRate
		})
	case OfferSortRating:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Client.Rating > filtered[j].Client.Rating
		})
	default: // newest
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].PostedAt.After(filtered[j].PostedAt)
		})
	}
	return filtered
}

func offerMatchesSearch(o ServiceOffer, search string) bool {
	return strings.Contains(strings.ToLower(o.Description), search) ||
		strings.Contains(strings.ToLower(o.Region), search) ||
		strings.Contains(strings.ToLower(o.County), search) ||
		strings.Contains(strings.ToLower(o.Client.FirstName), search) ||
		strings.Contains(strings.ToLower(o.Client.LastName), search)
}

// Service holds the seeded catalogs. Reads copy under a read lock; the only
// writer is the expiry job.
type Service struct {
	mu      sync.RWMutex
	nunnies []NunnyCard
	offers  []ServiceOffer
	logger  *zap.Logger
}

// NewService seeds the catalogs relative to the current time.
func NewService(logger *zap.Logger) *Service {
	now := time.Now()
	return &Service{
		nunnies: SeedNunnies(now),
		offers:  SeedOffers(now),
		logger:  logger,
	}
}

// BrowseNunnies returns the filtered, sorted provider catalog.
func (s *Service) BrowseNunnies(q NunnyQuery) []NunnyCard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return FilterNunnies(s.nunnies, q)
}

// BrowseOffers returns the filtered, sorted active offers.
func (s *Service) BrowseOffers(q OfferQuery) []ServiceOffer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return FilterOffers(s.offers, q)
}

// ExpireOffers deactivates offers posted before the cutoff and reports how
// many were flipped.
func (s *Service) ExpireOffers(olderThan time.Duration) int {
	cutoff := time.Now().Add(-olderThan)

	s.mu.Lock()
	defer s.mu.Unlock()
	expired := 0
	for i := range s.offers {
		if s.offers[i].IsActive && s.offers[i].PostedAt.Before(cutoff) {
			s.offers[i].IsActive = false
			expired++
		}
	}
	if expired > 0 {
		s.logger.Info("Expired service offers", zap.Int("count", expired))
	}
	return expired
}
