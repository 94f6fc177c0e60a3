package usecase

import (
	"net/url"

	"github.com/listingcheck/backend/internal/domain"
)

// ExcludeOriginalDomain drops candidates hosted on the same domain as the
// original listing. Candidates whose URL cannot be parsed are kept so the
// classifier can flag them as invalid.
func ExcludeOriginalDomain(originalURL string, candidates []domain.MatchCandidate) []domain.MatchCandidate {
	original, err := url.Parse(originalURL)
	if err != nil || original.Hostname() == "" {
		return candidates
	}

	filtered := make([]domain.MatchCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		matchURL, err := url.Parse(candidate.ListingURL)
		if err == nil && matchURL.Hostname() == original.Hostname() {
			continue
		}
		filtered = append(filtered, candidate)
	}
	return filtered
}
