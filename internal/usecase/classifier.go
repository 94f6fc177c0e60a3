package usecase

import (
	"net/url"
	"regexp"
	"strings"
	"sync"

	"github.com/listingcheck/backend/internal/domain"
)

// Verdict reasons, one per outcome
const (
	reasonInvalidURL     = "Invalid URL format"
	reasonHomepageSearch = "URL leads to homepage or search page"
	reasonRemoved        = "Listing has been removed or is no longer active"
	reasonDiscrepancies  = "Property data shows major discrepancies"
	reasonIncomplete     = "Missing critical property information"
	reasonClassifiedSite = "Classified site with limited verification"
	reasonConsistent     = "All property data matches and listing is active"
	reasonUnverified     = "Unable to fully verify listing details"
)

// Package-level compiled regex patterns
var (
	localeRootRegex = regexp.MustCompile(`^/?(en|fr)?/?\s*$`)
	numericIDRegex  = regexp.MustCompile(`/\d+/`)
)

var (
	homepagePaths        = []string{"/", "", "/index", "/home"}
	searchPathMarkers    = []string{"/search", "/find", "/browse"}
	searchQueryMarkers   = []string{"search", "q="}
	removalKeywords      = []string{"removed", "inactive", "not found", "expired", "sold", "unavailable"}
	discrepancyKeywords  = []string{"discrepancy", "different", "inconsistent"}
	incompleteKeywords   = []string{"incomplete", "missing"}
	classifiedHostNames  = []string{"kijiji", "facebook", "craigslist"}
	propertyPathKeywords = []string{"property", "listing", "real-estate", "home"}
)

// ListingStatusClassifier assigns a verdict to a matched listing.
//
// Checks run in a fixed priority order and the first one that fires wins:
// unparseable URL, homepage or search page, removal flags, data discrepancy
// flags, incomplete data, classified site, and finally positive confirmation.
// Anything left over is a caution. Keyword matching is a case-insensitive
// substring test on the raw flag text.
type ListingStatusClassifier struct{}

// NewListingStatusClassifier creates a classifier
func NewListingStatusClassifier() *ListingStatusClassifier {
	return &ListingStatusClassifier{}
}

// Classify returns exactly one verdict for the candidate. It never fails:
// malformed URLs become an invalid verdict.
func (c *ListingStatusClassifier) Classify(candidate domain.MatchCandidate) domain.ClassificationVerdict {
	listingURL, ok := parseListingURL(candidate.ListingURL)
	if !ok {
		return verdict(domain.StatusInvalid, reasonInvalidURL)
	}

	hostname := strings.ToLower(listingURL.Hostname())
	pathname := strings.ToLower(listingURL.EscapedPath())
	if pathname == "" {
		pathname = "/"
	}
	flags := lowerFlags(candidate.SuspiciousFlags)

	if isHomepage(pathname) || isSearchPage(pathname, listingURL.RawQuery) {
		return verdict(domain.StatusInvalid, reasonHomepageSearch)
	}

	if anyFlag(flags, func(flag string) bool { return containsAny(flag, removalKeywords) }) {
		return verdict(domain.StatusUnavailable, reasonRemoved)
	}

	if hasPriceDiscrepancy(flags) || hasAgentMismatch(flags) {
		return verdict(domain.StatusInconsistent, reasonDiscrepancies)
	}

	if hasIncompleteData(candidate.DataCompleteness, flags) {
		return verdict(domain.StatusIncomplete, reasonIncomplete)
	}

	if candidate.PlatformType == domain.PlatformClassified || containsAny(hostname, classifiedHostNames) {
		return verdict(domain.StatusCaution, reasonClassifiedSite)
	}

	// Only a clean candidate on a property-looking URL is confirmed
	if hasPropertyPath(pathname) && len(candidate.SuspiciousFlags) == 0 {
		return verdict(domain.StatusConsistent, reasonConsistent)
	}

	return verdict(domain.StatusCaution, reasonUnverified)
}

// ClassifyAll classifies candidates concurrently. Results keep input order.
func (c *ListingStatusClassifier) ClassifyAll(candidates []domain.MatchCandidate) []domain.ClassificationVerdict {
	verdicts := make([]domain.ClassificationVerdict, len(candidates))

	var wg sync.WaitGroup
	for i := range candidates {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			verdicts[i] = c.Classify(candidates[i])
		}(i)
	}
	wg.Wait()

	return verdicts
}

func verdict(status domain.ListingStatus, reason string) domain.ClassificationVerdict {
	return domain.ClassificationVerdict{Status: status, Reason: reason}
}

// parseListingURL accepts only absolute URLs. Web URLs must also name a host.
func parseListingURL(raw string) (*url.URL, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, false
	}

	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Scheme == "" {
		return nil, false
	}

	switch strings.ToLower(parsed.Scheme) {
	case "http", "https", "ws", "wss", "ftp":
		if parsed.Host == "" {
			return nil, false
		}
	}

	return parsed, true
}

func isHomepage(pathname string) bool {
	for _, p := range homepagePaths {
		if pathname == p {
			return true
		}
	}
	return localeRootRegex.MatchString(pathname)
}

func isSearchPage(pathname, rawQuery string) bool {
	return containsAny(pathname, searchPathMarkers) || containsAny(rawQuery, searchQueryMarkers)
}

func hasPriceDiscrepancy(flags []string) bool {
	return anyFlag(flags, func(flag string) bool {
		return strings.Contains(flag, "price") && containsAny(flag, discrepancyKeywords)
	})
}

func hasAgentMismatch(flags []string) bool {
	return anyFlag(flags, func(flag string) bool {
		return strings.Contains(flag, "agent") && strings.Contains(flag, "different")
	})
}

func hasIncompleteData(completeness domain.DataCompleteness, flags []string) bool {
	if completeness == domain.DataIncomplete || completeness == domain.DataMissing {
		return true
	}
	return anyFlag(flags, func(flag string) bool { return containsAny(flag, incompleteKeywords) })
}

func hasPropertyPath(pathname string) bool {
	return containsAny(pathname, propertyPathKeywords) ||
		numericIDRegex.MatchString(pathname) ||
		len(strings.Split(pathname, "/")) >= 3
}

func lowerFlags(flags []string) []string {
	if len(flags) == 0 {
		return nil
	}
	lowered := make([]string, len(flags))
	for i, flag := range flags {
		lowered[i] = strings.ToLower(flag)
	}
	return lowered
}

func anyFlag(flags []string, match func(string) bool) bool {
	for _, flag := range flags {
		if match(flag) {
			return true
		}
	}
	return false
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
