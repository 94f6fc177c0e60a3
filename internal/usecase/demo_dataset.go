package usecase

import (
	"strings"

	"github.com/listingcheck/backend/internal/domain"
)

// demoMarkers identify URLs served from the fixed demo dataset
var demoMarkers = []string{"demo-safe-property", "demo-risk-property", "demo-nomatch"}

// IsDemoURL reports whether the listing URL should be answered from demo data
func IsDemoURL(listingURL string) bool {
	return containsAny(strings.ToLower(listingURL), demoMarkers)
}

// DemoAnalysis returns the canned analysis for a demo URL. URLs that carry a
// demo marker on the wrong host get the default "Cannot Determine" response.
func DemoAnalysis(listingURL string) *domain.PropertyAnalysis {
	lowerURL := strings.ToLower(listingURL)

	var analysis *domain.PropertyAnalysis
	switch {
	case strings.Contains(lowerURL, "realtor.ca/demo-safe-property"):
		analysis = safePropertyDemo()
	case strings.Contains(lowerURL, "kijiji.ca/demo-risk-property"):
		analysis = riskPropertyDemo()
	case strings.Contains(lowerURL, "example.com/demo-nomatch"):
		analysis = noMatchDemo()
	default:
		analysis = defaultDemo()
	}

	analysis.ListingURL = listingURL
	analysis.Source = domain.SourceDemo
	return analysis
}

func safePropertyDemo() *domain.PropertyAnalysis {
	return &domain.PropertyAnalysis{
		ExtractedDetails: domain.ExtractedDetails{
			ListingTitle:   "Beautiful 3-Bedroom Detached Home in Toronto",
			Address:        "123 Maple Street, Toronto, ON M4M 2B5",
			Price:          "$1,250,000",
			AgentName:      "Sarah Johnson - Royal LePage",
			Features:       []string{"3 Bedrooms", "2.5 Bathrooms", "2,100 sqft", "Garage", "Finished Basement"},
			Description:    "Stunning family home in desirable Toronto neighbourhood. Recently renovated kitchen, hardwood floors throughout, private backyard with deck. Close to schools, parks, and transit.",
			SourcePlatform: "realtor.ca",
		},
		MatchesFound: []domain.MatchCandidate{
			{
				Platform:         "zolo.ca",
				ListingTitle:     "Beautiful 3-Bedroom Detached Home in Toronto",
				Price:            "$1,250,000",
				AgentName:        "Sarah Johnson - Royal LePage",
				ListingURL:       "https://www.zolo.ca/toronto-real-estate/123-maple-street",
				SuspiciousFlags:  []string{},
				DataCompleteness: domain.DataComplete,
				PlatformType:     domain.PlatformMajorRealEstate,
			},
			{
				Platform:         "royallepage.ca",
				ListingTitle:     "3BR Family Home - Toronto",
				Price:            "$1,250,000",
				AgentName:        "Sarah Johnson",
				ListingURL:       "https://www.royallepage.ca/en/property/ontario/toronto/123-maple-street/15742891",
				SuspiciousFlags:  []string{},
				DataCompleteness: domain.DataComplete,
				PlatformType:     domain.PlatformMajorRealEstate,
			},
		},
		RiskLevel:       domain.RiskAllClear,
		Summary:         "Cross-platform verification successful. This property listing appears consistent across multiple legitimate real estate platforms. All key details match: address, price, and agent information are identical on realtor.ca, zolo.ca, and royallepage.ca. No red flags or inconsistencies detected.",
		FraudIndicators: []string{},
	}
}

func riskPropertyDemo() *domain.PropertyAnalysis {
	return &domain.PropertyAnalysis{
		ExtractedDetails: domain.ExtractedDetails{
			ListingTitle:   "Luxury Condo Downtown Vancouver - URGENT SALE",
			Address:        "789 Granville Street, Vancouver, BC V6Z 1K3",
			Price:          "$450,000",
			AgentName:      "Mike Chen - Independent Agent",
			Features:       []string{"2 Bedrooms", "2 Bathrooms", "1,200 sqft", "Ocean View", "Parking Included"},
			Description:    "Must sell quickly due to relocation! Beautiful luxury condo with ocean views. Contact immediately for viewing. Cash only, no financing.",
			SourcePlatform: "kijiji.ca",
		},
		MatchesFound: []domain.MatchCandidate{
			{
				Platform:         "realtor.ca",
				ListingTitle:     "Luxury 2BR Condo - Downtown Vancouver",
				Price:            "$850,000",
				AgentName:        "Jennifer Wong - Sutton Group",
				ListingURL:       "https://www.realtor.ca/real-estate/25341892/789-granville-street-vancouver",
				SuspiciousFlags:  []string{"Price discrepancy: $400,000 difference", "Different agent name", "No urgency mentioned in original listing"},
				DataCompleteness: domain.DataComplete,
				PlatformType:     domain.PlatformMajorRealEstate,
			},
			{
				Platform:         "facebook.com/marketplace",
				ListingTitle:     "Downtown Condo MUST SELL - Owner Desperate",
				Price:            "$420,000",
				AgentName:        "Mike Chen",
				ListingURL:       "https://www.facebook.com/marketplace/item/567823456789012",
				SuspiciousFlags:  []string{"Classified site with limited verification", "Suspicious urgency language", "Price significantly below market"},
				DataCompleteness: domain.DataIncomplete,
				PlatformType:     domain.PlatformClassified,
			},
			{
				Platform:         "point2homes.com",
				ListingTitle:     "Luxury Condo Downtown Vancouver",
				Price:            "$825,000",
				AgentName:        "Jennifer Wong - Sutton Group",
				ListingURL:       "https://www.point2homes.com/CA/Real-Estate-Listings/BC/Vancouver/789-Granville-Street.html",
				SuspiciousFlags:  []string{"Major price inconsistency with Kijiji listing", "Different contact agent"},
				DataCompleteness: domain.DataComplete,
				PlatformType:     domain.PlatformMajorRealEstate,
			},
		},
		RiskLevel: domain.RiskHigh,
		Summary:   "MAJOR RED FLAGS DETECTED: This property shows significant inconsistencies across platforms that strongly suggest fraudulent activity. The Kijiji listing shows a price of $450,000, while the same property is listed on realtor.ca and point2homes.com for $825,000-$850,000. The agent name differs between platforms, and the Kijiji listing uses high-pressure language typical of scams.",
		FraudIndicators: []string{
			"Price varies by $400,000+ across platforms - major red flag",
			"Different agent names on different platforms",
			"High-pressure 'urgent sale' language on classified site",
			"Classified site listing significantly underpriced",
			"Cash-only requirement mentioned - common scam tactic",
			"Multiple inconsistencies suggest fraudulent listing",
		},
	}
}

func noMatchDemo() *domain.PropertyAnalysis {
	return &domain.PropertyAnalysis{
		ExtractedDetails: domain.ExtractedDetails{
			ListingTitle:   "Modern 4-Bedroom House in Calgary",
			Address:        "456 Oak Avenue, Calgary, AB T2P 3H7",
			Price:          "$750,000",
			AgentName:      "David Thompson - Century 21",
			Features:       []string{"4 Bedrooms", "3 Bathrooms", "2,400 sqft", "Double Garage", "Large Yard"},
			Description:    "Spacious family home in established Calgary neighborhood. Open concept living, updated kitchen, master suite with walk-in closet. Close to schools and shopping.",
			SourcePlatform: "example.com",
		},
		MatchesFound:    []domain.MatchCandidate{},
		RiskLevel:       domain.RiskCannotDetermine,
		Summary:         "No cross-platform matches found for verification. This property was not located on other major Canadian real estate platforms (realtor.ca, zolo.ca, royallepage.ca, point2homes.com). This could indicate the property is exclusive to this platform, is a new listing not yet syndicated, or may require direct verification with the listing agent.",
		FraudIndicators: []string{},
	}
}

func defaultDemo() *domain.PropertyAnalysis {
	return &domain.PropertyAnalysis{
		ExtractedDetails: domain.ExtractedDetails{
			ListingTitle:   "Property Listing",
			Address:        "Address not available",
			Price:          "Price not available",
			AgentName:      "Agent information not available",
			Features:       []string{},
			Description:    "Property details could not be extracted from this URL.",
			SourcePlatform: "Unknown",
		},
		MatchesFound:    []domain.MatchCandidate{},
		RiskLevel:       domain.RiskCannotDetermine,
		Summary:         "Unable to extract property details from the provided URL or verify across other platforms. This may be due to an unsupported website format, restricted access, or an invalid listing URL. Please verify the URL is correct and leads to a complete property listing page.",
		FraudIndicators: []string{"Unable to verify property details", "URL may be invalid or inaccessible"},
	}
}
