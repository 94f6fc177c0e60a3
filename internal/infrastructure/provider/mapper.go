package provider

import (
	"strings"

	"github.com/listingcheck/backend/internal/domain"
)

// analysisResponse is the wire shape returned by the provider
type analysisResponse struct {
	ExtractedDetails extractedDetails `json:"extracted_details"`
	MatchesFound     []matchFound     `json:"matches_found"`
	RiskLevel        string           `json:"risk_level"`
	Summary          string           `json:"summary"`
	FraudIndicators  []string         `json:"fraud_indicators"`
}

type extractedDetails struct {
	ListingTitle   string   `json:"listing_title"`
	Address        string   `json:"address"`
	Price          string   `json:"price"`
	AgentName      string   `json:"agent_name"`
	Features       []string `json:"features"`
	Description    string   `json:"description"`
	SourcePlatform string   `json:"source_platform"`
}

type matchFound struct {
	Platform         string   `json:"platform"`
	ListingTitle     string   `json:"listing_title"`
	Price            string   `json:"price"`
	AgentName        string   `json:"agent_name"`
	ListingURL       string   `json:"listing_url"`
	SuspiciousFlags  []string `json:"suspicious_flags"`
	DataCompleteness string   `json:"data_completeness"`
	PlatformType     string   `json:"platform_type"`
}

// MapToPropertyAnalysis converts a provider response to our domain model
func MapToPropertyAnalysis(resp *analysisResponse) *domain.PropertyAnalysis {
	matches := make([]domain.MatchCandidate, 0, len(resp.MatchesFound))
	for _, m := range resp.MatchesFound {
		matches = append(matches, mapMatch(m))
	}

	return &domain.PropertyAnalysis{
		ExtractedDetails: domain.ExtractedDetails{
			ListingTitle:   resp.ExtractedDetails.ListingTitle,
			Address:        resp.ExtractedDetails.Address,
			Price:          resp.ExtractedDetails.Price,
			AgentName:      resp.ExtractedDetails.AgentName,
			Features:       nonNil(resp.ExtractedDetails.Features),
			Description:    resp.ExtractedDetails.Description,
			SourcePlatform: resp.ExtractedDetails.SourcePlatform,
		},
		MatchesFound:    matches,
		RiskLevel:       mapRiskLevel(resp.RiskLevel),
		Summary:         resp.Summary,
		FraudIndicators: nonNil(resp.FraudIndicators),
	}
}

func mapMatch(m matchFound) domain.MatchCandidate {
	return domain.MatchCandidate{
		ListingURL:       strings.TrimSpace(m.ListingURL),
		Platform:         m.Platform,
		PlatformType:     mapPlatformType(m.PlatformType),
		ListingTitle:     m.ListingTitle,
		Price:            m.Price,
		AgentName:        m.AgentName,
		DataCompleteness: mapDataCompleteness(m.DataCompleteness),
		SuspiciousFlags:  nonNil(m.SuspiciousFlags),
	}
}

// Unrecognised enum values are treated as absent
func mapPlatformType(s string) domain.PlatformType {
	switch domain.PlatformType(s) {
	case domain.PlatformMajorRealEstate, domain.PlatformClassified, domain.PlatformUnknown:
		return domain.PlatformType(s)
	}
	return ""
}

func mapDataCompleteness(s string) domain.DataCompleteness {
	switch domain.DataCompleteness(s) {
	case domain.DataComplete, domain.DataIncomplete, domain.DataMissing:
		return domain.DataCompleteness(s)
	}
	return ""
}

func mapRiskLevel(s string) domain.RiskLevel {
	switch domain.RiskLevel(s) {
	case domain.RiskAllClear, domain.RiskCaution, domain.RiskHigh:
		return domain.RiskLevel(s)
	}
	return domain.RiskCannotDetermine
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
