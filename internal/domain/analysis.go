package domain

import "time"

// RiskLevel is the overall fraud assessment for an analyzed listing
type RiskLevel string

const (
	RiskAllClear        RiskLevel = "All Clear"
	RiskCaution         RiskLevel = "Caution"
	RiskHigh            RiskLevel = "High Risk"
	RiskCannotDetermine RiskLevel = "Cannot Determine"
)

// Analysis sources
const (
	SourceDemo     = "demo"
	SourceProvider = "provider"
	SourceCache    = "cache"
)

// ExtractedDetails holds the property details read from the original listing
type ExtractedDetails struct {
	ListingTitle   string   `json:"listing_title"`
	Address        string   `json:"address"`
	Price          string   `json:"price"`
	AgentName      string   `json:"agent_name"`
	Features       []string `json:"features"`
	Description    string   `json:"description"`
	SourcePlatform string   `json:"source_platform"`
}

// PropertyAnalysis is the full result of verifying one listing URL
type PropertyAnalysis struct {
	ID               string           `json:"id"`
	ListingURL       string           `json:"listing_url"`
	ExtractedDetails ExtractedDetails `json:"extracted_details"`
	MatchesFound     []MatchCandidate `json:"matches_found"`
	RiskLevel        RiskLevel        `json:"risk_level"`
	Summary          string           `json:"summary"`
	FraudIndicators  []string         `json:"fraud_indicators"`
	Source           string           `json:"source"`
	CreatedAt        time.Time        `json:"created_at"`
}

// ClassifiedAnalysis is a PropertyAnalysis with every match classified
type ClassifiedAnalysis struct {
	Analysis          *PropertyAnalysis     `json:"analysis"`
	Matches           []ClassifiedMatch     `json:"matches"`
	StatusCounts      map[ListingStatus]int `json:"status_counts"`
	HasClassifiedSite bool                  `json:"has_classified_site"`
}

// AnalyzeRequest is the body of an analysis request
type AnalyzeRequest struct {
	ListingURL string `json:"listing_url" binding:"required"`
}

// ClassifyRequest is the body of a batch classification request
type ClassifyRequest struct {
	Candidates []MatchCandidate `json:"candidates"`
}
