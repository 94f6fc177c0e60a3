package domain

import "encoding/json"

// PlatformType classifies the site a matched listing was found on
type PlatformType string

const (
	PlatformMajorRealEstate PlatformType = "Major Real Estate Site"
	PlatformClassified      PlatformType = "Classified Site"
	PlatformUnknown         PlatformType = "Unknown"
)

// DataCompleteness describes how much property data a matched listing carries
type DataCompleteness string

const (
	DataComplete   DataCompleteness = "Complete"
	DataIncomplete DataCompleteness = "Incomplete"
	DataMissing    DataCompleteness = "Missing"
)

// MatchCandidate is one externally discovered listing that purportedly matches
// the original property. Empty optional fields carry no signal.
type MatchCandidate struct {
	ListingURL       string           `json:"listing_url" yaml:"listing_url"`
	Platform         string           `json:"platform,omitempty" yaml:"platform"`
	PlatformType     PlatformType     `json:"platform_type,omitempty" yaml:"platform_type"`
	ListingTitle     string           `json:"listing_title,omitempty" yaml:"listing_title"`
	Price            string           `json:"price,omitempty" yaml:"price"`
	AgentName        string           `json:"agent_name,omitempty" yaml:"agent_name"`
	DataCompleteness DataCompleteness `json:"data_completeness,omitempty" yaml:"data_completeness"`
	SuspiciousFlags  []string         `json:"suspicious_flags" yaml:"suspicious_flags"`
}

// ListingStatus is the verdict assigned to a match candidate
type ListingStatus string

const (
	StatusUnavailable  ListingStatus = "unavailable"
	StatusInvalid      ListingStatus = "invalid"
	StatusIncomplete   ListingStatus = "incomplete"
	StatusInconsistent ListingStatus = "inconsistent"
	StatusCaution      ListingStatus = "caution"
	StatusConsistent   ListingStatus = "consistent"
	StatusUnknown      ListingStatus = "unknown"
)

// AllStatuses lists every status in severity order
var AllStatuses = []ListingStatus{
	StatusUnavailable,
	StatusInvalid,
	StatusIncomplete,
	StatusInconsistent,
	StatusCaution,
	StatusConsistent,
	StatusUnknown,
}

// ClassificationVerdict is the classifier's judgment on one candidate.
// Whether the listing link may be followed is derived from Status.
type ClassificationVerdict struct {
	Status ListingStatus `json:"status"`
	Reason string        `json:"reason"`
}

// IsActive reports whether the listing URL should be treated as followable
func (v ClassificationVerdict) IsActive() bool {
	return v.Status != StatusUnavailable && v.Status != StatusInvalid
}

// MarshalJSON includes the derived is_active field
func (v ClassificationVerdict) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Status   ListingStatus `json:"status"`
		IsActive bool          `json:"is_active"`
		Reason   string        `json:"reason"`
	}{
		Status:   v.Status,
		IsActive: v.IsActive(),
		Reason:   v.Reason,
	})
}

// StatusBadge is the display form of a verdict
type StatusBadge struct {
	Label       string `json:"label"`
	Tone        string `json:"tone"`
	Icon        string `json:"icon"`
	Tooltip     string `json:"tooltip"`
	LinkEnabled bool   `json:"link_enabled"`
}

// ClassifiedMatch pairs a candidate with its verdict and badge
type ClassifiedMatch struct {
	Candidate MatchCandidate        `json:"candidate"`
	Verdict   ClassificationVerdict `json:"verdict"`
	Badge     StatusBadge           `json:"badge"`
}
