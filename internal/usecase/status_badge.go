package usecase

import "github.com/listingcheck/backend/internal/domain"

const unknownStatusTooltip = "Unable to determine listing status"

// badgeTemplates holds the fixed display mapping per status
var badgeTemplates = map[domain.ListingStatus]domain.StatusBadge{
	domain.StatusUnavailable:  {Label: "Removed", Tone: "gray", Icon: "x-circle"},
	domain.StatusInvalid:      {Label: "Invalid URL", Tone: "red", Icon: "x-circle"},
	domain.StatusIncomplete:   {Label: "Incomplete", Tone: "orange", Icon: "alert-triangle"},
	domain.StatusInconsistent: {Label: "Data Mismatch", Tone: "red", Icon: "alert-triangle"},
	domain.StatusCaution:      {Label: "Verify Required", Tone: "amber", Icon: "shield"},
	domain.StatusConsistent:   {Label: "Verified", Tone: "green", Icon: "dot"},
}

// BadgeFor maps a verdict to its badge. Unrecognised statuses render as Unknown.
func BadgeFor(v domain.ClassificationVerdict) domain.StatusBadge {
	badge, ok := badgeTemplates[v.Status]
	if !ok {
		return domain.StatusBadge{
			Label:   "Unknown",
			Tone:    "gray",
			Icon:    "help-circle",
			Tooltip: unknownStatusTooltip,
		}
	}

	badge.Tooltip = v.Reason
	badge.LinkEnabled = v.IsActive() && v.Status != domain.StatusInvalid
	return badge
}

// classifyMatches classifies candidates and attaches badges, keeping input order
func classifyMatches(classifier *ListingStatusClassifier, candidates []domain.MatchCandidate) []domain.ClassifiedMatch {
	verdicts := classifier.ClassifyAll(candidates)

	matches := make([]domain.ClassifiedMatch, len(candidates))
	for i, candidate := range candidates {
		matches[i] = domain.ClassifiedMatch{
			Candidate: candidate,
			Verdict:   verdicts[i],
			Badge:     BadgeFor(verdicts[i]),
		}
	}
	return matches
}
