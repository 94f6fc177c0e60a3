package provider

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/listingcheck/backend/internal/domain"
)

// analysisResponseSchema is the JSON schema the provider is asked to honour.
// It is also used to validate what comes back.
var analysisResponseSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"extracted_details": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"listing_title":   map[string]interface{}{"type": "string"},
				"address":         map[string]interface{}{"type": "string"},
				"price":           map[string]interface{}{"type": "string"},
				"agent_name":      map[string]interface{}{"type": "string"},
				"features":        map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
				"description":     map[string]interface{}{"type": "string"},
				"source_platform": map[string]interface{}{"type": "string"},
			},
		},
		"matches_found": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"platform":         map[string]interface{}{"type": "string"},
					"listing_title":    map[string]interface{}{"type": "string"},
					"price":            map[string]interface{}{"type": "string"},
					"agent_name":       map[string]interface{}{"type": "string"},
					"listing_url":      map[string]interface{}{"type": "string"},
					"suspicious_flags": map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
					"data_completeness": map[string]interface{}{
						"type": "string",
						"enum": []interface{}{string(domain.DataComplete), string(domain.DataIncomplete), string(domain.DataMissing)},
					},
					"platform_type": map[string]interface{}{
						"type": "string",
						"enum": []interface{}{string(domain.PlatformMajorRealEstate), string(domain.PlatformClassified), string(domain.PlatformUnknown)},
					},
				},
			},
		},
		"risk_level": map[string]interface{}{
			"type": "string",
			"enum": []interface{}{string(domain.RiskAllClear), string(domain.RiskCaution), string(domain.RiskHigh), string(domain.RiskCannotDetermine)},
		},
		"summary":          map[string]interface{}{"type": "string"},
		"fraud_indicators": map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
	},
	"required": []interface{}{"extracted_details", "matches_found", "risk_level", "summary"},
}

// validateResponse checks a decoded provider response against the schema
func validateResponse(document interface{}) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(analysisResponseSchema),
		gojsonschema.NewGoLoader(document),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrProviderResponseInvalid, err)
	}

	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			problems = append(problems, e.String())
		}
		return fmt.Errorf("%w: %s", domain.ErrProviderResponseInvalid, strings.Join(problems, "; "))
	}

	return nil
}
