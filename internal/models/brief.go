package models

import "fmt"

// TargetAudience describes who the campaign should reach, as collected
// from the advertiser. Locations are ISO 3166-1 alpha-2 country codes.
type TargetAudience struct {
	AgeRange    string   `json:"age_range"`
	Gender      string   `json:"gender"` // ALL / MALE / FEMALE
	Locations   []string `json:"locations"`
	Description string   `json:"description,omitempty"`
}

// CampaignBrief is the advertiser's input to content generation.
// It is immutable once handed to the generator.
type CampaignBrief struct {
	BusinessName        string         `json:"business_name"`
	BusinessDescription string         `json:"business_description,omitempty"`
	ProductOrService    string         `json:"product_or_service"`
	KeySellingPoints    string         `json:"key_selling_points"`
	TargetAudience      TargetAudience `json:"target_audience"`
	CampaignObjective   string         `json:"campaign_objective"` // AWARENESS / CONSIDERATION / CONVERSIONS
	CallToAction        string         `json:"call_to_action"`
}

// Validate checks the fields the brief form treats as required.
func (b *CampaignBrief) Validate() error {
	if b.BusinessName == "" {
		return fmt.Errorf("business_name is required")
	}
	if b.ProductOrService == "" {
		return fmt.Errorf("product_or_service is required")
	}
	if b.KeySellingPoints == "" {
		return fmt.Errorf("key_selling_points is required")
	}
	return nil
}
