package models

import "fmt"

// ContentFields are the keys the generator must produce, in one place so
// the LLM prompt and the validator cannot drift apart.
var ContentFields = []string{"headline", "primary_text", "description", "image_description"}

// GeneratedContent is the ad copy produced by the content generator.
// It is validated once, right after generation, and trusted afterwards.
type GeneratedContent struct {
	Headline         string `json:"headline"`
	PrimaryText      string `json:"primary_text"`
	Description      string `json:"description"`
	ImageDescription string `json:"image_description"`
}

// FromMap builds GeneratedContent from a decoded JSON object, requiring
// every content field to be present.
func ContentFromMap(m map[string]string) (GeneratedContent, error) {
	for _, f := range ContentFields {
		if _, ok := m[f]; !ok {
			return GeneratedContent{}, fmt.Errorf("generated content is missing required field: %s", f)
		}
	}
	return GeneratedContent{
		Headline:         m["headline"],
		PrimaryText:      m["primary_text"],
		Description:      m["description"],
		ImageDescription: m["image_description"],
	}, nil
}

// Validate reports whether the content still carries all four fields.
func (c *GeneratedContent) Validate() error {
	if c.Headline == "" || c.PrimaryText == "" || c.Description == "" || c.ImageDescription == "" {
		return fmt.Errorf("generated content is incomplete: headline, primary_text, description and image_description are all required")
	}
	return nil
}
