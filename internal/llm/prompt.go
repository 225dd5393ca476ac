package llm

import (
	"fmt"
	"strings"

	"github.com/adforge/backend/internal/models"
)

const systemPrompt = "You are an expert marketing copywriter specializing in creating engaging ad content for social media platforms."

// buildPrompt renders the campaign brief into the generation prompt. The
// response contract (four JSON fields, length limits) lives here and in
// models.ContentFields; keep them in sync.
func buildPrompt(brief models.CampaignBrief) string {
	audience := brief.TargetAudience

	ageRange := audience.AgeRange
	if ageRange == "" {
		ageRange = "25-45"
	}
	gender := audience.Gender
	if gender == "" {
		gender = "ALL"
	}
	locations := strings.Join(audience.Locations, ", ")
	if locations == "" {
		locations = "United States"
	}

	objective := brief.CampaignObjective
	if objective == "" {
		objective = "CONSIDERATION"
	}
	cta := brief.CallToAction
	if cta == "" {
		cta = "LEARN_MORE"
	}

	return fmt.Sprintf(`
Create engaging ad content for a social media campaign based on the following brief:

BUSINESS INFORMATION:
- Business Name: %s
- Business Description: %s
- Product/Service: %s

KEY SELLING POINTS:
%s

TARGET AUDIENCE:
- Age Range: %s
- Gender: %s
- Locations: %s
- Description: %s

CAMPAIGN OBJECTIVE: %s
CALL TO ACTION: %s

Please generate the following content for this ad campaign:
1. A compelling headline (max 40 characters)
2. Primary text (max 125 characters)
3. Ad description (max 30 characters)
4. Image description for the ad creative

Format your response as a JSON object with the following structure:
{
  "headline": "Your headline here",
  "primary_text": "Your primary text here",
  "description": "Your description here",
  "image_description": "Your image description here"
}

Keep the content concise, engaging, and aligned with the brand and target audience. Make sure to highlight the key selling points and include a clear call to action.
`,
		brief.BusinessName,
		brief.BusinessDescription,
		brief.ProductOrService,
		brief.KeySellingPoints,
		ageRange,
		gender,
		locations,
		audience.Description,
		objective,
		cta,
	)
}
