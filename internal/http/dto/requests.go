package dto

import (
	"github.com/adforge/backend/internal/metaads"
	"github.com/adforge/backend/internal/models"
)

type UpdateSettingsRequest struct {
	MetaAccessToken *string  `json:"meta_access_token,omitempty"`
	PageID          *string  `json:"page_id,omitempty"`
	Model           *string  `json:"model,omitempty"`
	Temperature     *float64 `json:"temperature,omitempty"`
}

type GenerateContentRequest struct {
	Brief models.CampaignBrief `json:"brief"`
}

type LaunchCampaignRequest struct {
	RunID        string                   `json:"run_id"`
	CampaignName string                   `json:"campaign_name"`
	Objective    string                   `json:"objective,omitempty"` // AWARENESS / CONSIDERATION / CONVERSIONS
	DailyBudget  float64                  `json:"daily_budget"`
	WebsiteURL   string                   `json:"website_url,omitempty"`
	CallToAction string                   `json:"call_to_action,omitempty"`
	Targeting    metaads.TargetingInput   `json:"targeting"`
	AdAccountID  string                   `json:"ad_account_id,omitempty"` // discovered from the token when empty
	PageID       string                   `json:"page_id,omitempty"`
	Content      *models.GeneratedContent `json:"content,omitempty"` // edited copy; stored content when absent
}
