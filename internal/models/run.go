package models

import (
	"time"

	"github.com/google/uuid"
)

// Run statuses. A run walks the creation chain strictly forward; any
// non-terminal state may drop into failed, and nothing leaves a terminal
// state. Resources created before a failure stay on the platform — the
// pipeline never compensates.
const (
	RunStatusIdle             = "idle"
	RunStatusContentGenerated = "content_generated"
	RunStatusCampaignCreated  = "campaign_created"
	RunStatusAdSetCreated     = "ad_set_created"
	RunStatusAdCreated        = "ad_created"
	RunStatusFailed           = "failed"
)

// Valid state transitions: from -> []to
var ValidRunTransitions = map[string][]string{
	RunStatusIdle:             {RunStatusContentGenerated, RunStatusFailed},
	RunStatusContentGenerated: {RunStatusCampaignCreated, RunStatusFailed},
	RunStatusCampaignCreated:  {RunStatusAdSetCreated, RunStatusFailed},
	RunStatusAdSetCreated:     {RunStatusAdCreated, RunStatusFailed},
	RunStatusAdCreated:        {},
	RunStatusFailed:           {},
}

func IsValidRunTransition(from, to string) bool {
	allowed, ok := ValidRunTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// Run is one pass through the campaign-creation pipeline. Identifiers fill
// in as the platform assigns them and are never mutated afterwards.
// CreativeID can be set on a failed run: the creative write succeeded but
// the ad write did not, leaving an orphaned creative on the platform.
type Run struct {
	ID        uuid.UUID `json:"id"`
	SessionID uuid.UUID `json:"session_id"`
	Status    string    `json:"status"`

	CampaignName string  `json:"campaign_name"`
	Objective    string  `json:"objective"`
	DailyBudget  float64 `json:"daily_budget"`
	WebsiteURL   string  `json:"website_url,omitempty"`
	CallToAction string  `json:"call_to_action,omitempty"`

	AdAccountID string `json:"ad_account_id,omitempty"`
	PageID      string `json:"page_id,omitempty"`
	CampaignID  string `json:"campaign_id,omitempty"`
	AdSetID     string `json:"ad_set_id,omitempty"`
	CreativeID  string `json:"creative_id,omitempty"`
	AdID        string `json:"ad_id,omitempty"`

	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewRun starts an idle run for a session.
func NewRun(sessionID uuid.UUID) *Run {
	now := time.Now().UTC()
	return &Run{
		ID:        uuid.New(),
		SessionID: sessionID,
		Status:    RunStatusIdle,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Terminal reports whether the run can make no further transitions.
func (r *Run) Terminal() bool {
	return len(ValidRunTransitions[r.Status]) == 0
}
