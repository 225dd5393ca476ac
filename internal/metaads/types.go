package metaads

// User is returned by GET /me.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// listEnvelope wraps Graph API list responses; only the first page is ever
// consumed.
type listEnvelope struct {
	Data []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"data"`
}

// createResponse is the body of every successful write: the new resource id.
type createResponse struct {
	ID string `json:"id"`
}

// errorEnvelope is the Graph API's structured error body.
type errorEnvelope struct {
	Error *PlatformError `json:"error"`
}

// CreativeData describes the link-ad creative to build. PageID is required;
// its absence fails locally before any request is sent.
type CreativeData struct {
	Title        string `json:"title"`
	Body         string `json:"body"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url"`
	WebsiteURL   string `json:"website_url"`
	CallToAction string `json:"call_to_action"`
	PageID       string `json:"page_id"`
}

// CampaignDetails is the read-back of a created campaign.
type CampaignDetails struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Objective   string `json:"objective"`
	Status      string `json:"status"`
	CreatedTime string `json:"created_time"`
	UpdatedTime string `json:"updated_time"`
}

// Wire shapes for the creation calls.

type campaignRequest struct {
	Name                string   `json:"name"`
	Objective           string   `json:"objective"`
	Status              string   `json:"status"`
	SpecialAdCategories []string `json:"special_ad_categories"`
}

type adSetRequest struct {
	Name             string        `json:"name"`
	CampaignID       string        `json:"campaign_id"`
	DailyBudget      int64         `json:"daily_budget"` // minor currency units
	OptimizationGoal string        `json:"optimization_goal"`
	BillingEvent     string        `json:"billing_event"`
	BidStrategy      string        `json:"bid_strategy"`
	Status           string        `json:"status"`
	Targeting        TargetingSpec `json:"targeting"`
	StartTime        int64         `json:"start_time"` // epoch seconds
	EndTime          int64         `json:"end_time"`   // epoch seconds
}

type callToAction struct {
	Type string `json:"type"`
}

type linkData struct {
	Message      string       `json:"message"`
	Link         string       `json:"link"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	CallToAction callToAction `json:"call_to_action"`
	ImageHash    string       `json:"image_hash"`
}

type objectStorySpec struct {
	PageID   string   `json:"page_id"`
	LinkData linkData `json:"link_data"`
}

type creativeRequest struct {
	Name            string          `json:"name"`
	ObjectStorySpec objectStorySpec `json:"object_story_spec"`
}

type adRequest struct {
	Name     string            `json:"name"`
	AdSetID  string            `json:"adset_id"`
	Creative map[string]string `json:"creative"`
	Status   string            `json:"status"`
}
