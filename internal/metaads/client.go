package metaads

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the Meta Graph API host.
	DefaultBaseURL = "https://graph.facebook.com"

	graphVersion = "v22.0"
	// Page listing still rides the older endpoint version.
	pagesGraphVersion = "v18.0"

	// TODO: upload the creative image and hash it; until then every
	// creative reuses this stock image reference.
	placeholderImageHash = "4098e58bb25e54ff17283d7bf4f44fd6"

	adSetRunWindow = 30 * 24 * time.Hour

	optimizationGoal = "LINK_CLICKS"
	billingEvent     = "IMPRESSIONS"
	bidStrategy      = "LOWEST_COST_WITHOUT_CAP"
)

// objectiveMapping translates the three high-level objectives into the
// platform's internal vocabulary. Unrecognized input falls back to
// OUTCOME_TRAFFIC.
var objectiveMapping = map[string]string{
	"AWARENESS":     "BRAND_AWARENESS",
	"CONSIDERATION": "OUTCOME_TRAFFIC",
	"CONVERSIONS":   "CONVERSIONS",
}

// Client talks to the Meta Ads Graph API. It is stateless: the access token
// is passed by value on every call (as the access_token query parameter),
// each operation is a single synchronous request with no retries, and list
// reads consume the first page only.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

func NewClient(baseURL string, log *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

// endpoint builds a versioned URL with the access token and extra query
// parameters attached.
func (c *Client) endpoint(version, path, token string, fields string) string {
	q := url.Values{}
	q.Set("access_token", token)
	if fields != "" {
		q.Set("fields", fields)
	}
	return fmt.Sprintf("%s/%s/%s?%s", c.baseURL, version, path, q.Encode())
}

// do executes a request and normalizes every failure into a typed error.
func (c *Client) do(req *http.Request, op string) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, platformError(op, resp.StatusCode, body)
	}
	return body, nil
}

// platformError extracts the structured error object from the response body
// when present; otherwise the status line and raw body have to do.
func platformError(op string, statusCode int, body []byte) error {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error != nil {
		pe := env.Error
		pe.Op = op
		pe.StatusCode = statusCode
		pe.Body = string(body)
		return pe
	}
	return &PlatformError{
		Op:         op,
		StatusCode: statusCode,
		Message:    http.StatusText(statusCode),
		Body:       string(body),
	}
}

func (c *Client) getJSON(ctx context.Context, rawURL, op string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}

	body, err := c.do(req, op)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &TransportError{Op: op, Err: err}
	}
	return nil
}

// postJSON submits a creation call and returns the new resource's id.
func (c *Client) postJSON(ctx context.Context, rawURL, op string, payload any) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", &TransportError{Op: op, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(data))
	if err != nil {
		return "", &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(req, op)
	if err != nil {
		return "", err
	}

	var created createResponse
	if err := json.Unmarshal(body, &created); err != nil {
		return "", &TransportError{Op: op, Err: err}
	}
	return created.ID, nil
}

// Me probes the identity endpoint. A 401 comes back as *AuthError; this is
// the only path that classifies authentication failures.
func (c *Client) Me(ctx context.Context, token string) (User, error) {
	const op = "Failed to check API access"

	var user User
	err := c.getJSON(ctx, c.endpoint(graphVersion, "me", token, "id,name"), op, &user)
	if err != nil {
		var pe *PlatformError
		if errors.As(err, &pe) && pe.StatusCode == http.StatusUnauthorized {
			return User{}, &AuthError{Op: op}
		}
		return User{}, err
	}
	return user, nil
}

// CheckAccess reports whether the token can reach the API. It never returns
// an error: the outcome is always an (ok, human-readable message) pair.
func (c *Client) CheckAccess(ctx context.Context, token string) (bool, string) {
	user, err := c.Me(ctx, token)
	if err != nil {
		var authErr *AuthError
		if errors.As(err, &authErr) {
			return false, "Invalid access token"
		}
		return false, fmt.Sprintf("API connection error: %v", err)
	}

	name := user.Name
	if name == "" {
		name = "Unknown"
	}
	return true, fmt.Sprintf("Connected as %s", name)
}

// GetAdAccountID returns the first ad account reachable by the token. An
// empty list or a failed request is "absent", not an error: callers should
// tell the user to check their token.
func (c *Client) GetAdAccountID(ctx context.Context, token string) (string, bool) {
	var accounts listEnvelope
	err := c.getJSON(ctx, c.endpoint(graphVersion, "me/adaccounts", token, "id,name"), "Failed to list ad accounts", &accounts)
	if err != nil {
		c.log.Debug("ad account lookup failed", zap.Error(err))
		return "", false
	}
	if len(accounts.Data) == 0 {
		return "", false
	}
	return accounts.Data[0].ID, true
}

// GetPageID returns the first page reachable by the token, same contract as
// GetAdAccountID.
func (c *Client) GetPageID(ctx context.Context, token string) (string, bool) {
	var pages listEnvelope
	err := c.getJSON(ctx, c.endpoint(pagesGraphVersion, "me/accounts", token, "id,name"), "Failed to list pages", &pages)
	if err != nil {
		c.log.Debug("page lookup failed", zap.Error(err))
		return "", false
	}
	if len(pages.Data) == 0 {
		return "", false
	}
	return pages.Data[0].ID, true
}

// CreateCampaign creates a campaign and returns its id. The special-category
// list is always submitted empty.
func (c *Client) CreateCampaign(ctx context.Context, token, accountID, name, objective, status string) (string, error) {
	metaObjective, ok := objectiveMapping[objective]
	if !ok {
		metaObjective = "OUTCOME_TRAFFIC"
	}

	payload := campaignRequest{
		Name:                name,
		Objective:           metaObjective,
		Status:              status,
		SpecialAdCategories: []string{},
	}
	return c.postJSON(ctx, c.endpoint(graphVersion, accountID+"/campaigns", token, ""), "Failed to create campaign", payload)
}

// CreateAdSet creates an ad set under a campaign. The daily budget arrives
// in major currency units and is converted to minor units (truncating). The
// run window is fixed: now until now plus thirty days.
func (c *Client) CreateAdSet(ctx context.Context, token, accountID, name, campaignID string, dailyBudget float64, targeting TargetingSpec, status string) (string, error) {
	startTime := time.Now().Unix()
	endTime := startTime + int64(adSetRunWindow/time.Second)

	payload := adSetRequest{
		Name:             name,
		CampaignID:       campaignID,
		DailyBudget:      int64(dailyBudget * 100),
		OptimizationGoal: optimizationGoal,
		BillingEvent:     billingEvent,
		BidStrategy:      bidStrategy,
		Status:           status,
		Targeting:        targeting,
		StartTime:        startTime,
		EndTime:          endTime,
	}
	return c.postJSON(ctx, c.endpoint(graphVersion, accountID+"/adsets", token, ""), "Failed to create ad set", payload)
}

// CreateAdCreative builds a link-ad creative referencing the page. PageID is
// required; its absence fails here, before any request goes out.
func (c *Client) CreateAdCreative(ctx context.Context, token, accountID string, creative CreativeData) (string, error) {
	if creative.PageID == "" {
		return "", &ValidationError{Msg: "Facebook Page ID is required to create an ad creative"}
	}

	cta := creative.CallToAction
	if cta == "" {
		cta = "LEARN_MORE"
	}

	payload := creativeRequest{
		Name: fmt.Sprintf("Creative for %s", creative.Title),
		ObjectStorySpec: objectStorySpec{
			PageID: creative.PageID,
			LinkData: linkData{
				Message:      creative.Body,
				Link:         creative.WebsiteURL,
				Name:         creative.Title,
				Description:  creative.Description,
				CallToAction: callToAction{Type: cta},
				ImageHash:    placeholderImageHash,
			},
		},
	}
	return c.postJSON(ctx, c.endpoint(graphVersion, accountID+"/adcreatives", token, ""), "Failed to create ad creative", payload)
}

// CreateAd is a two-call composite: it creates the creative first, then the
// ad referencing it. Not atomic — when the ad write fails the creative stays
// on the platform; the returned creativeID lets callers surface the orphan.
func (c *Client) CreateAd(ctx context.Context, token, accountID, name, adSetID string, creative CreativeData, status string) (adID, creativeID string, err error) {
	creativeID, err = c.CreateAdCreative(ctx, token, accountID, creative)
	if err != nil {
		return "", "", err
	}

	payload := adRequest{
		Name:     name,
		AdSetID:  adSetID,
		Creative: map[string]string{"creative_id": creativeID},
		Status:   status,
	}
	adID, err = c.postJSON(ctx, c.endpoint(graphVersion, accountID+"/ads", token, ""), "Failed to create ad", payload)
	if err != nil {
		return "", creativeID, err
	}
	return adID, creativeID, nil
}

// GetCampaignDetails reads a campaign back.
func (c *Client) GetCampaignDetails(ctx context.Context, token, campaignID string) (*CampaignDetails, error) {
	var details CampaignDetails
	err := c.getJSON(ctx, c.endpoint(graphVersion, campaignID, token, "id,name,objective,status,created_time,updated_time"), "Failed to get campaign details", &details)
	if err != nil {
		return nil, err
	}
	return &details, nil
}
