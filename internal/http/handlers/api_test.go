package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/adforge/backend/internal/config"
	"github.com/adforge/backend/internal/events"
	apphttp "github.com/adforge/backend/internal/http"
	"github.com/adforge/backend/internal/http/handlers"
	"github.com/adforge/backend/internal/llm"
	"github.com/adforge/backend/internal/metaads"
	"github.com/adforge/backend/internal/models"
	"github.com/adforge/backend/internal/services"
	"github.com/adforge/backend/internal/sessions"
	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// stubGenerator satisfies llm.Generator with canned content.
type stubGenerator struct {
	content models.GeneratedContent
	err     error
}

func (g *stubGenerator) Generate(context.Context, models.CampaignBrief, string, float64) (models.GeneratedContent, error) {
	return g.content, g.err
}

// noopSubscriber keeps the WS hub inert in handler tests.
type noopSubscriber struct{}

func (noopSubscriber) Subscribe(context.Context, string, func(events.Event)) error { return nil }

// noopPublisher drops events.
type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, string, events.Event) error { return nil }

type testAPI struct {
	app   *fiber.App
	store *sessions.Store
	graph *httptest.Server
}

// graphStub fakes the creation endpoints with fixed ids and the identity
// endpoint with a fixed user.
func graphStub(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/me"):
			fmt.Fprint(w, `{"id":"1","name":"Jane Example"}`)
		case strings.HasSuffix(r.URL.Path, "/me/adaccounts"):
			fmt.Fprint(w, `{"data":[{"id":"act_1","name":"Main"}]}`)
		case strings.HasSuffix(r.URL.Path, "/me/accounts"):
			fmt.Fprint(w, `{"data":[{"id":"page_9","name":"Acme Page"}]}`)
		case strings.HasSuffix(r.URL.Path, "/campaigns"):
			fmt.Fprint(w, `{"id":"camp_1"}`)
		case strings.HasSuffix(r.URL.Path, "/adsets"):
			fmt.Fprint(w, `{"id":"as_1"}`)
		case strings.HasSuffix(r.URL.Path, "/adcreatives"):
			fmt.Fprint(w, `{"id":"cr_1"}`)
		case strings.HasSuffix(r.URL.Path, "/ads"):
			fmt.Fprint(w, `{"id":"ad_1"}`)
		default:
			fmt.Fprint(w, `{"id":"other"}`)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestAPI(t *testing.T, gen llm.Generator) *testAPI {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	log := zap.NewNop()
	cfg := &config.Config{
		DefaultModel:  "meta-llama/Meta-Llama-3.1-8B-Instruct-Turbo",
		DefaultTemp:   0.7,
		JWTSecret:     "test-secret",
		JWTExpiration: time.Hour,
		SessionTTL:    time.Hour,
	}

	graph := graphStub(t)
	metaClient := metaads.NewClient(graph.URL, log)

	store := sessions.NewStore(rdb, cfg.SessionTTL, log)
	settingsService := services.NewSettingsService(store, cfg)
	contentService := services.NewContentService(gen, settingsService, store, noopPublisher{}, log)
	pipelineService := services.NewPipelineService(metaClient, store, noopPublisher{}, log)

	app := fiber.New()
	apphttp.SetupRouter(app, cfg, log, rdb,
		handlers.NewSessionHandler(cfg, log),
		handlers.NewSettingsHandler(settingsService, log),
		handlers.NewMetaHandler(metaClient, settingsService, log),
		handlers.NewContentHandler(contentService, store, log),
		handlers.NewCampaignHandler(pipelineService, settingsService, metaClient, store, log),
		handlers.NewRunHandler(store, log),
		handlers.NewWSHub(cfg, noopSubscriber{}, log),
	)

	return &testAPI{app: app, store: store, graph: graph}
}

func (a *testAPI) request(t *testing.T, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}

	var decoded map[string]any
	data, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if len(data) > 0 {
		_ = json.Unmarshal(data, &decoded)
	}
	return resp, decoded
}

// session bootstraps a fresh session and returns its token.
func (a *testAPI) session(t *testing.T) string {
	t.Helper()
	resp, body := a.request(t, http.MethodPost, "/api/v1/auth/session", "", nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("session bootstrap returned %d", resp.StatusCode)
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatal("no token in session response")
	}
	return token
}

func TestCreateSession(t *testing.T) {
	api := newTestAPI(t, &stubGenerator{})

	resp, body := api.request(t, http.MethodPost, "/api/v1/auth/session", "", nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	if body["token"] == "" || body["session_id"] == "" {
		t.Errorf("incomplete session response: %v", body)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	api := newTestAPI(t, &stubGenerator{})

	paths := []string{"/api/v1/settings", "/api/v1/meta/check-access", "/api/v1/runs/current"}
	for _, path := range paths {
		resp, _ := api.request(t, http.MethodGet, path, "", nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("%s without token: status = %d, want 401", path, resp.StatusCode)
		}
	}

	resp, _ := api.request(t, http.MethodGet, "/api/v1/settings", "not-a-jwt", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("garbage token: status = %d, want 401", resp.StatusCode)
	}
}

func TestSettingsRedactToken(t *testing.T) {
	api := newTestAPI(t, &stubGenerator{})
	token := api.session(t)

	resp, body := api.request(t, http.MethodPut, "/api/v1/settings", token, map[string]any{
		"meta_access_token": "EAAB-secret",
		"page_id":           "page_42",
		"temperature":       0.3,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	data, _ := body["data"].(map[string]any)
	if data == nil {
		t.Fatalf("no data in response: %v", body)
	}
	if data["meta_token_set"] != true {
		t.Errorf("meta_token_set = %v, want true", data["meta_token_set"])
	}
	if data["page_id"] != "page_42" || data["temperature"] != 0.3 {
		t.Errorf("settings not applied: %v", data)
	}
	raw, _ := json.Marshal(body)
	if strings.Contains(string(raw), "EAAB-secret") {
		t.Error("access token must never be echoed back")
	}
}

func TestCatalogsArePublic(t *testing.T) {
	api := newTestAPI(t, &stubGenerator{})

	resp, body := api.request(t, http.MethodGet, "/api/v1/catalog/call-to-actions", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	items, _ := body["data"].([]any)
	if len(items) != 5 {
		t.Errorf("expected 5 call-to-action options, got %d", len(items))
	}

	resp, body = api.request(t, http.MethodGet, "/api/v1/catalog/countries", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	countries, _ := body["data"].([]any)
	if len(countries) != 12 {
		t.Errorf("expected 12 countries, got %d", len(countries))
	}
}

func TestCheckAccessWithoutToken(t *testing.T) {
	api := newTestAPI(t, &stubGenerator{})
	token := api.session(t)

	resp, body := api.request(t, http.MethodGet, "/api/v1/meta/check-access", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	data, _ := body["data"].(map[string]any)
	if data["connected"] != false {
		t.Errorf("connected = %v, want false when no token is set", data["connected"])
	}
}

func TestGenerateAndLaunchFlow(t *testing.T) {
	gen := &stubGenerator{content: models.GeneratedContent{
		Headline:         "Meet Widget",
		PrimaryText:      "Widgets for everyone",
		Description:      "Try it today",
		ImageDescription: "A widget on a desk",
	}}
	api := newTestAPI(t, gen)
	token := api.session(t)

	// Configure the Meta token for this session.
	resp, _ := api.request(t, http.MethodPut, "/api/v1/settings", token, map[string]any{
		"meta_access_token": "tok",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("settings update: %d", resp.StatusCode)
	}

	// Generate content.
	resp, body := api.request(t, http.MethodPost, "/api/v1/content/generate", token, map[string]any{
		"brief": map[string]any{
			"business_name":      "Acme",
			"product_or_service": "Widget",
			"key_selling_points": "Cheap, durable",
			"campaign_objective": "CONSIDERATION",
			"call_to_action":     "SHOP_NOW",
		},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("generate: status = %d, body = %v", resp.StatusCode, body)
	}
	data, _ := body["data"].(map[string]any)
	run, _ := data["run"].(map[string]any)
	if run["status"] != models.RunStatusContentGenerated {
		t.Fatalf("run status = %v", run["status"])
	}
	runID, _ := run["id"].(string)

	// Launch. Ad account and page come from token discovery.
	resp, body = api.request(t, http.MethodPost, "/api/v1/campaigns", token, map[string]any{
		"run_id":        runID,
		"campaign_name": "Acme Launch",
		"daily_budget":  85.0,
		"website_url":   "https://acme.example",
		"targeting":     map[string]any{"locations": []string{"US", "IN"}},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("launch: status = %d, body = %v", resp.StatusCode, body)
	}
	launched, _ := body["data"].(map[string]any)
	if launched["status"] != models.RunStatusAdCreated {
		t.Errorf("run status = %v, want %s", launched["status"], models.RunStatusAdCreated)
	}
	if launched["campaign_id"] != "camp_1" || launched["ad_set_id"] != "as_1" || launched["ad_id"] != "ad_1" {
		t.Errorf("platform ids wrong: %v", launched)
	}
	if launched["ad_account_id"] != "act_1" || launched["page_id"] != "page_9" {
		t.Errorf("discovered identifiers wrong: %v", launched)
	}

	// The run is readable afterwards, and only by its own session.
	resp, _ = api.request(t, http.MethodGet, "/api/v1/runs/"+runID, token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("get run: status = %d", resp.StatusCode)
	}
	other := api.session(t)
	resp, _ = api.request(t, http.MethodGet, "/api/v1/runs/"+runID, other, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("cross-session run read: status = %d, want 404", resp.StatusCode)
	}
}

func TestLaunchWithoutContent(t *testing.T) {
	api := newTestAPI(t, &stubGenerator{})
	token := api.session(t)

	resp, _ := api.request(t, http.MethodPut, "/api/v1/settings", token, map[string]any{
		"meta_access_token": "tok",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("settings update: %d", resp.StatusCode)
	}

	resp, body := api.request(t, http.MethodPost, "/api/v1/campaigns", token, map[string]any{
		"run_id":        "00000000-0000-0000-0000-000000000001",
		"campaign_name": "Acme Launch",
		"daily_budget":  85.0,
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("launch with unknown run: status = %d, body = %v", resp.StatusCode, body)
	}
}
