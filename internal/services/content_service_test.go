package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/adforge/backend/internal/config"
	"github.com/adforge/backend/internal/events"
	"github.com/adforge/backend/internal/llm"
	"github.com/adforge/backend/internal/models"
	"github.com/adforge/backend/internal/sessions"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// stubGenerator returns canned content and records the model parameters it
// was called with.
type stubGenerator struct {
	content models.GeneratedContent
	err     error

	model       string
	temperature float64
}

func (g *stubGenerator) Generate(_ context.Context, _ models.CampaignBrief, model string, temperature float64) (models.GeneratedContent, error) {
	g.model = model
	g.temperature = temperature
	return g.content, g.err
}

func newContentFixture(t *testing.T, gen llm.Generator) (*ContentService, *sessions.Store, *capturingPublisher) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	store := sessions.NewStore(rdb, time.Hour, zap.NewNop())
	cfg := &config.Config{
		DefaultModel: "meta-llama/Meta-Llama-3.1-8B-Instruct-Turbo",
		DefaultTemp:  0.7,
	}
	pub := &capturingPublisher{}
	svc := NewContentService(gen, NewSettingsService(store, cfg), store, pub, zap.NewNop())
	return svc, store, pub
}

func testBrief() models.CampaignBrief {
	return models.CampaignBrief{
		BusinessName:      "Acme",
		ProductOrService:  "Widget",
		KeySellingPoints:  "Cheap, durable",
		CampaignObjective: "CONSIDERATION",
		CallToAction:      "SHOP_NOW",
	}
}

func TestGenerateContent(t *testing.T) {
	gen := &stubGenerator{
		content: models.GeneratedContent{
			Headline:         "Meet Widget",
			PrimaryText:      "Widgets for everyone",
			Description:      "Try it today",
			ImageDescription: "A widget on a desk",
		},
	}
	svc, store, pub := newContentFixture(t, gen)
	ctx := context.Background()
	sessionID := uuid.New()

	run, content, err := svc.Generate(ctx, sessionID, testBrief())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if run.Status != models.RunStatusContentGenerated {
		t.Errorf("run status = %s, want %s", run.Status, models.RunStatusContentGenerated)
	}
	if run.Objective != "CONSIDERATION" || run.CallToAction != "SHOP_NOW" {
		t.Errorf("run should carry the brief's objective and CTA: %+v", run)
	}
	if content.Headline != "Meet Widget" {
		t.Errorf("content = %+v", content)
	}

	// Config defaults reach the generator when the session stored nothing.
	if gen.model != "meta-llama/Meta-Llama-3.1-8B-Instruct-Turbo" || gen.temperature != 0.7 {
		t.Errorf("generator called with (%q, %v)", gen.model, gen.temperature)
	}

	// Brief, content and run all land in the session store.
	if _, err := store.GetBrief(ctx, sessionID); err != nil {
		t.Errorf("brief not stored: %v", err)
	}
	stored, err := store.GetContent(ctx, sessionID)
	if err != nil || stored != gen.content {
		t.Errorf("content not stored: %+v, %v", stored, err)
	}
	current, err := store.CurrentRun(ctx, sessionID)
	if err != nil || current.ID != run.ID {
		t.Errorf("current run not stored: %+v, %v", current, err)
	}

	if n := len(pub.byType(events.EventContentGenerated)); n != 1 {
		t.Errorf("expected one content event, got %d", n)
	}
	if n := len(pub.byType(events.EventRunStatusChanged)); n != 1 {
		t.Errorf("expected one status event, got %d", n)
	}
}

func TestGenerateContent_SessionSettingsOverrideDefaults(t *testing.T) {
	gen := &stubGenerator{
		content: models.GeneratedContent{
			Headline:         "h",
			PrimaryText:      "p",
			Description:      "d",
			ImageDescription: "i",
		},
	}
	svc, store, _ := newContentFixture(t, gen)
	ctx := context.Background()
	sessionID := uuid.New()

	if err := store.SaveSettings(ctx, sessionID, models.SessionSettings{
		Model:       "mistralai/Mixtral-8x7B-Instruct-v0.1",
		Temperature: 0.3,
	}); err != nil {
		t.Fatalf("save settings: %v", err)
	}

	if _, _, err := svc.Generate(ctx, sessionID, testBrief()); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if gen.model != "mistralai/Mixtral-8x7B-Instruct-v0.1" || gen.temperature != 0.3 {
		t.Errorf("generator called with (%q, %v)", gen.model, gen.temperature)
	}
}

func TestGenerateContent_InvalidBrief(t *testing.T) {
	gen := &stubGenerator{}
	svc, store, _ := newContentFixture(t, gen)
	ctx := context.Background()
	sessionID := uuid.New()

	_, _, err := svc.Generate(ctx, sessionID, models.CampaignBrief{BusinessName: "Acme"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if gen.model != "" {
		t.Error("generator should not be called for an invalid brief")
	}
	if _, err := store.CurrentRun(ctx, sessionID); !errors.Is(err, sessions.ErrNotFound) {
		t.Errorf("no run should exist, got %v", err)
	}
}

func TestGenerateContent_GenerationFailureLeavesNoRun(t *testing.T) {
	gen := &stubGenerator{err: &llm.GenerationError{Err: errors.New("model unavailable")}}
	svc, store, pub := newContentFixture(t, gen)
	ctx := context.Background()
	sessionID := uuid.New()

	_, _, err := svc.Generate(ctx, sessionID, testBrief())
	var ge *llm.GenerationError
	if !errors.As(err, &ge) {
		t.Fatalf("expected GenerationError, got %T: %v", err, err)
	}
	if _, err := store.CurrentRun(ctx, sessionID); !errors.Is(err, sessions.ErrNotFound) {
		t.Errorf("no run should exist after a failed generation, got %v", err)
	}
	if len(pub.events) != 0 {
		t.Errorf("no events should be published, got %d", len(pub.events))
	}
}
