package services

import (
	"context"

	"github.com/adforge/backend/internal/events"
	"github.com/adforge/backend/internal/llm"
	"github.com/adforge/backend/internal/models"
	"github.com/adforge/backend/internal/sessions"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContentService turns a campaign brief into generated ad copy and opens a
// pipeline run for it. Generation failures produce no run: the advertiser
// just resubmits the brief.
type ContentService struct {
	generator llm.Generator
	settings  *SettingsService
	store     *sessions.Store
	publisher events.Publisher
	log       *zap.Logger
}

func NewContentService(
	generator llm.Generator,
	settings *SettingsService,
	store *sessions.Store,
	publisher events.Publisher,
	log *zap.Logger,
) *ContentService {
	return &ContentService{
		generator: generator,
		settings:  settings,
		store:     store,
		publisher: publisher,
		log:       log,
	}
}

// Generate validates the brief, asks the model for content, and stores both
// in the session. The returned run is in content_generated and is what a
// later launch call picks up.
func (s *ContentService) Generate(ctx context.Context, sessionID uuid.UUID, brief models.CampaignBrief) (*models.Run, models.GeneratedContent, error) {
	if err := brief.Validate(); err != nil {
		return nil, models.GeneratedContent{}, err
	}

	settings := s.settings.Effective(ctx, sessionID)
	content, err := s.generator.Generate(ctx, brief, settings.Model, settings.Temperature)
	if err != nil {
		s.log.Warn("content generation failed", zap.Error(err), zap.String("session_id", sessionID.String()))
		return nil, models.GeneratedContent{}, err
	}

	if err := s.store.SaveBrief(ctx, sessionID, brief); err != nil {
		return nil, models.GeneratedContent{}, err
	}
	if err := s.store.SaveContent(ctx, sessionID, content); err != nil {
		return nil, models.GeneratedContent{}, err
	}

	run := models.NewRun(sessionID)
	run.Objective = brief.CampaignObjective
	run.CallToAction = brief.CallToAction
	if err := transitionRun(ctx, s.store, s.publisher, s.log, run, models.RunStatusContentGenerated); err != nil {
		return nil, models.GeneratedContent{}, err
	}

	if err := s.publisher.Publish(ctx, events.StreamRuns, events.Event{
		Type: events.EventContentGenerated,
		Payload: map[string]any{
			"run_id":     run.ID.String(),
			"session_id": sessionID.String(),
			"headline":   content.Headline,
		},
	}); err != nil {
		s.log.Warn("failed to publish content event", zap.Error(err))
	}

	s.log.Info("campaign content generated",
		zap.String("session_id", sessionID.String()),
		zap.String("run_id", run.ID.String()),
	)
	return run, content, nil
}
