package services

import (
	"context"
	"errors"

	"github.com/adforge/backend/internal/config"
	"github.com/adforge/backend/internal/models"
	"github.com/adforge/backend/internal/sessions"
	"github.com/google/uuid"
)

// SettingsService resolves per-session settings on top of the configured
// defaults, so every downstream operation sees one effective value set.
type SettingsService struct {
	store *sessions.Store
	cfg   *config.Config
}

func NewSettingsService(store *sessions.Store, cfg *config.Config) *SettingsService {
	return &SettingsService{store: store, cfg: cfg}
}

// Effective returns the session's settings with config defaults filling any
// gaps. A session that never stored anything just gets the defaults.
func (s *SettingsService) Effective(ctx context.Context, sessionID uuid.UUID) models.SessionSettings {
	settings := models.SessionSettings{
		MetaAccessToken: s.cfg.MetaAccessToken,
		PageID:          s.cfg.FacebookPageID,
		Model:           s.cfg.DefaultModel,
		Temperature:     s.cfg.DefaultTemp,
	}
	if stored, err := s.store.GetSettings(ctx, sessionID); err == nil {
		settings.Merge(stored)
	}
	return settings
}

// Update overlays the patch onto whatever the session already stored and
// returns the new effective settings.
func (s *SettingsService) Update(ctx context.Context, sessionID uuid.UUID, patch models.SessionSettings) (models.SessionSettings, error) {
	stored, err := s.store.GetSettings(ctx, sessionID)
	if err != nil && !errors.Is(err, sessions.ErrNotFound) {
		return models.SessionSettings{}, err
	}

	stored.Merge(patch)
	if err := s.store.SaveSettings(ctx, sessionID, stored); err != nil {
		return models.SessionSettings{}, err
	}
	return s.Effective(ctx, sessionID), nil
}
