package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/adforge/backend/internal/models"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrNotFound means the session never stored the requested value, or its
// TTL already expired.
var ErrNotFound = errors.New("not found in session")

// Store keeps per-session state (settings, brief, generated content, run
// snapshots) in redis, TTL-bound. Nothing outlives the session: created
// campaign identifiers are kept only as long as the session itself.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

func NewStore(rdb *redis.Client, ttl time.Duration, log *zap.Logger) *Store {
	return &Store{rdb: rdb, ttl: ttl, log: log}
}

func settingsKey(sessionID uuid.UUID) string { return fmt.Sprintf("session:%s:settings", sessionID) }
func briefKey(sessionID uuid.UUID) string    { return fmt.Sprintf("session:%s:brief", sessionID) }
func contentKey(sessionID uuid.UUID) string  { return fmt.Sprintf("session:%s:content", sessionID) }
func currentRunKey(sessionID uuid.UUID) string {
	return fmt.Sprintf("session:%s:current_run", sessionID)
}
func runKey(runID uuid.UUID) string { return fmt.Sprintf("run:%s", runID) }

func (s *Store) setJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, data, s.ttl).Err()
}

func (s *Store) getJSON(ctx context.Context, key string, out any) error {
	data, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func (s *Store) SaveSettings(ctx context.Context, sessionID uuid.UUID, settings models.SessionSettings) error {
	return s.setJSON(ctx, settingsKey(sessionID), settings)
}

func (s *Store) GetSettings(ctx context.Context, sessionID uuid.UUID) (models.SessionSettings, error) {
	var settings models.SessionSettings
	err := s.getJSON(ctx, settingsKey(sessionID), &settings)
	return settings, err
}

func (s *Store) SaveBrief(ctx context.Context, sessionID uuid.UUID, brief models.CampaignBrief) error {
	return s.setJSON(ctx, briefKey(sessionID), brief)
}

func (s *Store) GetBrief(ctx context.Context, sessionID uuid.UUID) (models.CampaignBrief, error) {
	var brief models.CampaignBrief
	err := s.getJSON(ctx, briefKey(sessionID), &brief)
	return brief, err
}

func (s *Store) SaveContent(ctx context.Context, sessionID uuid.UUID, content models.GeneratedContent) error {
	return s.setJSON(ctx, contentKey(sessionID), content)
}

func (s *Store) GetContent(ctx context.Context, sessionID uuid.UUID) (models.GeneratedContent, error) {
	var content models.GeneratedContent
	err := s.getJSON(ctx, contentKey(sessionID), &content)
	return content, err
}

// SaveRun snapshots the run and marks it as the session's current run.
func (s *Store) SaveRun(ctx context.Context, run *models.Run) error {
	run.UpdatedAt = time.Now().UTC()
	if err := s.setJSON(ctx, runKey(run.ID), run); err != nil {
		return err
	}
	return s.rdb.Set(ctx, currentRunKey(run.SessionID), run.ID.String(), s.ttl).Err()
}

func (s *Store) GetRun(ctx context.Context, runID uuid.UUID) (*models.Run, error) {
	var run models.Run
	if err := s.getJSON(ctx, runKey(runID), &run); err != nil {
		return nil, err
	}
	return &run, nil
}

// CurrentRun returns the session's most recent run.
func (s *Store) CurrentRun(ctx context.Context, sessionID uuid.UUID) (*models.Run, error) {
	idStr, err := s.rdb.Get(ctx, currentRunKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	runID, err := uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}
	return s.GetRun(ctx, runID)
}
