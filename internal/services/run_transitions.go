package services

import (
	"context"
	"fmt"

	"github.com/adforge/backend/internal/events"
	"github.com/adforge/backend/internal/models"
	"github.com/adforge/backend/internal/sessions"
	"go.uber.org/zap"
)

// transitionRun validates and performs a run status transition, snapshots
// the run into the session store and publishes the change. The snapshot is
// authoritative; the event is best-effort.
func transitionRun(ctx context.Context, store *sessions.Store, publisher events.Publisher, log *zap.Logger, run *models.Run, newStatus string) error {
	if !models.IsValidRunTransition(run.Status, newStatus) {
		return fmt.Errorf("invalid run transition from %s to %s", run.Status, newStatus)
	}

	oldStatus := run.Status
	run.Status = newStatus
	if err := store.SaveRun(ctx, run); err != nil {
		run.Status = oldStatus
		return err
	}

	payload := map[string]any{
		"run_id":     run.ID.String(),
		"session_id": run.SessionID.String(),
		"old_status": oldStatus,
		"new_status": newStatus,
	}
	if run.Error != "" {
		payload["error"] = run.Error
	}
	if err := publisher.Publish(ctx, events.StreamRuns, events.Event{
		Type:    events.EventRunStatusChanged,
		Payload: payload,
	}); err != nil {
		log.Warn("failed to publish run event", zap.Error(err), zap.String("run_id", run.ID.String()))
	}

	return nil
}
