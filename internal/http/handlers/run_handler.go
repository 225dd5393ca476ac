package handlers

import (
	"errors"

	"github.com/adforge/backend/internal/http/dto"
	"github.com/adforge/backend/internal/middleware"
	"github.com/adforge/backend/internal/sessions"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RunHandler struct {
	store *sessions.Store
	log   *zap.Logger
}

func NewRunHandler(store *sessions.Store, log *zap.Logger) *RunHandler {
	return &RunHandler{store: store, log: log}
}

// GetRun returns one run snapshot. Runs belong to sessions; asking for
// another session's run looks identical to asking for a missing one.
func (h *RunHandler) GetRun(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid run id"})
	}

	run, err := h.store.GetRun(c.Context(), id)
	if err != nil {
		if errors.Is(err, sessions.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "run not found"})
		}
		h.log.Error("failed to load run", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	if run.SessionID != middleware.GetSessionID(c) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "run not found"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: run})
}

// GetCurrentRun returns the session's most recent run.
func (h *RunHandler) GetCurrentRun(c *fiber.Ctx) error {
	sessionID := middleware.GetSessionID(c)
	run, err := h.store.CurrentRun(c.Context(), sessionID)
	if err != nil {
		if errors.Is(err, sessions.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "no runs for this session"})
		}
		h.log.Error("failed to load current run", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: run})
}
