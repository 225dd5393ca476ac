package handlers

import (
	"errors"

	"github.com/adforge/backend/internal/http/dto"
	"github.com/adforge/backend/internal/llm"
	"github.com/adforge/backend/internal/middleware"
	"github.com/adforge/backend/internal/services"
	"github.com/adforge/backend/internal/sessions"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ContentHandler struct {
	content *services.ContentService
	store   *sessions.Store
	log     *zap.Logger
}

func NewContentHandler(content *services.ContentService, store *sessions.Store, log *zap.Logger) *ContentHandler {
	return &ContentHandler{content: content, store: store, log: log}
}

// GenerateContent runs the brief through the model and opens a run holding
// the result. The generated copy comes back for review; nothing touches the
// ad platform yet.
func (h *ContentHandler) GenerateContent(c *fiber.Ctx) error {
	var req dto.GenerateContentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	sessionID := middleware.GetSessionID(c)
	run, content, err := h.content.Generate(c.Context(), sessionID, req.Brief)
	if err != nil {
		var ge *llm.GenerationError
		if errors.As(err, &ge) {
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: fiber.Map{
		"run":     run,
		"content": content,
	}})
}

// GetContent returns the session's last generated copy.
func (h *ContentHandler) GetContent(c *fiber.Ctx) error {
	sessionID := middleware.GetSessionID(c)
	content, err := h.store.GetContent(c.Context(), sessionID)
	if err != nil {
		if errors.Is(err, sessions.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "no generated content for this session"})
		}
		h.log.Error("failed to load content", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: content})
}
