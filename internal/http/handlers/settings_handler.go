package handlers

import (
	"github.com/adforge/backend/internal/http/dto"
	"github.com/adforge/backend/internal/middleware"
	"github.com/adforge/backend/internal/models"
	"github.com/adforge/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type SettingsHandler struct {
	settings *services.SettingsService
	log      *zap.Logger
}

func NewSettingsHandler(settings *services.SettingsService, log *zap.Logger) *SettingsHandler {
	return &SettingsHandler{settings: settings, log: log}
}

func settingsResponse(s models.SessionSettings) dto.SettingsResponse {
	return dto.SettingsResponse{
		MetaTokenSet: s.MetaAccessToken != "",
		PageID:       s.PageID,
		Model:        s.Model,
		Temperature:  s.Temperature,
	}
}

func (h *SettingsHandler) GetSettings(c *fiber.Ctx) error {
	sessionID := middleware.GetSessionID(c)
	effective := h.settings.Effective(c.Context(), sessionID)
	return c.JSON(dto.SuccessResponse{OK: true, Data: settingsResponse(effective)})
}

func (h *SettingsHandler) UpdateSettings(c *fiber.Ctx) error {
	var req dto.UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	var patch models.SessionSettings
	if req.MetaAccessToken != nil {
		patch.MetaAccessToken = *req.MetaAccessToken
	}
	if req.PageID != nil {
		patch.PageID = *req.PageID
	}
	if req.Model != nil {
		patch.Model = *req.Model
	}
	if req.Temperature != nil {
		patch.Temperature = *req.Temperature
	}

	sessionID := middleware.GetSessionID(c)
	effective, err := h.settings.Update(c.Context(), sessionID, patch)
	if err != nil {
		h.log.Error("failed to update settings", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: settingsResponse(effective)})
}
