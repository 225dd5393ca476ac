package handlers

import (
	"github.com/adforge/backend/internal/http/dto"
	"github.com/adforge/backend/internal/metaads"
	"github.com/adforge/backend/internal/middleware"
	"github.com/adforge/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// MetaHandler exposes the account-discovery side of the Graph API: token
// verification and the first reachable ad account / page.
type MetaHandler struct {
	meta     *metaads.Client
	settings *services.SettingsService
	log      *zap.Logger
}

func NewMetaHandler(meta *metaads.Client, settings *services.SettingsService, log *zap.Logger) *MetaHandler {
	return &MetaHandler{meta: meta, settings: settings, log: log}
}

func (h *MetaHandler) token(c *fiber.Ctx) string {
	return h.settings.Effective(c.Context(), middleware.GetSessionID(c)).MetaAccessToken
}

// CheckAccess verifies the session's token against the identity endpoint.
// The outcome is always 200: connectivity is data, not an error.
func (h *MetaHandler) CheckAccess(c *fiber.Ctx) error {
	token := h.token(c)
	if token == "" {
		return c.JSON(dto.SuccessResponse{OK: true, Data: dto.CheckAccessResponse{
			Connected: false,
			Message:   "No Meta access token configured",
		}})
	}

	connected, msg := h.meta.CheckAccess(c.Context(), token)
	return c.JSON(dto.SuccessResponse{OK: true, Data: dto.CheckAccessResponse{
		Connected: connected,
		Message:   msg,
	}})
}

func (h *MetaHandler) GetAdAccount(c *fiber.Ctx) error {
	id, ok := h.meta.GetAdAccountID(c.Context(), h.token(c))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "no ad account found, check your access token"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: fiber.Map{"ad_account_id": id}})
}

func (h *MetaHandler) GetPage(c *fiber.Ctx) error {
	id, ok := h.meta.GetPageID(c.Context(), h.token(c))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "no page found, check your access token"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: fiber.Map{"page_id": id}})
}
