package handlers

import (
	"github.com/adforge/backend/internal/auth"
	"github.com/adforge/backend/internal/config"
	"github.com/adforge/backend/internal/http/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SessionHandler struct {
	cfg *config.Config
	log *zap.Logger
}

func NewSessionHandler(cfg *config.Config, log *zap.Logger) *SessionHandler {
	return &SessionHandler{cfg: cfg, log: log}
}

// CreateSession mints a fresh anonymous session. No credentials are needed;
// everything the session accumulates expires with its TTL.
func (h *SessionHandler) CreateSession(c *fiber.Ctx) error {
	sessionID := uuid.New()

	token, err := auth.GenerateSessionJWT(h.cfg.JWTSecret, sessionID, h.cfg.JWTExpiration)
	if err != nil {
		h.log.Error("failed to generate session jwt", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal server error"})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SessionResponse{
		Token:     token,
		SessionID: sessionID.String(),
	})
}
