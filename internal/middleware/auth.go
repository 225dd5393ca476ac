package middleware

import (
	"strings"

	"github.com/adforge/backend/internal/auth"
	"github.com/adforge/backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const CtxSessionID = "session_id"

// SessionMiddleware requires a valid session token. There are no user
// accounts: the session id from the token is the only identity.
func SessionMiddleware(cfg *config.Config, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization header"})
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization format"})
		}

		claims, err := auth.ParseSessionJWT(cfg.JWTSecret, tokenStr)
		if err != nil {
			log.Debug("jwt parse error", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
		}

		c.Locals(CtxSessionID, claims.SessionID)

		return c.Next()
	}
}

func GetSessionID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals(CtxSessionID).(uuid.UUID)
	return id
}
