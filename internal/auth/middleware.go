package auth

import (
	"strings"

	"github.com/richardamare/cloudfarmsales/internal/config"
	"github.com/richardamare/cloudfarmsales/internal/database"
	"github.com/richardamare/cloudfarmsales/internal/models"

	"github.com/gofiber/fiber/v2"
)

const (
	CtxUserIDKey     = "user_id"
	CtxExternalIDKey = "external_id"
)

// Middleware gates every business route. The identity provider owns
// credentials and sessions; we only verify its token and check that the
// provisioned local account is active.
func Middleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization header is missing")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization must be 'Bearer <token>'")
		}

		externalID, err := ParseSessionToken(cfg.JWTSecret, parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		// soft-deleted accounts fall out of the lookup here
		var user models.User
		if err := database.DB.Where("external_id = ?", externalID).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "User not found")
		}

		if user.Status != models.UserStatusActive {
			return fiber.NewError(fiber.StatusForbidden, "Your account is not active. Please contact support.")
		}

		c.Locals(CtxUserIDKey, user.ID)
		c.Locals(CtxExternalIDKey, user.ExternalID)

		return c.Next()
	}
}
