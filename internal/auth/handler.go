package auth

import (
	"github.com/richardamare/cloudfarmsales/internal/database"
	"github.com/richardamare/cloudfarmsales/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/auth/me
func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userIDVal := c.Locals(CtxUserIDKey)
		userID, ok := userIDVal.(string)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "User not found")
		}

		var user models.User
		if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "User not found")
		}

		return c.JSON(fiber.Map{"user": user})
	}
}
