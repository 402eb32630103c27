package webhook

import (
	"time"

	"github.com/richardamare/cloudfarmsales/internal/database"
	"github.com/richardamare/cloudfarmsales/internal/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// IdentityEvent is the payload the identity provider posts on account
// lifecycle changes.
type IdentityEvent struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

// POST /api/external/identity
//
// New accounts land waitlisted and are activated manually; deletions at
// the provider disable and soft-delete the local row.
func IdentityEventHandler(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var event IdentityEvent
		if err := c.BodyParser(&event); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid webhook event")
		}
		if event.Data.ID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "invalid user ID")
		}

		log.Info("identity event received",
			zap.String("type", event.Type),
			zap.String("userId", event.Data.ID))

		switch event.Type {
		case "user.created":
			user := models.User{
				ExternalID: event.Data.ID,
				Status:     models.UserStatusWaitlisted,
			}
			if err := database.DB.Create(&user).Error; err != nil {
				log.Error("failed to handle identity event", zap.Error(err))
				return fiber.NewError(fiber.StatusInternalServerError, "failed to handle identity event: "+err.Error())
			}

		case "user.deleted":
			err := database.DB.Model(&models.User{}).
				Where("external_id = ?", event.Data.ID).
				Updates(map[string]interface{}{
					"status":     models.UserStatusDisabled,
					"deleted_at": time.Now(),
				}).Error
			if err != nil {
				log.Error("failed to handle identity event", zap.Error(err))
				return fiber.NewError(fiber.StatusInternalServerError, "failed to handle identity event: "+err.Error())
			}

		default:
			return fiber.NewError(fiber.StatusBadRequest, "unhandled webhook event")
		}

		return c.JSON(fiber.Map{"message": "OK"})
	}
}
