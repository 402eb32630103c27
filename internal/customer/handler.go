package customer

import (
	"strings"

	"github.com/richardamare/cloudfarmsales/internal/database"
	"github.com/richardamare/cloudfarmsales/internal/models"
	"github.com/richardamare/cloudfarmsales/internal/objectid"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CustomerRequest is the payload for both create and update; updates
// replace every mutable field at once.
type CustomerRequest struct {
	Name      string `json:"name"`
	Region    string `json:"region"`
	Zone      string `json:"zone"`
	Phone     string `json:"phone"`
	TinNumber string `json:"tinNumber"`
	Woreda    string `json:"woreda"`
	Kebele    string `json:"kebele"`
}

func (r *CustomerRequest) validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Region = strings.TrimSpace(r.Region)
	r.Zone = strings.TrimSpace(r.Zone)
	r.Phone = strings.TrimSpace(r.Phone)
	r.TinNumber = strings.TrimSpace(r.TinNumber)
	r.Woreda = strings.TrimSpace(r.Woreda)
	r.Kebele = strings.TrimSpace(r.Kebele)

	fields := []struct {
		name  string
		value string
	}{
		{"name", r.Name},
		{"region", r.Region},
		{"zone", r.Zone},
		{"phone", r.Phone},
		{"tinNumber", r.TinNumber},
		{"woreda", r.Woreda},
		{"kebele", r.Kebele},
	}
	for _, f := range fields {
		if f.value == "" {
			return fiber.NewError(fiber.StatusBadRequest, f.name+" must not be empty")
		}
	}
	return nil
}

// POST /api/customers
func CreateCustomerHandler(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CustomerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := body.validate(); err != nil {
			return err
		}

		customer := models.Customer{
			CustomerID: objectid.Generate("customers"),
			Name:       body.Name,
			Region:     body.Region,
			Zone:       body.Zone,
			Phone:      body.Phone,
			TinNumber:  body.TinNumber,
			Woreda:     body.Woreda,
			Kebele:     body.Kebele,
		}

		if err := database.DB.Create(&customer).Error; err != nil {
			log.Error("failed to create customer", zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "failed to create customer: "+err.Error())
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"customer": customer})
	}
}

// GET /api/customers
func ListCustomersHandler(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var customers []models.Customer
		if err := database.DB.Order("created_at DESC").Find(&customers).Error; err != nil {
			log.Error("failed to get customers", zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "failed to get customers: "+err.Error())
		}

		return c.JSON(fiber.Map{"customers": customers})
	}
}

// GET /api/customers/:code — lookup by the human-facing code
func GetCustomerHandler(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		code := c.Params("code")

		var customer models.Customer
		if err := database.DB.First(&customer, "customer_id = ?", code).Error; err != nil {
			log.Error("failed to get customer", zap.String("code", code), zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "failed to get customer: customer not found")
		}

		return c.JSON(fiber.Map{"customer": customer})
	}
}

// PUT /api/customers/:id
func UpdateCustomerHandler(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var body CustomerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := body.validate(); err != nil {
			return err
		}

		var customer models.Customer
		if err := database.DB.First(&customer, "id = ?", id).Error; err != nil {
			log.Error("failed to update customer", zap.String("id", id), zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "failed to update customer: customer not found")
		}

		customer.Name = body.Name
		customer.Region = body.Region
		customer.Zone = body.Zone
		customer.Phone = body.Phone
		customer.TinNumber = body.TinNumber
		customer.Woreda = body.Woreda
		customer.Kebele = body.Kebele

		if err := database.DB.Save(&customer).Error; err != nil {
			log.Error("failed to update customer", zap.String("id", id), zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "failed to update customer: "+err.Error())
		}

		return c.JSON(fiber.Map{"customer": customer})
	}
}

// DELETE /api/customers/:id — soft delete, the row stays behind deleted_at
func DeleteCustomerHandler(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var customer models.Customer
		if err := database.DB.First(&customer, "id = ?", id).Error; err != nil {
			log.Error("failed to delete customer", zap.String("id", id), zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "failed to delete customer: customer not found")
		}

		if err := database.DB.Delete(&customer).Error; err != nil {
			log.Error("failed to delete customer", zap.String("id", id), zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "failed to delete customer: "+err.Error())
		}

		return c.JSON(fiber.Map{"customer": customer})
	}
}
