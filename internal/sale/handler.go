package sale

import (
	"strings"
	"time"

	"github.com/richardamare/cloudfarmsales/internal/database"
	"github.com/richardamare/cloudfarmsales/internal/models"
	"github.com/richardamare/cloudfarmsales/internal/objectid"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Unit prices arrive in major units (birr) and are stored multiplied by
// this factor. Integer arithmetic only, floats would lose cents.
const minorUnitFactor = 100

// SaleRequest is the payload for both create and update; updates replace
// every mutable field at once.
type SaleRequest struct {
	CustomerID           string `json:"customerId"`
	DocQuantity          int64  `json:"docQuantity"`
	DocUnitPrice         int64  `json:"docUnitPrice"` // major units on the wire
	DocDeliveredQuantity int64  `json:"docDeliveredQuantity"`
	DocBreedType         string `json:"docBreedType"`
	FeedAmount           int64  `json:"feedAmount"`
	FeedUnitPrice        int64  `json:"feedUnitPrice"` // major units on the wire
	FeedType             string `json:"feedType"`
	VaccineDoses         int64  `json:"vaccineDoses"`
	VaccineUnitPrice     int64  `json:"vaccineUnitPrice"` // major units on the wire
	VaccineType          string `json:"vaccineType"`
	PaymentStatus        string `json:"paymentStatus"`
	SoldAt               string `json:"soldAt"` // "YYYY-MM-DD"
}

func (r *SaleRequest) validate() (time.Time, error) {
	r.CustomerID = strings.TrimSpace(r.CustomerID)
	if r.CustomerID == "" {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "customerId must not be empty")
	}
	if r.DocQuantity <= 0 {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "docQuantity must be a positive integer")
	}
	if r.DocUnitPrice <= 0 {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "docUnitPrice must be a positive integer")
	}
	if r.DocDeliveredQuantity <= 0 {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "docDeliveredQuantity must be a positive integer")
	}
	if r.FeedAmount <= 0 {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "feedAmount must be a positive integer")
	}
	if r.FeedUnitPrice <= 0 {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "feedUnitPrice must be a positive integer")
	}
	if r.VaccineDoses < 0 || r.VaccineUnitPrice < 0 {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "vaccine fields must not be negative")
	}
	if !models.ValidPaymentStatus(r.PaymentStatus) {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "paymentStatus must be one of pending, paid, partial, deposit")
	}

	soldAt, err := time.Parse("2006-01-02", r.SoldAt)
	if err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "soldAt must be a 'YYYY-MM-DD' date")
	}
	// sale dates are stored as UTC midnight regardless of server timezone
	soldAt = time.Date(soldAt.Year(), soldAt.Month(), soldAt.Day(), 0, 0, 0, 0, time.UTC)

	return soldAt, nil
}

func (r *SaleRequest) apply(s *models.Sale, soldAt time.Time) {
	s.CustomerID = r.CustomerID
	s.DocQuantity = r.DocQuantity
	s.DocUnitPrice = r.DocUnitPrice * minorUnitFactor
	s.DocDeliveredQuantity = r.DocDeliveredQuantity
	s.DocBreedType = strings.TrimSpace(r.DocBreedType)
	s.FeedAmount = r.FeedAmount
	s.FeedUnitPrice = r.FeedUnitPrice * minorUnitFactor
	s.FeedType = strings.TrimSpace(r.FeedType)
	s.VaccineDoses = r.VaccineDoses
	s.VaccineUnitPrice = r.VaccineUnitPrice * minorUnitFactor
	s.VaccineType = strings.TrimSpace(r.VaccineType)
	s.PaymentStatus = models.PaymentStatus(r.PaymentStatus)
	s.SoldAt = soldAt
}

// resolveCustomer enforces the foreign-key precondition: the referenced
// customer must exist and must not be soft-deleted. Nothing is written
// when it fails.
func resolveCustomer(id string) (*models.Customer, error) {
	var customer models.Customer
	if err := database.DB.First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// POST /api/sales
func CreateSaleHandler(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SaleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		soldAt, err := body.validate()
		if err != nil {
			return err
		}

		if _, err := resolveCustomer(body.CustomerID); err != nil {
			log.Error("failed to create sale", zap.String("customerId", body.CustomerID), zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "failed to create sale: customer not found")
		}

		sale := models.Sale{SaleID: objectid.Generate("sales")}
		body.apply(&sale, soldAt)

		if err := database.DB.Create(&sale).Error; err != nil {
			log.Error("failed to create sale", zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "failed to create sale: "+err.Error())
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"sale": sale})
	}
}

// CustomerSummary is the slice of the customer embedded in each list row.
type CustomerSummary struct {
	ID         string `json:"id"`
	CustomerID string `json:"customerId"`
	Name       string `json:"name"`
	Region     string `json:"region"`
	Zone       string `json:"zone"`
	Phone      string `json:"phone"`
}

type SaleListItem struct {
	ID                   string               `json:"id"`
	SaleID               string               `json:"saleId"`
	CustomerID           string               `json:"customerId"`
	DocQuantity          int64                `json:"docQuantity"`
	DocUnitPrice         int64                `json:"docUnitPrice"`
	DocDeliveredQuantity int64                `json:"docDeliveredQuantity"`
	DocBreedType         string               `json:"docBreedType"`
	FeedAmount           int64                `json:"feedAmount"`
	FeedUnitPrice        int64                `json:"feedUnitPrice"`
	FeedType             string               `json:"feedType"`
	VaccineDoses         int64                `json:"vaccineDoses"`
	VaccineUnitPrice     int64                `json:"vaccineUnitPrice"`
	VaccineType          string               `json:"vaccineType"`
	PaymentStatus        models.PaymentStatus `json:"paymentStatus"`
	SoldAt               time.Time            `json:"soldAt"`
	CreatedAt            time.Time            `json:"createdAt"`
	UpdatedAt            time.Time            `json:"updatedAt"`
	Total                int64                `json:"total"`
	Doc                  models.DOCStatus     `json:"doc"`
	Customer             CustomerSummary      `json:"customer"`
}

// GET /api/sales
//
// The list is one SQL round trip: sales joined to their customers, no
// per-row lookups. The nested customer object is shaped in Go from the
// flat row.
func ListSalesHandler(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		type row struct {
			ID                   string    `gorm:"column:id"`
			SaleID               string    `gorm:"column:sale_id"`
			CustomerID           string    `gorm:"column:customer_id"`
			DocQuantity          int64     `gorm:"column:doc_quantity"`
			DocUnitPrice         int64     `gorm:"column:doc_unit_price"`
			DocDeliveredQuantity int64     `gorm:"column:doc_delivered_quantity"`
			DocBreedType         string    `gorm:"column:doc_breed_type"`
			FeedAmount           int64     `gorm:"column:feed_amount"`
			FeedUnitPrice        int64     `gorm:"column:feed_unit_price"`
			FeedType             string    `gorm:"column:feed_type"`
			VaccineDoses         int64     `gorm:"column:vaccine_doses"`
			VaccineUnitPrice     int64     `gorm:"column:vaccine_unit_price"`
			VaccineType          string    `gorm:"column:vaccine_type"`
			PaymentStatus        string    `gorm:"column:payment_status"`
			SoldAt               time.Time `gorm:"column:sold_at"`
			CreatedAt            time.Time `gorm:"column:created_at"`
			UpdatedAt            time.Time `gorm:"column:updated_at"`
			Total                int64     `gorm:"column:total"`
			CustomerCode         string    `gorm:"column:customer_code"`
			CustomerName         string    `gorm:"column:customer_name"`
			CustomerRegion       string    `gorm:"column:customer_region"`
			CustomerZone         string    `gorm:"column:customer_zone"`
			CustomerPhone        string    `gorm:"column:customer_phone"`
		}
		var rows []row

		sql := `
			SELECT
				sales.id AS id,
				sales.sale_id AS sale_id,
				sales.customer_id AS customer_id,
				sales.doc_quantity AS doc_quantity,
				sales.doc_unit_price AS doc_unit_price,
				sales.doc_delivered_quantity AS doc_delivered_quantity,
				sales.doc_breed_type AS doc_breed_type,
				sales.feed_amount AS feed_amount,
				sales.feed_unit_price AS feed_unit_price,
				sales.feed_type AS feed_type,
				sales.vaccine_doses AS vaccine_doses,
				sales.vaccine_unit_price AS vaccine_unit_price,
				sales.vaccine_type AS vaccine_type,
				sales.payment_status AS payment_status,
				sales.sold_at AS sold_at,
				sales.created_at AS created_at,
				sales.updated_at AS updated_at,
				sales.doc_quantity * sales.doc_unit_price AS total,
				customers.customer_id AS customer_code,
				customers.name AS customer_name,
				customers.region AS customer_region,
				customers.zone AS customer_zone,
				customers.phone AS customer_phone
			FROM sales
			INNER JOIN customers ON customers.id = sales.customer_id
			WHERE sales.deleted_at IS NULL
			ORDER BY sales.created_at DESC
		`

		if err := database.DB.Raw(sql).Scan(&rows).Error; err != nil {
			log.Error("failed to get sales", zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "failed to get sales: "+err.Error())
		}

		sales := make([]SaleListItem, 0, len(rows))
		for _, r := range rows {
			sales = append(sales, SaleListItem{
				ID:                   r.ID,
				SaleID:               r.SaleID,
				CustomerID:           r.CustomerID,
				DocQuantity:          r.DocQuantity,
				DocUnitPrice:         r.DocUnitPrice,
				DocDeliveredQuantity: r.DocDeliveredQuantity,
				DocBreedType:         r.DocBreedType,
				FeedAmount:           r.FeedAmount,
				FeedUnitPrice:        r.FeedUnitPrice,
				FeedType:             r.FeedType,
				VaccineDoses:         r.VaccineDoses,
				VaccineUnitPrice:     r.VaccineUnitPrice,
				VaccineType:          r.VaccineType,
				PaymentStatus:        models.PaymentStatus(r.PaymentStatus),
				SoldAt:               r.SoldAt,
				CreatedAt:            r.CreatedAt,
				UpdatedAt:            r.UpdatedAt,
				Total:                r.Total,
				Doc: models.DOCStatus{
					Total:     r.DocQuantity,
					Remaining: r.DocQuantity - r.DocDeliveredQuantity,
				},
				Customer: CustomerSummary{
					ID:         r.CustomerID,
					CustomerID: r.CustomerCode,
					Name:       r.CustomerName,
					Region:     r.CustomerRegion,
					Zone:       r.CustomerZone,
					Phone:      r.CustomerPhone,
				},
			})
		}

		return c.JSON(fiber.Map{"sales": sales})
	}
}

// GET /api/sales/:id
func GetSaleHandler(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var sale models.Sale
		if err := database.DB.First(&sale, "id = ?", id).Error; err != nil {
			log.Error("failed to get sale", zap.String("id", id), zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "failed to get sale: sale not found")
		}

		return c.JSON(fiber.Map{"sale": sale})
	}
}

// PUT /api/sales/:id
func UpdateSaleHandler(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var body SaleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		soldAt, err := body.validate()
		if err != nil {
			return err
		}

		var sale models.Sale
		if err := database.DB.First(&sale, "id = ?", id).Error; err != nil {
			log.Error("failed to update sale", zap.String("id", id), zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "failed to update sale: sale not found")
		}

		if _, err := resolveCustomer(body.CustomerID); err != nil {
			log.Error("failed to update sale", zap.String("customerId", body.CustomerID), zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "failed to update sale: customer not found")
		}

		body.apply(&sale, soldAt)

		if err := database.DB.Save(&sale).Error; err != nil {
			log.Error("failed to update sale", zap.String("id", id), zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "failed to update sale: "+err.Error())
		}

		return c.JSON(fiber.Map{"sale": sale})
	}
}

// DELETE /api/sales/:id — soft delete
func DeleteSaleHandler(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var sale models.Sale
		if err := database.DB.First(&sale, "id = ?", id).Error; err != nil {
			log.Error("failed to delete sale", zap.String("id", id), zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "failed to delete sale: sale not found")
		}

		if err := database.DB.Delete(&sale).Error; err != nil {
			log.Error("failed to delete sale", zap.String("id", id), zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "failed to delete sale: "+err.Error())
		}

		return c.JSON(fiber.Map{"sale": sale})
	}
}
