package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentPartial PaymentStatus = "partial"
	PaymentDeposit PaymentStatus = "deposit"
)

func ValidPaymentStatus(s string) bool {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentPaid, PaymentPartial, PaymentDeposit:
		return true
	}
	return false
}

// Sale records one DOC/feed transaction. All unit prices are stored in
// integer minor units (cents); conversion to major units happens only at
// the presentation boundary.
type Sale struct {
	ID                   string         `gorm:"type:uuid;primaryKey" json:"id"`
	SaleID               string         `gorm:"size:50;index;not null" json:"saleId"` // human-facing code, e.g. "sal_p3m8r1w5"
	CustomerID           string         `gorm:"type:uuid;index;not null" json:"customerId"`
	Customer             Customer       `gorm:"foreignKey:CustomerID" json:"-"`
	DocQuantity          int64          `gorm:"not null" json:"docQuantity"`
	DocUnitPrice         int64          `gorm:"not null" json:"docUnitPrice"`
	DocDeliveredQuantity int64          `gorm:"not null" json:"docDeliveredQuantity"`
	DocBreedType         string         `gorm:"size:100" json:"docBreedType"`
	FeedAmount           int64          `gorm:"not null" json:"feedAmount"`
	FeedUnitPrice        int64          `gorm:"not null" json:"feedUnitPrice"`
	FeedType             string         `gorm:"size:100" json:"feedType"`
	VaccineDoses         int64          `json:"vaccineDoses"`
	VaccineUnitPrice     int64          `json:"vaccineUnitPrice"`
	VaccineType          string         `gorm:"size:100" json:"vaccineType"`
	PaymentStatus        PaymentStatus  `gorm:"type:varchar(20);not null" json:"paymentStatus"`
	SoldAt               time.Time      `gorm:"not null" json:"soldAt"`
	CreatedAt            time.Time      `json:"createdAt"`
	UpdatedAt            time.Time      `json:"updatedAt"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"deletedAt"`
}

func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// Total is the DOC revenue of the sale in minor units.
func (s *Sale) Total() int64 {
	return s.DocQuantity * s.DocUnitPrice
}

// DOCStatus is the fulfillment pair shown next to each sale.
type DOCStatus struct {
	Total     int64 `json:"total"`
	Remaining int64 `json:"remaining"`
}

// DOC reports how many chickens were sold and how many are still owed.
// Delivered > sold is not rejected anywhere, so Remaining can go negative.
func (s *Sale) DOC() DOCStatus {
	return DOCStatus{
		Total:     s.DocQuantity,
		Remaining: s.DocQuantity - s.DocDeliveredQuantity,
	}
}

// Label renders the fulfillment column: "Completed" once everything is
// delivered, otherwise "remaining / total".
func (d DOCStatus) Label() string {
	if d.Remaining == 0 {
		return "Completed"
	}
	return fmt.Sprintf("%d / %d", d.Remaining, d.Total)
}
