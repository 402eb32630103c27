package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
	ID         string         `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID string         `gorm:"size:50;index;not null" json:"customerId"` // human-facing code, e.g. "cus_x1f9k2d8"
	Name       string         `gorm:"size:200;not null" json:"name"`
	Region     string         `gorm:"size:100;not null" json:"region"`
	Zone       string         `gorm:"size:100;not null" json:"zone"`
	Phone      string         `gorm:"size:50;not null" json:"phone"`
	TinNumber  string         `gorm:"size:50;not null" json:"tinNumber"`
	Woreda     string         `gorm:"size:100;not null" json:"woreda"`
	Kebele     string         `gorm:"size:100;not null" json:"kebele"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deletedAt"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
