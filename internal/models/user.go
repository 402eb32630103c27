package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserStatus string

const (
	UserStatusActive     UserStatus = "active"
	UserStatusDisabled   UserStatus = "disabled"
	UserStatusWaitlisted UserStatus = "waitlisted"
)

// User mirrors an account at the external identity provider. Rows are
// provisioned by the identity webhook, never by a local sign-up flow.
type User struct {
	ID         string         `gorm:"type:uuid;primaryKey" json:"id"`
	ExternalID string         `gorm:"size:100;uniqueIndex;not null" json:"externalId"`
	Status     UserStatus     `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deletedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
