package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Subscription is a paid tier on a group. At most one tier is active per
// group at a time; activating one deactivates the rest.
type Subscription struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Price     int            `gorm:"not null" json:"price"`
	Active    bool           `gorm:"not null;default:false" json:"active"`
	GroupID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"group_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Subscription) TableName() string { return "subscriptions" }

// Affiliate carries the referral id created alongside every group; commission
// transfers resolve it back to the owning user's connected Stripe account.
type Affiliate struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	GroupID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"group_id"`
	CreatedAt time.Time `json:"created_at"`

	Group *Group `gorm:"foreignKey:GroupID" json:"group,omitempty"`
}

func (Affiliate) TableName() string { return "affiliates" }
