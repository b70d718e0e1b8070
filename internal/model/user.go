package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the internal account row. AuthID is the external id issued by the
// hosted identity provider; the application never stores credentials.
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Firstname string         `gorm:"size:100;not null" json:"firstname"`
	Lastname  string         `gorm:"size:100;not null" json:"lastname"`
	Image     string         `gorm:"size:500" json:"image"`
	AuthID    string         `gorm:"size:255;not null;uniqueIndex" json:"auth_id"`
	StripeID  string         `gorm:"size:255" json:"stripe_id,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Groups      []Group  `gorm:"foreignKey:UserID" json:"groups,omitempty"`
	Memberships []Member `gorm:"foreignKey:UserID" json:"memberships,omitempty"`
}

func (User) TableName() string { return "users" }

// Fullname is the display name observers see next to presence and posts.
func (u *User) Fullname() string {
	return u.Firstname + " " + u.Lastname
}
