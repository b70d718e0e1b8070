package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Group struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name            string         `gorm:"size:255;not null" json:"name"`
	Category        string         `gorm:"size:100;not null;index" json:"category"`
	Icon            string         `gorm:"size:500" json:"icon"`
	Thumbnail       *string        `gorm:"size:500" json:"thumbnail,omitempty"`
	Description     *string        `gorm:"type:text" json:"description,omitempty"`
	JSONDescription *string        `gorm:"type:text" json:"json_description,omitempty"`
	HTMLDescription *string        `gorm:"type:text" json:"html_description,omitempty"`
	Gallery         []string       `gorm:"serializer:json;type:jsonb" json:"gallery,omitempty"`
	Privacy         string         `gorm:"size:20;not null;default:'PRIVATE'" json:"privacy"`
	UserID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	User          *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Channels      []Channel      `gorm:"foreignKey:GroupID" json:"channels,omitempty"`
	Members       []Member       `gorm:"foreignKey:GroupID" json:"members,omitempty"`
	Subscriptions []Subscription `gorm:"foreignKey:GroupID" json:"subscriptions,omitempty"`
	Affiliate     *Affiliate     `gorm:"foreignKey:GroupID" json:"affiliate,omitempty"`
}

func (Group) TableName() string { return "groups" }

type Member struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_members_user_group,unique" json:"user_id"`
	GroupID   uuid.UUID `gorm:"type:uuid;not null;index:idx_members_user_group,unique" json:"group_id"`
	CreatedAt time.Time `json:"created_at"`

	User  *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Group *Group `gorm:"foreignKey:GroupID" json:"group,omitempty"`
}

func (Member) TableName() string { return "members" }

// InviteCode lets a group owner hand out joinable links for private groups.
type InviteCode struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Code      string     `gorm:"size:64;not null;uniqueIndex" json:"code"`
	GroupID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"group_id"`
	MaxUses   int        `gorm:"not null;default:1" json:"max_uses"`
	Uses      int        `gorm:"not null;default:0" json:"uses"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedBy uuid.UUID  `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt time.Time  `json:"created_at"`
}

func (InviteCode) TableName() string { return "invite_codes" }
