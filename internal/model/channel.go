package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Channel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Icon      string         `gorm:"size:100" json:"icon"`
	GroupID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"group_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Posts []Post `gorm:"foreignKey:ChannelID" json:"posts,omitempty"`
}

func (Channel) TableName() string { return "channels" }

type Post struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title       string         `gorm:"size:255" json:"title"`
	Content     string         `gorm:"type:text" json:"content"`
	HTMLContent *string        `gorm:"type:text" json:"html_content,omitempty"`
	JSONContent *string        `gorm:"type:text" json:"json_content,omitempty"`
	ChannelID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"channel_id"`
	AuthorID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"author_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Channel  *Channel  `gorm:"foreignKey:ChannelID" json:"channel,omitempty"`
	Author   *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Likes    []Like    `gorm:"foreignKey:PostID" json:"likes,omitempty"`
	Comments []Comment `gorm:"foreignKey:PostID" json:"comments,omitempty"`
}

func (Post) TableName() string { return "posts" }

type Like struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PostID    uuid.UUID `gorm:"type:uuid;not null;index:idx_likes_post_user,unique" json:"post_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_likes_post_user,unique" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Like) TableName() string { return "likes" }

type Comment struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PostID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"post_id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null" json:"user_id"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Comment) TableName() string { return "comments" }
