package repository

import (
	"context"

	"github.com/google/uuid"

	"grouple/communityhub/internal/model"
)

// GroupField names a single settings column updated in isolation.
type GroupField string

const (
	GroupFieldThumbnail       GroupField = "thumbnail"
	GroupFieldIcon            GroupField = "icon"
	GroupFieldName            GroupField = "name"
	GroupFieldDescription     GroupField = "description"
	GroupFieldJSONDescription GroupField = "json_description"
	GroupFieldHTMLDescription GroupField = "html_description"
)

type GroupRepository interface {
	// Create persists a group together with its nested rows (channels,
	// affiliate, owner membership) in one transaction.
	Create(ctx context.Context, group *model.Group) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Group, error)
	// ListOwnedByUser returns groups owned by the user, each preloaded with
	// its "general" channel only.
	ListOwnedByUser(ctx context.Context, userID uuid.UUID) ([]model.Group, error)
	// ListMemberships returns groups the user joined, same channel preload.
	ListMemberships(ctx context.Context, userID uuid.UUID) ([]model.Group, error)
	UpdateField(ctx context.Context, id uuid.UUID, field GroupField, content string) error
	AppendGallery(ctx context.Context, id uuid.UUID, mediaID string) error
	// SearchByName performs a case-insensitive substring match, paginated.
	SearchByName(ctx context.Context, query string, limit, offset int) ([]model.Group, error)
	// ListByCategory pages through explorable groups: a group qualifies only
	// once it has both a description and a thumbnail.
	ListByCategory(ctx context.Context, category string, limit, offset int) ([]model.Group, error)
}
