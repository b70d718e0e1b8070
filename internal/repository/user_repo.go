package repository

import (
	"context"

	"github.com/google/uuid"

	"grouple/communityhub/internal/model"
)

type UserRepository interface {
	// Upsert creates the user row for an external identity id, or returns the
	// existing row when the id is already mapped. Signing up twice with the
	// same provider identity must not create a duplicate.
	Upsert(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByAuthID(ctx context.Context, authID string) (*model.User, error)
	// GetByAuthIDWithGroups loads the user plus owned groups, each carrying
	// its oldest channel (the sign-in redirect target).
	GetByAuthIDWithGroups(ctx context.Context, authID string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
}
