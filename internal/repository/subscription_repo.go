package repository

import (
	"context"

	"github.com/google/uuid"

	"grouple/communityhub/internal/model"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, sub *model.Subscription) error
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]model.Subscription, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Subscription, error)
	// Activate makes the tier the group's single active one, deactivating any
	// sibling inside the same transaction.
	Activate(ctx context.Context, id uuid.UUID) error
	GetActiveByGroup(ctx context.Context, groupID uuid.UUID) (*model.Subscription, error)
}

type AffiliateRepository interface {
	// GetByIDWithOwner resolves an affiliate id to its group's owner summary.
	GetByIDWithOwner(ctx context.Context, id uuid.UUID) (*model.Affiliate, error)
}
