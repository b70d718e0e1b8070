package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"grouple/communityhub/internal/model"
	"grouple/communityhub/internal/payments"
	"grouple/communityhub/internal/repository"
)

// Fixed amounts, in cents. The commission is the affiliate's 40% cut of the
// group price.
const (
	GroupPriceCents = 9900
	CommissionCents = 3960
	Currency        = "usd"
)

// AffiliateOwner is the payout target resolved from an affiliate id.
type AffiliateOwner struct {
	ID        uuid.UUID `json:"id"`
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname"`
	Image     string    `json:"image"`
	StripeID  string    `json:"stripeId"`
}

type PaymentService interface {
	// ClientSecret creates a payment intent for the group price and returns
	// the secret the browser confirms the card payment with.
	ClientSecret(ctx context.Context) (string, error)
	TransferCommission(ctx context.Context, destination string) error
	AffiliateInfo(ctx context.Context, affiliateID uuid.UUID) (*AffiliateOwner, error)
	CreateSubscription(ctx context.Context, groupID, callerID uuid.UUID, price int) (*model.Subscription, error)
	ActivateSubscription(ctx context.Context, subscriptionID uuid.UUID) error
}

type paymentService struct {
	processor     payments.Processor
	affiliateRepo repository.AffiliateRepository
	subRepo       repository.SubscriptionRepository
	groupRepo     repository.GroupRepository
}

func NewPaymentService(
	processor payments.Processor,
	affiliateRepo repository.AffiliateRepository,
	subRepo repository.SubscriptionRepository,
	groupRepo repository.GroupRepository,
) PaymentService {
	return &paymentService{
		processor:     processor,
		affiliateRepo: affiliateRepo,
		subRepo:       subRepo,
		groupRepo:     groupRepo,
	}
}

func (s *paymentService) ClientSecret(ctx context.Context) (string, error) {
	intent, err := s.processor.CreateIntent(ctx, GroupPriceCents, Currency)
	if err != nil {
		return "", ErrPaymentFailed
	}
	return intent.ClientSecret, nil
}

func (s *paymentService) TransferCommission(ctx context.Context, destination string) error {
	if err := s.processor.Transfer(ctx, CommissionCents, Currency, destination); err != nil {
		return ErrPaymentFailed
	}
	return nil
}

func (s *paymentService) AffiliateInfo(ctx context.Context, affiliateID uuid.UUID) (*AffiliateOwner, error) {
	affiliate, err := s.affiliateRepo.GetByIDWithOwner(ctx, affiliateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAffiliateNotFound
		}
		return nil, fmt.Errorf("load affiliate: %w", err)
	}
	if affiliate.Group == nil || affiliate.Group.User == nil {
		return nil, ErrAffiliateNotFound
	}

	owner := affiliate.Group.User
	return &AffiliateOwner{
		ID:        owner.ID,
		Firstname: owner.Firstname,
		Lastname:  owner.Lastname,
		Image:     owner.Image,
		StripeID:  owner.StripeID,
	}, nil
}

func (s *paymentService) CreateSubscription(ctx context.Context, groupID, callerID uuid.UUID, price int) (*model.Subscription, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("load group: %w", err)
	}
	if group.UserID != callerID {
		return nil, ErrNotGroupOwner
	}

	sub := &model.Subscription{Price: price, GroupID: groupID}
	if err := s.subRepo.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("create subscription: %w", err)
	}
	return sub, nil
}

func (s *paymentService) ActivateSubscription(ctx context.Context, subscriptionID uuid.UUID) error {
	if err := s.subRepo.Activate(ctx, subscriptionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoResults
		}
		return fmt.Errorf("activate subscription: %w", err)
	}
	return nil
}
