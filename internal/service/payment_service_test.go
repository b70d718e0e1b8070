package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grouple/communityhub/internal/model"
)

func TestClientSecretUsesGroupPrice(t *testing.T) {
	processor := &fakeProcessor{}
	svc := NewPaymentService(processor, &fakeAffiliateRepo{}, newFakeSubscriptionRepo(), newFakeGroupRepo())

	secret, err := svc.ClientSecret(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "pi_test_secret", secret)
	assert.Equal(t, int64(GroupPriceCents), processor.lastAmount)
	assert.Equal(t, Currency, processor.lastCurrency)
}

func TestClientSecretProcessorFailure(t *testing.T) {
	svc := NewPaymentService(&fakeProcessor{fail: true}, &fakeAffiliateRepo{}, newFakeSubscriptionRepo(), newFakeGroupRepo())
	_, err := svc.ClientSecret(context.Background())
	assert.ErrorIs(t, err, ErrPaymentFailed)
}

func TestTransferCommissionAmount(t *testing.T) {
	processor := &fakeProcessor{}
	svc := NewPaymentService(processor, &fakeAffiliateRepo{}, newFakeSubscriptionRepo(), newFakeGroupRepo())

	require.NoError(t, svc.TransferCommission(context.Background(), "acct_123"))
	assert.Equal(t, int64(CommissionCents), processor.lastAmount)
	assert.Equal(t, []string{"acct_123"}, processor.transfers)
}

func TestAffiliateInfoResolvesOwner(t *testing.T) {
	owner := &model.User{ID: uuid.New(), Firstname: "Ada", Lastname: "Lovelace", StripeID: "acct_123"}
	affiliateID := uuid.New()
	affiliates := &fakeAffiliateRepo{affiliates: map[uuid.UUID]*model.Affiliate{
		affiliateID: {ID: affiliateID, Group: &model.Group{User: owner}},
	}}
	svc := NewPaymentService(&fakeProcessor{}, affiliates, newFakeSubscriptionRepo(), newFakeGroupRepo())

	info, err := svc.AffiliateInfo(context.Background(), affiliateID)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, info.ID)
	assert.Equal(t, "acct_123", info.StripeID)

	_, err = svc.AffiliateInfo(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrAffiliateNotFound)
}

func TestCreateSubscriptionOwnerOnly(t *testing.T) {
	groupRepo := newFakeGroupRepo()
	ownerID := uuid.New()
	group := &model.Group{Name: "gophers", Category: "tech", UserID: ownerID}
	require.NoError(t, groupRepo.Create(context.Background(), group))

	svc := NewPaymentService(&fakeProcessor{}, &fakeAffiliateRepo{}, newFakeSubscriptionRepo(), groupRepo)

	sub, err := svc.CreateSubscription(context.Background(), group.ID, ownerID, 9900)
	require.NoError(t, err)
	assert.Equal(t, 9900, sub.Price)
	assert.False(t, sub.Active)

	_, err = svc.CreateSubscription(context.Background(), group.ID, uuid.New(), 9900)
	assert.ErrorIs(t, err, ErrNotGroupOwner)

	_, err = svc.CreateSubscription(context.Background(), uuid.New(), ownerID, 9900)
	assert.ErrorIs(t, err, ErrGroupNotFound)
}

func TestActivateSubscriptionDeactivatesSiblings(t *testing.T) {
	subRepo := newFakeSubscriptionRepo()
	groupID := uuid.New()
	first := &model.Subscription{Price: 4900, GroupID: groupID}
	second := &model.Subscription{Price: 9900, GroupID: groupID}
	require.NoError(t, subRepo.Create(context.Background(), first))
	require.NoError(t, subRepo.Create(context.Background(), second))

	svc := NewPaymentService(&fakeProcessor{}, &fakeAffiliateRepo{}, subRepo, newFakeGroupRepo())

	require.NoError(t, svc.ActivateSubscription(context.Background(), first.ID))
	require.NoError(t, svc.ActivateSubscription(context.Background(), second.ID))

	active, err := subRepo.GetActiveByGroup(context.Background(), groupID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID)

	assert.ErrorIs(t, svc.ActivateSubscription(context.Background(), uuid.New()), ErrNoResults)
}
