package service

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrGroupNotFound        = errors.New("group not found")
	ErrGroupsNotFound       = errors.New("groups not found")
	ErrChannelNotFound      = errors.New("channel not found")
	ErrPostNotFound         = errors.New("post not found")
	ErrAffiliateNotFound    = errors.New("affiliate not found")
	ErrNoResults            = errors.New("no results found")
	ErrNotGroupOwner        = errors.New("caller does not own this group")
	ErrAlreadyMember        = errors.New("user is already a member")
	ErrInviteInvalid        = errors.New("invite code invalid or expired")
	ErrSubscriptionRequired = errors.New("active subscription required to join")
	ErrPaymentFailed        = errors.New("payment processor request failed")
)
