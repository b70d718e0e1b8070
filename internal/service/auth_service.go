package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"grouple/communityhub/internal/model"
	"grouple/communityhub/internal/repository"
)

// AuthenticatedUser is the session-resolved identity handed to callers: the
// internal id plus the provider-sourced display fields.
type AuthenticatedUser struct {
	ID       uuid.UUID `json:"id"`
	Image    string    `json:"image"`
	Username string    `json:"username"`
}

// SignInResult carries the redirect target when the user already owns a
// group: the first group's oldest channel.
type SignInResult struct {
	UserID    uuid.UUID
	GroupID   *uuid.UUID
	ChannelID *uuid.UUID
}

type AuthService interface {
	// SignUp maps an external identity to an internal user row. Calling it
	// twice with the same external id returns the same row.
	SignUp(ctx context.Context, firstname, lastname, image, authID string) (*model.User, error)
	// SignIn resolves an external id; a populated GroupID means the caller
	// should land in that group instead of onboarding.
	SignIn(ctx context.Context, authID string) (*SignInResult, error)
	// Resolve maps a verified session's external id plus profile fields onto
	// the internal user row.
	Resolve(ctx context.Context, authID, image string) (*AuthenticatedUser, error)
	// RevokeSession marks a session token id as logged out for the remainder
	// of its lifetime.
	RevokeSession(ctx context.Context, tokenID string, ttl time.Duration) error
	IsSessionRevoked(ctx context.Context, tokenID string) (bool, error)
}

type authService struct {
	userRepo   repository.UserRepository
	stateStore repository.StateStore
}

func NewAuthService(userRepo repository.UserRepository, stateStore repository.StateStore) AuthService {
	return &authService{userRepo: userRepo, stateStore: stateStore}
}

func (s *authService) SignUp(ctx context.Context, firstname, lastname, image, authID string) (*model.User, error) {
	user := &model.User{
		Firstname: firstname,
		Lastname:  lastname,
		Image:     image,
		AuthID:    authID,
	}
	if err := s.userRepo.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("sign up user: %w", err)
	}
	return user, nil
}

func (s *authService) SignIn(ctx context.Context, authID string) (*SignInResult, error) {
	user, err := s.userRepo.GetByAuthIDWithGroups(ctx, authID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("sign in user: %w", err)
	}

	result := &SignInResult{UserID: user.ID}
	if len(user.Groups) > 0 {
		group := user.Groups[0]
		result.GroupID = &group.ID
		if len(group.Channels) > 0 {
			result.ChannelID = &group.Channels[0].ID
		}
	}
	return result, nil
}

func (s *authService) Resolve(ctx context.Context, authID, image string) (*AuthenticatedUser, error) {
	user, err := s.userRepo.GetByAuthID(ctx, authID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("resolve session user: %w", err)
	}
	return &AuthenticatedUser{
		ID:       user.ID,
		Image:    image,
		Username: user.Fullname(),
	}, nil
}

func sessionRevocationKey(tokenID string) string {
	return "session:revoked:" + tokenID
}

func (s *authService) RevokeSession(ctx context.Context, tokenID string, ttl time.Duration) error {
	return s.stateStore.Set(ctx, sessionRevocationKey(tokenID), []byte("1"), ttl)
}

func (s *authService) IsSessionRevoked(ctx context.Context, tokenID string) (bool, error) {
	return s.stateStore.Exists(ctx, sessionRevocationKey(tokenID))
}
