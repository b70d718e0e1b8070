package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"grouple/communityhub/internal/handler/middleware"
	"grouple/communityhub/internal/identity"
	"grouple/communityhub/internal/service"
)

var ErrNoUser = errors.New("authenticated user not found in context")

func userFromContext(c *gin.Context) (*service.AuthenticatedUser, error) {
	val, exists := c.Get(middleware.ContextKeyUser)
	if !exists {
		return nil, ErrNoUser
	}
	user, ok := val.(*service.AuthenticatedUser)
	if !ok {
		return nil, ErrNoUser
	}
	return user, nil
}

func sessionFromContext(c *gin.Context) (*identity.Session, error) {
	val, exists := c.Get(middleware.ContextKeySession)
	if !exists {
		return nil, ErrNoUser
	}
	session, ok := val.(*identity.Session)
	if !ok {
		return nil, ErrNoUser
	}
	return session, nil
}
