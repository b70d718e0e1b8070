package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"grouple/communityhub/internal/service"
	"grouple/communityhub/pkg/envelope"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type SignUpRequest struct {
	Firstname string `json:"firstname" binding:"required"`
	Lastname  string `json:"lastname" binding:"required"`
	Image     string `json:"image"`
	AuthID    string `json:"auth_id" binding:"required"`
}

type SignInRequest struct {
	AuthID string `json:"auth_id" binding:"required"`
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	user, err := h.authService.SignUp(c.Request.Context(), req.Firstname, req.Lastname, req.Image, req.AuthID)
	if err != nil {
		envelope.BadRequest(c, "User could not be created! Try again")
		return
	}

	envelope.OK(c, "User successfully created", gin.H{"id": user.ID})
}

func (h *AuthHandler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	result, err := h.authService.SignIn(c.Request.Context(), req.AuthID)
	if err != nil {
		// Sign-in failures collapse onto 400 so the login screen shows one
		// retry message regardless of cause.
		envelope.BadRequest(c, "User could not be logged in! Try again")
		return
	}

	if result.GroupID != nil {
		fields := gin.H{"id": result.UserID, "group_id": result.GroupID}
		if result.ChannelID != nil {
			fields["channel_id"] = result.ChannelID
		}
		envelope.Alternate(c, fields)
		return
	}

	envelope.OK(c, "User successfully logged in", gin.H{"id": result.UserID})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, err := userFromContext(c)
	if err != nil {
		envelope.Unauthorized(c, "User not authenticated")
		return
	}
	envelope.OK(c, "", gin.H{
		"id":       user.ID,
		"image":    user.Image,
		"username": user.Username,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session, err := sessionFromContext(c)
	if err != nil {
		envelope.Unauthorized(c, "User not authenticated")
		return
	}
	if session.TokenID == "" {
		envelope.OK(c, "Logged out", nil)
		return
	}

	// Keep the revocation mark around as long as any token could still live.
	if err := h.authService.RevokeSession(c.Request.Context(), session.TokenID, 24*time.Hour); err != nil {
		envelope.Internal(c, "Internal server error")
		return
	}
	envelope.OK(c, "Logged out", nil)
}

// statusFromError maps service sentinels onto envelope statuses. Unknown
// errors collapse to 500; the distinction is lost to the caller on purpose.
func statusFromError(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrGroupNotFound),
		errors.Is(err, service.ErrGroupsNotFound),
		errors.Is(err, service.ErrChannelNotFound),
		errors.Is(err, service.ErrPostNotFound),
		errors.Is(err, service.ErrAffiliateNotFound),
		errors.Is(err, service.ErrNoResults):
		return envelope.StatusNotFound, err.Error()
	case errors.Is(err, service.ErrNotGroupOwner),
		errors.Is(err, service.ErrAlreadyMember),
		errors.Is(err, service.ErrInviteInvalid),
		errors.Is(err, service.ErrSubscriptionRequired),
		errors.Is(err, service.ErrPaymentFailed):
		return envelope.StatusBadRequest, err.Error()
	default:
		return envelope.StatusInternal, "Internal server error"
	}
}
