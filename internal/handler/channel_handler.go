package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"grouple/communityhub/internal/service"
	"grouple/communityhub/pkg/envelope"
)

type ChannelHandler struct {
	channelService service.ChannelService
}

func NewChannelHandler(channelService service.ChannelService) *ChannelHandler {
	return &ChannelHandler{channelService: channelService}
}

func (h *ChannelHandler) Info(c *gin.Context) {
	channelID, err := uuid.Parse(c.Param("channelid"))
	if err != nil {
		envelope.BadRequest(c, "Channel ID is required")
		return
	}
	user, err := userFromContext(c)
	if err != nil {
		envelope.Unauthorized(c, "User not authenticated")
		return
	}

	info, err := h.channelService.Info(c.Request.Context(), channelID, user.ID)
	if err != nil {
		status, msg := statusFromError(err)
		envelope.Write(c, status, msg, nil)
		return
	}

	envelope.OK(c, "", gin.H{"channel": info.Channel, "posts": info.Posts})
}

type CreateChannelRequest struct {
	ID   uuid.UUID `json:"id" binding:"required"`
	Name string    `json:"name" binding:"required"`
	Icon string    `json:"icon"`
}

func (h *ChannelHandler) Create(c *gin.Context) {
	groupID, err := uuid.Parse(c.Param("groupid"))
	if err != nil {
		envelope.BadRequest(c, "Group ID is required")
		return
	}

	var req CreateChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	channels, err := h.channelService.Create(c.Request.Context(), groupID, req.ID, req.Name, req.Icon)
	if err != nil {
		envelope.NotFound(c, "Channel could not be created")
		return
	}

	envelope.OK(c, "", gin.H{"channel": channels})
}

type UpdateChannelRequest struct {
	Name *string `json:"name"`
	Icon *string `json:"icon"`
}

func (h *ChannelHandler) Update(c *gin.Context) {
	channelID, err := uuid.Parse(c.Param("channelid"))
	if err != nil {
		envelope.BadRequest(c, "Channel ID is required")
		return
	}

	var req UpdateChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if req.Name == nil && req.Icon == nil {
		envelope.BadRequest(c, "Nothing to update")
		return
	}

	if err := h.channelService.Update(c.Request.Context(), channelID, req.Name, req.Icon); err != nil {
		status, msg := statusFromError(err)
		envelope.Write(c, status, msg, nil)
		return
	}

	envelope.OK(c, "Channel successfully updated", nil)
}

func (h *ChannelHandler) Delete(c *gin.Context) {
	channelID, err := uuid.Parse(c.Param("channelid"))
	if err != nil {
		envelope.BadRequest(c, "Channel ID is required")
		return
	}

	if err := h.channelService.Delete(c.Request.Context(), channelID); err != nil {
		status, msg := statusFromError(err)
		envelope.Write(c, status, msg, nil)
		return
	}

	envelope.OK(c, "Channel deleted successfully", nil)
}
