package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"grouple/communityhub/internal/repository"
	"grouple/communityhub/internal/service"
	"grouple/communityhub/pkg/envelope"
)

type GroupHandler struct {
	groupService service.GroupService
}

func NewGroupHandler(groupService service.GroupService) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

type CreateGroupRequest struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category" binding:"required"`
}

func (h *GroupHandler) Create(c *gin.Context) {
	user, err := userFromContext(c)
	if err != nil {
		envelope.Unauthorized(c, "User not authenticated")
		return
	}

	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	created, err := h.groupService.Create(c.Request.Context(), user.ID, req.Name, req.Category)
	if err != nil {
		envelope.BadRequest(c, "Oops! group creation failed, try again later")
		return
	}

	envelope.OK(c, "Group created successfully", gin.H{
		"data": gin.H{
			"id": user.ID,
			"group": []gin.H{{
				"id":      created.GroupID,
				"channel": []gin.H{{"id": created.ChannelID}},
			}},
		},
	})
}

func (h *GroupHandler) Info(c *gin.Context) {
	groupID, err := uuid.Parse(c.Param("groupid"))
	if err != nil {
		envelope.BadRequest(c, "Group ID is required")
		return
	}
	user, err := userFromContext(c)
	if err != nil {
		envelope.Unauthorized(c, "User not authenticated")
		return
	}

	info, err := h.groupService.Info(c.Request.Context(), user.ID, groupID)
	if err != nil {
		status, msg := statusFromError(err)
		envelope.Write(c, status, msg, nil)
		return
	}

	envelope.OK(c, "", gin.H{"group": info.Group, "groupOwner": info.GroupOwner})
}

func (h *GroupHandler) UserGroups(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userid"))
	if err != nil {
		envelope.BadRequest(c, "User ID is required")
		return
	}

	groups, err := h.groupService.UserGroups(c.Request.Context(), userID)
	if err != nil {
		status, msg := statusFromError(err)
		envelope.Write(c, status, msg, nil)
		return
	}

	envelope.OK(c, "", gin.H{"groups": groups.Groups, "members": groups.Members})
}

func (h *GroupHandler) Channels(c *gin.Context) {
	groupID, err := uuid.Parse(c.Param("groupid"))
	if err != nil {
		envelope.BadRequest(c, "Group ID is required")
		return
	}

	channels, err := h.groupService.Channels(c.Request.Context(), groupID)
	if err != nil {
		status, msg := statusFromError(err)
		envelope.Write(c, status, msg, nil)
		return
	}

	envelope.OK(c, "", gin.H{"channels": channels})
}

func (h *GroupHandler) Members(c *gin.Context) {
	groupID, err := uuid.Parse(c.Param("groupid"))
	if err != nil {
		envelope.BadRequest(c, "Group ID is required")
		return
	}
	user, err := userFromContext(c)
	if err != nil {
		envelope.Unauthorized(c, "User not authenticated")
		return
	}

	members, err := h.groupService.Members(c.Request.Context(), groupID, user.ID)
	if err != nil {
		status, msg := statusFromError(err)
		envelope.Write(c, status, msg, nil)
		return
	}

	envelope.OK(c, "", gin.H{"members": members})
}

func (h *GroupHandler) Subscriptions(c *gin.Context) {
	groupID, err := uuid.Parse(c.Param("groupid"))
	if err != nil {
		envelope.BadRequest(c, "Group ID is required")
		return
	}

	subs, count, err := h.groupService.Subscriptions(c.Request.Context(), groupID)
	if err != nil {
		status, msg := statusFromError(err)
		envelope.Write(c, status, msg, nil)
		return
	}

	envelope.OK(c, "", gin.H{"subscriptions": subs, "count": count})
}

type UpdateSettingsRequest struct {
	Type    string `json:"type" binding:"required"`
	Content string `json:"content" binding:"required"`
}

var settingFields = map[string]repository.GroupField{
	"IMAGE":           repository.GroupFieldThumbnail,
	"ICON":            repository.GroupFieldIcon,
	"NAME":            repository.GroupFieldName,
	"DESCRIPTION":     repository.GroupFieldDescription,
	"JSONDESCRIPTION": repository.GroupFieldJSONDescription,
	"HTMLDESCRIPTION": repository.GroupFieldHTMLDescription,
}

func (h *GroupHandler) UpdateSettings(c *gin.Context) {
	groupID, err := uuid.Parse(c.Param("groupid"))
	if err != nil {
		envelope.BadRequest(c, "Group ID is required")
		return
	}

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	field, ok := settingFields[req.Type]
	if !ok {
		envelope.BadRequest(c, "unsupported settings type")
		return
	}

	if err := h.groupService.UpdateSetting(c.Request.Context(), groupID, field, req.Content); err != nil {
		status, msg := statusFromError(err)
		envelope.Write(c, status, msg, nil)
		return
	}

	envelope.OK(c, "Group settings updated successfuly", nil)
}

type UpdateGalleryRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *GroupHandler) UpdateGallery(c *gin.Context) {
	groupID, err := uuid.Parse(c.Param("groupid"))
	if err != nil {
		envelope.BadRequest(c, "Group ID is required")
		return
	}

	var req UpdateGalleryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	if err := h.groupService.AppendGallery(c.Request.Context(), groupID, req.Content); err != nil {
		status, msg := statusFromError(err)
		envelope.Write(c, status, msg, nil)
		return
	}

	envelope.OK(c, "Group gallery updated", nil)
}

func (h *GroupHandler) Search(c *gin.Context) {
	mode := c.Query("mode")
	if mode != "GROUPS" {
		envelope.BadRequest(c, "unsupported search mode")
		return
	}
	query := c.Query("query")
	paginate := intQuery(c, "paginate")

	groups, err := h.groupService.Search(c.Request.Context(), query, paginate)
	if err != nil {
		status, msg := statusFromError(err)
		envelope.Write(c, status, msg, nil)
		return
	}

	envelope.OK(c, "", gin.H{"groups": groups})
}

func (h *GroupHandler) Explore(c *gin.Context) {
	category := c.Query("category")
	paginate := intQuery(c, "paginate")

	groups, err := h.groupService.Explore(c.Request.Context(), category, paginate)
	if err != nil {
		if err.Error() == "category is required" {
			envelope.BadRequest(c, "Category is required")
			return
		}
		status, _ := statusFromError(err)
		if status == envelope.StatusNotFound {
			envelope.NotFound(c, "No groups found for this category")
			return
		}
		envelope.Write(c, status, "Internal server error", nil)
		return
	}

	envelope.OK(c, "", gin.H{"groups": groups})
}

type CreateInviteRequest struct {
	MaxUses   int        `json:"max_uses"`
	ExpiresAt *time.Time `json:"expires_at"`
}

func (h *GroupHandler) CreateInvite(c *gin.Context) {
	groupID, err := uuid.Parse(c.Param("groupid"))
	if err != nil {
		envelope.BadRequest(c, "Group ID is required")
		return
	}
	user, err := userFromContext(c)
	if err != nil {
		envelope.Unauthorized(c, "User not authenticated")
		return
	}

	var req CreateInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	invite, err := h.groupService.CreateInvite(c.Request.Context(), groupID, user.ID, req.MaxUses, req.ExpiresAt)
	if err != nil {
		status, msg := statusFromError(err)
		envelope.Write(c, status, msg, nil)
		return
	}

	envelope.OK(c, "Invite created", gin.H{"invite": invite})
}

type JoinRequest struct {
	InviteCode string `json:"invite_code"`
}

func (h *GroupHandler) Join(c *gin.Context) {
	groupID, err := uuid.Parse(c.Param("groupid"))
	if err != nil {
		envelope.BadRequest(c, "Group ID is required")
		return
	}
	user, err := userFromContext(c)
	if err != nil {
		envelope.Unauthorized(c, "User not authenticated")
		return
	}

	var req JoinRequest
	_ = c.ShouldBindJSON(&req)

	var member interface{}
	if req.InviteCode != "" {
		member, err = h.groupService.JoinWithInvite(c.Request.Context(), req.InviteCode, user.ID)
	} else {
		member, err = h.groupService.Join(c.Request.Context(), groupID, user.ID)
	}
	if err != nil {
		status, msg := statusFromError(err)
		envelope.Write(c, status, msg, nil)
		return
	}

	envelope.OK(c, "Joined group", gin.H{"member": member})
}

// PaidJoin records the membership for a priced group. It is called once the
// payment intent from /payments/intent has been confirmed in the browser.
func (h *GroupHandler) PaidJoin(c *gin.Context) {
	groupID, err := uuid.Parse(c.Param("groupid"))
	if err != nil {
		envelope.BadRequest(c, "Group ID is required")
		return
	}
	user, err := userFromContext(c)
	if err != nil {
		envelope.Unauthorized(c, "User not authenticated")
		return
	}

	member, err := h.groupService.CompletePaidJoin(c.Request.Context(), groupID, user.ID)
	if err != nil {
		status, msg := statusFromError(err)
		envelope.Write(c, status, msg, nil)
		return
	}

	envelope.OK(c, "Joined group", gin.H{"member": member})
}

func intQuery(c *gin.Context, name string) int {
	val := 0
	if raw := c.Query(name); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			val = parsed
		}
	}
	return val
}
