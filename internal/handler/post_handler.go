package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"grouple/communityhub/internal/model"
	"grouple/communityhub/internal/service"
	"grouple/communityhub/pkg/envelope"
)

type PostHandler struct {
	postService service.PostService
}

func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

func (h *PostHandler) Paginated(c *gin.Context) {
	channelID, err := uuid.Parse(c.Param("channelid"))
	if err != nil {
		envelope.BadRequest(c, "Channel ID is required")
		return
	}
	user, err := userFromContext(c)
	if err != nil {
		envelope.Unauthorized(c, "Unauthorized access")
		return
	}

	posts, err := h.postService.Paginated(c.Request.Context(), channelID, user.ID, intQuery(c, "paginate"))
	if err != nil {
		status, _ := statusFromError(err)
		if status == envelope.StatusNotFound {
			envelope.NotFound(c, "No posts found")
			return
		}
		envelope.Write(c, status, "Internal server error", nil)
		return
	}

	envelope.OK(c, "", gin.H{"posts": posts})
}

type CreatePostRequest struct {
	Title       string  `json:"title"`
	Content     string  `json:"content" binding:"required"`
	HTMLContent *string `json:"html_content"`
	JSONContent *string `json:"json_content"`
}

func (h *PostHandler) Create(c *gin.Context) {
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

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	post := &model.Post{
		Title:       req.Title,
		Content:     req.Content,
		HTMLContent: req.HTMLContent,
		JSONContent: req.JSONContent,
		ChannelID:   channelID,
		AuthorID:    user.ID,
	}
	if err := h.postService.Create(c.Request.Context(), post); err != nil {
		envelope.BadRequest(c, "Post could not be created")
		return
	}

	envelope.OK(c, "Post created successfully", gin.H{"post": post})
}

func (h *PostHandler) Like(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("postid"))
	if err != nil {
		envelope.BadRequest(c, "Post ID is required")
		return
	}
	user, err := userFromContext(c)
	if err != nil {
		envelope.Unauthorized(c, "User not authenticated")
		return
	}

	if err := h.postService.Like(c.Request.Context(), postID, user.ID); err != nil {
		status, msg := statusFromError(err)
		envelope.Write(c, status, msg, nil)
		return
	}

	envelope.OK(c, "Post liked", nil)
}

func (h *PostHandler) Unlike(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("postid"))
	if err != nil {
		envelope.BadRequest(c, "Post ID is required")
		return
	}
	user, err := userFromContext(c)
	if err != nil {
		envelope.Unauthorized(c, "User not authenticated")
		return
	}

	if err := h.postService.Unlike(c.Request.Context(), postID, user.ID); err != nil {
		status, msg := statusFromError(err)
		envelope.Write(c, status, msg, nil)
		return
	}

	envelope.OK(c, "Like removed", nil)
}

type CommentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *PostHandler) Comment(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("postid"))
	if err != nil {
		envelope.BadRequest(c, "Post ID is required")
		return
	}
	user, err := userFromContext(c)
	if err != nil {
		envelope.Unauthorized(c, "User not authenticated")
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	comment, err := h.postService.Comment(c.Request.Context(), postID, user.ID, req.Content)
	if err != nil {
		status, msg := statusFromError(err)
		envelope.Write(c, status, msg, nil)
		return
	}

	envelope.OK(c, "Comment added", gin.H{"comment": comment})
}

func (h *PostHandler) Comments(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("postid"))
	if err != nil {
		envelope.BadRequest(c, "Post ID is required")
		return
	}

	comments, err := h.postService.Comments(c.Request.Context(), postID)
	if err != nil {
		status, msg := statusFromError(err)
		envelope.Write(c, status, msg, nil)
		return
	}

	envelope.OK(c, "", gin.H{"comments": comments})
}
