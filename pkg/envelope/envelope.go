package envelope

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Status codes carried inside the envelope body. The transport always
// answers HTTP 200; callers branch on this field, never on transport errors.
const (
	StatusOK           = 200
	StatusAlternate    = 207
	StatusBadRequest   = 400
	StatusUnauthorized = 401
	StatusNotFound     = 404
	StatusInternal     = 500
)

// Write emits an action envelope: {"status": ..., "message": ..., <fields>}.
// Domain fields are flattened into the top level of the body.
func Write(c *gin.Context, status int, message string, fields gin.H) {
	body := gin.H{"status": status}
	if message != "" {
		body["message"] = message
	}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

func OK(c *gin.Context, message string, fields gin.H) {
	Write(c, StatusOK, message, fields)
}

// Alternate signals the 207 redirect path used during sign-in when the user
// already owns a group and channel to land in.
func Alternate(c *gin.Context, fields gin.H) {
	Write(c, StatusAlternate, "", fields)
}

func BadRequest(c *gin.Context, message string) {
	Write(c, StatusBadRequest, message, nil)
}

func Unauthorized(c *gin.Context, message string) {
	Write(c, StatusUnauthorized, message, nil)
}

func NotFound(c *gin.Context, message string) {
	Write(c, StatusNotFound, message, nil)
}

func Internal(c *gin.Context, message string) {
	Write(c, StatusInternal, message, nil)
}
