package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"grouple/communityhub/internal/service"
	"grouple/communityhub/pkg/envelope"
)

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

func (h *PaymentHandler) ClientSecret(c *gin.Context) {
	secret, err := h.paymentService.ClientSecret(c.Request.Context())
	if err != nil {
		envelope.BadRequest(c, "Failed to load form")
		return
	}
	envelope.OK(c, "", gin.H{"secret": secret})
}

type TransferRequest struct {
	Destination string `json:"destination" binding:"required"`
}

func (h *PaymentHandler) Transfer(c *gin.Context) {
	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	if err := h.paymentService.TransferCommission(c.Request.Context(), req.Destination); err != nil {
		envelope.BadRequest(c, "")
		return
	}
	envelope.OK(c, "", nil)
}

func (h *PaymentHandler) AffiliateInfo(c *gin.Context) {
	affiliateID, err := uuid.Parse(c.Param("affiliateid"))
	if err != nil {
		envelope.BadRequest(c, "Affiliate ID is required")
		return
	}

	owner, err := h.paymentService.AffiliateInfo(c.Request.Context(), affiliateID)
	if err != nil {
		status, _ := statusFromError(err)
		if status == envelope.StatusNotFound {
			envelope.Write(c, envelope.StatusNotFound, "", nil)
			return
		}
		envelope.BadRequest(c, "")
		return
	}

	envelope.OK(c, "", gin.H{"user": owner})
}

type CreateSubscriptionRequest struct {
	Price int `json:"price" binding:"required"`
}

func (h *PaymentHandler) CreateSubscription(c *gin.Context) {
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

	var req CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	sub, err := h.paymentService.CreateSubscription(c.Request.Context(), groupID, user.ID, req.Price)
	if err != nil {
		status, msg := statusFromError(err)
		envelope.Write(c, status, msg, nil)
		return
	}

	envelope.OK(c, "Subscription created", gin.H{"subscription": sub})
}

func (h *PaymentHandler) ActivateSubscription(c *gin.Context) {
	subID, err := uuid.Parse(c.Param("subscriptionid"))
	if err != nil {
		envelope.BadRequest(c, "Subscription ID is required")
		return
	}

	if err := h.paymentService.ActivateSubscription(c.Request.Context(), subID); err != nil {
		status, msg := statusFromError(err)
		envelope.Write(c, status, msg, nil)
		return
	}

	envelope.OK(c, "Subscription activated", nil)
}
