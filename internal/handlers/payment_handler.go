package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sjperalta/clientpulse-api/internal/models"
	"github.com/sjperalta/clientpulse-api/internal/services"
)

// ConfirmPaymentRequest optionally records when the money arrived
type ConfirmPaymentRequest struct {
	PaymentDate *time.Time `json:"payment_date"`
}

type PaymentHandler struct {
	paymentService *services.PaymentService
}

func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Confirm moves a pending payment to confirmed
func (h *PaymentHandler) Confirm(c *gin.Context) {
	id, ok := paymentID(c)
	if !ok {
		return
	}

	var req ConfirmPaymentRequest
	if err := BindNestedOrFlat(c, "payment", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment, err := h.paymentService.Confirm(c.Request.Context(), id, req.PaymentDate)
	respondPayment(c, payment, err)
}

// Fail moves a pending payment to failed
func (h *PaymentHandler) Fail(c *gin.Context) {
	id, ok := paymentID(c)
	if !ok {
		return
	}
	payment, err := h.paymentService.Fail(c.Request.Context(), id)
	respondPayment(c, payment, err)
}

// Retry moves a failed payment back to pending
func (h *PaymentHandler) Retry(c *gin.Context) {
	id, ok := paymentID(c)
	if !ok {
		return
	}
	payment, err := h.paymentService.Retry(c.Request.Context(), id)
	respondPayment(c, payment, err)
}

func paymentID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("payment_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment id"})
		return uuid.Nil, false
	}
	return id, true
}

func respondPayment(c *gin.Context, payment *models.Payment, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": payment})
}
