package payment

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"labdesk/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.PATCH("/bookings/:id/verify-payment", h.VerifyPayment)
}

func (h *Handler) VerifyPayment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	verifiedBy := c.GetString("admin_name")
	if verifiedBy == "" {
		verifiedBy = "admin"
	}

	b, err := h.service.VerifyBookingPayment(c.Request.Context(), id, verifiedBy)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.NotFound(c, "Booking not found")
		case ErrPaymentState:
			response.Error(c, http.StatusBadRequest, "PAYMENT_STATE", "Booking is not awaiting payment verification")
		default:
			response.Internal(c, "Failed to verify payment")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}
