package booking

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"labdesk/internal/pkg/response"
	"labdesk/internal/pkg/validator"
	"labdesk/internal/repository"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.CreateBooking)
	rg.GET("/bookings/:number", h.GetByNumber)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/bookings", h.List)
	rg.PATCH("/bookings/:id/status", h.UpdateStatus)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if details := validator.BindingErrors(err); details != nil {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", details)
			return
		}
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking request")
		case ErrUnknownTest:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "One or more test ids are unknown")
		default:
			response.Internal(c, "Failed to create booking")
		}
		return
	}

	response.Created(c, gin.H{"booking": b})
}

// GetByNumber is the public status check; it returns a trimmed summary
// rather than the full admin view.
func (h *Handler) GetByNumber(c *gin.Context) {
	b, err := h.service.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		if err == ErrNotFound {
			response.NotFound(c, "Booking not found")
			return
		}
		response.Internal(c, "Failed to load booking")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": BookingSummary{
		ID:            b.ID,
		BookingNumber: b.BookingNumber,
		Status:        string(b.Status),
		PaymentStatus: string(b.PaymentStatus),
		TotalAmount:   b.TotalAmount,
		SlotDate:      b.SlotDate,
		SlotTime:      b.SlotTime,
	}})
}

func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	list, total, err := h.service.List(c.Request.Context(), repository.BookingFilter{
		Status:        c.Query("status"),
		PaymentStatus: c.Query("payment_status"),
		Limit:         limit,
		Offset:        offset,
	})
	if err != nil {
		response.Internal(c, "Failed to list bookings")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"bookings": list,
		"total":    total,
	})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.NotFound(c, "Booking not found")
		case ErrBadTransition:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Status cannot be set to this value")
		default:
			response.Internal(c, "Failed to update booking status")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}
