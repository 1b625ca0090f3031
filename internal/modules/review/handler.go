package review

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

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/reviews", h.Create)
	rg.GET("/reviews", h.ListApproved)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/reviews", h.ListAll)
	rg.PATCH("/reviews/:id/approve", h.Approve)
	rg.DELETE("/reviews/:id", h.Delete)
}

type createRequest struct {
	PatientName string `json:"patient_name" binding:"required"`
	Rating      int    `json:"rating" binding:"required,min=1,max=5"`
	Comment     string `json:"comment"`
}

func (h *Handler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	r, err := h.service.Create(c.Request.Context(), req.PatientName, req.Rating, req.Comment)
	if err != nil {
		if err == ErrValidation {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid review")
			return
		}
		response.Internal(c, "Failed to submit review")
		return
	}

	response.Created(c, gin.H{"review": r})
}

func (h *Handler) ListApproved(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	list, err := h.service.ListApproved(c.Request.Context(), limit)
	if err != nil {
		response.Internal(c, "Failed to list reviews")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reviews": list})
}

func (h *Handler) ListAll(c *gin.Context) {
	list, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		response.Internal(c, "Failed to list reviews")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reviews": list})
}

func (h *Handler) Approve(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return
	}

	if err := h.service.Approve(c.Request.Context(), id); err != nil {
		response.Internal(c, "Failed to approve review")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"approved": true})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Internal(c, "Failed to delete review")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
