package walkin

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

// RegisterAdminRoutes wires collection CRUD; report entry for walk-ins lives
// in the report module.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/walkin-collections", h.Create)
	rg.GET("/walkin-collections", h.List)
	rg.DELETE("/walkin-collections/:id", h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	w, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		if err == ErrValidation {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "One or more test ids are unknown")
			return
		}
		response.Internal(c, "Failed to create walk-in collection")
		return
	}

	response.Created(c, gin.H{"collection": w})
}

func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	list, total, err := h.service.List(c.Request.Context(), limit, offset)
	if err != nil {
		response.Internal(c, "Failed to list walk-in collections")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"collections": list,
		"total":       total,
	})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if err == ErrNotFound {
			response.NotFound(c, "Walk-in collection not found")
			return
		}
		response.Internal(c, "Failed to delete walk-in collection")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
