package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"labdesk/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes wires the login endpoint; everything else behind
// the admin group requires a valid token.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/admin/login", h.Login)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", h.Me)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	token, a, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if err == ErrInvalidCredentials {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid email or password")
			return
		}
		response.Internal(c, "Failed to log in")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"token": token,
		"admin": a,
	})
}

func (h *Handler) Me(c *gin.Context) {
	id := c.GetInt64("admin_id")

	a, err := h.service.GetProfile(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "Admin not found")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"admin": a})
}
