package notification

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	jwtsvc "labdesk/internal/pkg/jwt"
	"labdesk/internal/pkg/logger"
	"labdesk/internal/pkg/response"
)

// Origin is already policed by the CORS middleware for the REST surface; the
// stream endpoint is token-gated.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Handler struct {
	service *Service
	hub     *Hub
	jwt     *jwtsvc.Service
}

func NewHandler(service *Service, hub *Hub, jwt *jwtsvc.Service) *Handler {
	return &Handler{service: service, hub: hub, jwt: jwt}
}

// RegisterPublicRoutes exposes patient notification listing.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/notifications", h.GetPatientNotifications)
}

// RegisterAdminRoutes exposes the admin inbox and the websocket stream.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/notifications", h.GetAdminNotifications)
	rg.PATCH("/notifications/:id/read", h.MarkRead)
	rg.PATCH("/notifications/read-all", h.MarkAllRead)
}

// RegisterStreamRoute registers the websocket endpoint. It authenticates via
// ?token= because websocket clients cannot set headers.
func (h *Handler) RegisterStreamRoute(rg *gin.RouterGroup) {
	rg.GET("/notifications/stream", h.Stream)
}

func (h *Handler) GetPatientNotifications(c *gin.Context) {
	patientID, err := strconv.ParseInt(c.Query("patient_id"), 10, 64)
	if err != nil || patientID <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "patient_id is required")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	list, err := h.service.GetPatientNotifications(c.Request.Context(), patientID, limit)
	if err != nil {
		response.Internal(c, "Failed to load notifications")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"notifications": list})
}

func (h *Handler) GetAdminNotifications(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	list, unread, err := h.service.GetAdminNotifications(c.Request.Context(), limit)
	if err != nil {
		response.Internal(c, "Failed to load notifications")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"notifications": list,
		"unread_count":  unread,
	})
}

func (h *Handler) MarkRead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid notification id")
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), id); err != nil {
		response.Internal(c, "Failed to mark notification read")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": id})
}

func (h *Handler) MarkAllRead(c *gin.Context) {
	if err := h.service.MarkAllAdminRead(c.Request.Context()); err != nil {
		response.Internal(c, "Failed to mark notifications read")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"marked": true})
}

func (h *Handler) Stream(c *gin.Context) {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token is required")
		return
	}

	claims, err := h.jwt.ValidateToken(tokenStr)
	if err != nil || claims.Role != "admin" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.L().Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	h.hub.Register(claims.AdminID, conn)
	defer h.hub.Unregister(claims.AdminID)

	// The stream is push-only; the read loop exists to detect the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
