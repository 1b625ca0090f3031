package catalog

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"labdesk/internal/domain"
	"labdesk/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/tests", h.ListTests)
	rg.GET("/packages", h.ListPackages)
	rg.GET("/advertisements", h.ListAds)
	rg.GET("/settings", h.GetSettings)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/tests", h.ListAllTests)
	rg.POST("/tests", h.CreateTest)
	rg.PUT("/tests/:id", h.UpdateTest)
	rg.DELETE("/tests/:id", h.DeleteTest)

	rg.GET("/packages", h.ListAllPackages)
	rg.POST("/packages", h.CreatePackage)
	rg.PUT("/packages/:id", h.UpdatePackage)
	rg.DELETE("/packages/:id", h.DeletePackage)

	rg.GET("/advertisements", h.ListAllAds)
	rg.POST("/advertisements", h.CreateAd)
	rg.PUT("/advertisements/:id", h.UpdateAd)
	rg.DELETE("/advertisements/:id", h.DeleteAd)

	rg.PUT("/settings", h.UpdateSettings)
}

func (h *Handler) ListTests(c *gin.Context) {
	tests, err := h.service.ListActiveTests(c.Request.Context())
	if err != nil {
		response.Internal(c, "Failed to list tests")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tests": tests})
}

func (h *Handler) ListAllTests(c *gin.Context) {
	tests, err := h.service.ListAllTests(c.Request.Context())
	if err != nil {
		response.Internal(c, "Failed to list tests")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tests": tests})
}

func (h *Handler) CreateTest(c *gin.Context) {
	var t domain.LabTest
	if err := c.ShouldBindJSON(&t); err != nil || t.Name == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid test")
		return
	}
	if err := h.service.CreateTest(c.Request.Context(), &t); err != nil {
		response.Internal(c, "Failed to create test")
		return
	}
	response.Created(c, gin.H{"test": t})
}

func (h *Handler) UpdateTest(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return
	}

	var t domain.LabTest
	if err := c.ShouldBindJSON(&t); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid test")
		return
	}
	t.ID = id

	if err := h.service.UpdateTest(c.Request.Context(), &t); err != nil {
		if err == ErrNotFound {
			response.NotFound(c, "Test not found")
			return
		}
		response.Internal(c, "Failed to update test")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"test": t})
}

func (h *Handler) DeleteTest(c *gin.Context) {
	h.deleteByID(c, h.service.DeleteTest, "Test not found")
}

func (h *Handler) ListPackages(c *gin.Context) {
	packages, err := h.service.ListActivePackages(c.Request.Context())
	if err != nil {
		response.Internal(c, "Failed to list packages")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"packages": packages})
}

func (h *Handler) ListAllPackages(c *gin.Context) {
	packages, err := h.service.ListAllPackages(c.Request.Context())
	if err != nil {
		response.Internal(c, "Failed to list packages")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"packages": packages})
}

func (h *Handler) CreatePackage(c *gin.Context) {
	var p domain.HealthPackage
	if err := c.ShouldBindJSON(&p); err != nil || p.Name == "" || len(p.TestIDs) == 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid package")
		return
	}
	if err := h.service.CreatePackage(c.Request.Context(), &p); err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Package references unknown tests")
			return
		}
		response.Internal(c, "Failed to create package")
		return
	}
	response.Created(c, gin.H{"package": p})
}

func (h *Handler) UpdatePackage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return
	}

	var p domain.HealthPackage
	if err := c.ShouldBindJSON(&p); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid package")
		return
	}
	p.ID = id

	if err := h.service.UpdatePackage(c.Request.Context(), &p); err != nil {
		if err == ErrNotFound {
			response.NotFound(c, "Package not found")
			return
		}
		response.Internal(c, "Failed to update package")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"package": p})
}

func (h *Handler) DeletePackage(c *gin.Context) {
	h.deleteByID(c, h.service.DeletePackage, "Package not found")
}

func (h *Handler) ListAds(c *gin.Context) {
	ads, err := h.service.ListActiveAds(c.Request.Context())
	if err != nil {
		response.Internal(c, "Failed to list advertisements")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"advertisements": ads})
}

func (h *Handler) ListAllAds(c *gin.Context) {
	ads, err := h.service.ListAllAds(c.Request.Context())
	if err != nil {
		response.Internal(c, "Failed to list advertisements")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"advertisements": ads})
}

func (h *Handler) CreateAd(c *gin.Context) {
	var a domain.Advertisement
	if err := c.ShouldBindJSON(&a); err != nil || a.Title == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid advertisement")
		return
	}
	if err := h.service.CreateAd(c.Request.Context(), &a); err != nil {
		response.Internal(c, "Failed to create advertisement")
		return
	}
	response.Created(c, gin.H{"advertisement": a})
}

func (h *Handler) UpdateAd(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return
	}

	var a domain.Advertisement
	if err := c.ShouldBindJSON(&a); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid advertisement")
		return
	}
	a.ID = id

	if err := h.service.UpdateAd(c.Request.Context(), &a); err != nil {
		if err == ErrNotFound {
			response.NotFound(c, "Advertisement not found")
			return
		}
		response.Internal(c, "Failed to update advertisement")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"advertisement": a})
}

func (h *Handler) DeleteAd(c *gin.Context) {
	h.deleteByID(c, h.service.DeleteAd, "Advertisement not found")
}

func (h *Handler) GetSettings(c *gin.Context) {
	s, err := h.service.GetSettings(c.Request.Context())
	if err != nil {
		response.Internal(c, "Failed to load settings")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"settings": s})
}

func (h *Handler) UpdateSettings(c *gin.Context) {
	var in domain.LabSettings
	if err := c.ShouldBindJSON(&in); err != nil || in.LabName == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid settings")
		return
	}

	s, err := h.service.UpdateSettings(c.Request.Context(), &in)
	if err != nil {
		response.Internal(c, "Failed to update settings")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"settings": s})
}

func (h *Handler) deleteByID(c *gin.Context, del func(ctx context.Context, id int64) error, notFoundMsg string) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return
	}

	if err := del(c.Request.Context(), id); err != nil {
		if err == ErrNotFound {
			response.NotFound(c, notFoundMsg)
			return
		}
		response.Internal(c, "Failed to delete")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
