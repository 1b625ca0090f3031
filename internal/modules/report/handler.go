package report

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"labdesk/internal/domain"
	"labdesk/internal/pkg/response"
	"labdesk/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterAdminRoutes wires report entry and report-details for both parents.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings/:id/tests/:testId/report", h.saveFor(domain.ParentBooking))
	rg.GET("/bookings/:id/report-details", h.detailsFor(domain.ParentBooking))
	rg.POST("/walkin-collections/:id/tests/:testId/report", h.saveFor(domain.ParentWalkin))
	rg.GET("/walkin-collections/:id/report-details", h.detailsFor(domain.ParentWalkin))
}

// RegisterPublicRoutes wires the token-gated download.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/reports/download/:token", h.Download)
}

func (h *Handler) saveFor(kind domain.ParentType) gin.HandlerFunc {
	return func(c *gin.Context) {
		parentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
			return
		}
		testID, err := strconv.ParseInt(c.Param("testId"), 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid test id")
			return
		}

		var req SaveReportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			if details := validator.BindingErrors(err); details != nil {
				response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", details)
				return
			}
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
			return
		}

		res, err := h.service.SaveTestReport(c.Request.Context(), kind, parentID, testID, req)
		if err != nil {
			switch err {
			case ErrNotFound:
				response.NotFound(c, "Record not found")
			case ErrTestNotInParent:
				response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Test is not part of this record")
			case ErrNoPatient:
				response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Record has no patient; cannot generate reports")
			case ErrAlreadyFinalized:
				response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Test report is already finalized")
			default:
				response.Internal(c, "Failed to save report")
			}
			return
		}

		response.Created(c, res)
	}
}

func (h *Handler) detailsFor(kind domain.ParentType) gin.HandlerFunc {
	return func(c *gin.Context) {
		parentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
			return
		}

		details, err := h.service.GetDetails(c.Request.Context(), kind, parentID)
		if err != nil {
			if err == ErrNotFound {
				response.NotFound(c, "Record not found")
				return
			}
			response.Internal(c, "Failed to load report details")
			return
		}

		response.Success(c, http.StatusOK, details)
	}
}

func (h *Handler) Download(c *gin.Context) {
	data, err := h.service.Download(c.Request.Context(), c.Param("token"))
	if err != nil {
		switch err {
		case ErrReportNotFound:
			response.NotFound(c, "Report not found")
		case ErrPaymentRequired:
			response.Error(c, http.StatusForbidden, "PAYMENT_REQUIRED", "Payment must be verified before downloading this report")
		default:
			response.Internal(c, "Failed to load report")
		}
		return
	}

	html, err := RenderHTML(data)
	if err != nil {
		response.Internal(c, "Failed to render report")
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}
