package prescription

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"labdesk/internal/domain"
	"labdesk/internal/pkg/response"
	"labdesk/internal/repository"
)

type PatientRepository interface {
	GetOrCreateByPhone(ctx context.Context, name, phone string) (*domain.Patient, error)
}

type Service struct {
	prescriptions *repository.PrescriptionRepository
	patients      PatientRepository
}

func NewService(prescriptions *repository.PrescriptionRepository, patients PatientRepository) *Service {
	return &Service{prescriptions: prescriptions, patients: patients}
}

type CreateRequest struct {
	PatientName  string `json:"patient_name" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	FileURL      string `json:"file_url" binding:"required,url"`
	OriginalName string `json:"original_name"`
	Note         string `json:"note"`
}

// Create records an uploaded prescription so staff can call the patient
// back with a quote. The file itself is stored by the upload service.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*domain.Prescription, error) {
	patient, err := s.patients.GetOrCreateByPhone(ctx, req.PatientName, req.Phone)
	if err != nil {
		return nil, err
	}

	p := &domain.Prescription{
		PatientID:    &patient.ID,
		PatientName:  req.PatientName,
		Phone:        req.Phone,
		FileURL:      req.FileURL,
		OriginalName: req.OriginalName,
		Note:         req.Note,
	}
	if err := s.prescriptions.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]domain.Prescription, error) {
	return s.prescriptions.List(ctx, limit, offset)
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/prescriptions", h.Create)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/prescriptions", h.List)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Internal(c, "Failed to save prescription")
		return
	}

	response.Created(c, gin.H{"prescription": p})
}

func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	list, err := h.service.List(c.Request.Context(), limit, offset)
	if err != nil {
		response.Internal(c, "Failed to list prescriptions")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"prescriptions": list})
}
