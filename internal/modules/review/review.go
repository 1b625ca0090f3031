package review

import (
	"context"
	"errors"

	"labdesk/internal/domain"
	"labdesk/internal/repository"
)

var ErrValidation = errors.New("validation error")

type Service struct {
	reviews *repository.ReviewRepository
}

func NewService(reviews *repository.ReviewRepository) *Service {
	return &Service{reviews: reviews}
}

// Create accepts a public review; it stays hidden until an admin approves it.
func (s *Service) Create(ctx context.Context, patientName string, rating int, comment string) (*domain.Review, error) {
	if patientName == "" || rating < 1 || rating > 5 {
		return nil, ErrValidation
	}

	r := &domain.Review{
		PatientName: patientName,
		Rating:      rating,
		Comment:     comment,
	}
	if err := s.reviews.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) ListApproved(ctx context.Context, limit int) ([]domain.Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.reviews.ListApproved(ctx, limit)
}

func (s *Service) ListAll(ctx context.Context) ([]domain.Review, error) {
	return s.reviews.ListAll(ctx)
}

func (s *Service) Approve(ctx context.Context, id int64) error {
	return s.reviews.SetApproved(ctx, id, true)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.reviews.Delete(ctx, id)
}
