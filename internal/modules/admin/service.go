package admin

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"labdesk/internal/domain"
	"labdesk/internal/pkg/jwt"
	"labdesk/internal/repository"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type Service struct {
	admins *repository.AdminRepository
	jwt    *jwt.Service
}

func NewService(admins *repository.AdminRepository, jwtService *jwt.Service) *Service {
	return &Service{admins: admins, jwt: jwtService}
}

// Login verifies credentials and issues a signed token for the admin panel.
func (s *Service) Login(ctx context.Context, email, password string) (string, *domain.Admin, error) {
	a, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(a.ID, a.Name, a.Role)
	if err != nil {
		return "", nil, err
	}
	return token, a, nil
}

func (s *Service) GetProfile(ctx context.Context, id int64) (*domain.Admin, error) {
	return s.admins.GetByID(ctx, id)
}
