package catalog

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"labdesk/internal/domain"
	"labdesk/internal/repository"
)

var ErrNotFound = errors.New("catalog item not found")

type Service struct {
	tests    *repository.LabTestRepository
	packages *repository.PackageRepository
	ads      *repository.AdvertisementRepository
	settings *repository.SettingsRepository
}

func NewService(
	tests *repository.LabTestRepository,
	packages *repository.PackageRepository,
	ads *repository.AdvertisementRepository,
	settings *repository.SettingsRepository,
) *Service {
	return &Service{tests: tests, packages: packages, ads: ads, settings: settings}
}

func (s *Service) ListActiveTests(ctx context.Context) ([]domain.LabTest, error) {
	return s.tests.ListActive(ctx)
}

func (s *Service) ListAllTests(ctx context.Context) ([]domain.LabTest, error) {
	return s.tests.ListAll(ctx)
}

func (s *Service) CreateTest(ctx context.Context, t *domain.LabTest) error {
	t.IsActive = true
	return s.tests.Create(ctx, t)
}

func (s *Service) UpdateTest(ctx context.Context, t *domain.LabTest) error {
	if _, err := s.tests.GetByID(ctx, t.ID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}
	return s.tests.Update(ctx, t)
}

func (s *Service) DeleteTest(ctx context.Context, id int64) error {
	if _, err := s.tests.GetByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}
	return s.tests.Delete(ctx, id)
}

func (s *Service) ListActivePackages(ctx context.Context) ([]domain.HealthPackage, error) {
	return s.packages.ListActive(ctx)
}

func (s *Service) ListAllPackages(ctx context.Context) ([]domain.HealthPackage, error) {
	return s.packages.ListAll(ctx)
}

func (s *Service) CreatePackage(ctx context.Context, p *domain.HealthPackage) error {
	// A package must bundle tests that exist.
	found, err := s.tests.GetByIDs(ctx, p.TestIDs)
	if err != nil {
		return err
	}
	if len(found) != len(p.TestIDs) {
		return ErrNotFound
	}
	p.IsActive = true
	return s.packages.Create(ctx, p)
}

func (s *Service) UpdatePackage(ctx context.Context, p *domain.HealthPackage) error {
	if _, err := s.packages.GetByID(ctx, p.ID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}
	return s.packages.Update(ctx, p)
}

func (s *Service) DeletePackage(ctx context.Context, id int64) error {
	if _, err := s.packages.GetByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}
	return s.packages.Delete(ctx, id)
}

func (s *Service) ListActiveAds(ctx context.Context) ([]domain.Advertisement, error) {
	return s.ads.ListActive(ctx)
}

func (s *Service) ListAllAds(ctx context.Context) ([]domain.Advertisement, error) {
	return s.ads.ListAll(ctx)
}

func (s *Service) CreateAd(ctx context.Context, a *domain.Advertisement) error {
	a.IsActive = true
	return s.ads.Create(ctx, a)
}

func (s *Service) UpdateAd(ctx context.Context, a *domain.Advertisement) error {
	if _, err := s.ads.GetByID(ctx, a.ID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}
	return s.ads.Update(ctx, a)
}

func (s *Service) DeleteAd(ctx context.Context, id int64) error {
	if _, err := s.ads.GetByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}
	return s.ads.Delete(ctx, id)
}

func (s *Service) GetSettings(ctx context.Context) (*domain.LabSettings, error) {
	return s.settings.Get(ctx)
}

func (s *Service) UpdateSettings(ctx context.Context, in *domain.LabSettings) (*domain.LabSettings, error) {
	if err := s.settings.Update(ctx, in); err != nil {
		return nil, err
	}
	return s.settings.Get(ctx)
}
