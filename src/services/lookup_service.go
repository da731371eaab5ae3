package services

import (
	"context"

	"gorm.io/gorm"

	"assethub/src/models"
	"assethub/src/repositories"
)

// LookupService serves the reference lists clients use to populate asset
// filters: locations and categories.
type LookupService struct {
	locations  repositories.LocationRepository
	categories repositories.CategoryRepository
}

func NewLookupService(db *gorm.DB) *LookupService {
	return &LookupService{
		locations:  repositories.NewLocationRepository(db),
		categories: repositories.NewCategoryRepository(db),
	}
}

func (s *LookupService) Locations(ctx context.Context) ([]models.Location, error) {
	return s.locations.FindAll(ctx)
}

func (s *LookupService) Categories(ctx context.Context) ([]models.Category, error) {
	return s.categories.FindAll(ctx)
}
