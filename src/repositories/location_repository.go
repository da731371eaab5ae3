package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"assethub/src/models"
)

type LocationRepository interface {
	FindByID(ctx context.Context, id string) (*models.Location, error)
	FindAll(ctx context.Context) ([]models.Location, error)
	Create(ctx context.Context, location *models.Location) error
}

type locationRepo struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &locationRepo{db: db}
}

func (r *locationRepo) FindByID(ctx context.Context, id string) (*models.Location, error) {
	var location models.Location
	err := r.db.WithContext(ctx).First(&location, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *locationRepo) FindAll(ctx context.Context) ([]models.Location, error) {
	var locations []models.Location
	err := r.db.WithContext(ctx).Order("name ASC").Find(&locations).Error
	return locations, err
}

func (r *locationRepo) Create(ctx context.Context, location *models.Location) error {
	return r.db.WithContext(ctx).Create(location).Error
}
