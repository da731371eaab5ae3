package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"assethub/src/models"
)

type CategoryRepository interface {
	FindByID(ctx context.Context, id string) (*models.Category, error)
	FindAll(ctx context.Context) ([]models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	NextCode(ctx context.Context, categoryID string) (string, error)
	WithTx(tx *gorm.DB) CategoryRepository
}

type categoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) WithTx(tx *gorm.DB) CategoryRepository {
	return &categoryRepo{db: tx}
}

func (r *categoryRepo) FindByID(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepo) FindAll(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *categoryRepo) Create(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// NextCode claims the next human-readable asset code for the category, e.g.
// LA000001. The counter bump is a single atomic UPDATE so concurrent creates
// cannot claim the same number.
func (r *categoryRepo) NextCode(ctx context.Context, categoryID string) (string, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("id = ?", categoryID).
		Update("next_number", gorm.Expr("next_number + 1"))
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected == 0 {
		return "", fmt.Errorf("category %s not found", categoryID)
	}

	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", categoryID).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%06d", category.Prefix, category.NextNumber-1), nil
}
