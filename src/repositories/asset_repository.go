package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"assethub/src/models"
	"assethub/src/query"
)

type AssetRepository interface {
	FindByID(ctx context.Context, id string) (*models.Asset, error)
	FindActiveByID(ctx context.Context, id string) (*models.Asset, error)
	Create(ctx context.Context, asset *models.Asset) error
	Save(ctx context.Context, asset *models.Asset) error
	FindPage(ctx context.Context, spec query.Specification, order string, page query.PageRequest) ([]models.Asset, int64, error)
	FindAllMatching(ctx context.Context, spec query.Specification, order string) ([]models.Asset, error)
	WithTx(tx *gorm.DB) AssetRepository
}

type assetRepo struct {
	db *gorm.DB
}

func NewAssetRepository(db *gorm.DB) AssetRepository {
	return &assetRepo{db: db}
}

func (r *assetRepo) WithTx(tx *gorm.DB) AssetRepository {
	return &assetRepo{db: tx}
}

// FindByID returns the asset regardless of soft-delete state, or (nil, nil)
// when no row exists.
func (r *assetRepo) FindByID(ctx context.Context, id string) (*models.Asset, error) {
	var asset models.Asset
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Location").
		First(&asset, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

// FindActiveByID excludes soft-deleted rows.
func (r *assetRepo) FindActiveByID(ctx context.Context, id string) (*models.Asset, error) {
	var asset models.Asset
	err := ActiveOnly(r.db.WithContext(ctx)).
		Preload("Category").
		Preload("Location").
		First(&asset, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *assetRepo) Create(ctx context.Context, asset *models.Asset) error {
	return r.db.WithContext(ctx).Create(asset).Error
}

func (r *assetRepo) Save(ctx context.Context, asset *models.Asset) error {
	return r.db.WithContext(ctx).Save(asset).Error
}

// base carries the exclude-deleted filter so every list and count built on
// it sees only active rows; callers never re-add it.
func (r *assetRepo) base(ctx context.Context) func() *gorm.DB {
	return func() *gorm.DB {
		return r.db.WithContext(ctx).
			Model(&models.Asset{}).
			Where("assets.state = ?", models.StateActive).
			Joins("LEFT JOIN categories ON categories.id = assets.category_id").
			Preload("Category").
			Preload("Location")
	}
}

func (r *assetRepo) FindPage(ctx context.Context, spec query.Specification, order string, page query.PageRequest) ([]models.Asset, int64, error) {
	return findPage[models.Asset](r.base(ctx), spec, order, page)
}

func (r *assetRepo) FindAllMatching(ctx context.Context, spec query.Specification, order string) ([]models.Asset, error) {
	return findAll[models.Asset](r.base(ctx), spec, order)
}
