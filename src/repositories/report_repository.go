package repositories

import (
	"context"

	"gorm.io/gorm"

	"assethub/src/models"
	"assethub/src/query"
	"assethub/src/schemas"
)

type ReportRepository interface {
	// RowsPage computes the per-category status breakdown with conditional
	// sums so the database can order by any bucket.
	RowsPage(ctx context.Context, order string, page query.PageRequest) ([]schemas.ReportRow, int64, error)
}

type reportRepo struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepo{db: db}
}

func (r *reportRepo) RowsPage(ctx context.Context, order string, page query.PageRequest) ([]schemas.ReportRow, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Category{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	rows := []schemas.ReportRow{}
	err := r.db.WithContext(ctx).
		Table("categories").
		Select(`categories.id AS category_id,
			categories.name AS category_name,
			COUNT(assets.id) AS total,
			SUM(CASE WHEN assets.status = ? THEN 1 ELSE 0 END) AS assigned,
			SUM(CASE WHEN assets.status = ? THEN 1 ELSE 0 END) AS available,
			SUM(CASE WHEN assets.status = ? THEN 1 ELSE 0 END) AS not_available,
			SUM(CASE WHEN assets.status = ? THEN 1 ELSE 0 END) AS waiting,
			SUM(CASE WHEN assets.status = ? THEN 1 ELSE 0 END) AS recycled`,
			models.AssetAssigned, models.AssetAvailable, models.AssetNotAvailable,
			models.AssetWaiting, models.AssetRecycled).
		Joins("LEFT JOIN assets ON assets.category_id = categories.id AND assets.state = ?", models.StateActive).
		Group("categories.id, categories.name").
		Order(order).
		Offset(page.Offset()).
		Limit(page.Size).
		Scan(&rows).Error
	return rows, total, err
}
