package repositories

import (
	"gorm.io/gorm"

	"assethub/src/models"
	"assethub/src/query"
)

// ActiveOnly is the explicit exclude-deleted filter threaded through every
// query path that must not see soft-deleted rows.
func ActiveOnly(db *gorm.DB) *gorm.DB {
	return db.Where("state = ?", models.StateActive)
}

// findPage runs the shared count-then-page sequence for a list query. base
// must return a fresh query each call so the count and the page do not
// accumulate each other's clauses.
func findPage[T any](base func() *gorm.DB, spec query.Specification, order string, page query.PageRequest) ([]T, int64, error) {
	var total int64
	if err := spec(base()).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []T
	err := spec(base()).
		Order(order).
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&rows).Error
	return rows, total, err
}

// findAll runs an unpaged list query, used when ordering happens client-side.
func findAll[T any](base func() *gorm.DB, spec query.Specification, order string) ([]T, error) {
	var rows []T
	q := spec(base())
	if order != "" {
		q = q.Order(order)
	}
	err := q.Find(&rows).Error
	return rows, err
}
