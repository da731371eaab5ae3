package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"assethub/src/models"
	"assethub/src/query"
)

type AssignmentRepository interface {
	FindByID(ctx context.Context, id string) (*models.Assignment, error)
	FindActiveByID(ctx context.Context, id string) (*models.Assignment, error)
	Create(ctx context.Context, assignment *models.Assignment) error
	Save(ctx context.Context, assignment *models.Assignment) error
	// ExistsForAsset reports whether any assignment row references the asset,
	// soft-deleted rows included: historical ties block asset deletion.
	ExistsForAsset(ctx context.Context, assetID string) (bool, error)
	// ExistsWaitingForAsset reports whether a non-deleted WAITING assignment
	// other than excludeID references the asset.
	ExistsWaitingForAsset(ctx context.Context, assetID, excludeID string) (bool, error)
	FindPage(ctx context.Context, spec query.Specification, order string, page query.PageRequest) ([]models.Assignment, int64, error)
	FindAllMatching(ctx context.Context, spec query.Specification, order string) ([]models.Assignment, error)
	WithTx(tx *gorm.DB) AssignmentRepository
}

type assignmentRepo struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepo{db: db}
}

func (r *assignmentRepo) WithTx(tx *gorm.DB) AssignmentRepository {
	return &assignmentRepo{db: tx}
}

func (r *assignmentRepo) FindByID(ctx context.Context, id string) (*models.Assignment, error) {
	var assignment models.Assignment
	err := r.db.WithContext(ctx).
		Preload("Asset").
		Preload("Assigner").
		Preload("Assignee").
		First(&assignment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepo) FindActiveByID(ctx context.Context, id string) (*models.Assignment, error) {
	var assignment models.Assignment
	err := r.db.WithContext(ctx).
		Where("state = ?", models.StateActive).
		Preload("Asset").
		Preload("Assigner").
		Preload("Assignee").
		First(&assignment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepo) Create(ctx context.Context, assignment *models.Assignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *assignmentRepo) Save(ctx context.Context, assignment *models.Assignment) error {
	return r.db.WithContext(ctx).Save(assignment).Error
}

func (r *assignmentRepo) ExistsForAsset(ctx context.Context, assetID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Assignment{}).
		Where("asset_id = ?", assetID).
		Count(&count).Error
	return count > 0, err
}

func (r *assignmentRepo) ExistsWaitingForAsset(ctx context.Context, assetID, excludeID string) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Assignment{}).
		Where("asset_id = ? AND status = ? AND state = ?",
			assetID, models.AssignmentWaiting, models.StateActive)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	err := q.Count(&count).Error
	return count > 0, err
}

// base joins the denormalized asset and user columns the list filters and
// sort keys reference, and carries the exclude-deleted filter so every list
// and count built on it sees only active rows.
func (r *assignmentRepo) base(ctx context.Context) func() *gorm.DB {
	return func() *gorm.DB {
		return r.db.WithContext(ctx).
			Model(&models.Assignment{}).
			Where("assignments.state = ?", models.StateActive).
			Joins("LEFT JOIN assets ON assets.id = assignments.asset_id").
			Joins("LEFT JOIN users assignee ON assignee.id = assignments.assignee_id").
			Joins("LEFT JOIN users assigner ON assigner.id = assignments.assigner_id").
			Preload("Asset").
			Preload("Assigner").
			Preload("Assignee")
	}
}

func (r *assignmentRepo) FindPage(ctx context.Context, spec query.Specification, order string, page query.PageRequest) ([]models.Assignment, int64, error) {
	return findPage[models.Assignment](r.base(ctx), spec, order, page)
}

func (r *assignmentRepo) FindAllMatching(ctx context.Context, spec query.Specification, order string) ([]models.Assignment, error) {
	return findAll[models.Assignment](r.base(ctx), spec, order)
}
