package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"assethub/src/models"
	"assethub/src/query"
)

type ReturningRequestRepository interface {
	FindByID(ctx context.Context, id string) (*models.ReturningRequest, error)
	Create(ctx context.Context, request *models.ReturningRequest) error
	Save(ctx context.Context, request *models.ReturningRequest) error
	// Delete removes the row outright; cancelling a waiting request takes it
	// back out of existence rather than soft-deleting it.
	Delete(ctx context.Context, id string) error
	// ExistsActiveForAssignment reports whether a non-completed request
	// already references the assignment.
	ExistsActiveForAssignment(ctx context.Context, assignmentID string) (bool, error)
	FindPage(ctx context.Context, spec query.Specification, order string, page query.PageRequest) ([]models.ReturningRequest, int64, error)
	FindAllMatching(ctx context.Context, spec query.Specification, order string) ([]models.ReturningRequest, error)
	WithTx(tx *gorm.DB) ReturningRequestRepository
}

type returningRequestRepo struct {
	db *gorm.DB
}

func NewReturningRequestRepository(db *gorm.DB) ReturningRequestRepository {
	return &returningRequestRepo{db: db}
}

func (r *returningRequestRepo) WithTx(tx *gorm.DB) ReturningRequestRepository {
	return &returningRequestRepo{db: tx}
}

func (r *returningRequestRepo) FindByID(ctx context.Context, id string) (*models.ReturningRequest, error) {
	var request models.ReturningRequest
	err := r.db.WithContext(ctx).
		Preload("Assignment").
		Preload("Assignment.Asset").
		Preload("Requester").
		Preload("Accepter").
		First(&request, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *returningRequestRepo) Create(ctx context.Context, request *models.ReturningRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *returningRequestRepo) Save(ctx context.Context, request *models.ReturningRequest) error {
	return r.db.WithContext(ctx).Save(request).Error
}

func (r *returningRequestRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.ReturningRequest{}, "id = ?", id).Error
}

func (r *returningRequestRepo) ExistsActiveForAssignment(ctx context.Context, assignmentID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ReturningRequest{}).
		Where("assignment_id = ? AND status <> ?", assignmentID, models.ReturningCompleted).
		Count(&count).Error
	return count > 0, err
}

// base joins the denormalized columns the list filters and sort keys
// reference: asset code/name via the assignment, requester and accepter names.
func (r *returningRequestRepo) base(ctx context.Context) func() *gorm.DB {
	return func() *gorm.DB {
		return r.db.WithContext(ctx).
			Model(&models.ReturningRequest{}).
			Joins("LEFT JOIN assignments ON assignments.id = returning_requests.assignment_id").
			Joins("LEFT JOIN assets ON assets.id = assignments.asset_id").
			Joins("LEFT JOIN users requester ON requester.id = returning_requests.requester_id").
			Joins("LEFT JOIN users accepter ON accepter.id = returning_requests.accepter_id").
			Preload("Assignment").
			Preload("Assignment.Asset").
			Preload("Requester").
			Preload("Accepter")
	}
}

func (r *returningRequestRepo) FindPage(ctx context.Context, spec query.Specification, order string, page query.PageRequest) ([]models.ReturningRequest, int64, error) {
	return findPage[models.ReturningRequest](r.base(ctx), spec, order, page)
}

func (r *returningRequestRepo) FindAllMatching(ctx context.Context, spec query.Specification, order string) ([]models.ReturningRequest, error) {
	return findAll[models.ReturningRequest](r.base(ctx), spec, order)
}
