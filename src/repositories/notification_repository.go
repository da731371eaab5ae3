package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"assethub/src/models"
)

type NotificationRepository interface {
	// Append adds an outbox row; lifecycle mutations call it inside their own
	// transaction via WithTx.
	Append(ctx context.Context, notification *models.Notification) error
	FindUndispatched(ctx context.Context, limit int) ([]models.Notification, error)
	MarkDispatched(ctx context.Context, id string, at time.Time, dispatchErr string) error
	WithTx(tx *gorm.DB) NotificationRepository
}

type notificationRepo struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) WithTx(tx *gorm.DB) NotificationRepository {
	return &notificationRepo{db: tx}
}

func (r *notificationRepo) Append(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *notificationRepo) FindUndispatched(ctx context.Context, limit int) ([]models.Notification, error) {
	var rows []models.Notification
	err := r.db.WithContext(ctx).
		Where("dispatched_at IS NULL").
		Order("created_at ASC").
		Limit(limit).
		Preload("Sender").
		Preload("Recipient").
		Find(&rows).Error
	return rows, err
}

func (r *notificationRepo) MarkDispatched(ctx context.Context, id string, at time.Time, dispatchErr string) error {
	return r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"dispatched_at":  at,
			"dispatch_error": dispatchErr,
		}).Error
}
