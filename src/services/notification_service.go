package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"assethub/src/models"
	"assethub/src/repositories"
	"assethub/src/utils"
)

// Notifier delivers one notification to its recipient. Implementations are
// best-effort; the dispatcher swallows their failures.
type Notifier interface {
	Notify(ctx context.Context, notification models.Notification) error
}

// LogNotifier is the default delivery channel: it writes the event to the
// process log. Real channels (email, push) plug in behind the same interface.
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, n models.Notification) error {
	logger := utils.LoggerFromContext(ctx)
	logger.WithFields(map[string]interface{}{
		"type":      n.Type,
		"sender":    n.SenderID,
		"recipient": n.RecipientID,
	}).Info("notification delivered")
	return nil
}

// Outbox appends notification rows inside lifecycle transactions. Delivery
// happens later, outside the transaction, so it can never block or roll back
// the mutation that produced the event.
type Outbox struct {
	notifications repositories.NotificationRepository
}

func NewOutbox(db *gorm.DB) *Outbox {
	return &Outbox{notifications: repositories.NewNotificationRepository(db)}
}

func (o *Outbox) Append(ctx context.Context, tx *gorm.DB, eventType models.NotificationType,
	senderID, recipientID string, assignmentID, returningRequestID *string) error {
	return o.notifications.WithTx(tx).Append(ctx, &models.Notification{
		ID:                 uuid.NewString(),
		Type:               eventType,
		SenderID:           senderID,
		RecipientID:        recipientID,
		AssignmentID:       assignmentID,
		ReturningRequestID: returningRequestID,
	})
}

// Dispatcher drains the outbox on a schedule. A failed delivery is logged and
// recorded on the row; it is not retried automatically and never surfaces to
// the lifecycle caller.
type Dispatcher struct {
	notifications repositories.NotificationRepository
	notifier      Notifier
	batchSize     int
}

func NewDispatcher(db *gorm.DB, notifier Notifier, batchSize int) *Dispatcher {
	if batchSize <= 0 {
		batchSize = 50
	}
	return &Dispatcher{
		notifications: repositories.NewNotificationRepository(db),
		notifier:      notifier,
		batchSize:     batchSize,
	}
}

// DispatchPending delivers every undispatched row once.
func (d *Dispatcher) DispatchPending(ctx context.Context) {
	logger := utils.LoggerFromContext(ctx)

	pending, err := d.notifications.FindUndispatched(ctx, d.batchSize)
	if err != nil {
		logger.WithError(err).Error("failed to read notification outbox")
		return
	}

	for _, n := range pending {
		dispatchErr := ""
		if err := d.notifier.Notify(ctx, n); err != nil {
			dispatchErr = err.Error()
			logger.WithError(err).WithField("notification", n.ID).Error("notification delivery failed")
		}
		if err := d.notifications.MarkDispatched(ctx, n.ID, time.Now(), dispatchErr); err != nil {
			logger.WithError(err).WithField("notification", n.ID).Error("failed to mark notification dispatched")
		}
	}
}
