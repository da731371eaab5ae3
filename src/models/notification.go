package models

import "time"

// NotificationType names the lifecycle event a notification carries.
type NotificationType string

const (
	NotifyAssignmentCreated  NotificationType = "ASSIGNMENT_CREATED"
	NotifyAssignmentAccepted NotificationType = "ASSIGNMENT_ACCEPTED"
	NotifyAssignmentDeclined NotificationType = "ASSIGNMENT_DECLINED"
	NotifyReturnRequested    NotificationType = "RETURN_REQUESTED"
	NotifyReturnCompleted    NotificationType = "RETURN_COMPLETED"
)

// Notification is an outbox row. Lifecycle mutations append it inside their
// own transaction; the dispatcher drains it afterwards, so delivery can never
// block or roll back the mutation that produced it.
type Notification struct {
	ID                 string           `gorm:"primaryKey;size:36" json:"id"`
	Type               NotificationType `gorm:"type:varchar(32);not null" json:"type"`
	SenderID           string           `gorm:"size:36;not null" json:"senderId"`
	RecipientID        string           `gorm:"size:36;index;not null" json:"recipientId"`
	AssignmentID       *string          `gorm:"size:36" json:"assignmentId,omitempty"`
	ReturningRequestID *string          `gorm:"size:36" json:"returningRequestId,omitempty"`
	CreatedAt          time.Time        `gorm:"autoCreateTime" json:"createdAt"`
	DispatchedAt       *time.Time       `gorm:"index" json:"dispatchedAt,omitempty"`
	DispatchError      string           `gorm:"size:512" json:"-"`

	Sender    *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Recipient *User `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}
