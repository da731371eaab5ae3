package models

import "time"

// ReturningRequest tracks the hand-back of an assigned asset. At most one
// non-completed request may exist per assignment at any time.
type ReturningRequest struct {
	ID           string                 `gorm:"primaryKey;size:36" json:"id"`
	AssignmentID string                 `gorm:"size:36;index;not null" json:"assignmentId"`
	RequesterID  string                 `gorm:"size:36;not null" json:"requesterId"`
	AccepterID   *string                `gorm:"size:36" json:"accepterId,omitempty"`
	ReturnedDate *time.Time             `json:"returnedDate,omitempty"`
	Status       ReturningRequestStatus `gorm:"type:varchar(16);index;not null" json:"status"`
	CreatedAt    time.Time              `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time              `gorm:"autoUpdateTime" json:"updatedAt"`

	Assignment *Assignment `gorm:"foreignKey:AssignmentID" json:"assignment,omitempty"`
	Requester  *User       `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	Accepter   *User       `gorm:"foreignKey:AccepterID" json:"accepter,omitempty"`
}

func (ReturningRequest) TableName() string {
	return "returning_requests"
}
