package models

import "time"

// Assignment binds one asset to one assignee, mediated by an acceptance
// workflow. Asset, assigner and assignee must share one location at creation
// and edit time.
type Assignment struct {
	ID                 string           `gorm:"primaryKey;size:36" json:"id"`
	AssetID            string           `gorm:"size:36;index;not null" json:"assetId"`
	AssignerID         string           `gorm:"size:36;index;not null" json:"assignerId"`
	AssigneeID         string           `gorm:"size:36;index;not null" json:"assigneeId"`
	AssignedDate       time.Time        `json:"assignedDate"`
	Note               string           `gorm:"size:1024" json:"note"`
	Status             AssignmentStatus `gorm:"type:varchar(16);index;not null" json:"status"`
	State              RecordState      `gorm:"type:varchar(16);index;not null;default:'ACTIVE'" json:"-"`
	ReturningRequestID *string          `gorm:"size:36" json:"returningRequestId,omitempty"`
	CreatedAt          time.Time        `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt          time.Time        `gorm:"autoUpdateTime" json:"updatedAt"`

	Asset    *Asset `gorm:"foreignKey:AssetID" json:"asset,omitempty"`
	Assigner *User  `gorm:"foreignKey:AssignerID" json:"assigner,omitempty"`
	Assignee *User  `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
}

func (Assignment) TableName() string {
	return "assignments"
}
