package models

import "time"

// Asset is a trackable physical item. Its location is fixed at creation;
// status changes outside creation happen only as side effects of assignment
// and return transitions, or through the restricted edit validator.
type Asset struct {
	ID            string      `gorm:"primaryKey;size:36" json:"id"`
	Code          string      `gorm:"size:16;uniqueIndex;not null" json:"code"`
	Name          string      `gorm:"size:128;index;not null" json:"name"`
	Specification string      `gorm:"size:1024" json:"specification"`
	CategoryID    string      `gorm:"size:36;index;not null" json:"categoryId"`
	LocationID    string      `gorm:"size:36;index;not null" json:"locationId"`
	InstalledDate time.Time   `json:"installedDate"`
	Status        AssetStatus `gorm:"type:varchar(16);index;not null" json:"status"`
	State         RecordState `gorm:"type:varchar(16);index;not null;default:'ACTIVE'" json:"-"`
	CreatedAt     time.Time   `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time   `gorm:"autoUpdateTime" json:"updatedAt"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Location *Location `gorm:"foreignKey:LocationID" json:"location,omitempty"`
}

func (Asset) TableName() string {
	return "assets"
}
