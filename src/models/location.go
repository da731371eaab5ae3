package models

// Location is the site an asset and its users belong to. Assigner, assignee
// and asset must share one location for an assignment to be valid.
type Location struct {
	ID   string `gorm:"primaryKey;size:36" json:"id"`
	Name string `gorm:"size:128;not null" json:"name"`
	Code string `gorm:"size:8;uniqueIndex;not null" json:"code"`
}
