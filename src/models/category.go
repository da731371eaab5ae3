package models

// Category groups assets and carries the short prefix used for human-readable
// asset codes (e.g. "LA" for laptops -> LA000001). NextNumber is the counter
// the code generator increments inside the creating transaction.
type Category struct {
	ID         string `gorm:"primaryKey;size:36" json:"id"`
	Name       string `gorm:"size:128;uniqueIndex;not null" json:"name"`
	Prefix     string `gorm:"size:4;uniqueIndex;not null" json:"prefix"`
	NextNumber int    `gorm:"not null;default:1" json:"-"`
}
