package models

// Role is the authorization role of a user.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleStaff Role = "STAFF"
)

// User is a staff member or administrator. The location is the unit of the
// cross-entity consistency checks on assignments.
type User struct {
	ID         string `gorm:"primaryKey;size:36" json:"id"`
	Username   string `gorm:"size:64;uniqueIndex;not null" json:"username"`
	FirstName  string `gorm:"size:64" json:"firstName"`
	LastName   string `gorm:"size:64" json:"lastName"`
	Role       Role   `gorm:"type:varchar(16);not null" json:"role"`
	LocationID string `gorm:"size:36;index;not null" json:"locationId"`
	Disabled   bool   `gorm:"not null;default:false" json:"disabled"`

	Location *Location `gorm:"foreignKey:LocationID" json:"location,omitempty"`
}

// FullName joins first and last name for display.
func (u User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// IsAdmin reports whether the user carries the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
