package domain

import "time" // Timestamps

// Role is the capability level of a user
type Role string

const (
	RoleAdmin Role = "ADMIN" // Can manage the catalog
	RoleUser  Role = "USER"  // Regular shopper
)

// ParseRole maps a stored or claimed role name to a Role, defaulting to RoleUser
func ParseRole(s string) Role {
	if Role(s) == RoleAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// User Model
type User struct {
	ID        uint       `gorm:"primaryKey" json:"id"`                                   // Primary key
	Username  string     `gorm:"size:50;uniqueIndex;not null" json:"username"`           // Unique username, stored lowercase
	Email     string     `gorm:"size:255" json:"email"`                                  // Contact email
	Password  string     `gorm:"not null" json:"-"`                                      // Hashed password
	Role      Role       `gorm:"size:16;not null;default:USER" json:"role"`              // Role: USER or ADMIN
	CreatedAt time.Time  `json:"createdAt"`                                              // Creation time
	UpdatedAt time.Time  `json:"updatedAt"`                                              // Last update time
	CartItems []CartItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"` // Cart lines owned by the user
}

// Principal is the authenticated caller of a service operation
type Principal struct {
	UserID   uint
	Username string
	Role     Role
}

// IsAdmin reports whether the principal may mutate the catalog
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
