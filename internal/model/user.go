package model

import "time"

// User roles
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// User represents an account stored in the database. Passwords are
// bcrypt-hashed and never serialized.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null"`
	Email     string    `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"type:varchar(255);not null"`
	Role      string    `json:"role" gorm:"type:varchar(20);not null;default:'employee'"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidRole reports whether the role is one of the supported roles
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleEmployee
}
