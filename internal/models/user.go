package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Roles assignable to an account. ADMIN manages users and connections,
// EDITOR designs forms and questions, FILLER conducts interviews,
// VIEWER has read-only access.
const (
	RoleAdmin  = "ADMIN"
	RoleEditor = "EDITOR"
	RoleFiller = "FILLER"
	RoleViewer = "VIEWER"
)

type User struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	Name              string     `json:"name"`
	Email             string     `gorm:"uniqueIndex" json:"email"`
	Password          string     `json:"-"`
	Role              string     `json:"role"`
	IsDefaultPassword bool       `json:"isDefaultPassword"`
	LastLogin         *time.Time `json:"lastLogin,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ValidRole reports whether role is one of the assignable roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleEditor, RoleFiller, RoleViewer:
		return true
	}
	return false
}
