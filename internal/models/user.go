package models

import (
	"time"
)

type UserRole string

// Role wire values are part of the public API contract: registration and
// token payloads carry them verbatim.
const (
	RoleStudent UserRole = "STUDENT_ROLE"
	RoleTeacher UserRole = "TEACHER_ROLE"
	RoleAdmin   UserRole = "ADMIN_ROLE"
)

// Valid reports whether r is one of the three known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID       string   `json:"id" gorm:"primaryKey;size:36"`
	Name     string   `json:"name" gorm:"not null;size:100"`
	Surname  string   `json:"surname" gorm:"not null;size:100"`
	Username string   `json:"username" gorm:"uniqueIndex;not null;size:100"`
	Email    string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password string   `json:"-" gorm:"not null;size:255"`
	Phone    *string  `json:"phone,omitempty" gorm:"size:30"`
	Role     UserRole `json:"role" gorm:"not null;size:20;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Populated on demand for student detail responses, not stored.
	Courses []*Course `json:"courses,omitempty" gorm:"-"`
}

func (User) TableName() string {
	return "users"
}
