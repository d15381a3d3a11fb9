package validator

import (
	"github.com/campus-hub/school-service/internal/models"
)

// RegisterRequest carries the fields accepted by every registration route.
// Role is only honored on teacher registration, where it must literally be
// TEACHER_ROLE; student and admin registration force their role server-side.
type RegisterRequest struct {
	Name     string          `json:"name" validate:"required,max=100"`
	Surname  string          `json:"surname" validate:"required,max=100"`
	Username string          `json:"username" validate:"required,min=3,max=100"`
	Email    string          `json:"email" validate:"required,email,max=255"`
	Password string          `json:"password" validate:"required,min=8,max=72"`
	Phone    *string         `json:"phone" validate:"omitempty,max=30"`
	Role     models.UserRole `json:"role" validate:"omitempty"`
}

// LoginRequest accepts either username or email in the userlogin field.
type LoginRequest struct {
	Userlogin string `json:"userlogin" validate:"required,max=255"`
	Password  string `json:"password" validate:"required"`
}

// ProfileUpdateRequest merges only the present fields; absent fields keep
// their stored values.
type ProfileUpdateRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=100"`
	Surname *string `json:"surname" validate:"omitempty,min=1,max=100"`
	Phone   *string `json:"phone" validate:"omitempty,max=30"`
}

type CourseCreateRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

type CourseUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

type AssignCourseRequest struct {
	CourseID string `json:"course_id" validate:"required"`
}
