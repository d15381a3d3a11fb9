package services

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials covers unknown userlogin and wrong password
	// alike; callers must not learn which one failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidRole is returned when teacher registration does not carry
	// the literal TEACHER_ROLE role field.
	ErrInvalidRole = errors.New("invalid role for registration")

	ErrUserNotFound   = errors.New("user not found")
	ErrCourseNotFound = errors.New("course not found")

	// ErrAlreadyEnrolled is returned when the (student, course) pair
	// already exists.
	ErrAlreadyEnrolled = errors.New("course already assigned")

	// ErrCourseLimitReached is returned when a student is already enrolled
	// in the maximum number of courses.
	ErrCourseLimitReached = errors.New("maximum number of courses reached")
)

// PermissionError signals a role or ownership gate rejection. The downstream
// mutation never runs when one is returned.
type PermissionError struct {
	UserID     string
	ResourceID string
	Resource   string
	Action     string
	Reason     string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("user %s cannot %s %s %s: %s", e.UserID, e.Action, e.Resource, e.ResourceID, e.Reason)
}

func NewPermissionError(userID, resourceID, resource, action, reason string) *PermissionError {
	return &PermissionError{
		UserID:     userID,
		ResourceID: resourceID,
		Resource:   resource,
		Action:     action,
		Reason:     reason,
	}
}

func IsPermissionError(err error) bool {
	var pe *PermissionError
	return errors.As(err, &pe)
}

// DuplicateFieldError signals a global uniqueness violation on registration.
type DuplicateFieldError struct {
	Field string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("%s already exists", e.Field)
}

func IsDuplicateFieldError(err error) bool {
	var de *DuplicateFieldError
	return errors.As(err, &de)
}
