package repositories

import (
	"context"

	"github.com/campus-hub/school-service/internal/models"
)

// UserRepository covers account records for every role.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByIDForUpdate locks the user row for the rest of the surrounding
	// transaction. Used to serialize concurrent enrollment writes per student.
	GetByIDForUpdate(ctx context.Context, id string) (*models.User, error)
	// GetByUserlogin matches either username or email, including the
	// password hash for credential checks.
	GetByUserlogin(ctx context.Context, userlogin string) (*models.User, error)
	GetByIDAndRole(ctx context.Context, id string, role models.UserRole) (*models.User, error)
	ListByRole(ctx context.Context, role models.UserRole) ([]*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
}

// CourseRepository covers teacher-owned course records.
type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id string) (*models.Course, error)
	ListAll(ctx context.Context) ([]*models.Course, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]*models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id string) error
}

// EnrollmentRepository covers the student↔course relation. All delete
// operations are idempotent: removing an absent link is not an error.
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	Delete(ctx context.Context, studentID, courseID string) error
	DeleteByStudent(ctx context.Context, studentID string) error
	DeleteByCourse(ctx context.Context, courseID string) error
	Exists(ctx context.Context, studentID, courseID string) (bool, error)
	CountByStudent(ctx context.Context, studentID string) (int64, error)
	CountByCourse(ctx context.Context, courseID string) (int64, error)
	// ListCoursesByStudent returns courses in assignment order.
	ListCoursesByStudent(ctx context.Context, studentID string) ([]*models.Course, error)
	ListStudentsByCourse(ctx context.Context, courseID string) ([]*models.User, error)
}

// Repository aggregates the entity repositories behind one store handle.
type Repository interface {
	User() UserRepository
	Course() CourseRepository
	Enrollment() EnrollmentRepository

	// WithTransaction runs fn against a Repository bound to a single store
	// transaction; fn returning an error rolls everything back.
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	Ping(ctx context.Context) error
	Close() error
}
