package services

import (
	"context"

	"github.com/xuri/excelize/v2"

	"github.com/campus-hub/school-service/internal/models"
	"github.com/campus-hub/school-service/internal/repositories"
	"github.com/campus-hub/school-service/internal/validator"
)

// ===== REQUEST DTOs =====

// Request shapes live with their validation tags in the validator package.
type RegisterRequest = validator.RegisterRequest
type LoginRequest = validator.LoginRequest
type ProfileUpdateRequest = validator.ProfileUpdateRequest
type CourseCreateRequest = validator.CourseCreateRequest
type CourseUpdateRequest = validator.CourseUpdateRequest
type AssignCourseRequest = validator.AssignCourseRequest

// ===== COLLABORATOR INTERFACES =====

// PasswordHasher is the external hashing collaborator. Compare is expected to
// be constant-relative-time.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// TokenIssuer produces a signed identity credential for a user.
type TokenIssuer interface {
	Issue(user *models.User) (string, error)
}

// ===== SERVICE INTERFACES =====

type AuthService interface {
	// Register creates an account with the given role. Teacher registration
	// additionally requires req.Role to literally equal TEACHER_ROLE.
	Register(ctx context.Context, req *RegisterRequest, role models.UserRole) (*models.User, error)

	// Login authenticates by username or email and returns a bearer token.
	Login(ctx context.Context, req *LoginRequest) (string, error)
}

type EnrollmentService interface {
	// Assign links a student to a course, enforcing the per-student course
	// cap and pair uniqueness atomically.
	Assign(ctx context.Context, studentID, courseID string) error

	// Unassign removes the link; removing an absent link is a no-op.
	Unassign(ctx context.Context, studentID, courseID string) error

	// CascadeStudentDelete and CascadeCourseDelete remove every link
	// referencing the entity about to be deleted. They run against the
	// caller-supplied repository so delete flows keep cascade and record
	// removal in one transaction, and they are safe to re-run.
	CascadeStudentDelete(ctx context.Context, repo repositories.Repository, studentID string) error
	CascadeCourseDelete(ctx context.Context, repo repositories.Repository, courseID string) error

	// ListForStudent returns the student's courses in assignment order.
	ListForStudent(ctx context.Context, studentID string) ([]*models.Course, error)
}

type CourseService interface {
	Create(ctx context.Context, req *CourseCreateRequest, teacherID string) (*models.Course, error)
	Update(ctx context.Context, courseID string, req *CourseUpdateRequest, callerID string) (*models.Course, error)
	Delete(ctx context.Context, courseID string, callerID string) error
	GetByID(ctx context.Context, courseID string) (*models.Course, error)
	ListAll(ctx context.Context) ([]*models.Course, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]*models.Course, error)
}

type UserService interface {
	// UpdateProfile merges only the present patch fields into the caller's
	// own profile; role must match the stored record.
	UpdateProfile(ctx context.Context, userID string, role models.UserRole, req *ProfileUpdateRequest) (*models.User, error)

	// DeleteProfile removes the caller's account. Student deletion cascades
	// enrollment cleanup first; teacher deletion leaves owned courses in
	// place.
	DeleteProfile(ctx context.Context, userID string, role models.UserRole) error

	ListByRole(ctx context.Context, role models.UserRole) ([]*models.User, error)
	GetByIDAndRole(ctx context.Context, id string, role models.UserRole) (*models.User, error)
}

type ReportService interface {
	// CourseRoster builds an XLSX workbook listing every course with its
	// owner and enrollment count.
	CourseRoster(ctx context.Context) (*excelize.File, error)
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	Auth() AuthService
	Enrollment() EnrollmentService
	Course() CourseService
	User() UserService
	Report() ReportService

	HealthCheck(ctx context.Context) error
}
