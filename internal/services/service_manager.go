package services

import (
	"context"
	"log/slog"
	"sync"

	"github.com/campus-hub/school-service/internal/repositories"
	"github.com/campus-hub/school-service/internal/validator"
)

// serviceManager wires the service instances over shared dependencies.
type serviceManager struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator

	authService       AuthService
	enrollmentService EnrollmentService
	courseService     CourseService
	userService       UserService
	reportService     ReportService

	mu sync.RWMutex
}

func NewServiceManager(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, hasher PasswordHasher, tokens TokenIssuer) ServiceManager {
	enrollment := NewEnrollmentService(repo, logger)

	return &serviceManager{
		repo:              repo,
		logger:            logger,
		validator:         validator,
		authService:       NewAuthService(repo, logger, validator, hasher, tokens),
		enrollmentService: enrollment,
		courseService:     NewCourseService(repo, logger, validator, enrollment),
		userService:       NewUserService(repo, logger, validator, enrollment),
		reportService:     NewReportService(repo, logger),
	}
}

func (m *serviceManager) Auth() AuthService {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.authService
}

func (m *serviceManager) Enrollment() EnrollmentService {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.enrollmentService
}

func (m *serviceManager) Course() CourseService {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.courseService
}

func (m *serviceManager) User() UserService {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.userService
}

func (m *serviceManager) Report() ReportService {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reportService
}

func (m *serviceManager) HealthCheck(ctx context.Context) error {
	return m.repo.Ping(ctx)
}
