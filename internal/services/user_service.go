package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/campus-hub/school-service/internal/models"
	"github.com/campus-hub/school-service/internal/repositories"
	"github.com/campus-hub/school-service/internal/validator"
)

type userService struct {
	repo       repositories.Repository
	logger     *slog.Logger
	validator  *validator.Validator
	enrollment EnrollmentService
}

func NewUserService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, enrollment EnrollmentService) UserService {
	return &userService{
		repo:       repo,
		logger:     logger,
		validator:  validator,
		enrollment: enrollment,
	}
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, role models.UserRole, req *ProfileUpdateRequest) (*models.User, error) {
	if errs := s.validator.Struct(req); len(errs) > 0 {
		return nil, errs
	}

	user, err := s.repo.User().GetByIDAndRole(ctx, userID, role)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Surname != nil {
		user.Surname = *req.Surname
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}

	if err := s.repo.User().Update(ctx, user); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.logger.Info("Profile updated", "user_id", userID, "role", role)

	user.Password = ""
	return user, nil
}

// DeleteProfile removes the account. A student's enrollments are removed in
// the same transaction as the record. A teacher's owned courses are left in
// place; only their own profile goes away.
func (s *userService) DeleteProfile(ctx context.Context, userID string, role models.UserRole) error {
	if _, err := s.repo.User().GetByIDAndRole(ctx, userID, role); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if role == models.RoleStudent {
			if err := s.enrollment.CascadeStudentDelete(ctx, tx, userID); err != nil {
				return err
			}
		}
		return tx.User().Delete(ctx, userID)
	})
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	s.logger.Info("Profile deleted", "user_id", userID, "role", role)
	return nil
}

func (s *userService) ListByRole(ctx context.Context, role models.UserRole) ([]*models.User, error) {
	users, err := s.repo.User().ListByRole(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	for _, user := range users {
		user.Password = ""
	}
	return users, nil
}

func (s *userService) GetByIDAndRole(ctx context.Context, id string, role models.UserRole) (*models.User, error) {
	user, err := s.repo.User().GetByIDAndRole(ctx, id, role)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	user.Password = ""

	// Student detail responses carry the enrolled courses.
	if role == models.RoleStudent {
		courses, err := s.repo.Enrollment().ListCoursesByStudent(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to list student courses: %w", err)
		}
		user.Courses = courses
	}

	return user, nil
}
