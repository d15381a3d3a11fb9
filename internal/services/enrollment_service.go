package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/campus-hub/school-service/internal/models"
	"github.com/campus-hub/school-service/internal/repositories"
)

type enrollmentService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewEnrollmentService(repo repositories.Repository, logger *slog.Logger) EnrollmentService {
	return &enrollmentService{
		repo:   repo,
		logger: logger,
	}
}

// Assign links studentID to courseID. The whole check-and-insert runs in one
// store transaction with the student row locked, so concurrent assigns for
// the same student are serialized and the course cap and pair uniqueness hold
// under races.
func (s *enrollmentService) Assign(ctx context.Context, studentID, courseID string) error {
	s.logger.Info("Assigning course", "student_id", studentID, "course_id", courseID)

	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		student, err := tx.User().GetByIDForUpdate(ctx, studentID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to lock student: %w", err)
		}
		if student.Role != models.RoleStudent {
			return NewPermissionError(studentID, courseID, "course", "assign", "only students can assign courses")
		}

		// Course existence is checked inside the transaction so a
		// concurrent course delete either beats this assign (NotFound
		// here) or its cascade removes the link we are about to add.
		if _, err := tx.Course().GetByID(ctx, courseID); err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrCourseNotFound
			}
			return fmt.Errorf("failed to get course: %w", err)
		}

		count, err := tx.Enrollment().CountByStudent(ctx, studentID)
		if err != nil {
			return fmt.Errorf("failed to count enrollments: %w", err)
		}
		if count >= models.MaxCoursesPerStudent {
			return ErrCourseLimitReached
		}

		linked, err := tx.Enrollment().Exists(ctx, studentID, courseID)
		if err != nil {
			return fmt.Errorf("failed to check enrollment: %w", err)
		}
		if linked {
			return ErrAlreadyEnrolled
		}

		enrollment := &models.Enrollment{
			StudentID: studentID,
			CourseID:  courseID,
		}
		if err := tx.Enrollment().Create(ctx, enrollment); err != nil {
			if repositories.IsDuplicateError(err) {
				return ErrAlreadyEnrolled
			}
			return fmt.Errorf("failed to create enrollment: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Course assigned", "student_id", studentID, "course_id", courseID)
	return nil
}

// Unassign removes the pair from the relation. A missing link is a no-op so
// cascades and retries never fail here.
func (s *enrollmentService) Unassign(ctx context.Context, studentID, courseID string) error {
	if err := s.repo.Enrollment().Delete(ctx, studentID, courseID); err != nil {
		return fmt.Errorf("failed to unassign course: %w", err)
	}
	return nil
}

// CascadeStudentDelete unlinks the student from every enrolled course. It
// runs against the supplied repository so the caller can keep cascade and
// record deletion in one transaction; the delete is idempotent, so a retry
// after a partial failure converges.
func (s *enrollmentService) CascadeStudentDelete(ctx context.Context, repo repositories.Repository, studentID string) error {
	if err := repo.Enrollment().DeleteByStudent(ctx, studentID); err != nil {
		return fmt.Errorf("failed to cascade student enrollments: %w", err)
	}
	s.logger.Info("Removed enrollments for student", "student_id", studentID)
	return nil
}

// CascadeCourseDelete unlinks every enrolled student from the course.
func (s *enrollmentService) CascadeCourseDelete(ctx context.Context, repo repositories.Repository, courseID string) error {
	if err := repo.Enrollment().DeleteByCourse(ctx, courseID); err != nil {
		return fmt.Errorf("failed to cascade course enrollments: %w", err)
	}
	s.logger.Info("Removed enrollments for course", "course_id", courseID)
	return nil
}

func (s *enrollmentService) ListForStudent(ctx context.Context, studentID string) ([]*models.Course, error) {
	if _, err := s.repo.User().GetByIDAndRole(ctx, studentID, models.RoleStudent); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}

	courses, err := s.repo.Enrollment().ListCoursesByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}
