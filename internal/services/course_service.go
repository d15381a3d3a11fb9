package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/campus-hub/school-service/internal/models"
	"github.com/campus-hub/school-service/internal/repositories"
	"github.com/campus-hub/school-service/internal/validator"
)

type courseService struct {
	repo       repositories.Repository
	logger     *slog.Logger
	validator  *validator.Validator
	enrollment EnrollmentService
}

func NewCourseService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, enrollment EnrollmentService) CourseService {
	return &courseService{
		repo:       repo,
		logger:     logger,
		validator:  validator,
		enrollment: enrollment,
	}
}

func (s *courseService) Create(ctx context.Context, req *CourseCreateRequest, teacherID string) (*models.Course, error) {
	s.logger.Info("Creating course", "teacher_id", teacherID, "title", req.Title)

	if errs := s.validator.Struct(req); len(errs) > 0 {
		return nil, errs
	}

	teacher, err := s.repo.User().GetByID(ctx, teacherID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get teacher: %w", err)
	}
	if teacher.Role != models.RoleTeacher {
		return nil, NewPermissionError(teacherID, "", "course", "create", "only teachers can create courses")
	}

	course := &models.Course{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		TeacherID:   teacherID,
	}
	if err := s.repo.Course().Create(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	s.logger.Info("Course created", "course_id", course.ID, "teacher_id", teacherID)
	return course, nil
}

func (s *courseService) Update(ctx context.Context, courseID string, req *CourseUpdateRequest, callerID string) (*models.Course, error) {
	if errs := s.validator.Struct(req); len(errs) > 0 {
		return nil, errs
	}

	course, err := s.getCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.TeacherID != callerID {
		return nil, NewPermissionError(callerID, courseID, "course", "update", "not the owning teacher")
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = req.Description
	}

	if err := s.repo.Course().Update(ctx, course); err != nil {
		// The row can vanish between the ownership check and the write.
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to update course: %w", err)
	}

	s.logger.Info("Course updated", "course_id", courseID)
	return course, nil
}

// Delete removes the course after unlinking every enrolled student, all in
// one transaction so no student is left pointing at a missing course.
func (s *courseService) Delete(ctx context.Context, courseID string, callerID string) error {
	course, err := s.getCourse(ctx, courseID)
	if err != nil {
		return err
	}
	if course.TeacherID != callerID {
		return NewPermissionError(callerID, courseID, "course", "delete", "not the owning teacher")
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := s.enrollment.CascadeCourseDelete(ctx, tx, courseID); err != nil {
			return err
		}
		return tx.Course().Delete(ctx, courseID)
	})
	if err != nil {
		// A concurrent delete winning the race is still "course not found"
		// to this caller.
		if repositories.IsNotFoundError(err) {
			return ErrCourseNotFound
		}
		return fmt.Errorf("failed to delete course: %w", err)
	}

	s.logger.Info("Course deleted", "course_id", courseID)
	return nil
}

func (s *courseService) GetByID(ctx context.Context, courseID string) (*models.Course, error) {
	course, err := s.getCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if err := s.populate(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *courseService) ListAll(ctx context.Context) ([]*models.Course, error) {
	courses, err := s.repo.Course().ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	for _, course := range courses {
		if err := s.populate(ctx, course); err != nil {
			return nil, err
		}
	}
	return courses, nil
}

func (s *courseService) ListByTeacher(ctx context.Context, teacherID string) ([]*models.Course, error) {
	if _, err := s.repo.User().GetByIDAndRole(ctx, teacherID, models.RoleTeacher); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get teacher: %w", err)
	}

	courses, err := s.repo.Course().ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}

func (s *courseService) getCourse(ctx context.Context, courseID string) (*models.Course, error) {
	course, err := s.repo.Course().GetByID(ctx, courseID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return course, nil
}

// populate attaches the owning teacher and enrolled students, passwords
// redacted.
func (s *courseService) populate(ctx context.Context, course *models.Course) error {
	teacher, err := s.repo.User().GetByID(ctx, course.TeacherID)
	if err == nil {
		teacher.Password = ""
		course.Teacher = teacher
	} else if !repositories.IsNotFoundError(err) {
		return fmt.Errorf("failed to get course teacher: %w", err)
	}

	students, err := s.repo.Enrollment().ListStudentsByCourse(ctx, course.ID)
	if err != nil {
		return fmt.Errorf("failed to list course students: %w", err)
	}
	for _, student := range students {
		student.Password = ""
	}
	course.Students = students
	return nil
}
