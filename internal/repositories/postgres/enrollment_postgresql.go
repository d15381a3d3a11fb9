package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/campus-hub/school-service/internal/models"
	"github.com/campus-hub/school-service/internal/repositories"
)

type EnrollmentPostgreSQL struct {
	db *gorm.DB
}

func NewEnrollmentPostgreSQL(db *gorm.DB) repositories.EnrollmentRepository {
	return &EnrollmentPostgreSQL{db: db}
}

// Create inserts one link row. The composite unique index on
// (student_id, course_id) surfaces duplicates as ErrDuplicateKey.
func (r *EnrollmentPostgreSQL) Create(ctx context.Context, enrollment *models.Enrollment) error {
	if err := r.db.WithContext(ctx).Create(enrollment).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// Delete removes one link. Missing links are a no-op so cascade retries stay
// idempotent.
func (r *EnrollmentPostgreSQL) Delete(ctx context.Context, studentID, courseID string) error {
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Delete(&models.Enrollment{}).Error
	if err != nil {
		return translateError(err)
	}
	return nil
}

func (r *EnrollmentPostgreSQL) DeleteByStudent(ctx context.Context, studentID string) error {
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Delete(&models.Enrollment{}).Error
	if err != nil {
		return translateError(err)
	}
	return nil
}

func (r *EnrollmentPostgreSQL) DeleteByCourse(ctx context.Context, courseID string) error {
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Delete(&models.Enrollment{}).Error
	if err != nil {
		return translateError(err)
	}
	return nil
}

func (r *EnrollmentPostgreSQL) Exists(ctx context.Context, studentID, courseID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Count(&count).Error
	if err != nil {
		return false, translateError(err)
	}
	return count > 0, nil
}

func (r *EnrollmentPostgreSQL) CountByStudent(ctx context.Context, studentID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Where("student_id = ?", studentID).
		Count(&count).Error
	if err != nil {
		return 0, translateError(err)
	}
	return count, nil
}

func (r *EnrollmentPostgreSQL) CountByCourse(ctx context.Context, courseID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Where("course_id = ?", courseID).
		Count(&count).Error
	if err != nil {
		return 0, translateError(err)
	}
	return count, nil
}

// ListCoursesByStudent returns the student's courses in assignment order,
// which the serial enrollment ID preserves.
func (r *EnrollmentPostgreSQL) ListCoursesByStudent(ctx context.Context, studentID string) ([]*models.Course, error) {
	var courses []*models.Course
	err := r.db.WithContext(ctx).
		Model(&models.Course{}).
		Joins("JOIN enrollments ON enrollments.course_id = courses.id").
		Where("enrollments.student_id = ?", studentID).
		Order("enrollments.id ASC").
		Find(&courses).Error
	if err != nil {
		return nil, translateError(err)
	}
	return courses, nil
}

func (r *EnrollmentPostgreSQL) ListStudentsByCourse(ctx context.Context, courseID string) ([]*models.User, error) {
	var students []*models.User
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Joins("JOIN enrollments ON enrollments.student_id = users.id").
		Where("enrollments.course_id = ?", courseID).
		Order("enrollments.id ASC").
		Find(&students).Error
	if err != nil {
		return nil, translateError(err)
	}
	return students, nil
}
