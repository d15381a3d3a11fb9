package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/campus-hub/school-service/internal/cache"
	"github.com/campus-hub/school-service/internal/models"
	"github.com/campus-hub/school-service/internal/repositories"
)

type CoursePostgreSQL struct {
	db          *gorm.DB
	cacheHelper *cache.CacheHelper

	// stale collects course IDs whose cache entries must be dropped after the
	// surrounding transaction commits; nil outside transactions.
	stale *[]string
}

func NewCoursePostgreSQL(db *gorm.DB, cacheHelper *cache.CacheHelper) repositories.CourseRepository {
	return &CoursePostgreSQL{
		db:          db,
		cacheHelper: cacheHelper,
	}
}

// newTransactionalCoursePostgreSQL reads straight from the database and defers
// cache invalidation to the transaction owner. Reading through the cache
// inside a transaction would serve rows the transaction itself has already
// changed, and invalidating before commit lets a concurrent read re-fill the
// key from a row that is about to disappear.
func newTransactionalCoursePostgreSQL(db *gorm.DB, stale *[]string) repositories.CourseRepository {
	return &CoursePostgreSQL{
		db:          db,
		cacheHelper: cache.NewCacheHelper(nil, "course:"),
		stale:       stale,
	}
}

func (r *CoursePostgreSQL) Create(ctx context.Context, course *models.Course) error {
	if err := r.db.WithContext(ctx).Create(course).Error; err != nil {
		return translateError(err)
	}
	r.invalidate(ctx, course)
	return nil
}

// GetByID serves course reads through the cache; writes invalidate it.
func (r *CoursePostgreSQL) GetByID(ctx context.Context, id string) (*models.Course, error) {
	var course models.Course
	err := r.cacheHelper.CacheOrExecute(ctx, fmt.Sprintf("id:%s", id), &course, cache.CourseCacheTTL, func() (interface{}, error) {
		var dbCourse models.Course
		if err := r.db.WithContext(ctx).First(&dbCourse, "id = ?", id).Error; err != nil {
			return nil, translateError(err)
		}
		return &dbCourse, nil
	})
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CoursePostgreSQL) ListAll(ctx context.Context) ([]*models.Course, error) {
	var courses []*models.Course
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&courses).Error
	if err != nil {
		return nil, translateError(err)
	}
	return courses, nil
}

func (r *CoursePostgreSQL) ListByTeacher(ctx context.Context, teacherID string) ([]*models.Course, error) {
	var courses []*models.Course
	err := r.db.WithContext(ctx).
		Where("teacher_id = ?", teacherID).
		Order("created_at ASC").
		Find(&courses).Error
	if err != nil {
		return nil, translateError(err)
	}
	return courses, nil
}

func (r *CoursePostgreSQL) Update(ctx context.Context, course *models.Course) error {
	result := r.db.WithContext(ctx).Save(course)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	r.invalidate(ctx, course)
	return nil
}

func (r *CoursePostgreSQL) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Course{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	r.invalidate(ctx, &models.Course{ID: id})
	return nil
}

func (r *CoursePostgreSQL) invalidate(ctx context.Context, course *models.Course) {
	if r.stale != nil {
		*r.stale = append(*r.stale, course.ID)
		return
	}
	// Best effort; stale entries expire via TTL.
	_ = r.cacheHelper.Delete(ctx, fmt.Sprintf("id:%s", course.ID))
}
