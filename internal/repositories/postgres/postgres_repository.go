package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/campus-hub/school-service/internal/cache"
	"github.com/campus-hub/school-service/internal/repositories"
)

// PostgreSQLRepository implements repositories.Repository on GORM.
type PostgreSQLRepository struct {
	db          *gorm.DB
	redisClient *redis.Client

	user       repositories.UserRepository
	course     repositories.CourseRepository
	enrollment repositories.EnrollmentRepository
}

// RepositoryConfig holds configuration for repository initialization.
type RepositoryConfig struct {
	DB          *gorm.DB
	RedisClient *redis.Client
}

// NewPostgreSQLRepository creates the repository manager with all
// sub-repositories.
func NewPostgreSQLRepository(config RepositoryConfig) repositories.Repository {
	return &PostgreSQLRepository{
		db:          config.DB,
		redisClient: config.RedisClient,
		user:        NewUserPostgreSQL(config.DB),
		course:      NewCoursePostgreSQL(config.DB, cache.NewCacheHelper(config.RedisClient, "course:")),
		enrollment:  NewEnrollmentPostgreSQL(config.DB),
	}
}

func (r *PostgreSQLRepository) User() repositories.UserRepository {
	return r.user
}

func (r *PostgreSQLRepository) Course() repositories.CourseRepository {
	return r.course
}

func (r *PostgreSQLRepository) Enrollment() repositories.EnrollmentRepository {
	return r.enrollment
}

// WithTransaction executes fn against a Repository bound to one database
// transaction. Course reads inside the transaction bypass the cache, and
// invalidations are collected and applied only after commit: clearing a key
// while the transaction is still open lets a concurrent cached read re-fill
// it from the row the transaction is deleting.
func (r *PostgreSQLRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	var stale []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &PostgreSQLRepository{
			db:          tx,
			redisClient: r.redisClient,
			user:        NewUserPostgreSQL(tx),
			course:      newTransactionalCoursePostgreSQL(tx, &stale),
			enrollment:  NewEnrollmentPostgreSQL(tx),
		}
		return fn(txRepo)
	})
	if err != nil {
		return err
	}
	r.flushStale(ctx, stale)
	return nil
}

func (r *PostgreSQLRepository) flushStale(ctx context.Context, courseIDs []string) {
	helper := cache.NewCacheHelper(r.redisClient, "course:")
	for _, id := range courseIDs {
		_ = helper.Delete(ctx, fmt.Sprintf("id:%s", id))
	}
}

func (r *PostgreSQLRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func (r *PostgreSQLRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.Close()
}

// translateError maps GORM/driver errors onto the repository error taxonomy.
// Context errors pass through untouched: a caller abort is not a store
// failure.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repositories.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return repositories.ErrDuplicateKey
	default:
		return fmt.Errorf("%w: %v", repositories.ErrUnavailable, err)
	}
}
