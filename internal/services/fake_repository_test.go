package services

import (
	"context"
	"sync"

	"github.com/campus-hub/school-service/internal/models"
	"github.com/campus-hub/school-service/internal/repositories"
)

// fakeStore holds the in-memory state shared by the fake repositories.
type fakeStore struct {
	users       map[string]*models.User
	courses     map[string]*models.Course
	enrollments []*models.Enrollment
	nextID      uint
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:   make(map[string]*models.User),
		courses: make(map[string]*models.Course),
		nextID:  1,
	}
}

func (s *fakeStore) clone() *fakeStore {
	c := newFakeStore()
	c.nextID = s.nextID
	for id, u := range s.users {
		cp := *u
		c.users[id] = &cp
	}
	for id, course := range s.courses {
		cp := *course
		c.courses[id] = &cp
	}
	for _, e := range s.enrollments {
		cp := *e
		c.enrollments = append(c.enrollments, &cp)
	}
	return c
}

// fakeRepository implements repositories.Repository over a fakeStore. Every
// call takes the mutex, and WithTransaction holds it for the whole callback so
// transactions are serialized the way row locks serialize them in the real
// store. A callback error restores the pre-transaction snapshot.
type fakeRepository struct {
	mu    sync.Mutex
	store *fakeStore
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{store: newFakeStore()}
}

func (r *fakeRepository) User() repositories.UserRepository {
	return &fakeUserRepo{r}
}

func (r *fakeRepository) Course() repositories.CourseRepository {
	return &fakeCourseRepo{r}
}

func (r *fakeRepository) Enrollment() repositories.EnrollmentRepository {
	return &fakeEnrollmentRepo{r}
}

func (r *fakeRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := r.store.clone()
	tx := &fakeRepository{store: r.store}
	if err := fn(tx); err != nil {
		r.store = snapshot
		return err
	}
	return nil
}

func (r *fakeRepository) Ping(ctx context.Context) error { return nil }
func (r *fakeRepository) Close() error                   { return nil }

// Seeding helpers used by the tests.

func (r *fakeRepository) seedUser(u *models.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.store.users[u.ID] = &cp
}

func (r *fakeRepository) seedCourse(c *models.Course) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.store.courses[c.ID] = &cp
}

func (r *fakeRepository) seedEnrollment(studentID, courseID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.store.enrollments = append(r.store.enrollments, &models.Enrollment{
		ID:        r.store.nextID,
		StudentID: studentID,
		CourseID:  courseID,
	})
	r.store.nextID++
}

func (r *fakeRepository) enrollmentPairs() [][2]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	pairs := make([][2]string, 0, len(r.store.enrollments))
	for _, e := range r.store.enrollments {
		pairs = append(pairs, [2]string{e.StudentID, e.CourseID})
	}
	return pairs
}

// ===== users =====

type fakeUserRepo struct{ r *fakeRepository }

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	for _, u := range f.r.store.users {
		if u.Username == user.Username || u.Email == user.Email {
			return repositories.ErrDuplicateKey
		}
	}
	cp := *user
	f.r.store.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	return f.getLocked(id)
}

func (f *fakeUserRepo) GetByIDForUpdate(ctx context.Context, id string) (*models.User, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	return f.getLocked(id)
}

func (f *fakeUserRepo) getLocked(id string) (*models.User, error) {
	u, ok := f.r.store.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByUserlogin(ctx context.Context, userlogin string) (*models.User, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	for _, u := range f.r.store.users {
		if u.Username == userlogin || u.Email == userlogin {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUserRepo) GetByIDAndRole(ctx context.Context, id string, role models.UserRole) (*models.User, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	u, ok := f.r.store.users[id]
	if !ok || u.Role != role {
		return nil, repositories.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) ListByRole(ctx context.Context, role models.UserRole) ([]*models.User, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	var users []*models.User
	for _, u := range f.r.store.users {
		if u.Role == role {
			cp := *u
			users = append(users, &cp)
		}
	}
	return users, nil
}

func (f *fakeUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	for _, u := range f.r.store.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	for _, u := range f.r.store.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	if _, ok := f.r.store.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	cp := *user
	f.r.store.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	if _, ok := f.r.store.users[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.r.store.users, id)
	return nil
}

// ===== courses =====

type fakeCourseRepo struct{ r *fakeRepository }

func (f *fakeCourseRepo) Create(ctx context.Context, course *models.Course) error {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	cp := *course
	f.r.store.courses[course.ID] = &cp
	return nil
}

func (f *fakeCourseRepo) GetByID(ctx context.Context, id string) (*models.Course, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	c, ok := f.r.store.courses[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCourseRepo) ListAll(ctx context.Context) ([]*models.Course, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	var courses []*models.Course
	for _, c := range f.r.store.courses {
		cp := *c
		courses = append(courses, &cp)
	}
	return courses, nil
}

func (f *fakeCourseRepo) ListByTeacher(ctx context.Context, teacherID string) ([]*models.Course, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	var courses []*models.Course
	for _, c := range f.r.store.courses {
		if c.TeacherID == teacherID {
			cp := *c
			courses = append(courses, &cp)
		}
	}
	return courses, nil
}

func (f *fakeCourseRepo) Update(ctx context.Context, course *models.Course) error {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	if _, ok := f.r.store.courses[course.ID]; !ok {
		return repositories.ErrNotFound
	}
	cp := *course
	f.r.store.courses[course.ID] = &cp
	return nil
}

func (f *fakeCourseRepo) Delete(ctx context.Context, id string) error {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	if _, ok := f.r.store.courses[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.r.store.courses, id)
	return nil
}

// ===== enrollments =====

type fakeEnrollmentRepo struct{ r *fakeRepository }

func (f *fakeEnrollmentRepo) Create(ctx context.Context, enrollment *models.Enrollment) error {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	for _, e := range f.r.store.enrollments {
		if e.StudentID == enrollment.StudentID && e.CourseID == enrollment.CourseID {
			return repositories.ErrDuplicateKey
		}
	}
	enrollment.ID = f.r.store.nextID
	f.r.store.nextID++
	cp := *enrollment
	f.r.store.enrollments = append(f.r.store.enrollments, &cp)
	return nil
}

func (f *fakeEnrollmentRepo) Delete(ctx context.Context, studentID, courseID string) error {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	f.filterLocked(func(e *models.Enrollment) bool {
		return e.StudentID == studentID && e.CourseID == courseID
	})
	return nil
}

func (f *fakeEnrollmentRepo) DeleteByStudent(ctx context.Context, studentID string) error {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	f.filterLocked(func(e *models.Enrollment) bool { return e.StudentID == studentID })
	return nil
}

func (f *fakeEnrollmentRepo) DeleteByCourse(ctx context.Context, courseID string) error {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	f.filterLocked(func(e *models.Enrollment) bool { return e.CourseID == courseID })
	return nil
}

func (f *fakeEnrollmentRepo) filterLocked(remove func(*models.Enrollment) bool) {
	kept := f.r.store.enrollments[:0:0]
	for _, e := range f.r.store.enrollments {
		if !remove(e) {
			kept = append(kept, e)
		}
	}
	f.r.store.enrollments = kept
}

func (f *fakeEnrollmentRepo) Exists(ctx context.Context, studentID, courseID string) (bool, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	for _, e := range f.r.store.enrollments {
		if e.StudentID == studentID && e.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeEnrollmentRepo) CountByStudent(ctx context.Context, studentID string) (int64, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	var count int64
	for _, e := range f.r.store.enrollments {
		if e.StudentID == studentID {
			count++
		}
	}
	return count, nil
}

func (f *fakeEnrollmentRepo) CountByCourse(ctx context.Context, courseID string) (int64, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	var count int64
	for _, e := range f.r.store.enrollments {
		if e.CourseID == courseID {
			count++
		}
	}
	return count, nil
}

func (f *fakeEnrollmentRepo) ListCoursesByStudent(ctx context.Context, studentID string) ([]*models.Course, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	var courses []*models.Course
	for _, e := range f.r.store.enrollments {
		if e.StudentID != studentID {
			continue
		}
		if c, ok := f.r.store.courses[e.CourseID]; ok {
			cp := *c
			courses = append(courses, &cp)
		}
	}
	return courses, nil
}

func (f *fakeEnrollmentRepo) ListStudentsByCourse(ctx context.Context, courseID string) ([]*models.User, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	var students []*models.User
	for _, e := range f.r.store.enrollments {
		if e.CourseID != courseID {
			continue
		}
		if u, ok := f.r.store.users[e.StudentID]; ok {
			cp := *u
			students = append(students, &cp)
		}
	}
	return students, nil
}
