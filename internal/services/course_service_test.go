package services

import (
	"context"
	"errors"
	"testing"

	"github.com/campus-hub/school-service/internal/models"
	"github.com/campus-hub/school-service/internal/repositories"
	"github.com/campus-hub/school-service/internal/validator"
)

func newCourseService(repo *fakeRepository) CourseService {
	logger := testLogger()
	return NewCourseService(repo, logger, validator.New(), NewEnrollmentService(repo, logger))
}

func TestCourseCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("teacher creates course", func(t *testing.T) {
		repo := newFakeRepository()
		seedTeacher(repo, "bob")
		svc := newCourseService(repo)

		course, err := svc.Create(ctx, &CourseCreateRequest{Title: "Algebra"}, "bob")
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if course.TeacherID != "bob" {
			t.Errorf("TeacherID = %s, want bob", course.TeacherID)
		}
		if course.ID == "" {
			t.Error("course has no ID")
		}
	})

	t.Run("student cannot create", func(t *testing.T) {
		repo := newFakeRepository()
		seedStudent(repo, "alice")
		svc := newCourseService(repo)

		_, err := svc.Create(ctx, &CourseCreateRequest{Title: "Algebra"}, "alice")
		if !IsPermissionError(err) {
			t.Errorf("Create() error = %v, want PermissionError", err)
		}
	})

	t.Run("unknown creator", func(t *testing.T) {
		repo := newFakeRepository()
		svc := newCourseService(repo)

		_, err := svc.Create(ctx, &CourseCreateRequest{Title: "Algebra"}, "ghost")
		if !errors.Is(err, ErrUserNotFound) {
			t.Errorf("Create() error = %v, want ErrUserNotFound", err)
		}
	})
}

func TestCourseUpdate_Ownership(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	seedTeacher(repo, "bob")
	seedTeacher(repo, "carol")
	seedCourse(repo, "algebra", "bob")
	svc := newCourseService(repo)

	newTitle := "Linear Algebra"

	// Carol does not own bob's course.
	_, err := svc.Update(ctx, "algebra", &CourseUpdateRequest{Title: &newTitle}, "carol")
	if !IsPermissionError(err) {
		t.Fatalf("Update() by non-owner error = %v, want PermissionError", err)
	}
	unchanged, _ := repo.Course().GetByID(ctx, "algebra")
	if unchanged.Title != "Course algebra" {
		t.Errorf("title after denied update = %q, want unchanged", unchanged.Title)
	}

	course, err := svc.Update(ctx, "algebra", &CourseUpdateRequest{Title: &newTitle}, "bob")
	if err != nil {
		t.Fatalf("Update() by owner error = %v", err)
	}
	if course.Title != newTitle {
		t.Errorf("title = %q, want %q", course.Title, newTitle)
	}

	if _, err := svc.Update(ctx, "ghost", &CourseUpdateRequest{Title: &newTitle}, "bob"); !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("Update(ghost) error = %v, want ErrCourseNotFound", err)
	}
}

func TestCourseDelete(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	seedTeacher(repo, "bob")
	seedTeacher(repo, "carol")
	seedStudent(repo, "alice")
	seedCourse(repo, "algebra", "bob")
	seedCourse(repo, "physics", "bob")
	repo.seedEnrollment("alice", "algebra")
	repo.seedEnrollment("alice", "physics")
	svc := newCourseService(repo)

	if err := svc.Delete(ctx, "algebra", "carol"); !IsPermissionError(err) {
		t.Fatalf("Delete() by non-owner error = %v, want PermissionError", err)
	}

	if err := svc.Delete(ctx, "algebra", "bob"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := repo.Course().GetByID(ctx, "algebra"); err == nil {
		t.Error("course still present after delete")
	}
	// Only the deleted course's enrollments go; the rest stay.
	pairs := repo.enrollmentPairs()
	if len(pairs) != 1 || pairs[0] != [2]string{"alice", "physics"} {
		t.Errorf("pairs after delete = %v, want [[alice physics]]", pairs)
	}
}

// vanishedCourseRepo removes the course just before the delete transaction
// opens, like a concurrent delete winning the race after the ownership check.
type vanishedCourseRepo struct {
	*fakeRepository
	courseID string
}

func (r *vanishedCourseRepo) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	_ = r.fakeRepository.Course().Delete(ctx, r.courseID)
	return r.fakeRepository.WithTransaction(ctx, fn)
}

func TestCourseDelete_RowVanishesMidFlight(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	seedTeacher(repo, "bob")
	seedCourse(repo, "algebra", "bob")
	racing := &vanishedCourseRepo{fakeRepository: repo, courseID: "algebra"}
	logger := testLogger()
	svc := NewCourseService(racing, logger, validator.New(), NewEnrollmentService(racing, logger))

	if err := svc.Delete(ctx, "algebra", "bob"); !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("Delete() error = %v, want ErrCourseNotFound", err)
	}
}

// vanishingUpdateRepo removes the course between the ownership check and the
// write, so the update hits zero rows.
type vanishingUpdateRepo struct {
	*fakeRepository
	courseID string
}

func (r *vanishingUpdateRepo) Course() repositories.CourseRepository {
	return &vanishingUpdateCourses{
		CourseRepository: r.fakeRepository.Course(),
		repo:             r.fakeRepository,
		courseID:         r.courseID,
	}
}

type vanishingUpdateCourses struct {
	repositories.CourseRepository
	repo     *fakeRepository
	courseID string
}

func (c *vanishingUpdateCourses) Update(ctx context.Context, course *models.Course) error {
	_ = c.repo.Course().Delete(ctx, c.courseID)
	return c.CourseRepository.Update(ctx, course)
}

func TestCourseUpdate_RowVanishesMidFlight(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	seedTeacher(repo, "bob")
	seedCourse(repo, "algebra", "bob")
	racing := &vanishingUpdateRepo{fakeRepository: repo, courseID: "algebra"}
	logger := testLogger()
	svc := NewCourseService(racing, logger, validator.New(), NewEnrollmentService(racing, logger))

	title := "Linear Algebra"
	if _, err := svc.Update(ctx, "algebra", &CourseUpdateRequest{Title: &title}, "bob"); !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("Update() error = %v, want ErrCourseNotFound", err)
	}
}

func TestCourseGetByID_Populates(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	seedTeacher(repo, "bob")
	seedStudent(repo, "alice")
	seedCourse(repo, "algebra", "bob")
	repo.seedEnrollment("alice", "algebra")
	svc := newCourseService(repo)

	course, err := svc.GetByID(ctx, "algebra")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if course.Teacher == nil || course.Teacher.ID != "bob" {
		t.Error("teacher not attached")
	}
	if course.Teacher != nil && course.Teacher.Password != "" {
		t.Error("teacher password not redacted")
	}
	if len(course.Students) != 1 || course.Students[0].ID != "alice" {
		t.Errorf("students = %v, want [alice]", course.Students)
	}
	if len(course.Students) == 1 && course.Students[0].Password != "" {
		t.Error("student password not redacted")
	}
}

// Full lifecycle: a student fills their course cap, is refused a fourth
// course, and a course delete frees a slot and shrinks their list.
func TestEnrollmentLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	seedTeacher(repo, "bob")
	seedStudent(repo, "alice")
	courseSvc := newCourseService(repo)
	enrollSvc := NewEnrollmentService(repo, testLogger())

	ids := make(map[string]string)
	for _, title := range []string{"A", "B", "C", "D"} {
		course, err := courseSvc.Create(ctx, &CourseCreateRequest{Title: title}, "bob")
		if err != nil {
			t.Fatalf("Create(%s) error = %v", title, err)
		}
		ids[title] = course.ID
	}

	for _, title := range []string{"A", "B", "C"} {
		if err := enrollSvc.Assign(ctx, "alice", ids[title]); err != nil {
			t.Fatalf("Assign(%s) error = %v", title, err)
		}
	}
	if err := enrollSvc.Assign(ctx, "alice", ids["D"]); !errors.Is(err, ErrCourseLimitReached) {
		t.Fatalf("Assign(D) error = %v, want ErrCourseLimitReached", err)
	}

	if err := courseSvc.Delete(ctx, ids["B"], "bob"); err != nil {
		t.Fatalf("Delete(B) error = %v", err)
	}

	courses, err := enrollSvc.ListForStudent(ctx, "alice")
	if err != nil {
		t.Fatalf("ListForStudent() error = %v", err)
	}
	got := make([]string, len(courses))
	for i, c := range courses {
		got[i] = c.Title
	}
	if len(got) != 2 || got[0] != "A" || got[1] != "C" {
		t.Errorf("courses after delete = %v, want [A C]", got)
	}

	// The freed slot is usable again.
	if err := enrollSvc.Assign(ctx, "alice", ids["D"]); err != nil {
		t.Errorf("Assign(D) after freed slot error = %v", err)
	}
}

func TestCourseListByTeacher(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	seedTeacher(repo, "bob")
	seedTeacher(repo, "carol")
	seedCourse(repo, "algebra", "bob")
	seedCourse(repo, "physics", "carol")
	svc := newCourseService(repo)

	courses, err := svc.ListByTeacher(ctx, "bob")
	if err != nil {
		t.Fatalf("ListByTeacher() error = %v", err)
	}
	if len(courses) != 1 || courses[0].ID != "algebra" {
		t.Errorf("courses = %v, want [algebra]", courses)
	}

	if _, err := svc.ListByTeacher(ctx, "ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("ListByTeacher(ghost) error = %v, want ErrUserNotFound", err)
	}
}
