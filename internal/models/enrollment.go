package models

import (
	"time"
)

// MaxCoursesPerStudent caps how many courses a student may be enrolled in.
const MaxCoursesPerStudent = 3

// Enrollment is one row of the student↔course relation. The composite unique
// index guarantees a pair exists at most once; the serial ID preserves
// assignment order for student course listings.
type Enrollment struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	StudentID string `json:"student_id" gorm:"not null;size:36;uniqueIndex:idx_enrollments_pair;index"`
	CourseID  string `json:"course_id" gorm:"not null;size:36;uniqueIndex:idx_enrollments_pair;index"`

	CreatedAt time.Time `json:"created_at"`

	// Foreign keys with ON DELETE CASCADE make the store remove any link the
	// moment its student or course row goes, including a link inserted by a
	// transaction racing the delete.
	Student *User   `json:"-" gorm:"foreignKey:StudentID;references:ID;constraint:OnDelete:CASCADE"`
	Course  *Course `json:"-" gorm:"foreignKey:CourseID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
