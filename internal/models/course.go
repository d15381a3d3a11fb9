package models

import (
	"time"
)

type Course struct {
	ID          string  `json:"id" gorm:"primaryKey;size:36"`
	Title       string  `json:"title" gorm:"not null;size:200"`
	Description *string `json:"description,omitempty" gorm:"type:text"`

	// Owning teacher, set once at creation.
	TeacherID string `json:"teacher_id" gorm:"not null;index;size:36"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Populated on demand for course detail responses, not stored.
	Teacher  *User   `json:"teacher,omitempty" gorm:"-"`
	Students []*User `json:"students,omitempty" gorm:"-"`
}

func (Course) TableName() string {
	return "courses"
}
