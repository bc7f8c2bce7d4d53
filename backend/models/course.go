package models

import (
	"time"

	"gorm.io/datatypes"
)

type Course struct {
	ID           string    `gorm:"primaryKey;size:100" json:"id"`
	Title        string    `gorm:"size:100;not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	Level        string    `gorm:"size:20;not null;default:beginner" json:"level"`
	Category     string    `gorm:"size:50;not null" json:"category"`
	CoverImage   string    `gorm:"size:255" json:"cover_image"`
	TotalLessons int       `gorm:"default:0" json:"total_lessons"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type LessonLine struct {
	Text        string `json:"text"`
	Translation string `json:"translation,omitempty"`
	Name        string `json:"name,omitempty"`
}

type LessonContent struct {
	Lines []LessonLine `json:"lines"`
}

type Lesson struct {
	ID           string                             `gorm:"primaryKey;size:100" json:"id"`
	CourseID     string                             `gorm:"size:100;index;not null" json:"course_id"`
	LessonNumber int                                `gorm:"not null" json:"lesson_number"`
	Title        string                             `gorm:"size:100;not null" json:"title"`
	Content      datatypes.JSONType[LessonContent]  `json:"content"`
	TotalLines   int                                `gorm:"default:0" json:"total_lines"`
	CreatedAt    time.Time                          `json:"created_at"`
	UpdatedAt    time.Time                          `json:"updated_at"`
}

// UserCourse links a user to a course they added to "my courses".
type UserCourse struct {
	UserID    string    `gorm:"primaryKey;size:100" json:"user_id"`
	CourseID  string    `gorm:"primaryKey;size:100" json:"course_id"`
	Tags      string    `gorm:"type:text" json:"tags"`
	AddedAt   time.Time `gorm:"autoCreateTime" json:"added_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserLearningProgress is one user's cumulative state for one lesson within
// one course. One row per (user, course, lesson); created on the first study
// event, updated on every subsequent one.
type UserLearningProgress struct {
	ID            string     `gorm:"primaryKey;size:100" json:"id"`
	UserID        string     `gorm:"size:100;index;not null" json:"user_id"`
	CourseID      string     `gorm:"size:100;index;not null" json:"course_id"`
	LessonID      string     `gorm:"size:100;index;not null" json:"lesson_id"`
	CurrentLine   int        `gorm:"default:0" json:"current_line"`
	IsCompleted   bool       `gorm:"default:false" json:"is_completed"`
	LastStudiedAt *time.Time `json:"last_studied_at"`
	StudyTime     int        `gorm:"default:0" json:"study_time"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
