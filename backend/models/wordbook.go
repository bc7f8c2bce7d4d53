package models

import "time"

// UserWordBook is the user's personal word book: words collected while
// studying, with spaced-review bookkeeping.
type UserWordBook struct {
	ID               string     `gorm:"primaryKey;size:100" json:"id"`
	UserID           string     `gorm:"size:100;index;not null" json:"user_id"`
	Word             string     `gorm:"size:100;not null" json:"word"`
	Phonetic         string     `gorm:"size:100" json:"phonetic"`
	Definition       string     `gorm:"size:500" json:"definition"`
	Example          string     `gorm:"size:1000" json:"example"`
	PartOfSpeech     string     `gorm:"size:50" json:"part_of_speech"`
	Tags             string     `gorm:"size:200" json:"tags"`
	Frequency        int        `gorm:"default:1" json:"frequency"`
	ProficiencyLevel int        `gorm:"default:1" json:"proficiency_level"`
	LastReviewedAt   *time.Time `json:"last_reviewed_at"`
	NextReviewAt     *time.Time `json:"next_review_at"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// UserWrongWord records a word the user answered incorrectly, keyed by word
// and question type so repeated mistakes bump the counter.
type UserWrongWord struct {
	ID            string    `gorm:"primaryKey;size:100" json:"id"`
	UserID        string    `gorm:"size:100;index;not null" json:"user_id"`
	Word          string    `gorm:"size:100;not null" json:"word"`
	QuestionType  string    `gorm:"size:50;not null" json:"question_type"`
	CourseID      string    `gorm:"size:100" json:"course_id"`
	LessonID      string    `gorm:"size:100" json:"lesson_id"`
	UserAnswer    string    `gorm:"size:500" json:"user_answer"`
	CorrectAnswer string    `gorm:"size:500;not null" json:"correct_answer"`
	Explanation   string    `gorm:"size:1000" json:"explanation"`
	WrongCount    int       `gorm:"default:1" json:"wrong_count"`
	LastWrongAt   time.Time `json:"last_wrong_at"`
	IsReviewed    bool      `gorm:"default:false" json:"is_reviewed"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
