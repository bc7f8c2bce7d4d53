package models

import "time"

type User struct {
	ID               string     `gorm:"primaryKey;size:100" json:"id"`
	Username         string     `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email            string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password         string     `gorm:"size:255;not null" json:"-"`
	Avatar           string     `gorm:"size:255" json:"avatar"`
	Nickname         string     `gorm:"size:50" json:"nickname"`
	Gender           string     `gorm:"size:10;default:unknown" json:"gender"`
	Birthdate        *time.Time `json:"birthdate"`
	Phone            string     `gorm:"size:20" json:"phone"`
	Country          string     `gorm:"size:50" json:"country"`
	Language         string     `gorm:"size:20;default:zh-CN" json:"language"`
	Timezone         string     `gorm:"size:50;default:Asia/Shanghai" json:"timezone"`
	IsVerified       bool       `gorm:"default:false" json:"is_verified"`
	VerificationCode string     `gorm:"size:20" json:"-"`
	LastLoginIP      string     `gorm:"size:45" json:"last_login_ip"`
	LoginCount       int        `gorm:"default:0" json:"login_count"`
	IsActive         bool       `gorm:"default:true" json:"is_active"`
	LastLoginAt      *time.Time `json:"last_login_at"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// UserStats is the per-user projection of the learning progress rows. One row
// per user, created lazily on first access and mutated by every progress
// update, check-in and recompute.
type UserStats struct {
	ID               string     `gorm:"primaryKey;size:50" json:"id"`
	UserID           string     `gorm:"size:100;uniqueIndex;not null" json:"user_id"`
	Streak           int        `gorm:"default:0" json:"streak"`
	TotalCheckIn     int        `gorm:"default:0" json:"total_check_in"`
	WordCount        int        `gorm:"default:0" json:"word_count"`
	StudyTimeToday   int        `gorm:"default:0" json:"study_time_today"`
	StudyTimeWeek    int        `gorm:"default:0" json:"study_time_week"`
	StudyTimeMonth   int        `gorm:"default:0" json:"study_time_month"`
	StudyTimeYear    int        `gorm:"default:0" json:"study_time_year"`
	StudyTimeTotal   int        `gorm:"default:0" json:"study_time_total"`
	LastStudyDate    *time.Time `json:"last_study_date"`
	CompletedLessons int        `gorm:"default:0" json:"completed_lessons"`
	CorrectAnswers   int        `gorm:"default:0" json:"correct_answers"`
	WrongAnswers     int        `gorm:"default:0" json:"wrong_answers"`
	Accuracy         float64    `gorm:"default:0" json:"accuracy"`
	XPPoints         int        `gorm:"column:xp_points;default:0" json:"xp_points"`
	Level            int        `gorm:"default:1" json:"level"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type LoginHistory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"size:100;index;not null" json:"user_id"`
	LoginIP   string    `gorm:"size:45" json:"login_ip"`
	LoginTime time.Time `json:"login_time"`
}
