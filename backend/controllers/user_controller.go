package controllers

import (
	"strconv"
	"time"

	"github.com/wh19910805/WordTap/backend/config"
	"github.com/wh19910805/WordTap/backend/middleware"
	"github.com/wh19910805/WordTap/backend/models"
	"github.com/wh19910805/WordTap/backend/stats"
	"github.com/wh19910805/WordTap/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UserController struct {
	DB    *gorm.DB
	Cfg   *config.Config
	Stats *stats.Service
}

func NewUserController(db *gorm.DB, cfg *config.Config) *UserController {
	return &UserController{DB: db, Cfg: cfg, Stats: stats.NewService(db)}
}

// GetStats returns the user's stats row, creating it on first access.
func (uc *UserController) GetStats(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	userStats, err := uc.Stats.Get(userID)
	if err != nil {
		return utils.InternalServerError(c, "Could not load stats")
	}

	return utils.Success(c, fiber.StatusOK, userStats)
}

type UpdateStatsInput struct {
	StudyTimeToday   *int `json:"study_time_today"`
	StudyTimeWeek    *int `json:"study_time_week"`
	StudyTimeMonth   *int `json:"study_time_month"`
	StudyTimeYear    *int `json:"study_time_year"`
	StudyTimeTotal   *int `json:"study_time_total"`
	WordCount        *int `json:"word_count"`
	CompletedLessons *int `json:"completed_lessons"`
	CorrectAnswers   *int `json:"correct_answers"`
	WrongAnswers     *int `json:"wrong_answers"`
	XPPoints         *int `json:"xp_points"`
}

// UpdateStats applies client-pushed counter values. Accuracy is derived on
// the server whenever the answer counters move.
func (uc *UserController) UpdateStats(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var input UpdateStatsInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var out models.UserStats
	err := uc.DB.Transaction(func(tx *gorm.DB) error {
		st, err := stats.GetOrCreate(tx, userID)
		if err != nil {
			return err
		}

		if input.StudyTimeToday != nil {
			st.StudyTimeToday = *input.StudyTimeToday
		}
		if input.StudyTimeWeek != nil {
			st.StudyTimeWeek = *input.StudyTimeWeek
		}
		if input.StudyTimeMonth != nil {
			st.StudyTimeMonth = *input.StudyTimeMonth
		}
		if input.StudyTimeYear != nil {
			st.StudyTimeYear = *input.StudyTimeYear
		}
		if input.StudyTimeTotal != nil {
			st.StudyTimeTotal = *input.StudyTimeTotal
		}
		if input.WordCount != nil {
			st.WordCount = *input.WordCount
		}
		if input.CompletedLessons != nil {
			st.CompletedLessons = *input.CompletedLessons
		}
		if input.XPPoints != nil {
			st.XPPoints = *input.XPPoints
		}

		if input.CorrectAnswers != nil || input.WrongAnswers != nil {
			if input.CorrectAnswers != nil {
				st.CorrectAnswers = *input.CorrectAnswers
			}
			if input.WrongAnswers != nil {
				st.WrongAnswers = *input.WrongAnswers
			}
			st.Accuracy = stats.Accuracy(st.CorrectAnswers, st.WrongAnswers)
		}

		now := time.Now()
		st.LastStudyDate = &now

		if err := tx.Save(st).Error; err != nil {
			return err
		}
		out = *st
		return nil
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not update stats")
	}

	return utils.Success(c, fiber.StatusOK, out)
}

// CheckIn records today as a study day. Calling it twice on the same day is
// a no-op the second time.
func (uc *UserController) CheckIn(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	userStats, isNew, err := uc.Stats.CheckIn(userID, time.Now())
	if err != nil {
		return utils.InternalServerError(c, "Could not check in")
	}

	message := "Checked in"
	if !isNew {
		message = "Already checked in today"
	}

	return c.JSON(fiber.Map{
		"success":         true,
		"message":         message,
		"streak":          userStats.Streak,
		"total_check_in":  userStats.TotalCheckIn,
		"is_new_check_in": isNew,
	})
}

// RecalculateStats rebuilds the stats row from the user's progress records.
// Repair path, invoked on demand when the derived counters have drifted.
func (uc *UserController) RecalculateStats(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	userStats, err := uc.Stats.Recompute(userID, time.Now())
	if err != nil {
		return utils.InternalServerError(c, "Could not recalculate stats")
	}

	return utils.Success(c, fiber.StatusOK, userStats)
}

type HeatmapEntry struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// GetHeatmap returns per-day counts of studied lessons over the given number
// of months (default 6).
func (uc *UserController) GetHeatmap(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	months, _ := strconv.Atoi(c.Query("months", "6"))
	if months < 1 {
		months = 6
	}
	since := time.Now().AddDate(0, -months, 0)

	var entries []HeatmapEntry
	err := uc.DB.Model(&models.UserLearningProgress{}).
		Select("DATE(last_studied_at) AS date, COUNT(id) AS count").
		Where("user_id = ? AND last_studied_at IS NOT NULL AND last_studied_at >= ?", userID, since).
		Group("DATE(last_studied_at)").
		Order("date").
		Scan(&entries).Error
	if err != nil {
		return utils.InternalServerError(c, "Could not load heatmap data")
	}

	return utils.Success(c, fiber.StatusOK, entries)
}

type RecentStudyRecord struct {
	ID            string     `json:"id"`
	CourseID      string     `json:"course_id"`
	CourseName    string     `json:"course_name"`
	LessonID      string     `json:"lesson_id"`
	LessonName    string     `json:"lesson_name"`
	StudyTime     int        `json:"study_time"`
	LastStudiedAt *time.Time `json:"last_studied_at"`
	IsCompleted   bool       `json:"is_completed"`
}

// GetRecentStudies returns the user's most recent study records with course
// and lesson titles resolved.
func (uc *UserController) GetRecentStudies(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	if limit < 1 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	var records []RecentStudyRecord
	err := uc.DB.Model(&models.UserLearningProgress{}).
		Select("user_learning_progresses.id, user_learning_progresses.course_id, courses.title AS course_name, "+
			"user_learning_progresses.lesson_id, lessons.title AS lesson_name, "+
			"user_learning_progresses.study_time, user_learning_progresses.last_studied_at, user_learning_progresses.is_completed").
		Joins("JOIN courses ON courses.id = user_learning_progresses.course_id").
		Joins("JOIN lessons ON lessons.id = user_learning_progresses.lesson_id").
		Where("user_learning_progresses.user_id = ?", userID).
		Order("user_learning_progresses.last_studied_at DESC").
		Limit(limit).Offset(offset).
		Scan(&records).Error
	if err != nil {
		return utils.InternalServerError(c, "Could not load recent studies")
	}

	var total int64
	uc.DB.Model(&models.UserLearningProgress{}).Where("user_id = ?", userID).Count(&total)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"records": records,
		"total":   total,
	})
}

// GetMeWithStats returns the account data together with the stats row.
func (uc *UserController) GetMeWithStats(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var user models.User
	if err := uc.DB.First(&user, "id = ?", userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	userStats, err := uc.Stats.Get(userID)
	if err != nil {
		return utils.InternalServerError(c, "Could not load stats")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"user":  user,
		"stats": userStats,
	})
}

// GetSettings returns the user's settings, creating defaults on first access.
func (uc *UserController) GetSettings(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	settings, err := uc.getOrCreateSettings(userID)
	if err != nil {
		return utils.InternalServerError(c, "Could not load settings")
	}

	return utils.Success(c, fiber.StatusOK, settings)
}

// UpdateSettings merges the submitted fields into the stored categories.
// Absent fields keep their stored values.
func (uc *UserController) UpdateSettings(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var input models.UserSettingsUpdate
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	settings, err := uc.getOrCreateSettings(userID)
	if err != nil {
		return utils.InternalServerError(c, "Could not load settings")
	}

	if input.Appearance != nil {
		v := settings.Appearance.Data()
		input.Appearance.Apply(&v)
		settings.Appearance = datatypes.NewJSONType(v)
	}
	if input.Quiz != nil {
		v := settings.Quiz.Data()
		input.Quiz.Apply(&v)
		settings.Quiz = datatypes.NewJSONType(v)
	}
	if input.Playback != nil {
		v := settings.Playback.Data()
		input.Playback.Apply(&v)
		settings.Playback = datatypes.NewJSONType(v)
	}
	if input.Listening != nil {
		v := settings.Listening.Data()
		input.Listening.Apply(&v)
		settings.Listening = datatypes.NewJSONType(v)
	}
	if input.Speaking != nil {
		v := settings.Speaking.Data()
		input.Speaking.Apply(&v)
		settings.Speaking = datatypes.NewJSONType(v)
	}
	if input.Notifications != nil {
		v := settings.Notifications.Data()
		input.Notifications.Apply(&v)
		settings.Notifications = datatypes.NewJSONType(v)
	}
	if input.Sync != nil {
		v := settings.Sync.Data()
		input.Sync.Apply(&v)
		settings.Sync = datatypes.NewJSONType(v)
	}

	if err := uc.DB.Save(settings).Error; err != nil {
		return utils.InternalServerError(c, "Could not update settings")
	}

	return utils.Success(c, fiber.StatusOK, settings)
}

func (uc *UserController) getOrCreateSettings(userID string) (*models.UserSettings, error) {
	var settings models.UserSettings
	err := uc.DB.Where("user_id = ?", userID).First(&settings).Error
	if err == nil {
		return &settings, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	settings = models.DefaultUserSettings(utils.NewID("settings"), userID)
	if err := uc.DB.Create(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}
