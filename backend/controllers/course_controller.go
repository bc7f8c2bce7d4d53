package controllers

import (
	"errors"
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

type CourseController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewCourseController(db *gorm.DB, cfg *config.Config) *CourseController {
	return &CourseController{DB: db, Cfg: cfg}
}

type CourseInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Level       string `json:"level"`
	Category    string `json:"category"`
	CoverImage  string `json:"cover_image"`
}

// CreateCourse creates a course.
func (cc *CourseController) CreateCourse(c *fiber.Ctx) error {
	var input CourseInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Title == "" || input.Category == "" {
		return utils.BadRequest(c, "Title and category are required")
	}
	if input.Level == "" {
		input.Level = "beginner"
	}

	course := models.Course{
		ID:          utils.NewID("course"),
		Title:       input.Title,
		Description: input.Description,
		Level:       input.Level,
		Category:    input.Category,
		CoverImage:  input.CoverImage,
		IsActive:    true,
	}

	if err := cc.DB.Create(&course).Error; err != nil {
		return utils.InternalServerError(c, "Could not create course")
	}

	return utils.Created(c, course)
}

// GetCourses lists active courses, optionally filtered by level and category.
func (cc *CourseController) GetCourses(c *fiber.Ctx) error {
	skip, _ := strconv.Atoi(c.Query("skip", "0"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if skip < 0 {
		skip = 0
	}
	if limit < 1 {
		limit = 10
	}

	query := cc.DB.Model(&models.Course{}).Where("is_active = ?", true)
	if level := c.Query("level"); level != "" {
		query = query.Where("level = ?", level)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var courses []models.Course
	if err := query.Offset(skip).Limit(limit).Find(&courses).Error; err != nil {
		return utils.InternalServerError(c, "Could not load courses")
	}

	return utils.Success(c, fiber.StatusOK, courses)
}

// GetCourse returns one course.
func (cc *CourseController) GetCourse(c *fiber.Ctx) error {
	var course models.Course
	if err := cc.DB.First(&course, "id = ?", c.Params("id")).Error; err != nil {
		return utils.NotFound(c, "Course not found")
	}
	return utils.Success(c, fiber.StatusOK, course)
}

type CourseUpdateInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Level       *string `json:"level"`
	Category    *string `json:"category"`
	CoverImage  *string `json:"cover_image"`
	IsActive    *bool   `json:"is_active"`
}

// UpdateCourse applies a partial course update.
func (cc *CourseController) UpdateCourse(c *fiber.Ctx) error {
	var course models.Course
	if err := cc.DB.First(&course, "id = ?", c.Params("id")).Error; err != nil {
		return utils.NotFound(c, "Course not found")
	}

	var input CourseUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Title != nil {
		course.Title = *input.Title
	}
	if input.Description != nil {
		course.Description = *input.Description
	}
	if input.Level != nil {
		course.Level = *input.Level
	}
	if input.Category != nil {
		course.Category = *input.Category
	}
	if input.CoverImage != nil {
		course.CoverImage = *input.CoverImage
	}
	if input.IsActive != nil {
		course.IsActive = *input.IsActive
	}

	if err := cc.DB.Save(&course).Error; err != nil {
		return utils.InternalServerError(c, "Could not update course")
	}

	return utils.Success(c, fiber.StatusOK, course)
}

type MyCourseInput struct {
	CourseID string `json:"course_id"`
	Tags     string `json:"tags"`
}

// AddMyCourse puts a course on the user's personal list.
func (cc *CourseController) AddMyCourse(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var input MyCourseInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var course models.Course
	if err := cc.DB.First(&course, "id = ?", input.CourseID).Error; err != nil {
		return utils.NotFound(c, "Course not found")
	}

	var existing models.UserCourse
	err := cc.DB.Where("user_id = ? AND course_id = ?", userID, input.CourseID).First(&existing).Error
	if err == nil {
		return utils.Conflict(c, "Course already in my courses")
	}

	userCourse := models.UserCourse{
		UserID:   userID,
		CourseID: input.CourseID,
		Tags:     input.Tags,
	}
	if err := cc.DB.Create(&userCourse).Error; err != nil {
		return utils.InternalServerError(c, "Could not add course")
	}

	return utils.Created(c, fiber.Map{
		"user_id":   userCourse.UserID,
		"course_id": userCourse.CourseID,
		"tags":      userCourse.Tags,
		"added_at":  userCourse.AddedAt,
		"course":    course,
	})
}

// GetMyCourses lists the user's courses with full course data.
func (cc *CourseController) GetMyCourses(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var userCourses []models.UserCourse
	if err := cc.DB.Where("user_id = ?", userID).Find(&userCourses).Error; err != nil {
		return utils.InternalServerError(c, "Could not load my courses")
	}

	response := make([]fiber.Map, 0, len(userCourses))
	for _, uc := range userCourses {
		var course models.Course
		if err := cc.DB.First(&course, "id = ?", uc.CourseID).Error; err != nil {
			continue
		}
		response = append(response, fiber.Map{
			"user_id":   uc.UserID,
			"course_id": uc.CourseID,
			"tags":      uc.Tags,
			"added_at":  uc.AddedAt,
			"course":    course,
		})
	}

	return utils.Success(c, fiber.StatusOK, response)
}

type MyCourseUpdateInput struct {
	Tags *string `json:"tags"`
}

// UpdateMyCourse updates the user's tags on a listed course.
func (cc *CourseController) UpdateMyCourse(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	courseID := c.Params("id")

	var userCourse models.UserCourse
	err := cc.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&userCourse).Error
	if err != nil {
		return utils.NotFound(c, "Course not in my courses")
	}

	var input MyCourseUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Tags != nil {
		userCourse.Tags = *input.Tags
	}

	if err := cc.DB.Save(&userCourse).Error; err != nil {
		return utils.InternalServerError(c, "Could not update course tags")
	}

	return utils.Success(c, fiber.StatusOK, userCourse)
}

// RemoveMyCourse removes a course from the user's list.
func (cc *CourseController) RemoveMyCourse(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	courseID := c.Params("id")

	var userCourse models.UserCourse
	err := cc.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&userCourse).Error
	if err != nil {
		return utils.NotFound(c, "Course not in my courses")
	}

	if err := cc.DB.Where("user_id = ? AND course_id = ?", userID, courseID).
		Delete(&models.UserCourse{}).Error; err != nil {
		return utils.InternalServerError(c, "Could not remove course")
	}

	return utils.NoContent(c)
}

type LessonInput struct {
	CourseID     string               `json:"course_id"`
	LessonNumber int                  `json:"lesson_number"`
	Title        string               `json:"title"`
	Content      models.LessonContent `json:"content"`
}

// CreateLesson adds a lesson to a course and bumps the course's lesson count.
func (cc *CourseController) CreateLesson(c *fiber.Ctx) error {
	var input LessonInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.LessonNumber < 0 {
		return utils.BadRequest(c, "Lesson number cannot be negative")
	}

	var course models.Course
	if err := cc.DB.First(&course, "id = ?", input.CourseID).Error; err != nil {
		return utils.NotFound(c, "Course not found")
	}

	lesson := models.Lesson{
		ID:           utils.NewID("lesson"),
		CourseID:     input.CourseID,
		LessonNumber: input.LessonNumber,
		Title:        input.Title,
		Content:      datatypes.NewJSONType(input.Content),
		TotalLines:   len(input.Content.Lines),
	}

	err := cc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&lesson).Error; err != nil {
			return err
		}
		return tx.Model(&course).Update("total_lessons", gorm.Expr("total_lessons + 1")).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not create lesson")
	}

	return utils.Created(c, lesson)
}

type LessonSummary struct {
	ID           string    `json:"id"`
	CourseID     string    `json:"course_id"`
	LessonNumber int       `json:"lesson_number"`
	Title        string    `json:"title"`
	TotalLines   int       `json:"total_lines"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// GetCourseLessons lists a course's lessons without their content payloads.
func (cc *CourseController) GetCourseLessons(c *fiber.Ctx) error {
	courseID := c.Params("id")

	var course models.Course
	if err := cc.DB.First(&course, "id = ?", courseID).Error; err != nil {
		return utils.NotFound(c, "Course not found")
	}

	var lessons []LessonSummary
	err := cc.DB.Model(&models.Lesson{}).
		Select("id, course_id, lesson_number, title, total_lines, created_at, updated_at").
		Where("course_id = ?", courseID).
		Order("lesson_number").
		Scan(&lessons).Error
	if err != nil {
		return utils.InternalServerError(c, "Could not load lessons")
	}

	return utils.Success(c, fiber.StatusOK, lessons)
}

// GetLesson returns a lesson including its content.
func (cc *CourseController) GetLesson(c *fiber.Ctx) error {
	var lesson models.Lesson
	err := cc.DB.Where("id = ? AND course_id = ?", c.Params("lesson_id"), c.Params("id")).
		First(&lesson).Error
	if err != nil {
		return utils.NotFound(c, "Lesson not found")
	}
	return utils.Success(c, fiber.StatusOK, lesson)
}

type LessonUpdateInput struct {
	LessonNumber *int                  `json:"lesson_number"`
	Title        *string               `json:"title"`
	Content      *models.LessonContent `json:"content"`
}

// UpdateLesson applies a partial lesson update, recounting total lines when
// the content changes.
func (cc *CourseController) UpdateLesson(c *fiber.Ctx) error {
	var lesson models.Lesson
	err := cc.DB.Where("id = ? AND course_id = ?", c.Params("lesson_id"), c.Params("id")).
		First(&lesson).Error
	if err != nil {
		return utils.NotFound(c, "Lesson not found")
	}

	var input LessonUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.LessonNumber != nil {
		lesson.LessonNumber = *input.LessonNumber
	}
	if input.Title != nil {
		lesson.Title = *input.Title
	}
	if input.Content != nil {
		lesson.Content = datatypes.NewJSONType(*input.Content)
		lesson.TotalLines = len(input.Content.Lines)
	}

	if err := cc.DB.Save(&lesson).Error; err != nil {
		return utils.InternalServerError(c, "Could not update lesson")
	}

	return utils.Success(c, fiber.StatusOK, lesson)
}

type ProgressInput struct {
	CourseID    string `json:"course_id"`
	LessonID    string `json:"lesson_id"`
	CurrentLine int    `json:"current_line"`
	StudyTime   int    `json:"study_time"`
	IsCompleted bool   `json:"is_completed"`
}

// UpdateProgress records a study event: upserts the progress row for the
// lesson and folds the study-time delta into the user's stats. The progress
// write and the stats update commit in one transaction.
func (cc *CourseController) UpdateProgress(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var input ProgressInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.CurrentLine < 0 {
		return utils.BadRequest(c, "Current line cannot be negative")
	}
	if input.StudyTime < 0 {
		return utils.BadRequest(c, "Study time cannot be negative")
	}

	var course models.Course
	if err := cc.DB.First(&course, "id = ?", input.CourseID).Error; err != nil {
		return utils.NotFound(c, "Course not found")
	}
	var lesson models.Lesson
	if err := cc.DB.First(&lesson, "id = ?", input.LessonID).Error; err != nil {
		return utils.NotFound(c, "Lesson not found")
	}
	if input.CurrentLine > lesson.TotalLines {
		return utils.BadRequest(c, "Current line exceeds lesson length")
	}

	now := time.Now()
	var progress models.UserLearningProgress

	err := cc.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND course_id = ? AND lesson_id = ?",
			userID, input.CourseID, input.LessonID).First(&progress).Error

		wasCompleted := progress.IsCompleted

		switch {
		case err == nil:
			progress.CurrentLine = input.CurrentLine
			progress.StudyTime += input.StudyTime
			progress.IsCompleted = input.IsCompleted
			progress.LastStudiedAt = &now
			if err := tx.Save(&progress).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			progress = models.UserLearningProgress{
				ID:            utils.NewID("progress"),
				UserID:        userID,
				CourseID:      input.CourseID,
				LessonID:      input.LessonID,
				CurrentLine:   input.CurrentLine,
				StudyTime:     input.StudyTime,
				IsCompleted:   input.IsCompleted,
				LastStudiedAt: &now,
			}
			if err := tx.Create(&progress).Error; err != nil {
				return err
			}
		default:
			return err
		}

		newlyCompleted := input.IsCompleted && !wasCompleted
		_, err = stats.ApplyStudyDeltaTx(tx, userID, input.StudyTime, now, newlyCompleted)
		return err
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not update progress")
	}

	return utils.Created(c, progress)
}

// GetCourseProgress lists the user's progress rows for one course.
func (cc *CourseController) GetCourseProgress(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	courseID := c.Params("id")

	var course models.Course
	if err := cc.DB.First(&course, "id = ?", courseID).Error; err != nil {
		return utils.NotFound(c, "Course not found")
	}

	var records []models.UserLearningProgress
	err := cc.DB.Where("user_id = ? AND course_id = ?", userID, courseID).Find(&records).Error
	if err != nil {
		return utils.InternalServerError(c, "Could not load progress")
	}

	return utils.Success(c, fiber.StatusOK, records)
}

// GetLatestProgress returns the most recently studied lesson with its course
// and lesson data, for the "continue studying" entry point.
func (cc *CourseController) GetLatestProgress(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var progress models.UserLearningProgress
	err := cc.DB.Where("user_id = ?", userID).
		Order("last_studied_at DESC").First(&progress).Error
	if err != nil {
		return utils.NotFound(c, "No learning progress yet")
	}

	var course models.Course
	var lesson models.Lesson
	if err := cc.DB.First(&course, "id = ?", progress.CourseID).Error; err != nil {
		return utils.NotFound(c, "Course not found")
	}
	if err := cc.DB.First(&lesson, "id = ?", progress.LessonID).Error; err != nil {
		return utils.NotFound(c, "Lesson not found")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"id":              progress.ID,
		"user_id":         progress.UserID,
		"course_id":       progress.CourseID,
		"lesson_id":       progress.LessonID,
		"current_line":    progress.CurrentLine,
		"is_completed":    progress.IsCompleted,
		"last_studied_at": progress.LastStudiedAt,
		"study_time":      progress.StudyTime,
		"course":          course,
		"lesson":          lesson,
	})
}
