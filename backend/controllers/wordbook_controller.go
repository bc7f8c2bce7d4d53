package controllers

import (
	"strconv"
	"time"

	"github.com/wh19910805/WordTap/backend/config"
	"github.com/wh19910805/WordTap/backend/middleware"
	"github.com/wh19910805/WordTap/backend/models"
	"github.com/wh19910805/WordTap/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type WordBookController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewWordBookController(db *gorm.DB, cfg *config.Config) *WordBookController {
	return &WordBookController{DB: db, Cfg: cfg}
}

func pageParams(c *fiber.Ctx) (page, size int) {
	page, _ = strconv.Atoi(c.Query("page", "1"))
	size, _ = strconv.Atoi(c.Query("size", "20"))
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 20
	}
	return page, size
}

// GetWordBook lists the user's word book, newest first, with optional word
// search.
func (wc *WordBookController) GetWordBook(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	page, size := pageParams(c)

	query := wc.DB.Model(&models.UserWordBook{}).Where("user_id = ?", userID)
	if search := c.Query("search"); search != "" {
		query = query.Where("word LIKE ?", "%"+search+"%")
	}

	var total int64
	query.Count(&total)

	var items []models.UserWordBook
	err := query.Order("created_at DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&items).Error
	if err != nil {
		return utils.InternalServerError(c, "Could not load word book")
	}

	return utils.Paginate(c, items, total, page, size)
}

type WordBookInput struct {
	Word         string `json:"word"`
	Phonetic     string `json:"phonetic"`
	Definition   string `json:"definition"`
	Example      string `json:"example"`
	PartOfSpeech string `json:"part_of_speech"`
	Tags         string `json:"tags"`
}

// AddWord puts a word into the word book. Adding a word that is already
// there returns the existing record unchanged.
func (wc *WordBookController) AddWord(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var input WordBookInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Word == "" {
		return utils.BadRequest(c, "Word is required")
	}

	var existing models.UserWordBook
	err := wc.DB.Where("user_id = ? AND word = ?", userID, input.Word).First(&existing).Error
	if err == nil {
		return utils.Success(c, fiber.StatusOK, existing)
	}

	word := models.UserWordBook{
		ID:           utils.NewID("word"),
		UserID:       userID,
		Word:         input.Word,
		Phonetic:     input.Phonetic,
		Definition:   input.Definition,
		Example:      input.Example,
		PartOfSpeech: input.PartOfSpeech,
		Tags:         input.Tags,
		Frequency:    1,
	}
	if err := wc.DB.Create(&word).Error; err != nil {
		return utils.InternalServerError(c, "Could not add word")
	}

	return utils.Created(c, word)
}

// GetWord returns one word-book entry.
func (wc *WordBookController) GetWord(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var word models.UserWordBook
	err := wc.DB.Where("id = ? AND user_id = ?", c.Params("id"), userID).First(&word).Error
	if err != nil {
		return utils.NotFound(c, "Word not found")
	}

	return utils.Success(c, fiber.StatusOK, word)
}

type WordBookUpdateInput struct {
	Phonetic         *string `json:"phonetic"`
	Definition       *string `json:"definition"`
	Example          *string `json:"example"`
	PartOfSpeech     *string `json:"part_of_speech"`
	Tags             *string `json:"tags"`
	Frequency        *int    `json:"frequency"`
	ProficiencyLevel *int    `json:"proficiency_level"`
}

// UpdateWord applies a partial update to a word-book entry and stamps the
// review time when the proficiency level moves.
func (wc *WordBookController) UpdateWord(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var word models.UserWordBook
	err := wc.DB.Where("id = ? AND user_id = ?", c.Params("id"), userID).First(&word).Error
	if err != nil {
		return utils.NotFound(c, "Word not found")
	}

	var input WordBookUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Phonetic != nil {
		word.Phonetic = *input.Phonetic
	}
	if input.Definition != nil {
		word.Definition = *input.Definition
	}
	if input.Example != nil {
		word.Example = *input.Example
	}
	if input.PartOfSpeech != nil {
		word.PartOfSpeech = *input.PartOfSpeech
	}
	if input.Tags != nil {
		word.Tags = *input.Tags
	}
	if input.Frequency != nil {
		word.Frequency = *input.Frequency
	}
	if input.ProficiencyLevel != nil {
		word.ProficiencyLevel = *input.ProficiencyLevel
		now := time.Now()
		word.LastReviewedAt = &now
	}

	if err := wc.DB.Save(&word).Error; err != nil {
		return utils.InternalServerError(c, "Could not update word")
	}

	return utils.Success(c, fiber.StatusOK, word)
}

// DeleteWord removes a word-book entry.
func (wc *WordBookController) DeleteWord(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var word models.UserWordBook
	err := wc.DB.Where("id = ? AND user_id = ?", c.Params("id"), userID).First(&word).Error
	if err != nil {
		return utils.NotFound(c, "Word not found")
	}

	if err := wc.DB.Delete(&word).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete word")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "Word deleted"})
}

// GetWrongWords lists the user's wrong-word book, most recent mistakes first.
func (wc *WordBookController) GetWrongWords(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	page, size := pageParams(c)

	query := wc.DB.Model(&models.UserWrongWord{}).Where("user_id = ?", userID)
	if search := c.Query("search"); search != "" {
		query = query.Where("word LIKE ?", "%"+search+"%")
	}
	if reviewed := c.Query("is_reviewed"); reviewed != "" {
		query = query.Where("is_reviewed = ?", reviewed == "true")
	}

	var total int64
	query.Count(&total)

	var items []models.UserWrongWord
	err := query.Order("last_wrong_at DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&items).Error
	if err != nil {
		return utils.InternalServerError(c, "Could not load wrong words")
	}

	return utils.Paginate(c, items, total, page, size)
}

type WrongWordInput struct {
	Word          string `json:"word"`
	QuestionType  string `json:"question_type"`
	CourseID      string `json:"course_id"`
	LessonID      string `json:"lesson_id"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation"`
}

// AddWrongWord records a mistake. Repeating the same word and question type
// bumps the wrong count and reopens the record for review.
func (wc *WordBookController) AddWrongWord(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var input WrongWordInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Word == "" || input.QuestionType == "" || input.CorrectAnswer == "" {
		return utils.BadRequest(c, "Word, question type and correct answer are required")
	}

	var existing models.UserWrongWord
	err := wc.DB.Where("user_id = ? AND word = ? AND question_type = ?",
		userID, input.Word, input.QuestionType).First(&existing).Error
	if err == nil {
		existing.WrongCount++
		existing.LastWrongAt = time.Now()
		existing.IsReviewed = false
		existing.UserAnswer = input.UserAnswer
		if err := wc.DB.Save(&existing).Error; err != nil {
			return utils.InternalServerError(c, "Could not update wrong word")
		}
		return utils.Success(c, fiber.StatusOK, existing)
	}

	wrongWord := models.UserWrongWord{
		ID:            utils.NewID("wrong"),
		UserID:        userID,
		Word:          input.Word,
		QuestionType:  input.QuestionType,
		CourseID:      input.CourseID,
		LessonID:      input.LessonID,
		UserAnswer:    input.UserAnswer,
		CorrectAnswer: input.CorrectAnswer,
		Explanation:   input.Explanation,
		WrongCount:    1,
		LastWrongAt:   time.Now(),
	}
	if err := wc.DB.Create(&wrongWord).Error; err != nil {
		return utils.InternalServerError(c, "Could not add wrong word")
	}

	return utils.Created(c, wrongWord)
}

// GetWrongWord returns one wrong-word entry.
func (wc *WordBookController) GetWrongWord(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var wrongWord models.UserWrongWord
	err := wc.DB.Where("id = ? AND user_id = ?", c.Params("id"), userID).First(&wrongWord).Error
	if err != nil {
		return utils.NotFound(c, "Wrong word not found")
	}

	return utils.Success(c, fiber.StatusOK, wrongWord)
}

type WrongWordUpdateInput struct {
	UserAnswer    *string `json:"user_answer"`
	CorrectAnswer *string `json:"correct_answer"`
	Explanation   *string `json:"explanation"`
	IsReviewed    *bool   `json:"is_reviewed"`
}

// UpdateWrongWord applies a partial update to a wrong-word entry.
func (wc *WordBookController) UpdateWrongWord(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var wrongWord models.UserWrongWord
	err := wc.DB.Where("id = ? AND user_id = ?", c.Params("id"), userID).First(&wrongWord).Error
	if err != nil {
		return utils.NotFound(c, "Wrong word not found")
	}

	var input WrongWordUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.UserAnswer != nil {
		wrongWord.UserAnswer = *input.UserAnswer
	}
	if input.CorrectAnswer != nil {
		wrongWord.CorrectAnswer = *input.CorrectAnswer
	}
	if input.Explanation != nil {
		wrongWord.Explanation = *input.Explanation
	}
	if input.IsReviewed != nil {
		wrongWord.IsReviewed = *input.IsReviewed
	}

	if err := wc.DB.Save(&wrongWord).Error; err != nil {
		return utils.InternalServerError(c, "Could not update wrong word")
	}

	return utils.Success(c, fiber.StatusOK, wrongWord)
}

// DeleteWrongWord removes a wrong-word entry.
func (wc *WordBookController) DeleteWrongWord(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var wrongWord models.UserWrongWord
	err := wc.DB.Where("id = ? AND user_id = ?", c.Params("id"), userID).First(&wrongWord).Error
	if err != nil {
		return utils.NotFound(c, "Wrong word not found")
	}

	if err := wc.DB.Delete(&wrongWord).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete wrong word")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "Wrong word deleted"})
}

// MarkWrongWordReviewed flags a wrong word as reviewed.
func (wc *WordBookController) MarkWrongWordReviewed(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var wrongWord models.UserWrongWord
	err := wc.DB.Where("id = ? AND user_id = ?", c.Params("id"), userID).First(&wrongWord).Error
	if err != nil {
		return utils.NotFound(c, "Wrong word not found")
	}

	wrongWord.IsReviewed = true
	if err := wc.DB.Save(&wrongWord).Error; err != nil {
		return utils.InternalServerError(c, "Could not mark wrong word reviewed")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "Wrong word marked as reviewed"})
}

// GetWordStats returns the word book and wrong-word book counters.
func (wc *WordBookController) GetWordStats(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var wordBookCount, wrongWordCount, pendingReviewCount int64
	wc.DB.Model(&models.UserWordBook{}).Where("user_id = ?", userID).Count(&wordBookCount)
	wc.DB.Model(&models.UserWrongWord{}).Where("user_id = ?", userID).Count(&wrongWordCount)
	wc.DB.Model(&models.UserWrongWord{}).Where("user_id = ? AND is_reviewed = ?", userID, false).
		Count(&pendingReviewCount)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"word_book_count":      wordBookCount,
		"wrong_word_count":     wrongWordCount,
		"pending_review_count": pendingReviewCount,
	})
}
