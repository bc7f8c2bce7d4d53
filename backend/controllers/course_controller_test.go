package controllers_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createCourse(t *testing.T, token, title string) string {
	t.Helper()

	resp := doRequest(t, "POST", "/api/courses/", token, map[string]string{
		"title":    title,
		"category": "english",
		"level":    "beginner",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	course := data(t, decodeBody(t, resp))
	return course["id"].(string)
}

func createLesson(t *testing.T, token, courseID string, lines int) string {
	t.Helper()

	content := map[string]interface{}{"lines": []map[string]string{}}
	for i := 0; i < lines; i++ {
		content["lines"] = append(content["lines"].([]map[string]string), map[string]string{
			"text":        "Hello world",
			"translation": "你好，世界",
		})
	}

	resp := doRequest(t, "POST", "/api/courses/"+courseID+"/lessons", token, map[string]interface{}{
		"course_id":     courseID,
		"lesson_number": 1,
		"title":         "Lesson 1",
		"content":       content,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	lesson := data(t, decodeBody(t, resp))
	assert.Equal(t, float64(lines), lesson["total_lines"])
	return lesson["id"].(string)
}

func TestCreateAndGetCourse(t *testing.T) {
	token := registerUser(t, "course_owner")
	courseID := createCourse(t, token, "New Concept English")

	resp := doRequest(t, "GET", "/api/courses/"+courseID, token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	course := data(t, decodeBody(t, resp))
	assert.Equal(t, "New Concept English", course["title"])
	assert.Equal(t, true, course["is_active"])
}

func TestCreateCourseRequiresTitle(t *testing.T) {
	token := registerUser(t, "course_notitle")

	resp := doRequest(t, "POST", "/api/courses/", token, map[string]string{
		"category": "english",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestMyCourses(t *testing.T) {
	token := registerUser(t, "mycourse_user")
	courseID := createCourse(t, token, "My Course")

	resp := doRequest(t, "POST", "/api/courses/my-courses", token, map[string]string{
		"course_id": courseID,
		"tags":      "daily",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// Adding the same course twice conflicts
	resp = doRequest(t, "POST", "/api/courses/my-courses", token, map[string]string{
		"course_id": courseID,
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// Unknown course is a 404
	resp = doRequest(t, "POST", "/api/courses/my-courses", token, map[string]string{
		"course_id": "course_missing",
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doRequest(t, "GET", "/api/courses/my-courses", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	result := decodeBody(t, resp)
	items := result["data"].([]interface{})
	require.Len(t, items, 1)
	entry := items[0].(map[string]interface{})
	assert.Equal(t, "daily", entry["tags"])

	resp = doRequest(t, "DELETE", "/api/courses/my-courses/"+courseID, token, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestLessonListingExcludesContent(t *testing.T) {
	token := registerUser(t, "lesson_lister")
	courseID := createCourse(t, token, "Lesson Course")
	createLesson(t, token, courseID, 2)

	resp := doRequest(t, "GET", "/api/courses/"+courseID+"/lessons", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decodeBody(t, resp)
	items := result["data"].([]interface{})
	require.Len(t, items, 1)
	lesson := items[0].(map[string]interface{})
	assert.Equal(t, float64(2), lesson["total_lines"])
	_, hasContent := lesson["content"]
	assert.False(t, hasContent)
}

func TestUpdateProgressDrivesStats(t *testing.T) {
	token := registerUser(t, "studier")
	courseID := createCourse(t, token, "Study Course")
	lessonID := createLesson(t, token, courseID, 3)

	resp := doRequest(t, "POST", "/api/courses/progress", token, map[string]interface{}{
		"course_id":    courseID,
		"lesson_id":    lessonID,
		"current_line": 3,
		"study_time":   120,
		"is_completed": true,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	progress := data(t, decodeBody(t, resp))
	assert.Equal(t, float64(3), progress["current_line"])
	assert.Equal(t, float64(120), progress["study_time"])
	assert.Equal(t, true, progress["is_completed"])

	resp = doRequest(t, "GET", "/api/users/me/stats", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	stats := data(t, decodeBody(t, resp))
	assert.Equal(t, float64(120), stats["study_time_today"])
	assert.Equal(t, float64(120), stats["study_time_total"])
	assert.Equal(t, float64(1), stats["completed_lessons"])
	assert.Equal(t, float64(1), stats["streak"])
	assert.Equal(t, float64(1), stats["total_check_in"])
	assert.NotNil(t, stats["last_study_date"])

	// A second study event on the same lesson accumulates time but keeps
	// the completed-lesson count at one.
	resp = doRequest(t, "POST", "/api/courses/progress", token, map[string]interface{}{
		"course_id":    courseID,
		"lesson_id":    lessonID,
		"current_line": 3,
		"study_time":   60,
		"is_completed": true,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doRequest(t, "GET", "/api/users/me/stats", token, nil)
	stats = data(t, decodeBody(t, resp))
	assert.Equal(t, float64(180), stats["study_time_today"])
	assert.Equal(t, float64(180), stats["study_time_total"])
	assert.Equal(t, float64(1), stats["completed_lessons"])
	assert.Equal(t, float64(1), stats["total_check_in"])
}

func TestUpdateProgressValidation(t *testing.T) {
	token := registerUser(t, "validator")
	courseID := createCourse(t, token, "Validation Course")
	lessonID := createLesson(t, token, courseID, 2)

	resp := doRequest(t, "POST", "/api/courses/progress", token, map[string]interface{}{
		"course_id":    courseID,
		"lesson_id":    lessonID,
		"current_line": -1,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, "POST", "/api/courses/progress", token, map[string]interface{}{
		"course_id":    courseID,
		"lesson_id":    lessonID,
		"current_line": 1,
		"study_time":   -5,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, "POST", "/api/courses/progress", token, map[string]interface{}{
		"course_id":    courseID,
		"lesson_id":    lessonID,
		"current_line": 5,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, "POST", "/api/courses/progress", token, map[string]interface{}{
		"course_id":    "course_missing",
		"lesson_id":    lessonID,
		"current_line": 1,
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetCourseProgress(t *testing.T) {
	token := registerUser(t, "progress_reader")
	courseID := createCourse(t, token, "Progress Course")
	lessonID := createLesson(t, token, courseID, 2)

	resp := doRequest(t, "POST", "/api/courses/progress", token, map[string]interface{}{
		"course_id":    courseID,
		"lesson_id":    lessonID,
		"current_line": 1,
		"study_time":   30,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doRequest(t, "GET", "/api/courses/"+courseID+"/progress", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	result := decodeBody(t, resp)
	items := result["data"].([]interface{})
	require.Len(t, items, 1)
	row := items[0].(map[string]interface{})
	assert.Equal(t, lessonID, row["lesson_id"])
	assert.Equal(t, float64(1), row["current_line"])
}
