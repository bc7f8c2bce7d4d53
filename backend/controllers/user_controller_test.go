package controllers_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStatsStartsZeroed(t *testing.T) {
	token := registerUser(t, "stats_fresh")

	resp := doRequest(t, "GET", "/api/users/me/stats", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	stats := data(t, decodeBody(t, resp))
	assert.Equal(t, float64(0), stats["streak"])
	assert.Equal(t, float64(0), stats["study_time_total"])
	assert.Equal(t, float64(0), stats["accuracy"])
	assert.Equal(t, float64(1), stats["level"])
	assert.Nil(t, stats["last_study_date"])
}

func TestUpdateStatsDerivesAccuracy(t *testing.T) {
	token := registerUser(t, "stats_accuracy")

	resp := doRequest(t, "PUT", "/api/users/me/stats", token, map[string]interface{}{
		"correct_answers": 7,
		"wrong_answers":   3,
		"word_count":      50,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	stats := data(t, decodeBody(t, resp))
	assert.Equal(t, float64(70), stats["accuracy"])
	assert.Equal(t, float64(50), stats["word_count"])

	// One counter alone still recomputes accuracy from both stored values
	resp = doRequest(t, "PUT", "/api/users/me/stats", token, map[string]interface{}{
		"wrong_answers": 7,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	stats = data(t, decodeBody(t, resp))
	assert.Equal(t, float64(50), stats["accuracy"])
}

func TestCheckInTwiceSameDay(t *testing.T) {
	token := registerUser(t, "checkin_user")

	resp := doRequest(t, "POST", "/api/users/me/check-in", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	result := decodeBody(t, resp)
	assert.Equal(t, true, result["is_new_check_in"])
	assert.Equal(t, float64(1), result["streak"])
	assert.Equal(t, float64(1), result["total_check_in"])

	resp = doRequest(t, "POST", "/api/users/me/check-in", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	result = decodeBody(t, resp)
	assert.Equal(t, false, result["is_new_check_in"])
	assert.Equal(t, "Already checked in today", result["message"])
	assert.Equal(t, float64(1), result["streak"])
	assert.Equal(t, float64(1), result["total_check_in"])
}

func TestRecalculateStatsFromProgress(t *testing.T) {
	token := registerUser(t, "recalc_user")
	courseID := createCourse(t, token, "Recalc Course")
	lessonID := createLesson(t, token, courseID, 2)

	resp := doRequest(t, "POST", "/api/courses/progress", token, map[string]interface{}{
		"course_id":    courseID,
		"lesson_id":    lessonID,
		"current_line": 2,
		"study_time":   90,
		"is_completed": true,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// Corrupt a counter, then rebuild from the progress records
	resp = doRequest(t, "PUT", "/api/users/me/stats", token, map[string]interface{}{
		"study_time_total":  9999,
		"completed_lessons": 42,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doRequest(t, "POST", "/api/users/me/stats/recalculate", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	stats := data(t, decodeBody(t, resp))
	assert.Equal(t, float64(90), stats["study_time_total"])
	assert.Equal(t, float64(90), stats["study_time_today"])
	assert.Equal(t, float64(1), stats["completed_lessons"])
	assert.Equal(t, float64(1), stats["total_check_in"])
	assert.Equal(t, float64(1), stats["streak"])
}

func TestHeatmap(t *testing.T) {
	token := registerUser(t, "heatmap_user")
	courseID := createCourse(t, token, "Heatmap Course")
	lessonID := createLesson(t, token, courseID, 2)

	resp := doRequest(t, "POST", "/api/courses/progress", token, map[string]interface{}{
		"course_id":    courseID,
		"lesson_id":    lessonID,
		"current_line": 1,
		"study_time":   30,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doRequest(t, "GET", "/api/users/me/heatmap", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decodeBody(t, resp)
	entries := result["data"].([]interface{})
	require.Len(t, entries, 1)
	entry := entries[0].(map[string]interface{})
	assert.NotEmpty(t, entry["date"])
	assert.Equal(t, float64(1), entry["count"])
}

func TestRecentStudies(t *testing.T) {
	token := registerUser(t, "recent_user")
	courseID := createCourse(t, token, "Recent Course")
	lessonID := createLesson(t, token, courseID, 2)

	resp := doRequest(t, "POST", "/api/courses/progress", token, map[string]interface{}{
		"course_id":    courseID,
		"lesson_id":    lessonID,
		"current_line": 1,
		"study_time":   15,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doRequest(t, "GET", "/api/users/me/recent-studies", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := data(t, decodeBody(t, resp))
	assert.Equal(t, float64(1), result["total"])
	records := result["records"].([]interface{})
	require.Len(t, records, 1)
	record := records[0].(map[string]interface{})
	assert.Equal(t, "Recent Course", record["course_name"])
	assert.Equal(t, "Lesson 1", record["lesson_name"])
}

func TestSettingsDefaultsAndMerge(t *testing.T) {
	token := registerUser(t, "settings_user")

	resp := doRequest(t, "GET", "/api/users/me/settings", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	settings := data(t, decodeBody(t, resp))
	appearance := settings["appearance"].(map[string]interface{})
	assert.Equal(t, "light", appearance["theme"])
	quiz := settings["quiz"].(map[string]interface{})
	assert.Equal(t, true, quiz["ignore_case"])
	playback := settings["playback"].(map[string]interface{})
	assert.Equal(t, float64(1.0), playback["playback_speed"])

	// A partial update touches only the submitted keys
	resp = doRequest(t, "PUT", "/api/users/me/settings", token, map[string]interface{}{
		"appearance": map[string]interface{}{"theme": "dark"},
		"playback":   map[string]interface{}{"playback_speed": 1.5},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	settings = data(t, decodeBody(t, resp))
	appearance = settings["appearance"].(map[string]interface{})
	assert.Equal(t, "dark", appearance["theme"])
	assert.NotEmpty(t, appearance["font_family"])
	playback = settings["playback"].(map[string]interface{})
	assert.Equal(t, float64(1.5), playback["playback_speed"])
	quiz = settings["quiz"].(map[string]interface{})
	assert.Equal(t, true, quiz["ignore_case"])
}

func TestMeWithStats(t *testing.T) {
	token := registerUser(t, "me_stats_user")

	resp := doRequest(t, "GET", "/api/users/me", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := data(t, decodeBody(t, resp))
	user := result["user"].(map[string]interface{})
	assert.Equal(t, "me_stats_user", user["username"])
	stats := result["stats"].(map[string]interface{})
	assert.Equal(t, float64(0), stats["streak"])
}
