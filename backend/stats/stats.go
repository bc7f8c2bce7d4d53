package stats

import (
	"math"
	"time"

	"github.com/wh19910805/WordTap/backend/models"
)

// Pure aggregation logic over learning-progress records. The database entry
// points live in service.go; everything here works on in-memory values so it
// can be tested without a store.

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween returns the calendar-day difference between a and b. Rounding
// absorbs DST days that are not exactly 24 hours long.
func daysBetween(a, b time.Time) int {
	return int(math.Round(startOfDay(b).Sub(startOfDay(a)).Hours() / 24))
}

// BucketStarts computes the start instants of the today/week/month/year
// buckets relative to now. Weeks start on Monday 00:00.
func BucketStarts(now time.Time) (today, week, month, year time.Time) {
	today = startOfDay(now)
	sinceMonday := (int(now.Weekday()) + 6) % 7
	week = today.AddDate(0, 0, -sinceMonday)
	month = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	year = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	return
}

// Accuracy is correct/(correct+wrong)*100 rounded to two decimals, 0 when
// nothing was answered yet.
func Accuracy(correct, wrong int) float64 {
	total := correct + wrong
	if total == 0 {
		return 0
	}
	return math.Round(float64(correct)/float64(total)*10000) / 100
}

// Recompute rebuilds the derived fields of st from the complete set of the
// user's progress records. Overwrites the time buckets, completed-lesson
// count, check-in count, streak and last study date; fields fed from other
// sources (answers, xp, word count) are untouched. Idempotent for a fixed
// now.
func Recompute(st *models.UserStats, records []models.UserLearningProgress, now time.Time) {
	todayStart, weekStart, monthStart, yearStart := BucketStarts(now)

	var total, today, week, month, year int
	completedLessons := make(map[string]struct{})
	studyDays := make(map[time.Time]struct{})
	var latest *time.Time

	for i := range records {
		r := &records[i]
		total += r.StudyTime

		if r.LastStudiedAt != nil {
			ts := *r.LastStudiedAt
			if !ts.Before(todayStart) {
				today += r.StudyTime
			}
			if !ts.Before(weekStart) {
				week += r.StudyTime
			}
			if !ts.Before(monthStart) {
				month += r.StudyTime
			}
			if !ts.Before(yearStart) {
				year += r.StudyTime
			}
			studyDays[startOfDay(ts)] = struct{}{}
			if latest == nil || ts.After(*latest) {
				latest = &ts
			}
		}

		if r.IsCompleted {
			completedLessons[r.LessonID] = struct{}{}
		}
	}

	st.StudyTimeTotal = total
	st.StudyTimeToday = today
	st.StudyTimeWeek = week
	st.StudyTimeMonth = month
	st.StudyTimeYear = year
	st.CompletedLessons = len(completedLessons)
	st.TotalCheckIn = len(studyDays)

	// Records without a timestamp contribute to the total only; when no
	// record carries one, the streak and last study date stay as they were.
	if latest != nil {
		st.LastStudyDate = latest
		st.Streak = streakEndingAt(studyDays, *latest)
	}
}

// streakEndingAt counts the consecutive-day run of study days ending at last.
func streakEndingAt(studyDays map[time.Time]struct{}, last time.Time) int {
	streak := 0
	for day := startOfDay(last); ; day = day.AddDate(0, 0, -1) {
		if _, ok := studyDays[day]; !ok {
			break
		}
		streak++
	}
	return streak
}

// ApplyCheckIn advances the streak counters for a study event on now's
// calendar day. Returns false when the user already checked in that day, in
// which case nothing changes.
func ApplyCheckIn(st *models.UserStats, now time.Time) bool {
	if st.LastStudyDate != nil {
		gap := daysBetween(*st.LastStudyDate, now)
		switch {
		case gap == 0:
			return false
		case gap == 1:
			st.Streak++
		default:
			st.Streak = 1
		}
	} else {
		// First-ever study event.
		st.Streak = 1
	}

	st.TotalCheckIn++
	checkedIn := now
	st.LastStudyDate = &checkedIn
	return true
}

// AddStudyTime adds a study-time delta to the total and to every bucket the
// event timestamp falls into. This is the cheap per-event path; Recompute is
// the repair path.
func AddStudyTime(st *models.UserStats, seconds int, eventTime, now time.Time) {
	todayStart, weekStart, monthStart, yearStart := BucketStarts(now)

	st.StudyTimeTotal += seconds
	if !eventTime.Before(todayStart) {
		st.StudyTimeToday += seconds
	}
	if !eventTime.Before(weekStart) {
		st.StudyTimeWeek += seconds
	}
	if !eventTime.Before(monthStart) {
		st.StudyTimeMonth += seconds
	}
	if !eventTime.Before(yearStart) {
		st.StudyTimeYear += seconds
	}
}
