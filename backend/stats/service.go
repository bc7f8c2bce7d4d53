package stats

import (
	"errors"
	"time"

	"github.com/wh19910805/WordTap/backend/models"
	"github.com/wh19910805/WordTap/backend/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service owns the stats row lifecycle. Every mutation runs in a transaction
// and takes a row lock on the stats record first, so concurrent study events
// from the same user serialize instead of losing counter updates.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// GetOrCreate loads the user's stats row under a row lock, creating it with
// zeroed counters when missing. Must be called inside a transaction.
func GetOrCreate(tx *gorm.DB, userID string) (*models.UserStats, error) {
	var st models.UserStats
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).First(&st).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		st = models.UserStats{
			ID:     utils.StatsID(userID),
			UserID: userID,
			Level:  1,
		}
		if err := tx.Create(&st).Error; err != nil {
			return nil, err
		}
		return &st, nil
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// Get returns the user's stats, creating the row on first access.
func (s *Service) Get(userID string) (*models.UserStats, error) {
	var out models.UserStats
	err := s.db.Transaction(func(tx *gorm.DB) error {
		st, err := GetOrCreate(tx, userID)
		if err != nil {
			return err
		}
		out = *st
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Recompute rebuilds the stats row from the full set of the user's progress
// records. Used for repair after drift; all-or-nothing.
func (s *Service) Recompute(userID string, now time.Time) (*models.UserStats, error) {
	var out models.UserStats
	err := s.db.Transaction(func(tx *gorm.DB) error {
		st, err := GetOrCreate(tx, userID)
		if err != nil {
			return err
		}

		var records []models.UserLearningProgress
		if err := tx.Where("user_id = ?", userID).Find(&records).Error; err != nil {
			return err
		}

		Recompute(st, records, now)
		if err := tx.Save(st).Error; err != nil {
			return err
		}
		out = *st
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CheckIn records a study day. The second return value reports whether this
// was a new check-in; a repeated call on the same day changes nothing.
func (s *Service) CheckIn(userID string, now time.Time) (*models.UserStats, bool, error) {
	var out models.UserStats
	var isNew bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		st, err := GetOrCreate(tx, userID)
		if err != nil {
			return err
		}

		isNew = ApplyCheckIn(st, now)
		if isNew {
			if err := tx.Save(st).Error; err != nil {
				return err
			}
		}
		out = *st
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &out, isNew, nil
}

// ApplyStudyDeltaTx folds one study event into the stats row: time buckets,
// check-in transition, last study date, and the completed-lesson count when
// the lesson was finished for the first time. Runs inside the caller's
// transaction so the progress write and the stats update commit together.
func ApplyStudyDeltaTx(tx *gorm.DB, userID string, seconds int, eventTime time.Time, newlyCompleted bool) (*models.UserStats, error) {
	st, err := GetOrCreate(tx, userID)
	if err != nil {
		return nil, err
	}

	AddStudyTime(st, seconds, eventTime, eventTime)
	ApplyCheckIn(st, eventTime)

	// Same-day events do not advance the check-in counters but still refresh
	// the last study date.
	studied := eventTime
	st.LastStudyDate = &studied

	if newlyCompleted {
		st.CompletedLessons++
	}

	if err := tx.Save(st).Error; err != nil {
		return nil, err
	}
	return st, nil
}

// ApplyStudyDelta is the standalone form of ApplyStudyDeltaTx.
func (s *Service) ApplyStudyDelta(userID string, seconds int, eventTime time.Time, newlyCompleted bool) (*models.UserStats, error) {
	var out models.UserStats
	err := s.db.Transaction(func(tx *gorm.DB) error {
		st, err := ApplyStudyDeltaTx(tx, userID, seconds, eventTime, newlyCompleted)
		if err != nil {
			return err
		}
		out = *st
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
