package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewID builds a prefixed record ID, e.g. "course_5f3a...". The prefix keeps
// IDs self-describing in logs and foreign keys.
func NewID(prefix string) string {
	return prefix + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// StatsID is the fixed stats row ID for a user.
func StatsID(userID string) string {
	return "stats_" + userID
}
