package models

import (
	"time"

	"gorm.io/datatypes"
)

// Settings categories are fixed, typed sub-records stored as JSON columns.
// Partial updates merge field-wise into the stored category instead of
// replacing it wholesale.

type AppearanceSettings struct {
	Theme        string `json:"theme"`
	FontFamily   string `json:"font_family"`
	FontSize     int    `json:"font_size"`
	PhoneticSize string `json:"phonetic_size"`
}

type QuizSettings struct {
	IgnoreCase           bool   `json:"ignore_case"`
	AutoNextAfterCorrect bool   `json:"auto_next_after_correct"`
	InputBoxStyle        string `json:"input_box_style"`
	AutoShowAnswer       string `json:"auto_show_answer"`
	RequirePunctuation   bool   `json:"require_punctuation"`
	RequireSpace         bool   `json:"require_space"`
}

type PlaybackSettings struct {
	PlaybackSpeed     float64 `json:"playback_speed"`
	PlaybackCount     int     `json:"playback_count"`
	PlaybackInterval  int     `json:"playback_interval"`
	LoopCourse        bool    `json:"loop_course"`
	AutoPlayAudio     bool    `json:"auto_play_audio"`
	PronunciationType int     `json:"pronunciation_type"`
	Mute              bool    `json:"mute"`
}

type ListeningSettings struct {
	HideAnswer    bool `json:"hide_answer"`
	AutoSkipNext  bool `json:"auto_skip_next"`
	KeypressSound bool `json:"keypress_sound"`
}

type SpeakingSettings struct {
	DisplayMode        string `json:"display_mode"`
	ShowChinese        bool   `json:"show_chinese"`
	DefaultShowEnglish bool   `json:"default_show_english"`
}

type NotificationSettings struct {
	DailyReminder bool   `json:"daily_reminder"`
	ReminderTime  string `json:"reminder_time"`
}

type SyncSettings struct {
	AutoSync bool `json:"auto_sync"`
	WifiOnly bool `json:"wifi_only"`
}

type UserSettings struct {
	ID            string                                   `gorm:"primaryKey;size:100" json:"id"`
	UserID        string                                   `gorm:"size:100;uniqueIndex;not null" json:"user_id"`
	Appearance    datatypes.JSONType[AppearanceSettings]   `json:"appearance"`
	Quiz          datatypes.JSONType[QuizSettings]         `json:"quiz"`
	Playback      datatypes.JSONType[PlaybackSettings]     `json:"playback"`
	Listening     datatypes.JSONType[ListeningSettings]    `json:"listening"`
	Speaking      datatypes.JSONType[SpeakingSettings]     `json:"speaking"`
	Notifications datatypes.JSONType[NotificationSettings] `json:"notifications"`
	Sync          datatypes.JSONType[SyncSettings]         `json:"sync"`
	CreatedAt     time.Time                                `json:"created_at"`
	UpdatedAt     time.Time                                `json:"updated_at"`
}

// DefaultUserSettings mirrors the defaults the client assumes before any
// settings row exists.
func DefaultUserSettings(id, userID string) UserSettings {
	return UserSettings{
		ID:     id,
		UserID: userID,
		Appearance: datatypes.NewJSONType(AppearanceSettings{
			Theme:        "light",
			FontFamily:   "system",
			FontSize:     16,
			PhoneticSize: "medium",
		}),
		Quiz: datatypes.NewJSONType(QuizSettings{
			IgnoreCase:           true,
			AutoNextAfterCorrect: true,
			InputBoxStyle:        "word-length",
			AutoShowAnswer:       "never",
			RequirePunctuation:   true,
			RequireSpace:         true,
		}),
		Playback: datatypes.NewJSONType(PlaybackSettings{
			PlaybackSpeed:     1.0,
			PlaybackCount:     1,
			AutoPlayAudio:     true,
			PronunciationType: 1,
		}),
		Listening: datatypes.NewJSONType(ListeningSettings{
			KeypressSound: true,
		}),
		Speaking: datatypes.NewJSONType(SpeakingSettings{
			DisplayMode:        "english",
			ShowChinese:        true,
			DefaultShowEnglish: true,
		}),
		Notifications: datatypes.NewJSONType(NotificationSettings{
			ReminderTime: "20:00",
		}),
		Sync: datatypes.NewJSONType(SyncSettings{
			AutoSync: true,
		}),
	}
}
