package models

// Partial-update shapes for the settings categories. Nil fields leave the
// stored value unchanged; set fields overwrite it. This preserves the
// merge-by-key update semantics per category.

type AppearanceUpdate struct {
	Theme        *string `json:"theme"`
	FontFamily   *string `json:"font_family"`
	FontSize     *int    `json:"font_size"`
	PhoneticSize *string `json:"phonetic_size"`
}

func (u *AppearanceUpdate) Apply(s *AppearanceSettings) {
	if u.Theme != nil {
		s.Theme = *u.Theme
	}
	if u.FontFamily != nil {
		s.FontFamily = *u.FontFamily
	}
	if u.FontSize != nil {
		s.FontSize = *u.FontSize
	}
	if u.PhoneticSize != nil {
		s.PhoneticSize = *u.PhoneticSize
	}
}

type QuizUpdate struct {
	IgnoreCase           *bool   `json:"ignore_case"`
	AutoNextAfterCorrect *bool   `json:"auto_next_after_correct"`
	InputBoxStyle        *string `json:"input_box_style"`
	AutoShowAnswer       *string `json:"auto_show_answer"`
	RequirePunctuation   *bool   `json:"require_punctuation"`
	RequireSpace         *bool   `json:"require_space"`
}

func (u *QuizUpdate) Apply(s *QuizSettings) {
	if u.IgnoreCase != nil {
		s.IgnoreCase = *u.IgnoreCase
	}
	if u.AutoNextAfterCorrect != nil {
		s.AutoNextAfterCorrect = *u.AutoNextAfterCorrect
	}
	if u.InputBoxStyle != nil {
		s.InputBoxStyle = *u.InputBoxStyle
	}
	if u.AutoShowAnswer != nil {
		s.AutoShowAnswer = *u.AutoShowAnswer
	}
	if u.RequirePunctuation != nil {
		s.RequirePunctuation = *u.RequirePunctuation
	}
	if u.RequireSpace != nil {
		s.RequireSpace = *u.RequireSpace
	}
}

type PlaybackUpdate struct {
	PlaybackSpeed     *float64 `json:"playback_speed"`
	PlaybackCount     *int     `json:"playback_count"`
	PlaybackInterval  *int     `json:"playback_interval"`
	LoopCourse        *bool    `json:"loop_course"`
	AutoPlayAudio     *bool    `json:"auto_play_audio"`
	PronunciationType *int     `json:"pronunciation_type"`
	Mute              *bool    `json:"mute"`
}

func (u *PlaybackUpdate) Apply(s *PlaybackSettings) {
	if u.PlaybackSpeed != nil {
		s.PlaybackSpeed = *u.PlaybackSpeed
	}
	if u.PlaybackCount != nil {
		s.PlaybackCount = *u.PlaybackCount
	}
	if u.PlaybackInterval != nil {
		s.PlaybackInterval = *u.PlaybackInterval
	}
	if u.LoopCourse != nil {
		s.LoopCourse = *u.LoopCourse
	}
	if u.AutoPlayAudio != nil {
		s.AutoPlayAudio = *u.AutoPlayAudio
	}
	if u.PronunciationType != nil {
		s.PronunciationType = *u.PronunciationType
	}
	if u.Mute != nil {
		s.Mute = *u.Mute
	}
}

type ListeningUpdate struct {
	HideAnswer    *bool `json:"hide_answer"`
	AutoSkipNext  *bool `json:"auto_skip_next"`
	KeypressSound *bool `json:"keypress_sound"`
}

func (u *ListeningUpdate) Apply(s *ListeningSettings) {
	if u.HideAnswer != nil {
		s.HideAnswer = *u.HideAnswer
	}
	if u.AutoSkipNext != nil {
		s.AutoSkipNext = *u.AutoSkipNext
	}
	if u.KeypressSound != nil {
		s.KeypressSound = *u.KeypressSound
	}
}

type SpeakingUpdate struct {
	DisplayMode        *string `json:"display_mode"`
	ShowChinese        *bool   `json:"show_chinese"`
	DefaultShowEnglish *bool   `json:"default_show_english"`
}

func (u *SpeakingUpdate) Apply(s *SpeakingSettings) {
	if u.DisplayMode != nil {
		s.DisplayMode = *u.DisplayMode
	}
	if u.ShowChinese != nil {
		s.ShowChinese = *u.ShowChinese
	}
	if u.DefaultShowEnglish != nil {
		s.DefaultShowEnglish = *u.DefaultShowEnglish
	}
}

type NotificationUpdate struct {
	DailyReminder *bool   `json:"daily_reminder"`
	ReminderTime  *string `json:"reminder_time"`
}

func (u *NotificationUpdate) Apply(s *NotificationSettings) {
	if u.DailyReminder != nil {
		s.DailyReminder = *u.DailyReminder
	}
	if u.ReminderTime != nil {
		s.ReminderTime = *u.ReminderTime
	}
}

type SyncUpdate struct {
	AutoSync *bool `json:"auto_sync"`
	WifiOnly *bool `json:"wifi_only"`
}

func (u *SyncUpdate) Apply(s *SyncSettings) {
	if u.AutoSync != nil {
		s.AutoSync = *u.AutoSync
	}
	if u.WifiOnly != nil {
		s.WifiOnly = *u.WifiOnly
	}
}

type UserSettingsUpdate struct {
	Appearance    *AppearanceUpdate   `json:"appearance"`
	Quiz          *QuizUpdate         `json:"quiz"`
	Playback      *PlaybackUpdate     `json:"playback"`
	Listening     *ListeningUpdate    `json:"listening"`
	Speaking      *SpeakingUpdate     `json:"speaking"`
	Notifications *NotificationUpdate `json:"notifications"`
	Sync          *SyncUpdate         `json:"sync"`
}
