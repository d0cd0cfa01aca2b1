package models

import (
	"time"
)

// ProfileRecord is the Postgres row backing a UserProfile, keyed by the
// authenticated user id. Columns are snake_case; the camelCase↔snake_case
// translation lives in the remote storage backend.
type ProfileRecord struct {
	ID               string    `gorm:"primaryKey;type:uuid" json:"id"`
	DisplayName      string    `gorm:"column:display_name;not null" json:"display_name"`
	AvatarURL        *string   `gorm:"column:avatar_url" json:"avatar_url,omitempty"`
	AgeRange         *string   `gorm:"column:age_range;type:varchar(16)" json:"age_range,omitempty"`
	Gender           *string   `gorm:"type:varchar(16)" json:"gender,omitempty"`
	Barrio           *string   `gorm:"type:varchar(32)" json:"barrio,omitempty"`
	ProfileCompleted bool      `gorm:"column:profile_completed;default:false" json:"profile_completed"`
	CreatedAt        time.Time `gorm:"column:created_at" json:"created_at"`
	LastLoginAt      time.Time `gorm:"column:last_login_at" json:"last_login_at"`
}

// TableName maps to the external "profiles" record.
func (ProfileRecord) TableName() string { return "profiles" }

// ProgressRecord is the Postgres row backing GameProgress, one per user.
// Badge/game/mission aggregates are JSONB columns matching the shapes the
// app persists on-device, so a migrated record is byte-compatible.
type ProgressRecord struct {
	UserID         string              `gorm:"primaryKey;column:user_id;type:uuid" json:"user_id"`
	Odisea2XP      int                 `gorm:"column:odisea2xp;default:0" json:"odisea2xp"`
	Level          int                 `gorm:"default:1" json:"level"`
	Coins          int                 `gorm:"default:0" json:"coins"`
	Badges         []Badge             `gorm:"type:jsonb;serializer:json" json:"badges"`
	GamesPlayed    []GameRecord        `gorm:"column:games_played;type:jsonb;serializer:json" json:"games_played"`
	DailyMissions  *DailyMissionsState `gorm:"column:daily_missions;type:jsonb;serializer:json" json:"daily_missions,omitempty"`
	UnlockedSounds []string            `gorm:"column:unlocked_sounds;type:jsonb;serializer:json" json:"unlocked_sounds,omitempty"`
	UpdatedAt      time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName maps to the external "progress" record.
func (ProgressRecord) TableName() string { return "progress" }

// User is an authentication account. PasswordHash is nil for accounts
// created through OAuth or a magic link.
type User struct {
	ID           string     `gorm:"primaryKey;type:uuid" json:"id"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash *string    `gorm:"column:password_hash" json:"-"`
	Provider     string     `gorm:"type:varchar(16);default:'email'" json:"provider"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	LastSignInAt *time.Time `gorm:"column:last_sign_in_at" json:"last_sign_in_at,omitempty"`
}
