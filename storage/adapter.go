// Package storage mediates all reads and writes of user profile and game
// progress data. Two backends implement the same Adapter contract: a local
// on-device store (two JSON blobs) and a remote Postgres store keyed by the
// authenticated user id. The remote store delegates to the local one until
// a user is signed in, and can migrate local data up exactly once.
package storage

import (
	"context"
	"time"

	"bilboko-doinuak/levels"
	"bilboko-doinuak/models"
)

// Adapter is the capability contract both backends implement identically.
// Reads degrade to defaults on backend failure; writes return errors the
// caller must surface.
type Adapter interface {
	GetProfile(ctx context.Context) (*models.UserProfile, error)
	SaveProfile(ctx context.Context, profile *models.UserProfile) error

	// GetProgress never returns nil progress on a nil error.
	GetProgress(ctx context.Context) (*models.GameProgress, error)
	SaveProgress(ctx context.Context, progress *models.GameProgress) error

	// AddXP adds XP, recomputes the level, unlocks every level-up badge
	// crossed (multi-level jumps included) and persists once.
	AddXP(ctx context.Context, amount int) (*models.GameProgress, error)

	// UnlockBadge is idempotent. When existing is non-nil the badge is
	// granted in place and the caller owns the save.
	UnlockBadge(ctx context.Context, badgeID string, existing *models.GameProgress) error

	// RecordGame appends a record (timestamped here) and unlocks the
	// first_quiz / first_memory badge the first time each type shows up.
	RecordGame(ctx context.Context, record models.GameRecord) error
}

// NowISO is the canonical timestamp format persisted in both backends.
func NowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// grantBadge appends a badge if absent. Reports whether it was added.
func grantBadge(p *models.GameProgress, badgeID string) bool {
	if p.HasBadge(badgeID) {
		return false
	}
	p.Badges = append(p.Badges, models.Badge{ID: badgeID, UnlockedAt: NowISO()})
	return true
}

// applyXP mutates progress for an XP gain: bump total, recompute level,
// grant a badge for every level boundary crossed.
func applyXP(p *models.GameProgress, amount int) {
	oldLevel := p.Level
	p.Odisea2XP += amount
	p.Level = levels.CalculateLevel(p.Odisea2XP)

	if p.Level > oldLevel {
		for _, badgeID := range levels.LevelUpBadges(oldLevel, p.Level) {
			grantBadge(p, badgeID)
		}
	}
}

// applyGameRecord appends a timestamped record and the first-game badge for
// its type, checked by badge absence rather than by counting records.
func applyGameRecord(p *models.GameProgress, record models.GameRecord) {
	record.PlayedAt = NowISO()
	p.GamesPlayed = append(p.GamesPlayed, record)

	switch record.GameType {
	case models.GameTypeQuiz:
		grantBadge(p, levels.BadgeFirstQuiz)
	case models.GameTypeMemory:
		grantBadge(p, levels.BadgeFirstMemory)
	}
}
