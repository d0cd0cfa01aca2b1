package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bilboko-doinuak/models"
)

// RemoteStore keeps profile and progress in per-user Postgres records. It
// delegates to the local backend whenever there is no authenticated user or
// no database is configured; on remote read failures it falls back to the
// local backend's current value, while write failures propagate.
type RemoteStore struct {
	db     *gorm.DB
	userID string
	local  *LocalStore
	log    *zap.Logger
}

// NewRemoteStore builds the remote backend. db may be nil (unconfigured)
// and userID may be empty (anonymous); both cases fall through to local.
func NewRemoteStore(db *gorm.DB, userID string, local *LocalStore, log *zap.Logger) *RemoteStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &RemoteStore{db: db, userID: userID, local: local, log: log}
}

func (s *RemoteStore) remoteReady() bool {
	return s.db != nil && s.userID != ""
}

// GetProfile fetches the user's profile record. Record-not-found means "no
// data yet" and returns nil without error.
func (s *RemoteStore) GetProfile(ctx context.Context) (*models.UserProfile, error) {
	if !s.remoteReady() {
		return s.local.GetProfile(ctx)
	}

	var rec models.ProfileRecord
	err := s.db.WithContext(ctx).First(&rec, "id = ?", s.userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		s.log.Error("remote profile fetch failed, falling back to local", zap.Error(err))
		return s.local.GetProfile(ctx)
	}
	return recordToProfile(&rec), nil
}

// SaveProfile upserts the profile record keyed by user id.
func (s *RemoteStore) SaveProfile(ctx context.Context, profile *models.UserProfile) error {
	if !s.remoteReady() {
		return s.local.SaveProfile(ctx, profile)
	}

	rec := profileToRecord(profile)
	rec.ID = s.userID
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}).
		Create(rec).Error
	if err != nil {
		s.log.Error("remote profile save failed", zap.Error(err))
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// GetProgress fetches the user's progress record, defaulting when absent.
func (s *RemoteStore) GetProgress(ctx context.Context) (*models.GameProgress, error) {
	if !s.remoteReady() {
		return s.local.GetProgress(ctx)
	}

	var rec models.ProgressRecord
	err := s.db.WithContext(ctx).First(&rec, "user_id = ?", s.userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.DefaultProgress(), nil
		}
		s.log.Error("remote progress fetch failed, falling back to local", zap.Error(err))
		return s.local.GetProgress(ctx)
	}
	return recordToProgress(&rec), nil
}

// SaveProgress upserts the progress record keyed by user id.
func (s *RemoteStore) SaveProgress(ctx context.Context, progress *models.GameProgress) error {
	if !s.remoteReady() {
		return s.local.SaveProgress(ctx, progress)
	}

	rec := progressToRecord(s.userID, progress)
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, UpdateAll: true}).
		Create(rec).Error
	if err != nil {
		s.log.Error("remote progress save failed", zap.Error(err))
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}

// AddXP runs the read-modify-write XP cycle against whichever backend is
// active. Last writer wins on genuinely concurrent calls.
func (s *RemoteStore) AddXP(ctx context.Context, amount int) (*models.GameProgress, error) {
	progress, _ := s.GetProgress(ctx)
	applyXP(progress, amount)
	if err := s.SaveProgress(ctx, progress); err != nil {
		return nil, err
	}
	return progress, nil
}

// UnlockBadge grants a badge once; see Adapter.
func (s *RemoteStore) UnlockBadge(ctx context.Context, badgeID string, existing *models.GameProgress) error {
	if existing != nil {
		grantBadge(existing, badgeID)
		return nil
	}

	progress, _ := s.GetProgress(ctx)
	if !grantBadge(progress, badgeID) {
		return nil
	}
	return s.SaveProgress(ctx, progress)
}

// RecordGame appends a game record and any first-game badge, then persists.
func (s *RemoteStore) RecordGame(ctx context.Context, record models.GameRecord) error {
	progress, _ := s.GetProgress(ctx)
	applyGameRecord(progress, record)
	return s.SaveProgress(ctx, progress)
}

// MigrateFromLocal copies local profile/progress into the user's remote
// records, independently and only where no remote record exists yet —
// first writer wins, no merging. Best-effort: every failure is logged and
// swallowed, the user proceeds with whatever backend ends up active.
func (s *RemoteStore) MigrateFromLocal(ctx context.Context) {
	if !s.remoteReady() {
		s.log.Warn("cannot migrate, remote backend not active")
		return
	}

	localProfile, _ := s.local.GetProfile(ctx)
	localProgress, _ := s.local.GetProgress(ctx)

	if localProfile != nil && !s.recordExists(ctx, &models.ProfileRecord{}, "id = ?") {
		s.log.Info("migrating local profile to remote store", zap.String("user_id", s.userID))
		migrated := *localProfile
		migrated.ID = s.userID
		if err := s.SaveProfile(ctx, &migrated); err != nil {
			s.log.Error("profile migration failed", zap.Error(err))
		}
	}

	hasLocalProgress := localProgress.Odisea2XP > 0 || len(localProgress.Badges) > 0
	if hasLocalProgress && !s.recordExists(ctx, &models.ProgressRecord{}, "user_id = ?") {
		s.log.Info("migrating local progress to remote store", zap.String("user_id", s.userID))
		if err := s.SaveProgress(ctx, localProgress); err != nil {
			s.log.Error("progress migration failed", zap.Error(err))
		}
	}
}

func (s *RemoteStore) recordExists(ctx context.Context, model any, cond string) bool {
	err := s.db.WithContext(ctx).Select("1").First(model, cond, s.userID).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Error("remote existence check failed", zap.Error(err))
		}
		return false
	}
	return true
}

func strOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func parseISO(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Now().UTC()
	}
	return t
}

func profileToRecord(p *models.UserProfile) *models.ProfileRecord {
	return &models.ProfileRecord{
		ID:               p.ID,
		DisplayName:      p.DisplayName,
		AvatarURL:        strOrNil(p.AvatarURL),
		AgeRange:         strOrNil(string(p.AgeRange)),
		Gender:           strOrNil(string(p.Gender)),
		Barrio:           strOrNil(string(p.Barrio)),
		ProfileCompleted: p.ProfileCompleted,
		CreatedAt:        parseISO(p.CreatedAt),
		LastLoginAt:      parseISO(p.LastLoginAt),
	}
}

func recordToProfile(r *models.ProfileRecord) *models.UserProfile {
	return &models.UserProfile{
		ID:               r.ID,
		DisplayName:      r.DisplayName,
		AvatarURL:        deref(r.AvatarURL),
		AgeRange:         models.AgeRange(deref(r.AgeRange)),
		Gender:           models.Gender(deref(r.Gender)),
		Barrio:           models.Barrio(deref(r.Barrio)),
		ProfileCompleted: r.ProfileCompleted,
		CreatedAt:        r.CreatedAt.UTC().Format(time.RFC3339),
		LastLoginAt:      r.LastLoginAt.UTC().Format(time.RFC3339),
	}
}

func progressToRecord(userID string, p *models.GameProgress) *models.ProgressRecord {
	return &models.ProgressRecord{
		UserID:         userID,
		Odisea2XP:      p.Odisea2XP,
		Level:          p.Level,
		Coins:          p.Coins,
		Badges:         p.Badges,
		GamesPlayed:    p.GamesPlayed,
		DailyMissions:  p.DailyMissions,
		UnlockedSounds: p.UnlockedSounds,
	}
}

func recordToProgress(r *models.ProgressRecord) *models.GameProgress {
	p := &models.GameProgress{
		Odisea2XP:      r.Odisea2XP,
		Level:          r.Level,
		Coins:          r.Coins,
		Badges:         r.Badges,
		GamesPlayed:    r.GamesPlayed,
		DailyMissions:  r.DailyMissions,
		UnlockedSounds: r.UnlockedSounds,
	}
	p.Normalize()
	return p
}

var _ Adapter = (*RemoteStore)(nil)
