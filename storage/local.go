package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"bilboko-doinuak/models"
)

// On-device blob names, kept stable across app versions.
const (
	profileBlobName  = "bilboko_doinuak_profile.json"
	progressBlobName = "bilboko_doinuak_progress.json"
)

// LocalStore persists profile and progress as two JSON blobs under a data
// directory. Failed reads degrade to defaults (logged, never fatal); failed
// writes are returned so callers can surface them.
type LocalStore struct {
	dir string
	log *zap.Logger
}

// NewLocalStore builds a local backend rooted at dir.
func NewLocalStore(dir string, log *zap.Logger) *LocalStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &LocalStore{dir: dir, log: log}
}

func (s *LocalStore) profilePath() string  { return filepath.Join(s.dir, profileBlobName) }
func (s *LocalStore) progressPath() string { return filepath.Join(s.dir, progressBlobName) }

// GetProfile returns the stored profile, or nil when absent or unreadable.
func (s *LocalStore) GetProfile(_ context.Context) (*models.UserProfile, error) {
	data, err := os.ReadFile(s.profilePath())
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("failed to read profile blob, treating as empty", zap.Error(err))
		}
		return nil, nil
	}

	var profile models.UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		s.log.Warn("corrupt profile blob, treating as empty", zap.Error(err))
		return nil, nil
	}
	return &profile, nil
}

// SaveProfile writes the profile blob. Write failures are the one class of
// local error that propagates.
func (s *LocalStore) SaveProfile(_ context.Context, profile *models.UserProfile) error {
	if err := s.writeBlob(s.profilePath(), profile); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// GetProgress returns stored progress with missing fields defaulted, or a
// fresh default when absent or unreadable. Never nil.
func (s *LocalStore) GetProgress(_ context.Context) (*models.GameProgress, error) {
	data, err := os.ReadFile(s.progressPath())
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("failed to read progress blob, using defaults", zap.Error(err))
		}
		return models.DefaultProgress(), nil
	}

	var progress models.GameProgress
	if err := json.Unmarshal(data, &progress); err != nil {
		s.log.Warn("corrupt progress blob, using defaults", zap.Error(err))
		return models.DefaultProgress(), nil
	}
	progress.Normalize()
	return &progress, nil
}

// SaveProgress writes the progress blob.
func (s *LocalStore) SaveProgress(_ context.Context, progress *models.GameProgress) error {
	if err := s.writeBlob(s.progressPath(), progress); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}

// AddXP implements the read-modify-write XP cycle against the local blobs.
func (s *LocalStore) AddXP(ctx context.Context, amount int) (*models.GameProgress, error) {
	progress, _ := s.GetProgress(ctx)
	applyXP(progress, amount)
	if err := s.SaveProgress(ctx, progress); err != nil {
		return nil, err
	}
	return progress, nil
}

// UnlockBadge grants a badge once. With a non-nil existing progress the
// mutation happens in place and the caller saves.
func (s *LocalStore) UnlockBadge(ctx context.Context, badgeID string, existing *models.GameProgress) error {
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
func (s *LocalStore) RecordGame(ctx context.Context, record models.GameRecord) error {
	progress, _ := s.GetProgress(ctx)
	applyGameRecord(progress, record)
	return s.SaveProgress(ctx, progress)
}

func (s *LocalStore) writeBlob(path string, v any) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

var _ Adapter = (*LocalStore)(nil)
