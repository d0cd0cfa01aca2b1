package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bilboko-doinuak/levels"
	"bilboko-doinuak/models"
)

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()
	return NewLocalStore(t.TempDir(), nil)
}

func TestGetProfileMissing(t *testing.T) {
	store := newTestStore(t)

	profile, err := store.GetProfile(context.Background())
	require.NoError(t, err)
	assert.Nil(t, profile)
}

func TestProfileRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	saved := &models.UserProfile{
		ID:               "device-1",
		DisplayName:      "Miren",
		AgeRange:         models.Age18To30,
		Gender:           models.GenderFemale,
		Barrio:           models.BarrioSanIgnacio,
		ProfileCompleted: true,
		CreatedAt:        "2024-01-15T10:00:00Z",
		LastLoginAt:      "2024-01-15T10:00:00Z",
	}
	require.NoError(t, store.SaveProfile(ctx, saved))

	loaded, err := store.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestGetProgressMissingReturnsDefaults(t *testing.T) {
	store := newTestStore(t)

	progress, err := store.GetProgress(context.Background())
	require.NoError(t, err)
	require.NotNil(t, progress)
	assert.Zero(t, progress.Odisea2XP)
	assert.Equal(t, 1, progress.Level)
	assert.NotNil(t, progress.Badges)
	assert.Empty(t, progress.Badges)
	assert.NotNil(t, progress.GamesPlayed)
}

func TestGetProgressPartialBlob(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir, nil)
	require.NoError(t, os.WriteFile(filepath.Join(dir, progressBlobName), []byte(`{"odisea2xp":50}`), 0o644))

	progress, err := store.GetProgress(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 50, progress.Odisea2XP)
	assert.Equal(t, 1, progress.Level)
	assert.NotNil(t, progress.Badges)
	assert.NotNil(t, progress.GamesPlayed)
}

func TestGetProgressCorruptBlob(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir, nil)
	require.NoError(t, os.WriteFile(filepath.Join(dir, progressBlobName), []byte(`{not json`), 0o644))

	progress, err := store.GetProgress(context.Background())
	require.NoError(t, err)
	assert.Zero(t, progress.Odisea2XP)
	assert.Equal(t, 1, progress.Level)
}

func TestAddXPLevelsUpAndGrantsBadges(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	progress, err := store.AddXP(ctx, 700)
	require.NoError(t, err)
	assert.Equal(t, 700, progress.Odisea2XP)
	assert.Equal(t, 4, progress.Level)

	var ids []string
	for _, b := range progress.Badges {
		ids = append(ids, b.ID)
		assert.NotEmpty(t, b.UnlockedAt)
	}
	assert.Equal(t, []string{levels.BadgeLevel2, levels.BadgeLevel3, levels.BadgeLevel4}, ids)

	// Persisted, not just in memory.
	reloaded, err := store.GetProgress(ctx)
	require.NoError(t, err)
	assert.Equal(t, progress, reloaded)
}

func TestAddXPNoLevelUp(t *testing.T) {
	store := newTestStore(t)

	progress, err := store.AddXP(context.Background(), 50)
	require.NoError(t, err)
	assert.Equal(t, 50, progress.Odisea2XP)
	assert.Equal(t, 1, progress.Level)
	assert.Empty(t, progress.Badges)
}

func TestUnlockBadgeIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, store.UnlockBadge(ctx, levels.BadgePerfectQuiz, nil))
	}

	progress, err := store.GetProgress(ctx)
	require.NoError(t, err)
	require.Len(t, progress.Badges, 1)
	assert.Equal(t, levels.BadgePerfectQuiz, progress.Badges[0].ID)
}

func TestUnlockBadgeInPlaceDoesNotSave(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	existing := models.DefaultProgress()
	require.NoError(t, store.UnlockBadge(ctx, levels.BadgeFastMemory, existing))
	assert.True(t, existing.HasBadge(levels.BadgeFastMemory))

	// The caller owns persistence in this mode.
	reloaded, err := store.GetProgress(ctx)
	require.NoError(t, err)
	assert.False(t, reloaded.HasBadge(levels.BadgeFastMemory))
}

func TestRecordGameFirstGameBadges(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.RecordGame(ctx, models.GameRecord{GameType: models.GameTypeQuiz, Score: 3, MaxScore: 5}))
	require.NoError(t, store.RecordGame(ctx, models.GameRecord{GameType: models.GameTypeQuiz, Score: 5, MaxScore: 5}))
	require.NoError(t, store.RecordGame(ctx, models.GameRecord{GameType: models.GameTypeMemory, Score: 8, MaxScore: 8}))

	progress, err := store.GetProgress(ctx)
	require.NoError(t, err)
	require.Len(t, progress.GamesPlayed, 3)
	assert.NotEmpty(t, progress.GamesPlayed[0].PlayedAt)

	var ids []string
	for _, b := range progress.Badges {
		ids = append(ids, b.ID)
	}
	assert.Equal(t, []string{levels.BadgeFirstQuiz, levels.BadgeFirstMemory}, ids)
}

func TestPerfectQuizScenario(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.RecordGame(ctx, models.GameRecord{GameType: models.GameTypeQuiz, Score: 5, MaxScore: 5}))
	_, err := store.AddXP(ctx, 100)
	require.NoError(t, err)
	require.NoError(t, store.UnlockBadge(ctx, levels.BadgePerfectQuiz, nil))

	progress, err := store.GetProgress(ctx)
	require.NoError(t, err)
	assert.Equal(t, 100, progress.Odisea2XP)
	assert.Equal(t, 2, progress.Level)
	assert.True(t, progress.HasBadge(levels.BadgeFirstQuiz))
	assert.True(t, progress.HasBadge(levels.BadgeLevel2))
	assert.True(t, progress.HasBadge(levels.BadgePerfectQuiz))
}
