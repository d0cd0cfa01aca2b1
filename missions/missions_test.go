package missions

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bilboko-doinuak/models"
)

func templateFor(typ Type) template {
	for _, tpl := range templates {
		if tpl.typ == typ {
			return tpl
		}
	}
	panic("unknown mission type " + string(typ))
}

func TestGenerateIsDeterministic(t *testing.T) {
	a := Generate("2024-01-15")
	b := Generate("2024-01-15")
	assert.Equal(t, a, b, "same date must generate identical missions")

	c := Generate("2024-01-16")
	assert.NotEqual(t, a, c, "consecutive dates should differ in ids at least")
}

func TestGenerateShape(t *testing.T) {
	date := "2024-03-07"
	ms := Generate(date)
	require.Len(t, ms, 3)

	seen := map[Type]bool{}
	for i, m := range ms {
		assert.Equal(t, fmt.Sprintf("%s-%s-%d", date, m.Type, i), m.ID)
		assert.False(t, seen[m.Type], "mission types must not repeat")
		seen[m.Type] = true

		// Target and reward must come from the same difficulty tier.
		tpl := templateFor(m.Type)
		tier := -1
		for j, target := range tpl.targets {
			if target == m.Target {
				tier = j
				break
			}
		}
		require.GreaterOrEqual(t, tier, 0, "target %d not in template %s", m.Target, m.Type)
		assert.Equal(t, tpl.rewards[tier], m.Reward)

		assert.Contains(t, m.DescriptionES, fmt.Sprint(m.Target))
		assert.Contains(t, m.DescriptionEU, fmt.Sprint(m.Target))
	}
}

func TestNewState(t *testing.T) {
	state := NewState("2024-01-15")
	assert.Equal(t, "2024-01-15", state.Date)
	assert.Len(t, state.Progress, 3)
	assert.Empty(t, state.Claimed)
	for id, v := range state.Progress {
		assert.True(t, strings.HasPrefix(id, "2024-01-15-"))
		assert.Zero(t, v)
	}
}

func TestShouldRegenerate(t *testing.T) {
	assert.True(t, ShouldRegenerate(nil, "2024-01-15"))
	assert.True(t, ShouldRegenerate(&models.DailyMissionsState{Date: "2024-01-14"}, "2024-01-15"))
	assert.False(t, ShouldRegenerate(&models.DailyMissionsState{Date: "2024-01-15"}, "2024-01-15"))
}

func TestProgressPercent(t *testing.T) {
	m := Mission{Target: 4}
	assert.Equal(t, 0, ProgressPercent(m, 0))
	assert.Equal(t, 25, ProgressPercent(m, 1))
	assert.Equal(t, 50, ProgressPercent(m, 2))
	assert.Equal(t, 100, ProgressPercent(m, 4))
	assert.Equal(t, 100, ProgressPercent(m, 9))
}

func TestClaimHelpers(t *testing.T) {
	m := Mission{ID: "x", Target: 3}
	assert.False(t, IsCompleted(m, 2))
	assert.True(t, IsCompleted(m, 3))
	assert.True(t, IsCompleted(m, 5))

	assert.False(t, IsClaimed("x", nil))
	assert.True(t, IsClaimed("x", []string{"y", "x"}))
}

func intPtr(v int) *int { return &v }

func TestStatsFromProgress(t *testing.T) {
	progress := &models.GameProgress{
		UnlockedSounds: []string{"a", "b"},
		GamesPlayed: []models.GameRecord{
			{GameType: models.GameTypeQuiz, PlayedAt: "2024-01-15T10:00:00Z", BestStreak: intPtr(4)},
			{GameType: models.GameTypeQuiz, PlayedAt: "2024-01-15T11:00:00Z", BestStreak: intPtr(6)},
			{GameType: models.GameTypeMemory, PlayedAt: "2024-01-15T12:00:00Z", Moves: intPtr(18)},
			{GameType: models.GameTypeMemory, PlayedAt: "2024-01-15T13:00:00Z", Moves: intPtr(11)},
			// Yesterday's games must not count.
			{GameType: models.GameTypeQuiz, PlayedAt: "2024-01-14T10:00:00Z", BestStreak: intPtr(9)},
		},
	}

	stats := StatsFromProgress(progress, "2024-01-15")
	assert.Equal(t, 2, stats.QuizGamesPlayed)
	assert.Equal(t, 6, stats.BestStreak)
	assert.Equal(t, 2, stats.SoundsUnlocked)
	assert.Equal(t, 11, stats.BestMemoryMoves)
}

func TestTodayMatchesRecordTimestamps(t *testing.T) {
	// Force a local zone whose calendar date differs from UTC's right now,
	// whichever side of noon UTC we run on.
	offset := -13 * 3600
	if time.Now().UTC().Hour() < 12 {
		offset = 13 * 3600
	}
	oldLocal := time.Local
	time.Local = time.FixedZone("test", offset)
	defer func() { time.Local = oldLocal }()

	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), Today())

	// A game stamped the way the storage layer stamps it must count toward
	// today's stats regardless of the server's local zone.
	progress := &models.GameProgress{
		GamesPlayed: []models.GameRecord{
			{
				GameType: models.GameTypeQuiz,
				PlayedAt: time.Now().UTC().Format(time.RFC3339),
			},
		},
	}
	stats := StatsFromProgress(progress, Today())
	assert.Equal(t, 1, stats.QuizGamesPlayed)
}

func TestCalculateProgress(t *testing.T) {
	ms := []Mission{
		{ID: "q", Type: TypePlayQuiz, Target: 3},
		{ID: "s", Type: TypeStreak, Target: 5},
		{ID: "u", Type: TypeUnlockSounds, Target: 2},
		{ID: "f", Type: TypeFastMemory, Target: 12},
	}
	prev := map[string]int{"q": 1, "s": 4, "u": 1, "f": 0}

	got := CalculateProgress(ms, prev, Stats{
		QuizGamesPlayed: 2,
		BestStreak:      3, // below the previous 4: streak never regresses
		SoundsUnlocked:  3,
		BestMemoryMoves: 14, // above target: no completion signal
	})
	assert.Equal(t, map[string]int{"q": 2, "s": 4, "u": 3, "f": 0}, got)

	got = CalculateProgress(ms, got, Stats{
		QuizGamesPlayed: 3,
		BestStreak:      7,
		SoundsUnlocked:  3,
		BestMemoryMoves: 12, // at target: completed outright
	})
	assert.Equal(t, map[string]int{"q": 3, "s": 7, "u": 3, "f": 12}, got)
}
