package levels

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateLevelBoundaries(t *testing.T) {
	cases := []struct {
		xp   int
		want int
	}{
		{0, 1},
		{50, 1},
		{99, 1},
		{100, 2},
		{299, 2},
		{300, 3},
		{599, 3},
		{600, 4},
		{10000, 4},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CalculateLevel(tc.xp), "xp=%d", tc.xp)
	}
}

func TestCalculateLevelMonotonic(t *testing.T) {
	prev := 0
	for xp := 0; xp <= 1000; xp += 10 {
		level := CalculateLevel(xp)
		assert.GreaterOrEqual(t, level, prev, "xp=%d", xp)
		prev = level
	}
}

func TestLevelInfo(t *testing.T) {
	assert.Equal(t, "Explorador/a", LevelInfo(2).NameES)
	assert.Equal(t, "Esploratzailea", LevelInfo(2).NameEU)

	// Out-of-range levels fall back to the first tier.
	assert.Equal(t, 1, LevelInfo(0).Level)
	assert.Equal(t, 1, LevelInfo(99).Level)
}

func TestCalculateLevelProgress(t *testing.T) {
	assert.Equal(t, 0, CalculateLevelProgress(0))
	assert.Equal(t, 50, CalculateLevelProgress(50))
	assert.Equal(t, 0, CalculateLevelProgress(100))
	assert.Equal(t, 50, CalculateLevelProgress(200))
	assert.Equal(t, 100, CalculateLevelProgress(600))
	assert.Equal(t, 100, CalculateLevelProgress(99999))
}

func TestXPForNextLevel(t *testing.T) {
	current, needed := XPForNextLevel(150)
	assert.Equal(t, 150, current)
	assert.Equal(t, 300, needed)

	current, needed = XPForNextLevel(700)
	assert.Equal(t, 700, current)
	assert.Equal(t, 700, needed)
}

func TestWillLevelUp(t *testing.T) {
	assert.True(t, WillLevelUp(90, 20))
	assert.False(t, WillLevelUp(0, 50))
	assert.True(t, WillLevelUp(0, 600))
	assert.False(t, WillLevelUp(600, 5000))
}

func TestLevelUpBadges(t *testing.T) {
	assert.Equal(t, []string{BadgeLevel2}, LevelUpBadges(1, 2))
	assert.Equal(t, []string{BadgeLevel4}, LevelUpBadges(3, 4))
	assert.Equal(t, []string{BadgeLevel2, BadgeLevel3, BadgeLevel4}, LevelUpBadges(1, 4))
	assert.Empty(t, LevelUpBadges(2, 2))
	assert.Empty(t, LevelUpBadges(4, 4))
}

func TestBadgeCatalog(t *testing.T) {
	seen := map[string]bool{}
	for _, b := range BadgeCatalog {
		assert.False(t, seen[b.ID], "duplicate badge id %s", b.ID)
		seen[b.ID] = true
		assert.NotEmpty(t, b.NameES)
		assert.NotEmpty(t, b.NameEU)
	}

	def, ok := BadgeByID(BadgePerfectQuiz)
	assert.True(t, ok)
	assert.Equal(t, BadgePerfectQuiz, def.ID)

	_, ok = BadgeByID("no_such_badge")
	assert.False(t, ok)
}
