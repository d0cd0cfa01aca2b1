package missions

import (
	"strings"

	"bilboko-doinuak/models"
)

// Stats are the raw gameplay numbers mission progress is derived from.
// Progress updates are push-based: whatever tracks gameplay recomputes a
// Stats value and hands it to CalculateProgress — the generator never
// recomputes anything on its own. BestMemoryMoves is 0 when no memory game
// was played.
type Stats struct {
	QuizGamesPlayed int
	BestStreak      int
	SoundsUnlocked  int
	BestMemoryMoves int
}

// StatsFromProgress derives a day's Stats from stored progress: games
// played on the given date plus the unlocked-sounds total. The streak value
// comes from the longest consecutive-correct run recorded per quiz, not
// from counting perfect scores.
func StatsFromProgress(p *models.GameProgress, date string) Stats {
	var s Stats
	s.SoundsUnlocked = len(p.UnlockedSounds)

	for _, g := range p.GamesPlayed {
		if !strings.HasPrefix(g.PlayedAt, date) {
			continue
		}
		switch g.GameType {
		case models.GameTypeQuiz:
			s.QuizGamesPlayed++
			if g.BestStreak != nil && *g.BestStreak > s.BestStreak {
				s.BestStreak = *g.BestStreak
			}
		case models.GameTypeMemory:
			if g.Moves != nil && (s.BestMemoryMoves == 0 || *g.Moves < s.BestMemoryMoves) {
				s.BestMemoryMoves = *g.Moves
			}
		}
	}
	return s
}

// CalculateProgress returns the updated per-mission progress map for the
// given stats. prev values are kept where a mission type doesn't move
// backwards (streak) or where the stats carry no signal (fast_memory not
// yet under target).
func CalculateProgress(ms []Mission, prev map[string]int, stats Stats) map[string]int {
	out := make(map[string]int, len(ms))
	for _, m := range ms {
		value := prev[m.ID]
		switch m.Type {
		case TypePlayQuiz:
			value = stats.QuizGamesPlayed
		case TypeStreak:
			if stats.BestStreak > value {
				value = stats.BestStreak
			}
		case TypeUnlockSounds:
			value = stats.SoundsUnlocked
		case TypeFastMemory:
			// Completed outright once a game finishes at or under target.
			if stats.BestMemoryMoves > 0 && stats.BestMemoryMoves <= m.Target {
				value = m.Target
			}
		}
		out[m.ID] = value
	}
	return out
}
