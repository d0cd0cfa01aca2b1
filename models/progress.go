package models

// Game types recorded in progress history.
const (
	GameTypeQuiz   = "quiz"
	GameTypeMemory = "memory"
)

// Badge is an unlocked achievement. Each id appears at most once per user.
type Badge struct {
	ID         string `json:"id"`
	UnlockedAt string `json:"unlockedAt"`
}

// GameRecord is one completed game. Moves is set for memory games;
// BestStreak is the longest consecutive-correct run in a quiz.
type GameRecord struct {
	GameType   string `json:"gameType"`
	Score      int    `json:"score"`
	MaxScore   int    `json:"maxScore"`
	PlayedAt   string `json:"playedAt"`
	Moves      *int   `json:"moves,omitempty"`
	BestStreak *int   `json:"bestStreak,omitempty"`
}

// DailyMissionsState is the persisted snapshot of today's missions: the
// mission list itself is regenerated deterministically from the date, so
// only date, per-mission progress and claimed ids are stored.
type DailyMissionsState struct {
	Date     string         `json:"date"`
	Progress map[string]int `json:"progress"`
	Claimed  []string       `json:"claimed"`
}

// GameProgress is the aggregate per-user gamification state.
// Invariant: Level always equals levels.CalculateLevel(Odisea2XP).
type GameProgress struct {
	Odisea2XP      int                 `json:"odisea2xp"`
	Level          int                 `json:"level"`
	Coins          int                 `json:"coins,omitempty"`
	Badges         []Badge             `json:"badges"`
	GamesPlayed    []GameRecord        `json:"gamesPlayed"`
	DailyMissions  *DailyMissionsState `json:"dailyMissions,omitempty"`
	UnlockedSounds []string            `json:"unlockedSounds,omitempty"`
}

// DefaultProgress returns a fresh zero-state for new users. A new value
// every call — callers mutate the result.
func DefaultProgress() *GameProgress {
	return &GameProgress{
		Odisea2XP:   0,
		Level:       1,
		Badges:      []Badge{},
		GamesPlayed: []GameRecord{},
	}
}

// Normalize fills fields missing from a partial or corrupt stored blob.
func (p *GameProgress) Normalize() {
	if p.Level < 1 {
		p.Level = 1
	}
	if p.Badges == nil {
		p.Badges = []Badge{}
	}
	if p.GamesPlayed == nil {
		p.GamesPlayed = []GameRecord{}
	}
}

// HasBadge reports whether a badge id is already unlocked.
func (p *GameProgress) HasBadge(id string) bool {
	for _, b := range p.Badges {
		if b.ID == id {
			return true
		}
	}
	return false
}
