// Package missions generates the three daily objectives. Generation is a
// pure function of the calendar date: the date digits seed a mulberry32
// PRNG that shuffles the template set and picks a difficulty tier, so every
// user sees identical missions on a given day without any coordination.
package missions

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"bilboko-doinuak/models"
)

// Type identifies a mission template.
type Type string

// Available mission types.
const (
	TypePlayQuiz     Type = "play_quiz"
	TypeStreak       Type = "streak"
	TypeUnlockSounds Type = "unlock_sounds"
	TypeFastMemory   Type = "fast_memory"
)

// Mission is one generated daily objective. Reward is paid in coins.
type Mission struct {
	ID            string `json:"id"`
	Type          Type   `json:"type"`
	Target        int    `json:"target"`
	Reward        int    `json:"reward"`
	DescriptionES string `json:"description_es"`
	DescriptionEU string `json:"description_eu"`
}

type template struct {
	typ           Type
	targets       []int
	rewards       []int
	descriptionES func(target int) string
	descriptionEU func(target int) string
}

var templates = []template{
	{
		typ:     TypePlayQuiz,
		targets: []int{2, 3, 5},
		rewards: []int{50, 75, 100},
		descriptionES: func(t int) string {
			return fmt.Sprintf("Juega %d partidas de Quiz", t)
		},
		descriptionEU: func(t int) string {
			return fmt.Sprintf("Jokatu %d Quiz partida", t)
		},
	},
	{
		typ:     TypeStreak,
		targets: []int{3, 5, 7},
		rewards: []int{75, 100, 150},
		descriptionES: func(t int) string {
			return fmt.Sprintf("Consigue una racha de %d", t)
		},
		descriptionEU: func(t int) string {
			return fmt.Sprintf("Lortu %deko raxa", t)
		},
	},
	{
		typ:     TypeUnlockSounds,
		targets: []int{1, 2, 3},
		rewards: []int{30, 50, 75},
		descriptionES: func(t int) string {
			if t > 1 {
				return fmt.Sprintf("Desbloquea %d sonidos", t)
			}
			return fmt.Sprintf("Desbloquea %d sonido", t)
		},
		descriptionEU: func(t int) string {
			return fmt.Sprintf("Desblokeatu %d soinu", t)
		},
	},
	{
		typ:     TypeFastMemory,
		targets: []int{15, 12, 10},
		rewards: []int{50, 75, 100},
		descriptionES: func(t int) string {
			return fmt.Sprintf("Memory en menos de %d movimientos", t)
		},
		descriptionEU: func(t int) string {
			return fmt.Sprintf("Memory %d mugimendu baino gutxiagorekin", t)
		},
	},
}

// missionCount is how many of the shuffled templates become today's missions.
const missionCount = 3

// Today returns the current UTC calendar date in ISO YYYY-MM-DD form.
// UTC, not local: game records are timestamped in UTC, and day bucketing
// must use the same clock or games played near midnight vanish from the
// day's missions.
func Today() string {
	return time.Now().UTC().Format("2006-01-02")
}

// dateSeed turns "2024-01-15" into 20240115.
func dateSeed(date string) uint32 {
	var digits strings.Builder
	for _, r := range date {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	n, err := strconv.ParseUint(digits.String(), 10, 64)
	if err != nil {
		return 0
	}
	return uint32(n)
}

// mulberry32 is the seeded generator the app has always used; uint32
// arithmetic reproduces the 32-bit semantics exactly.
func mulberry32(seed uint32) func() float64 {
	state := seed
	return func() float64 {
		state += 0x6d2b79f5
		t := state
		t = (t ^ (t >> 15)) * (t | 1)
		t ^= t + (t^(t>>7))*(t|61)
		t ^= t >> 14
		return float64(t) / 4294967296.0
	}
}

// shuffle is a seeded Fisher–Yates over a copy of the template set.
func shuffle(ts []template, random func() float64) []template {
	out := make([]template, len(ts))
	copy(out, ts)
	for i := len(out) - 1; i > 0; i-- {
		j := int(random() * float64(i+1))
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Generate returns the three missions for a date. Repeated calls with the
// same date return identical missions, ids included.
func Generate(date string) []Mission {
	random := mulberry32(dateSeed(date))
	selected := shuffle(templates, random)[:missionCount]

	out := make([]Mission, 0, missionCount)
	for i, tpl := range selected {
		tier := int(random() * float64(len(tpl.targets)))
		target := tpl.targets[tier]
		out = append(out, Mission{
			ID:            fmt.Sprintf("%s-%s-%d", date, tpl.typ, i),
			Type:          tpl.typ,
			Target:        target,
			Reward:        tpl.rewards[tier],
			DescriptionES: tpl.descriptionES(target),
			DescriptionEU: tpl.descriptionEU(target),
		})
	}
	return out
}

// NewState builds a fresh snapshot for a date: zeroed progress for each
// generated mission, nothing claimed.
func NewState(date string) *models.DailyMissionsState {
	progress := make(map[string]int, missionCount)
	for _, m := range Generate(date) {
		progress[m.ID] = 0
	}
	return &models.DailyMissionsState{
		Date:     date,
		Progress: progress,
		Claimed:  []string{},
	}
}

// ShouldRegenerate reports whether the stored snapshot belongs to a
// different day (or is missing) and must be discarded.
func ShouldRegenerate(state *models.DailyMissionsState, today string) bool {
	return state == nil || state.Date != today
}

// IsCompleted reports whether a mission's progress reached its target.
func IsCompleted(m Mission, progress int) bool {
	return progress >= m.Target
}

// IsClaimed reports whether a mission's reward was already collected.
func IsClaimed(missionID string, claimed []string) bool {
	for _, id := range claimed {
		if id == missionID {
			return true
		}
	}
	return false
}

// ProgressPercent returns mission progress as a clamped 0-100 percent.
func ProgressPercent(m Mission, progress int) int {
	if m.Target <= 0 {
		return 100
	}
	pct := int(float64(progress)/float64(m.Target)*100 + 0.5)
	if pct > 100 {
		pct = 100
	}
	return pct
}
