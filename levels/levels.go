// Package levels holds the pure XP → level math and the badge catalog.
// Level thresholds are fixed and gapless; everything here is side-effect free.
package levels

import "math"

// Level describes one progression tier. MaxXP is inclusive; the top level
// has MaxXP == math.MaxInt (open-ended).
type Level struct {
	Level  int    `json:"level"`
	MinXP  int    `json:"min_xp"`
	MaxXP  int    `json:"max_xp"`
	NameES string `json:"name_es"`
	NameEU string `json:"name_eu"`
}

// Levels is the fixed four-tier table: L1 [0,100), L2 [100,300),
// L3 [300,600), L4 [600,∞).
var Levels = []Level{
	{Level: 1, MinXP: 0, MaxXP: 99, NameES: "Principiante", NameEU: "Hasiberria"},
	{Level: 2, MinXP: 100, MaxXP: 299, NameES: "Explorador/a", NameEU: "Esploratzailea"},
	{Level: 3, MinXP: 300, MaxXP: 599, NameES: "Músico/a", NameEU: "Musikaria"},
	{Level: 4, MinXP: 600, MaxXP: math.MaxInt, NameES: "Maestro/a", NameEU: "Maisua"},
}

// MaxLevel is the highest reachable level.
const MaxLevel = 4

// CalculateLevel returns the highest level whose MinXP <= xp.
func CalculateLevel(xp int) int {
	for i := len(Levels) - 1; i >= 0; i-- {
		if xp >= Levels[i].MinXP {
			return Levels[i].Level
		}
	}
	return 1
}

// LevelInfo returns the table entry for a level number, falling back to L1.
func LevelInfo(level int) Level {
	for _, l := range Levels {
		if l.Level == level {
			return l
		}
	}
	return Levels[0]
}

// LevelInfoFromXP returns the table entry for the level an XP total sits in.
func LevelInfoFromXP(xp int) Level {
	return LevelInfo(CalculateLevel(xp))
}

// CalculateLevelProgress returns the rounded 0-100 percent of progress
// through the current level's XP range. Always 100 at the max level.
func CalculateLevelProgress(xp int) int {
	info := LevelInfoFromXP(xp)
	if info.Level == MaxLevel {
		return 100
	}

	xpInLevel := xp - info.MinXP
	xpNeeded := info.MaxXP - info.MinXP + 1

	pct := int(math.Round(float64(xpInLevel) / float64(xpNeeded) * 100))
	if pct > 100 {
		pct = 100
	}
	return pct
}

// XPForNextLevel returns the current XP total and the total needed to reach
// the next level. At the max level needed == current (no further target).
func XPForNextLevel(xp int) (current, needed int) {
	info := LevelInfoFromXP(xp)
	if info.Level == MaxLevel {
		return xp, xp
	}
	return xp, LevelInfo(info.Level + 1).MinXP
}

// WillLevelUp reports whether adding delta XP crosses a level boundary.
func WillLevelUp(currentXP, delta int) bool {
	return CalculateLevel(currentXP+delta) > CalculateLevel(currentXP)
}

// LevelUpBadges returns the ordered badge ids for every level boundary in
// (oldLevel, newLevel]. LevelUpBadges(1, 4) == [level_2, level_3, level_4].
func LevelUpBadges(oldLevel, newLevel int) []string {
	var badges []string
	if oldLevel < 2 && newLevel >= 2 {
		badges = append(badges, BadgeLevel2)
	}
	if oldLevel < 3 && newLevel >= 3 {
		badges = append(badges, BadgeLevel3)
	}
	if oldLevel < 4 && newLevel >= 4 {
		badges = append(badges, BadgeLevel4)
	}
	return badges
}
