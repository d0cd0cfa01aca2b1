package services

import (
	"math"

	"bilboko-doinuak/models"
)

// CollectionCategory is the display metadata for one sound collection.
type CollectionCategory struct {
	ID            string `json:"id"`
	NameES        string `json:"name_es"`
	NameEU        string `json:"name_eu"`
	DescriptionES string `json:"description_es"`
	DescriptionEU string `json:"description_eu"`
	Icon          string `json:"icon"`
	Color         string `json:"color"`
}

// CollectionCategories in display order. Points with an unknown or missing
// category count as urban.
var CollectionCategories = []CollectionCategory{
	{
		ID:            models.CategoryUrban,
		NameES:        "Urbano",
		NameEU:        "Hiria",
		DescriptionES: "Sonidos urbanos: plazas, fuentes, calles",
		DescriptionEU: "Hiri-soinuak: plazak, iturriak, kaleak",
		Icon:          "Building2",
		Color:         "amber",
	},
	{
		ID:            models.CategoryNature,
		NameES:        "Naturaleza",
		NameEU:        "Natura",
		DescriptionES: "Sonidos de la naturaleza: parques, jardines, ria",
		DescriptionEU: "Naturaren soinuak: parkeak, lorategiak, itsasadarra",
		Icon:          "TreePine",
		Color:         "green",
	},
	{
		ID:            models.CategoryPeople,
		NameES:        "Personas",
		NameEU:        "Jendea",
		DescriptionES: "Sonidos de actividad humana: deportes, encuentros",
		DescriptionEU: "Giza jardueraren soinuak: kirolak, topaketak",
		Icon:          "Users",
		Color:         "blue",
	},
	{
		ID:            models.CategoryTraffic,
		NameES:        "Trafico",
		NameEU:        "Trafikoa",
		DescriptionES: "Sonidos del trafico: coches, autobuses",
		DescriptionEU: "Trafikoaren soinuak: autoak, autobusak",
		Icon:          "Car",
		Color:         "red",
	},
	{
		ID:            models.CategoryAnimals,
		NameES:        "Animales",
		NameEU:        "Animaliak",
		DescriptionES: "Sonidos de animales: pajaros, perros",
		DescriptionEU: "Animalia-soinuak: txoriak, txakurrak",
		Icon:          "Bird",
		Color:         "purple",
	},
}

// CollectionProgress is one category's unlock state.
type CollectionProgress struct {
	Category   CollectionCategory    `json:"category"`
	Total      int                   `json:"total"`
	Unlocked   int                   `json:"unlocked"`
	Percentage int                   `json:"percentage"`
	Sounds     []LocalizedSoundPoint `json:"sounds"`
}

// OverallCollectionProgress aggregates every category.
type OverallCollectionProgress struct {
	TotalSounds   int                  `json:"totalSounds"`
	TotalUnlocked int                  `json:"totalUnlocked"`
	Percentage    int                  `json:"percentage"`
	Categories    []CollectionProgress `json:"categories"`
}

func roundPct(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// CategoryProgress computes the unlock state of one category for a user's
// unlocked-sound ids.
func (s *ContentService) CategoryProgress(category CollectionCategory, unlockedIDs []string, lang string) CollectionProgress {
	var sounds []LocalizedSoundPoint
	unlocked := 0
	for _, p := range s.points {
		cat := p.Category
		if cat == "" {
			cat = models.CategoryUrban
		}
		if cat != category.ID {
			continue
		}
		sounds = append(sounds, s.localizePoint(p, lang))
		if contains(unlockedIDs, p.ID) {
			unlocked++
		}
	}
	return CollectionProgress{
		Category:   category,
		Total:      len(sounds),
		Unlocked:   unlocked,
		Percentage: roundPct(unlocked, len(sounds)),
		Sounds:     sounds,
	}
}

// CollectionProgress computes the full collections view for a user.
func (s *ContentService) CollectionProgress(unlockedIDs []string, lang string) OverallCollectionProgress {
	totalUnlocked := 0
	for _, p := range s.points {
		if contains(unlockedIDs, p.ID) {
			totalUnlocked++
		}
	}

	categories := make([]CollectionProgress, 0, len(CollectionCategories))
	for _, c := range CollectionCategories {
		categories = append(categories, s.CategoryProgress(c, unlockedIDs, lang))
	}

	return OverallCollectionProgress{
		TotalSounds:   len(s.points),
		TotalUnlocked: totalUnlocked,
		Percentage:    roundPct(totalUnlocked, len(s.points)),
		Categories:    categories,
	}
}
