package levels

// Unlockable badge ids.
const (
	BadgeFirstQuiz   = "first_quiz"
	BadgeFirstMemory = "first_memory"
	BadgePerfectQuiz = "perfect_quiz"
	BadgeFastMemory  = "fast_memory"
	BadgeLevel2      = "level_2"
	BadgeLevel3      = "level_3"
	BadgeLevel4      = "level_4"
)

// BadgeDefinition carries the bilingual display metadata for one badge.
type BadgeDefinition struct {
	ID            string `json:"id"`
	NameES        string `json:"name_es"`
	NameEU        string `json:"name_eu"`
	DescriptionES string `json:"description_es"`
	DescriptionEU string `json:"description_eu"`
	Icon          string `json:"icon"`
}

// BadgeCatalog lists every badge the app can show, in display order.
var BadgeCatalog = []BadgeDefinition{
	{
		ID:            BadgeFirstQuiz,
		NameES:        "Primer Quiz",
		NameEU:        "Lehen Quiz-a",
		DescriptionES: "Completa tu primer Quiz Sonoro",
		DescriptionEU: "Osatu zure lehen Soinu Quiz-a",
		Icon:          "🎯",
	},
	{
		ID:            BadgeFirstMemory,
		NameES:        "Primer Memory",
		NameEU:        "Lehen Memory",
		DescriptionES: "Completa tu primer Memory Sonoro",
		DescriptionEU: "Osatu zure lehen Soinu Memory",
		Icon:          "🧠",
	},
	{
		ID:            BadgePerfectQuiz,
		NameES:        "Quiz Perfecto",
		NameEU:        "Quiz Perfektua",
		DescriptionES: "Consigue el 100% en un Quiz",
		DescriptionEU: "Lortu %100 Quiz batean",
		Icon:          "⭐",
	},
	{
		ID:            BadgeFastMemory,
		NameES:        "Memory Veloz",
		NameEU:        "Memory Azkarra",
		DescriptionES: "Completa Memory en menos de 20 movimientos",
		DescriptionEU: "Osatu Memory 20 mugimendu baino gutxiagoan",
		Icon:          "⚡",
	},
	{
		ID:            BadgeLevel2,
		NameES:        "Explorador/a",
		NameEU:        "Esploratzailea",
		DescriptionES: "Alcanza el Nivel 2",
		DescriptionEU: "Iritsi 2. mailara",
		Icon:          "🗺️",
	},
	{
		ID:            BadgeLevel3,
		NameES:        "Músico/a",
		NameEU:        "Musikaria",
		DescriptionES: "Alcanza el Nivel 3",
		DescriptionEU: "Iritsi 3. mailara",
		Icon:          "🎵",
	},
	{
		ID:            BadgeLevel4,
		NameES:        "Maestro/a",
		NameEU:        "Maisua",
		DescriptionES: "Alcanza el Nivel 4",
		DescriptionEU: "Iritsi 4. mailara",
		Icon:          "👑",
	},
}

// BadgeByID looks a badge definition up by id.
func BadgeByID(id string) (BadgeDefinition, bool) {
	for _, b := range BadgeCatalog {
		if b.ID == id {
			return b, true
		}
	}
	return BadgeDefinition{}, false
}
