package models

// LatLng is a [latitude, longitude] pair, matching the checked-in geometry
// JSON produced by the offline route pre-calculation.
type LatLng [2]float64

// Lat returns the latitude component.
func (c LatLng) Lat() float64 { return c[0] }

// Lng returns the longitude component.
func (c LatLng) Lng() float64 { return c[1] }

// Sound categories for the collections feature.
const (
	CategoryUrban   = "urban"
	CategoryNature  = "nature"
	CategoryPeople  = "people"
	CategoryTraffic = "traffic"
	CategoryAnimals = "animals"
)

// SoundPoint is a geo-tagged point of interest with bilingual copy and
// audio/image/video media. Read-only at runtime.
type SoundPoint struct {
	ID            string   `json:"id"`
	TitleES       string   `json:"title_es"`
	TitleEU       string   `json:"title_eu"`
	DescriptionES string   `json:"description_es"`
	DescriptionEU string   `json:"description_eu"`
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
	AudioURL      string   `json:"audio_url"`
	YoutubeID     string   `json:"youtube_id,omitempty"`
	ImageURL      string   `json:"image_url"`
	Routes        []string `json:"routes"`
	Category      string   `json:"category,omitempty"`
}

// ApproachSegment connects a sound point's raw coordinate (From) to its
// snapped coordinate on the route geometry (To).
type ApproachSegment struct {
	From LatLng `json:"from"`
	To   LatLng `json:"to"`
}

// Route is a themed walking route with street-following geometry computed
// offline and checked in as static JSON — never recomputed at runtime.
type Route struct {
	ID               string            `json:"id"`
	NameES           string            `json:"name_es"`
	NameEU           string            `json:"name_eu"`
	DescriptionES    string            `json:"description_es"`
	DescriptionEU    string            `json:"description_eu"`
	Color            string            `json:"color"`
	Geometry         []LatLng          `json:"geometry"`
	ApproachSegments []ApproachSegment `json:"approachSegments"`
}
