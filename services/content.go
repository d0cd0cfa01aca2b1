package services

import (
	"fmt"
	"strings"

	"github.com/gosimple/slug"
	"github.com/gosimple/unidecode"
	"go.uber.org/zap"

	"bilboko-doinuak/data"
	"bilboko-doinuak/georoute"
	"bilboko-doinuak/models"
)

// ContentService serves the static sound-point and route content, localized
// to Spanish or Basque, with accent-insensitive search and slug lookups.
type ContentService struct {
	points []models.SoundPoint
	routes []models.Route

	pointSlugs map[string]string // slug -> id
	routeSlugs map[string]string

	Log *zap.Logger
}

// NewContentService loads the embedded content documents.
func NewContentService(log *zap.Logger) (*ContentService, error) {
	if log == nil {
		log = zap.NewNop()
	}
	points, routes, err := data.Load()
	if err != nil {
		return nil, err
	}

	s := &ContentService{
		points:     points,
		routes:     routes,
		pointSlugs: make(map[string]string, len(points)),
		routeSlugs: make(map[string]string, len(routes)),
		Log:        log,
	}
	for _, p := range points {
		s.pointSlugs[slug.Make(p.TitleES)] = p.ID
	}
	for _, r := range routes {
		s.routeSlugs[slug.Make(r.NameES)] = r.ID
	}
	log.Info("content loaded",
		zap.Int("sound_points", len(points)),
		zap.Int("routes", len(routes)))
	return s, nil
}

// LocalizedSoundPoint is a sound point flattened to one language.
type LocalizedSoundPoint struct {
	ID          string   `json:"id"`
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	AudioURL    string   `json:"audio_url"`
	YoutubeID   string   `json:"youtube_id,omitempty"`
	ImageURL    string   `json:"image_url"`
	Routes      []string `json:"routes"`
	Category    string   `json:"category"`
}

// LocalizedRoute is a route flattened to one language; geometry is included
// so the map can draw the street-following polyline as shipped.
type LocalizedRoute struct {
	ID               string                   `json:"id"`
	Slug             string                   `json:"slug"`
	Name             string                   `json:"name"`
	Description      string                   `json:"description"`
	Color            string                   `json:"color"`
	Geometry         []models.LatLng          `json:"geometry"`
	ApproachSegments []models.ApproachSegment `json:"approachSegments"`
	PointCount       int                      `json:"point_count"`
}

func (s *ContentService) localizePoint(p models.SoundPoint, lang string) LocalizedSoundPoint {
	title, desc := p.TitleES, p.DescriptionES
	if lang == "eu" {
		title, desc = p.TitleEU, p.DescriptionEU
	}
	category := p.Category
	if category == "" {
		category = models.CategoryUrban
	}
	return LocalizedSoundPoint{
		ID:          p.ID,
		Slug:        slug.Make(p.TitleES),
		Title:       title,
		Description: desc,
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
		AudioURL:    p.AudioURL,
		YoutubeID:   p.YoutubeID,
		ImageURL:    p.ImageURL,
		Routes:      p.Routes,
		Category:    category,
	}
}

func (s *ContentService) localizeRoute(r models.Route, lang string) LocalizedRoute {
	name, desc := r.NameES, r.DescriptionES
	if lang == "eu" {
		name, desc = r.NameEU, r.DescriptionEU
	}
	count := 0
	for _, p := range s.points {
		for _, id := range p.Routes {
			if id == r.ID {
				count++
				break
			}
		}
	}
	return LocalizedRoute{
		ID:               r.ID,
		Slug:             slug.Make(r.NameES),
		Name:             name,
		Description:      desc,
		Color:            r.Color,
		Geometry:         r.Geometry,
		ApproachSegments: r.ApproachSegments,
		PointCount:       count,
	}
}

// normalize folds case and accents so "tráfico" matches "trafico".
func normalize(s string) string {
	return strings.ToLower(unidecode.Unidecode(s))
}

// SoundPoints lists sound points in one language, optionally filtered by a
// search query (accent-insensitive, matches either language) and category.
func (s *ContentService) SoundPoints(lang, query, category string) []LocalizedSoundPoint {
	q := normalize(strings.TrimSpace(query))
	out := make([]LocalizedSoundPoint, 0, len(s.points))
	for _, p := range s.points {
		if category != "" {
			cat := p.Category
			if cat == "" {
				cat = models.CategoryUrban
			}
			if cat != category {
				continue
			}
		}
		if q != "" {
			haystack := normalize(p.TitleES + " " + p.TitleEU + " " + p.DescriptionES + " " + p.DescriptionEU)
			if !strings.Contains(haystack, q) {
				continue
			}
		}
		out = append(out, s.localizePoint(p, lang))
	}
	return out
}

// SoundPoint finds a sound point by id or slug.
func (s *ContentService) SoundPoint(idOrSlug, lang string) (LocalizedSoundPoint, error) {
	id := idOrSlug
	if mapped, ok := s.pointSlugs[idOrSlug]; ok {
		id = mapped
	}
	for _, p := range s.points {
		if p.ID == id {
			return s.localizePoint(p, lang), nil
		}
	}
	return LocalizedSoundPoint{}, fmt.Errorf("sound point %q not found", idOrSlug)
}

// Routes lists every route in one language.
func (s *ContentService) Routes(lang string) []LocalizedRoute {
	out := make([]LocalizedRoute, 0, len(s.routes))
	for _, r := range s.routes {
		out = append(out, s.localizeRoute(r, lang))
	}
	return out
}

// Route finds a route by id or slug.
func (s *ContentService) Route(idOrSlug, lang string) (LocalizedRoute, error) {
	r, err := s.rawRoute(idOrSlug)
	if err != nil {
		return LocalizedRoute{}, err
	}
	return s.localizeRoute(*r, lang), nil
}

func (s *ContentService) rawRoute(idOrSlug string) (*models.Route, error) {
	id := idOrSlug
	if mapped, ok := s.routeSlugs[idOrSlug]; ok {
		id = mapped
	}
	for i := range s.routes {
		if s.routes[i].ID == id {
			return &s.routes[i], nil
		}
	}
	return nil, fmt.Errorf("route %q not found", idOrSlug)
}

// RoutePoints returns a route's sound points in walking-visit order along
// the pre-computed street geometry.
func (s *ContentService) RoutePoints(idOrSlug, lang string) ([]LocalizedSoundPoint, error) {
	route, err := s.rawRoute(idOrSlug)
	if err != nil {
		return nil, err
	}

	var members []models.SoundPoint
	for _, p := range s.points {
		for _, id := range p.Routes {
			if id == route.ID {
				members = append(members, p)
				break
			}
		}
	}

	ordered := georoute.OrderAlongRoute(members, route)
	out := make([]LocalizedSoundPoint, len(ordered))
	for i, p := range ordered {
		out[i] = s.localizePoint(p, lang)
	}
	return out, nil
}

// SoundExists reports whether a sound point id is part of the content set.
func (s *ContentService) SoundExists(id string) bool {
	for _, p := range s.points {
		if p.ID == id {
			return true
		}
	}
	return false
}
