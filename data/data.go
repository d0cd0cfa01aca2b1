// Package data ships the static content: sound points and routes with
// geometry pre-computed by the offline route calculation and checked in as
// JSON. Loaded once at startup, read-only afterwards.
package data

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"bilboko-doinuak/models"
)

//go:embed soundPoints.json
var soundPointsJSON []byte

//go:embed routes.json
var routesJSON []byte

var (
	loadOnce sync.Once
	loadErr  error
	points   []models.SoundPoint
	routes   []models.Route
)

// Load parses the embedded content documents. Safe for concurrent use;
// parsing happens once.
func Load() ([]models.SoundPoint, []models.Route, error) {
	loadOnce.Do(func() {
		if err := json.Unmarshal(soundPointsJSON, &points); err != nil {
			loadErr = fmt.Errorf("failed to parse sound points: %w", err)
			return
		}
		if err := json.Unmarshal(routesJSON, &routes); err != nil {
			loadErr = fmt.Errorf("failed to parse routes: %w", err)
			return
		}
		for i := range routes {
			if len(routes[i].Geometry) == 0 {
				loadErr = fmt.Errorf("route %s has no geometry", routes[i].ID)
				return
			}
		}
	})
	return points, routes, loadErr
}
