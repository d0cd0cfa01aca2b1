// Package georoute orders a route's sound points by their position along
// the route's pre-computed street geometry. The geometry is a single
// ordered polyline produced offline; walking order follows where each
// point's approach segment meets that polyline, so a point set back from
// the street (inside a park, say) still sorts by its street connector
// rather than its raw coordinate.
package georoute

import (
	"math"
	"sort"

	"bilboko-doinuak/models"
)

// approachMatchRadius is how close (meters) a point must be to an approach
// segment's origin to claim that segment.
const approachMatchRadius = 50.0

const earthRadiusMeters = 6371e3

// Haversine returns the great-circle distance in meters between two
// lat/lon coordinates.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// NearestVertex returns the index of the geometry vertex closest to coord.
// Plain lat/lon distance is enough here: the candidates are meters apart
// and only the ordering of indices matters.
func NearestVertex(coord models.LatLng, geometry []models.LatLng) int {
	minDist := math.Inf(1)
	minIndex := 0
	for i, v := range geometry {
		dLat := coord.Lat() - v.Lat()
		dLng := coord.Lng() - v.Lng()
		dist := dLat*dLat + dLng*dLng
		if dist < minDist {
			minDist = dist
			minIndex = i
		}
	}
	return minIndex
}

// matchApproachSegment finds the approach segment whose origin lies within
// approachMatchRadius of the point, or nil.
func matchApproachSegment(p models.SoundPoint, segments []models.ApproachSegment) *models.ApproachSegment {
	for i := range segments {
		d := Haversine(p.Latitude, p.Longitude, segments[i].From.Lat(), segments[i].From.Lng())
		if d < approachMatchRadius {
			return &segments[i]
		}
	}
	return nil
}

// OrderAlongRoute sorts points ascending by the geometry vertex index their
// snapped coordinate lands on. Points without a matching approach segment
// snap their raw coordinate directly. Ties keep input order.
func OrderAlongRoute(points []models.SoundPoint, route *models.Route) []models.SoundPoint {
	if route == nil || len(route.Geometry) == 0 {
		out := make([]models.SoundPoint, len(points))
		copy(out, points)
		return out
	}

	type ordered struct {
		point models.SoundPoint
		order int
	}
	withOrder := make([]ordered, 0, len(points))
	for _, p := range points {
		coord := models.LatLng{p.Latitude, p.Longitude}
		if seg := matchApproachSegment(p, route.ApproachSegments); seg != nil {
			coord = seg.To
		}
		withOrder = append(withOrder, ordered{point: p, order: NearestVertex(coord, route.Geometry)})
	}

	sort.SliceStable(withOrder, func(i, j int) bool {
		return withOrder[i].order < withOrder[j].order
	})

	out := make([]models.SoundPoint, len(withOrder))
	for i, o := range withOrder {
		out[i] = o.point
	}
	return out
}
