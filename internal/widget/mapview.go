package widget

import (
	"math"
	"sync"

	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/domain/models"
)

// Bounds is a latitude/longitude box fitted around a marker set.
type Bounds struct {
	MinLat, MinLon float64
	MaxLat, MaxLon float64
}

// Contains reports whether the point lies inside the box, borders included.
func (b Bounds) Contains(p models.GeoPoint) bool {
	return p.Latitude >= b.MinLat && p.Latitude <= b.MaxLat &&
		p.Longitude >= b.MinLon && p.Longitude <= b.MaxLon
}

// Center returns the midpoint of the box.
func (b Bounds) Center() (lat, lon float64) {
	return (b.MinLat + b.MaxLat) / 2, (b.MinLon + b.MaxLon) / 2
}

// SpanKm returns the diagonal of the box in kilometers.
func (b Bounds) SpanKm() float64 {
	return Haversine(b.MinLat, b.MinLon, b.MaxLat, b.MaxLon)
}

// MapView is the map display model: a marker set and the viewport bounds
// fitted to it. The external map resource is loaded lazily at most once per
// instance.
type MapView struct {
	loadOnce sync.Once
	load     func() error
	loadErr  error

	mu      sync.Mutex
	markers []models.GeoPoint
	bounds  *Bounds
}

// NewMapView wraps a loader for the external mapping resource. A nil loader
// means there is nothing to load.
func NewMapView(load func() error) *MapView {
	return &MapView{load: load}
}

// SetMarkers replaces the marker set and refits the viewport. Previous
// markers never leak into the new render; with zero markers no bounds are
// fitted at all.
func (m *MapView) SetMarkers(points []models.GeoPoint) error {
	if err := m.ensureLoaded(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.markers = make([]models.GeoPoint, len(points))
	copy(m.markers, points)

	if len(points) == 0 {
		m.bounds = nil
		return nil
	}

	b := Bounds{
		MinLat: points[0].Latitude, MaxLat: points[0].Latitude,
		MinLon: points[0].Longitude, MaxLon: points[0].Longitude,
	}
	for _, p := range points[1:] {
		b.MinLat = math.Min(b.MinLat, p.Latitude)
		b.MaxLat = math.Max(b.MaxLat, p.Latitude)
		b.MinLon = math.Min(b.MinLon, p.Longitude)
		b.MaxLon = math.Max(b.MaxLon, p.Longitude)
	}
	m.bounds = &b
	return nil
}

// Markers returns a copy of the current marker set.
func (m *MapView) Markers() []models.GeoPoint {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.GeoPoint, len(m.markers))
	copy(out, m.markers)
	return out
}

// Bounds returns the fitted viewport, or false when there are no markers.
func (m *MapView) Bounds() (Bounds, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.bounds == nil {
		return Bounds{}, false
	}
	return *m.bounds, true
}

func (m *MapView) ensureLoaded() error {
	m.loadOnce.Do(func() {
		if m.load != nil {
			m.loadErr = m.load()
		}
	})
	return m.loadErr
}

// Haversine returns the great-circle distance in kilometers.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKm = 6371.0

	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
