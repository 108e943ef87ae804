package widget

import (
	"errors"
	"math"
	"testing"

	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/domain/models"
)

func TestSetMarkers_BoundsContainAll(t *testing.T) {
	m := NewMapView(nil)

	pickup := models.ResolvedPoint(-6.7924, 39.2083, "Dar es Salaam")
	dest := models.ResolvedPoint(-6.1630, 35.7516, "Dodoma")

	if err := m.SetMarkers([]models.GeoPoint{pickup, dest}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bounds, ok := m.Bounds()
	if !ok {
		t.Fatal("expected fitted bounds")
	}
	if !bounds.Contains(pickup) || !bounds.Contains(dest) {
		t.Fatalf("bounds must contain both markers: %+v", bounds)
	}
}

func TestSetMarkers_ZeroMarkersNoBounds(t *testing.T) {
	m := NewMapView(nil)

	if err := m.SetMarkers(nil); err != nil {
		t.Fatalf("zero markers must not fail: %v", err)
	}
	if _, ok := m.Bounds(); ok {
		t.Fatal("no bounds may be fitted for an empty marker set")
	}
}

func TestSetMarkers_ClearsStaleMarkers(t *testing.T) {
	m := NewMapView(nil)

	first := []models.GeoPoint{
		models.ResolvedPoint(1, 1, "a"),
		models.ResolvedPoint(2, 2, "b"),
		models.ResolvedPoint(3, 3, "c"),
	}
	if err := m.SetMarkers(first); err != nil {
		t.Fatal(err)
	}

	second := []models.GeoPoint{models.ResolvedPoint(10, 10, "d")}
	if err := m.SetMarkers(second); err != nil {
		t.Fatal(err)
	}

	markers := m.Markers()
	if len(markers) != 1 || markers[0].PlaceAddress != "d" {
		t.Fatalf("stale markers must be cleared, got %+v", markers)
	}

	bounds, ok := m.Bounds()
	if !ok {
		t.Fatal("expected bounds for the new marker set")
	}
	if bounds.Contains(models.ResolvedPoint(1, 1, "a")) {
		t.Fatal("bounds must be refitted to the new set only")
	}
}

func TestMapView_LoaderRunsOnce(t *testing.T) {
	calls := 0
	m := NewMapView(func() error {
		calls++
		return nil
	})

	for i := 0; i < 3; i++ {
		if err := m.SetMarkers(nil); err != nil {
			t.Fatal(err)
		}
	}
	if calls != 1 {
		t.Fatalf("loader must run exactly once, ran %d times", calls)
	}
}

func TestMapView_LoaderFailureSticks(t *testing.T) {
	boom := errors.New("map resource failed to load")
	m := NewMapView(func() error { return boom })

	if err := m.SetMarkers(nil); !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}
	// The loader is not retried; the failure is the instance's state.
	if err := m.SetMarkers(nil); !errors.Is(err, boom) {
		t.Fatalf("expected sticky loader error, got %v", err)
	}
}

func TestHaversine(t *testing.T) {
	if d := Haversine(0, 0, 0, 0); d != 0 {
		t.Fatalf("expected 0, got %f", d)
	}

	// Dar es Salaam to Dodoma is roughly 390-400 km.
	d := Haversine(-6.7924, 39.2083, -6.1630, 35.7516)
	if math.Abs(d-390) > 20 {
		t.Fatalf("unexpected distance %f km", d)
	}
}
