package models

// GeoPoint is a geographic location with an optional display address.
//
// Resolved reports whether the coordinates were actually produced by the
// geocoder. A free-text address that was never resolved keeps Resolved false
// so that (0,0) is never mistaken for "no data".
type GeoPoint struct {
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	PlaceAddress string  `json:"placeAddress,omitempty"`
	Resolved     bool    `json:"-"`
}

// UnresolvedPoint returns a GeoPoint that carries only the typed address.
func UnresolvedPoint(address string) GeoPoint {
	return GeoPoint{PlaceAddress: address}
}

// ResolvedPoint returns a fully resolved GeoPoint.
func ResolvedPoint(lat, lon float64, address string) GeoPoint {
	return GeoPoint{
		Latitude:     lat,
		Longitude:    lon,
		PlaceAddress: address,
		Resolved:     true,
	}
}
