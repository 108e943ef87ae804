package models

import (
	"time"

	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/domain/types"
)

// TripOffer is a driver-posted trip to be created through the backend.
type TripOffer struct {
	VehicleNumber    string
	PickupPoint      GeoPoint
	DestinationPoint GeoPoint
	StartTime        time.Time
	OfferedSeats     int
}

// RideSearchQuery is the ephemeral input of a ride search form.
type RideSearchQuery struct {
	PickupPoint      GeoPoint
	DestinationPoint GeoPoint
	StartTime        time.Time
	RequestedSeats   int
}

// TripSummary is a read-only snapshot of a matching trip returned by the
// ride search. The backend owns the record; a later fetch simply replaces it.
type TripSummary struct {
	TripID           string
	DriverID         string
	DriverName       string
	PhoneNumber      string
	VehicleNumber    string
	PickupPoint      GeoPoint
	DestinationPoint GeoPoint
	StartTime        time.Time
	AvailableSeats   int
}

// Joinable reports whether the Join action should be enabled for the given
// seat request. Advisory only, the backend enforces seat availability.
func (t TripSummary) Joinable(requestedSeats int) bool {
	return t.AvailableSeats >= requestedSeats
}

// RideBooking is a passenger reservation against a TripOffer.
type RideBooking struct {
	TripID           string
	PickupPoint      GeoPoint
	DestinationPoint GeoPoint
	StartTime        time.Time
	Seats            int
	Status           types.RideStatus
	VehicleNumber    string
}
