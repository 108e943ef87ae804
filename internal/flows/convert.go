package flows

import (
	"fmt"
	"strconv"
	"time"

	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/adapter/backend"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/domain/models"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/domain/types"
)

// timeLayout is the wire form of trip timestamps.
const timeLayout = time.RFC3339

func toPoints(p models.GeoPoint) backend.Points {
	return backend.Points{
		Latitude:     p.Latitude,
		Longitude:    p.Longitude,
		PlaceAddress: p.PlaceAddress,
	}
}

func fromPoints(p backend.Points) models.GeoPoint {
	// Anything that came back from the backend with coordinates counts as
	// resolved; the tri-state only matters on the input side.
	resolved := p.Latitude != 0 || p.Longitude != 0
	return models.GeoPoint{
		Latitude:     p.Latitude,
		Longitude:    p.Longitude,
		PlaceAddress: p.PlaceAddress,
		Resolved:     resolved,
	}
}

func parseWireTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func tripFromDTO(dto backend.TripBasicInfoDTO) models.TripSummary {
	return models.TripSummary{
		TripID:           dto.TripID,
		DriverID:         dto.UserID,
		DriverName:       dto.FullName,
		PhoneNumber:      dto.PhoneNumber,
		VehicleNumber:    dto.VehicleNumber,
		PickupPoint:      fromPoints(dto.PickupPoint),
		DestinationPoint: fromPoints(dto.DestinationPoint),
		StartTime:        parseWireTime(dto.TripStartTime),
		AvailableSeats:   dto.AvailableSeats,
	}
}

// parseWireSeats parses a numeric seat field that the backend sends as a
// string. An omitted field decodes to "" and means zero; anything else must
// be a number, a malformed value is treated like any other malformed
// response.
func parseWireSeats(field, value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, &backend.APIError{
			Kind:    types.ErrTransport,
			Message: fmt.Sprintf("malformed %s %q in response", field, value),
		}
	}
	return n, nil
}

func bookingFromDTO(dto backend.RideBasicInfoDTO) (models.RideBooking, error) {
	seats, err := parseWireSeats("seats", dto.Seats)
	if err != nil {
		return models.RideBooking{}, err
	}
	return models.RideBooking{
		TripID:           dto.TripID,
		PickupPoint:      fromPoints(dto.PickupPoint),
		DestinationPoint: fromPoints(dto.DestinationPoint),
		StartTime:        parseWireTime(dto.RideStartTime),
		Seats:            seats,
		Status:           types.RideStatus(dto.TripStatus),
		VehicleNumber:    dto.VehicleNumber,
	}, nil
}

func profileFromDTO(dto backend.UserInfoDTO) models.UserIdentity {
	return models.UserIdentity{
		UserID:           dto.UserID,
		FullName:         dto.FullName,
		EmailID:          dto.EmailID,
		PhoneNumber:      dto.PhoneNumber,
		OrganisationName: dto.OrganisationName,
		ProfilePicURL:    dto.ProfilePicURL,
	}
}

func vehicleFromDTO(dto backend.VehicleResponseDTO) (models.Vehicle, error) {
	capacity, err := parseWireSeats("seatingCapacity", dto.SeatingCapacity)
	if err != nil {
		return models.Vehicle{}, err
	}
	return models.Vehicle{
		VehicleNumber:   dto.Value,
		VehicleName:     dto.Text,
		SeatingCapacity: capacity,
	}, nil
}
