package backend

// Wire DTOs for the carpool backend. One canonical schema per entity; the
// envelope shapes are shared by every endpoint.

// RequestDTO is the uniform request envelope for POST endpoints.
type RequestDTO struct {
	UserID         string `json:"userId"`
	RequestContent any    `json:"requestContent"`
}

// ResponseDTO is the uniform response envelope.
type ResponseDTO[T any] struct {
	Success         bool    `json:"success"`
	ErrorMessage    *string `json:"errorMessage"`
	ResponseContent *T      `json:"responseContent"`
}

// ResponseListDTO is the envelope variant for collection endpoints.
type ResponseListDTO[T any] struct {
	Success         bool    `json:"success"`
	ErrorMessage    *string `json:"errorMessage"`
	ResponseContent []T     `json:"responseContent"`
}

// Points is the wire form of a geographic location.
type Points struct {
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	PlaceID      string  `json:"placeId,omitempty"`
	PlaceAddress string  `json:"placeAddress,omitempty"`
}

type LoginRequestDTO struct {
	EmailID  string `json:"emailId"`
	Password string `json:"password"`
}

type LoginResponseDTO struct {
	Username     string `json:"username,omitempty"`
	UserID       string `json:"userId,omitempty"`
	LoginSuccess bool   `json:"loginSuccess"`
	ErrMsg       string `json:"errMsg,omitempty"`
}

type UserInfoDTO struct {
	FullName         string `json:"fullName"`
	EmailID          string `json:"emailId"`
	UserID           string `json:"userId,omitempty"`
	PhoneNumber      string `json:"phoneNumber"`
	Password         string `json:"password,omitempty"`
	OrganisationName string `json:"organisationName,omitempty"`
	ProfilePicURL    string `json:"profilePicUrl,omitempty"`
}

type SignUpResponseDTO struct {
	UserID        string `json:"userId,omitempty"`
	Username      string `json:"username,omitempty"`
	SignUpSuccess bool   `json:"signUpSuccess"`
	ErrMsg        string `json:"errMsg,omitempty"`
}

// RideDTO is the search query payload, reused by join-trip with TripID set.
type RideDTO struct {
	UserID           string `json:"userId,omitempty"`
	TripID           string `json:"tripId,omitempty"`
	PickupPoint      Points `json:"pickupPoint"`
	DestinationPoint Points `json:"destinationPoint"`
	RideStartTime    string `json:"rideStartTime"`
	RequestedSeats   int    `json:"requestedSeats"`
}

type TripBasicInfoDTO struct {
	UserID           string `json:"userId"`
	TripID           string `json:"tripId"`
	ProfilePic       string `json:"profilePic,omitempty"`
	FullName         string `json:"fullName"`
	VehicleNumber    string `json:"vehicleNumber"`
	PickupPoint      Points `json:"pickupPoint"`
	DestinationPoint Points `json:"destinationPoint"`
	TripStartTime    string `json:"tripStartTime"`
	AvailableSeats   int    `json:"availableSeats"`
	PhoneNumber      string `json:"phoneNumber"`
	RequestedSeats   int    `json:"requestedSeats"`
}

type RideBasicInfoDTO struct {
	UserID           string `json:"userId"`
	TripID           string `json:"tripId"`
	PickupPoint      Points `json:"pickupPoint"`
	DestinationPoint Points `json:"destinationPoint"`
	RideStartTime    string `json:"rideStartTime"`
	Seats            string `json:"seats"`
	TripStatus       string `json:"tripStatus"`
	VehicleNumber    string `json:"vehicleNumber"`
}

type JoinRideResponseDTO struct {
	RideJoined bool   `json:"rideJoined"`
	ErrMsg     string `json:"errMsg,omitempty"`
}

type CancelRideRequestDTO struct {
	TripID             string `json:"tripId"`
	CancellationReason string `json:"cancellationReason,omitempty"`
}

type CancelRideResponseDTO struct {
	RideCancelled bool   `json:"rideCancelled"`
	ErrMsg        string `json:"errMsg,omitempty"`
}

type OfferRideDTO struct {
	VehicleNumber    string `json:"vehicleNumber"`
	PickupPoint      Points `json:"pickupPoint"`
	DestinationPoint Points `json:"destinationPoint"`
	TripStartTime    string `json:"tripStartTime"`
	OfferedSeats     int    `json:"offeredSeats"`
}

type CreateTripResponseDTO struct {
	TripID      string `json:"tripId,omitempty"`
	TripCreated bool   `json:"tripCreated"`
	ErrMsg      string `json:"errMsg,omitempty"`
}

type VehicleResponseDTO struct {
	Value           string `json:"value"` // vehicle number
	Text            string `json:"text"`  // vehicle name + color
	SeatingCapacity string `json:"seatingCapacity,omitempty"`
}

type VehicleRegisterRequestDTO struct {
	VehicleName     string `json:"vehicleName"`
	VehicleNumber   string `json:"vehicleNumber"`
	VehicleType     string `json:"vehicleType"`
	VehicleColor    string `json:"vehicleColor"`
	SeatingCapacity string `json:"seatingCapacity,omitempty"`
}
