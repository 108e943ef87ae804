package types

// RideStatus is the lifecycle of a passenger booking. The backend owns every
// transition; the client only ever re-fetches.
type RideStatus string

func (s RideStatus) String() string {
	return string(s)
}

const (
	RidePending   RideStatus = "PENDING"
	RideAllotted  RideStatus = "ALLOTTED"
	RideCancelled RideStatus = "CANCELLED"
	RideCompleted RideStatus = "COMPLETED"
)

// TripStatus describes a driver-posted trip as reported by the backend.
type TripStatus string

const (
	TripScheduled TripStatus = "SCHEDULED"
	TripStarted   TripStatus = "STARTED"
	TripCompleted TripStatus = "COMPLETED"
	TripCancelled TripStatus = "CANCELLED"
)

// VehicleType enum accepted by the vehicle registration endpoint.
type VehicleType string

const (
	Hatchback VehicleType = "HATCHBACK"
	Sedan     VehicleType = "SEDAN"
	SUV       VehicleType = "SUV"
	Van       VehicleType = "VAN"
)

// FlowState is the phase of a page flow submission.
type FlowState string

const (
	FlowIdle       FlowState = "IDLE"
	FlowSubmitting FlowState = "SUBMITTING"
	FlowSuccess    FlowState = "SUCCESS"
	FlowFailure    FlowState = "FAILURE"
)

// ResourceState is the loading phase of an external resource (geocoder, map).
type ResourceState string

const (
	ResourceUninitialized ResourceState = "UNINITIALIZED"
	ResourceLoading       ResourceState = "LOADING"
	ResourceReady         ResourceState = "READY"
	ResourceFailed        ResourceState = "FAILED"
)
