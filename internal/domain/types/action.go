package types

const (
	ActionLogin          = "login"
	ActionSignup         = "signup"
	ActionLogout         = "logout"
	ActionSessionRestore = "session_restore"

	ActionFindRides       = "find_rides"
	ActionJoinTrip        = "join_trip"
	ActionCreateTrip      = "create_trip"
	ActionCancelRide      = "cancel_ride"
	ActionFetchRides      = "fetch_rides"
	ActionFetchProfile    = "fetch_profile"
	ActionFetchVehicles   = "fetch_vehicles"
	ActionRegisterVehicle = "register_vehicle"

	ActionTrackPoll   = "track_poll"
	ActionTrackLive   = "track_live"
	ActionGeocode     = "geocode"
	ActionBackendCall = "backend_call"

	ActionExternalServiceFailed = "external_service_failed"
)
