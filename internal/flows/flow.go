package flows

import (
	"context"
	"errors"
	"sync"

	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/adapter/backend"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/domain/types"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/pkg/validator"
)

// Backend is the slice of the API client the page flows depend on.
type Backend interface {
	Login(ctx context.Context, req backend.LoginRequestDTO) (*backend.LoginResponseDTO, error)
	Signup(ctx context.Context, req backend.UserInfoDTO) (*backend.SignUpResponseDTO, error)
	GetUserInfo(ctx context.Context, userID string) (*backend.UserInfoDTO, error)
	FindRides(ctx context.Context, userID string, req backend.RideDTO) ([]backend.TripBasicInfoDTO, error)
	JoinTrip(ctx context.Context, userID string, req backend.RideDTO) (*backend.JoinRideResponseDTO, error)
	UpcomingRides(ctx context.Context, userID string) ([]backend.RideBasicInfoDTO, error)
	HistoryRides(ctx context.Context, userID string) ([]backend.RideBasicInfoDTO, error)
	CancelRide(ctx context.Context, userID string, req backend.CancelRideRequestDTO) (*backend.CancelRideResponseDTO, error)
	CreateTrip(ctx context.Context, userID string, req backend.OfferRideDTO) (*backend.CreateTripResponseDTO, error)
	GetVehicles(ctx context.Context, userID string) ([]backend.VehicleResponseDTO, error)
	RegisterVehicle(ctx context.Context, userID string, req backend.VehicleRegisterRequestDTO) error
}

// gate serializes a flow's submissions: Idle -> Submitting -> Success|Failure.
// A second submit while Submitting is rejected without any network call,
// which is the "disable the trigger control" rule.
type gate struct {
	mu    sync.Mutex
	state types.FlowState
}

func (g *gate) begin() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == types.FlowSubmitting {
		return types.ErrSubmitInProgress
	}
	g.state = types.FlowSubmitting
	return nil
}

func (g *gate) finish(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err != nil {
		g.state = types.FlowFailure
		return
	}
	g.state = types.FlowSuccess
}

// State returns the flow phase for rendering. Success and Failure both count
// as "result rendered"; the next submit restarts from there.
func (g *gate) State() types.FlowState {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == "" {
		return types.FlowIdle
	}
	return g.state
}

// FlowError is a classified, user-visible flow failure.
type FlowError struct {
	Kind    error
	Message string
}

func (e *FlowError) Error() string {
	return e.Kind.Error() + ": " + e.Message
}

func (e *FlowError) Unwrap() error {
	return e.Kind
}

func validationError(v *validator.Validator) error {
	return &FlowError{Kind: types.ErrValidation, Message: v.Message()}
}

func serverFailure(msg string) error {
	if msg == "" {
		msg = "the request was not accepted"
	}
	return &FlowError{Kind: types.ErrServerReported, Message: msg}
}

// Reason extracts the message to show the user from any flow or backend
// error.
func Reason(err error) string {
	var flowErr *FlowError
	if errors.As(err, &flowErr) {
		return flowErr.Message
	}
	return backend.Reason(err)
}

// Classify maps an error onto the failure taxonomy so the UI can word the
// message: validation failures name the missing fields, transport failures
// suggest a retry, external-service failures render inline at the widget.
func Classify(err error) error {
	switch {
	case errors.Is(err, types.ErrValidation):
		return types.ErrValidation
	case errors.Is(err, types.ErrServerReported):
		return types.ErrServerReported
	case errors.Is(err, types.ErrTransport):
		return types.ErrTransport
	case errors.Is(err, types.ErrExternalService):
		return types.ErrExternalService
	case errors.Is(err, types.ErrNotAuthenticated), errors.Is(err, types.ErrSessionExpired):
		return types.ErrNotAuthenticated
	default:
		return types.ErrTransport
	}
}
