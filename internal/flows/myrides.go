package flows

import (
	"context"

	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/adapter/backend"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/domain/models"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/domain/types"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/session"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/pkg/logger"
	wrap "github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/pkg/logger/wrapper"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/pkg/validator"
)

// MyRidesFlow drives the "my rides" page: upcoming and past bookings, and
// cancellation. Lists are always re-fetched after a mutation; the client
// never transitions a booking status itself.
type MyRidesFlow struct {
	gate
	backend Backend
	session *session.Session
	log     logger.Logger
}

func NewMyRidesFlow(b Backend, s *session.Session, log logger.Logger) *MyRidesFlow {
	return &MyRidesFlow{backend: b, session: s, log: log}
}

// Upcoming fetches the active and upcoming bookings.
func (f *MyRidesFlow) Upcoming(ctx context.Context) ([]models.RideBooking, error) {
	return f.fetch(ctx, f.backend.UpcomingRides)
}

// History fetches past bookings, cancelled ones included.
func (f *MyRidesFlow) History(ctx context.Context) ([]models.RideBooking, error) {
	return f.fetch(ctx, f.backend.HistoryRides)
}

func (f *MyRidesFlow) fetch(ctx context.Context, call func(context.Context, string) ([]backend.RideBasicInfoDTO, error)) ([]models.RideBooking, error) {
	ctx = wrap.WithAction(ctx, types.ActionFetchRides)

	userID, err := f.session.Require(ctx)
	if err != nil {
		return nil, err
	}
	ctx = wrap.WithUserID(ctx, userID)

	dtos, err := call(ctx, userID)
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}

	bookings := make([]models.RideBooking, 0, len(dtos))
	for _, dto := range dtos {
		booking, err := bookingFromDTO(dto)
		if err != nil {
			return nil, wrap.Error(ctx, err)
		}
		bookings = append(bookings, booking)
	}
	return bookings, nil
}

// Cancel cancels the booking on the given trip. The caller re-fetches both
// lists afterwards; a successful cancel moves the booking from upcoming to
// history on the server.
func (f *MyRidesFlow) Cancel(ctx context.Context, tripID, reason string) (retErr error) {
	if err := f.begin(); err != nil {
		return err
	}
	defer func() { f.finish(retErr) }()

	ctx = wrap.WithAction(ctx, types.ActionCancelRide)
	ctx = wrap.WithTripID(ctx, tripID)

	v := validator.New()
	v.Check(tripID != "", "tripId", "must be provided")
	if !v.Valid() {
		return wrap.Error(ctx, validationError(v))
	}

	userID, err := f.session.Require(ctx)
	if err != nil {
		return err
	}
	ctx = wrap.WithUserID(ctx, userID)

	resp, err := f.backend.CancelRide(ctx, userID, backend.CancelRideRequestDTO{
		TripID:             tripID,
		CancellationReason: reason,
	})
	if err != nil {
		return wrap.Error(ctx, err)
	}
	if !resp.RideCancelled {
		return wrap.Error(ctx, serverFailure(resp.ErrMsg))
	}

	f.log.Info(ctx, "ride cancelled")
	return nil
}
