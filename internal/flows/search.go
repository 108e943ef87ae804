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

// SearchFlow drives the "find a ride" page: search for matching trips, then
// join one.
type SearchFlow struct {
	gate
	backend Backend
	session *session.Session
	log     logger.Logger
}

func NewSearchFlow(b Backend, s *session.Session, log logger.Logger) *SearchFlow {
	return &SearchFlow{backend: b, session: s, log: log}
}

func validateQuery(v *validator.Validator, query models.RideSearchQuery) {
	v.Check(query.PickupPoint.PlaceAddress != "", "pickup", "must be provided")
	v.Check(query.DestinationPoint.PlaceAddress != "", "destination", "must be provided")
	v.Check(!query.StartTime.IsZero(), "startTime", "must be provided")
	v.Check(query.RequestedSeats >= 1, "seats", "must be at least 1")
}

func (f *SearchFlow) queryDTO(query models.RideSearchQuery) backend.RideDTO {
	return backend.RideDTO{
		PickupPoint:      toPoints(query.PickupPoint),
		DestinationPoint: toPoints(query.DestinationPoint),
		RideStartTime:    query.StartTime.Format(timeLayout),
		RequestedSeats:   query.RequestedSeats,
	}
}

// Search submits the ride search. An empty result is a valid "no rides
// found" state, not a failure.
func (f *SearchFlow) Search(ctx context.Context, query models.RideSearchQuery) (trips []models.TripSummary, retErr error) {
	if err := f.begin(); err != nil {
		return nil, err
	}
	defer func() { f.finish(retErr) }()

	ctx = wrap.WithAction(ctx, types.ActionFindRides)

	v := validator.New()
	validateQuery(v, query)
	if !v.Valid() {
		return nil, wrap.Error(ctx, validationError(v))
	}

	userID, err := f.session.Require(ctx)
	if err != nil {
		return nil, err
	}
	ctx = wrap.WithUserID(ctx, userID)

	found, err := f.backend.FindRides(ctx, userID, f.queryDTO(query))
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}

	trips = make([]models.TripSummary, 0, len(found))
	for _, dto := range found {
		trips = append(trips, tripFromDTO(dto))
	}
	return trips, nil
}

// Join books seats on the given trip. A server response with rideJoined
// false surfaces the embedded errMsg as the failure reason.
func (f *SearchFlow) Join(ctx context.Context, query models.RideSearchQuery, tripID string) (retErr error) {
	if err := f.begin(); err != nil {
		return err
	}
	defer func() { f.finish(retErr) }()

	ctx = wrap.WithAction(ctx, types.ActionJoinTrip)
	ctx = wrap.WithTripID(ctx, tripID)

	v := validator.New()
	validateQuery(v, query)
	v.Check(tripID != "", "tripId", "must be provided")
	if !v.Valid() {
		return wrap.Error(ctx, validationError(v))
	}

	userID, err := f.session.Require(ctx)
	if err != nil {
		return err
	}
	ctx = wrap.WithUserID(ctx, userID)

	req := f.queryDTO(query)
	req.TripID = tripID
	req.UserID = userID

	resp, err := f.backend.JoinTrip(ctx, userID, req)
	if err != nil {
		return wrap.Error(ctx, err)
	}
	if !resp.RideJoined {
		return wrap.Error(ctx, serverFailure(resp.ErrMsg))
	}

	f.log.Info(ctx, "joined trip", "seats", query.RequestedSeats)
	return nil
}
