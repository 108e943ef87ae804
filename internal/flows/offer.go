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

// OfferFlow drives the "offer a ride" page: a driver posts a trip.
type OfferFlow struct {
	gate
	backend Backend
	session *session.Session
	log     logger.Logger
}

func NewOfferFlow(b Backend, s *session.Session, log logger.Logger) *OfferFlow {
	return &OfferFlow{backend: b, session: s, log: log}
}

// Create posts the trip offer and returns the new trip id.
func (f *OfferFlow) Create(ctx context.Context, offer models.TripOffer) (tripID string, retErr error) {
	if err := f.begin(); err != nil {
		return "", err
	}
	defer func() { f.finish(retErr) }()

	ctx = wrap.WithAction(ctx, types.ActionCreateTrip)

	v := validator.New()
	v.Check(offer.VehicleNumber != "", "vehicle", "must be selected")
	v.Check(offer.PickupPoint.PlaceAddress != "", "pickup", "must be provided")
	v.Check(offer.DestinationPoint.PlaceAddress != "", "destination", "must be provided")
	v.Check(!offer.StartTime.IsZero(), "startTime", "must be provided")
	v.Check(offer.OfferedSeats >= 1, "seats", "must be at least 1")
	if !v.Valid() {
		return "", wrap.Error(ctx, validationError(v))
	}

	userID, err := f.session.Require(ctx)
	if err != nil {
		return "", err
	}
	ctx = wrap.WithUserID(ctx, userID)

	resp, err := f.backend.CreateTrip(ctx, userID, backend.OfferRideDTO{
		VehicleNumber:    offer.VehicleNumber,
		PickupPoint:      toPoints(offer.PickupPoint),
		DestinationPoint: toPoints(offer.DestinationPoint),
		TripStartTime:    offer.StartTime.Format(timeLayout),
		OfferedSeats:     offer.OfferedSeats,
	})
	if err != nil {
		return "", wrap.Error(ctx, err)
	}
	if !resp.TripCreated {
		return "", wrap.Error(ctx, serverFailure(resp.ErrMsg))
	}

	ctx = wrap.WithTripID(ctx, resp.TripID)
	f.log.Info(ctx, "trip offered", "seats", offer.OfferedSeats)
	return resp.TripID, nil
}
