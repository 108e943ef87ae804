package flows

import (
	"context"
	"strconv"

	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/adapter/backend"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/domain/models"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/domain/types"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/session"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/pkg/logger"
	wrap "github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/pkg/logger/wrapper"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/pkg/validator"
)

// VehiclesFlow drives vehicle registration and listing. Vehicles are never
// edited or deleted from the client.
type VehiclesFlow struct {
	gate
	backend Backend
	session *session.Session
	log     logger.Logger
}

func NewVehiclesFlow(b Backend, s *session.Session, log logger.Logger) *VehiclesFlow {
	return &VehiclesFlow{backend: b, session: s, log: log}
}

// List fetches the session user's registered vehicles.
func (f *VehiclesFlow) List(ctx context.Context) ([]models.Vehicle, error) {
	ctx = wrap.WithAction(ctx, types.ActionFetchVehicles)

	userID, err := f.session.Require(ctx)
	if err != nil {
		return nil, err
	}
	ctx = wrap.WithUserID(ctx, userID)

	dtos, err := f.backend.GetVehicles(ctx, userID)
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}

	vehicles := make([]models.Vehicle, 0, len(dtos))
	for _, dto := range dtos {
		vehicle, err := vehicleFromDTO(dto)
		if err != nil {
			return nil, wrap.Error(ctx, err)
		}
		vehicles = append(vehicles, vehicle)
	}
	return vehicles, nil
}

// Register submits a new vehicle.
func (f *VehiclesFlow) Register(ctx context.Context, vehicle models.Vehicle) (retErr error) {
	if err := f.begin(); err != nil {
		return err
	}
	defer func() { f.finish(retErr) }()

	ctx = wrap.WithAction(ctx, types.ActionRegisterVehicle)

	v := validator.New()
	v.Check(vehicle.VehicleNumber != "", "vehicleNumber", "must be provided")
	v.Check(vehicle.VehicleName != "", "vehicleName", "must be provided")
	v.Check(validator.PermittedValue(vehicle.VehicleType,
		types.Hatchback, types.Sedan, types.SUV, types.Van),
		"vehicleType", "must be one of HATCHBACK, SEDAN, SUV, or VAN")
	v.Check(vehicle.SeatingCapacity >= 1, "seatingCapacity", "must be at least 1")
	if !v.Valid() {
		return wrap.Error(ctx, validationError(v))
	}

	userID, err := f.session.Require(ctx)
	if err != nil {
		return err
	}
	ctx = wrap.WithUserID(ctx, userID)

	err = f.backend.RegisterVehicle(ctx, userID, backend.VehicleRegisterRequestDTO{
		VehicleName:     vehicle.VehicleName,
		VehicleNumber:   vehicle.VehicleNumber,
		VehicleType:     string(vehicle.VehicleType),
		VehicleColor:    vehicle.VehicleColor,
		SeatingCapacity: strconv.Itoa(vehicle.SeatingCapacity),
	})
	if err != nil {
		return wrap.Error(ctx, err)
	}

	f.log.Info(ctx, "vehicle registered", "vehicle_number", vehicle.VehicleNumber)
	return nil
}
