package models

import "github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/domain/types"

// Vehicle is a registered vehicle owned by the session user. The client
// only creates and lists vehicles, never edits or deletes them.
type Vehicle struct {
	VehicleNumber   string
	VehicleName     string
	VehicleType     types.VehicleType
	VehicleColor    string
	SeatingCapacity int
}

// Label is the display form used by vehicle pickers.
func (v Vehicle) Label() string {
	if v.VehicleColor == "" {
		return v.VehicleName
	}
	return v.VehicleName + " " + v.VehicleColor
}
