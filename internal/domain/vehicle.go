package domain

import "fmt"

// Fixed characteristics of the vehicle being routed.
// The planner never drives past UsableRangeMiles on a single tank;
// the safety margin is fuel held in reserve, not extra capacity.
type VehicleProfile struct {
	MaxRangeMiles       float64
	MilesPerGallon      float64
	TankCapacityGallons float64
	SafetyMarginMiles   float64
}

// DefaultVehicleProfile matches the long-haul truck the catalogue prices target.
func DefaultVehicleProfile() VehicleProfile {
	return VehicleProfile{
		MaxRangeMiles:       500,
		MilesPerGallon:      10,
		TankCapacityGallons: 50,
		SafetyMarginMiles:   50,
	}
}

// UsableRangeMiles is the farthest the vehicle travels on a full tank
// without eating into the safety margin.
func (v VehicleProfile) UsableRangeMiles() float64 {
	return v.MaxRangeMiles - v.SafetyMarginMiles
}

func (v VehicleProfile) Validate() error {
	if v.MilesPerGallon <= 0 {
		return fmt.Errorf("vehicle profile: miles per gallon must be positive, got %v", v.MilesPerGallon)
	}

	if v.TankCapacityGallons <= 0 {
		return fmt.Errorf("vehicle profile: tank capacity must be positive, got %v", v.TankCapacityGallons)
	}

	if v.UsableRangeMiles() <= 0 {
		return fmt.Errorf(
			"vehicle profile: usable range must be positive (max range %v - safety margin %v)",
			v.MaxRangeMiles, v.SafetyMarginMiles,
		)
	}

	return nil
}
