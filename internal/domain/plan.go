package domain

// A single refueling stop in a trip plan, in order of visitation.
// Gallons is the fuel purchased to refill the tank from its projected
// level on arrival back to full capacity.
type FuelStop struct {
	StopNumber             int
	Station                *FuelStation
	DistanceFromStartMiles float64
	Gallons                float64
	Cost                   float64
}

// PlanResult is the complete output of one planning call.
// Totals over fuel are sums over the stops; distance and duration are
// passed through from the routing provider, not recomputed.
// A PlanResult is only ever produced whole; a failed plan yields none.
type PlanResult struct {
	StartLocation      string
	FinishLocation     string
	TotalDistanceMiles float64
	TotalDurationHours float64
	TotalFuelGallons   float64
	TotalFuelCost      float64
	Stops              []FuelStop
	Geometry           []Coordinates
}
