package dto

type PlanRequest struct {
	Start  string `json:"start"`
	Finish string `json:"finish"`
}

type RouteSummaryResponse struct {
	DistanceMiles  float64     `json:"distance_miles"`
	DurationHours  float64     `json:"duration_hours"`
	StartLocation  string      `json:"start_location"`
	FinishLocation string      `json:"finish_location"`
	Geometry       [][]float64 `json:"geometry"`
}

type FuelStopResponse struct {
	StopNumber             int             `json:"stop_number"`
	Station                StationResponse `json:"station"`
	DistanceFromStartMiles float64         `json:"distance_from_start"`
	FuelAmountGallons      float64         `json:"fuel_amount_gallons"`
	Cost                   float64         `json:"cost"`
}

type PlanResponse struct {
	Route              RouteSummaryResponse `json:"route"`
	FuelStops          []FuelStopResponse   `json:"fuel_stops"`
	TotalFuelCost      float64              `json:"total_fuel_cost"`
	TotalFuelGallons   float64              `json:"total_fuel_gallons"`
	TotalDistanceMiles float64              `json:"total_distance_miles"`
	ResponseTimeMs     int64                `json:"response_time_ms"`
}
