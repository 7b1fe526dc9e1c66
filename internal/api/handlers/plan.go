package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"fuel-route-service/internal/api/dto"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/metrics"
	"fuel-route-service/internal/services"
)

// Geometry points included in the response; the full polyline for a long
// route is tens of thousands of points.
const maxResponseGeometry = 100

// PlanHandler exposes the fuel-stop planning endpoint.
type PlanHandler struct {
	Planner *services.TripPlanner
}

// Plan computes the cheapest refueling plan between two place names.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	start := time.Now()

	var req dto.PlanRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if strings.TrimSpace(req.Start) == "" || strings.TrimSpace(req.Finish) == "" {
		writeError(w, r, http.StatusBadRequest, "start and finish are required")
		return
	}

	result, err := h.Planner.Plan(r.Context(), req.Start, req.Finish)
	if err != nil {
		h.writePlanError(w, r, err)
		return
	}
	metrics.Plans.WithLabelValues("ok").Inc()

	geometry := result.Geometry
	if len(geometry) > maxResponseGeometry {
		geometry = geometry[:maxResponseGeometry]
	}
	geometryPairs := make([][]float64, 0, len(geometry))
	for _, c := range geometry {
		geometryPairs = append(geometryPairs, c.CoordsToList())
	}

	stops := make([]dto.FuelStopResponse, 0, len(result.Stops))
	for _, s := range result.Stops {
		stops = append(stops, dto.FuelStopResponse{
			StopNumber:             s.StopNumber,
			Station:                stationToDTO(s.Station),
			DistanceFromStartMiles: s.DistanceFromStartMiles,
			FuelAmountGallons:      s.Gallons,
			Cost:                   s.Cost,
		})
	}

	res := dto.PlanResponse{
		Route: dto.RouteSummaryResponse{
			DistanceMiles:  result.TotalDistanceMiles,
			DurationHours:  result.TotalDurationHours,
			StartLocation:  result.StartLocation,
			FinishLocation: result.FinishLocation,
			Geometry:       geometryPairs,
		},
		FuelStops:          stops,
		TotalFuelCost:      result.TotalFuelCost,
		TotalFuelGallons:   result.TotalFuelGallons,
		TotalDistanceMiles: result.TotalDistanceMiles,
		ResponseTimeMs:     time.Since(start).Milliseconds(),
	}

	writeJSON(w, r, http.StatusOK, res)
}

// writePlanError maps the planning error taxonomy onto HTTP statuses.
// Caller mistakes (unresolvable places, no reachable station) are 4xx;
// provider outages are 502; anything else is a 500.
func (h *PlanHandler) writePlanError(w http.ResponseWriter, r *http.Request, err error) {
	metrics.Plans.WithLabelValues("error").Inc()

	var geocodeErr *domain.GeocodeFailedError
	var noStationErr *domain.NoReachableStationError
	var routeErr *domain.RouteUnavailableError

	switch {
	case errors.As(err, &geocodeErr):
		writeError(w, r, http.StatusBadRequest, geocodeErr.Error())
	case errors.As(err, &noStationErr):
		writeError(w, r, http.StatusBadRequest, noStationErr.Error())
	case errors.As(err, &routeErr):
		log.Printf("routing provider failed: %v", err)
		writeError(w, r, http.StatusBadGateway, "routing provider unavailable")
	default:
		log.Printf("plan trip failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
