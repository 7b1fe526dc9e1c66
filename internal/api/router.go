package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fuel-route-service/internal/api/handlers"
	"fuel-route-service/internal/metrics"
	"fuel-route-service/internal/ports"
	"fuel-route-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(repo ports.StationRepository, planner *services.TripPlanner) http.Handler {
	metrics.RegisterDefault()

	mux := http.NewServeMux()

	stationHandler := &handlers.StationHandler{Repo: repo}
	planHandler := &handlers.PlanHandler{Planner: planner}

	mux.HandleFunc("/api/health", handlers.Health)
	mux.HandleFunc("/api/stations", stationHandler.List)
	mux.HandleFunc("/api/route", planHandler.Plan)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	return requestIDMiddleware(loggingMiddleware(mux))
}
