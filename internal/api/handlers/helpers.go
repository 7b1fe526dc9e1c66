package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"fuel-route-service/internal/api/dto"
	"fuel-route-service/internal/domain"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

func stationToDTO(s *domain.FuelStation) dto.StationResponse {
	out := dto.StationResponse{
		StationID:      s.StationID,
		Name:           s.Name,
		Address:        s.Address,
		City:           s.City,
		State:          s.State,
		ZipCode:        s.ZipCode,
		PricePerGallon: s.PricePerGallon,
	}
	if s.Coord != nil {
		lat, lon := s.Coord.Lat, s.Coord.Lon
		out.Latitude = &lat
		out.Longitude = &lon
	}
	return out
}
