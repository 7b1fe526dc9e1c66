package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fuel-route-service/internal/domain"
)

// SQLite-backed implementation of the StationRepository port.
type SqliteStationRepository struct{ DB *sql.DB }

func NewSqliteStationRepository(db *sql.DB) *SqliteStationRepository {
	return &SqliteStationRepository{DB: db}
}

// Return the full station catalogue ordered by price.
func (s *SqliteStationRepository) ListStations(ctx context.Context) ([]*domain.FuelStation, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite station repository: DB is nil")
	}

	query := `
	SELECT
		station_id,
		name,
		address,
		city,
		state,
		zip_code,
		latitude,
		longitude,
		price_per_gallon
	FROM stations
	ORDER BY price_per_gallon, station_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stations: query stations table: %w", err)
	}
	defer rows.Close()

	stations := make([]*domain.FuelStation, 0, 256)
	for rows.Next() {
		var (
			st       domain.FuelStation
			lat, lon sql.NullFloat64
		)
		err := rows.Scan(
			&st.StationID, &st.Name, &st.Address, &st.City, &st.State,
			&st.ZipCode, &lat, &lon, &st.PricePerGallon,
		)
		if err != nil {
			return nil, fmt.Errorf("list stations: scan row: %w", err)
		}

		if lat.Valid && lon.Valid {
			st.Coord = &domain.Coordinates{Lon: lon.Float64, Lat: lat.Float64}
		}

		stations = append(stations, &st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stations: row iteration: %w", err)
	}

	return stations, nil
}
