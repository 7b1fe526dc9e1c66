package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/obs"
)

// SQLStationRepository is the Postgres-backed variant of the station
// repository, used by the data-loading toolchain.
type SQLStationRepository struct{ DB *sql.DB }

func NewSQLStationRepository(db *sql.DB) *SQLStationRepository {
	return &SQLStationRepository{DB: db}
}

// Initialize the Postgres schema for stations and caches.
func InitPostgresSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init postgres schema: DB is nil")
	}

	statements := []string{
		`
		CREATE TABLE IF NOT EXISTS stations (
			station_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			address TEXT NOT NULL,
			city TEXT NOT NULL,
			state TEXT NOT NULL,
			zip_code TEXT NOT NULL,
			latitude DOUBLE PRECISION,
			longitude DOUBLE PRECISION,
			price_per_gallon DOUBLE PRECISION NOT NULL
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS geocode_cache (
			place TEXT PRIMARY KEY,
			lon DOUBLE PRECISION NOT NULL,
			lat DOUBLE PRECISION NOT NULL
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS route_cache (
			route_key TEXT PRIMARY KEY,
			distance_miles DOUBLE PRECISION NOT NULL,
			duration_hours DOUBLE PRECISION NOT NULL,
			geometry TEXT NOT NULL
		);
		`,
		`
		CREATE INDEX IF NOT EXISTS idx_stations_latitude_longitude
		ON stations(latitude, longitude);
		`,
		`
		CREATE INDEX IF NOT EXISTS idx_stations_price_per_gallon
		ON stations(price_per_gallon);
		`,
	}

	for i, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("init postgres schema: exec statement #%d: %w", i+1, err)
		}
	}

	return nil
}

// UpsertStation writes a single station record.
func (s *SQLStationRepository) UpsertStation(ctx context.Context, st *domain.FuelStation) error {
	if s.DB == nil {
		return errors.New("sql station repository: DB is nil")
	}
	if st == nil {
		return errors.New("upsert station: station is nil")
	}

	var lat, lon any
	if st.Coord != nil {
		lat = st.Coord.Lat
		lon = st.Coord.Lon
	}

	q := `
	INSERT INTO stations (
		station_id, name, address, city, state, zip_code,
		latitude, longitude, price_per_gallon
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (station_id) DO UPDATE
	SET name = EXCLUDED.name,
		address = EXCLUDED.address,
		city = EXCLUDED.city,
		state = EXCLUDED.state,
		zip_code = EXCLUDED.zip_code,
		latitude = EXCLUDED.latitude,
		longitude = EXCLUDED.longitude,
		price_per_gallon = EXCLUDED.price_per_gallon;
	`

	if _, err := s.DB.ExecContext(ctx, q,
		st.StationID, st.Name, st.Address, st.City, st.State, st.ZipCode,
		lat, lon, st.PricePerGallon,
	); err != nil {
		return fmt.Errorf("upsert station station_id=%q: %w", st.StationID, err)
	}

	return nil
}

// Return the full station catalogue ordered by price.
func (s *SQLStationRepository) ListStations(ctx context.Context) (_ []*domain.FuelStation, err error) {
	defer obs.Time(ctx, "stations.List")(&err)

	if s.DB == nil {
		return nil, errors.New("sql station repository: DB is nil")
	}

	query := `
	SELECT
		station_id, name, address, city, state, zip_code,
		latitude, longitude, price_per_gallon
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
