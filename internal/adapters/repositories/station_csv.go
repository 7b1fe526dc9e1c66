package repositories

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"fuel-route-service/internal/domain"
)

// Column headers of the OPIS truckstop price export.
const (
	colStationID = "OPIS Truckstop ID"
	colName      = "Truckstop Name"
	colAddress   = "Address"
	colCity      = "City"
	colState     = "State"
	colPrice     = "Retail Price"

	// Optional columns present in pre-geocoded seed files.
	colLatitude  = "Latitude"
	colLongitude = "Longitude"
)

// ParseStationsCSV reads an OPIS price export into station entities.
// Rows missing required fields or carrying an unparsable price are
// skipped and counted, matching the forgiving load behavior expected of
// bulk price data. OPIS ids repeat across fuel lanes, so the row number
// is appended to keep station ids unique.
func ParseStationsCSV(r io.Reader) (stations []*domain.FuelStation, skipped int, err error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("parse stations csv: read header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.TrimSpace(h)] = i
	}

	for _, required := range []string{colStationID, colName, colAddress, colCity, colState, colPrice} {
		if _, ok := col[required]; !ok {
			return nil, 0, fmt.Errorf("parse stations csv: missing column %q", required)
		}
	}

	latIdx, hasLat := col[colLatitude]
	lonIdx, hasLon := col[colLongitude]
	hasCoords := hasLat && hasLon

	field := func(row []string, name string) string {
		i := col[name]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("parse stations csv: read row %d: %w", rowNum+1, err)
		}
		rowNum++

		idBase := field(row, colStationID)
		name := field(row, colName)
		city := field(row, colCity)
		state := field(row, colState)
		priceStr := field(row, colPrice)

		if idBase == "" || name == "" || city == "" || state == "" || priceStr == "" {
			skipped++
			continue
		}

		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price < 0 {
			skipped++
			continue
		}

		address := field(row, colAddress)
		if address == "" {
			address = "N/A"
		}

		station := &domain.FuelStation{
			StationID:      fmt.Sprintf("%s-%d", idBase, rowNum),
			Name:           name,
			Address:        address,
			City:           city,
			State:          state,
			ZipCode:        "00000",
			PricePerGallon: price,
		}

		if hasCoords {
			latStr := strings.TrimSpace(row[latIdx])
			lonStr := strings.TrimSpace(row[lonIdx])
			if latStr != "" && lonStr != "" {
				lat, latErr := strconv.ParseFloat(latStr, 64)
				lon, lonErr := strconv.ParseFloat(lonStr, 64)
				if latErr == nil && lonErr == nil {
					station.Coord = &domain.Coordinates{Lon: lon, Lat: lat}
				}
			}
		}

		stations = append(stations, station)
	}

	return stations, skipped, nil
}

// SeedFromCSV populates the stations table from an OPIS price export.
// Stations without coordinate columns are stored with NULL coordinates;
// they stay browsable but are excluded from spatial queries.
func SeedFromCSV(db *sql.DB, csvPath string) error {
	f, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("seed stations: open %q: %w", csvPath, err)
	}
	defer f.Close()

	stations, skipped, err := ParseStationsCSV(f)
	if err != nil {
		return fmt.Errorf("seed stations: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed stations: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT OR REPLACE INTO stations (
		station_id,
		name,
		address,
		city,
		state,
		zip_code,
		latitude,
		longitude,
		price_per_gallon
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed stations: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range stations {
		var lat, lon any
		if s.Coord != nil {
			lat = s.Coord.Lat
			lon = s.Coord.Lon
		}

		if _, err := stmt.Exec(
			s.StationID, s.Name, s.Address, s.City, s.State, s.ZipCode,
			lat, lon, s.PricePerGallon,
		); err != nil {
			return fmt.Errorf("seed stations: insert station_id=%q: %w", s.StationID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed stations: commit tx: %w", err)
	}

	if skipped > 0 {
		log.Printf("seed stations: loaded=%d skipped=%d", len(stations), skipped)
	}

	return nil
}
