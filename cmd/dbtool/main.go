package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"fuel-route-service/internal/adapters/cache"
	"fuel-route-service/internal/adapters/repositories"
	"fuel-route-service/internal/adapters/routing"
	"fuel-route-service/internal/config"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/db"
	"fuel-route-service/internal/ports"
)

// dbtool loads an OPIS truckstop price export into Postgres, geocoding
// each distinct city/state once through Nominatim. Geocode results are
// cached in the database, so re-runs only resolve new places.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	limit := flag.Int("limit", 0, "max stations to load (0 = all)")
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatal("usage: dbtool [--limit N] <stations.csv>")
	}
	csvPath := flag.Arg(0)

	databaseURL := config.Get("DATABASE_URL", "")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	if err := loadStations(conn, csvPath, *limit); err != nil {
		log.Fatal(err)
	}
}

func loadStations(conn *sql.DB, csvPath string, limit int) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitPostgresSchema(conn); err != nil {
		return fmt.Errorf("load stations: %w", err)
	}
	log.Println("Schema ready.")

	f, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("load stations: open %q: %w", csvPath, err)
	}
	defer f.Close()

	stations, skipped, err := repositories.ParseStationsCSV(f)
	if err != nil {
		return fmt.Errorf("load stations: %w", err)
	}
	log.Printf("Parsed %d stations (skipped %d rows)", len(stations), skipped)

	if limit > 0 && len(stations) > limit {
		stations = stations[:limit]
	}

	geocoder := routing.NewNominatimGeocoder(cache.NewLayeredGeocodeCache(
		cache.NewMemoryGeocodeCache(0, cache.DefaultGeocodeTTL),
		cache.NewSQLGeocodeCache(conn),
	))

	repo := repositories.NewSQLStationRepository(conn)
	ctx := context.Background()

	loaded := 0
	unresolved := 0
	for _, st := range stations {
		if st.Coord == nil {
			coord, err := geocodeCityState(ctx, geocoder, st.City, st.State)
			if err != nil {
				log.Printf("could not geocode %s, %s: %v", st.City, st.State, err)
				unresolved++
			} else {
				st.Coord = &coord
			}
		}

		if err := repo.UpsertStation(ctx, st); err != nil {
			return fmt.Errorf("load stations: %w", err)
		}

		loaded++
		if loaded%50 == 0 {
			log.Printf("Loaded %d stations...", loaded)
		}
	}

	log.Printf("Successfully loaded %d stations (%d without coordinates)", loaded, unresolved)
	return nil
}

// geocodeCityState resolves on city and state only; street addresses in
// the export are too noisy for reliable matches. The pause keeps the
// tool under Nominatim's one-request-per-second usage policy (cache hits
// skip both the call and the pause).
var geocoded = map[string]domain.Coordinates{}

func geocodeCityState(ctx context.Context, geocoder ports.Geocoder, city, state string) (domain.Coordinates, error) {
	place := fmt.Sprintf("%s, %s, USA", city, state)

	if c, ok := geocoded[place]; ok {
		return c, nil
	}

	log.Printf("Geocoding: %s, %s", city, state)
	coord, err := geocoder.Geocode(ctx, place)
	if err != nil {
		return domain.Coordinates{}, err
	}
	geocoded[place] = coord

	time.Sleep(time.Second)
	return coord, nil
}
