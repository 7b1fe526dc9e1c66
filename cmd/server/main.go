package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"fuel-route-service/internal/adapters/cache"
	"fuel-route-service/internal/adapters/repositories"
	"fuel-route-service/internal/adapters/routing"
	"fuel-route-service/internal/api"
	"fuel-route-service/internal/config"
	"fuel-route-service/internal/platform/db"
	"fuel-route-service/internal/ports"
	"fuel-route-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (SQLite or Postgres, OSRM, Nominatim) behind
// ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	driver := config.Get("DB_DRIVER", "sqlite")
	port := config.Get("PORT", "8080")

	conn, err := openStorage(driver)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	st := newStores(conn, driver)

	// Station data is fully resident before any planning request: the
	// greedy loop itself performs no I/O.
	stations, err := st.repo.ListStations(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	index := services.NewStationIndex(stations)
	log.Printf("station index ready: driver=%s catalogue=%d indexed=%d", driver, len(stations), index.Size())

	// Providers use an in-memory hot layer over the persistent caches
	// to avoid repeated geocode/route calls.
	geocodeCache := cache.NewLayeredGeocodeCache(
		cache.NewMemoryGeocodeCache(0, cache.DefaultGeocodeTTL),
		st.geocode,
	)
	routeCache := cache.NewLayeredRouteCache(
		cache.NewMemoryRouteCache(0, cache.DefaultRouteTTL),
		st.route,
	)

	geocoder := routing.NewNominatimGeocoder(geocodeCache)
	routes := routing.NewOSRMRouteProvider(routeCache)

	planner := services.NewTripPlanner(geocoder, routes, index, services.DefaultPlannerConfig())
	router := api.NewRouter(st.repo, planner)

	// Timeouts are tuned for cold-cache route planning (external API latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// stores are the persistent backends selected by DB_DRIVER.
type stores struct {
	repo    ports.StationRepository
	geocode ports.GeocodeCache
	route   ports.RouteCache
}

// newStores picks the driver-matched repository and cache flavors.
func newStores(conn *sql.DB, driver string) stores {
	if driver == "postgres" {
		return stores{
			repo:    repositories.NewSQLStationRepository(conn),
			geocode: cache.NewSQLGeocodeCache(conn),
			route:   cache.NewSQLRouteCache(conn),
		}
	}
	return stores{
		repo:    repositories.NewSqliteStationRepository(conn),
		geocode: cache.NewSqliteGeocodeCache(conn),
		route:   cache.NewSqliteRouteCache(conn),
	}
}

// openStorage opens the configured database and brings the schema up.
// The sqlite path also seeds the station catalogue for local runs; the
// Postgres catalogue is loaded out of band by dbtool.
func openStorage(driver string) (*sql.DB, error) {
	switch driver {
	case "postgres":
		databaseURL := config.Get("DATABASE_URL", "")
		if databaseURL == "" {
			return nil, fmt.Errorf("open storage: DATABASE_URL is required with DB_DRIVER=postgres")
		}

		conn, err := db.Open(databaseURL)
		if err != nil {
			return nil, fmt.Errorf("open storage: %w", err)
		}
		if err := repositories.InitPostgresSchema(conn); err != nil {
			conn.Close()
			return nil, fmt.Errorf("open storage: %w", err)
		}
		return conn, nil

	case "sqlite":
		dbPath := config.Get("DB_PATH", "data/app.db")
		seedPath := config.Get("SEED_PATH", "data/seeds/stations.csv")

		conn, err := openDB(dbPath)
		if err != nil {
			return nil, err
		}
		if err := initAndSeed(conn, seedPath); err != nil {
			conn.Close()
			return nil, err
		}
		return conn, nil

	default:
		return nil, fmt.Errorf("open storage: unknown DB_DRIVER %q", driver)
	}
}

func openDB(dbPath string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return conn, nil
}

func initAndSeed(conn *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedFromCSV(conn, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
