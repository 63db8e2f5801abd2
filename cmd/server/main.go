package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"grocery-route-service/internal/adapters/cache"
	"grocery-route-service/internal/adapters/distance"
	"grocery-route-service/internal/adapters/repositories"
	"grocery-route-service/internal/api"
	"grocery-route-service/internal/config"
	"grocery-route-service/internal/platform/db"
	"grocery-route-service/internal/ports"
	"grocery-route-service/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires concrete adapters (SQLite or Postgres storage, Redis cache, ORS or
// haversine distances) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	seedPath := config.Get("SEED_PATH", "data/seeds/stores.json")
	port := config.Get("PORT", "8080")

	conn, postgres, err := openStorage()
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	// Initialize schema and seed demo data on startup for local runs.
	if err := initAndSeed(conn, postgres, seedPath); err != nil {
		log.Fatal(err)
	}

	var storeRepo ports.StoreRepository
	var itemRepo ports.ItemRepository
	var distanceCache ports.DistanceCache
	var geocodeCache ports.GeocodeCache
	if postgres {
		storeRepo = repositories.NewSQLStoreRepository(conn)
		itemRepo = repositories.NewSQLItemRepository(conn)
		distanceCache = cache.NewSQLDistanceCache(conn)
		geocodeCache = cache.NewSQLGeocodeCache(conn)
	} else {
		storeRepo = repositories.NewSqliteStoreRepository(conn)
		itemRepo = repositories.NewSqliteItemRepository(conn)
		distanceCache = cache.NewSqliteDistanceCache(conn)
		geocodeCache = cache.NewSqliteGeocodeCache(conn)
	}

	// A Redis instance, when configured, takes over geocode caching from SQL.
	if addr := os.Getenv("REDIS_ADDR"); strings.TrimSpace(addr) != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		geocodeCache = cache.NewRedisGeocodeCache(client, 0)
		log.Printf("Using redis geocode cache addr=%s", addr)
	}

	orsKey := strings.TrimSpace(os.Getenv("ORS_API_KEY"))

	var geocoder ports.Geocoder
	if orsKey != "" {
		g, err := distance.NewORSGeocoder(orsKey, geocodeCache)
		if err != nil {
			log.Fatal(err)
		}
		geocoder = g
	} else {
		log.Println("ORS_API_KEY not set: address geocoding disabled, requests must carry coordinates")
	}

	// Road distances need the external API; everything else falls back to
	// great-circle miles which need no key and no cache.
	var provider ports.DistanceProvider
	if config.GetBool("ROAD_DISTANCES", false) && orsKey != "" {
		p, err := distance.NewORSDistanceProvider(orsKey, distanceCache)
		if err != nil {
			log.Fatal(err)
		}
		provider = p
		log.Println("Using ORS road distances")
	} else {
		provider = distance.NewHaversineProvider()
		log.Println("Using haversine distances")
	}

	planner := api.PlannerConfig{
		Weights: services.ScoreWeights{
			Items:    config.GetFloat("ITEMS_WEIGHT", services.DefaultScoreWeights().Items),
			Distance: config.GetFloat("DISTANCE_WEIGHT", services.DefaultScoreWeights().Distance),
		},
		MaxStores:     config.GetInt("MAX_STORES", services.DefaultMaxStores),
		MaxExpansions: config.GetInt("MAX_EXPANSIONS", 0),
	}
	if err := planner.Weights.Validate(); err != nil {
		log.Fatalf("invalid score weights: %v", err)
	}

	router := api.NewRouter(storeRepo, itemRepo, geocoder, provider, planner)

	// Timeouts are tuned for cold-cache trip planning (external API latency).
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

// openStorage prefers Postgres when DATABASE_URL is set and falls back to a
// local SQLite file otherwise. The second return reports which one was opened.
func openStorage() (*sql.DB, bool, error) {
	if databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL")); databaseURL != "" {
		conn, err := db.Open(databaseURL)
		if err != nil {
			return nil, false, err
		}
		return conn, true, nil
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, false, fmt.Errorf("openStorage: open sqlite database %q: %w", dbPath, err)
	}
	if err := conn.Ping(); err != nil {
		return nil, false, fmt.Errorf("openStorage: verify sqlite connection to %q: %w", dbPath, err)
	}
	return conn, false, nil
}

func initAndSeed(conn *sql.DB, postgres bool, seedPath string) error {
	if postgres {
		if err := repositories.InitSchemaPostgres(conn); err != nil {
			return fmt.Errorf("init and seed: %w", err)
		}
		if err := repositories.SeedFromJSONPostgres(conn, seedPath); err != nil {
			return fmt.Errorf("init and seed: %w", err)
		}
		return nil
	}

	if err := repositories.InitSchema(conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	if err := repositories.SeedFromJSON(conn, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	return nil
}
