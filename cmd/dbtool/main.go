package main

import (
	"database/sql"
	"log"
	"os"
	"strings"

	"grocery-route-service/internal/adapters/repositories"
	"grocery-route-service/internal/config"
	"grocery-route-service/internal/platform/db"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"
)

// dbtool initializes the schema and loads seed data without starting the server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	seedPath := config.Get("SEED_PATH", "data/seeds/stores.json")

	if databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL")); databaseURL != "" {
		conn, err := db.Open(databaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer conn.Close()

		initAndSeedPostgres(conn, seedPath)
		return
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	initAndSeedSqlite(conn, seedPath)
}

func initAndSeedPostgres(conn *sql.DB, seedPath string) {
	log.Println("Initializing postgres schema...")
	if err := repositories.InitSchemaPostgres(conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	log.Println("Seeding database...")
	if err := repositories.SeedFromJSONPostgres(conn, seedPath); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")
}

func initAndSeedSqlite(conn *sql.DB, seedPath string) {
	log.Println("Initializing sqlite schema...")
	if err := repositories.InitSchema(conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	log.Println("Seeding database...")
	if err := repositories.SeedFromJSON(conn, seedPath); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")
}
