// Command seed loads towers, parcels, customers and drones from a YAML file
// into the database. Running it twice is harmless: existing records are kept.
//
//	go run ./cmd/seed -fixtures ./cmd/seed/fixtures.yaml
package main

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"dropoff/internal/adapters/out/postgres"
	"dropoff/internal/pkg/logging"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	fixturesPath := flag.String("fixtures", "", "YAML fixture file (default: the built-in demo data)")
	flag.Parse()

	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	logger, closer := logging.New(logging.Config{
		Level:  os.Getenv("LOG_LEVEL"),
		Format: os.Getenv("LOG_FORMAT"),
	}, os.Stdout)
	defer closer.Close()

	var src io.Reader = bytes.NewReader(defaultFixtures)
	if *fixturesPath != "" {
		f, err := os.Open(*fixturesPath)
		if err != nil {
			log.Fatalf("Error opening fixtures: %v", err)
		}
		defer f.Close()
		src = f
	}

	fixtures, err := ParseFixtures(src)
	if err != nil {
		log.Fatalf("Error reading fixtures: %v", err)
	}
	aggregates, err := fixtures.Build()
	if err != nil {
		log.Fatalf("Invalid fixtures: %v", err)
	}

	sqlDB, err := sql.Open("postgres", dsn())
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}
	defer sqlDB.Close()

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err = postgres.Migrate(gormDB); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	uow := postgres.NewGormUnitOfWorkFactory(gormDB).Create()
	report, err := Seed(context.Background(), uow, aggregates, logger)
	if err != nil {
		log.Fatalf("Error seeding database: %v", err)
	}

	logger.Info("seed finished", "added", report.Added, "skipped", report.Skipped)
}

func dsn() string {
	sslMode := os.Getenv("DB_SSLMODE")
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		sslMode,
	)
}
