package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres() *pgxpool.Pool {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	log.Println("Connected to PostgreSQL")

	// Initialize schema
	if err := initSchema(db); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	return db
}

// initSchema creates or updates the database schema
func initSchema(db *pgxpool.Pool) error {
	ctx := context.Background()

	// -------------------------------
	// SERVICES (bookable offerings)
	// -------------------------------
	servicesSQL := `
		CREATE TABLE IF NOT EXISTS services (
			id UUID PRIMARY KEY,
			type VARCHAR(50) NOT NULL,
			name VARCHAR(255) NOT NULL,
			currency VARCHAR(3) NOT NULL DEFAULT 'EUR',
			category_keys TEXT[] NOT NULL DEFAULT '{}',
			active BOOLEAN NOT NULL DEFAULT TRUE,
			pricing_model VARCHAR(50) NOT NULL DEFAULT 'unknown',
			price_base DOUBLE PRECISION NOT NULL DEFAULT 0,
			price_per_person DOUBLE PRECISION NOT NULL DEFAULT 0,
			price_extra_person DOUBLE PRECISION NOT NULL DEFAULT 0,
			included_people DOUBLE PRECISION NOT NULL DEFAULT 0,
			min_hours DOUBLE PRECISION NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	if _, err := db.Exec(ctx, servicesSQL); err != nil {
		return err
	}

	// -------------------------------
	// BOOKINGS
	// -------------------------------
	bookingsSQL := `
		CREATE TABLE IF NOT EXISTS bookings (
			id UUID PRIMARY KEY,
			service_id UUID NOT NULL REFERENCES services(id),
			user_id UUID NOT NULL,
			user_email VARCHAR(255) NOT NULL DEFAULT '',
			adults DOUBLE PRECISION NOT NULL DEFAULT 1,
			children DOUBLE PRECISION NOT NULL DEFAULT 0,
			hours DOUBLE PRECISION NOT NULL DEFAULT 0,
			days DOUBLE PRECISION NOT NULL DEFAULT 0,
			addons DOUBLE PRECISION NOT NULL DEFAULT 0,
			service_at TIMESTAMPTZ NULL,
			base_total DOUBLE PRECISION NOT NULL DEFAULT 0,
			coupon_code VARCHAR(100) NULL,
			discount_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
			final_total DOUBLE PRECISION NOT NULL DEFAULT 0,
			currency VARCHAR(3) NOT NULL DEFAULT 'EUR',
			status VARCHAR(50) NOT NULL DEFAULT 'PENDING',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	if _, err := db.Exec(ctx, bookingsSQL); err != nil {
		return err
	}

	bookingsUserIdxSQL := `
		CREATE INDEX IF NOT EXISTS bookings_user_id_idx
		ON bookings (user_id, created_at DESC)
	`
	if _, err := db.Exec(ctx, bookingsUserIdxSQL); err != nil {
		return err
	}

	return nil
}
