package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/LilKangoo/cypruseye-backend/internal/booking"
	"github.com/LilKangoo/cypruseye-backend/internal/catalog"
	"github.com/LilKangoo/cypruseye-backend/internal/coupon"
	"github.com/LilKangoo/cypruseye-backend/internal/db"
	"github.com/LilKangoo/cypruseye-backend/internal/router"
	"github.com/LilKangoo/cypruseye-backend/internal/supabase"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"DATABASE_URL",
		"SUPABASE_URL",
		"SUPABASE_ANON_KEY",
		"SUPABASE_JWT_SECRET",
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("Missing env var: %s", k)
		}
	}

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	// ───────────────────────── GIN ─────────────────────────
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://cypruseye.com", "http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── SUPABASE ─────────────────────────
	sbClient, err := supabase.NewClientFromEnv()
	if err != nil {
		log.Fatal("Supabase init failed:", err)
	}

	// ───────────────────────── DOMAINS ─────────────────────────
	catalogRepo := catalog.NewRepository(pgDB)
	catalogHandler := catalog.NewHandler(catalogRepo)

	quoter := coupon.NewQuoter(sbClient)
	couponHandler := coupon.NewHandler(quoter)

	bookingRepo := booking.NewRepository(pgDB)
	bookingService := booking.NewService(catalogRepo, quoter, bookingRepo)
	bookingHandler := booking.NewHandler(bookingService)

	router.Mount(r, router.Handlers{
		Catalog: catalogHandler,
		Booking: bookingHandler,
		Coupon:  couponHandler,
	})

	// ───────────────────────── RUN ─────────────────────────
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
