package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spicehub/spicehub-golang/internal/database"
	"github.com/spicehub/spicehub-golang/internal/handlers"
	"github.com/spicehub/spicehub-golang/internal/routes"
)

// staleCartAge is how long an untouched cart line survives before the
// janitor removes it.
const staleCartAge = 30 * 24 * time.Hour

func main() {
	// 0. --- Load Environment Variables (.env) ---
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	// 1. --- Database Connection & Migrations ---
	db, err := database.OpenDB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// 2. --- Application Setup ---
	app := handlers.New(db)

	// 3. --- Background Worker (Cart Janitor) ---
	// Prunes cart lines that have not been touched in staleCartAge.
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		log.Println("Background worker started: pruning stale cart lines...")

		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			pruned, err := app.Cart.PruneStale(ctx, time.Now().Add(-staleCartAge))
			cancel()
			if err != nil {
				log.Printf("Cart janitor error: %v", err)
				continue
			}
			if pruned > 0 {
				log.Printf("Cart janitor removed %d stale cart line(s)", pruned)
			}
		}
	}()

	// --- Router Setup ---
	router := routes.SetupRouter(app)

	// --- Start Server ---
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting SpiceHub API server on port %s...", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
