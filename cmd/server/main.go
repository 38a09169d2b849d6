package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"

	"github.com/pawsconnect/backend/internal/router"
	"github.com/pawsconnect/backend/pkg/config"
	"github.com/pawsconnect/backend/pkg/firebase"
	"github.com/pawsconnect/backend/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Initialize the optional feed cache
	redisClient := config.InitRedis(cfg.RedisAddr)

	// Initialize Firebase
	ctx := context.Background()
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath, cfg.FirebaseDatabaseURL, cfg.StorageBucket)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, db.Mongo, redisClient, firebaseApp, cfg.ShelterEmails, cfg.StorageBucket)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
