package main

import (
	"context"
	"log"
	"os"

	"github.com/pillpal/backend/config"
	"github.com/pillpal/backend/internal/database"
	"github.com/pillpal/backend/internal/server"
	"github.com/pillpal/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(db, "migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Image hosting is optional; without a bucket the API still works, it
	// just rejects nothing and stores no photos.
	var images service.IImageService
	if os.Getenv("S3_BUCKET_NAME") != "" {
		s3Config, err := config.NewS3Config(context.Background())
		if err != nil {
			log.Fatalf("Failed to initialize S3: %v", err)
		}
		images = service.NewImageService(s3Config)
	} else {
		log.Println("S3_BUCKET_NAME not set, medication image hosting disabled")
	}

	// Redis backs intake rate limiting; run without it if unreachable.
	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Redis unavailable, intake rate limiting disabled: %v", err)
		redisClient = nil
	}

	srv := server.New(cfg, db, images, redisClient)

	log.Println("Starting server...")
	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Server stopped")
}
