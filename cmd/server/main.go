package main

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/cabindev/civicspace-sub000/internal/bootstrap"
	"github.com/cabindev/civicspace-sub000/internal/config"
	"github.com/cabindev/civicspace-sub000/internal/server"
	"github.com/cabindev/civicspace-sub000/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer database.Close(db)

	if err := bootstrap.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	if err := bootstrap.SeedSuperAdmin(db, cfg); err != nil {
		log.Fatalf("failed to seed super admin: %v", err)
	}

	// Redis is optional: caching, rate limiting and live notifications
	// degrade gracefully without it.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Printf("redis unreachable, continuing without it: %v", err)
			redisClient = nil
		}
	}

	srv, err := server.New(cfg, db, redisClient)
	if err != nil {
		log.Fatalf("failed to build server: %v", err)
	}

	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}
