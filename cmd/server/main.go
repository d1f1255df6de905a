package main

import (
	"log"

	"github.com/redis/go-redis/v9"

	"octofit.app/tracker/internal/bootstrap"
	"octofit.app/tracker/internal/config"
	"octofit.app/tracker/internal/server"
	"octofit.app/tracker/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db := database.Connect()
	if err := bootstrap.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if cfg.AppEnv == "development" {
		if err := bootstrap.SeedAdminUser(db); err != nil {
			log.Fatalf("failed to seed admin user: %v", err)
		}
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
	} else {
		log.Println("WARNING: REDIS_URL is not set, leaderboard caching and live updates disabled")
	}

	srv := server.NewServer(db, redisClient, cfg)

	log.Printf("Starting server on port %s", cfg.Port)
	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}
