// Command server runs the ledger HTTP API.
package main

import (
	"log"
	"time"

	"tally/internal/config"
	"tally/internal/handlers"
	"tally/internal/repositories"
	"tally/internal/repositories/cache"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadEnv()

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	defer func() {
		if err := repositories.CloseDB(); err != nil {
			log.Printf("failed to close database connection: %v", err)
		}
	}()

	redisClient := cache.NewRedisClient(&cache.RedisConfig{
		Host:     config.GetEnv("REDIS_HOST", "localhost"),
		Port:     config.GetEnv("REDIS_PORT", "6379"),
		Password: config.GetEnv("REDIS_PASSWORD", ""),
		DB:       config.GetIntEnv("REDIS_DB", 0),
	})
	accountCache := cache.NewAccountCache(redisClient, config.GetDurationEnv("CACHE_TTL", 5*time.Minute))
	defer func() {
		if err := accountCache.Close(); err != nil {
			log.Printf("failed to close redis connection: %v", err)
		}
	}()

	app := fiber.New(fiber.Config{
		AppName: "tally",
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: config.GetEnv("CORS_ORIGINS", "*"),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,HEAD,OPTIONS",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	handlers.SetupRoutes(app, repositories.DB, accountCache)

	log.Fatal(app.Listen(":" + config.GetEnv("PORT", "3000")))
}
