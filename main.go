package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/ink-point/api-go/cache"
	"github.com/ink-point/api-go/config"
	"github.com/ink-point/api-go/routes"
	"github.com/joho/godotenv"
)

func main() {
	// Set up logging to stdout
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	// Initialize database and cache backend
	db := config.InitDB()
	redisClient := config.InitRedis()
	pageCache := cache.NewPageCache(cache.NewRedisStore(redisClient), config.IndexCacheTTL())

	// Create a new Gin router
	r := gin.Default()

	// Add logging middleware
	r.Use(gin.LoggerWithWriter(os.Stdout))

	// Initialize routes
	routes.SetupRoutes(r, db, pageCache)

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting server on port %s", port)
	r.Run(":" + port)
}
