package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"

	"magicbio/internal/handlers"
	"magicbio/internal/middleware"
	"magicbio/internal/repositories"
	"magicbio/internal/services"
	"magicbio/internal/views"
	"magicbio/pkg/database"
	"magicbio/pkg/events"
	"magicbio/pkg/viewcount"
)

func main() {
	// --- Configuration ---
	// Set up Viper to read configuration from environment variables
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DSN", "host=127.0.0.1 user=postgres password=postgres dbname=magicbio port=5432 sslmode=disable")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("REDIS_ADDR", "")
	viper.AutomaticEnv() // Load environment variables

	appPort := viper.GetString("APP_PORT")
	jwtSecret := viper.GetString("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	// --- Database ---
	// Shared connection pool, established once and reused across requests
	db, err := database.Get(viper.GetString("DATABASE_DSN"))
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	// --- Optional Event Publisher (RabbitMQ) ---
	var publisher services.EventPublisher
	var mqClient *events.Client
	if url := viper.GetString("RABBITMQ_URL"); url != "" {
		mqClient, err = events.NewClient(events.Config{URL: url})
		if err != nil {
			log.Printf("Warning: events disabled, RabbitMQ unavailable: %v", err)
		} else {
			defer mqClient.Close()
			publisher = mqClient
		}
	}

	// --- Optional View Counter (Redis) ---
	var viewCounter handlers.ViewCounter
	if addr := viper.GetString("REDIS_ADDR"); addr != "" {
		counter := viewcount.New(addr)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := counter.Ping(ctx); err != nil {
			log.Printf("Warning: view counting disabled, Redis unavailable: %v", err)
			counter.Close()
		} else {
			defer counter.Close()
			viewCounter = counter
		}
		cancel()
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	bioRepo := repositories.NewGORMBioRepository(db)

	// --- Services ---
	authService := services.NewAuthService(userRepo, publisher, jwtSecret)
	profileService := services.NewProfileService(bioRepo)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	bioHandler := handlers.NewBioHandler(profileService)
	profileHandler := handlers.NewProfileHandler(profileService, viewCounter, publisher)

	// --- Views ---
	engine, err := views.Engine()
	if err != nil {
		log.Fatalf("Failed to load view engine: %v", err)
	}

	// --- Initialize Fiber App ---
	app := fiber.New(fiber.Config{
		Views: engine,
	})

	// --- Middleware ---
	app.Use(logger.New()) // Request logger

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- API Routes ---
	api := app.Group("/api")
	authHandler.RegisterRoutes(api)
	bioHandler.RegisterRoutes(api, middleware.AuthRequired(authService))

	// The public page route is a catch-all on /:username, so it goes last
	profileHandler.RegisterRoutes(app)

	// --- Start Event Consumer ---
	if mqClient != nil && publisher != nil {
		log.Println("Starting event consumer...")
		if consumerErr := mqClient.ConsumeEvents(func(msg amqp.Delivery) error {
			log.Printf("Received event %s: %s", msg.RoutingKey, string(msg.Body))
			return nil
		}); consumerErr != nil {
			log.Printf("Failed to start event consumer: %v", consumerErr)
		}
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}
