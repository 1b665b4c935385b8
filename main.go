package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"kickstore/internal/config"
	"kickstore/internal/handlers"
	"kickstore/internal/models"
	"kickstore/internal/repositories"
	"kickstore/internal/services"
	"kickstore/pkg/orderapi"
	"kickstore/pkg/rabbitmq"
)

// stateTTL bounds how long an untouched cart survives in Redis.
const stateTTL = 30 * 24 * time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	app, cleanup, err := NewApp(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer cleanup()

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
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

// openDatabase connects GORM to the configured driver and migrates the schema.
func openDatabase(cfg config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DatabaseDriver {
	case config.BackendPostgres:
		dialector = postgres.Open(cfg.DatabaseDSN)
	default:
		dialector = sqlite.Open(cfg.DatabaseDSN)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", cfg.DatabaseDriver, err)
	}
	err = db.AutoMigrate(&models.Product{}, &models.ProductImage{}, &models.ProductVariant{}, &repositories.StateRecord{})
	if err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}
	return db, nil
}

// NewApp wires repositories, services and handlers for cfg. The returned
// function releases the connections it opened.
func NewApp(cfg config.Config) (*fiber.App, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	failureMode, err := services.ParseFailureMode(cfg.CheckoutFailureMode)
	if err != nil {
		return nil, nil, err
	}

	// --- Initialize Repositories ---
	var (
		productRepo repositories.ProductRepository = repositories.NewMockProductRepository()
		stateRepo   repositories.StateRepository   = repositories.NewMockStateRepository()
	)
	if cfg.UsesDatabase() {
		db, err := openDatabase(cfg)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, func() {
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close()
			}
		})
		productRepo = repositories.NewGORMProductRepository(db)
		stateRepo = repositories.NewGORMStateRepository(db)
	}
	if cfg.StateBackend == config.BackendRedis {
		client, err := repositories.DialRedis(context.Background(), cfg.RedisURL)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		closers = append(closers, func() { client.Close() })
		stateRepo = repositories.NewRedisStateRepository(client, stateTTL)
	}
	log.Printf("Using %s state backend", cfg.StateBackend)

	// --- Initialize RabbitMQ Client ---
	// The broker is optional; without it placed orders are only logged.
	var events services.EventPublisher
	mqStatus := "disabled"
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Printf("Warning: RabbitMQ unavailable, order events disabled: %v", err)
			mqStatus = "unavailable"
		} else {
			closers = append(closers, func() { mqClient.Close() })
			events = mqClient
			mqStatus = "connected"
			startOrderConsumer(mqClient)
		}
	}

	// --- Initialize Services ---
	productService := services.NewProductService(productRepo)
	cartService := services.NewCartService(stateRepo, productRepo)
	sessionService := services.NewSessionService(context.Background(), stateRepo)
	orderClient := orderapi.NewClient(orderapi.Config{BaseURL: cfg.APIBaseURL, Timeout: cfg.OrderAPITimeout})
	checkoutService := services.NewCheckoutService(cartService, orderClient, events, sessionService, failureMode)

	if cfg.SeedCatalog {
		if err := seedCatalog(productService); err != nil {
			cleanup()
			return nil, nil, err
		}
	}

	// --- Initialize Fiber App ---
	app := fiber.New(fiber.Config{Immutable: true})
	app.Use(logger.New())

	apiV1 := app.Group("/api/v1")
	handlers.NewProductHandler(productService).RegisterRoutes(apiV1)
	handlers.NewCartHandler(cartService).RegisterRoutes(apiV1)
	handlers.NewCheckoutHandler(checkoutService, cartService).RegisterRoutes(apiV1)
	handlers.NewSessionHandler(sessionService).RegisterRoutes(apiV1)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		count, err := productService.CountProducts()
		if err != nil {
			log.Printf("Health check failed to count products: %v", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unhealthy",
				"error":  err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"status":       "healthy",
			"time":         time.Now().Format(time.RFC3339),
			"products":     count,
			"stateBackend": cfg.StateBackend,
			"rabbitMQ":     mqStatus,
		})
	})

	return app, cleanup, nil
}

// seedCatalog loads the demo products into an empty repository.
func seedCatalog(productService *services.ProductService) error {
	count, err := productService.CountProducts()
	if err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return nil
	}
	created, _, err := productService.SyncCatalog(seedProducts())
	if err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}
	log.Printf("Seeded %d products", created)
	return nil
}

// startOrderConsumer logs order.placed events. Downstream fulfilment lives in
// the order backend; this consumer only keeps an audit trail.
func startOrderConsumer(mqClient *rabbitmq.Client) {
	log.Println("Starting RabbitMQ consumer for orders...")
	messageHandler := func(msg amqp.Delivery) error {
		event, err := rabbitmq.DecodeOrderPlaced(msg.Body)
		if err != nil {
			return err
		}
		log.Printf("Order %s placed for cart %s: %d items, total %.2f (synthesized: %t)",
			event.Ref, event.CartID, event.ItemCount, event.Total, event.Synthesized)
		return nil
	}
	if err := mqClient.ConsumeOrderEvents(messageHandler); err != nil {
		log.Printf("Failed to start RabbitMQ consumer: %v", err)
	}
}
