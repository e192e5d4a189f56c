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
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/outfitterhq/outfitterhq-sub004/internal/config"
	"github.com/outfitterhq/outfitterhq-sub004/internal/domain"
	"github.com/outfitterhq/outfitterhq-sub004/internal/handler"
	"github.com/outfitterhq/outfitterhq-sub004/internal/handler/middleware"
	"github.com/outfitterhq/outfitterhq-sub004/internal/repository/postgres"
	"github.com/outfitterhq/outfitterhq-sub004/internal/service"
	"github.com/outfitterhq/outfitterhq-sub004/pkg/revocation"
	"github.com/outfitterhq/outfitterhq-sub004/pkg/token"
	"github.com/outfitterhq/outfitterhq-sub004/pkg/validator"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database connection
	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database connection: %v", err)
		}
	}()
	log.Println("✓ Database connection established")

	// Initialize Redis client
	redisClient, err := initRedis(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("Error closing Redis connection: %v", err)
		}
	}()
	log.Println("✓ Redis connection established")

	// Initialize validator
	validate := validator.NewValidator()

	// Initialize repositories
	principalRepo := postgres.NewPrincipalRepository(db)
	outfitterRepo := postgres.NewOutfitterRepository(db)
	membershipRepo := postgres.NewMembershipRepository(db)
	invitationRepo := postgres.NewInvitationRepository(db)
	huntCodeRepo := postgres.NewHuntCodeRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)
	accessCodeRepo := postgres.NewAccessCodeRepository(db)

	// Initialize session token service
	tokenService, err := token.NewService(cfg.Session.Secret, cfg.Session.Expiry, cfg.Session.Issuer)
	if err != nil {
		log.Fatalf("Failed to initialize token service: %v", err)
	}

	// Initialize session revocation list
	revokedSessions := revocation.NewSessionList(redisClient)
	log.Println("✓ Session revocation list initialized")

	// Initialize services
	sessionService := service.NewSessionService(principalRepo, tokenService, revokedSessions)
	outfitterService := service.NewOutfitterService(outfitterRepo, membershipRepo, invitationRepo, accessCodeRepo)
	huntCodeService := service.NewHuntCodeService(outfitterRepo, huntCodeRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(sessionService, cfg, validate)
	outfitterHandler := handler.NewOutfitterHandler(outfitterService, cfg, validate)
	membershipHandler := handler.NewMembershipHandler(outfitterService, cfg, validate)
	huntCodeHandler := handler.NewHuntCodeHandler(huntCodeService)
	notificationHandler := handler.NewNotificationHandler(notificationRepo)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Outfitter Service v1.0",
		ErrorHandler: customErrorHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	})

	// Setup global middlewares
	app.Use(middleware.Recovery())
	app.Use(middleware.Logger())
	app.Use(middleware.CORS())

	// Setup authorization middlewares. Role tiers mirror how handlers
	// group privileges: any active member, staff (guides and up), and
	// managers (owner/admin).
	authMiddleware := middleware.Auth(sessionService)
	requireMember := middleware.RequireOutfitter(membershipRepo, cfg.Session.CookieSecure)
	requireStaff := middleware.RequireOutfitter(membershipRepo, cfg.Session.CookieSecure,
		domain.RoleOwner, domain.RoleAdmin, domain.RoleGuide)
	requireManager := middleware.RequireOutfitter(membershipRepo, cfg.Session.CookieSecure,
		domain.RoleOwner, domain.RoleAdmin)

	// Setup routes
	handler.SetupRoutes(
		app,
		authHandler,
		outfitterHandler,
		membershipHandler,
		huntCodeHandler,
		notificationHandler,
		healthHandler,
		authMiddleware,
		requireMember,
		requireStaff,
		requireManager,
	)

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// Start server in goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		log.Printf("🚀 Server starting on http://localhost%s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		if err := app.Listen(addr); err != nil {
			// Don't use log.Fatalf in goroutine, send error to main
			log.Printf("❌ Server failed to start: %v", err)
			stop()
		}
	}()

	// Wait for interrupt signal
	<-ctx.Done()
	log.Println("⏳ Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✓ Server stopped")
}

// initDB initializes PostgreSQL database connection with retry logic
func initDB(cfg *config.Config) (*sqlx.DB, error) {
	dsn := cfg.Database.DSN()

	var db *sqlx.DB
	var err error

	maxRetries := 5
	retryInterval := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sqlx.Connect("postgres", dsn)
		if err == nil {
			break
		}

		log.Printf("Failed to connect to database (attempt %d/%d): %v", i+1, maxRetries, err)
		if i < maxRetries-1 {
			time.Sleep(retryInterval)
		}
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			log.Printf("Error closing database after ping failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// initRedis initializes Redis client and verifies connection
func initRedis(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		if closeErr := client.Close(); closeErr != nil {
			log.Printf("Error closing Redis after ping failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return client, nil
}

// customErrorHandler handles Fiber errors
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	log.Printf("Error handling request [%s %s]: %v", c.Method(), c.Path(), err)

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
