package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kmwenda/stocktrack-backend/internal/modules/audit"
	"github.com/kmwenda/stocktrack-backend/internal/modules/auth"
	"github.com/kmwenda/stocktrack-backend/internal/modules/inventory"
	"github.com/kmwenda/stocktrack-backend/internal/modules/notify"
	"github.com/kmwenda/stocktrack-backend/internal/modules/user"
	"github.com/kmwenda/stocktrack-backend/internal/modules/warehouse"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	db, err := sql.Open("postgres", os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Successfully connected to the database!")

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer rdb.Close()

	amqpConn, err := amqp.Dial(os.Getenv("AMQP_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer amqpConn.Close()
	amqpChannel, err := amqpConn.Channel()
	if err != nil {
		log.Fatal(err)
	}
	defer amqpChannel.Close()

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	// ── Identity ────────────────────────────────────────────
	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo)
	user.NewHandler(userService).RegisterRoutes(router)

	authService := auth.NewService(userRepo, os.Getenv("JWT_SECRET"))
	authHandler := auth.NewHandler(authService)
	authHandler.RegisterRoutes(router)

	// ── Audit trail & notifications ─────────────────────────
	auditRepo := audit.NewPostgresRepository(db)
	auditService := audit.NewService(auditRepo)

	deliverer, err := notify.NewAMQPDeliverer(amqpChannel)
	if err != nil {
		log.Fatal(err)
	}
	dispatcher := notify.NewDispatcher(userRepo, deliverer, logger)

	// ── Warehouses & inventory ──────────────────────────────
	warehouseRepo := warehouse.NewPostgresRepository(db)
	warehouseService := warehouse.NewService(warehouseRepo)

	inventoryRepo := inventory.NewCachedRepository(
		inventory.NewPostgresRepository(db), rdb, logger)
	inventoryService := inventory.NewService(
		inventoryRepo, warehouseRepo, auditRepo, dispatcher, logger)

	// ── Protected routes ────────────────────────────────────
	router.Group(func(r chi.Router) {
		r.Use(auth.Middleware(authService))
		r.Get("/api/v1/auth/profile", authHandler.Profile)
		warehouse.NewHandler(warehouseService).RegisterRoutes(r)
		inventory.NewHandler(inventoryService).RegisterRoutes(r)
		audit.NewHandler(auditService).RegisterRoutes(r)
	})

	// ── Start Server ─────────────────────────────────────────
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Printf("StockTrack API server starting on :%s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
