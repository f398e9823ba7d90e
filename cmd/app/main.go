package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"mediflow/cmd"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

func main() {
	// Missing .env is fine; the environment may be set directly.
	_ = godotenv.Load(".env")

	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	app, err := cmd.NewCompositionRoot(configs)
	if err != nil {
		log.Fatalf("composition root: %v", err)
	}

	app.SeedDemoAccounts(context.Background(), logger)

	jobManager := app.CreateJobManager(logger)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	return cmd.Config{
		HTTPPort:            envOrDefault("HTTP_PORT", "8080"),
		StorageBackend:      envOrDefault("STORAGE_BACKEND", "memory"),
		DBHost:              envOrDefault("DB_HOST", "localhost"),
		DBPort:              envOrDefault("DB_PORT", "5432"),
		DBUser:              envOrDefault("DB_USER", "postgres"),
		DBPassword:          envOrDefault("DB_PASSWORD", "postgres"),
		DBName:              envOrDefault("DB_NAME", "mediflow"),
		DBSslMode:           envOrDefault("DB_SSLMODE", "disable"),
		QueueBackend:        envOrDefault("QUEUE_BACKEND", "memory"),
		RedisAddr:           envOrDefault("REDIS_ADDR", "localhost:6379"),
		OTCRequiresReview:   envBool("OTC_REQUIRES_REVIEW", false),
		CustomerCanCancel:   envBool("CUSTOMER_CAN_CANCEL", true),
		PharmacistCanCancel: envBool("PHARMACIST_CAN_CANCEL", true),
		ConsultationTimeout: envDuration("CONSULTATION_TIMEOUT", 30*time.Minute),
		SettlementURL:       os.Getenv("SETTLEMENT_URL"),
		SettlementLimit:     os.Getenv("SETTLEMENT_LIMIT"),
		PrescriptionDir:     envOrDefault("PRESCRIPTION_DIR", "prescriptions"),
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		log.Fatalf("invalid boolean for %s: %q", key, value)
	}
	return parsed
}

func envDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		log.Fatalf("invalid duration for %s: %q", key, value)
	}
	return parsed
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	app.CreateHTTPServer().RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
