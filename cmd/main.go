package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v3"

	"quote-service/internal/config"
	"quote-service/internal/database/minio"
	"quote-service/internal/database/postgres"
	"quote-service/internal/database/redis"
	"quote-service/internal/event"
	"quote-service/internal/handlers"
	"quote-service/internal/pricing"
	"quote-service/internal/services"
)

func setupLogging() (*os.File, error) {
	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = filepath.Join("log", "quote_service")
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %v", err)
	}

	logFileName := fmt.Sprintf("log_%s.log", time.Now().Format("2006-01-02"))
	file, err := os.OpenFile(filepath.Join(logDir, logFileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %v", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(io.MultiWriter(os.Stdout, file), nil)))
	return file, nil
}

func main() {
	logFile, err := setupLogging()
	if err != nil {
		log.Printf("Failed to set up file logging, continuing on stderr: %v", err)
	} else {
		defer logFile.Close()
	}

	cfg := config.New()

	table := loadRuleTable(cfg)
	estimator := pricing.NewEstimator(table, cfg.EstimatorDelay)

	store, closeStore := buildResultStore(cfg)
	defer closeStore()
	fonts := buildFontSource(cfg)
	analytics := buildAnalytics(cfg)

	quoteService := services.NewQuoteService(estimator, store, analytics, cfg.BrokerPhone)
	pdfService := services.NewSummaryPDFService(fonts)

	app := fiber.New(fiber.Config{
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
	})

	app.Get("/checkhealth", func(c fiber.Ctx) error {
		return c.Status(fiber.StatusOK).SendString("Quote service is healthy")
	})

	handlers.NewQuoteHandler(quoteService, pdfService, store).Register(app)

	slog.Info("Quote service starting", "port", cfg.Port, "rule_count", table.Len())
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// loadRuleTable picks the pricing rule source. Whatever the source, the
// table is read once here and stays immutable; any load failure falls
// back to the embedded rules so the service always starts.
func loadRuleTable(cfg *config.QuoteServiceConfig) *pricing.Table {
	switch cfg.RuleSource {
	case "postgres":
		db, err := postgres.Connect(cfg.PostgresCfg)
		if err != nil {
			slog.Warn("Pricing database unavailable, using embedded rules", "error", err)
			return pricing.DefaultTable()
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		table, err := pricing.LoadFromPostgres(ctx, db)
		if err != nil {
			slog.Warn("Failed to load pricing rules from postgres, using embedded rules", "error", err)
			return pricing.DefaultTable()
		}
		return table
	case "xlsx":
		table, err := pricing.LoadFromSheet(cfg.RuleSheetPath)
		if err != nil {
			slog.Warn("Failed to load pricing rule sheet, using embedded rules",
				"path", cfg.RuleSheetPath, "error", err)
			return pricing.DefaultTable()
		}
		return table
	default:
		slog.Info("Using embedded pricing rules")
		return pricing.DefaultTable()
	}
}

// buildResultStore returns the session store plus the cleanup to run at
// shutdown.
func buildResultStore(cfg *config.QuoteServiceConfig) (services.ResultStore, func()) {
	client, err := redis.Connect(cfg.RedisCfg)
	if err != nil {
		slog.Warn("Redis unavailable, keeping session results in memory", "error", err)
		return services.NewMemoryResultStore(cfg.SessionTTL), func() {}
	}
	slog.Info("Session results stored in Redis", "ttl", cfg.SessionTTL)
	return services.NewRedisResultStore(client, cfg.SessionTTL), func() {
		if err := client.Close(); err != nil {
			slog.Warn("Failed to close Redis connection", "error", err)
		}
	}
}

func buildFontSource(cfg *config.QuoteServiceConfig) services.FontSource {
	client, err := minio.NewMinioClient(cfg.MinioCfg)
	if err == nil {
		return services.NewMinioFontSource(client, cfg.AssetsBucket, cfg.ArabicFontKey)
	}
	slog.Warn("MinIO unavailable for glyph assets", "error", err)

	if cfg.ArabicFontPath != "" {
		return services.FileFontSource{Path: cfg.ArabicFontPath}
	}
	return services.NoFontSource{}
}

func buildAnalytics(cfg *config.QuoteServiceConfig) services.AnalyticsPublisher {
	conn, err := event.ConnectRabbitMQ(cfg.RabbitMQCfg)
	if err != nil {
		slog.Warn("RabbitMQ unavailable, analytics events disabled", "error", err)
		return services.NoopAnalytics{}
	}
	return event.NewAnalyticsPublisher(conn)
}
