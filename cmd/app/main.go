package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"dropoff/cmd"
	"dropoff/internal/adapters/out/postgres"
	"dropoff/internal/jobs"
	"dropoff/internal/pkg/logging"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	goredis "github.com/redis/go-redis/v9"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	configs := getConfigs()

	logger, logCloser := logging.New(configs.Logging(), os.Stdout)
	defer logCloser.Close()
	slog.SetDefault(logger)

	gormDB, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err = postgres.Migrate(gormDB); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	var redisClient goredis.UniversalClient
	if configs.RedisAddr != "" {
		redisClient = goredis.NewClient(&goredis.Options{Addr: configs.RedisAddr})
		defer redisClient.Close()
		logger.Info("delivery analytics enabled", "redis", configs.RedisAddr)
	} else {
		logger.Info("REDIS_ADDR not set; delivery analytics disabled")
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, redisClient, logger)
	if err != nil {
		log.Fatalf("Error wiring application: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}

	startWebServer(app, jobManager, configs.HTTPPort, logger)
}

func getConfigs() cmd.Config {
	return cmd.Config{
		HTTPPort:            stringOr("HTTP_PORT", cmd.DefaultHTTPPort),
		DBHost:              goDotEnvVariable("DB_HOST"),
		DBPort:              goDotEnvVariable("DB_PORT"),
		DBUser:              goDotEnvVariable("DB_USER"),
		DBPassword:          goDotEnvVariable("DB_PASSWORD"),
		DBName:              goDotEnvVariable("DB_NAME"),
		DBSslMode:           stringOr("DB_SSLMODE", cmd.DefaultDBSslMode),
		RedisAddr:           goDotEnvVariable("REDIS_ADDR"),
		AnalyticsRetention:  durationOr("ANALYTICS_RETENTION", cmd.DefaultAnalyticsRetention),
		MonitorPollInterval: durationOr("MONITOR_POLL_INTERVAL", cmd.DefaultMonitorPollInterval),
		MonitorDeadline:     durationOr("MONITOR_DEADLINE", cmd.DefaultMonitorDeadline),
		LaunchTimeout:       durationOr("LAUNCH_TIMEOUT", cmd.DefaultLaunchTimeout),
		StatusTimeout:       durationOr("STATUS_TIMEOUT", cmd.DefaultStatusTimeout),
		ReconcileSchedule:   stringOr("RECONCILE_SCHEDULE", cmd.DefaultReconcileSchedule),
		LogLevel:            goDotEnvVariable("LOG_LEVEL"),
		LogFormat:           goDotEnvVariable("LOG_FORMAT"),
		LogFile:             goDotEnvVariable("LOG_FILE"),
		LogMaxSizeMB:        intOr("LOG_MAX_SIZE_MB", cmd.DefaultLogMaxSizeMB),
		LogMaxBackups:       intOr("LOG_MAX_BACKUPS", cmd.DefaultLogMaxBackups),
		LogMaxAgeDays:       intOr("LOG_MAX_AGE_DAYS", cmd.DefaultLogMaxAgeDays),
	}
}

func goDotEnvVariable(key string) string {
	return os.Getenv(key)
}

func stringOr(key, fallback string) string {
	if v := goDotEnvVariable(key); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Warnf("Invalid %s=%q, using %s", key, raw, fallback)
		return fallback
	}
	return d
}

func intOr(key string, fallback int) int {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		log.Warnf("Invalid %s=%q, using %d", key, raw, fallback)
		return fallback
	}
	return v
}

// startWebServer serves until SIGINT or SIGTERM, then stops the jobs, the
// delivery monitors and finally the HTTP server.
func startWebServer(app *cmd.CompositionRoot, jobManager *jobs.JobManager, port string, logger *slog.Logger) {
	e, err := app.CreateRouter()
	if err != nil {
		log.Fatalf("Error building router: %v", err)
	}

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	received := <-sig
	logger.Info("shutting down", "signal", received.String())

	jobManager.StopAll()
	app.StopMonitors()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("http server shutdown failed", "error", err)
	}
}
