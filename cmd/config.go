package cmd

import (
	"fmt"
	"time"

	"dropoff/internal/pkg/logging"
)

type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// RedisAddr enables delivery analytics when set.
	RedisAddr          string
	AnalyticsRetention time.Duration

	MonitorPollInterval time.Duration
	MonitorDeadline     time.Duration
	LaunchTimeout       time.Duration
	StatusTimeout       time.Duration
	ReconcileSchedule   string

	LogLevel      string
	LogFormat     string
	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
}

// Defaults for keys that are missing or unparsable.
const (
	DefaultHTTPPort            = "8080"
	DefaultDBSslMode           = "disable"
	DefaultAnalyticsRetention  = 7 * 24 * time.Hour
	DefaultMonitorPollInterval = 3 * time.Second
	DefaultMonitorDeadline     = 30 * time.Minute
	DefaultLaunchTimeout       = 10 * time.Second
	DefaultStatusTimeout       = 5 * time.Second
	DefaultReconcileSchedule   = "@every 1m"
	DefaultLogMaxSizeMB        = 100
	DefaultLogMaxBackups       = 5
	DefaultLogMaxAgeDays       = 28
)

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) Logging() logging.Config {
	return logging.Config{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		File:       c.LogFile,
		MaxSizeMB:  c.LogMaxSizeMB,
		MaxBackups: c.LogMaxBackups,
		MaxAgeDays: c.LogMaxAgeDays,
	}
}
