package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures environment driven configuration values for the tracker.
type Config struct {
	HTTPPort      int
	SQLiteDSN     string
	SessionTTL    time.Duration
	ClientBaseURL string
	ClientTimeout time.Duration
}

// Load parses configuration values from the current process environment,
// applying defaults for optional fields and reporting invalid entries by name.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:      8080,
		SQLiteDSN:     "file:tracker.db?_pragma=foreign_keys(1)",
		SessionTTL:    24 * time.Hour,
		ClientBaseURL: "http://localhost:8080/api",
		ClientTimeout: 10 * time.Second,
	}

	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("TRACKER_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "TRACKER_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("TRACKER_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if ttlValue := strings.TrimSpace(os.Getenv("TRACKER_SESSION_TTL")); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "TRACKER_SESSION_TTL")
		} else {
			cfg.SessionTTL = ttl
		}
	}

	if base := strings.TrimSpace(os.Getenv("TRACKER_API_URL")); base != "" {
		cfg.ClientBaseURL = strings.TrimRight(base, "/")
	}

	if timeoutValue := strings.TrimSpace(os.Getenv("TRACKER_CLIENT_TIMEOUT")); timeoutValue != "" {
		timeout, err := time.ParseDuration(timeoutValue)
		if err != nil || timeout <= 0 {
			invalid = append(invalid, "TRACKER_CLIENT_TIMEOUT")
		} else {
			cfg.ClientTimeout = timeout
		}
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variable values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
