package shared

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppEnv      string
	FeedBase    string
	FeedRPS     int
	HTTPTimeout time.Duration
	Pause       time.Duration
	Workers     int
	MetricsAddr string
	StatusAddr  string
	MySQLDSN    string
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	atof := func(k string, def float64) float64 {
		if v := os.Getenv(k); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
		}
		return def
	}
	return Config{
		AppEnv:      env("APP_ENV", "prod"),
		FeedBase:    env("FEED_BASE_URL", "https://itunes.apple.com"),
		FeedRPS:     atoi("FEED_RPS", 5),
		HTTPTimeout: time.Duration(atoi("HTTP_TIMEOUT_SECONDS", 30)) * time.Second,
		Pause:       time.Duration(atof("PAUSE_SECONDS", 1.0) * float64(time.Second)),
		Workers:     atoi("FETCH_WORKERS", 1),
		MetricsAddr: env("METRICS_ADDR", ""),
		StatusAddr:  env("STATUS_ADDR", ""),
		MySQLDSN:    env("MYSQL_DSN", ""),
	}
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
