package config

import (
	"os"
	"time"
)

type Config struct {
	Workers int
	File    string
	DBPath  string
	BaseURL string
	Timeout time.Duration
}

// Load returns defaults, overridable through the environment. CLI flags
// take precedence over both; the command wires them on top.
func Load() Config {
	return Config{
		Workers: getEnvInt("WORKERS", 1),
		File:    getEnv("TICKERS_FILE", "tickers.txt"),
		DBPath:  getEnv("DB_PATH", "stockdata.db"),
		BaseURL: getEnv("BASE_URL", "https://www.nasdaq.com"),
		Timeout: 10 * time.Second,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n := 0
	for _, c := range v {
		if c < '0' || c > '9' {
			return fallback
		}
		n = n*10 + int(c-'0')
	}
	return n
}
