package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env        string
	ServerPort string

	// StoreURL is the base URL of the external data store. Empty means
	// run against the built-in in-memory store.
	StoreURL     string
	StoreTimeout time.Duration

	Timezone    string
	SlotMinutes int
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Env:          getEnv("APP_ENV", "dev"),
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		StoreURL:     getEnv("STORE_URL", ""),
		StoreTimeout: getDuration("STORE_TIMEOUT", 10*time.Second),
		Timezone:     getEnv("CLINIC_TIMEZONE", ""),
		SlotMinutes:  getInt("SLOT_MINUTES", 30),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}
