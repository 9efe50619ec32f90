// Package config assembles runtime settings from defaults, a .env file,
// command-line flags and the environment, in increasing precedence.
package config

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Storage backends.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

// Config holds the server settings.
type Config struct {
	RunAddress   string
	LogLevel     string
	Storage      string
	DatabaseURL  string
	RedisAddr    string
	KafkaBrokers []string
	KafkaTopic   string
	OTELHost     string
	SeedFile     string
}

// Parse builds the configuration for args (without the program name).
// A missing .env file is not an error.
func Parse(args []string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		// Defaults
		RunAddress: ":5000",
		LogLevel:   "info",
		Storage:    StorageMemory,
		RedisAddr:  "localhost:6379",
		KafkaTopic: "orders",
	}
	if err := cfg.updateFromFlags(args); err != nil {
		return nil, err
	}
	cfg.updateFromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) updateFromFlags(args []string) error {
	fs := flag.NewFlagSet("orderscan", flag.ContinueOnError)
	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "Server address.")
	fs.StringVar(&cfg.DatabaseURL, "d", cfg.DatabaseURL, "Postgres DSN.")
	fs.StringVar(&cfg.Storage, "storage", cfg.Storage, "Order storage: memory, postgres or redis.")
	fs.StringVar(&cfg.SeedFile, "seed", cfg.SeedFile, "JSON file with orders to load at startup.")
	return fs.Parse(args)
}

func (cfg *Config) updateFromEnv() {
	if addr, ok := os.LookupEnv("RUN_ADDRESS"); ok {
		cfg.RunAddress = addr
	}
	if lvl, ok := os.LookupEnv("LOG_LEVEL"); ok {
		cfg.LogLevel = lvl
	}
	if s, ok := os.LookupEnv("STORAGE"); ok {
		cfg.Storage = s
	}
	if db, ok := os.LookupEnv("DATABASE_URL"); ok {
		cfg.DatabaseURL = db
	}
	if addr, ok := os.LookupEnv("REDIS_ADDR"); ok {
		cfg.RedisAddr = addr
	}
	if brokers, ok := os.LookupEnv("KAFKA_BROKERS"); ok {
		cfg.KafkaBrokers = splitList(brokers)
	}
	if topic, ok := os.LookupEnv("KAFKA_TOPIC"); ok {
		cfg.KafkaTopic = topic
	}
	if host, ok := os.LookupEnv("OTEL_HOST"); ok {
		cfg.OTELHost = host
	}
	if f, ok := os.LookupEnv("SEED_FILE"); ok {
		cfg.SeedFile = f
	}
}

// Validate rejects combinations the server cannot start with.
func (cfg *Config) Validate() error {
	switch cfg.Storage {
	case StorageMemory:
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("config: storage %q requires DATABASE_URL", cfg.Storage)
		}
	case StorageRedis:
		if cfg.RedisAddr == "" {
			return fmt.Errorf("config: storage %q requires REDIS_ADDR", cfg.Storage)
		}
	default:
		return fmt.Errorf("config: unknown storage %q", cfg.Storage)
	}
	if len(cfg.KafkaBrokers) > 0 && cfg.KafkaTopic == "" {
		return fmt.Errorf("config: KAFKA_TOPIC must be set when KAFKA_BROKERS is")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
