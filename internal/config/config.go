package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr       string
	DBDSN          string
	Environment    string
	MigrationsPath string
	// AMQPURL enables the RabbitMQ notification forwarder when set.
	AMQPURL string
	// TelegramToken and TelegramChatID enable the Telegram forwarder
	// when both are set.
	TelegramToken  string
	TelegramChatID string
	// PersistDebounce is the quiet interval before in-memory state is
	// flushed to Postgres.
	PersistDebounce time.Duration
}

func Load() (*Config, error) {
	// .env is optional; real environments set variables directly.
	if err := godotenv.Load(".env"); err == nil {
		log.Println("loaded configuration from .env file")
	}

	cfg := &Config{
		HTTPAddr:        os.Getenv("HTTP_ADDR"),
		DBDSN:           os.Getenv("DB_DSN"),
		Environment:     os.Getenv("ENV"),
		MigrationsPath:  os.Getenv("MIGRATIONS_PATH"),
		AMQPURL:         os.Getenv("AMQP_URL"),
		TelegramToken:   os.Getenv("TELEGRAM_TOKEN"),
		TelegramChatID:  os.Getenv("TELEGRAM_CHAT_ID"),
		PersistDebounce: 500 * time.Millisecond,
	}

	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = "migrations"
	}
	if raw := os.Getenv("PERSIST_DEBOUNCE_MS"); raw != "" {
		ms, err := strconv.Atoi(raw)
		if err != nil || ms < 0 {
			return nil, fmt.Errorf("invalid PERSIST_DEBOUNCE_MS: %q", raw)
		}
		cfg.PersistDebounce = time.Duration(ms) * time.Millisecond
	}

	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	return cfg, nil
}
