package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTP_PORT string `env:"HTTP_PORT"`
	DB_STRING string `env:"DB_STRING"`

	KAFKA_BROKERS  string `env:"KAFKA_BROKERS"`
	KAFKA_TOPIC    string `env:"KAFKA_TOPIC"`
	KAFKA_GROUP_ID string `env:"KAFKA_GROUP_ID"`

	SHOPIFY_WEBHOOK_SECRET string `env:"SHOPIFY_WEBHOOK_SECRET"`

	DROPPEX_URL      string `env:"DROPPEX_URL"`
	DROPPEX_CODE_API string `env:"DROPPEX_CODE_API"`
	DROPPEX_CLE_API  string `env:"DROPPEX_CLE_API"`

	FIRSTDELIVERY_BASE_URL string `env:"FIRSTDELIVERY_BASE_URL"`
	FIRSTDELIVERY_TOKEN    string `env:"FIRSTDELIVERY_TOKEN"`
	// минимальный интервал между вызовами First Delivery (их API docs: 10s)
	FIRSTDELIVERY_RATE_LIMIT time.Duration
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		HTTP_PORT: os.Getenv("HTTP_PORT"),
		DB_STRING: os.Getenv("DB_STRING"),

		KAFKA_BROKERS:  os.Getenv("KAFKA_BROKERS"),
		KAFKA_TOPIC:    os.Getenv("KAFKA_TOPIC"),
		KAFKA_GROUP_ID: os.Getenv("KAFKA_GROUP_ID"),

		SHOPIFY_WEBHOOK_SECRET: os.Getenv("SHOPIFY_WEBHOOK_SECRET"),

		DROPPEX_URL:      os.Getenv("DROPPEX_URL"),
		DROPPEX_CODE_API: os.Getenv("DROPPEX_CODE_API"),
		DROPPEX_CLE_API:  os.Getenv("DROPPEX_CLE_API"),

		FIRSTDELIVERY_BASE_URL: os.Getenv("FIRSTDELIVERY_BASE_URL"),
		FIRSTDELIVERY_TOKEN:    os.Getenv("FIRSTDELIVERY_TOKEN"),
	}

	if cfg.HTTP_PORT == "" {
		cfg.HTTP_PORT = "8080"
	}
	if cfg.KAFKA_TOPIC == "" {
		cfg.KAFKA_TOPIC = "shopify-orders"
	}
	if cfg.KAFKA_GROUP_ID == "" {
		cfg.KAFKA_GROUP_ID = "parcel-dashboard"
	}
	if cfg.DROPPEX_URL == "" {
		cfg.DROPPEX_URL = "https://droppex.delivery/api_droppex_post"
	}
	if cfg.FIRSTDELIVERY_BASE_URL == "" {
		cfg.FIRSTDELIVERY_BASE_URL = "https://api.firstdelivery.com"
	}

	cfg.FIRSTDELIVERY_RATE_LIMIT = 10 * time.Second
	if raw := os.Getenv("FIRSTDELIVERY_RATE_LIMIT_MS"); raw != "" {
		if ms, err := strconv.Atoi(raw); err == nil && ms > 0 {
			cfg.FIRSTDELIVERY_RATE_LIMIT = time.Duration(ms) * time.Millisecond
		}
	}

	return cfg, nil
}
