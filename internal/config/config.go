package config

import (
	"log"
	"os"
)

type Config struct {
	APIBaseURL string
	StorePath  string
	AuthToken  string
	LogLevel   string
}

func Load() Config {
	api := os.Getenv("API_URL")
	if api == "" {
		api = "http://localhost:3001/api"
	}
	store := os.Getenv("STORE_PATH")
	if store == "" {
		store = "tenisland.db"
	} // sqlite file in project root
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}

	cfg := Config{
		APIBaseURL: api,
		StorePath:  store,
		AuthToken:  os.Getenv("AUTH_TOKEN"),
		LogLevel:   level,
	}
	log.Printf("[config] API_URL=%s STORE_PATH=%s LOG_LEVEL=%s", cfg.APIBaseURL, cfg.StorePath, cfg.LogLevel)
	return cfg
}
