package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port       string
	DBDSN      string
	MediaDir   string
	SchemaFile string
	LogLevel   string
	LogFile    string
}

func Load() Config {
	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	cfg := Config{
		Port:       getenv("PORT", "8080"),
		DBDSN:      getenv("DB_DSN", "revive.db"),
		MediaDir:   getenv("MEDIA_DIR", "./images"),
		SchemaFile: getenv("SCHEMA_FILE", "./category_config.json"),
		LogLevel:   getenv("LOG_LEVEL", "info"),
		LogFile:    os.Getenv("LOG_FILE"),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s MEDIA_DIR=%s SCHEMA_FILE=%s", cfg.Port, cfg.DBDSN, cfg.MediaDir, cfg.SchemaFile)
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
