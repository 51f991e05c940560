package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             int
	DatabasePath     string
	UploadDirectory  string
	ModelPath        string
	ModelURL         string
	ClassNamesPath   string
	ImageSize        int   // model input width/height in pixels
	MaxUploadSize    int64 // multipart memory limit in bytes
	InferenceThreads int
	SessionSecret    string
	SessionName      string
	LogDirectory     string
}

func Load() *Config {
	// Missing .env is fine, env vars and defaults still apply
	_ = godotenv.Load()

	return &Config{
		Port:             getEnvAsInt("PORT", 8080),
		DatabasePath:     getEnv("DATABASE_PATH", filepath.Join(".", "data", "dermascan.db")),
		UploadDirectory:  getEnv("UPLOAD_DIR", filepath.Join(".", "static", "uploads")),
		ModelPath:        getEnv("MODEL_PATH", filepath.Join(".", "model", "skin_model.tflite")),
		ModelURL:         getEnv("MODEL_URL", "https://huggingface.co/cozwatt/skin-disease-detector/resolve/main/skin_model.tflite"),
		ClassNamesPath:   getEnv("CLASS_NAMES_PATH", filepath.Join(".", "model", "class_names.txt")),
		ImageSize:        getEnvAsInt("IMAGE_SIZE", 224),
		MaxUploadSize:    getEnvAsInt64("MAX_UPLOAD_SIZE", 10<<20),
		InferenceThreads: getEnvAsInt("INFERENCE_THREADS", 4),
		SessionSecret:    getEnv("SESSION_SECRET", "dermascan-dev-secret"),
		SessionName:      getEnv("SESSION_NAME", "dermascan_session"),
		LogDirectory:     getEnv("LOG_DIR", filepath.Join(".", "logs")),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
