package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the settings read from environment variables
type Config struct {
	Port     string
	Env      string
	LogLevel string

	AnnotationProvider string
	OpenAIAPIKey       string
	OpenAIModel        string
	OpenAIBaseURL      string
	GeminiAPIKey       string
	GeminiModel        string
	AnnotationTimeout  time.Duration
	AnnotationWorkers  int

	ProfilePath string

	DatabaseURL string
	SQLitePath  string

	GoogleCredentialsPath string
	DriveFolderID         string

	ChromePath  string
	MaxUploadMB int64
}

// Load reads Config from the environment, applying defaults for optional values.
func Load() (*Config, error) {
	cfg := &Config{
		Port:                  strings.TrimPrefix(getEnv("PORT", "8080"), ":"),
		Env:                   getEnv("ENV", "development"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		AnnotationProvider:    strings.ToLower(getEnv("ANNOTATION_PROVIDER", "openai")),
		OpenAIAPIKey:          os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:           getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:         getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		GeminiAPIKey:          os.Getenv("GEMINI_API_KEY"),
		GeminiModel:           getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		ProfilePath:           os.Getenv("LISTING_PROFILE"),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		SQLitePath:            os.Getenv("SQLITE_PATH"),
		GoogleCredentialsPath: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		DriveFolderID:         os.Getenv("DRIVE_FOLDER_ID"),
		ChromePath:            os.Getenv("CHROME_PATH"),
	}

	timeout, err := getInt("ANNOTATION_TIMEOUT_SECONDS", 60)
	if err != nil {
		return nil, err
	}
	cfg.AnnotationTimeout = time.Duration(timeout) * time.Second

	if cfg.AnnotationWorkers, err = getInt("ANNOTATION_WORKERS", 4); err != nil {
		return nil, err
	}
	maxUpload, err := getInt("MAX_UPLOAD_MB", 32)
	if err != nil {
		return nil, err
	}
	cfg.MaxUploadMB = int64(maxUpload)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.AnnotationProvider {
	case "openai", "gemini":
	default:
		return fmt.Errorf("ANNOTATION_PROVIDER must be openai or gemini, got %q", c.AnnotationProvider)
	}
	if c.AnnotationWorkers < 1 {
		return fmt.Errorf("ANNOTATION_WORKERS must be at least 1")
	}
	if c.AnnotationTimeout <= 0 {
		return fmt.Errorf("ANNOTATION_TIMEOUT_SECONDS must be positive")
	}
	if c.MaxUploadMB < 1 {
		return fmt.Errorf("MAX_UPLOAD_MB must be at least 1")
	}
	return nil
}

// IsProduction reports whether ENV is production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// HasDatabase reports whether job history storage is configured. DB_HOST style settings count.
func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != "" || c.SQLitePath != "" || os.Getenv("DB_HOST") != ""
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
