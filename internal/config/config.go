package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort         string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration
	RequestTimeout     time.Duration
	LogLevel           string
	LogFormat          string
	CORSOrigins        []string
	RateLimitRPM       int
	MaxUploadSize      int64
	AllowedMIMETypes   []string
	PhotoMaxDimension  int
	JWTSecret          string
	StatsDefaultWindow time.Duration

	DocstoreDriver    string
	DatabaseURL       string
	DBMaxConns        int32
	DBMinConns        int32
	DBConnectAttempts int
	SQLitePath        string

	BlobDriver        string
	BlobFSRoot        string
	BlobPublicBaseURL string
	S3Bucket          string
	S3Region          string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3PathStyle       bool
}

// Load reads the server configuration from the environment and an optional .env file.
func Load() (*Config, error) {
	cfg := read()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadStorage is Load for tools that only open the document store.
func LoadStorage() (*Config, error) {
	cfg := read()
	if err := cfg.ValidateStorage(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func read() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		ServerReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 15*time.Second),
		ServerWriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
		ServerIdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		RequestTimeout:     getDuration("REQUEST_TIMEOUT", 30*time.Second),
		LogLevel:           strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:          strings.ToLower(getEnv("LOG_FORMAT", "pretty")),
		CORSOrigins:        splitCSV(getEnv("CORS_ORIGINS", "*")),
		RateLimitRPM:       getInt("RATE_LIMIT_RPM", 300),
		MaxUploadSize:      getInt64("MAX_UPLOAD_SIZE", 10<<20),
		AllowedMIMETypes:   splitCSV(getEnv("ALLOWED_MIME_TYPES", "image/*")),
		PhotoMaxDimension:  getInt("PHOTO_MAX_DIMENSION", 1600),
		JWTSecret:          strings.TrimSpace(os.Getenv("AUTH_JWT_SECRET")),
		StatsDefaultWindow: getDuration("STATS_DEFAULT_WINDOW", 30*24*time.Hour),

		DocstoreDriver:    strings.ToLower(getEnv("DOCSTORE_DRIVER", "sqlite")),
		DatabaseURL:       strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DBMaxConns:        int32(getInt("DB_MAX_CONNS", 10)),
		DBMinConns:        int32(getInt("DB_MIN_CONNS", 1)),
		DBConnectAttempts: getInt("DB_CONNECT_ATTEMPTS", 5),
		SQLitePath:        getEnv("SQLITE_PATH", "./state/fridge.db"),

		BlobDriver:        strings.ToLower(getEnv("BLOB_DRIVER", "fs")),
		BlobFSRoot:        getEnv("BLOB_FS_ROOT", "./state/photos"),
		BlobPublicBaseURL: strings.TrimSpace(os.Getenv("BLOB_PUBLIC_BASE_URL")),
		S3Bucket:          strings.TrimSpace(os.Getenv("S3_BUCKET")),
		S3Region:          getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:        strings.TrimSpace(os.Getenv("S3_ENDPOINT")),
		S3AccessKeyID:     strings.TrimSpace(os.Getenv("S3_ACCESS_KEY_ID")),
		S3SecretAccessKey: strings.TrimSpace(os.Getenv("S3_SECRET_ACCESS_KEY")),
		S3PathStyle:       getBool("S3_PATH_STYLE", false),
	}
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("AUTH_JWT_SECRET is required")
	}

	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT cannot be empty")
	}

	if c.MaxUploadSize <= 0 {
		return fmt.Errorf("MAX_UPLOAD_SIZE must be positive")
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}

	if c.StatsDefaultWindow <= 0 {
		return fmt.Errorf("STATS_DEFAULT_WINDOW must be positive")
	}

	if c.PhotoMaxDimension < 0 {
		return fmt.Errorf("PHOTO_MAX_DIMENSION cannot be negative")
	}

	switch c.LogFormat {
	case "pretty", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be pretty or json, got %q", c.LogFormat)
	}

	if err := c.ValidateStorage(); err != nil {
		return err
	}

	switch c.BlobDriver {
	case "fs":
		if strings.TrimSpace(c.BlobFSRoot) == "" {
			return fmt.Errorf("BLOB_FS_ROOT cannot be empty")
		}
	case "s3":
		if c.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required for the s3 blob driver")
		}
		if (c.S3AccessKeyID == "") != (c.S3SecretAccessKey == "") {
			return fmt.Errorf("S3_ACCESS_KEY_ID and S3_SECRET_ACCESS_KEY must be set together")
		}
	case "memory":
	default:
		return fmt.Errorf("BLOB_DRIVER must be fs, s3 or memory, got %q", c.BlobDriver)
	}

	return nil
}

// ValidateStorage checks only the document store settings.
func (c *Config) ValidateStorage() error {
	switch c.DocstoreDriver {
	case "postgres":
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres docstore")
		}
		if c.DBMinConns > c.DBMaxConns {
			return fmt.Errorf("DB_MIN_CONNS cannot exceed DB_MAX_CONNS")
		}
	case "sqlite":
		if strings.TrimSpace(c.SQLitePath) == "" {
			return fmt.Errorf("SQLITE_PATH cannot be empty")
		}
	case "memory":
	default:
		return fmt.Errorf("DOCSTORE_DRIVER must be postgres, sqlite or memory, got %q", c.DocstoreDriver)
	}

	return nil
}

func getEnv(key string, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}

	return v
}

func getInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return v
}

func getInt64(key string, fallback int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}

	return v
}

func getBool(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}

	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return v
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}

	return out
}
