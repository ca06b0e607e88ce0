package app

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/yungbote/shortsview-backend/internal/data/db"
	"github.com/yungbote/shortsview-backend/internal/http/middleware"
	"github.com/yungbote/shortsview-backend/internal/platform/envutil"
	"github.com/yungbote/shortsview-backend/internal/platform/gcp"
	"github.com/yungbote/shortsview-backend/internal/platform/localmedia"
	"github.com/yungbote/shortsview-backend/internal/platform/logger"
)

const (
	MediaStorageLocal = "local"
	MediaStorageGCS   = "gcs"
)

type Config struct {
	Port    string
	LogMode string

	DB db.Config

	SessionSecret string
	SessionTTL    time.Duration
	CookieSecure  bool

	MediaStorage     string
	UploadDir        string
	MediaURLPrefix   string
	GCS              gcp.MediaConfig
	MaxUploadBytes   int64
	CORSOrigins      []string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	AdminUsername    string
	AdminEmail       string
	AdminPassword    string
	MetricsEnabled   bool
	OtelEnabled      bool
	OtelEndpoint     string
	OtelInsecure     bool
	OtelSampleRatio  float64
	OtelEnvironment  string
	ServiceName      string
	ServiceVersion   string
	ShutdownDeadline time.Duration
}

// LoadDotEnv reads .env (or DOTENV_PATH) into the process environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(log *logger.Logger) {
	path := strings.TrimSpace(os.Getenv("DOTENV_PATH"))
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := godotenv.Load(path); err != nil {
		log.Warn("Failed to load dotenv file", "path", path, "error", err)
		return
	}
	log.Info("Loaded dotenv file", "path", path)
}

// LoadConfig resolves every key from the environment, then CONFIG_FILE, then
// the built-in default.
func LoadConfig(log *logger.Logger) Config {
	var file map[string]string
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		parsed, err := envutil.LoadFile(path)
		if err != nil {
			log.Warn("Ignoring config file", "path", path, "error", err)
		} else {
			file = parsed
		}
	}
	src := envutil.NewSource(log, file)

	secret := src.String("SESSION_SECRET", "")
	if secret == "" {
		secret = randomSecret()
		log.Warn("SESSION_SECRET not set; sessions will not survive a restart")
	}

	return Config{
		Port:    src.String("PORT", "8080"),
		LogMode: src.String("LOG_MODE", "development"),
		DB: db.Config{
			Driver:     src.String("DB_DRIVER", db.DriverSQLite),
			SQLitePath: src.String("SQLITE_PATH", "shortsview.db"),
			Postgres: db.PostgresConfig{
				Host:     src.String("POSTGRES_HOST", "localhost"),
				Port:     src.String("POSTGRES_PORT", "5432"),
				User:     src.String("POSTGRES_USER", "postgres"),
				Password: src.String("POSTGRES_PASSWORD", ""),
				Name:     src.String("POSTGRES_NAME", "shortsview"),
				SSLMode:  src.String("POSTGRES_SSLMODE", "disable"),
			},
		},
		SessionSecret: secret,
		SessionTTL:    time.Duration(src.Int("SESSION_TTL_SECONDS", 7*24*3600)) * time.Second,
		CookieSecure:  src.Bool("COOKIE_SECURE", false),

		MediaStorage:   strings.ToLower(src.String("MEDIA_STORAGE", MediaStorageLocal)),
		UploadDir:      src.String("UPLOAD_DIR", "static/videos"),
		MediaURLPrefix: src.String("MEDIA_URL_PREFIX", localmedia.DefaultURLPrefix),
		GCS: gcp.MediaConfig{
			Bucket:        src.String("MEDIA_GCS_BUCKET", ""),
			CDNDomain:     src.String("MEDIA_CDN_DOMAIN", ""),
			EmulatorHost:  src.String("STORAGE_EMULATOR_HOST", ""),
			PublicBaseURL: src.String("MEDIA_PUBLIC_BASE_URL", ""),
			Credentials:   src.String("GOOGLE_APPLICATION_CREDENTIALS_JSON", ""),
		},
		MaxUploadBytes: int64(src.Int("MAX_UPLOAD_MB", 512)) << 20,
		CORSOrigins:    src.List("CORS_ALLOWED_ORIGINS", middleware.DefaultAllowedOrigins),

		RedisAddr:     src.String("REDIS_ADDR", ""),
		RedisPassword: src.String("REDIS_PASSWORD", ""),
		RedisDB:       src.Int("REDIS_DB", 0),

		AdminUsername: src.String("ADMIN_USERNAME", "admin"),
		AdminEmail:    src.String("ADMIN_EMAIL", "admin@example.com"),
		AdminPassword: src.String("ADMIN_PASSWORD", "admin123"),

		MetricsEnabled:  src.Bool("METRICS_ENABLED", false),
		OtelEnabled:     src.Bool("OTEL_ENABLED", false),
		OtelEndpoint:    src.String("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OtelInsecure:    src.Bool("OTEL_EXPORTER_OTLP_INSECURE", true),
		OtelSampleRatio: src.Float("OTEL_SAMPLER_RATIO", 1),
		OtelEnvironment: src.String("APP_ENV", "development"),
		ServiceName:     src.String("OTEL_SERVICE_NAME", "shortsview"),
		ServiceVersion:  src.String("APP_VERSION", "dev"),

		ShutdownDeadline: time.Duration(src.Int("SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
	}
}

func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "insecure-" + time.Now().UTC().Format(time.RFC3339Nano)
	}
	return hex.EncodeToString(buf)
}
