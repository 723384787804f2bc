package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env             string
	Port            int
	APIPrefix       string
	ShutdownTimeout time.Duration

	Database     DatabaseConfig
	Redis        RedisConfig
	Cache        CacheConfig
	JWT          JWTConfig
	Session      SessionConfig
	CORS         CORSConfig
	Log          LogConfig
	Calendar     CalendarConfig
	Export       ExportConfig
	Housekeeping HousekeepingConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// CacheConfig governs the Redis-backed lesson list cache.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

// SessionConfig describes the cookie carrying the signed session token.
type SessionConfig struct {
	CookieName string
	Secure     bool
	Domain     string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// CalendarConfig defines the visible day window and the school timezone.
type CalendarConfig struct {
	Timezone    string
	WindowStart string
	WindowEnd   string
	SlotMinutes int
	CatalogPath string
}

// ExportConfig controls the calendar interchange export.
type ExportConfig struct {
	HorizonWeeks int
	UIDDomain    string
	ProductID    string
	CalendarName string
}

// HousekeepingConfig schedules the purge of expired adjustments.
type HousekeepingConfig struct {
	Enabled       bool
	Schedule      string
	RetentionDays int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")
	cfg.ShutdownTimeout = parseDuration(v.GetString("SHUTDOWN_TIMEOUT"), 10*time.Second)

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Cache = CacheConfig{
		Enabled: v.GetBool("CACHE_ENABLED"),
		TTL:     parseDuration(v.GetString("CACHE_TTL"), 5*time.Minute),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 12*time.Hour),
		Issuer:     v.GetString("JWT_ISSUER"),
	}

	cfg.Session = SessionConfig{
		CookieName: v.GetString("SESSION_COOKIE_NAME"),
		Secure:     v.GetBool("SESSION_COOKIE_SECURE"),
		Domain:     v.GetString("SESSION_COOKIE_DOMAIN"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Calendar = CalendarConfig{
		Timezone:    v.GetString("CALENDAR_TIMEZONE"),
		WindowStart: v.GetString("CALENDAR_WINDOW_START"),
		WindowEnd:   v.GetString("CALENDAR_WINDOW_END"),
		SlotMinutes: v.GetInt("CALENDAR_SLOT_MINUTES"),
		CatalogPath: v.GetString("CATALOG_PATH"),
	}

	horizon := v.GetInt("EXPORT_HORIZON_WEEKS")
	if horizon <= 0 {
		horizon = 16
	}
	cfg.Export = ExportConfig{
		HorizonWeeks: horizon,
		UIDDomain:    v.GetString("EXPORT_UID_DOMAIN"),
		ProductID:    v.GetString("EXPORT_PRODUCT_ID"),
		CalendarName: v.GetString("EXPORT_CALENDAR_NAME"),
	}

	cfg.Housekeeping = HousekeepingConfig{
		Enabled:       v.GetBool("HOUSEKEEPING_ENABLED"),
		Schedule:      v.GetString("HOUSEKEEPING_CRON"),
		RetentionDays: v.GetInt("ADJUSTMENT_RETENTION_DAYS"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "lesson_calendar")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_ENABLED", false)
	v.SetDefault("CACHE_TTL", "5m")

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "12h")
	v.SetDefault("JWT_ISSUER", "lesson-calendar-api")

	v.SetDefault("SESSION_COOKIE_NAME", "session")
	v.SetDefault("SESSION_COOKIE_SECURE", false)
	v.SetDefault("SESSION_COOKIE_DOMAIN", "")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("CALENDAR_TIMEZONE", "Europe/Rome")
	v.SetDefault("CALENDAR_WINDOW_START", "09:00")
	v.SetDefault("CALENDAR_WINDOW_END", "21:00")
	v.SetDefault("CALENDAR_SLOT_MINUTES", 30)
	v.SetDefault("CATALOG_PATH", "")

	v.SetDefault("EXPORT_HORIZON_WEEKS", 16)
	v.SetDefault("EXPORT_UID_DOMAIN", "calendar.local")
	v.SetDefault("EXPORT_PRODUCT_ID", "-//Lesson Calendar//IT")
	v.SetDefault("EXPORT_CALENDAR_NAME", "Orario lezioni")

	v.SetDefault("HOUSEKEEPING_ENABLED", false)
	v.SetDefault("HOUSEKEEPING_CRON", "0 3 * * *")
	v.SetDefault("ADJUSTMENT_RETENTION_DAYS", 180)
}

// isMissingFile reports a missing .env; viper surfaces it as a path error
// rather than ConfigFileNotFoundError when SetConfigFile is used.
func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
