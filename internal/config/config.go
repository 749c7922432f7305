package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set")

// Config 全部来自环境变量，.env 只在本地开发时存在
type Config struct {
	AppPort string
	GinMode string

	JWTSecret           string
	AdminDeleteOverride bool

	DBDSN         string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBAutoMigrate bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	KafkaBrokers []string
	KafkaTopic   string

	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool

	RateLimitPerMinute int
	AllowedOrigins     []string

	OutboxInterval    time.Duration
	ReconcileInterval time.Duration
}

// Load 先尝试 .env，再读环境变量；敏感项没有默认值
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		_ = godotenv.Load()
	} else {
		for _, f := range files {
			if err := godotenv.Load(f); err != nil {
				return nil, fmt.Errorf("load env file %s: %w", f, err)
			}
		}
	}

	cfg := &Config{
		AppPort:             getEnv("APP_PORT", "8080"),
		GinMode:             getEnv("GIN_MODE", "release"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		AdminDeleteOverride: getBool("ADMIN_DELETE_OVERRIDE", false),
		DBDSN:               os.Getenv("DB_DSN"),
		DBHost:              getEnv("DB_HOST", "127.0.0.1"),
		DBPort:              getEnv("DB_PORT", "3306"),
		DBUser:              getEnv("DB_USER", "root"),
		DBPassword:          os.Getenv("DB_PASSWORD"),
		DBName:              getEnv("DB_NAME", "community"),
		DBAutoMigrate:       getBool("DB_AUTO_MIGRATE", true),
		RedisAddr:           os.Getenv("REDIS_ADDR"),
		RedisPassword:       os.Getenv("REDIS_PASSWORD"),
		RedisDB:             getInt("REDIS_DB", 0),
		KafkaBrokers:        splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:          getEnv("KAFKA_TOPIC", "community-events"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogPath:             os.Getenv("LOG_PATH"),
		LogMaxSizeMB:        getInt("LOG_MAX_SIZE_MB", 100),
		LogMaxBackups:       getInt("LOG_MAX_BACKUPS", 3),
		LogMaxAgeDays:       getInt("LOG_MAX_AGE_DAYS", 7),
		LogCompress:         getBool("LOG_COMPRESS", false),
		RateLimitPerMinute:  getInt("RATE_LIMIT_PER_MINUTE", 120),
		AllowedOrigins:      splitList(getEnv("ALLOWED_ORIGINS", "*")),
		OutboxInterval:      getDuration("OUTBOX_INTERVAL", time.Second),
		ReconcileInterval:   getDuration("RECONCILE_INTERVAL", 5*time.Minute),
	}

	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}
	return cfg, nil
}

// DSN 优先使用完整 DB_DSN
func (c *Config) DSN() string {
	if c.DBDSN != "" {
		return c.DBDSN
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
