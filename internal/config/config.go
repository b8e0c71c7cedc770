package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Log      LogConfig
	Matching MatchingConfig
	Notify   NotifyConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

func (c DatabaseConfig) Enabled() bool {
	return c.DBHost != "" && c.DBName != ""
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

func (c RedisConfig) Addr() string {
	port := c.Port
	if port == "" {
		port = "6379"
	}
	return c.Host + ":" + port
}

type KafkaConfig struct {
	Brokers            []string
	NotificationsTopic string
	BroadcastTopic     string
}

type LogConfig struct {
	JSON  bool
	Debug bool
}

type MatchingConfig struct {
	CacheBackend    string
	CacheTTL        time.Duration
	CacheMaxEntries int
	CacheSweepSpec  string
}

type NotifyConfig struct {
	WebhookSecret string
	Workers       int
	QueueSize     int
	TaskTimeout   time.Duration
	DedupTTL      time.Duration
}

const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

var errMissingRequiredEnv = errors.New("missing required environment variables")

// Load reads .env (if any), an optional config.yaml and the process environment.
// Environment variables take precedence over the file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AddConfigPath(".")
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		s := strings.TrimSpace(v.GetString(key))
		if s == "" {
			missing = append(missing, key)
		}
		return s
	}
	opt := func(key string) string {
		return strings.TrimSpace(v.GetString(key))
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:                opt("DB_HOST"),
		DBPort:                opt("DB_PORT"),
		DBName:                opt("DB_NAME"),
		DBUser:                opt("DB_USER"),
		DBPassword:            opt("DB_PASSWORD"),
		DBSSLMode:             orDefault(opt("DB_SSL_MODE"), "disable"),
		ConnectTimeout:        durationOr(opt("DB_CONNECT_TIMEOUT"), 5*time.Second),
		PoolMaxConns:          int32(intOr(opt("DB_POOL_MAX_CONNS"), 0)),
		PoolMinConns:          int32(intOr(opt("DB_POOL_MIN_CONNS"), 0)),
		PoolMaxConnLifetime:   durationOr(opt("DB_POOL_MAX_CONN_LIFETIME"), 0),
		PoolMaxConnIdleTime:   durationOr(opt("DB_POOL_MAX_CONN_IDLE_TIME"), 0),
		PoolHealthCheckPeriod: durationOr(opt("DB_POOL_HEALTH_CHECK_PERIOD"), 0),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST"),
		Port:     opt("REDIS_PORT"),
		Password: opt("REDIS_PASSWORD"),
		DB:       intOr(opt("REDIS_DB"), 0),
	}

	cfg.Kafka = KafkaConfig{
		Brokers:            splitList(opt("KAFKA_BROKERS")),
		NotificationsTopic: orDefault(opt("KAFKA_NOTIFICATIONS_TOPIC"), "job.notifications"),
		BroadcastTopic:     orDefault(opt("KAFKA_BROADCAST_TOPIC"), "job_offers"),
	}

	cfg.Log = LogConfig{
		JSON:  boolOr(opt("LOG_JSON"), cfg.App.Environment == "production"),
		Debug: boolOr(opt("LOG_DEBUG"), false),
	}

	cfg.Matching = MatchingConfig{
		CacheBackend:    strings.ToLower(orDefault(opt("MATCH_CACHE_BACKEND"), CacheBackendMemory)),
		CacheTTL:        durationOr(opt("MATCH_CACHE_TTL"), 24*time.Hour),
		CacheMaxEntries: intOr(opt("MATCH_CACHE_MAX_ENTRIES"), 10000),
		CacheSweepSpec:  orDefault(opt("CACHE_SWEEP_SPEC"), "@every 15m"),
	}

	cfg.Notify = NotifyConfig{
		WebhookSecret: opt("WEBHOOK_SECRET"),
		Workers:       intOr(opt("NOTIFY_WORKERS"), 4),
		QueueSize:     intOr(opt("NOTIFY_QUEUE_SIZE"), 256),
		TaskTimeout:   durationOr(opt("NOTIFY_TASK_TIMEOUT"), 30*time.Second),
		DedupTTL:      durationOr(opt("DEDUP_TTL"), 24*time.Hour),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	switch cfg.Matching.CacheBackend {
	case CacheBackendMemory, CacheBackendRedis:
	default:
		return Config{}, fmt.Errorf("invalid MATCH_CACHE_BACKEND %q", cfg.Matching.CacheBackend)
	}

	return cfg, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func intOr(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}

func boolOr(raw string, def bool) bool {
	if raw == "" {
		return def
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return b
}

// durationOr accepts Go durations ("30s") or a bare number of seconds.
func durationOr(raw string, def time.Duration) time.Duration {
	if raw == "" {
		return def
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(raw); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return def
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	out := make([]string, 0)
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
