package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	ServiceName string
	Environment string

	DatabaseURL  string
	RedisAddr    string
	KafkaBrokers string
	KafkaTopic   string
	KafkaGroup   string

	CacheTTL        time.Duration
	CacheMaxEntries int

	FetchTimeout      time.Duration
	ScrapeDoToken     string
	ScrapingBotUser   string
	ScrapingBotAPIKey string
	ProxyURL          string
	ImageProxyURL     string
	InstagramAppID    string
	BatchMaxUsernames int
	BatchDefaultDelay time.Duration
	BatchMaxDelay     time.Duration

	CORSOrigins       []string
	RateLimitRequests int
	RateLimitWindow   string
	RequestTimeout    time.Duration

	MetricsEnabled bool
	TracingEnabled bool
	JaegerURL      string
	ObsHTTPAddr    string
}

func Load() *Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	env := getEnv("ENVIRONMENT", "development")

	// Production never falls back to a local database; see RequireDatabase.
	dbURL := getEnv("DATABASE_URL", "")
	if dbURL == "" && env != "production" {
		dbURL = "postgres://localhost:5432/roastmygram?sslmode=disable"
	}

	return &Config{
		Port:        fixPort(getEnv("PORT", "5000")),
		ServiceName: getEnv("SERVICE_NAME", "roast-api"),
		Environment: env,

		DatabaseURL:  dbURL,
		RedisAddr:    getEnv("REDIS_ADDR", ""),
		KafkaBrokers: getEnv("KAFKA_BROKERS", ""),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "roast.created"),
		KafkaGroup:   getEnv("KAFKA_GROUP", "roast-events"),

		CacheTTL:        getEnvDuration("CACHE_TTL", time.Hour),
		CacheMaxEntries: getEnvInt("CACHE_MAX_ENTRIES", 10000),

		FetchTimeout:      getEnvDuration("FETCH_TIMEOUT", 30*time.Second),
		ScrapeDoToken:     getEnv("SCRAPE_DO_TOKEN", ""),
		ScrapingBotUser:   getEnv("SCRAPINGBOT_USERNAME", ""),
		ScrapingBotAPIKey: getEnv("SCRAPINGBOT_API_KEY", ""),
		ProxyURL:          getEnv("PROXY_URL", ""),
		ImageProxyURL:     getEnv("IMAGE_PROXY_URL", "https://images.weserv.nl/"),
		InstagramAppID:    getEnv("INSTAGRAM_APP_ID", "936619743392459"),
		BatchMaxUsernames: getEnvInt("BATCH_MAX_USERNAMES", 10),
		BatchDefaultDelay: getEnvDuration("BATCH_DEFAULT_DELAY", 2*time.Second),
		BatchMaxDelay:     getEnvDuration("BATCH_MAX_DELAY", 10*time.Second),

		CORSOrigins:       getEnvList("CORS_ORIGINS", defaultOrigins(env)),
		RateLimitRequests: getEnvInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   getEnv("RATE_LIMIT_WINDOW", "15m"),
		RequestTimeout:    getEnvDuration("REQUEST_TIMEOUT", 2*time.Minute),

		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),
		TracingEnabled: getEnvBool("TRACING_ENABLED", false),
		JaegerURL:      getEnv("JAEGER_URL", "http://localhost:14268/api/traces"),
		ObsHTTPAddr:    fixPort(getEnv("HTTP_ADDR", ":8081")),
	}
}

var ErrMissingDatabaseURL = errors.New("missing required env: DATABASE_URL")

// RequireDatabase fails when the process needs Postgres but has no DATABASE_URL.
// Only the API server calls it; the events consumer never opens the database.
func (c *Config) RequireDatabase() error {
	if c.DatabaseURL == "" {
		return ErrMissingDatabaseURL
	}
	return nil
}

// EventsEnabled reports whether roast events should be written to the outbox.
func (c *Config) EventsEnabled() bool { return c.KafkaBrokers != "" }

func defaultOrigins(env string) []string {
	if env == "production" {
		return []string{"https://roastmygram.fun", "https://www.roastmygram.fun"}
	}
	return []string{"http://localhost:3000"}
}

func fixPort(port string) string {
	if port != "" && !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v == "true"
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid int for %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid duration for %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
