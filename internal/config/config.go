package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Storage string

const (
	StorageSQLite Storage = "sqlite"
	StorageMongo  Storage = "mongo"
	StorageMemory Storage = "memory"
)

type Postgres struct {
	Host              string
	Port              int
	User              string
	Password          string
	DBName            string
	MigrationsDirPath string
}

// Enabled reports whether an order database was configured.
func (p Postgres) Enabled() bool {
	return p.Host != ""
}

type Config struct {
	AppEnv   string
	LogLevel string

	HTTPPort string
	GRPCPort string

	CatalogAPIURL  string
	OrderAPIURL    string
	PaymentURLBase string

	CartStorage   Storage
	SQLitePath    string
	MongoURI      string
	MongoDBName   string
	RedisAddr     string
	RedisPassword string

	Postgres Postgres

	KafkaBrokers []string

	SessionTTL             time.Duration
	RequestTimeout         time.Duration
	ShutdownTimeout        time.Duration
	IncludeAddOnSurcharges bool
}

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first; real environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		AppEnv:   getEnv("APP_ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		HTTPPort: getEnv("HTTP_PORT", "8080"),
		GRPCPort: getEnv("GRPC_PORT", "50060"),

		CatalogAPIURL:  getEnv("CATALOG_API_URL", ""),
		OrderAPIURL:    getEnv("ORDER_API_URL", ""),
		PaymentURLBase: getEnv("PAYMENT_URL_BASE", "https://securepayments.sberbank.ru/payment/merchants/sbersafe/payment_ru.html"),

		CartStorage:   Storage(strings.ToLower(getEnv("CART_STORAGE", string(StorageSQLite)))),
		SQLitePath:    getEnv("SQLITE_PATH", "storefront.db"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:   getEnv("MONGO_DB_NAME", "cartdb"),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		Postgres: Postgres{
			Host:              getEnv("DB_HOST", ""),
			Port:              getEnvInt("DB_PORT", 5432),
			User:              getEnv("DB_USER", "postgres"),
			Password:          getEnv("DB_PASSWORD", "postgres"),
			DBName:            getEnv("DB_NAME", "storefront"),
			MigrationsDirPath: getEnv("MIGRATIONS_PATH", "./internal/orders/migrations"),
		},

		KafkaBrokers: splitList(getEnv("KAFKA_BROKERS", "")),

		SessionTTL:             getEnvDuration("SESSION_TTL", 2*time.Hour),
		RequestTimeout:         getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
		ShutdownTimeout:        getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		IncludeAddOnSurcharges: getEnvBool("INCLUDE_ADDON_SURCHARGES", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, def int) int {
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

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func getEnvBool(key string, def bool) bool {
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

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
