package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Pricing  PricingConfig
	Features FeatureFlags
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
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
	MaxLifetime  time.Duration
}

func (d DatabaseConfig) ConnectionString() string {
	return "host=" + d.Host +
		" port=" + strconv.Itoa(d.Port) +
		" user=" + d.User +
		" password=" + d.Password +
		" dbname=" + d.Name +
		" sslmode=" + d.SSLMode
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	CartTTL  time.Duration
	MenuTTL  time.Duration
}

type KafkaConfig struct {
	Brokers       []string
	CartsTopic    string
	MenuTopic     string
	ConsumerGroup string
}

// PricingConfig holds the fixed pricing policy applied to every cart.
// The delivery fee is flat; it is not derived from distance or weight.
type PricingConfig struct {
	TaxRate        float64
	DeliveryFee    float64
	CurrencySymbol string
}

type FeatureFlags struct {
	EnableCartPersistence bool
	EnableMenuCaching     bool
	EnableCartEvents      bool
}

func Load() *Config {
	// Best effort: a missing .env just means plain environment variables.
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:         getEnvInt("SERVER_PORT", 8084),
			ReadTimeout:  time.Duration(getEnvInt("SERVER_READ_TIMEOUT", 30)) * time.Second,
			WriteTimeout: time.Duration(getEnvInt("SERVER_WRITE_TIMEOUT", 30)) * time.Second,
		},
		Database: DatabaseConfig{
			Host:         getEnvString("DB_HOST", "localhost"),
			Port:         getEnvInt("DB_PORT", 5432),
			User:         getEnvString("DB_USER", "ineat"),
			Password:     getEnvString("DB_PASSWORD", "ineat"),
			Name:         getEnvString("DB_NAME", "ineat_catalog"),
			SSLMode:      getEnvString("DB_SSLMODE", "disable"),
			MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  time.Duration(getEnvInt("DB_CONN_MAX_LIFETIME", 300)) * time.Second,
		},
		Redis: RedisConfig{
			Host:     getEnvString("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnvString("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			CartTTL:  time.Duration(getEnvInt("REDIS_CART_TTL", 86400)) * time.Second,
			MenuTTL:  time.Duration(getEnvInt("REDIS_MENU_TTL", 300)) * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers:       getEnvSlice("KAFKA_BROKERS", []string{"localhost:9092"}),
			CartsTopic:    getEnvString("KAFKA_CARTS_TOPIC", "ineat.carts"),
			MenuTopic:     getEnvString("KAFKA_MENU_TOPIC", "ineat.menu"),
			ConsumerGroup: getEnvString("KAFKA_CONSUMER_GROUP", "cart-service"),
		},
		Pricing: PricingConfig{
			TaxRate:        getEnvFloat("PRICING_TAX_RATE", 0.05),
			DeliveryFee:    getEnvFloat("PRICING_DELIVERY_FEE", 40),
			CurrencySymbol: getEnvString("PRICING_CURRENCY_SYMBOL", "₹"),
		},
		Features: FeatureFlags{
			EnableCartPersistence: getEnvBool("FEATURE_CART_PERSISTENCE", true),
			EnableMenuCaching:     getEnvBool("FEATURE_MENU_CACHING", true),
			EnableCartEvents:      getEnvBool("FEATURE_CART_EVENTS", true),
		},
	}
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
