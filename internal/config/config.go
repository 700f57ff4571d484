package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Gateway  GatewayConfig
	PubNub   PubNubConfig
	Gate     GateConfig
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type RedisConfig struct {
	Addr string
}

type GatewayConfig struct {
	TmnCode    string
	HashSecret string
	PayURL     string
	ReturnURL  string
	// FrontendResultURL is where the buyer's browser lands after a
	// callback, with the outcome appended as query parameters.
	FrontendResultURL string
}

type PubNubConfig struct {
	PublishKey   string
	SubscribeKey string
}

// GateConfig bounds when gate scans are accepted relative to the event's
// start and end times.
type GateConfig struct {
	// CheckinOpensBefore is how long before start_time check-in opens.
	CheckinOpensBefore time.Duration
	// CheckoutOpensAfterStart is how long after start_time check-out opens.
	CheckoutOpensAfterStart time.Duration
	// CheckoutClosesAfter is how long after end_time check-out still works.
	CheckoutClosesAfter time.Duration
}

// Load reads .env (when present) and assembles the config from the
// environment. Every value has a development default; callers that need the
// gateway secret check for it themselves.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "event_ticketing"),
		},
		Redis: RedisConfig{
			Addr: getEnv("REDIS_ADDR", "localhost:6379"),
		},
		Gateway: GatewayConfig{
			TmnCode:           getEnv("VNP_TMN_CODE", ""),
			HashSecret:        getEnv("VNP_HASH_SECRET", ""),
			PayURL:            getEnv("VNP_PAY_URL", "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html"),
			ReturnURL:         getEnv("VNP_RETURN_URL", "http://localhost:8080/api/payment/return"),
			FrontendResultURL: getEnv("FRONTEND_RESULT_URL", "http://localhost:3000/payment/result"),
		},
		PubNub: PubNubConfig{
			PublishKey:   getEnv("PUBNUB_PUBLISH_KEY", ""),
			SubscribeKey: getEnv("PUBNUB_SUBSCRIBE_KEY", ""),
		},
		Gate: GateConfig{
			CheckinOpensBefore:      getEnvDuration("CHECKIN_OPENS_BEFORE", 2*time.Hour),
			CheckoutOpensAfterStart: getEnvDuration("CHECKOUT_OPENS_AFTER_START", 30*time.Minute),
			CheckoutClosesAfter:     getEnvDuration("CHECKOUT_CLOSES_AFTER", 1*time.Hour),
		},
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}

	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}

	// Plain numbers are read as minutes.
	if minutes, err := strconv.Atoi(raw); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	log.Printf("cannot parse %s=%q, using default %s", key, raw, fallback)
	return fallback
}
