package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"foodorder/internal/pkg/errs"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisAddr     string
	RedisPassword string
	RabbitMQURL   string

	JWTSecret  string
	JWTTTL     time.Duration
	BcryptCost int

	StripeSecretKey     string
	StripeWebhookSecret string
	StripeSuccessURL    string
	StripeCancelURL     string
	Currency            string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string

	WeatherBaseURL     string
	NominatimBaseURL   string
	NominatimUserAgent string
	ProviderTimeout    time.Duration

	TaxRate         decimal.Decimal
	BaseDeliveryFee decimal.Decimal

	CourierPresenceWindow   time.Duration
	CourierPresenceSchedule string
}

// DSN returns the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// ConfigFromEnv reads the configuration from the process environment. Values
// from a .env file must be loaded beforehand.
func ConfigFromEnv() (Config, error) {
	var errList []error
	r := envReader{errList: &errList}

	cfg := Config{
		HTTPPort:   r.str("HTTP_PORT", "8080"),
		DBHost:     r.required("DB_HOST"),
		DBPort:     r.str("DB_PORT", "5432"),
		DBUser:     r.required("DB_USER"),
		DBPassword: r.str("DB_PASSWORD", ""),
		DBName:     r.required("DB_NAME"),
		DBSslMode:  r.str("DB_SSLMODE", "disable"),

		RedisAddr:     r.str("REDIS_ADDR", "localhost:6379"),
		RedisPassword: r.str("REDIS_PASSWORD", ""),
		RabbitMQURL:   r.str("RABBITMQ_URL", ""),

		JWTSecret:  r.required("JWT_SECRET"),
		JWTTTL:     r.duration("JWT_TTL", 24*time.Hour),
		BcryptCost: r.integer("BCRYPT_COST", 12),

		StripeSecretKey:     r.required("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: r.required("STRIPE_WEBHOOK_SECRET"),
		StripeSuccessURL:    r.required("STRIPE_SUCCESS_URL"),
		StripeCancelURL:     r.required("STRIPE_CANCEL_URL"),
		Currency:            r.str("CURRENCY", "usd"),

		CloudinaryCloudName: r.required("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    r.required("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: r.required("CLOUDINARY_API_SECRET"),
		CloudinaryFolder:    r.str("CLOUDINARY_FOLDER", "menu"),

		WeatherBaseURL:     r.str("WEATHER_BASE_URL", ""),
		NominatimBaseURL:   r.str("NOMINATIM_BASE_URL", ""),
		NominatimUserAgent: r.str("NOMINATIM_USER_AGENT", "foodorder/1.0"),
		ProviderTimeout:    r.duration("PROVIDER_TIMEOUT", 5*time.Second),

		TaxRate:         r.decimal("TAX_RATE", decimal.RequireFromString("0.1")),
		BaseDeliveryFee: r.decimal("BASE_DELIVERY_FEE", decimal.NewFromInt(5)),

		CourierPresenceWindow:   r.duration("COURIER_PRESENCE_WINDOW", 15*time.Minute),
		CourierPresenceSchedule: r.str("COURIER_PRESENCE_SCHEDULE", ""),
	}

	if cfg.TaxRate.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidError("TAX_RATE"))
	}
	if cfg.BaseDeliveryFee.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidError("BASE_DELIVERY_FEE"))
	}
	if cfg.CourierPresenceWindow < 0 {
		errList = append(errList, errs.NewValueIsInvalidError("COURIER_PRESENCE_WINDOW"))
	}

	if err := errors.Join(errList...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type envReader struct {
	errList *[]error
}

func (r envReader) str(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func (r envReader) required(key string) string {
	v := os.Getenv(key)
	if v == "" {
		*r.errList = append(*r.errList, errs.NewValueIsRequiredError(key))
	}
	return v
}

func (r envReader) duration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*r.errList = append(*r.errList, errs.NewValueIsInvalidErrorWithCause(key, err))
		return fallback
	}
	return d
}

func (r envReader) integer(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*r.errList = append(*r.errList, errs.NewValueIsInvalidErrorWithCause(key, err))
		return fallback
	}
	return n
}

func (r envReader) decimal(key string, fallback decimal.Decimal) decimal.Decimal {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		*r.errList = append(*r.errList, errs.NewValueIsInvalidErrorWithCause(key, err))
		return fallback
	}
	return d
}
