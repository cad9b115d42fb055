package initializers

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type AppConfig struct {
	Port string

	DBDriver string
	DBDSN    string
	DBDebug  bool

	JWTSecret string
	JWTTTL    time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	KafkaBrokers []string
	KafkaTopic   string

	PesapalURL            string
	PesapalConsumerKey    string
	PesapalConsumerSecret string
	PesapalNotificationID string
	PesapalCallbackURL    string

	SMTPFrom     string
	SMTPPassword string
	SMTPHost     string
	SMTPAddress  string
	TemplateDir  string
	LogoURL      string

	S3Bucket string

	FrontendURL string

	CORSOrigins []string

	RateLimit       int
	RateLimitWindow time.Duration

	AdminEmail    string
	AdminPhone    string
	AdminPassword string
}

var Config AppConfig

// LoadConfig reads configuration from the environment, applying defaults.
func LoadConfig() (AppConfig, error) {
	cfg := AppConfig{
		Port:                  getEnv("PORT", "8080"),
		DBDriver:              getEnv("DB_DRIVER", "sqlite"),
		DBDSN:                 getEnv("DB_DSN", "amexan.db"),
		JWTSecret:             getEnv("JWT_SECRET", ""),
		RedisAddr:             getEnv("REDIS_ADDR", ""),
		RedisPassword:         getEnv("REDIS_PASSWORD", ""),
		KafkaBrokers:          splitCSV(getEnv("KAFKA_BROKERS", "")),
		KafkaTopic:            getEnv("KAFKA_TOPIC", "amexan-orders"),
		PesapalURL:            getEnv("PESAPAL_URL", "https://pay.pesapal.com/v3/api"),
		PesapalConsumerKey:    getEnv("PESAPAL_CONSUMER_KEY", ""),
		PesapalConsumerSecret: getEnv("PESAPAL_CONSUMER_SECRET", ""),
		PesapalNotificationID: getEnv("PESAPAL_NOTIFICATION_ID", ""),
		PesapalCallbackURL:    getEnv("PESAPAL_CALLBACK_URL", "https://amexan.store/payment/callback"),
		SMTPFrom:              getEnv("FROM_EMAIL", ""),
		SMTPPassword:          getEnv("FROM_EMAIL_PASSWORD", ""),
		SMTPHost:              getEnv("FROM_EMAIL_SMTP", ""),
		SMTPAddress:           getEnv("SMTP_ADDRESS", ""),
		TemplateDir:           getEnv("TEMPLATE_DIR", "templates"),
		LogoURL:               getEnv("LOGO_URL", "https://www.amexan.store/images/logo.jpg"),
		S3Bucket:              getEnv("S3_BUCKET", ""),
		FrontendURL:           getEnv("FRONTEND_URL", "https://www.amexan.store"),
		CORSOrigins:           splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200,https://www.amexan.store")),
		AdminEmail:            getEnv("ADMIN_EMAIL", ""),
		AdminPhone:            getEnv("ADMIN_PHONE", "05000000000"),
		AdminPassword:         getEnv("ADMIN_PASSWORD", ""),
	}

	if cfg.DBDriver != "sqlite" && cfg.DBDriver != "mysql" {
		return AppConfig{}, fmt.Errorf("DB_DRIVER must be sqlite or mysql, got %q", cfg.DBDriver)
	}
	if cfg.JWTSecret == "" {
		return AppConfig{}, fmt.Errorf("JWT_SECRET must not be empty")
	}

	debug, err := getEnvBool("DB_DEBUG", false)
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid DB_DEBUG: %w", err)
	}
	cfg.DBDebug = debug

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	cfg.RedisDB = redisDB

	ttlHours, err := getEnvInt("JWT_TTL_HOURS", 24*30)
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid JWT_TTL_HOURS: %w", err)
	}
	if ttlHours <= 0 {
		return AppConfig{}, fmt.Errorf("JWT_TTL_HOURS must be > 0")
	}
	cfg.JWTTTL = time.Duration(ttlHours) * time.Hour

	rateLimit, err := getEnvInt("RATE_LIMIT", 120)
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid RATE_LIMIT: %w", err)
	}
	if rateLimit <= 0 {
		return AppConfig{}, fmt.Errorf("RATE_LIMIT must be > 0")
	}
	cfg.RateLimit = rateLimit

	windowSec, err := getEnvInt("RATE_LIMIT_WINDOW_SEC", 60)
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid RATE_LIMIT_WINDOW_SEC: %w", err)
	}
	if windowSec <= 0 {
		return AppConfig{}, fmt.Errorf("RATE_LIMIT_WINDOW_SEC must be > 0")
	}
	cfg.RateLimitWindow = time.Duration(windowSec) * time.Second

	return cfg, nil
}

func getEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func getEnvInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

func getEnvBool(key string, fallback bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	return strconv.ParseBool(v)
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		s := strings.TrimSpace(p)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
