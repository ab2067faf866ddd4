package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Env is the explicit runtime configuration. Everything the core needs
// is a named field here and injected at startup; nothing reads os.Getenv
// at call sites.
type Env struct {
	AppAddr string
	GinMode string

	DBDSN string

	// DefaultSubdomain is the deployment-wide fallback used when a
	// request carries no tenant hint at all.
	DefaultSubdomain string

	JWTSecret string

	// GatewayWebhookSecret enables HMAC verification of payment
	// callbacks when set; empty keeps the legacy accept-all behavior.
	GatewayWebhookSecret string

	// Optional collaborators; empty means disabled.
	RedisAddr string
	AMQPURL   string

	CORSAllowedOrigins []string
}

func LoadEnv() Env {
	// .env is a convenience for local runs; missing file is fine.
	_ = godotenv.Load()

	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	dsn := strings.TrimSpace(os.Getenv("DB_DSN"))
	if dsn == "" {
		dsn = "root:@tcp(127.0.0.1:3306)/corptransit_core?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s"
	}

	defaultSub := strings.TrimSpace(os.Getenv("DEFAULT_SUBDOMAIN"))
	if defaultSub == "" {
		defaultSub = "app"
	}

	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		secret = "super-secret-key-change-me"
	}

	var origins []string
	if raw := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}

	return Env{
		AppAddr:              appAddr,
		GinMode:              strings.TrimSpace(os.Getenv("GIN_MODE")),
		DBDSN:                dsn,
		DefaultSubdomain:     defaultSub,
		JWTSecret:            secret,
		GatewayWebhookSecret: strings.TrimSpace(os.Getenv("GATEWAY_WEBHOOK_SECRET")),
		RedisAddr:            strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		AMQPURL:              strings.TrimSpace(os.Getenv("AMQP_URL")),
		CORSAllowedOrigins:   origins,
	}
}
