package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Env struct {
	AppAddr string `envconfig:"APP_ADDR" default:":8080"`
	GinMode string `envconfig:"GIN_MODE"`

	DBDSN string `envconfig:"DB_DSN" default:"root:@tcp(127.0.0.1:3306)/wedding?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s"`

	JWTSecret string        `envconfig:"JWT_SECRET" default:"super-secret-key-change-me"`
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"24h"`

	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
	PublicBaseURL      string   `envconfig:"PUBLIC_BASE_URL" default:"http://localhost:5173"`
	EventFile          string   `envconfig:"EVENT_FILE" default:"event.yaml"`

	AdminEmail    string `envconfig:"ADMIN_EMAIL"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`

	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	SessionTTL      time.Duration `envconfig:"SESSION_TTL" default:"2h"`
	LoginRatePerSec int           `envconfig:"LOGIN_RATE_PER_SEC" default:"2"`
}

// LoadEnv reads .env (optional) and then the process environment.
func LoadEnv() (Env, error) {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("no .env file found, relying on process environment")
	}

	var env Env
	if err := envconfig.Process("", &env); err != nil {
		return Env{}, err
	}
	env.PublicBaseURL = strings.TrimRight(strings.TrimSpace(env.PublicBaseURL), "/")
	return env, nil
}
