package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	usecasecontract "github.com/mikiasgoitom/Convene/internal/usecase/contract"
)

// Config holds application configuration values.
type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	LogLevel int    `env:"LOG_LEVEL" envDefault:"0"`

	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"24h"`

	AppBaseURL             string   `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`
	SendApprovalEmail      bool     `env:"SEND_APPROVAL_EMAIL" envDefault:"false"`
	DuplicateEmailConflict bool     `env:"DUPLICATE_EMAIL_CONFLICT" envDefault:"false"`
	BcryptCost             int      `env:"BCRYPT_COST" envDefault:"10"`
	CORSAllowedOrigins     []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	RateLimitPerSecond     float64  `env:"RATE_LIMIT_PER_SECOND" envDefault:"10"`

	Mongo  Mongo  `envPrefix:"MONGODB_"`
	JWT    JWT    `envPrefix:"JWT_"`
	Minio  Minio  `envPrefix:"MINIO_"`
	Redis  Redis  `envPrefix:"REDIS_"`
	Email  Email  `envPrefix:"EMAIL_"`
	Google Google `envPrefix:"GOOGLE_"`
}

// Mongo contains database connection parameters.
type Mongo struct {
	URI    string `env:"URI" envDefault:"mongodb://localhost:27017/?replicaSet=rs0"`
	DBName string `env:"DB_NAME" envDefault:"convene"`
}

// JWT contains token signing parameters.
type JWT struct {
	Secret string `env:"SECRET,required,notEmpty"`
	Issuer string `env:"ISSUER" envDefault:"convene"`
}

// Minio contains object storage parameters for profile pictures.
type Minio struct {
	Endpoint      string `env:"ENDPOINT" envDefault:"localhost:9000"`
	AccessKey     string `env:"ACCESS_KEY" envDefault:"convene-access-key"`
	SecretKey     string `env:"SECRET_KEY" envDefault:"convene-secret-key"`
	Bucket        string `env:"BUCKET_NAME" envDefault:"convene-avatars"`
	UseSSL        bool   `env:"USE_SSL" envDefault:"false"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL"`
}

// Redis is optional; an empty URL disables the profile cache.
type Redis struct {
	URL      string        `env:"URL"`
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"10m"`
}

// Email configures the SMTP relay for approval notifications.
type Email struct {
	Host     string `env:"HOST" envDefault:"smtp.gmail.com"`
	Port     int    `env:"PORT" envDefault:"587"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	From     string `env:"FROM"`
}

// Google holds the OAuth2 client; sign-in is disabled when ClientID is empty.
type Google struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURL  string `env:"REDIRECT_URL" envDefault:"http://localhost:8080/api/v1/auth/google/callback"`
}

// Load reads an optional .env file and then the process environment.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && len(envFiles) > 0 {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}
	return parse()
}

func parse() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.AccessTokenTTL <= 0 {
		return nil, errors.New("ACCESS_TOKEN_TTL must be positive")
	}
	return &cfg, nil
}

var _ usecasecontract.IConfigProvider = (*Config)(nil)

// GetAppBaseURL returns the base URL of the application.
func (c *Config) GetAppBaseURL() string {
	return c.AppBaseURL
}

func (c *Config) GetAccessTokenExpiry() time.Duration {
	return c.AccessTokenTTL
}

// GetSendApprovalEmail returns whether to email users once approved.
func (c *Config) GetSendApprovalEmail() bool {
	return c.SendApprovalEmail
}

func (c *Config) GetDuplicateEmailConflict() bool {
	return c.DuplicateEmailConflict
}

func (c *Config) GetGoogleClientID() string {
	return c.Google.ClientID
}

func (c *Config) GetGoogleClientSecret() string {
	return c.Google.ClientSecret
}

func (c *Config) GetGoogleRedirectURL() string {
	return c.Google.RedirectURL
}

// RedisEnabled reports whether the profile cache should be wired.
func (c *Config) RedisEnabled() bool {
	return c.Redis.URL != ""
}

// GoogleEnabled reports whether Google sign-in routes should be wired.
func (c *Config) GoogleEnabled() bool {
	return c.Google.ClientID != "" && c.Google.ClientSecret != ""
}
