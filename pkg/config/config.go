package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Environment variable names, kept in sync with the envconfig tags below.
const (
	EnvAppEnv                 = "RENTKART_APP_ENV"
	EnvPort                   = "RENTKART_APP_PORT"
	EnvDBDSN                  = "RENTKART_DB_DSN"
	EnvDBHost                 = "RENTKART_DB_HOST"
	EnvDBUser                 = "RENTKART_DB_USER"
	EnvDBName                 = "RENTKART_DB_NAME"
	EnvRedisURL               = "RENTKART_REDIS_URL"
	EnvJWTSecret              = "RENTKART_JWT_SECRET"
	EnvJWTIssuer              = "RENTKART_JWT_ISSUER"
	EnvJWTExpMins             = "RENTKART_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "RENTKART_REFRESH_TOKEN_TTL_MINUTES"
	EnvSMTPHost               = "RENTKART_SMTP_HOST"
	EnvSMTPFrom               = "RENTKART_SMTP_FROM"
	EnvSiteURL                = "RENTKART_SITE_URL"
	EnvGCPProjectID           = "RENTKART_GCP_PROJECT_ID"
	EnvPubSubDomainTopic      = "RENTKART_PUBSUB_DOMAIN_TOPIC"
	EnvPubSubDomainSub        = "RENTKART_PUBSUB_DOMAIN_SUBSCRIPTION"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	SMTP         SMTPConfig
	Portal       PortalConfig
	PubSub       PubSubConfig
	Outbox       OutboxConfig
	FeatureFlags FeatureFlagsConfig
	GCP          GCPConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"RENTKART_APP_ENV" required:"true"`
	Port         string `envconfig:"RENTKART_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"RENTKART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"RENTKART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"RENTKART_DB_DSN"`
	Driver string `envconfig:"RENTKART_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"RENTKART_DB_HOST"`
	Port     int    `envconfig:"RENTKART_DB_PORT" default:"5432"`
	User     string `envconfig:"RENTKART_DB_USER"`
	Password string `envconfig:"RENTKART_DB_PASSWORD"`
	Name     string `envconfig:"RENTKART_DB_NAME"`
	SSLMode  string `envconfig:"RENTKART_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"RENTKART_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"RENTKART_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"RENTKART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"RENTKART_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"RENTKART_REDIS_URL" required:"true"`
	Address      string        `envconfig:"RENTKART_REDIS_ADDR"`
	Password     string        `envconfig:"RENTKART_REDIS_PASSWORD"`
	DB           int           `envconfig:"RENTKART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"RENTKART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"RENTKART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"RENTKART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"RENTKART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"RENTKART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"RENTKART_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"RENTKART_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"RENTKART_JWT_EXPIRATION_MINUTES" default:"30"`
	RefreshTokenTTLMinutes int    `envconfig:"RENTKART_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"RENTKART_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"RENTKART_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"RENTKART_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"RENTKART_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"RENTKART_ARGON_KEY_LEN" default:"32"`
}

type SMTPConfig struct {
	Host     string `envconfig:"RENTKART_SMTP_HOST"`
	Port     int    `envconfig:"RENTKART_SMTP_PORT" default:"465"`
	Username string `envconfig:"RENTKART_SMTP_USERNAME"`
	Password string `envconfig:"RENTKART_SMTP_PASSWORD"`
	From     string `envconfig:"RENTKART_SMTP_FROM"`
}

// PortalConfig carries the public site base used to build confirmation links.
type PortalConfig struct {
	SiteURL string `envconfig:"RENTKART_SITE_URL" default:"http://localhost:3000"`
}

// OrderLink returns the customer portal URL for reviewing and confirming an order.
func (p PortalConfig) OrderLink(orderID string) string {
	return fmt.Sprintf("%s/portal/orders/%s", strings.TrimRight(p.SiteURL, "/"), orderID)
}

type GCPConfig struct {
	ProjectID string `envconfig:"RENTKART_GCP_PROJECT_ID"`
}

type PubSubConfig struct {
	DomainTopic        string `envconfig:"RENTKART_PUBSUB_DOMAIN_TOPIC" default:"rentkart-domain-events"`
	DomainSubscription string `envconfig:"RENTKART_PUBSUB_DOMAIN_SUBSCRIPTION"`
}

type OutboxConfig struct {
	BatchSize      int `envconfig:"RENTKART_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int `envconfig:"RENTKART_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int `envconfig:"RENTKART_OUTBOX_MAX_ATTEMPTS" default:"10"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"RENTKART_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	legacyDBEnvVars := []string{EnvDBHost, EnvDBUser, EnvDBName}
	valuesByEnv := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	missing := []string{}
	for _, env := range legacyDBEnvVars {
		if valuesByEnv[env] == "" {
			missing = append(missing, env)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
