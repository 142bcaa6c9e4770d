package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

const (
	EnvPrefix = "noodlehouse"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv   = "NOODLEHOUSE_APP_ENV"
	EnvPort     = "NOODLEHOUSE_APP_PORT"
	EnvDBDSN    = "NOODLEHOUSE_DB_DSN"
	EnvDBHost   = "NOODLEHOUSE_DB_HOST"
	EnvDBUser   = "NOODLEHOUSE_DB_USER"
	EnvDBName   = "NOODLEHOUSE_DB_NAME"
	EnvRedisURL = "NOODLEHOUSE_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Pricing      PricingConfig
	Cart         CartConfig
	Checkout     CheckoutConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string `envconfig:"NOODLEHOUSE_APP_ENV" required:"true"`
	Port         string `envconfig:"NOODLEHOUSE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"NOODLEHOUSE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"NOODLEHOUSE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"NOODLEHOUSE_DB_DSN"`
	Driver string `envconfig:"NOODLEHOUSE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"NOODLEHOUSE_DB_HOST"`
	LegacyPort     int    `envconfig:"NOODLEHOUSE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"NOODLEHOUSE_DB_USER"`
	LegacyPassword string `envconfig:"NOODLEHOUSE_DB_PASSWORD"`
	LegacyName     string `envconfig:"NOODLEHOUSE_DB_NAME"`
	LegacySSLMode  string `envconfig:"NOODLEHOUSE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"NOODLEHOUSE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"NOODLEHOUSE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"NOODLEHOUSE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"NOODLEHOUSE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"NOODLEHOUSE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"NOODLEHOUSE_REDIS_ADDR"`
	Password     string        `envconfig:"NOODLEHOUSE_REDIS_PASSWORD"`
	DB           int           `envconfig:"NOODLEHOUSE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"NOODLEHOUSE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"NOODLEHOUSE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"NOODLEHOUSE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"NOODLEHOUSE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"NOODLEHOUSE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// PricingConfig carries the delivery-fee business rule. The menu pages shipped
// with two different threshold/fee pairs, so both values stay tunable instead
// of living inside the pricing engine.
type PricingConfig struct {
	FreeDeliveryThreshold decimal.Decimal `envconfig:"NOODLEHOUSE_FREE_DELIVERY_THRESHOLD" default:"30"`
	FlatDeliveryFee       decimal.Decimal `envconfig:"NOODLEHOUSE_FLAT_DELIVERY_FEE" default:"6"`
}

type CartConfig struct {
	TTL               time.Duration `envconfig:"NOODLEHOUSE_CART_TTL" default:"168h"`
	PendingProductTTL time.Duration `envconfig:"NOODLEHOUSE_CART_PENDING_PRODUCT_TTL" default:"30m"`
}

type CheckoutConfig struct {
	CurrentOrderTTL time.Duration `envconfig:"NOODLEHOUSE_CHECKOUT_CURRENT_ORDER_TTL" default:"24h"`
}

type FeatureFlagsConfig struct {
	AutoMigrate  bool `envconfig:"NOODLEHOUSE_AUTO_MIGRATE" default:"false"`
	SeedFixtures bool `envconfig:"NOODLEHOUSE_SEED_FIXTURES" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
