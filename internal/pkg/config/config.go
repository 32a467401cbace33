package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// DotEnvFile is read by Load when present. Process environment wins over it.
const DotEnvFile = ".env"

// MinPriceFloor is the lowest accepted PRODUCT_PRICE_FLOOR. The floor may be
// raised but never weakened below the product creation rule.
const MinPriceFloor = 10.0

type Config struct {
	Port            string        `env:"PORT,             default=3000"`
	Env             string        `env:"ENV,              default=development"`
	LogLevel        string        `env:"LOG_LEVEL,        default=info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`

	Auth     AuthConfig
	Products ProductsConfig
	Mongo    MongoConfig
	Redis    RedisConfig
}

type AuthConfig struct {
	JWTSecret string `env:"JWT_SECRET, required"`
	JWTIssuer string `env:"JWT_ISSUER"`
}

type ProductsConfig struct {
	PriceFloor      float64       `env:"PRODUCT_PRICE_FLOOR,      default=10"`
	ValidationDelay time.Duration `env:"PRODUCT_VALIDATION_DELAY, default=1s"`
	IdempotencyTTL  time.Duration `env:"IDEMPOTENCY_TTL,          default=24h"`
	AuditWorkers    int           `env:"AUDIT_WORKERS,            default=4"`
}

// MongoConfig accepts either a full MONGO_URI or the host/credentials triple
// used by the docker-compose setup.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Host     string `env:"MONGO_HOST,     default=localhost"`
	Username string `env:"MONGO_USERNAME"`
	Password string `env:"MONGO_PASSWORD"`
	Database string `env:"MONGO_DB,       default=products"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// ConnectionURI returns MONGO_URI when set, otherwise a URI for MONGO_HOST on
// the default port. Credentials are applied separately by the Mongo client.
func (m MongoConfig) ConnectionURI() string {
	if m.URI != "" {
		return m.URI
	}
	u := url.URL{Scheme: "mongodb", Host: m.Host + ":27017"}
	return u.String()
}

// IsDevelopment reports whether human-friendly output should be used.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig,
// falling back to values from DotEnvFile.
func Load(ctx context.Context) (*Config, error) {
	lookuper, err := withDotEnv(envconfig.OsLookuper(), DotEnvFile)
	if err != nil {
		return nil, err
	}
	return load(ctx, lookuper)
}

// withDotEnv layers the variables in path beneath primary. A missing file is
// not an error.
func withDotEnv(primary envconfig.Lookuper, path string) (envconfig.Lookuper, error) {
	vals, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return primary, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return envconfig.MultiLookuper(primary, envconfig.MapLookuper(vals)), nil
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if cfg.Products.PriceFloor < MinPriceFloor {
		return nil, fmt.Errorf("config: PRODUCT_PRICE_FLOOR must be at least %v, got %v", MinPriceFloor, cfg.Products.PriceFloor)
	}
	if cfg.Products.ValidationDelay < 0 {
		return nil, fmt.Errorf("config: PRODUCT_VALIDATION_DELAY must not be negative, got %s", cfg.Products.ValidationDelay)
	}
	return &cfg, nil
}
