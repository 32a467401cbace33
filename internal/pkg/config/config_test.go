package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, 10.0, cfg.Products.PriceFloor)
	assert.Equal(t, time.Second, cfg.Products.ValidationDelay)
	assert.Equal(t, 24*time.Hour, cfg.Products.IdempotencyTTL)
	assert.Equal(t, 4, cfg.Products.AuditWorkers)
	assert.Equal(t, "products", cfg.Mongo.Database)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.ConnectionURI())
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	assert.Error(t, err)
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":               "s3cret",
		"PORT":                     "8080",
		"ENV":                      "production",
		"MONGO_HOST":               "mongo",
		"MONGO_USERNAME":           "root",
		"MONGO_PASSWORD":           "example",
		"PRODUCT_VALIDATION_DELAY": "250ms",
		"PRODUCT_PRICE_FLOOR":      "15.5",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "mongodb://mongo:27017", cfg.Mongo.ConnectionURI())
	assert.Equal(t, "root", cfg.Mongo.Username)
	assert.Equal(t, 250*time.Millisecond, cfg.Products.ValidationDelay)
	assert.Equal(t, 15.5, cfg.Products.PriceFloor)
}

func TestLoad_ExplicitURIWins(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
		"MONGO_URI":  "mongodb://user:pw@db.internal:27018/?authSource=admin",
		"MONGO_HOST": "ignored",
	}))
	require.NoError(t, err)
	assert.Equal(t, "mongodb://user:pw@db.internal:27018/?authSource=admin", cfg.Mongo.ConnectionURI())
}

func TestLoad_RejectsPriceFloorBelowMinimum(t *testing.T) {
	for _, floor := range []string{"0", "-1", "5", "9.99"} {
		_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
			"JWT_SECRET":          "s3cret",
			"PRODUCT_PRICE_FLOOR": floor,
		}))
		require.Error(t, err, floor)
		assert.Contains(t, err.Error(), "PRODUCT_PRICE_FLOOR", floor)
	}

	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":          "s3cret",
		"PRODUCT_PRICE_FLOOR": "10",
	}))
	require.NoError(t, err)
	assert.Equal(t, MinPriceFloor, cfg.Products.PriceFloor)
}

func TestWithDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("JWT_SECRET=from-file\nPORT=4000\n"), 0o600))

	lookuper, err := withDotEnv(envconfig.MapLookuper(map[string]string{"PORT": "5000"}), path)
	require.NoError(t, err)

	cfg, err := load(context.Background(), lookuper)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Auth.JWTSecret)
	assert.Equal(t, "5000", cfg.Port)
}

func TestWithDotEnv_MissingFile(t *testing.T) {
	primary := envconfig.MapLookuper(map[string]string{"JWT_SECRET": "s3cret"})

	lookuper, err := withDotEnv(primary, filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)

	cfg, err := load(context.Background(), lookuper)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
}
