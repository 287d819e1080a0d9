package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.Equal(t, 2*time.Second, cfg.Database.ConnectTimeout)
	assert.False(t, cfg.Redis.Enabled)
	assert.False(t, cfg.MQ.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "admin@admin.com", cfg.Seed.AdminEmail)
	assert.True(t, cfg.Checkout.Shipping().IsZero())
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
  read_timeout: 5s
database:
  driver: sqlite
  path: ":memory:"
checkout:
  shipping_cost: 4.99
`)
	t.Setenv("BOOKSTORE_SERVER_PORT", "9090")
	t.Setenv("BOOKSTORE_JWT_SECRET", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, ":memory:", cfg.Database.DSN())
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, "4.99", cfg.Checkout.Shipping().StringFixed(2))
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: 3000, Mode: "debug"},
			Database: DatabaseConfig{Driver: DriverPostgres},
			JWT:      JWTConfig{Secret: defaultJWTSecret},
			Log:      LogConfig{Format: "json"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, true},
		{"unknown driver", func(c *Config) { c.Database.Driver = "oracle" }, true},
		{"unknown log format", func(c *Config) { c.Log.Format = "xml" }, true},
		{"default secret in release", func(c *Config) { c.Server.Mode = "release" }, true},
		{"empty secret", func(c *Config) { c.JWT.Secret = "" }, true},
		{"negative shipping", func(c *Config) { c.Checkout.ShippingCost = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := validate(cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	pg := DatabaseConfig{Driver: DriverPostgres, Host: "db", Port: 5432, User: "u", Password: "p",
		DBName: "bookstore", SSLMode: "disable", ConnectTimeout: 2 * time.Second}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=bookstore sslmode=disable connect_timeout=2 TimeZone=UTC", pg.DSN())

	my := DatabaseConfig{Driver: DriverMySQL, Host: "db", Port: 3306, User: "u", Password: "p",
		DBName: "bookstore", ConnectTimeout: 2 * time.Second}
	assert.Equal(t, "u:p@tcp(db:3306)/bookstore?charset=utf8mb4&parseTime=True&loc=UTC&timeout=2s&clientFoundRows=true", my.DSN())
}
