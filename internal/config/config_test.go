package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"PORT", "CORS_ORIGINS", "APP_ENV", "BACKEND",
	"DB_DRIVER", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE", "SQLITE_DSN",
	"JWT_SECRET", "JWT_ACCESS_EXPIRY", "JWT_REFRESH_EXPIRY",
	"S3_ENDPOINT", "S3_REGION", "S3_BUCKET", "S3_ACCESS_KEY", "S3_SECRET_KEY", "S3_PUBLIC_URL",
	"SESSION_FILE", "SENTRY_DSN",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	if diff := cmp.Diff(Defaults(), cfg); diff != "" {
		t.Fatalf("Load(\"\") mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "lifesync.yaml")
	yml := []byte(`
port: "9090"
backend: remote
db_driver: postgres
db_password: from-file
jwt_secret: file-secret
jwt_access_expiry: 30m
s3_bucket: life-files
`)
	require.NoError(t, os.WriteFile(path, yml, 0o600))

	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("JWT_REFRESH_EXPIRY", "24h")

	cfg, err := Load(path)
	require.NoError(t, err)

	want := Defaults()
	want.Port = "9090"
	want.Backend = BackendRemote
	want.DBDriver = DriverPostgres
	want.DBPassword = "from-env"
	want.JWTSecret = "file-secret"
	want.JWTAccessExpiry = 30 * time.Minute
	want.JWTRefreshExpiry = 24 * time.Hour
	want.S3Bucket = "life-files"

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("Load mismatch (-want +got):\n%s", diff)
	}
	require.NoError(t, cfg.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestBadDurationKeepsFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_ACCESS_EXPIRY", "soon")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessExpiry)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"ok", func(c *Config) { c.JWTSecret = "s" }, ""},
		{"missing secret", func(c *Config) {}, "JWT_SECRET is required"},
		{"postgres needs password", func(c *Config) {
			c.JWTSecret = "s"
			c.DBDriver = DriverPostgres
		}, "DB_PASSWORD is required"},
		{"unknown backend", func(c *Config) {
			c.JWTSecret = "s"
			c.Backend = "cloud"
		}, `unknown backend "cloud"`},
		{"unknown driver", func(c *Config) {
			c.JWTSecret = "s"
			c.DBDriver = "mysql"
		}, `unknown db driver "mysql"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Defaults()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDSN(t *testing.T) {
	c := Defaults()
	c.DBPassword = "pw"
	assert.Equal(t, "host=localhost user=postgres password=pw dbname=lifesync port=5432 sslmode=disable TimeZone=UTC", c.DSN())
}
