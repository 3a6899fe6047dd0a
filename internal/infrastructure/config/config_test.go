package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"ORGCHART_APP_NAME":                  os.Getenv("ORGCHART_APP_NAME"),
		"ORGCHART_APP_ENV":                   os.Getenv("ORGCHART_APP_ENV"),
		"ORGCHART_APP_PORT":                  os.Getenv("ORGCHART_APP_PORT"),
		"ORGCHART_DATABASE_HOST":             os.Getenv("ORGCHART_DATABASE_HOST"),
		"ORGCHART_DATABASE_PORT":             os.Getenv("ORGCHART_DATABASE_PORT"),
		"ORGCHART_DATABASE_USER":             os.Getenv("ORGCHART_DATABASE_USER"),
		"ORGCHART_DATABASE_PASSWORD":         os.Getenv("ORGCHART_DATABASE_PASSWORD"),
		"ORGCHART_DATABASE_DBNAME":           os.Getenv("ORGCHART_DATABASE_DBNAME"),
		"ORGCHART_DATABASE_SSLMODE":          os.Getenv("ORGCHART_DATABASE_SSLMODE"),
		"ORGCHART_DATABASE_MAX_OPEN_CONNS":   os.Getenv("ORGCHART_DATABASE_MAX_OPEN_CONNS"),
		"ORGCHART_DATABASE_MAX_IDLE_CONNS":   os.Getenv("ORGCHART_DATABASE_MAX_IDLE_CONNS"),
		"ORGCHART_HIERARCHY_STRATEGY":        os.Getenv("ORGCHART_HIERARCHY_STRATEGY"),
		"ORGCHART_HIERARCHY_MAX_NAME_LENGTH": os.Getenv("ORGCHART_HIERARCHY_MAX_NAME_LENGTH"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "orgchart-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "", cfg.Database.Password)
		assert.Equal(t, "orgchart", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, "adjacency", cfg.Hierarchy.Strategy)
		assert.Equal(t, 100, cfg.Hierarchy.MaxNameLength)
		assert.Empty(t, cfg.HTTP.CORSAllowOrigins)
	})

	t.Run("loads values from environment variables with ORGCHART prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("ORGCHART_APP_NAME", "test-app")
		os.Setenv("ORGCHART_APP_ENV", "testing")
		os.Setenv("ORGCHART_APP_PORT", "9000")
		os.Setenv("ORGCHART_DATABASE_HOST", "testdb.local")
		os.Setenv("ORGCHART_DATABASE_PORT", "5433")
		os.Setenv("ORGCHART_DATABASE_USER", "testuser")
		os.Setenv("ORGCHART_DATABASE_PASSWORD", "testpass")
		os.Setenv("ORGCHART_DATABASE_DBNAME", "testdb")
		os.Setenv("ORGCHART_DATABASE_SSLMODE", "require")
		os.Setenv("ORGCHART_HIERARCHY_STRATEGY", "closure")
		os.Setenv("ORGCHART_HIERARCHY_MAX_NAME_LENGTH", "50")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "testing", cfg.App.Env)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testuser", cfg.Database.User)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, "testdb", cfg.Database.DBName)
		assert.Equal(t, "require", cfg.Database.SSLMode)
		assert.Equal(t, "closure", cfg.Hierarchy.Strategy)
		assert.Equal(t, 50, cfg.Hierarchy.MaxNameLength)
	})

	t.Run("rejects unknown hierarchy strategy", func(t *testing.T) {
		clearEnv()
		os.Setenv("ORGCHART_HIERARCHY_STRATEGY", "nested-set")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "hierarchy.strategy")
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("ORGCHART_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("ORGCHART_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("zero MaxOpenConns uses default", func(t *testing.T) {
		clearEnv()
		os.Setenv("ORGCHART_DATABASE_MAX_OPEN_CONNS", "0")

		cfg, err := Load()
		require.NoError(t, err)
		// 0 is treated as "not set", so default (25) is used
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	})

	t.Run("validates MaxIdleConns cannot be negative", func(t *testing.T) {
		clearEnv()
		os.Setenv("ORGCHART_DATABASE_MAX_IDLE_CONNS", "-1")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns cannot be negative")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	originalEnv := map[string]string{
		"ORGCHART_APP_ENV":                 os.Getenv("ORGCHART_APP_ENV"),
		"ORGCHART_DATABASE_PASSWORD":       os.Getenv("ORGCHART_DATABASE_PASSWORD"),
		"ORGCHART_DATABASE_SSLMODE":        os.Getenv("ORGCHART_DATABASE_SSLMODE"),
		"ORGCHART_HTTP_CORS_ALLOW_ORIGINS": os.Getenv("ORGCHART_HTTP_CORS_ALLOW_ORIGINS"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("requires database.password in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("ORGCHART_APP_ENV", "production")
		os.Setenv("ORGCHART_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password is required in production")
	})

	t.Run("rejects sslmode disable in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("ORGCHART_APP_ENV", "production")
		os.Setenv("ORGCHART_DATABASE_PASSWORD", "secure-password")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sslmode")
	})

	t.Run("rejects wildcard CORS origin in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("ORGCHART_APP_ENV", "production")
		os.Setenv("ORGCHART_DATABASE_PASSWORD", "secure-password")
		os.Setenv("ORGCHART_DATABASE_SSLMODE", "require")
		os.Setenv("ORGCHART_HTTP_CORS_ALLOW_ORIGINS", "*")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cors_allow_origins")
	})

	t.Run("accepts a valid production config", func(t *testing.T) {
		clearEnv()
		os.Setenv("ORGCHART_APP_ENV", "production")
		os.Setenv("ORGCHART_DATABASE_PASSWORD", "secure-password")
		os.Setenv("ORGCHART_DATABASE_SSLMODE", "require")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "p@ss/word",
		DBName:   "orgchart",
		SSLMode:  "disable",
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "localhost:5432")
	assert.Contains(t, dsn, "sslmode=disable")
	// Special characters in the password must be escaped.
	assert.NotContains(t, dsn, "p@ss/word")
}
