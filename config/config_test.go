package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
		check   func(t *testing.T, c *Config)
	}{
		{
			name: "postgres defaults",
			env: map[string]string{
				"DISCORD_TOKEN": "token",
				"DATABASE_URL":  "postgres://localhost:5432",
				"DATABASE_NAME": "settings",
			},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, StorageDriverPostgres, c.StorageDriver)
				assert.Equal(t, "development", c.Environment)
				assert.Equal(t, "postgres://localhost:5432/settings?sslmode=disable", c.GetDatabaseURL())
				assert.Empty(t, c.NATSServers)
				assert.False(t, c.OTelEnabled)
				assert.Equal(t, 60000, c.OTelExportIntervalMillis)
			},
		},
		{
			name: "badger does not need a database URL",
			env: map[string]string{
				"DISCORD_TOKEN":  "token",
				"STORAGE_DRIVER": "Badger",
				"BADGER_PATH":    "/var/lib/bot",
			},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, StorageDriverBadger, c.StorageDriver)
				assert.Equal(t, "/var/lib/bot", c.BadgerPath)
			},
		},
		{
			name: "otel overrides",
			env: map[string]string{
				"DISCORD_TOKEN":           "token",
				"STORAGE_DRIVER":          "badger",
				"OTEL_ENABLED":            "true",
				"OTEL_EXPORTER_TYPE":      "otlp",
				"OTEL_EXPORT_INTERVAL_MS": "5000",
				"ENVIRONMENT":             "production",
			},
			check: func(t *testing.T, c *Config) {
				assert.True(t, c.OTelEnabled)
				assert.Equal(t, "otlp", c.OTelExporterType)
				assert.Equal(t, 5000, c.OTelExportIntervalMillis)
				assert.True(t, c.IsProduction())
			},
		},
		{
			name:    "missing token",
			env:     map[string]string{"STORAGE_DRIVER": "badger"},
			wantErr: "DISCORD_TOKEN is required",
		},
		{
			name:    "postgres without URL",
			env:     map[string]string{"DISCORD_TOKEN": "token"},
			wantErr: "DATABASE_URL is required",
		},
		{
			name:    "unknown driver",
			env:     map[string]string{"DISCORD_TOKEN": "token", "STORAGE_DRIVER": "sqlite"},
			wantErr: "unknown STORAGE_DRIVER",
		},
	}

	keys := []string{
		"DISCORD_TOKEN", "DISCORD_GUILD_ID", "STORAGE_DRIVER", "DATABASE_URL", "DATABASE_NAME", "BADGER_PATH",
		"NATS_SERVERS", "OTEL_ENABLED", "OTEL_EXPORTER_TYPE", "OTEL_EXPORT_INTERVAL_MS", "ENVIRONMENT",
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range keys {
				t.Setenv(key, "")
			}
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			cfg, err := load()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestSetTestConfig(t *testing.T) {
	t.Cleanup(ResetConfig)

	cfg := NewTestConfig()
	cfg.DiscordToken = "from-test"
	SetTestConfig(cfg)

	assert.Same(t, cfg, Get())
}
