package config_test

import (
	"testing"

	"ipam-migrator/core/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "dcim.site", cfg.Migrate.ScopeType)
	assert.Equal(t, 100, cfg.Migrate.RequestDelayMS)
	assert.Equal(t, 100, cfg.Migrate.BatchSize)
	assert.Equal(t, 5, cfg.Migrate.RetryAttempts)
	assert.Equal(t, 10, cfg.Migrate.RetryDelaySeconds)
	assert.Equal(t, 20, cfg.Migrate.ErrorLogCap)
	assert.False(t, cfg.Migrate.DryRun)
	assert.False(t, cfg.Migrate.LegacySiteField)
	assert.Equal(t, 30, cfg.Source.TimeoutSeconds)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("SOURCE_URL", "https://ipam.example.com/api/migration")
	t.Setenv("SOURCE_TOKEN", "src-token")
	t.Setenv("TARGET_URL", "https://netbox.example.com")
	t.Setenv("TARGET_TOKEN", "tgt-token")
	t.Setenv("TARGET_INSECURE", "true")
	t.Setenv("MIGRATE_DRY_RUN", "true")
	t.Setenv("MIGRATE_RETRY_ATTEMPTS", "2")
	t.Setenv("MIGRATE_SCOPE_TYPE", "dcim.region")

	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "https://ipam.example.com/api/migration", cfg.Source.URL)
	assert.Equal(t, "src-token", cfg.Source.Token)
	assert.Equal(t, "https://netbox.example.com", cfg.Target.URL)
	assert.Equal(t, "tgt-token", cfg.Target.Token)
	assert.True(t, cfg.Target.Insecure)
	assert.True(t, cfg.Migrate.DryRun)
	assert.Equal(t, 2, cfg.Migrate.RetryAttempts)
	assert.Equal(t, "dcim.region", cfg.Migrate.ScopeType)
}
