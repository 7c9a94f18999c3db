package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		cfg         Config
		expectError bool
	}{
		{
			name: "development defaults pass",
			cfg: Config{
				Env:       "development",
				Port:      "8480",
				JWTSecret: "your-secret-key-change-in-production",
			},
		},
		{
			name:        "missing port",
			cfg:         Config{JWTSecret: "x"},
			expectError: true,
		},
		{
			name:        "missing JWT secret",
			cfg:         Config{Port: "8480"},
			expectError: true,
		},
		{
			name: "production rejects default secret",
			cfg: Config{
				Env:       "production",
				Port:      "8480",
				JWTSecret: "your-secret-key-change-in-production",
			},
			expectError: true,
		},
		{
			name: "production rejects short secret",
			cfg: Config{
				Env:        "production",
				Port:       "8480",
				JWTSecret:  "short",
				DBPassword: "strong-password",
			},
			expectError: true,
		},
		{
			name: "production rejects default db password",
			cfg: Config{
				Env:        "production",
				Port:       "8480",
				JWTSecret:  "secure-secret-at-least-32-chars-long",
				DBPassword: "password",
			},
			expectError: true,
		},
		{
			name: "production with strong values passes",
			cfg: Config{
				Env:        "production",
				Port:       "8480",
				JWTSecret:  "secure-secret-at-least-32-chars-long",
				DBPassword: "strong-password",
				DBSSLMode:  "require",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig_ReadsConfigFile(t *testing.T) {
	defer viper.Reset()
	defer os.Unsetenv("APP_ENV")

	dir := t.TempDir()
	file := map[string]any{
		"PORT":              "9999",
		"DB_NAME":           "agora_test",
		"SIDE_CLAIM_COMPAT": true,
	}
	raw, err := yaml.Marshal(file)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), raw, 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { _ = os.Chdir(wd) }()

	os.Setenv("APP_ENV", "development")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, "agora_test", cfg.DBName)
	assert.True(t, cfg.SideClaimCompat)
}

func TestLoadConfig_EnvOverridesDefaults(t *testing.T) {
	defer viper.Reset()
	defer os.Unsetenv("PORT")

	os.Setenv("PORT", "7070")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
	assert.False(t, cfg.SideClaimCompat)
}
