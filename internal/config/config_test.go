package conf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads; viper treats empty values as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range flagKeys {
		t.Setenv(key, "")
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv(keyShopURL, " https://shop.example.com ")
	t.Setenv(keyAPIKey, "ABC123")
	t.Setenv(keyLogLevel, "debug")
	t.Setenv(keyLanguageIDs, "1, 3")

	cfg, err := Load(nil, "")
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example.com", cfg.ShopURL)
	assert.Equal(t, "ABC123", cfg.APIKey)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, []int{1, 3}, cfg.LanguageIDs)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "sqlite", cfg.JournalDriver)
	assert.Empty(t, cfg.JournalDSN)
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv(keyShopURL, "http://localhost:8080")
	t.Setenv(keyAPIKey, "K")

	cfg, err := Load(nil, "")
	require.NoError(t, err)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, []int{1, 2}, cfg.LanguageIDs)
}

func TestLoad_EnvFileAndFlags(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(
		"PRESTASHOP_SHOP_URL=https://from-file.example.com\n"+
			"PRESTASHOP_API_KEY=FILEKEY\n"+
			"LOG_LEVEL=WARNING\n"), 0o600))
	t.Setenv(keyAPIKey, "ENVKEY")

	fs := Flags()
	require.NoError(t, fs.Parse([]string{"--log-level", "ERROR", "--timeout", "5s"}))

	cfg, err := Load(fs, dir)
	require.NoError(t, err)
	assert.Equal(t, "https://from-file.example.com", cfg.ShopURL)
	assert.Equal(t, "ENVKEY", cfg.APIKey, "environment beats the .env file")
	assert.Equal(t, "ERROR", cfg.LogLevel, "flags beat everything")
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantMsg string
	}{
		{
			name:    "missing url",
			env:     map[string]string{keyAPIKey: "K"},
			wantMsg: "PRESTASHOP_SHOP_URL environment variable is required",
		},
		{
			name:    "missing key",
			env:     map[string]string{keyShopURL: "https://shop.example.com"},
			wantMsg: "PRESTASHOP_API_KEY environment variable is required",
		},
		{
			name:    "bad scheme",
			env:     map[string]string{keyShopURL: "ftp://shop.example.com", keyAPIKey: "K"},
			wantMsg: "must start with http:// or https://",
		},
		{
			name:    "bad language ids",
			env:     map[string]string{keyShopURL: "https://shop.example.com", keyAPIKey: "K", keyLanguageIDs: "1,en"},
			wantMsg: `"en" is not a language id`,
		},
		{
			name:    "duplicate language ids",
			env:     map[string]string{keyShopURL: "https://shop.example.com", keyAPIKey: "K", keyLanguageIDs: "1,1,2"},
			wantMsg: `LanguageIDs failed "unique" check`,
		},
		{
			name:    "bad log level",
			env:     map[string]string{keyShopURL: "https://shop.example.com", keyAPIKey: "K", keyLogLevel: "LOUD"},
			wantMsg: "LogLevel",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(nil, "")
			require.ErrorIs(t, err, ErrConfigurationInvalid)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}
