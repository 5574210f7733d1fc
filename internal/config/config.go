// internal/config/config.go
package conf

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var ErrConfigurationInvalid = errors.New("configuration invalid")

// Config is everything the server needs at startup.
type Config struct {
	ShopURL     string        `validate:"required,http_url"`
	APIKey      string        `validate:"required"`
	LogLevel    string        `validate:"oneof=DEBUG INFO WARNING WARN ERROR CRITICAL"`
	LogFile     string
	LanguageIDs []int         `validate:"min=1,unique,dive,gt=0"`
	Timeout     time.Duration `validate:"gt=0"`

	JournalDriver string `validate:"omitempty,oneof=sqlite postgres mysql"`
	JournalDSN    string
	MetricsAddr   string `validate:"omitempty,hostname_port"`
}

const (
	keyShopURL       = "PRESTASHOP_SHOP_URL"
	keyAPIKey        = "PRESTASHOP_API_KEY"
	keyLogLevel      = "LOG_LEVEL"
	keyLogFile       = "LOG_FILE"
	keyLanguageIDs   = "PRESTASHOP_LANGUAGE_IDS"
	keyTimeout       = "PRESTASHOP_TIMEOUT"
	keyJournalDriver = "JOURNAL_DRIVER"
	keyJournalDSN    = "JOURNAL_DSN"
	keyMetricsAddr   = "METRICS_ADDR"
)

// flag name -> config key
var flagKeys = map[string]string{
	"shop-url":       keyShopURL,
	"api-key":        keyAPIKey,
	"log-level":      keyLogLevel,
	"log-file":       keyLogFile,
	"language-ids":   keyLanguageIDs,
	"timeout":        keyTimeout,
	"journal-driver": keyJournalDriver,
	"journal-dsn":    keyJournalDSN,
	"metrics-addr":   keyMetricsAddr,
}

// Flags returns the command line flags Load understands.
func Flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("prestashop-mcp", pflag.ContinueOnError)
	fs.String("shop-url", "", "shop base URL (env "+keyShopURL+")")
	fs.String("api-key", "", "webservice API key (env "+keyAPIKey+")")
	fs.String("log-level", "", "DEBUG, INFO, WARNING, ERROR or CRITICAL (env "+keyLogLevel+")")
	fs.String("log-file", "", "append logs to this file too (env "+keyLogFile+")")
	fs.String("language-ids", "", "comma separated shop language ids (env "+keyLanguageIDs+")")
	fs.Duration("timeout", 0, "per request timeout (env "+keyTimeout+")")
	fs.String("journal-driver", "", "sqlite, postgres or mysql (env "+keyJournalDriver+")")
	fs.String("journal-dsn", "", "enables the call journal (env "+keyJournalDSN+")")
	fs.String("metrics-addr", "", "serve /metrics and /health here (env "+keyMetricsAddr+")")
	return fs
}

// Load resolves the configuration. Priority: flags, environment, .env file in envDir, defaults.
// fs may be nil.
func Load(fs *pflag.FlagSet, envDir string) (*Config, error) {
	v := viper.New()
	v.SetDefault(keyLogLevel, "INFO")
	v.SetDefault(keyLanguageIDs, "1,2")
	v.SetDefault(keyTimeout, "30s")
	v.SetDefault(keyJournalDriver, "sqlite")

	if envDir != "" {
		v.SetConfigName(".env")
		v.SetConfigType("env")
		v.AddConfigPath(envDir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !os.IsNotExist(err) {
				return nil, fmt.Errorf("error reading .env file: %w", err)
			}
		}
	}
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}

	cfg := &Config{
		ShopURL:       strings.TrimSpace(v.GetString(keyShopURL)),
		APIKey:        strings.TrimSpace(v.GetString(keyAPIKey)),
		LogLevel:      strings.ToUpper(strings.TrimSpace(v.GetString(keyLogLevel))),
		LogFile:       v.GetString(keyLogFile),
		Timeout:       v.GetDuration(keyTimeout),
		JournalDriver: strings.ToLower(v.GetString(keyJournalDriver)),
		JournalDSN:    v.GetString(keyJournalDSN),
		MetricsAddr:   v.GetString(keyMetricsAddr),
	}

	ids, err := parseIDs(v.GetString(keyLanguageIDs))
	if err != nil {
		return nil, err
	}
	cfg.LanguageIDs = ids

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks the required settings first so the messages name the variable to set.
func (c *Config) Validate() error {
	if c.ShopURL == "" {
		return fmt.Errorf("%w: %s environment variable is required", ErrConfigurationInvalid, keyShopURL)
	}
	if c.APIKey == "" {
		return fmt.Errorf("%w: %s environment variable is required", ErrConfigurationInvalid, keyAPIKey)
	}
	if !strings.HasPrefix(c.ShopURL, "http://") && !strings.HasPrefix(c.ShopURL, "https://") {
		return fmt.Errorf("%w: %s must start with http:// or https://", ErrConfigurationInvalid, keyShopURL)
	}
	if err := validate.Struct(c); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) && len(ve) > 0 {
			return fmt.Errorf("%w: %s failed %q check", ErrConfigurationInvalid, ve[0].Field(), ve[0].Tag())
		}
		return fmt.Errorf("%w: %v", ErrConfigurationInvalid, err)
	}
	return nil
}

func parseIDs(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %q is not a language id", ErrConfigurationInvalid, keyLanguageIDs, part)
		}
		out = append(out, n)
	}
	return out, nil
}
