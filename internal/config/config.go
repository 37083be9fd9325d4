package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/csheth/commentpulse/internal/sentiment"
	"github.com/csheth/commentpulse/internal/session"
)

// Config holds application configuration.
type Config struct {
	Service ServiceConfig `mapstructure:"service"`
	Export  ExportConfig  `mapstructure:"export"`
	UI      UIConfig      `mapstructure:"ui"`
	// Log is a file that receives the component log. Empty discards it.
	Log   string `mapstructure:"log"`
	Debug bool   `mapstructure:"debug"`
}

// ServiceConfig points at the analysis service.
type ServiceConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// ExportConfig controls where Ctrl+E writes charts.
type ExportConfig struct {
	Dir string `mapstructure:"dir"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	AltScreen bool `mapstructure:"alt_screen"`
}

const envPrefix = "COMMENTPULSE"

// Load reads configuration from defaults, an optional file and the
// environment. Env var overrides use prefix COMMENTPULSE_, so service.timeout
// becomes COMMENTPULSE_SERVICE_TIMEOUT.
//
// path selects the file explicitly and must exist. When empty,
// COMMENTPULSE_CONFIG is consulted, then ~/.config/commentpulse/config.*,
// which may be absent.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("service.endpoint", sentiment.DefaultEndpoint)
	v.SetDefault("service.timeout", session.DefaultTimeout)
	v.SetDefault("export.dir", "commentpulse-exports")
	v.SetDefault("ui.alt_screen", true)
	v.SetDefault("log", "")
	v.SetDefault("debug", false)

	if path == "" {
		path = os.Getenv(envPrefix + "_CONFIG")
	}
	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "commentpulse"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks values that would otherwise fail on first use.
func (c Config) Validate() error {
	endpoint, err := url.Parse(c.Service.Endpoint)
	if err != nil {
		return fmt.Errorf("service.endpoint: %w", err)
	}
	if (endpoint.Scheme != "http" && endpoint.Scheme != "https") || endpoint.Host == "" {
		return fmt.Errorf("service.endpoint: %q is not an http(s) URL", c.Service.Endpoint)
	}
	if c.Service.Timeout <= 0 {
		return fmt.Errorf("service.timeout: must be positive, got %s", c.Service.Timeout)
	}
	if strings.TrimSpace(c.Export.Dir) == "" {
		return errors.New("export.dir: must not be empty")
	}
	return nil
}
