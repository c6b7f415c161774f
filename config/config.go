package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Version is the application version, shown in the browser header and
// embedded in the default user agent.
const Version = "v0.2.0"

// Defaults for the optional app config file. The endpoint URLs are only
// overridden in tests; everything else is a user preference.
const (
	DefaultAuthBaseURL = "https://www.reddit.com"
	DefaultAPIBaseURL  = "https://oauth.reddit.com"

	DefaultUserAgent = "Rustle:" + Version + " (by /u/SpartanJubilee)"

	DefaultTriggerThreshold = 1500.0
	DefaultTriggerCooldown  = 500 * time.Millisecond
)

// AppConfig holds the non-secret preferences. Credentials never live
// here, they belong in the keychain (see Settings).
type AppConfig struct {
	AuthBaseURL string  `toml:"auth_base_url"`
	APIBaseURL  string  `toml:"api_base_url"`
	UserAgent   string  `toml:"user_agent"`
	Threshold   float64 `toml:"trigger_threshold"`
	CooldownMS  int     `toml:"trigger_cooldown_ms"`
}

// DefaultAppConfig returns the built-in preferences.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		AuthBaseURL: DefaultAuthBaseURL,
		APIBaseURL:  DefaultAPIBaseURL,
		UserAgent:   DefaultUserAgent,
		Threshold:   DefaultTriggerThreshold,
		CooldownMS:  int(DefaultTriggerCooldown / time.Millisecond),
	}
}

// LoadAppConfig reads the TOML config at path and fills in defaults for
// anything left unset. A missing file is not an error: the defaults are
// a complete configuration.
func LoadAppConfig(path string) (AppConfig, error) {
	cfg := DefaultAppConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("error reading config file: %w", err)
	}

	var overrides AppConfig
	if err := toml.Unmarshal(data, &overrides); err != nil {
		return cfg, fmt.Errorf("error parsing config file: %w", err)
	}

	if overrides.AuthBaseURL != "" {
		cfg.AuthBaseURL = overrides.AuthBaseURL
	}
	if overrides.APIBaseURL != "" {
		cfg.APIBaseURL = overrides.APIBaseURL
	}
	if overrides.UserAgent != "" {
		cfg.UserAgent = overrides.UserAgent
	}
	if overrides.Threshold > 0 {
		cfg.Threshold = overrides.Threshold
	}
	if overrides.CooldownMS > 0 {
		cfg.CooldownMS = overrides.CooldownMS
	}

	return cfg, nil
}

// Cooldown returns the trigger cooldown as a duration.
func (c AppConfig) Cooldown() time.Duration {
	return time.Duration(c.CooldownMS) * time.Millisecond
}
