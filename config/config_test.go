package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djh816/Rustle/config"
)

func TestLoadAppConfig(t *testing.T) {
	t.Run("missing file yields the defaults", func(t *testing.T) {
		cfg, err := config.LoadAppConfig(filepath.Join(t.TempDir(), "nope.toml"))
		require.NoError(t, err)
		assert.Equal(t, config.DefaultAppConfig(), cfg)
		assert.Contains(t, cfg.UserAgent, config.Version, "user agent tracks the release version")
	})

	t.Run("overrides merge over the defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rustle.toml")
		require.NoError(t, os.WriteFile(path, []byte(`
user_agent = "Rustle:dev (by /u/me)"
trigger_threshold = 900.0
trigger_cooldown_ms = 250
`), 0o600))

		cfg, err := config.LoadAppConfig(path)
		require.NoError(t, err)

		assert.Equal(t, "Rustle:dev (by /u/me)", cfg.UserAgent)
		assert.Equal(t, 900.0, cfg.Threshold)
		assert.Equal(t, 250*time.Millisecond, cfg.Cooldown())
		// Everything not mentioned stays at the default.
		assert.Equal(t, config.DefaultAPIBaseURL, cfg.APIBaseURL)
		assert.Equal(t, config.DefaultAuthBaseURL, cfg.AuthBaseURL)
	})

	t.Run("unparseable file is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rustle.toml")
		require.NoError(t, os.WriteFile(path, []byte(`user_agent = [`), 0o600))

		_, err := config.LoadAppConfig(path)
		assert.Error(t, err)
	})
}
