package config

import (
	"encoding/json"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/zalando/go-keyring"
)

// Keychain coordinates for the credentials record.
const (
	keyringService = "Rustle"
	keyringRecord  = "credentials"
)

// Settings is the secret record stored in the platform keychain: the
// Reddit script-app credentials plus the theme preference. It is stored
// as a single JSON blob so the whole record round-trips atomically.
type Settings struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	DarkMode     bool   `json:"dark_mode"`
}

// DefaultSettings is the record used before the user has configured
// anything. Dark mode is on by default.
func DefaultSettings() Settings {
	return Settings{DarkMode: true}
}

// HasCredentials reports whether all four credential fields are set.
func (s Settings) HasCredentials() bool {
	return s.ClientID != "" && s.ClientSecret != "" && s.Username != "" && s.Password != ""
}

// LoadSettings reads the credentials record from the keychain. A missing
// or unreadable record yields the defaults: first launch and a broken
// keychain look the same to the caller, which then shows the settings
// form.
func LoadSettings() Settings {
	stored, err := keyring.Get(keyringService, keyringRecord)
	if err != nil {
		if err != keyring.ErrNotFound {
			log.WithError(err).Warn("Could not read credentials from keychain")
		}
		return DefaultSettings()
	}

	var settings Settings
	if err := json.Unmarshal([]byte(stored), &settings); err != nil {
		log.WithError(err).Warn("Stored credentials record is corrupt, starting fresh")
		return DefaultSettings()
	}

	return settings
}

// SaveSettings writes the record to the keychain.
func SaveSettings(s Settings) error {
	blob, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("could not serialize settings: %w", err)
	}

	if err := keyring.Set(keyringService, keyringRecord, string(blob)); err != nil {
		return fmt.Errorf("could not write settings to keychain: %w", err)
	}

	return nil
}
