package tui

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/Razmik-Kutinava/password-entropy-lab/internal/config"
)

const prefsFile = "tui_prefs.json"

// Prefs holds user preferences for the TUI that persist across sessions.
type Prefs struct {
	ShowJSON bool   `json:"show_json"`
	Policy   string `json:"policy,omitempty"`
}

// DefaultPrefs returns the default preferences.
func DefaultPrefs() Prefs {
	return Prefs{}
}

// DefaultPrefsPath returns the preferences file inside the config directory.
func DefaultPrefsPath() string {
	return filepath.Join(config.Dir(), prefsFile)
}

// LoadPrefs loads preferences from path, returning defaults if the file is
// missing or unreadable.
func LoadPrefs(path string) Prefs {
	prefs := DefaultPrefs()
	data, err := os.ReadFile(path)
	if err != nil {
		return prefs
	}
	_ = json.Unmarshal(data, &prefs) //nolint:errcheck // fall back to defaults
	return prefs
}

// SavePrefs persists preferences to path.
func SavePrefs(path string, prefs Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
