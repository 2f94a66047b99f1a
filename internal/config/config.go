package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// AppName names the per-user config and data directories.
const AppName = "pwlab"

// ErrNoConfig is returned when no config file exists where one was looked for.
var ErrNoConfig = errors.New("no config")

// LocalNames are the repo-local file names, in search order.
var LocalNames = []string{".pwlab.yml", ".pwlab.yaml", "pwlab.yml", "pwlab.yaml"}

// FileConfig is the on-disk YAML configuration shape for pwlab. Nil fields
// were not set and defer to the next source.
type FileConfig struct {
	Policy      *string `yaml:"policy,omitempty"`
	Format      *string `yaml:"format,omitempty"`
	FailOn      *string `yaml:"fail_on,omitempty"`
	NoColor     *bool   `yaml:"no_color,omitempty"`
	Threads     *int    `yaml:"threads,omitempty"`
	PolicyFiles *string `yaml:"policy_files,omitempty"`
	Audit       *bool   `yaml:"audit,omitempty"`
	AuditPath   *string `yaml:"audit_path,omitempty"`
	LogLevel    *string `yaml:"log_level,omitempty"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadLocal searches dir for one of LocalNames.
func LoadLocal(dir string) (FileConfig, error) {
	for _, name := range LocalNames {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return FileConfig{}, fmt.Errorf("local: %w", ErrNoConfig)
}

// Dir returns the per-user config directory, e.g. ~/.config/pwlab on Linux.
func Dir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// DataDir returns the per-user data directory, e.g. ~/.local/share/pwlab.
func DataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// GlobalPath is the location of the global config file.
func GlobalPath() string {
	return filepath.Join(Dir(), "config.yml")
}

// LoadGlobal loads the global config file from the XDG config directory.
func LoadGlobal() (FileConfig, error) {
	p := GlobalPath()
	if _, err := os.Stat(p); err != nil {
		return FileConfig{}, fmt.Errorf("global: %w", ErrNoConfig)
	}
	return LoadFile(p)
}

// Starter returns a commented config file with the given values filled in.
func Starter(policyName, format, failOn string, threads int, noColor bool) ([]byte, error) {
	cfg := FileConfig{
		Policy:  &policyName,
		Format:  &format,
		FailOn:  &failOn,
		Threads: &threads,
		NoColor: &noColor,
	}
	body, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	header := "# pwlab configuration\n" +
		"# Precedence: command-line flags > this file > " + GlobalPath() + "\n" +
		"# Optional keys: policy_files (glob of custom policy YAML), audit, audit_path, log_level\n"
	return append([]byte(header), body...), nil
}
