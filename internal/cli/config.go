package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/komapc/yearwheel/pkg/pipeline"
)

// Config holds persisted wheel preferences. The layout engine itself never
// persists anything; whatever the tuner or flags settle on is written here
// and loaded as defaults on the next run.
type Config struct {
	Corner     float64  `toml:"corner"`      // external control range 0..50
	Direction  string   `toml:"direction"`   // "cw" or "ccw"
	StartAngle float64  `toml:"start_angle"` // degrees
	Seasons    []string `toml:"seasons"`
	Style      string   `toml:"style"`
	Feed       string   `toml:"feed"`
}

// DefaultConfig returns the stock preferences: a clockwise circle in the
// ink style.
func DefaultConfig() Config {
	return Config{
		Corner:     pipeline.DefaultCornerUI,
		Direction:  "cw",
		StartAngle: pipeline.DefaultStartAngle,
		Style:      pipeline.DefaultStyle,
	}
}

// configPath returns the preferences file path (~/.config/yearwheel/config.toml).
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "yearwheel", "config.toml"), nil
}

// LoadConfig reads preferences from path, or the default location when path
// is empty. A missing file yields the defaults, not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		var err error
		if path, err = configPath(); err != nil {
			return cfg, err
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// SaveConfig writes preferences to path, or the default location when path
// is empty, creating the directory if needed.
func SaveConfig(cfg Config, path string) error {
	if path == "" {
		var err error
		if path, err = configPath(); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

// directionValue maps the config's direction string to the engine's sign
// convention. Anything other than "ccw" is clockwise.
func directionValue(s string) int {
	if s == "ccw" {
		return -1
	}
	return 1
}

// directionName maps the engine's sign convention back to the config string.
func directionName(d int) string {
	if d < 0 {
		return "ccw"
	}
	return "cw"
}
