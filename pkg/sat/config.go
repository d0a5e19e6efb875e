package sat

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/mitchellh/mapstructure"
)

// Timeout bounds, in seconds
const (
	MinTimeoutSeconds     = 1
	MaxTimeoutSeconds     = 300
	DefaultTimeoutSeconds = 30
)

var ConfigPath = "config.json"

type SolverConfig struct {
	Path string   `mapstructure:"path"`
	Args []string `mapstructure:"args"`
}

type Config struct {
	DefaultSolver  string                  `mapstructure:"defaultSolver"`
	TimeoutSeconds int                     `mapstructure:"timeoutSeconds"`
	Solvers        map[string]SolverConfig `mapstructure:"solvers"`
}

func DefaultConfig() Config {
	return Config{
		DefaultSolver:  "kissat",
		TimeoutSeconds: DefaultTimeoutSeconds,
		Solvers:        make(map[string]SolverConfig),
	}
}

// LoadConfig reads a JSON or YAML (.yaml, .yml) config file on top of the defaults. A missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	bytes, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	} else if err != nil {
		return Config{}, fmt.Errorf("cannot read config file: %w", err)
	}

	var input map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(bytes, &input)
	default:
		err = json.Unmarshal(bytes, &input)
	}
	if err != nil {
		return Config{}, fmt.Errorf("cannot parse config file %v: %w", path, err)
	}

	if err := mapstructure.Decode(input, &config); err != nil {
		return Config{}, fmt.Errorf("invalid config file %v: %w", path, err)
	}
	if err := ValidateTimeout(config.TimeoutSeconds); err != nil {
		return Config{}, fmt.Errorf("invalid config file %v: %w", path, err)
	}
	return config, nil
}

func ValidateTimeout(seconds int) error {
	if seconds < MinTimeoutSeconds || seconds > MaxTimeoutSeconds {
		return fmt.Errorf("timeout must be between %d and %d seconds, got %d", MinTimeoutSeconds, MaxTimeoutSeconds, seconds)
	}
	return nil
}

func (config Config) Timeout() time.Duration {
	return time.Duration(config.TimeoutSeconds) * time.Second
}
