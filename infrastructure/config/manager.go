package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Errors for config management
var (
	ErrUnknownKey   = errors.New("unknown config key")
	ErrInvalidValue = errors.New("invalid config value")
)

// ConfigManager updates individual settings and persists them
type ConfigManager struct {
	config     *Config
	configPath string
}

// NewConfigManager creates a new config manager
func NewConfigManager(cfg *Config, configPath string) *ConfigManager {
	return &ConfigManager{
		config:     cfg,
		configPath: configPath,
	}
}

// Config returns the managed configuration
func (m *ConfigManager) Config() *Config {
	return m.config
}

// Path returns the file the configuration is saved to
func (m *ConfigManager) Path() string {
	return m.configPath
}

// SetOutputDir expands, absolutizes and creates dir, then stores it as the output directory.
// It returns the resolved path.
func (m *ConfigManager) SetOutputDir(dir string) (string, error) {
	resolved, err := resolveDir(dir)
	if err != nil {
		return "", err
	}
	return resolved, m.persist(func(c *Config) error {
		c.Paths.OutputDirectory = resolved
		return nil
	})
}

// persist applies change to the live config and to the stored file contents.
// The live config may carry environment overrides, which must never reach the file.
func (m *ConfigManager) persist(change func(c *Config) error) error {
	if err := change(m.config); err != nil {
		return err
	}
	stored, err := LoadStored(m.configPath)
	if err != nil {
		return err
	}
	if err := change(stored); err != nil {
		return err
	}
	return Save(stored, m.configPath)
}

type setter func(c *Config, value string) error

var setters = map[string]setter{
	"output_dir": func(c *Config, v string) error {
		dir, err := resolveDir(v)
		if err != nil {
			return err
		}
		c.Paths.OutputDirectory = dir
		return nil
	},
	"transcripts_dir": func(c *Config, v string) error {
		dir, err := resolveDir(v)
		if err != nil {
			return err
		}
		c.Paths.TranscriptsDirectory = dir
		return nil
	},
	"quality": func(c *Config, v string) error {
		q, err := strconv.Atoi(strings.TrimSuffix(strings.ToLower(strings.TrimSpace(v)), "k"))
		if err != nil || (q != 128 && q != 192 && q != 320) {
			return fmt.Errorf("%w: quality %q (choose 128, 192 or 320)", ErrInvalidValue, v)
		}
		c.Audio.Quality = q
		return nil
	},
	"threshold": func(c *Config, v string) error {
		t, err := strconv.ParseFloat(strings.TrimSuffix(strings.ToLower(strings.TrimSpace(v)), "db"), 64)
		if err != nil || t > 0 {
			return fmt.Errorf("%w: threshold %q (must be a dB value <= 0)", ErrInvalidValue, v)
		}
		c.Audio.SilenceThresholdDB = t
		return nil
	},
	"api_key": func(c *Config, v string) error {
		c.YouTube.APIKey = strings.TrimSpace(v)
		return nil
	},
	"ytdlp_path": func(c *Config, v string) error {
		return setTool(&c.Tools.YtdlpPath, v)
	},
	"ffmpeg_path": func(c *Config, v string) error {
		return setTool(&c.Tools.FFmpegPath, v)
	},
	"ffprobe_path": func(c *Config, v string) error {
		return setTool(&c.Tools.FFprobePath, v)
	},
}

// Keys lists the settings accepted by Set, sorted
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set validates and stores a single setting, then saves the file
func (m *ConfigManager) Set(key, value string) error {
	key = strings.ToLower(strings.TrimSpace(key))
	set, ok := setters[key]
	if !ok {
		return fmt.Errorf("%w: %q (valid keys: %s)", ErrUnknownKey, key, strings.Join(Keys(), ", "))
	}
	return m.persist(func(c *Config) error {
		return set(c, value)
	})
}

func setTool(field *string, v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return fmt.Errorf("%w: path must not be empty", ErrInvalidValue)
	}
	*field = ExpandPath(v)
	return nil
}

func resolveDir(dir string) (string, error) {
	dir = ExpandPath(dir)
	if dir == "" {
		return "", fmt.Errorf("%w: directory must not be empty", ErrInvalidValue)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %q: %w", dir, err)
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", abs, err)
	}
	return abs, nil
}
