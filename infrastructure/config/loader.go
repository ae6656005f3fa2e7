package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete application configuration
type Config struct {
	Paths   PathsConfig   `yaml:"paths"`
	Audio   AudioConfig   `yaml:"audio"`
	Tools   ToolsConfig   `yaml:"tools"`
	YouTube YouTubeConfig `yaml:"youtube"`
	Watch   WatchConfig   `yaml:"watch"`
}

// PathsConfig contains where downloads and transcripts are written
type PathsConfig struct {
	OutputDirectory      string `yaml:"output_directory"`
	TranscriptsDirectory string `yaml:"transcripts_directory"`
}

// AudioConfig contains MP3 encoding and silence trimming settings
type AudioConfig struct {
	Quality            int     `yaml:"quality"`
	SilenceThresholdDB float64 `yaml:"silence_threshold_db"`
}

// ToolsConfig locates the external programs and bounds how long they may run
type ToolsConfig struct {
	YtdlpPath   string `yaml:"ytdlp_path"`
	FFmpegPath  string `yaml:"ffmpeg_path"`
	FFprobePath string `yaml:"ffprobe_path"`
	Timeout     string `yaml:"timeout"`
	Retries     int    `yaml:"retries"`
}

// YouTubeConfig contains YouTube Data API settings
type YouTubeConfig struct {
	APIKey string `yaml:"api_key"`
}

// WatchConfig contains clipboard watcher settings
type WatchConfig struct {
	IntervalSeconds float64 `yaml:"interval_seconds"`
}

const (
	defaultQuality   = 192
	defaultThreshold = -50.0
	defaultTimeout   = "30m"
	defaultRetries   = 2
	defaultInterval  = 1.0
)

// Environment variables that override file values
const (
	EnvOutputDir      = "YT2MP3_OUTPUT_DIR"
	EnvTranscriptsDir = "YT2MP3_TRANSCRIPTS_DIR"
	EnvQuality        = "YT2MP3_QUALITY"
	EnvYtdlpPath      = "YT2MP3_YTDLP_PATH"
	EnvFFmpegPath     = "YT2MP3_FFMPEG_PATH"
	EnvAPIKey         = "YOUTUBE_API_KEY"
)

// Default returns the configuration used when no file exists
func Default() *Config {
	home := homeDir()
	return &Config{
		Paths: PathsConfig{
			OutputDirectory:      filepath.Join(home, "yt2mp3"),
			TranscriptsDirectory: filepath.Join(home, "yt2mp3-transcripts"),
		},
		Audio: AudioConfig{
			Quality:            defaultQuality,
			SilenceThresholdDB: defaultThreshold,
		},
		Tools: ToolsConfig{
			YtdlpPath:   "yt-dlp",
			FFmpegPath:  "ffmpeg",
			FFprobePath: "ffprobe",
			Timeout:     defaultTimeout,
			Retries:     defaultRetries,
		},
		Watch: WatchConfig{IntervalSeconds: defaultInterval},
	}
}

// DefaultPath returns $HOME/.yt2mp3/config.yaml
func DefaultPath() string {
	return filepath.Join(homeDir(), ".yt2mp3", "config.yaml")
}

// LegacyPath returns the JSON file older versions stored the output directory in
func LegacyPath() string {
	return filepath.Join(homeDir(), ".yt2mp3_config.json")
}

// Load reads and parses the configuration from the specified YAML file.
// Unset fields keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.fillDefaults()

	return cfg, nil
}

// LoadStored loads path if it exists, else the legacy JSON file, else defaults.
// Environment overrides are not applied, so the result is safe to Save.
func LoadStored(path string) (*Config, error) {
	cfg, err := Load(path)
	switch {
	case err == nil:
		return cfg, nil
	case errors.Is(err, fs.ErrNotExist):
		cfg = Default()
		if err := cfg.applyLegacy(LegacyPath()); err != nil {
			return nil, err
		}
		return cfg, nil
	default:
		return nil, err
	}
}

// LoadOrDefault returns LoadStored with environment overrides applied last
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := LoadStored(path)
	if err != nil {
		return nil, err
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the specified YAML file, replacing it atomically
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := writeFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overrides fields from YT2MP3_* and YOUTUBE_API_KEY variables
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvOutputDir); v != "" {
		c.Paths.OutputDirectory = ExpandPath(v)
	}
	if v := os.Getenv(EnvTranscriptsDir); v != "" {
		c.Paths.TranscriptsDirectory = ExpandPath(v)
	}
	if v := os.Getenv(EnvQuality); v != "" {
		q, err := strconv.Atoi(strings.TrimSuffix(strings.ToLower(v), "k"))
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvQuality, v, err)
		}
		c.Audio.Quality = q
	}
	if v := os.Getenv(EnvYtdlpPath); v != "" {
		c.Tools.YtdlpPath = v
	}
	if v := os.Getenv(EnvFFmpegPath); v != "" {
		c.Tools.FFmpegPath = v
	}
	if v := os.Getenv(EnvAPIKey); v != "" {
		c.YouTube.APIKey = v
	}
	return nil
}

// ToolTimeout parses Tools.Timeout; an empty value means no limit
func (c *Config) ToolTimeout() (time.Duration, error) {
	if strings.TrimSpace(c.Tools.Timeout) == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Tools.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid tools.timeout %q: %w", c.Tools.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid tools.timeout %q: must not be negative", c.Tools.Timeout)
	}
	return d, nil
}

// WatchInterval returns the clipboard poll interval
func (c *Config) WatchInterval() time.Duration {
	return time.Duration(c.Watch.IntervalSeconds * float64(time.Second))
}

func (c *Config) fillDefaults() {
	def := Default()
	if c.Paths.OutputDirectory == "" {
		c.Paths.OutputDirectory = def.Paths.OutputDirectory
	}
	if c.Paths.TranscriptsDirectory == "" {
		c.Paths.TranscriptsDirectory = def.Paths.TranscriptsDirectory
	}
	c.Paths.OutputDirectory = ExpandPath(c.Paths.OutputDirectory)
	c.Paths.TranscriptsDirectory = ExpandPath(c.Paths.TranscriptsDirectory)

	if c.Audio.Quality == 0 {
		c.Audio.Quality = def.Audio.Quality
	}
	if c.Tools.YtdlpPath == "" {
		c.Tools.YtdlpPath = def.Tools.YtdlpPath
	}
	if c.Tools.FFmpegPath == "" {
		c.Tools.FFmpegPath = def.Tools.FFmpegPath
	}
	if c.Tools.FFprobePath == "" {
		c.Tools.FFprobePath = def.Tools.FFprobePath
	}
	if c.Watch.IntervalSeconds <= 0 {
		c.Watch.IntervalSeconds = def.Watch.IntervalSeconds
	}
}

// legacyConfig is the JSON file written by older versions
type legacyConfig struct {
	OutputDir string `json:"output_dir"`
}

func (c *Config) applyLegacy(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read legacy config: %w", err)
	}

	var legacy legacyConfig
	if err := json.Unmarshal(data, &legacy); err != nil {
		// A corrupt legacy file is ignored, as older versions did
		return nil
	}
	if legacy.OutputDir != "" {
		c.Paths.OutputDirectory = ExpandPath(legacy.OutputDir)
	}
	return nil
}

// ExpandPath expands a leading ~ to the home directory
func ExpandPath(p string) string {
	p = strings.TrimSpace(p)
	if p == "~" {
		return homeDir()
	}
	if strings.HasPrefix(p, "~/") || strings.HasPrefix(p, `~\`) {
		return filepath.Join(homeDir(), p[2:])
	}
	return p
}

func homeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
