package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// isolate points HOME at a temp dir and clears overrides so tests do not see the real environment
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{EnvOutputDir, EnvTranscriptsDir, EnvQuality, EnvYtdlpPath, EnvFFmpegPath, EnvAPIKey} {
		t.Setenv(key, "")
	}
	return home
}

func TestLoad(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `paths:
  output_directory: ~/Music/yt
audio:
  quality: 320
tools:
  ytdlp_path: /opt/yt-dlp
  timeout: 5m
youtube:
  api_key: abc
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if want := filepath.Join(home, "Music", "yt"); cfg.Paths.OutputDirectory != want {
		t.Errorf("OutputDirectory = %q, want %q", cfg.Paths.OutputDirectory, want)
	}
	if want := filepath.Join(home, "yt2mp3-transcripts"); cfg.Paths.TranscriptsDirectory != want {
		t.Errorf("TranscriptsDirectory = %q, want default %q", cfg.Paths.TranscriptsDirectory, want)
	}
	if cfg.Audio.Quality != 320 {
		t.Errorf("Quality = %d, want 320", cfg.Audio.Quality)
	}
	if cfg.Audio.SilenceThresholdDB != -50 {
		t.Errorf("SilenceThresholdDB = %v, want default -50", cfg.Audio.SilenceThresholdDB)
	}
	if cfg.Tools.YtdlpPath != "/opt/yt-dlp" || cfg.Tools.FFmpegPath != "ffmpeg" {
		t.Errorf("Tools = %+v", cfg.Tools)
	}
	if d, err := cfg.ToolTimeout(); err != nil || d != 5*time.Minute {
		t.Errorf("ToolTimeout() = %v, %v, want 5m", d, err)
	}
	if cfg.YouTube.APIKey != "abc" {
		t.Errorf("APIKey = %q, want abc", cfg.YouTube.APIKey)
	}
	if cfg.WatchInterval() != time.Second {
		t.Errorf("WatchInterval() = %v, want 1s", cfg.WatchInterval())
	}
}

func TestLoad_Errors(t *testing.T) {
	isolate(t)

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() expected error for missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("paths: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("Load() expected error for invalid YAML")
	}
}

func TestLoadOrDefault_MissingFileUsesDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := LoadOrDefault(filepath.Join(home, ".yt2mp3", "config.yaml"))
	if err != nil {
		t.Fatalf("LoadOrDefault() unexpected error: %v", err)
	}
	if want := filepath.Join(home, "yt2mp3"); cfg.Paths.OutputDirectory != want {
		t.Errorf("OutputDirectory = %q, want %q", cfg.Paths.OutputDirectory, want)
	}
	if cfg.Audio.Quality != 192 {
		t.Errorf("Quality = %d, want 192", cfg.Audio.Quality)
	}
}

func TestLoadOrDefault_LegacyJSON(t *testing.T) {
	home := isolate(t)
	legacyDir := filepath.Join(home, "old-music")
	if err := os.WriteFile(LegacyPath(), []byte(`{"output_dir": "`+legacyDir+`"}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadOrDefault(filepath.Join(home, ".yt2mp3", "config.yaml"))
	if err != nil {
		t.Fatalf("LoadOrDefault() unexpected error: %v", err)
	}
	if cfg.Paths.OutputDirectory != legacyDir {
		t.Errorf("OutputDirectory = %q, want legacy %q", cfg.Paths.OutputDirectory, legacyDir)
	}
}

func TestLoadOrDefault_EnvOverrides(t *testing.T) {
	home := isolate(t)
	t.Setenv(EnvOutputDir, "~/from-env")
	t.Setenv(EnvQuality, "128k")
	t.Setenv(EnvAPIKey, "env-key")
	t.Setenv(EnvFFmpegPath, "/usr/bin/ffmpeg")

	cfg, err := LoadOrDefault(filepath.Join(home, "none.yaml"))
	if err != nil {
		t.Fatalf("LoadOrDefault() unexpected error: %v", err)
	}
	if want := filepath.Join(home, "from-env"); cfg.Paths.OutputDirectory != want {
		t.Errorf("OutputDirectory = %q, want %q", cfg.Paths.OutputDirectory, want)
	}
	if cfg.Audio.Quality != 128 {
		t.Errorf("Quality = %d, want 128", cfg.Audio.Quality)
	}
	if cfg.YouTube.APIKey != "env-key" {
		t.Errorf("APIKey = %q, want env-key", cfg.YouTube.APIKey)
	}
	if cfg.Tools.FFmpegPath != "/usr/bin/ffmpeg" {
		t.Errorf("FFmpegPath = %q", cfg.Tools.FFmpegPath)
	}
}

func TestLoadOrDefault_InvalidEnvQuality(t *testing.T) {
	home := isolate(t)
	t.Setenv(EnvQuality, "loud")

	if _, err := LoadOrDefault(filepath.Join(home, "none.yaml")); err == nil {
		t.Error("LoadOrDefault() expected error for invalid quality")
	}
}

func TestSave_RoundTrip(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Audio.Quality = 320
	cfg.YouTube.APIKey = "k"

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if loaded.Audio.Quality != 320 || loaded.YouTube.APIKey != "k" {
		t.Errorf("Load() after Save() = %+v", loaded)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("config dir has %d entries, want only config.yaml", len(entries))
	}
}

func TestToolTimeout(t *testing.T) {
	tests := []struct {
		value   string
		want    time.Duration
		wantErr bool
	}{
		{value: "", want: 0},
		{value: "90s", want: 90 * time.Second},
		{value: "soon", wantErr: true},
		{value: "-1m", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			cfg := &Config{Tools: ToolsConfig{Timeout: tt.value}}
			got, err := cfg.ToolTimeout()
			if (err != nil) != tt.wantErr {
				t.Fatalf("ToolTimeout() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ToolTimeout() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home := isolate(t)

	tests := []struct {
		input string
		want  string
	}{
		{input: "~", want: home},
		{input: "~/Music", want: filepath.Join(home, "Music")},
		{input: "/abs/path", want: "/abs/path"},
		{input: "relative", want: "relative"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ExpandPath(tt.input); got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
