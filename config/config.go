// Package config holds the application configuration, loadable from a
// YAML file with sensible defaults.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML values like "500ms" parse.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config controls frame quantization, directories, and the image search
// client.
type Config struct {
	FrameRate      int      `yaml:"frame_rate"`
	ImagesPerSplit int      `yaml:"images_per_split"`
	ImageDir       string   `yaml:"image_dir"`
	OutputDir      string   `yaml:"output_dir"`
	UploadDir      string   `yaml:"upload_dir"`
	DownloadDir    string   `yaml:"download_dir"`
	BraveAPIKey    string   `yaml:"brave_api_key"`
	RateLimitDelay Duration `yaml:"rate_limit_delay"`
	ListenAddr     string   `yaml:"listen_addr"`
}

// Default returns the configuration used when no file is provided.
func Default() Config {
	return Config{
		FrameRate:      24,
		ImagesPerSplit: 2,
		ImageDir:       "images",
		OutputDir:      "output",
		UploadDir:      "uploads",
		DownloadDir:    "downloads",
		RateLimitDelay: Duration(500 * time.Millisecond),
		ListenAddr:     ":8080",
	}
}

// Load reads a YAML config file over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects configurations the pipeline cannot run with.
func (c Config) Validate() error {
	if c.FrameRate <= 0 {
		return fmt.Errorf("frame_rate must be a positive integer, got %d", c.FrameRate)
	}
	if c.ImagesPerSplit < 1 || c.ImagesPerSplit > 10 {
		return fmt.Errorf("images_per_split must be between 1 and 10, got %d", c.ImagesPerSplit)
	}
	return nil
}
