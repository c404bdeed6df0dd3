package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
)

// Config holds runtime settings for the alarm-clock server.
type Config struct {
	// ListenAddress is the address the HTTP API binds to (e.g. ":8080").
	ListenAddress string `yaml:"listen_addr"`
	// AudioFolder is the directory where uploaded audio files are stored.
	AudioFolder string `yaml:"audio_folder"`
	// MaxUploadBytes caps the decoded size of an uploaded audio file.
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`
	// ConvertDelay is the simulated duration of a URL-based audio conversion.
	ConvertDelay time.Duration `yaml:"convert_delay"`
	// SelectDelay is the simulated conversion duration after picking a search result.
	SelectDelay time.Duration `yaml:"select_delay"`
	// SearchDelay is the simulated duration of a catalog search.
	SearchDelay time.Duration `yaml:"search_delay"`
	// LogLevel is the minimum level for log output (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`
	// Catalog optionally replaces the built-in search catalog.
	Catalog []domain.Candidate `yaml:"catalog,omitempty"`
}

const (
	// DefaultConfigFilename is the default filename for server settings.
	DefaultConfigFilename = "alarm-clock-settings.yaml"

	// DefaultListenAddress is the address the HTTP API binds to by default.
	DefaultListenAddress = ":8080"

	// DefaultAudioFolder is the default directory for uploaded audio files.
	DefaultAudioFolder = "uploads"

	// DefaultMaxUploadBytes is the default upload size cap (10 MiB).
	DefaultMaxUploadBytes = 10 << 20

	// DefaultConvertDelay mirrors the duration of a real MP3 conversion.
	DefaultConvertDelay = 3 * time.Second

	// DefaultSelectDelay is shorter because search results are assumed cached.
	DefaultSelectDelay = 2 * time.Second

	// DefaultSearchDelay is the simulated round trip of a catalog search.
	DefaultSearchDelay = time.Second

	// DefaultFilePermissions is the default file permission for files the server writes.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errUploadLimitInvalid is returned when the upload size cap is negative.
	errUploadLimitInvalid = errors.New("max upload size must not be negative")
)

// Default returns a configuration populated with built-in defaults.
func Default() *Config {
	cfg := new(Config)
	applyDefaults(cfg)

	return cfg
}

// Load reads configuration from the provided path and validates essential fields.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings for required fields
// and fills in defaults for any that are absent.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	applyDefaults(cfg)

	if _, err := net.ResolveTCPAddr("tcp", cfg.ListenAddress); err != nil {
		return fmt.Errorf("invalid listen address: %w", err)
	}

	if cfg.MaxUploadBytes < 0 {
		return errUploadLimitInvalid
	}

	if _, ok := logger.ParseLogLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}

	return nil
}

// applyDefaults fills zero-valued fields with built-in defaults.
func applyDefaults(cfg *Config) {
	if cfg.ListenAddress == "" {
		cfg.ListenAddress = DefaultListenAddress
	}

	if cfg.AudioFolder == "" {
		cfg.AudioFolder = DefaultAudioFolder
	}

	if cfg.MaxUploadBytes == 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}

	if cfg.ConvertDelay <= 0 {
		cfg.ConvertDelay = DefaultConvertDelay
	}

	if cfg.SelectDelay <= 0 {
		cfg.SelectDelay = DefaultSelectDelay
	}

	if cfg.SearchDelay <= 0 {
		cfg.SearchDelay = DefaultSearchDelay
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}
