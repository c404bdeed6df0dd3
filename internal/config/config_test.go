package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestValidate checks required fields, defaulting and format validations for Config.
func TestValidate(t *testing.T) {
	t.Parallel()

	// Empty config is valid and picks up every default.
	cfg := new(Config)

	require.NoError(t, Validate(cfg))
	require.Equal(t, DefaultListenAddress, cfg.ListenAddress)
	require.Equal(t, DefaultAudioFolder, cfg.AudioFolder)
	require.Equal(t, int64(DefaultMaxUploadBytes), cfg.MaxUploadBytes)
	require.Equal(t, DefaultConvertDelay, cfg.ConvertDelay)
	require.Equal(t, DefaultSelectDelay, cfg.SelectDelay)
	require.Equal(t, DefaultSearchDelay, cfg.SearchDelay)
	require.Equal(t, "info", cfg.LogLevel)

	// Bad listen address.
	cfg = &Config{ListenAddress: "bad:address"}
	require.Error(t, Validate(cfg))

	// Negative upload cap.
	cfg = &Config{MaxUploadBytes: -1}
	require.Error(t, Validate(cfg))

	// Unknown log level.
	cfg = &Config{LogLevel: "verbose"}
	require.Error(t, Validate(cfg))

	// Nil config.
	require.Error(t, Validate(nil))
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	cfg := &Config{
		ListenAddress:  "127.0.0.1:8099",
		AudioFolder:    filepath.Join(dir, "audio"),
		MaxUploadBytes: 1 << 20,
		ConvertDelay:   500 * time.Millisecond,
		LogLevel:       "debug",
	}

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg.ListenAddress, loaded.ListenAddress)
	require.Equal(t, cfg.AudioFolder, loaded.AudioFolder)
	require.Equal(t, cfg.MaxUploadBytes, loaded.MaxUploadBytes)
	require.Equal(t, cfg.ConvertDelay, loaded.ConvertDelay)
	// Absent delays come back as defaults.
	require.Equal(t, DefaultSelectDelay, loaded.SelectDelay)
	require.Equal(t, DefaultSearchDelay, loaded.SearchDelay)

	// File exists.
	_, err = os.Stat(path)
	require.NoError(t, err)
}

// TestLoad_MissingFile verifies Load surfaces the read error for a missing path.
func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
