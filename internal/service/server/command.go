package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	api "github.com/oshokin/alarm-clock/internal/api/http"
	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/repository/audio"
	"github.com/oshokin/alarm-clock/internal/service/editor"
	"github.com/oshokin/alarm-clock/internal/service/uploader"
)

// Options controls the alarm-clock-server process and configuration.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// ListenAddress provides an optional listen address override for the HTTP server.
	ListenAddress string
}

// Run starts the HTTP server and blocks until context is canceled or server stops.
// Loads configuration first, then determines listen address from config or override.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "alarm-clock-server")

	settings, err := loadSettings(ctx, opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	if level, ok := logger.ParseLogLevel(settings.LogLevel); ok {
		logger.SetLevel(level)
	}

	// CLI argument overrides the configured listen address.
	listenAddress := settings.ListenAddress
	if opts.ListenAddress != "" {
		listenAddress = opts.ListenAddress
	}

	store := editor.NewService(
		editor.WithDelays(settings.ConvertDelay, settings.SelectDelay, settings.SearchDelay),
		editor.WithCatalog(settings.Catalog),
	)

	files := audio.NewFileRepository(settings.AudioFolder)
	uploads := uploader.NewService(store, files, settings.MaxUploadBytes)

	logger.InfoKV(ctx, "Starting alarm clock server",
		"listen_address", listenAddress,
		"audio_folder", settings.AudioFolder)

	return api.NewServer(store, uploads).Run(ctx, listenAddress)
}

// loadSettings reads the configuration file, falling back to built-in
// defaults when the default file is simply absent.
func loadSettings(ctx context.Context, path string) (*config.Config, error) {
	settings, err := config.Load(path)
	if err == nil {
		return settings, nil
	}

	// A missing default file is not an error: the server runs fine on defaults.
	if (path == "" || path == config.DefaultConfigFilename) && errors.Is(err, fs.ErrNotExist) {
		logger.Debug(ctx, "Settings file not found, using defaults")

		return config.Default(), nil
	}

	return nil, err
}
