package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/harnessgo/internal/ctxlog"
	"github.com/vk/harnessgo/internal/profile"
	"github.com/vk/harnessgo/internal/remap"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	mapper remap.Mapper
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and the path mapper
// resolved from the reuse-build profile. A profile that fails to load is a
// fatal startup error and panics; the entrypoint recovers it into a clean
// exit message.
func NewApp(outW, logW io.Writer, appConfig *Config) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	mapper, err := profile.Load(ctx, appConfig.ProfilePath)
	if err != nil {
		panic(fmt.Errorf("failed to load reuse-build profile: %w", err))
	}
	logger.Debug("Path mapper resolved.")

	return &App{
		outW:   outW,
		logger: logger,
		mapper: mapper,
	}
}

// Mapper returns the application's path mapper. This is primarily for
// testing.
func (a *App) Mapper() remap.Mapper {
	return a.mapper
}
