package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/esmtools/gcmbuild/internal/config"
	"github.com/esmtools/gcmbuild/internal/ctxlog"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	model  *config.Model
}

// NewApp constructs the application: it configures an isolated logger and
// loads the recipe through the provided loader. A recipe that fails to
// load is a fatal startup error and panics; the entrypoint recovers it
// into a clean exit.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := loader.Load(ctx, cfg.RecipePath)
	if err != nil {
		panic(fmt.Errorf("failed to load recipe: %w", err))
	}
	logger.Debug("Recipe loaded into unified model.", "fixture", model.Fixture.Name)

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		model:  model,
	}
}

// Model returns the loaded recipe model. This is primarily for testing.
func (a *App) Model() *config.Model {
	return a.model
}
