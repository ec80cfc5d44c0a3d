package app

import (
	"context"
	"fmt"
	"os"

	"github.com/esmtools/gcmbuild/internal/compiler"
	"github.com/esmtools/gcmbuild/internal/ctxlog"
	"github.com/esmtools/gcmbuild/internal/envpatch"
	"github.com/esmtools/gcmbuild/internal/execx"
	"github.com/esmtools/gcmbuild/internal/pipeline"
	"github.com/esmtools/gcmbuild/internal/repos"
	"github.com/esmtools/gcmbuild/internal/resolve"
)

// Run resolves the build directive and executes the pipeline.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	values, err := a.model.EffectiveVariants(a.config.VariantOverrides)
	if err != nil {
		return fmt.Errorf("invalid variant selection: %w", err)
	}
	variants := resolve.VariantsFrom(values)
	a.logger.Info("Variants resolved.",
		"build_type", variants.BuildType,
		"f2py", variants.F2py,
		"extdata2g", variants.ExtData2G,
		"develop", variants.Develop,
	)

	runner := &execx.OSRunner{}
	probe := &compiler.DumpVersionProbe{Runner: runner}

	manifest, developComponents := a.loadManifest(variants.Develop)

	pipe := &pipeline.Pipeline{
		Runner: runner,
		Acquirer: &repos.Acquirer{
			Runner:    runner,
			SourceDir: a.config.SourceDir,
			MepoBin:   a.config.MepoBin,
		},
		// The directive is resolved inside the pipeline, after the clone:
		// the version probe runs against the acquired source environment,
		// right before the configure step that consumes the directive.
		Resolve: func(ctx context.Context) (*resolve.Directive, error) {
			directive, err := resolve.BuildDirective(ctx, variants, a.model.Toolchain, probe)
			if err != nil {
				return nil, err
			}
			a.logger.Debug("Build directive resolved.", "defines", len(directive.Defines))
			return directive, nil
		},
		SourceDir: a.config.SourceDir,
		BuildDir:  a.config.BuildDir,
		CMakeBin:  a.config.CMakeBin,
		Patch:     envpatch.ForBuild(),
		Manifest:  manifest,
		DryRun:    a.config.DryRun,
		SkipClone: a.config.SkipClone,
	}

	if err := pipe.Run(ctx, developComponents); err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	a.logger.Info("Build finished.", "fixture", a.model.Fixture.Name, "build_dir", a.config.BuildDir)
	return nil
}

// loadManifest reads the components manifest when present. The manifest is
// optional: without it there is no provenance report and the develop
// variant has nothing to act on.
func (a *App) loadManifest(develop bool) (*repos.Manifest, []string) {
	if _, err := os.Stat(a.config.ManifestPath); err != nil {
		a.logger.Debug("No components manifest found.", "path", a.config.ManifestPath)
		if develop {
			a.logger.Warn("Develop variant set but no components manifest found; nothing to switch.")
		}
		return nil, nil
	}

	manifest, err := repos.LoadManifest(a.config.ManifestPath)
	if err != nil {
		a.logger.Warn("Components manifest unreadable; continuing without it.", "error", err)
		return nil, nil
	}

	var developComponents []string
	if develop {
		developComponents = manifest.DevelopComponents()
	}
	return manifest, developComponents
}
