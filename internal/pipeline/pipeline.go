// Package pipeline runs the build as one strictly sequential sequence:
// acquire component repositories, report their state, resolve the build
// directive, configure with CMake, build. Each stage must finish before
// the next starts, and any stage failure aborts the whole run. The
// collaborator tools may parallelize internally; that is invisible here.
package pipeline

import (
	"context"
	"os"

	"github.com/esmtools/gcmbuild/internal/ctxlog"
	"github.com/esmtools/gcmbuild/internal/envpatch"
	"github.com/esmtools/gcmbuild/internal/execx"
	"github.com/esmtools/gcmbuild/internal/repos"
	"github.com/esmtools/gcmbuild/internal/resolve"
)

// Pipeline drives one build invocation.
type Pipeline struct {
	Runner   execx.Runner
	Acquirer *repos.Acquirer

	// Resolve produces the build directive. It runs after the acquire
	// stage, immediately before configure, because it may probe tools
	// (the Fortran compiler) that the acquired environment provides.
	Resolve func(ctx context.Context) (*resolve.Directive, error)

	SourceDir string
	BuildDir  string
	// CMakeBin overrides the cmake executable. Empty means "cmake" on PATH.
	CMakeBin string

	// Patch is applied to the environment of every configure/build
	// subprocess.
	Patch envpatch.Patch
	// BaseEnv is the environment the patch is applied to. Nil means the
	// current process environment, captured at invocation time.
	BaseEnv []string

	// Manifest enables the post-clone provenance report when set.
	Manifest *repos.Manifest

	// DryRun logs every external command instead of executing it.
	DryRun bool
	// SkipClone assumes the component repositories are already in place.
	SkipClone bool
}

func (p *Pipeline) cmake() string {
	if p.CMakeBin != "" {
		return p.CMakeBin
	}
	return "cmake"
}

// Run executes the pipeline stages in order. The directive is resolved
// between acquisition and configuration and consumed by this one
// invocation. Resolution still runs under dry run, so a configuration
// that cannot resolve fails there too.
func (p *Pipeline) Run(ctx context.Context, developComponents []string) error {
	if err := p.acquire(ctx, developComponents); err != nil {
		return err
	}
	p.report(ctx)

	directive, err := p.Resolve(ctx)
	if err != nil {
		return err
	}

	if err := p.configure(ctx, directive); err != nil {
		return err
	}
	return p.build(ctx)
}

func (p *Pipeline) acquire(ctx context.Context, developComponents []string) error {
	logger := ctxlog.FromContext(ctx)
	if p.SkipClone {
		logger.Debug("Component clone skipped by request.")
		return nil
	}
	if p.DryRun {
		logger.Info("Dry run: would execute.", "command", p.Acquirer.CloneCommand().String())
		if len(developComponents) > 0 {
			logger.Info("Dry run: would execute.", "command", p.Acquirer.DevelopCommand(developComponents).String())
		}
		return nil
	}
	if err := p.Acquirer.Clone(ctx); err != nil {
		return err
	}
	return p.Acquirer.Develop(ctx, developComponents)
}

func (p *Pipeline) report(ctx context.Context) {
	if p.Manifest == nil || p.DryRun {
		return
	}
	repos.LogReport(ctx, repos.InspectComponents(ctx, p.SourceDir, p.Manifest))
}

func (p *Pipeline) configure(ctx context.Context, directive *resolve.Directive) error {
	args := []string{
		"-S", p.SourceDir,
		"-B", p.BuildDir,
		"-DCMAKE_BUILD_TYPE=" + directive.BuildType,
	}
	args = append(args, directive.DefineArgs()...)

	return p.runTool(ctx, execx.Command{
		Name: p.cmake(),
		Args: args,
		Env:  p.buildEnv(),
	})
}

func (p *Pipeline) build(ctx context.Context) error {
	return p.runTool(ctx, execx.Command{
		Name: p.cmake(),
		Args: []string{"--build", p.BuildDir},
		Env:  p.buildEnv(),
	})
}

// runTool executes one collaborator command, or logs it under dry run.
func (p *Pipeline) runTool(ctx context.Context, cmd execx.Command) error {
	logger := ctxlog.FromContext(ctx)
	if p.DryRun {
		logger.Info("Dry run: would execute.", "command", cmd.String())
		return nil
	}
	logger.Info("Executing.", "command", cmd.String())
	return p.Runner.Run(ctx, cmd)
}

// buildEnv returns the patched subprocess environment.
func (p *Pipeline) buildEnv() []string {
	base := p.BaseEnv
	if base == nil {
		base = os.Environ()
	}
	return p.Patch.Apply(base)
}
