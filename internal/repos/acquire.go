// Package repos acquires the fixture's auxiliary source repositories
// before configuration. The heavy lifting is delegated to mepo, the
// multi-repository tool the GEOS fixtures are laid out for; this package
// owns only the invocation and the post-clone provenance report.
package repos

import (
	"context"

	"github.com/esmtools/gcmbuild/internal/ctxlog"
	"github.com/esmtools/gcmbuild/internal/execx"
)

// Acquirer runs mepo against the fixture source tree.
type Acquirer struct {
	Runner    execx.Runner
	SourceDir string
	// MepoBin overrides the mepo executable. Empty means "mepo" on PATH.
	MepoBin string
}

func (a *Acquirer) bin() string {
	if a.MepoBin != "" {
		return a.MepoBin
	}
	return "mepo"
}

// CloneCommand is the mepo invocation that fetches every component
// repository. Some of the components carry very large histories, so the
// clone is always blobless: file contents are fetched lazily instead of
// up front.
func (a *Acquirer) CloneCommand() execx.Command {
	return execx.Command{
		Name: a.bin(),
		Args: []string{"clone", "--partial=blobless"},
		Dir:  a.SourceDir,
	}
}

// DevelopCommand is the mepo invocation that switches the named
// components to their development branches.
func (a *Acquirer) DevelopCommand(components []string) execx.Command {
	return execx.Command{
		Name: a.bin(),
		Args: append([]string{"develop"}, components...),
		Dir:  a.SourceDir,
	}
}

// Clone fetches every component repository. Any failure aborts the
// build; there is no partial-clone recovery here.
func (a *Acquirer) Clone(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	logger.Info("Cloning component repositories.", "mode", "blobless", "dir", a.SourceDir)

	return a.Runner.Run(ctx, a.CloneCommand())
}

// Develop switches the named components to their development branches.
// Used by the develop variant for internal testing builds. A nil or empty
// component list is a no-op.
func (a *Acquirer) Develop(ctx context.Context, components []string) error {
	if len(components) == 0 {
		return nil
	}
	logger := ctxlog.FromContext(ctx)
	logger.Info("Switching components to development branches.", "components", components)

	return a.Runner.Run(ctx, a.DevelopCommand(components))
}
