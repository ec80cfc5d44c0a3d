package repos

import (
	"context"
	"path/filepath"

	"github.com/go-git/go-git/v5"

	"github.com/esmtools/gcmbuild/internal/ctxlog"
)

// ComponentState is the observed git state of one cloned component.
type ComponentState struct {
	Name   string
	Path   string
	Ref    string
	Commit string
	Err    error
}

// InspectComponents opens each component repository from the manifest and
// records its HEAD, so the build log states exactly which sub-repo states
// went into the binary. Inspection is read-only and informational: a
// component that cannot be opened is reported, not fatal.
func InspectComponents(ctx context.Context, sourceDir string, m *Manifest) []ComponentState {
	states := make([]ComponentState, 0, len(m.Components))
	for _, c := range m.Components {
		state := ComponentState{Name: c.Name, Path: filepath.Join(sourceDir, c.Local)}

		repo, err := git.PlainOpen(state.Path)
		if err != nil {
			state.Err = err
			states = append(states, state)
			continue
		}
		head, err := repo.Head()
		if err != nil {
			state.Err = err
			states = append(states, state)
			continue
		}

		state.Ref = head.Name().Short()
		state.Commit = head.Hash().String()
		states = append(states, state)
	}
	return states
}

// LogReport writes the provenance report to the build log.
func LogReport(ctx context.Context, states []ComponentState) {
	logger := ctxlog.FromContext(ctx)
	for _, s := range states {
		if s.Err != nil {
			logger.Warn("Component state unavailable.", "component", s.Name, "path", s.Path, "error", s.Err)
			continue
		}
		logger.Info("Component state.", "component", s.Name, "ref", s.Ref, "commit", s.Commit)
	}
}
