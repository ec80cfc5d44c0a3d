package repos

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esmtools/gcmbuild/internal/ctxlog"
	"github.com/esmtools/gcmbuild/internal/execx"
)

const testManifest = `
GEOSgcm_GridComp:
  local: ./src/Components/@GEOSgcm_GridComp
  remote: https://example.org/GEOSgcm_GridComp.git
  develop: develop

GMAO_Shared:
  local: ./src/Shared/@GMAO_Shared
  remote: https://example.org/GMAO_Shared.git
  develop: main

env:
  local: ./@env
  remote: https://example.org/ESMA-env.git
`

func testContext() context.Context {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return ctxlog.WithLogger(context.Background(), logger)
}

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "components.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadManifest(t *testing.T) {
	t.Parallel()

	m, err := LoadManifest(writeManifest(t, testManifest))
	require.NoError(t, err)

	require.Len(t, m.Components, 3)

	// Declaration order is preserved.
	assert.Equal(t, "GEOSgcm_GridComp", m.Components[0].Name)
	assert.Equal(t, "GMAO_Shared", m.Components[1].Name)
	assert.Equal(t, "env", m.Components[2].Name)

	assert.Equal(t, "./src/Components/@GEOSgcm_GridComp", m.Components[0].Local)
	assert.Equal(t, "develop", m.Components[0].Develop)
	assert.Empty(t, m.Components[2].Develop)
}

func TestLoadManifest_Missing(t *testing.T) {
	t.Parallel()

	_, err := LoadManifest(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read components manifest")
}

func TestLoadManifest_Malformed(t *testing.T) {
	t.Parallel()

	_, err := LoadManifest(writeManifest(t, "- just\n- a\n- list\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be a mapping")
}

func TestDevelopComponents(t *testing.T) {
	t.Parallel()

	m, err := LoadManifest(writeManifest(t, testManifest))
	require.NoError(t, err)

	assert.Equal(t, []string{"GEOSgcm_GridComp", "GMAO_Shared"}, m.DevelopComponents())
}

func TestAcquirer_Clone(t *testing.T) {
	t.Parallel()

	runner := &execx.FakeRunner{}
	a := &Acquirer{Runner: runner, SourceDir: "/src/geos"}

	require.NoError(t, a.Clone(testContext()))

	require.Len(t, runner.Calls, 1)
	call := runner.Calls[0]
	assert.Equal(t, "mepo", call.Name)
	assert.Equal(t, []string{"clone", "--partial=blobless"}, call.Args)
	assert.Equal(t, "/src/geos", call.Dir)
}

func TestAcquirer_CloneFailurePropagates(t *testing.T) {
	t.Parallel()

	runner := &execx.FakeRunner{Errs: map[string]error{"mepo": errors.New("exit status 1")}}
	a := &Acquirer{Runner: runner, SourceDir: "/src/geos"}

	err := a.Clone(testContext())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mepo clone --partial=blobless")
}

func TestAcquirer_Develop(t *testing.T) {
	t.Parallel()

	runner := &execx.FakeRunner{}
	a := &Acquirer{Runner: runner, SourceDir: "/src/geos", MepoBin: "/opt/mepo/bin/mepo"}

	require.NoError(t, a.Develop(testContext(), []string{"GEOSgcm_GridComp", "GEOSgcm_App"}))

	require.Len(t, runner.Calls, 1)
	call := runner.Calls[0]
	assert.Equal(t, "/opt/mepo/bin/mepo", call.Name)
	assert.Equal(t, []string{"develop", "GEOSgcm_GridComp", "GEOSgcm_App"}, call.Args)
}

func TestAcquirer_DevelopWithoutComponentsIsNoOp(t *testing.T) {
	t.Parallel()

	runner := &execx.FakeRunner{}
	a := &Acquirer{Runner: runner, SourceDir: "/src/geos"}

	require.NoError(t, a.Develop(testContext(), nil))
	assert.Empty(t, runner.Calls)
}

func TestInspectComponents_UnclonedComponentsAreReportedNotFatal(t *testing.T) {
	t.Parallel()

	m, err := LoadManifest(writeManifest(t, testManifest))
	require.NoError(t, err)

	// Nothing has been cloned under this source dir.
	states := InspectComponents(testContext(), t.TempDir(), m)

	require.Len(t, states, 3)
	for _, s := range states {
		assert.Error(t, s.Err)
		assert.Empty(t, s.Commit)
	}
}
