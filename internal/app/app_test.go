package app

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esmtools/gcmbuild/internal/hcl"
)

const testRecipe = `
fixture "GEOSgcm" {}

variant "f2py" {
  default = false
}

variant "build_type" {
  default = "Release"
  values  = ["Debug", "Release", "Aggressive"]
}

toolchain {
  compiler       = "gcc"
  fc             = "gfortran"
  esmf_cmake_dir = "/opt/esmf/cmake"

  mpi {
    provider = "openmpi"
  }
}
`

func writeTestRecipe(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recipe.hcl")
	require.NoError(t, os.WriteFile(path, []byte(testRecipe), 0600))
	return path
}

func TestNewApp_LoadsRecipe(t *testing.T) {
	t.Parallel()

	cfg, err := NewConfig(Config{RecipePath: writeTestRecipe(t), LogLevel: "error"})
	require.NoError(t, err)

	out := &bytes.Buffer{}
	a := NewApp(out, cfg, hcl.NewLoader())

	require.NotNil(t, a.Model())
	assert.Equal(t, "GEOSgcm", a.Model().Fixture.Name)
	assert.Len(t, a.Model().Variants, 2)
}

func TestNewApp_PanicsOnUnreadableRecipe(t *testing.T) {
	t.Parallel()

	cfg, err := NewConfig(Config{RecipePath: filepath.Join(t.TempDir(), "missing"), LogLevel: "error"})
	require.NoError(t, err)

	out := &bytes.Buffer{}
	assert.Panics(t, func() {
		NewApp(out, cfg, hcl.NewLoader())
	})
}

func TestNewConfig_Validation(t *testing.T) {
	t.Parallel()

	_, err := NewConfig(Config{})
	require.Error(t, err)

	cfg, err := NewConfig(Config{RecipePath: "recipe.hcl", SourceDir: "/src/geos"})
	require.NoError(t, err)
	assert.Equal(t, "build", cfg.BuildDir)
	assert.Equal(t, "/src/geos/components.yaml", cfg.ManifestPath)
}
