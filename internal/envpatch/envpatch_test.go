package envpatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApply_UnsetRemovesVariable(t *testing.T) {
	t.Parallel()

	environ := []string{"PATH=/usr/bin", "BASEDIR=/stale/path", "HOME=/home/u"}
	got := ForBuild().Apply(environ)

	assert.Equal(t, []string{"PATH=/usr/bin", "HOME=/home/u"}, got)
}

func TestApply_UnsetAbsentVariableIsNoOp(t *testing.T) {
	t.Parallel()

	environ := []string{"PATH=/usr/bin"}
	got := ForBuild().Apply(environ)

	assert.Equal(t, environ, got)
}

func TestApply_Idempotent(t *testing.T) {
	t.Parallel()

	patch := Patch{
		Unset: []string{"BASEDIR"},
		Set:   map[string]string{"FC": "gfortran"},
	}
	environ := []string{"BASEDIR=/x", "PATH=/usr/bin", "FC=ifort"}

	once := patch.Apply(environ)
	twice := patch.Apply(once)

	assert.Equal(t, once, twice)
	assert.Equal(t, []string{"PATH=/usr/bin", "FC=gfortran"}, once)
}

func TestApply_SetOrderIsDeterministic(t *testing.T) {
	t.Parallel()

	patch := Patch{Set: map[string]string{"B": "2", "A": "1", "C": "3"}}
	got := patch.Apply(nil)

	assert.Equal(t, []string{"A=1", "B=2", "C=3"}, got)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	environ := []string{"BASEDIR=/x", "PATH=/usr/bin"}
	ForBuild().Apply(environ)

	assert.Equal(t, []string{"BASEDIR=/x", "PATH=/usr/bin"}, environ)
}
