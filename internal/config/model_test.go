package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func testModel() *Model {
	return &Model{
		Fixture: &Fixture{Name: "GEOSgcm"},
		Variants: map[string]*Variant{
			"extdata2g": {Name: "extdata2g", Default: cty.True},
			"f2py":      {Name: "f2py", Default: cty.False},
			"build_type": {
				Name:    "build_type",
				Default: cty.StringVal("Release"),
				Values:  []string{"Debug", "Release", "Aggressive"},
			},
		},
		Toolchain: &Toolchain{Compiler: "gcc", FC: "gfortran"},
	}
}

func TestEffectiveVariants_Defaults(t *testing.T) {
	t.Parallel()

	values, err := testModel().EffectiveVariants(nil)
	require.NoError(t, err)

	assert.True(t, values.Bool("extdata2g"))
	assert.False(t, values.Bool("f2py"))
	assert.Equal(t, "Release", values.String("build_type"))
}

func TestEffectiveVariants_Overrides(t *testing.T) {
	t.Parallel()

	overrides := map[string]string{
		"f2py":       "true",
		"extdata2g":  "off",
		"build_type": "Aggressive",
	}
	values, err := testModel().EffectiveVariants(overrides)
	require.NoError(t, err)

	assert.True(t, values.Bool("f2py"))
	assert.False(t, values.Bool("extdata2g"))
	assert.Equal(t, "Aggressive", values.String("build_type"))
}

func TestEffectiveVariants_Rejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		overrides map[string]string
		wantIn    string
	}{
		{
			name:      "unknown variant",
			overrides: map[string]string{"openmp": "true"},
			wantIn:    `unknown variant "openmp"`,
		},
		{
			name:      "value outside enumeration",
			overrides: map[string]string{"build_type": "Profile"},
			wantIn:    "does not allow value",
		},
		{
			name:      "non-boolean for boolean variant",
			overrides: map[string]string{"f2py": "maybe"},
			wantIn:    "expects a boolean",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := testModel().EffectiveVariants(tt.overrides)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantIn)
		})
	}
}

func TestValues_TypedAccessors(t *testing.T) {
	t.Parallel()

	values := Values{
		"flag": cty.True,
		"mode": cty.StringVal("fast"),
	}

	assert.True(t, values.Bool("flag"))
	assert.False(t, values.Bool("missing"))
	assert.False(t, values.Bool("mode"), "a string variant is not a boolean")
	assert.Equal(t, "fast", values.String("mode"))
	assert.Empty(t, values.String("flag"))
	assert.Empty(t, values.String("missing"))
}
