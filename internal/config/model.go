package config

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// Model is the unified, format-agnostic representation of a build recipe.
type Model struct {
	Fixture      *Fixture
	Variants     map[string]*Variant
	Dependencies []*Dependency
	Toolchain    *Toolchain
}

// Fixture identifies the model source tree being configured and built.
type Fixture struct {
	Name     string
	Homepage string
	URL      string
	Git      string
}

// Variant is a declared, user-selectable build option. A variant with a
// non-empty Values list is an enumerated string option; otherwise it is a
// boolean toggle.
type Variant struct {
	Name        string
	Description string
	Default     cty.Value
	Values      []string
}

// Enumerated reports whether the variant is constrained to a value set.
func (v *Variant) Enumerated() bool {
	return len(v.Values) > 0
}

// allows reports whether val is inside the variant's value constraint.
func (v *Variant) allows(val string) bool {
	for _, allowed := range v.Values {
		if val == allowed {
			return true
		}
	}
	return false
}

// Dependency is a declared requirement of the fixture, in declaration
// order. The surrounding package tooling resolves and satisfies these;
// this component only carries the declarations.
type Dependency struct {
	// Spec is the requirement expression, e.g. "esmf@8.6.1:".
	Spec string
	// Type restricts the dependency to phases such as "build" or "run".
	// Empty means both.
	Type []string
	// When conditions the dependency on a variant or compiler selection.
	When string
}

// Toolchain describes the resolved compiler and dependency selection the
// recipe was configured against. It is read-only input to the resolver.
type Toolchain struct {
	// Compiler is the compiler family name (gcc, clang, apple-clang, ...).
	Compiler string
	// FC is the Fortran compiler executable, used for version probing.
	FC string
	// ESMFCMakeDir is the ESMF-provided CMake module directory, forwarded
	// verbatim as the module-path define.
	ESMFCMakeDir string
	// MPI is the concrete provider satisfying the MPI dependency.
	MPI MPISelection
}

// MPISelection identifies the concrete MPI implementation.
type MPISelection struct {
	Provider string
	Prefix   string
}

// Values is the effective variant assignment for one build invocation,
// immutable once computed.
type Values map[string]cty.Value

// Bool returns the boolean value of a variant, or false when the variant
// is absent or not a boolean.
func (vs Values) Bool(name string) bool {
	v, ok := vs[name]
	if !ok || !v.Type().Equals(cty.Bool) || v.IsNull() {
		return false
	}
	return v.True()
}

// String returns the string value of a variant, or "" when the variant is
// absent or not a string.
func (vs Values) String(name string) string {
	v, ok := vs[name]
	if !ok || !v.Type().Equals(cty.String) || v.IsNull() {
		return ""
	}
	return v.AsString()
}

// EffectiveVariants starts from each declared variant's default and applies
// the given textual overrides on top. Overrides naming an undeclared
// variant, a value outside an enumerated variant's constraint, or an
// unparsable boolean are rejected.
func (m *Model) EffectiveVariants(overrides map[string]string) (Values, error) {
	values := make(Values, len(m.Variants))
	for name, variant := range m.Variants {
		values[name] = variant.Default
	}

	for name, raw := range overrides {
		variant, ok := m.Variants[name]
		if !ok {
			return nil, fmt.Errorf("unknown variant %q", name)
		}
		val, err := variant.parse(raw)
		if err != nil {
			return nil, err
		}
		values[name] = val
	}

	return values, nil
}

// parse converts a textual override into a typed variant value.
func (v *Variant) parse(raw string) (cty.Value, error) {
	if v.Enumerated() {
		if !v.allows(raw) {
			return cty.NilVal, fmt.Errorf(
				"variant %q does not allow value %q (allowed: %v)", v.Name, raw, v.Values)
		}
		return cty.StringVal(raw), nil
	}

	switch raw {
	case "true", "on", "yes":
		return cty.True, nil
	case "false", "off", "no":
		return cty.False, nil
	}
	return cty.NilVal, fmt.Errorf("variant %q expects a boolean, got %q", v.Name, raw)
}
