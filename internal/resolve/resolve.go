// Package resolve turns the effective variant set and the resolved
// toolchain into the CMake build directive. Aside from the compiler
// version probe, resolution is a pure function of its inputs: the same
// variants and toolchain always yield the same directive, and the one
// failure mode (an unsupported MPI selection or a failed probe) aborts
// with a ConfigurationError rather than emitting a partial directive.
package resolve

import (
	"context"
	"strings"

	"github.com/esmtools/gcmbuild/internal/compiler"
	"github.com/esmtools/gcmbuild/internal/config"
)

// Variants is the typed view of the recipe's effective variant values.
type Variants struct {
	Debug     bool
	F2py      bool
	ExtData2G bool
	Develop   bool
	BuildType string
}

// VariantsFrom extracts the recognized variants from an effective value
// set. Unrecognized variants are upstream's concern and ignored here.
func VariantsFrom(values config.Values) Variants {
	return Variants{
		Debug:     values.Bool("debug"),
		F2py:      values.Bool("f2py"),
		ExtData2G: values.Bool("extdata2g"),
		Develop:   values.Bool("develop"),
		BuildType: values.String("build_type"),
	}
}

// Define is one -D key/value pair for the CMake command line.
type Define struct {
	Key   string
	Value string
}

// Directive is the resolver's output: the ordered define list plus the
// forwarded build type. It is consumed by a single build invocation.
type Directive struct {
	Defines   []Define
	BuildType string
}

// DefineArgs renders the defines as CMake -D arguments, in directive
// order.
func (d *Directive) DefineArgs() []string {
	args := make([]string, 0, len(d.Defines))
	for _, def := range d.Defines {
		args = append(args, "-D"+def.Key+"="+def.Value)
	}
	return args
}

// Inputs gathers everything the define rules read. The Fortran flags are
// computed once, before the rules run, because the probe may fail.
type Inputs struct {
	Variants     Variants
	Toolchain    *config.Toolchain
	FortranFlags []string
}

// BuildDirective resolves the build directive for the given variant set
// and toolchain, probing the Fortran compiler's version when the compiler
// family requires version-gated flags.
func BuildDirective(ctx context.Context, variants Variants, tc *config.Toolchain, probe compiler.VersionProbe) (*Directive, error) {
	fflags, err := fortranFlags(ctx, tc, probe)
	if err != nil {
		return nil, err
	}

	in := Inputs{Variants: variants, Toolchain: tc, FortranFlags: fflags}

	directive := &Directive{BuildType: variants.BuildType}
	for _, rule := range defineRules {
		def, err := rule.emit(in)
		if err != nil {
			return nil, err
		}
		if def != nil {
			directive.Defines = append(directive.Defines, *def)
		}
	}
	return directive, nil
}

// Flags the GCC Fortran front end needs for the model's legacy sources.
// gfortran 10 turned BOZ literal misuse and argument mismatches into hard
// errors, hence the version gate.
const (
	flagFreeLineLength   = "-ffree-line-length-none"
	flagAllowInvalidBOZ  = "-fallow-invalid-boz"
	flagAllowArgMismatch = "-fallow-argument-mismatch"
)

// fortranFlags computes the compiler-flags list. Non-GCC-compatible
// families get none. A failed probe is a ConfigurationError: guessing the
// strictness level of an unknown gfortran produces confusing mid-compile
// failures, so resolution stops here instead.
func fortranFlags(ctx context.Context, tc *config.Toolchain, probe compiler.VersionProbe) ([]string, error) {
	if !compiler.GCCCompatible(tc.Compiler) {
		return nil, nil
	}

	flags := []string{flagFreeLineLength}
	major, err := probe.MajorVersion(ctx, tc.FC)
	if err != nil {
		return nil, configErrorf("cannot determine %s major version: %v", tc.FC, err)
	}
	if major >= 10 {
		flags = append(flags, flagAllowInvalidBOZ, flagAllowArgMismatch)
	}
	return flags, nil
}

// joinFlags collapses the flag list into the single define value they
// share.
func joinFlags(flags []string) string {
	return strings.Join(flags, " ")
}
