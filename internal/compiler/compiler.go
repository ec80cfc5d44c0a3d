// Package compiler identifies the compiler family and probes the Fortran
// compiler's version. Only the GCC-compatible family matters here: those
// compilers need version-gated strictness relaxations for the legacy
// Fortran in the model source.
package compiler

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/esmtools/gcmbuild/internal/execx"
)

// gccCompatible lists the compiler family names that front a gfortran-style
// Fortran compiler and accept its flags.
var gccCompatible = map[string]bool{
	"gcc":         true,
	"clang":       true,
	"apple-clang": true,
}

// GCCCompatible reports whether the named compiler family takes gfortran
// command-line flags.
func GCCCompatible(family string) bool {
	return gccCompatible[family]
}

// VersionProbe reports the major version of a Fortran compiler.
type VersionProbe interface {
	MajorVersion(ctx context.Context, fc string) (int, error)
}

// DumpVersionProbe asks the compiler itself via `fc -dumpversion`.
type DumpVersionProbe struct {
	Runner execx.Runner
}

// MajorVersion implements VersionProbe.
func (p *DumpVersionProbe) MajorVersion(ctx context.Context, fc string) (int, error) {
	out, err := p.Runner.Output(ctx, execx.Command{Name: fc, Args: []string{"-dumpversion"}})
	if err != nil {
		return 0, fmt.Errorf("probing %s version: %w", fc, err)
	}
	major, err := ParseMajor(out)
	if err != nil {
		return 0, fmt.Errorf("probing %s version: %w", fc, err)
	}
	return major, nil
}

// ParseMajor extracts the leading major version from a dotted version
// string such as "13.2.0".
func ParseMajor(version string) (int, error) {
	version = strings.TrimSpace(version)
	head, _, _ := strings.Cut(version, ".")
	major, err := strconv.Atoi(head)
	if err != nil {
		return 0, fmt.Errorf("malformed compiler version %q", version)
	}
	return major, nil
}
