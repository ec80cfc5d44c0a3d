// Package schema holds the HCL block structures a recipe file decodes
// into. These structs mirror the on-disk syntax; the hcl package
// translates them into the format-agnostic config model.
package schema

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// Fixture represents the `fixture` block naming the model source tree.
type Fixture struct {
	Name     string `hcl:"name,label"`
	Homepage string `hcl:"homepage,optional"`
	URL      string `hcl:"url,optional"`
	Git      string `hcl:"git,optional"`
}

// Variant represents a `variant` block declaring one build option.
type Variant struct {
	Name        string     `hcl:"name,label"`
	Default     *cty.Value `hcl:"default"`
	Description string     `hcl:"description,optional"`
	Values      []string   `hcl:"values,optional"`
}

// Dependency represents a `dependency` block. Dependencies are declared
// for the surrounding package tooling to resolve; gcmbuild itself only
// records them.
type Dependency struct {
	Spec string   `hcl:"spec,label"`
	Type []string `hcl:"type,optional"`
	When string   `hcl:"when,optional"`
}

// MPI represents the nested `mpi` block of a toolchain.
type MPI struct {
	Provider string `hcl:"provider"`
	Prefix   string `hcl:"prefix,optional"`
}

// Toolchain represents the `toolchain` block describing the compiler and
// dependency selection the build runs against.
type Toolchain struct {
	Compiler     string `hcl:"compiler"`
	FC           string `hcl:"fc"`
	ESMFCMakeDir string `hcl:"esmf_cmake_dir"`
	MPI          *MPI   `hcl:"mpi,block"`
}

// RecipeFile represents the top-level structure of one recipe file. A
// recipe may be split across several files; fixture and toolchain must
// each appear exactly once across the set.
type RecipeFile struct {
	Fixture      *Fixture      `hcl:"fixture,block"`
	Variants     []*Variant    `hcl:"variant,block"`
	Dependencies []*Dependency `hcl:"dependency,block"`
	Toolchain    *Toolchain    `hcl:"toolchain,block"`
	Body         hcl.Body      `hcl:",remain"`
}
