// Translation from the HCL schema structs into the format-agnostic config
// model, including per-block validation.

package hcl

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/esmtools/gcmbuild/internal/config"
	"github.com/esmtools/gcmbuild/internal/schema"
)

// mergeFile folds one decoded recipe file into the model under
// construction. Fixture and toolchain are single-occurrence blocks across
// the whole recipe; variants accumulate.
func (l *Loader) mergeFile(model *config.Model, parsed *schema.RecipeFile, filePath string) error {
	if parsed.Fixture != nil {
		if model.Fixture != nil {
			return fmt.Errorf("duplicate fixture block in %s (fixture %q already declared)", filePath, model.Fixture.Name)
		}
		model.Fixture = translateFixture(parsed.Fixture)
	}

	if parsed.Toolchain != nil {
		if model.Toolchain != nil {
			return fmt.Errorf("duplicate toolchain block in %s", filePath)
		}
		model.Toolchain = translateToolchain(parsed.Toolchain)
	}

	for _, d := range parsed.Dependencies {
		model.Dependencies = append(model.Dependencies, &config.Dependency{
			Spec: d.Spec,
			Type: d.Type,
			When: d.When,
		})
	}

	for _, v := range parsed.Variants {
		if _, exists := model.Variants[v.Name]; exists {
			return fmt.Errorf("duplicate variant %q in %s", v.Name, filePath)
		}
		variant, err := translateVariant(v)
		if err != nil {
			return fmt.Errorf("in %s: %w", filePath, err)
		}
		model.Variants[v.Name] = variant
	}

	return nil
}

func translateFixture(s *schema.Fixture) *config.Fixture {
	return &config.Fixture{
		Name:     s.Name,
		Homepage: s.Homepage,
		URL:      s.URL,
		Git:      s.Git,
	}
}

func translateToolchain(s *schema.Toolchain) *config.Toolchain {
	tc := &config.Toolchain{
		Compiler:     s.Compiler,
		FC:           s.FC,
		ESMFCMakeDir: s.ESMFCMakeDir,
	}
	if s.MPI != nil {
		tc.MPI = config.MPISelection{Provider: s.MPI.Provider, Prefix: s.MPI.Prefix}
	}
	return tc
}

// translateVariant validates a variant declaration: an enumerated variant
// needs a string default inside its value set, a plain variant needs a
// boolean default.
func translateVariant(s *schema.Variant) (*config.Variant, error) {
	if s.Default == nil || s.Default.IsNull() {
		return nil, fmt.Errorf("variant %q has no default value", s.Name)
	}
	def := *s.Default

	variant := &config.Variant{
		Name:        s.Name,
		Description: s.Description,
		Default:     def,
		Values:      s.Values,
	}

	if variant.Enumerated() {
		if !def.Type().Equals(cty.String) {
			return nil, fmt.Errorf("variant %q is enumerated, its default must be a string", s.Name)
		}
		if !containsString(s.Values, def.AsString()) {
			return nil, fmt.Errorf("variant %q default %q is outside its allowed values %v", s.Name, def.AsString(), s.Values)
		}
		return variant, nil
	}

	if !def.Type().Equals(cty.Bool) {
		return nil, fmt.Errorf("variant %q must have a boolean default", s.Name)
	}
	return variant, nil
}

func containsString(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
