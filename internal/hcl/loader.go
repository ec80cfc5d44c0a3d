package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/esmtools/gcmbuild/internal/config"
	"github.com/esmtools/gcmbuild/internal/ctxlog"
	"github.com/esmtools/gcmbuild/internal/fsutil"
	"github.com/esmtools/gcmbuild/internal/schema"
)

// Loader is the HCL implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new HCL recipe loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load discovers every .hcl file under path (path may itself be a single
// file), decodes them, and merges them into one validated model.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading recipe.", "path", path)

	files, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to find recipe files in %s: %w", path, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl recipe files found in %s", path)
	}

	model := &config.Model{Variants: map[string]*config.Variant{}}
	parser := hclparse.NewParser()
	for _, file := range files {
		parsed, err := parseRecipeFile(parser, file)
		if err != nil {
			return nil, err
		}
		if err := l.mergeFile(model, parsed, file); err != nil {
			return nil, err
		}
	}

	if err := validate(model); err != nil {
		return nil, err
	}

	logger.Debug("Recipe loaded.",
		"fixture", model.Fixture.Name,
		"variants", len(model.Variants),
		"dependencies", len(model.Dependencies),
		"files", len(files),
	)
	return model, nil
}

// parseRecipeFile parses and decodes a single recipe file.
func parseRecipeFile(parser *hclparse.Parser, filePath string) (*schema.RecipeFile, error) {
	hclFile, diags := parser.ParseHCLFile(filePath)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse recipe file %s: %w", filePath, diags)
	}

	var parsed schema.RecipeFile
	diags = gohcl.DecodeBody(hclFile.Body, nil, &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode recipe file %s: %w", filePath, diags)
	}
	return &parsed, nil
}

// validate checks the merged model for completeness.
func validate(model *config.Model) error {
	if model.Fixture == nil {
		return fmt.Errorf("recipe declares no fixture block")
	}
	if model.Toolchain == nil {
		return fmt.Errorf("recipe declares no toolchain block")
	}
	if model.Toolchain.MPI.Provider == "" {
		return fmt.Errorf("toolchain declares no mpi block")
	}
	return nil
}
