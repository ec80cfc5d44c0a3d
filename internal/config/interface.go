package config

import "context"

// Loader is the interface for a format-specific recipe loader.
type Loader interface {
	// Load reads the recipe from a file or directory, translates it into
	// the format-agnostic model, and validates it.
	Load(ctx context.Context, path string) (*Model, error)
}
