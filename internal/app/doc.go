// Package app wires the application together: logger, recipe loading,
// variant resolution, and the build pipeline.
package app
