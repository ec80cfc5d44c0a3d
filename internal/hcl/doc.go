// Package hcl implements the config.Loader interface for HCL recipe
// files. It parses the raw blocks into the schema package's structs and
// translates them into the format-agnostic config model, validating the
// recipe along the way.
package hcl
