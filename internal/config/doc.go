// Package config defines the format-agnostic model of a build recipe: the
// fixture being built, its declared variants, and the resolved toolchain.
// The model is the single source of truth for the resolve and pipeline
// packages. Concrete loaders, such as the HCL one, live in separate
// packages behind the Loader interface.
package config
