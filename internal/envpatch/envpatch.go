// Package envpatch edits the environment handed to build subprocesses.
//
// The patch is a value applied to a copied environ slice; the parent
// process environment is never mutated, so two pipeline stages can apply
// the same patch without observing each other.
package envpatch

import (
	"sort"
	"strings"
)

// Patch is a set of environment mutations: names to remove and pairs to set.
type Patch struct {
	Unset []string
	Set   map[string]string
}

// ForBuild returns the patch applied before every configure/build
// invocation. esma_cmake (pulled in through MAPL) falls back to a BASEDIR
// environment variable when the -DBASEDIR cmake argument is absent; the
// name is generic enough that users commonly have it exported for
// unrelated reasons, and a stale value breaks the MAPL build. It must not
// leak into the subprocess.
func ForBuild() Patch {
	return Patch{Unset: []string{"BASEDIR"}}
}

// Apply returns a new environ slice with the patch applied. Unset removes
// every entry for the named variables (a no-op when absent), then Set
// appends the configured pairs in sorted key order so the result is
// deterministic. Applying the same patch twice yields the same slice as
// applying it once.
func (p Patch) Apply(environ []string) []string {
	out := make([]string, 0, len(environ)+len(p.Set))
	for _, entry := range environ {
		if p.drops(entry) {
			continue
		}
		out = append(out, entry)
	}

	keys := make([]string, 0, len(p.Set))
	for k := range p.Set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, k+"="+p.Set[k])
	}
	return out
}

// drops reports whether an environ entry names a variable the patch
// removes. Entries being set are dropped first so Apply stays idempotent.
func (p Patch) drops(entry string) bool {
	name, _, ok := strings.Cut(entry, "=")
	if !ok {
		return false
	}
	for _, u := range p.Unset {
		if name == u {
			return true
		}
	}
	_, resets := p.Set[name]
	return resets
}
