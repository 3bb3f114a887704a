// Copyright 2024 The hookkernel authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package registry

import "github.com/thediveo/hookkernel/impl"

// PriorityKey is the sortable triple that determines canonical dispatch
// order. Lower keys execute first. A negative DeclaredPriority
// places a plugin before the defaults. Sub disambiguates plugins that
// share the same (DeclaredPriority, Batch) pair: it is the plugin's index
// within its own registration batch.
type PriorityKey struct {
	DeclaredPriority int
	Batch            int
	Sub              int
}

// Less reports whether k sorts strictly before o.
func (k PriorityKey) Less(o PriorityKey) bool {
	if k.DeclaredPriority != o.DeclaredPriority {
		return k.DeclaredPriority < o.DeclaredPriority
	}
	if k.Batch != o.Batch {
		return k.Batch < o.Batch
	}
	return k.Sub < o.Sub
}

// Factory is the Go stand-in for registering a "type/class" instead of an
// instance: a Factory is always a zero-argument constructor by
// construction, so the registry always calls it once at
// registration time and stores the resulting instance in place of the
// factory. A plugin is either an instance (registered as-is) or a Factory
// (always instantiated) — there is no separate opt-in flag, since Go
// statically knows which case it is.
type Factory func() any

// Wrapper wraps a registered plugin object: its resolved name, enabled
// flag, priority key, and the impls it carries keyed by hook name.
type Wrapper struct {
	Name    string
	Raw     any
	Enabled bool
	Key     PriorityKey
	Impls   map[string]*impl.Wrapper
	Version string
}

// HasImpl reports whether the plugin carries an impl for hookName.
func (w *Wrapper) HasImpl(hookName string) bool {
	_, ok := w.Impls[hookName]
	return ok
}
