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

import (
	"fmt"
	"strings"

	"github.com/thediveo/hookkernel/errs"
)

// ScopeSpec describes a Scoped enabled-state mutation. The zero value
// (Mode == ScopeNone) changes nothing.
type ScopeSpec struct {
	Mode ScopeMode
	// Only holds the bare plugin names for ScopeOnly: exactly these are
	// enabled, all others disabled.
	Only []string
	// Add and Remove hold the "+name"/"-name" diff for ScopeDiff: starting
	// from the current enabled state, Add plugins are enabled and Remove
	// plugins are disabled.
	Add    []string
	Remove []string
}

// ScopeMode selects which kind of mutation a ScopeSpec describes.
type ScopeMode int

const (
	ScopeNone ScopeMode = iota
	ScopeOnly
	ScopeDiff
)

// Only builds a ScopeSpec that enables exactly the given names.
func Only(names ...string) ScopeSpec {
	return ScopeSpec{Mode: ScopeOnly, Only: names}
}

// Diff builds a ScopeSpec that adds and removes from the current enabled
// set.
func Diff(add, remove []string) ScopeSpec {
	return ScopeSpec{Mode: ScopeDiff, Add: add, Remove: remove}
}

// ParseScopeSpec parses a sequence of items as either all-bare names
// (-> Only) or all "+name"/"-name" prefixed items (-> Diff). Mixing bare
// and prefixed items in the same sequence is rejected.
func ParseScopeSpec(items []string) (ScopeSpec, error) {
	if len(items) == 0 {
		return ScopeSpec{Mode: ScopeNone}, nil
	}
	prefixed := strings.HasPrefix(items[0], "+") || strings.HasPrefix(items[0], "-")
	for _, it := range items {
		isPrefixed := strings.HasPrefix(it, "+") || strings.HasPrefix(it, "-")
		if isPrefixed != prefixed {
			return ScopeSpec{}, fmt.Errorf("hookkernel: scope spec mixes bare and +/- prefixed names: %v", items)
		}
	}
	if !prefixed {
		return Only(items...), nil
	}
	var add, remove []string
	for _, it := range items {
		switch it[0] {
		case '+':
			add = append(add, it[1:])
		case '-':
			remove = append(remove, it[1:])
		}
	}
	return Diff(add, remove), nil
}

// Scoped applies spec's enabled-state mutation, runs fn, and restores the
// prior enabled state on every exit path from fn — including a panic or an
// error returned by fn. A panic is re-raised after state has been put
// back.
func (r *Registry) Scoped(spec ScopeSpec, fn func() error) (err error) {
	snapshot := r.EnabledNames()
	restore := func() {
		r.mu.Lock()
		for name, w := range r.plugins {
			w.Enabled = snapshot[name]
		}
		r.mu.Unlock()
	}

	if applyErr := r.applyScope(spec); applyErr != nil {
		restore()
		return applyErr
	}

	defer func() {
		restore()
		if p := recover(); p != nil {
			panic(p)
		}
	}()
	return fn()
}

func (r *Registry) applyScope(spec ScopeSpec) error {
	switch spec.Mode {
	case ScopeNone:
		return nil
	case ScopeOnly:
		only := map[string]bool{}
		for _, n := range spec.Only {
			only[n] = true
		}
		r.mu.Lock()
		for name, w := range r.plugins {
			w.Enabled = only[name]
		}
		r.mu.Unlock()
		return nil
	case ScopeDiff:
		for _, n := range spec.Remove {
			if _, ok := r.Get(n); !ok {
				return &errs.NoSuchPluginError{Name: n}
			}
		}
		for _, n := range spec.Add {
			if _, ok := r.Get(n); !ok {
				return &errs.NoSuchPluginError{Name: n}
			}
		}
		r.mu.Lock()
		for _, n := range spec.Remove {
			if w, ok := r.plugins[n]; ok {
				w.Enabled = false
			}
		}
		for _, n := range spec.Add {
			if w, ok := r.plugins[n]; ok {
				w.Enabled = true
			}
		}
		r.mu.Unlock()
		return nil
	}
	return nil
}
