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

// Package registry is the ordered, insertion-stable set of registered
// plugins: naming, enable/disable, scoped snapshot/restore, and lookup in
// canonical execution order.
//
// The sort-on-read idiom here — mutations just mark the registry dirty,
// and the next read re-sorts once — keyed on PriorityKey instead of name
// plus relative placement strings.
package registry

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"golang.org/x/exp/slices"

	"github.com/thediveo/hookkernel/errs"
	"github.com/thediveo/hookkernel/impl"
	"github.com/thediveo/hookkernel/source"
)

// Versioned is implemented by a plugin object that wants to report an
// optional version string.
type Versioned interface {
	Version() string
}

// Registry is the insertion-ordered set of registered plugins, keyed by
// name, plus the auxiliary batch counter.
type Registry struct {
	mu      sync.Mutex
	plugins map[string]*Wrapper
	order   []*Wrapper // re-sorted lazily, see dirty
	dirty   bool
	batch   int
}

// New returns an empty PluginRegistry.
func New() *Registry {
	return &Registry{plugins: map[string]*Wrapper{}}
}

// Register registers one or more plugin objects as a single batch: all
// objects passed to one Register call share a batch index, with their
// relative order preserved via a per-call sub-index.
//
// A plugin object may be:
//   - a Factory, always instantiated once with no arguments;
//   - any other value, registered as-is.
//
// Registering the identical object a second time under the name it already
// holds is a silent no-op; registering a different object under an
// existing name fails with *errs.DuplicatePluginNameError.
func (r *Registry) Register(objs ...any) error {
	return r.registerBatch(objs, "")
}

// RegisterFrom pulls (name, object) pairs from a Source for the given
// group and registers each, setting its discovered name so it dominates
// the object's own name opinion. only, if non-empty, restricts
// registration to those entry names.
func (r *Registry) RegisterFrom(ctx context.Context, src source.Source, group string, only ...string) error {
	entries, err := src.Discover(ctx, group)
	if err != nil {
		return fmt.Errorf("hookkernel: discovering plugins for group %q: %w", group, err)
	}
	allow := map[string]bool{}
	for _, n := range only {
		allow[n] = true
	}
	r.mu.Lock()
	batch := r.batch
	r.batch++
	r.mu.Unlock()
	for i, e := range entries {
		if len(allow) > 0 && !allow[e.Name] {
			continue
		}
		if err := r.registerOne(e.Object, e.Name, batch, i); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) registerBatch(objs []any, forcedName string) error {
	r.mu.Lock()
	batch := r.batch
	r.batch++
	r.mu.Unlock()
	for i, obj := range objs {
		if err := r.registerOne(obj, forcedName, batch, i); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) registerOne(obj any, discoveredName string, batch, sub int) error {
	if f, ok := obj.(Factory); ok {
		obj = f()
	}
	name := resolveName(obj, discoveredName)
	if name == "" {
		return fmt.Errorf("hookkernel: cannot resolve a name for plugin %T", obj)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.plugins[name]; ok {
		// values of an uncomparable type are never identical; comparing
		// them with == would panic.
		if reflect.TypeOf(obj).Comparable() && existing.Raw == obj {
			return nil // identical object re-registered: no-op
		}
		return &errs.DuplicatePluginNameError{Name: name}
	}

	w := &Wrapper{
		Name:    name,
		Raw:     obj,
		Enabled: true,
		Key:     PriorityKey{DeclaredPriority: declaredPriority(obj, batch), Batch: batch, Sub: sub},
		Impls:   map[string]*impl.Wrapper{},
	}
	if v, ok := obj.(Versioned); ok {
		w.Version = v.Version()
	}
	if p, ok := obj.(ImplProvider); ok {
		for _, iw := range p.Impls() {
			iw.Plugin = name
			w.Impls[iw.HookName] = iw
		}
	}
	r.plugins[name] = w
	r.dirty = true
	return nil
}

func declaredPriority(obj any, batch int) int {
	if p, ok := obj.(Prioritized); ok {
		return p.Priority()
	}
	return batch
}

// Enable flips the enabled bit on for the named plugins.
func (r *Registry) Enable(names ...string) error {
	return r.setEnabled(true, names)
}

// Disable flips the enabled bit off for the named plugins.
func (r *Registry) Disable(names ...string) error {
	return r.setEnabled(false, names)
}

func (r *Registry) setEnabled(enabled bool, names []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, name := range names {
		w, ok := r.plugins[name]
		if !ok {
			return &errs.NoSuchPluginError{Name: name}
		}
		w.Enabled = enabled
	}
	return nil
}

// Get returns the wrapper registered under name.
func (r *Registry) Get(name string) (*Wrapper, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.plugins[name]
	return w, ok
}

// ListAll returns all registered plugins in canonical order.
func (r *Registry) ListAll() []*Wrapper {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reorderLocked()
	out := make([]*Wrapper, len(r.order))
	copy(out, r.order)
	return out
}

// ListEnabled returns the enabled subset of ListAll, still in canonical
// order.
func (r *Registry) ListEnabled() []*Wrapper {
	all := r.ListAll()
	out := make([]*Wrapper, 0, len(all))
	for _, w := range all {
		if w.Enabled {
			out = append(out, w)
		}
	}
	return out
}

// EnabledNames returns the set of currently enabled plugin names.
func (r *Registry) EnabledNames() map[string]bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]bool, len(r.plugins))
	for name, w := range r.plugins {
		if w.Enabled {
			out[name] = true
		}
	}
	return out
}

func (r *Registry) reorderLocked() {
	if !r.dirty {
		return
	}
	order := make([]*Wrapper, 0, len(r.plugins))
	for _, w := range r.plugins {
		order = append(order, w)
	}
	slices.SortFunc(order, func(a, b *Wrapper) int {
		switch {
		case a.Key.Less(b.Key):
			return -1
		case b.Key.Less(a.Key):
			return 1
		default:
			return 0
		}
	})
	r.order = order
	r.dirty = false
}
