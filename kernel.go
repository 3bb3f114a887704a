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

package hookkernel

import (
	"context"
	"fmt"
	"sync"

	"github.com/thediveo/hookkernel/diag"
	"github.com/thediveo/hookkernel/dispatch"
	"github.com/thediveo/hookkernel/impl"
	"github.com/thediveo/hookkernel/registry"
	"github.com/thediveo/hookkernel/source"
	"github.com/thediveo/hookkernel/spec"
)

// Kernel is the façade binding a PluginRegistry, a HookSpec Table and a
// Dispatcher under one project name. Kernel is a process-wide identity:
// [New] with a previously seen name returns the same instance.
type Kernel struct {
	Name string

	registry   *registry.Registry
	specs      *spec.Table
	dispatcher *dispatch.Dispatcher
	diag       diag.Sink
}

// KernelOption configures a Kernel at construction time, following the
// functional-options idiom.
type KernelOption func(*kernelConfig)

type kernelConfig struct {
	diag diag.Sink
}

// WithDiagnostics sets the Kernel's Diagnostics sink. The default is
// diag.Nop{}, which discards everything.
func WithDiagnostics(sink diag.Sink) KernelOption {
	return func(c *kernelConfig) {
		c.diag = sink
	}
}

var (
	kernelsMu sync.Mutex
	kernels   = map[string]*Kernel{}
	nextAnon  int
)

// New returns the canonical Kernel for projectName, minting it on first
// use. Calling New again with the same name returns the same *Kernel.
// Passing "" mints a fresh name "project-0", "project-1", ... in call
// order. Options only take effect the first time a given name is
// constructed.
func New(projectName string, opts ...KernelOption) *Kernel {
	kernelsMu.Lock()
	defer kernelsMu.Unlock()

	if projectName == "" {
		projectName = fmt.Sprintf("project-%d", nextAnon)
		nextAnon++
	}
	if k, ok := kernels[projectName]; ok {
		return k
	}

	cfg := kernelConfig{diag: diag.Nop{}}
	for _, o := range opts {
		o(&cfg)
	}

	k := &Kernel{
		Name:     projectName,
		registry: registry.New(),
		specs:    spec.NewTable(),
		diag:     cfg.diag,
	}
	k.dispatcher = dispatch.New(k.registry, k.specs, k.diag)
	kernels[projectName] = k
	return k
}

// RegisterSpec submits hs as the canonical HookSpec for its name. A second
// submission under the same name fails with *errs.DuplicateSpecError.
func (k *Kernel) RegisterSpec(hs *spec.HookSpec) error {
	return k.specs.Register(hs)
}

// Register registers one or more plugin objects.
func (k *Kernel) Register(objs ...any) error {
	return k.registry.Register(objs...)
}

// RegisterFrom pulls plugins from src for the given discovery group.
func (k *Kernel) RegisterFrom(ctx context.Context, src source.Source, group string, only ...string) error {
	return k.registry.RegisterFrom(ctx, src, group, only...)
}

// Enable enables the named plugins.
func (k *Kernel) Enable(names ...string) error {
	return k.registry.Enable(names...)
}

// Disable disables the named plugins.
func (k *Kernel) Disable(names ...string) error {
	return k.registry.Disable(names...)
}

// Scoped runs fn with spec's enabled-state mutation applied, restoring the
// prior state on every exit path.
func (k *Kernel) Scoped(spec registry.ScopeSpec, fn func() error) error {
	return k.registry.Scoped(spec, fn)
}

// Plugin returns the wrapper registered under name.
func (k *Kernel) Plugin(name string) (*registry.Wrapper, bool) {
	return k.registry.Get(name)
}

// Plugins returns all registered plugins in canonical dispatch order.
func (k *Kernel) Plugins() []*registry.Wrapper {
	return k.registry.ListAll()
}

// Dispatch invokes hookName with args and returns the strategy-reduced
// result.
func (k *Kernel) Dispatch(ctx context.Context, hookName string, args impl.Args) (any, error) {
	return k.dispatcher.Dispatch(ctx, hookName, args)
}

// reset clears the process-wide kernel identity map. It exists only for
// test isolation between this package's own tests, which each want a fresh
// kernel; it is not part of the public contract used by hosts.
func reset() {
	kernelsMu.Lock()
	defer kernelsMu.Unlock()
	kernels = map[string]*Kernel{}
	nextAnon = 0
}
