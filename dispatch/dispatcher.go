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

// Package dispatch is the core engine: for a given hook it enumerates
// eligible impls in canonical order, invokes them, applies the hook's
// result strategy, and bridges sync/async execution uniformly.
package dispatch

import (
	"context"
	"fmt"
	"sync"

	"github.com/thediveo/hookkernel/diag"
	"github.com/thediveo/hookkernel/errs"
	"github.com/thediveo/hookkernel/impl"
	"github.com/thediveo/hookkernel/registry"
	"github.com/thediveo/hookkernel/signature"
	"github.com/thediveo/hookkernel/spec"
	"github.com/thediveo/hookkernel/strategy"
)

// RoutingKey is the reserved Args key that targets SINGLE/TRY_SINGLE. It
// is stripped from the kwargs before any impl observes them and is a
// silent no-op for every other strategy.
const RoutingKey = "__plugin"

// Dispatcher binds a Registry and a spec Table and drives hook invocation.
type Dispatcher struct {
	registry *registry.Registry
	specs    *spec.Table
	diag     diag.Sink

	warnedMu sync.Mutex
	warned   map[string]bool // hook names that already fired sync-impl-on-async-spec
}

// New returns a Dispatcher over reg and specs, emitting diagnostics to
// sink (use diag.Nop{} to discard them).
func New(reg *registry.Registry, specs *spec.Table, sink diag.Sink) *Dispatcher {
	if sink == nil {
		sink = diag.Nop{}
	}
	return &Dispatcher{registry: reg, specs: specs, diag: sink, warned: map[string]bool{}}
}

// Dispatch invokes hookName with args and returns the strategy-reduced
// result. It resolves the spec, erases the receiver slot, extracts the
// routing key, builds the canonically-ordered candidate list, enforces
// Required, and applies the hook's result strategy.
func (d *Dispatcher) Dispatch(ctx context.Context, hookName string, args impl.Args) (any, error) {
	hs, ok := d.specs.Get(hookName)
	if !ok {
		return nil, &errs.NoSuchHookSpecError{Name: hookName}
	}

	callArgs := make(impl.Args, len(args))
	for k, v := range args {
		callArgs[k] = v
	}
	if hs.Sig.Receiver && len(hs.Sig.Params) > 0 {
		callArgs[hs.Sig.Params[0]] = nil
	}
	routingKey, _ := callArgs[RoutingKey].(string)
	delete(callArgs, RoutingKey)

	candidates := d.eligible(hookName)
	if hs.Required && len(candidates) == 0 {
		return nil, &errs.HookRequiredError{Name: hookName}
	}

	invoke := func(ctx context.Context, c strategy.Candidate) (any, error) {
		return d.invokeOne(ctx, hs, c, callArgs)
	}

	switch st := hs.Strategy.(type) {
	case strategy.Strategy:
		return strategy.Run(ctx, st, hookName, candidates, routingKey, invoke, d.diag)
	case strategy.Reducer:
		calls := make([]strategy.Call, len(candidates))
		for i, c := range candidates {
			c := c
			calls[i] = strategy.Call{
				PluginName: c.PluginName,
				Invoke:     func(ctx context.Context) (any, error) { return invoke(ctx, c) },
			}
		}
		return st(ctx, hookName, calls)
	default:
		return nil, fmt.Errorf("hookkernel: hook %q has no usable result strategy", hookName)
	}
}

// eligible returns, in canonical order, the (pluginName, impl) candidates
// enabled and carrying hookName.
func (d *Dispatcher) eligible(hookName string) []strategy.Candidate {
	enabled := d.registry.ListEnabled()
	out := make([]strategy.Candidate, 0, len(enabled))
	for _, w := range enabled {
		if iw, ok := w.Impls[hookName]; ok {
			out = append(out, strategy.Candidate{PluginName: w.Name, Impl: iw})
		}
	}
	return out
}

// invokeOne runs a single candidate's impl against a HookSpec, bridging
// sync/async mismatches between the two and wrapping any returned error
// as an *errs.ImplFailureError.
func (d *Dispatcher) invokeOne(ctx context.Context, hs *spec.HookSpec, c strategy.Candidate, args impl.Args) (any, error) {
	iw := c.Impl
	if err := signature.Validate(hs.Name, c.PluginName, hs.Sig, iw.Sig); err != nil {
		return nil, err
	}
	if !iw.Async && hs.Async && hs.WarnSync {
		d.warnSyncOnce(hs.Name, c.PluginName)
	}

	var value any
	var err error
	switch {
	case !iw.Async:
		// Sync impl: direct call, regardless of the spec's sync/async-ness.
		value, err = iw.Sync(ctx, args)
	case iw.Async && !hs.Async:
		// Sync spec + async impl: discouraged but supported — await inside
		// a fresh, kernel-owned cooperative run (see bridge.go).
		value, err = bridgeSyncCallsAsync(ctx, iw, args)
	default:
		// Async spec + async impl: awaited directly.
		value, err = awaitAsync(ctx, iw, args)
	}
	if err != nil {
		return nil, &errs.ImplFailureError{Plugin: c.PluginName, Hook: hs.Name, Cause: err}
	}
	return value, nil
}

func (d *Dispatcher) warnSyncOnce(hookName, pluginName string) {
	d.warnedMu.Lock()
	defer d.warnedMu.Unlock()
	if d.warned[hookName] {
		return
	}
	d.warned[hookName] = true
	d.diag.Emit(diag.KindSyncImplOnAsyncSpec, "synchronous impl bound to an async hook", map[string]any{
		"hook":   hookName,
		"plugin": pluginName,
	})
}
