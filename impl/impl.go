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

// Package impl packages a hook implementation callable with its declared
// hook name, sync/async flag and signature.
//
// Attachment is passive: building a Wrapper only marks a callable as
// belonging to hook name N; it is not yet bound to any plugin. Binding
// happens when a plugin is registered and the registry collects the
// plugin's Wrappers (see package registry).
package impl

import (
	"context"

	"github.com/thediveo/hookkernel/signature"
)

// Args is the keyword-argument bag delivered to an impl at dispatch time,
// keyed by the parameter names of the hook's Signature. When the spec
// declares a receiver, its parameter name is present with a nil value.
// The kernel never inspects positional arguments separately: Go has no
// positional/keyword distinction worth preserving once parameter names are
// explicit, so positional and keyword arguments collapse onto this single
// named bag.
type Args map[string]any

// Outcome is the result of running a single impl: either a value or a
// failure. A nil Value with a nil Err is a legitimate "no opinion" outcome,
// e.g. for FIRST_AVAIL/LAST_AVAIL scanning.
type Outcome struct {
	Value any
	Err   error
}

// SyncFunc is a hook impl that runs to completion before returning.
type SyncFunc func(ctx context.Context, args Args) (any, error)

// AsyncFunc is a hook impl that suspends: it returns immediately with a
// channel that will carry exactly one Outcome once the impl completes or
// the context is cancelled. This is the Go rendition of an awaitable.
type AsyncFunc func(ctx context.Context, args Args) <-chan Outcome

// Wrapper is an attached impl: hook name, sync/async flag, signature,
// the callable itself, and the plugin it came from. It is built once via
// NewSync/NewAsync and never mutated after that; Plugin is filled in by
// the registry when the wrapper is collected from a registered plugin.
type Wrapper struct {
	HookName string
	Async    bool
	Sig      signature.Signature
	Sync     SyncFunc
	AsyncF   AsyncFunc
	Plugin   string
}

// NewSync attaches a synchronous callable to hook name.
func NewSync(hookName string, sig signature.Signature, fn SyncFunc) *Wrapper {
	return &Wrapper{HookName: hookName, Sig: sig, Sync: fn}
}

// NewAsync attaches an asynchronous (channel-returning) callable to hook
// name.
func NewAsync(hookName string, sig signature.Signature, fn AsyncFunc) *Wrapper {
	return &Wrapper{HookName: hookName, Async: true, Sig: sig, AsyncF: fn}
}
