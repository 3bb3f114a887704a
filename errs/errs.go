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

// Package errs holds the kernel's error taxonomy, shared across the
// registry, spec, strategy and dispatch packages so none of them need to
// import each other just to compare error kinds. Every error here is a
// pointer-to-struct type meant to be matched with errors.As; there are no
// sentinel values. ImplFailureError additionally unwraps to its Cause.
package errs

import "fmt"

// NoSuchPluginError is returned when Enable/Disable or a Scoped +/- diff
// targets a plugin name that was never registered.
type NoSuchPluginError struct {
	Name string
}

func (e *NoSuchPluginError) Error() string {
	return fmt.Sprintf("hookkernel: no such plugin %q", e.Name)
}

// DuplicatePluginNameError is returned when Register is given a different
// object under a name that is already taken. Re-registering the identical
// object is not an error; see registry.Registry.Register.
type DuplicatePluginNameError struct {
	Name string
}

func (e *DuplicatePluginNameError) Error() string {
	return fmt.Sprintf("hookkernel: plugin name %q already registered by a different object", e.Name)
}

// NoSuchHookSpecError is returned when Dispatch is called for a hook name
// with no registered HookSpec.
type NoSuchHookSpecError struct {
	Name string
}

func (e *NoSuchHookSpecError) Error() string {
	return fmt.Sprintf("hookkernel: no such hook spec %q", e.Name)
}

// DuplicateSpecError is returned by the spec table when the same hook name
// is registered twice.
type DuplicateSpecError struct {
	Name string
}

func (e *DuplicateSpecError) Error() string {
	return fmt.Sprintf("hookkernel: hook spec %q already registered", e.Name)
}

// SignatureMismatchError is returned by a dispatch that reaches an impl
// whose parameter names diverge from its hook's canonical signature. The
// check runs on every such dispatch; registering a plugin does not check
// its impls against already-registered specs.
type SignatureMismatchError struct {
	SpecName string
	ImplName string
	Expected []string
	Got      []string
}

func (e *SignatureMismatchError) Error() string {
	return fmt.Sprintf("hookkernel: signature mismatch for hook %q, impl %q: expected %v, got %v",
		e.SpecName, e.ImplName, e.Expected, e.Got)
}

// HookRequiredError is returned when a HookSpec with Required=true has no
// enabled impl at dispatch time.
type HookRequiredError struct {
	Name string
}

func (e *HookRequiredError) Error() string {
	return fmt.Sprintf("hookkernel: hook %q is required but has no enabled impl", e.Name)
}

// ResultUnavailableError is returned by a non-TRY_ strategy when its
// required result is absent: no impl ran, or every outcome was filtered
// away by an _AVAIL reduction.
type ResultUnavailableError struct {
	Name string
}

func (e *ResultUnavailableError) Error() string {
	return fmt.Sprintf("hookkernel: result unavailable for hook %q", e.Name)
}

// ImplFailureError wraps a panic-free error returned by an impl. It aborts
// the dispatch immediately: ImplFailure is never absorbed by a TRY_
// strategy, which only turns an empty outcome into nil.
type ImplFailureError struct {
	Plugin string
	Hook   string
	Cause  error
}

func (e *ImplFailureError) Error() string {
	return fmt.Sprintf("hookkernel: impl failure in plugin %q for hook %q: %v", e.Plugin, e.Hook, e.Cause)
}

func (e *ImplFailureError) Unwrap() error {
	return e.Cause
}
