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

// Package signature models the ordered parameter-name list of a hook spec
// or impl, and the equality rule used to validate impls against their spec.
//
// Go erases parameter names at compile time, so a Signature cannot be
// recovered by reflecting over a func value the way a dynamic language
// could recover them from a callable's own metadata. Instead the host
// declares it explicitly, alongside the callable, when it builds a
// [hookkernel] HookSpec or impl: the binding of a name and a signature to
// a callable is still enforced here, just not auto-derived.
package signature

import "github.com/thediveo/hookkernel/errs"

// Signature is the ordered sequence of a hook's or impl's parameter names.
// Equality is ordered list equality over names only: types, defaults and
// positional/keyword kind are not part of a Signature.
type Signature struct {
	// Params is the full ordered parameter-name list, receiver included if
	// Receiver is true.
	Params []string
	// Receiver marks that Params[0] is a receiver parameter, always
	// delivered as nil at dispatch and erased from equality comparisons.
	Receiver bool
}

// New builds a Signature from an ordered parameter-name list.
func New(params ...string) Signature {
	return Signature{Params: append([]string(nil), params...)}
}

// WithReceiver returns a copy of s with the receiver flag set. The first
// entry of Params is treated as the receiver parameter.
func (s Signature) WithReceiver() Signature {
	s.Receiver = true
	return s
}

// erased returns the parameter names with any receiver stripped.
func (s Signature) erased() []string {
	if s.Receiver && len(s.Params) > 0 {
		return s.Params[1:]
	}
	return s.Params
}

// Equal reports whether s and o denote the same ordered parameter-name
// sequence once any receiver has been erased from both.
func (s Signature) Equal(o Signature) bool {
	a, b := s.erased(), o.erased()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Validate compares impl against spec and returns a *errs.SignatureMismatchError
// if they diverge after receiver erasure. specName and implName are used only
// to annotate the error.
func Validate(specName, implName string, spec, impl Signature) error {
	if spec.Equal(impl) {
		return nil
	}
	return &errs.SignatureMismatchError{
		SpecName: specName,
		ImplName: implName,
		Expected: spec.erased(),
		Got:      impl.erased(),
	}
}
