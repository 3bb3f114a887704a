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

// Package spec holds HookSpec and its registration table:
// the per-hook record of name, signature, sync/async-ness, required flag,
// warn-on-sync-impl flag, and result strategy.
package spec

import (
	"sync"

	"github.com/thediveo/hookkernel/errs"
	"github.com/thediveo/hookkernel/signature"
)

// HookSpec is a hook's canonical record, registered exactly once per
// kernel. Strategy is either a strategy.Strategy or a strategy.Reducer;
// the dispatcher fails a dispatch whose Strategy is neither. There is one
// Reducer type for sync and async specs alike, and the dispatcher does not
// check a Reducer against Async.
type HookSpec struct {
	Name     string
	Sig      signature.Signature
	Async    bool
	Required bool
	WarnSync bool
	Strategy any
}

// Table is the per-kernel set of registered HookSpecs.
type Table struct {
	mu    sync.Mutex
	specs map[string]*HookSpec
}

// NewTable returns an empty spec Table.
func NewTable() *Table {
	return &Table{specs: map[string]*HookSpec{}}
}

// Register adds hs to the table. A second registration under the same
// name fails with *errs.DuplicateSpecError.
func (t *Table) Register(hs *HookSpec) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.specs[hs.Name]; ok {
		return &errs.DuplicateSpecError{Name: hs.Name}
	}
	t.specs[hs.Name] = hs
	return nil
}

// Get returns the HookSpec registered under name.
func (t *Table) Get(name string) (*HookSpec, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	hs, ok := t.specs[name]
	return hs, ok
}
