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

// Package diag is the kernel's non-fatal diagnostics transport: a pluggy
// sink receiving (kind, message, context), kept deliberately out of the
// core's error taxonomy. Only two kinds are ever emitted by the core
// itself.
package diag

// Kind identifies a non-fatal diagnostic condition.
type Kind string

const (
	// KindSyncImplOnAsyncSpec fires the first time a synchronous impl is
	// bound to an async hook whose spec has WarnSync enabled.
	KindSyncImplOnAsyncSpec Kind = "sync-impl-on-async-spec"
	// KindSingleWithoutTarget fires when a SINGLE/TRY_SINGLE dispatch has
	// no routing key and falls back to the last eligible impl.
	KindSingleWithoutTarget Kind = "single-without-target"
)

// Sink receives diagnostics. context carries free-form structured detail,
// e.g. {"hook": name, "plugin": name}.
type Sink interface {
	Emit(kind Kind, message string, context map[string]any)
}

// Nop discards every diagnostic; it is the Kernel's default Sink.
type Nop struct{}

// Emit implements Sink.
func (Nop) Emit(Kind, string, map[string]any) {}
