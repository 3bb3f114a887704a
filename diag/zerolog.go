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

package diag

import "github.com/rs/zerolog"

// Zerolog is a ready-made Diagnostics sink, grounded on the
// zerolog-backed plugin-registry logging seen in the retrieval pack. It is
// not the Kernel's default (that is Nop); a Kernel uses it only when it is
// given through hookkernel.WithDiagnostics. Every
// diagnostic is logged at warn level since both kinds the core emits
// (sync-impl-on-async-spec, single-without-target) are host-actionable but
// non-fatal.
type Zerolog struct {
	Logger zerolog.Logger
}

// NewZerolog wraps an existing zerolog.Logger as a Sink.
func NewZerolog(logger zerolog.Logger) Zerolog {
	return Zerolog{Logger: logger}
}

// Emit implements Sink.
func (z Zerolog) Emit(kind Kind, message string, context map[string]any) {
	evt := z.Logger.Warn().Str("kind", string(kind))
	for k, v := range context {
		evt = evt.Interface(k, v)
	}
	evt.Msg(message)
}
