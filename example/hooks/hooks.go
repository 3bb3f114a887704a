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

// Package hooks declares the hook contract the example plugins bind to, kept
// in its own package so plugin packages and the example entrypoint don't
// import each other.
package hooks

import (
	"github.com/thediveo/hookkernel"
	"github.com/thediveo/hookkernel/signature"
	"github.com/thediveo/hookkernel/spec"
	"github.com/thediveo/hookkernel/strategy"
)

// Kernel returns the process-wide kernel the example plugins register into.
func Kernel() *hookkernel.Kernel {
	return hookkernel.New("greeter-example")
}

func init() {
	_ = Kernel().RegisterSpec(&spec.HookSpec{
		Name:     "Greet",
		Sig:      signature.New("who"),
		Strategy: strategy.All,
	})
}
