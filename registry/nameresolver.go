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

package registry

import (
	"reflect"
	"strings"

	"github.com/thediveo/hookkernel/impl"
)

// Named is implemented by a plugin object that wants to report its own
// name explicitly.
type Named interface {
	PluginName() string
}

// Prioritized is implemented by a plugin object that wants to report a
// declared priority (see PriorityKey). Plugins that don't implement this
// get the registration batch index as their declared priority.
type Prioritized interface {
	Priority() int
}

// ImplProvider is implemented by a plugin object that carries one or more
// hook impls. A plugin with no impls is still a valid, inert registration.
type ImplProvider interface {
	Impls() []*impl.Wrapper
}

// resolveName picks a plugin's name, first hit wins:
//
//  1. discovered: the name injected by a PluginSource — overrides the
//     plugin's own opinion whenever it is non-empty.
//  2. obj implementing Named.
//  3. the Go type name of obj, lowercased. Go does not distinguish a
//     function's declared name from its value's runtime type name the way
//     some languages distinguish a class from an instance, so this single
//     step covers both.
func resolveName(obj any, discovered string) string {
	if discovered != "" {
		return discovered
	}
	if n, ok := obj.(Named); ok {
		if name := n.PluginName(); name != "" {
			return name
		}
	}
	t := reflect.TypeOf(obj)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t != nil && t.Name() != "" {
		return strings.ToLower(t.Name())
	}
	return ""
}
