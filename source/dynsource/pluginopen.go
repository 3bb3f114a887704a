//go:build plugger_dynamic

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

package dynsource

import "plugin"

// This "plugs in" the real plugin.Open only when the plugger_dynamic build
// tag is specified, keeping the Go linker happy when building a static
// binary that never references plugin.Open at all.
func init() {
	pluginOpen = func(path string) error {
		_, err := plugin.Open(path)
		return err
	}
}
