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

/*
Package dynsource discovers and opens .so Go plugins from the filesystem, so
these plugins can register themselves with a Kernel the same way a statically
linked plugin package does from its own init().

Because a dynamically loaded plugin is responsible for registering itself,
Discover never returns entries of its own: it is a loader, not a lister, and
its group argument is ignored (a plugin's init() targets whatever Kernel and
hook names it was built against).

# Important

The build tag/constraint "plugger_dynamic" must be specified when using this
package; otherwise Discover silently loads nothing, since the actual
plugin.Open call lives behind that tag (see pluginopen.go). This keeps the
linker from refusing a statically linked binary merely because the
plugin.Open symbol is referenced.
*/
package dynsource

import (
	"context"
	"os"
	"path/filepath"

	"github.com/thediveo/hookkernel/source"
)

// Source walks a filesystem path opening .so plugins it finds.
type Source struct {
	Path      string
	Recursive bool
}

// New returns a dynsource.Source rooted at path. When recursive is false,
// only the plugins directly within path are opened; subdirectories are not
// descended into.
func New(path string, recursive bool) Source {
	return Source{Path: path, Recursive: recursive}
}

// Discover walks s.Path and opens every .so file found, letting each loaded
// plugin register itself. It always returns a nil entry list.
func (s Source) Discover(ctx context.Context, group string) ([]source.Entry, error) {
	err := filepath.Walk(s.Path, func(path string, info os.FileInfo, err error) error {
		return s.walked(path, info, err)
	})
	return nil, err
}

// walked is split out from Discover so it can be exercised directly in
// tests without a real plugin .so on disk.
func (s Source) walked(path string, info os.FileInfo, err error) error {
	if info != nil {
		if info.IsDir() {
			if !s.Recursive && path != s.Path {
				return filepath.SkipDir
			}
		} else if filepath.Ext(info.Name()) == ".so" {
			err = pluginOpen(path)
		}
	}
	return err
}

// pluginOpen is wired to the real plugin.Open only under the
// plugger_dynamic build tag (see pluginopen.go); otherwise it is a no-op so
// that statically linked binaries never have to reference the plugin
// package's Open symbol.
var pluginOpen = func(path string) error { return nil }
