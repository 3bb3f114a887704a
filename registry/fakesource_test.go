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

package registry_test

import (
	"context"

	"github.com/thediveo/hookkernel/source"
)

type entry struct {
	name string
	obj  any
}

// fakeSource is a minimal source.Source stub for exercising RegisterFrom
// without a real package-ecosystem loader.
type fakeSource struct {
	entries []entry
}

func (f fakeSource) Discover(ctx context.Context, group string) ([]source.Entry, error) {
	out := make([]source.Entry, len(f.entries))
	for i, e := range f.entries {
		out[i] = source.Entry{Name: e.name, Object: e.obj}
	}
	return out, nil
}

func contextTODO() context.Context {
	return context.TODO()
}
