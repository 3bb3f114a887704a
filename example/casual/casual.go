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

// Package casual is an example plugin at the default priority, so it runs
// after formal's negative-priority greeter.
package casual

import (
	"context"

	"github.com/thediveo/hookkernel/example/hooks"
	"github.com/thediveo/hookkernel/impl"
	"github.com/thediveo/hookkernel/signature"
)

type plugin struct{}

func (plugin) PluginName() string { return "casual" }

func (plugin) Impls() []*impl.Wrapper {
	return []*impl.Wrapper{
		impl.NewSync("Greet", signature.New("who"), func(ctx context.Context, args impl.Args) (any, error) {
			return "Hey, " + args["who"].(string) + "!", nil
		}),
	}
}

func init() {
	_ = hooks.Kernel().Register(plugin{})
}
