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
Package hookkernel is a plugin dispatch kernel: it lets a host declare
named extension points ("hook specs") and lets plugins register
implementations ("impls") for them, either directly or through a
PluginSource. At call time the kernel selects the eligible impls for a
hook, orders them deterministically by priority, invokes each with
validated arguments, and reduces their return values through a named
collection strategy.

Kernels are process-wide singletons keyed by project name:

    k := hookkernel.New("myapp")

A hook spec is declared once, with an explicit signature (Go cannot
recover parameter names from a func value the way a dynamic host
language can, so the signature is spelled out alongside the callable):

    k.RegisterSpec(&spec.HookSpec{
        Name:     "Greet",
        Sig:      signature.New("name"),
        Strategy: strategy.All,
    })

Plugins attach impls the same explicit way, then register themselves:

    greeter := impl.NewSync("Greet", signature.New("name"), func(ctx context.Context, args impl.Args) (any, error) {
        return fmt.Sprintf("hello, %v", args["name"]), nil
    })

    k.Register(myPlugin{impls: []*impl.Wrapper{greeter}})

Dispatching a hook runs every eligible impl in canonical priority order
and reduces their outcomes per the hook's strategy:

    result, err := k.Dispatch(ctx, "Greet", impl.Args{"name": "world"})

# Plugin ordering

Plugins are ordered by an immutable (declaredPriority, batch, sub) key
assigned at registration time (see registry.PriorityKey): a plugin that
implements registry.Prioritized controls its own declaredPriority,
otherwise it defaults to its registration batch index. Within one
Register call, relative order is preserved via the sub-index.

# Result strategies

A hook's Strategy is either one of the 20 named variants in package
strategy (ALL, FIRST, FIRST_AVAIL, SINGLE, TRY_ counterparts of the
scalar-returning ones, ...)
or an opaque strategy.Reducer that owns execution of the not-yet-invoked
candidate list itself.

# Sync and async

A hook spec and an impl each separately declare sync or async. Go has no
native async/await, so an "async" impl is one whose signature returns a
channel of exactly one impl.Outcome rather than a direct (any, error)
pair; package dispatch bridges all four sync/async combinations,
including running a sync-spec dispatch against an async impl inside a
kernel-owned bridge (see dispatch/bridge.go).
*/
package hookkernel
