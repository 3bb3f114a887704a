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

package hookkernel

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/thediveo/hookkernel/diag"
	"github.com/thediveo/hookkernel/errs"
	"github.com/thediveo/hookkernel/impl"
	"github.com/thediveo/hookkernel/registry"
	"github.com/thediveo/hookkernel/signature"
	"github.com/thediveo/hookkernel/spec"
	"github.com/thediveo/hookkernel/strategy"
)

type greeter struct {
	name     string
	priority int
	greeting string
}

func (g greeter) PluginName() string { return g.name }
func (g greeter) Priority() int      { return g.priority }
func (g greeter) Impls() []*impl.Wrapper {
	return []*impl.Wrapper{
		impl.NewSync("Greet", signature.New("who"), func(ctx context.Context, args impl.Args) (any, error) {
			return g.greeting + ", " + args["who"].(string), nil
		}),
	}
}

var _ = Describe("Kernel identity", func() {
	BeforeEach(func() { reset() })

	It("returns the same Kernel for repeated calls with the same name", func() {
		a := New("demo")
		b := New("demo")
		Expect(a).To(BeIdenticalTo(b))
	})

	It("mints sequential anonymous project names", func() {
		a := New("")
		b := New("")
		Expect(a.Name).To(Equal("project-0"))
		Expect(b.Name).To(Equal("project-1"))
	})

	It("only applies options the first time a name is constructed", func() {
		first := New("withopts", WithDiagnostics(countingKernelSink{}))
		again := New("withopts", WithDiagnostics(countingKernelSink{}))
		Expect(first).To(BeIdenticalTo(again))
	})
})

var _ = Describe("Kernel end to end", func() {
	BeforeEach(func() { reset() })

	It("wires spec, registry and dispatch together", func() {
		k := New("e2e")
		Expect(k.RegisterSpec(&spec.HookSpec{
			Name: "Greet", Sig: signature.New("who"), Strategy: strategy.All,
		})).To(Succeed())

		Expect(k.Register(
			greeter{name: "formal", priority: -1, greeting: "Good day"},
			greeter{name: "casual", priority: 0, greeting: "Hey"},
		)).To(Succeed())

		res, err := k.Dispatch(context.Background(), "Greet", impl.Args{"who": "Ann"})
		Expect(err).NotTo(HaveOccurred())
		Expect(res).To(Equal([]any{"Good day, Ann", "Hey, Ann"}))
	})

	It("honors Enable/Disable when dispatching", func() {
		k := New("e2e-disable")
		Expect(k.RegisterSpec(&spec.HookSpec{
			Name: "Greet", Sig: signature.New("who"), Strategy: strategy.All,
		})).To(Succeed())
		Expect(k.Register(
			greeter{name: "formal", priority: 0, greeting: "Good day"},
			greeter{name: "casual", priority: 1, greeting: "Hey"},
		)).To(Succeed())
		Expect(k.Disable("casual")).To(Succeed())

		res, err := k.Dispatch(context.Background(), "Greet", impl.Args{"who": "Ann"})
		Expect(err).NotTo(HaveOccurred())
		Expect(res).To(Equal([]any{"Good day, Ann"}))
	})

	It("restores enabled state after Scoped even on a dispatch path", func() {
		k := New("e2e-scoped")
		Expect(k.RegisterSpec(&spec.HookSpec{
			Name: "Greet", Sig: signature.New("who"), Strategy: strategy.All,
		})).To(Succeed())
		Expect(k.Register(
			greeter{name: "formal", priority: 0, greeting: "Good day"},
			greeter{name: "casual", priority: 1, greeting: "Hey"},
		)).To(Succeed())

		var duringRes any
		err := k.Scoped(registry.Only("formal"), func() error {
			var derr error
			duringRes, derr = k.Dispatch(context.Background(), "Greet", impl.Args{"who": "Ann"})
			return derr
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(duringRes).To(Equal([]any{"Good day, Ann"}))

		after, err := k.Dispatch(context.Background(), "Greet", impl.Args{"who": "Ann"})
		Expect(err).NotTo(HaveOccurred())
		Expect(after).To(Equal([]any{"Good day, Ann", "Hey, Ann"}))
	})

	It("surfaces NoSuchPluginError from Enable on an unknown name", func() {
		k := New("e2e-noplugin")
		err := k.Enable("ghost")
		var notFound *errs.NoSuchPluginError
		Expect(errors.As(err, &notFound)).To(BeTrue())
	})

	It("lists registered plugins via Plugin/Plugins in canonical order", func() {
		k := New("e2e-list")
		Expect(k.Register(
			greeter{name: "formal", priority: -1, greeting: "Good day"},
			greeter{name: "casual", priority: 0, greeting: "Hey"},
		)).To(Succeed())

		all := k.Plugins()
		Expect(all).To(HaveLen(2))
		Expect(all[0].Name).To(Equal("formal"))
		Expect(all[1].Name).To(Equal("casual"))

		w, ok := k.Plugin("casual")
		Expect(ok).To(BeTrue())
		Expect(w.Name).To(Equal("casual"))
	})
})

type countingKernelSink struct{}

func (countingKernelSink) Emit(kind diag.Kind, message string, context map[string]any) {}
