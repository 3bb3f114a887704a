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

package dispatch_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/thediveo/hookkernel/diag"
	"github.com/thediveo/hookkernel/dispatch"
	hkerrs "github.com/thediveo/hookkernel/errs"
	"github.com/thediveo/hookkernel/impl"
	"github.com/thediveo/hookkernel/registry"
	"github.com/thediveo/hookkernel/signature"
	"github.com/thediveo/hookkernel/spec"
	"github.com/thediveo/hookkernel/strategy"
)

// fakePlugin carries a fixed set of impls under a fixed name.
type fakePlugin struct {
	name  string
	impls []*impl.Wrapper
}

func (f fakePlugin) PluginName() string     { return f.name }
func (f fakePlugin) Impls() []*impl.Wrapper { return f.impls }

func recording(calls *[]string, value any) impl.SyncFunc {
	return func(ctx context.Context, args impl.Args) (any, error) {
		*calls = append(*calls, "run")
		return value, nil
	}
}

func setup(reg *registry.Registry, specs *spec.Table, sink diag.Sink) *dispatch.Dispatcher {
	return dispatch.New(reg, specs, sink)
}

var _ = Describe("Dispatcher", func() {

	It("fails on an unknown hook name", func() {
		reg := registry.New()
		specs := spec.NewTable()
		d := setup(reg, specs, nil)
		_, err := d.Dispatch(context.Background(), "Missing", nil)
		var notFound *hkerrs.NoSuchHookSpecError
		Expect(errors.As(err, &notFound)).To(BeTrue())
	})

	It("fails a Required hook with no eligible impls (S4)", func() {
		reg := registry.New()
		specs := spec.NewTable()
		Expect(specs.Register(&spec.HookSpec{Name: "Must", Required: true, Strategy: strategy.All})).To(Succeed())
		d := setup(reg, specs, nil)
		_, err := d.Dispatch(context.Background(), "Must", nil)
		var required *hkerrs.HookRequiredError
		Expect(errors.As(err, &required)).To(BeTrue())
	})

	It("strips the routing key before any impl observes the args", func() {
		reg := registry.New()
		specs := spec.NewTable()
		Expect(specs.Register(&spec.HookSpec{Name: "Greet", Sig: signature.New("name"), Strategy: strategy.All})).To(Succeed())

		var seenArgs impl.Args
		seen := impl.NewSync("Greet", signature.New("name"), func(ctx context.Context, args impl.Args) (any, error) {
			seenArgs = args
			return args["name"], nil
		})
		Expect(reg.Register(fakePlugin{name: "p", impls: []*impl.Wrapper{seen}})).To(Succeed())

		d := setup(reg, specs, nil)
		res, err := d.Dispatch(context.Background(), "Greet", impl.Args{"name": "Ann", dispatch.RoutingKey: "p"})
		Expect(err).NotTo(HaveOccurred())
		Expect(res).To(Equal([]any{"Ann"}))
		_, hasRouting := seenArgs[dispatch.RoutingKey]
		Expect(hasRouting).To(BeFalse())
		Expect(seenArgs["name"]).To(Equal("Ann"))
	})

	It("injects a nil receiver and never asks the caller to supply it", func() {
		reg := registry.New()
		specs := spec.NewTable()
		sig := signature.New("self", "name").WithReceiver()
		Expect(specs.Register(&spec.HookSpec{Name: "Greet", Sig: sig, Strategy: strategy.All})).To(Succeed())

		var seenArgs impl.Args
		iw := impl.NewSync("Greet", sig, func(ctx context.Context, args impl.Args) (any, error) {
			seenArgs = args
			return nil, nil
		})
		Expect(reg.Register(fakePlugin{name: "p", impls: []*impl.Wrapper{iw}})).To(Succeed())

		d := setup(reg, specs, nil)
		_, err := d.Dispatch(context.Background(), "Greet", impl.Args{"name": "Ann"})
		Expect(err).NotTo(HaveOccurred())
		self, ok := seenArgs["self"]
		Expect(ok).To(BeTrue())
		Expect(self).To(BeNil())
	})

	It("rejects an impl whose signature diverges from its spec", func() {
		reg := registry.New()
		specs := spec.NewTable()
		Expect(specs.Register(&spec.HookSpec{Name: "Greet", Sig: signature.New("name"), Strategy: strategy.All})).To(Succeed())

		iw := impl.NewSync("Greet", signature.New("title"), func(ctx context.Context, args impl.Args) (any, error) {
			return nil, nil
		})
		Expect(reg.Register(fakePlugin{name: "p", impls: []*impl.Wrapper{iw}})).To(Succeed())

		d := setup(reg, specs, nil)
		_, err := d.Dispatch(context.Background(), "Greet", impl.Args{"name": "Ann"})
		var mismatch *hkerrs.SignatureMismatchError
		Expect(errors.As(err, &mismatch)).To(BeTrue())
	})

	It("emits sync-impl-on-async-spec exactly once per hook (S6)", func() {
		reg := registry.New()
		specs := spec.NewTable()
		Expect(specs.Register(&spec.HookSpec{
			Name: "Greet", Sig: signature.New("name"), Async: true, WarnSync: true, Strategy: strategy.All,
		})).To(Succeed())

		var calls []string
		syncImpl := impl.NewSync("Greet", signature.New("name"), recording(&calls, "sync"))
		asyncImpl := impl.NewAsync("Greet", signature.New("name"), func(ctx context.Context, args impl.Args) <-chan impl.Outcome {
			ch := make(chan impl.Outcome, 1)
			ch <- impl.Outcome{Value: "async"}
			return ch
		})
		Expect(reg.Register(fakePlugin{name: "sync1", impls: []*impl.Wrapper{syncImpl}})).To(Succeed())
		Expect(reg.Register(fakePlugin{name: "async1", impls: []*impl.Wrapper{asyncImpl}})).To(Succeed())

		sink := &countingSink{}
		d := setup(reg, specs, sink)
		res, err := d.Dispatch(context.Background(), "Greet", impl.Args{"name": "Ann"})
		Expect(err).NotTo(HaveOccurred())
		Expect(res).To(Equal([]any{"sync", "async"}))
		Expect(sink.count).To(Equal(1))

		// dispatching the same hook again must not re-warn.
		_, err = d.Dispatch(context.Background(), "Greet", impl.Args{"name": "Bob"})
		Expect(err).NotTo(HaveOccurred())
		Expect(sink.count).To(Equal(1))
	})

	It("wraps a failing impl as an ImplFailureError", func() {
		reg := registry.New()
		specs := spec.NewTable()
		Expect(specs.Register(&spec.HookSpec{Name: "Greet", Sig: signature.New("name"), Strategy: strategy.All})).To(Succeed())

		iw := impl.NewSync("Greet", signature.New("name"), func(ctx context.Context, args impl.Args) (any, error) {
			return nil, errors.New("boom")
		})
		Expect(reg.Register(fakePlugin{name: "p", impls: []*impl.Wrapper{iw}})).To(Succeed())

		d := setup(reg, specs, nil)
		_, err := d.Dispatch(context.Background(), "Greet", impl.Args{"name": "Ann"})
		var failure *hkerrs.ImplFailureError
		Expect(errors.As(err, &failure)).To(BeTrue())
		Expect(failure.Plugin).To(Equal("p"))
		Expect(failure.Hook).To(Equal("Greet"))
	})
})

type countingSink struct {
	count int
}

func (c *countingSink) Emit(kind diag.Kind, message string, context map[string]any) {
	c.count++
}
