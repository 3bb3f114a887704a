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

// Package strategy implements the named result-collection strategies: a
// 3-axis product of scope, reduction and emptiness policy, plus the
// opaque user-reducer contract.
package strategy

import (
	"context"

	"github.com/thediveo/hookkernel/diag"
	"github.com/thediveo/hookkernel/errs"
	"github.com/thediveo/hookkernel/impl"
)

// Scope selects which eligible impls actually run.
type Scope int

const (
	ScopeAll Scope = iota
	ScopeFirst
	ScopeLast
	ScopeFirstAvail
	ScopeLastAvail
	ScopeSingle
)

// Reduction selects how executed outcomes fold into the caller-visible
// value.
type Reduction int

const (
	ReduceList Reduction = iota
	ReduceListAvail
	ReduceFirst
	ReduceLast
	ReduceFirstAvail
	ReduceLastAvail
)

// Emptiness selects what happens when the Reduction has nothing to work
// with: a scalar Reduction finds no candidate result, or ScopeSingle can't
// resolve its target.
type Emptiness int

const (
	EmptinessFail Emptiness = iota
	EmptinessNull
)

// Strategy is a named, built-in result-collection policy: the product of
// a Scope, a Reduction and an Emptiness. See the package-level var block
// for the 20 named instances the design table enumerates.
type Strategy struct {
	Name      string
	Scope     Scope
	Reduction Reduction
	Emptiness Emptiness
}

// The built-in strategies, factored as {scope} x {reduction} x
// {emptiness} rather than 20 independent branches. List-returning
// strategies (ALL, ALL_AVAILS) have no TRY_ counterpart: an empty list is
// already a valid value, never a ResultUnavailable condition.
var (
	All            = Strategy{"ALL", ScopeAll, ReduceList, EmptinessFail}
	AllAvails      = Strategy{"ALL_AVAILS", ScopeAll, ReduceListAvail, EmptinessFail}
	AllFirst       = Strategy{"ALL_FIRST", ScopeAll, ReduceFirst, EmptinessFail}
	AllLast        = Strategy{"ALL_LAST", ScopeAll, ReduceLast, EmptinessFail}
	AllFirstAvail  = Strategy{"ALL_FIRST_AVAIL", ScopeAll, ReduceFirstAvail, EmptinessFail}
	AllLastAvail   = Strategy{"ALL_LAST_AVAIL", ScopeAll, ReduceLastAvail, EmptinessFail}
	First          = Strategy{"FIRST", ScopeFirst, ReduceFirst, EmptinessFail}
	Last           = Strategy{"LAST", ScopeLast, ReduceLast, EmptinessFail}
	FirstAvail     = Strategy{"FIRST_AVAIL", ScopeFirstAvail, ReduceFirstAvail, EmptinessFail}
	LastAvail      = Strategy{"LAST_AVAIL", ScopeLastAvail, ReduceLastAvail, EmptinessFail}
	Single         = Strategy{"SINGLE", ScopeSingle, ReduceFirst, EmptinessFail}
	TryAllFirst      = Strategy{"TRY_ALL_FIRST", ScopeAll, ReduceFirst, EmptinessNull}
	TryAllLast       = Strategy{"TRY_ALL_LAST", ScopeAll, ReduceLast, EmptinessNull}
	TryAllFirstAvail = Strategy{"TRY_ALL_FIRST_AVAIL", ScopeAll, ReduceFirstAvail, EmptinessNull}
	TryAllLastAvail  = Strategy{"TRY_ALL_LAST_AVAIL", ScopeAll, ReduceLastAvail, EmptinessNull}
	TryFirst         = Strategy{"TRY_FIRST", ScopeFirst, ReduceFirst, EmptinessNull}
	TryLast          = Strategy{"TRY_LAST", ScopeLast, ReduceLast, EmptinessNull}
	TryFirstAvail    = Strategy{"TRY_FIRST_AVAIL", ScopeFirstAvail, ReduceFirstAvail, EmptinessNull}
	TryLastAvail     = Strategy{"TRY_LAST_AVAIL", ScopeLastAvail, ReduceLastAvail, EmptinessNull}
	TrySingle        = Strategy{"TRY_SINGLE", ScopeSingle, ReduceFirst, EmptinessNull}
)

// Candidate is one eligible (plugin, impl) pair in canonical order, ready
// to be invoked.
type Candidate struct {
	PluginName string
	Impl       *impl.Wrapper
}

// Invoke runs one candidate, applying whatever sync/async bridging the
// caller needs; it is supplied by the dispatcher so this package never
// needs to know about bridging.
type Invoke func(ctx context.Context, c Candidate) (any, error)

// Call is one not-yet-executed candidate handed to a user Reducer: the
// reducer owns whether, when and in what order to invoke it.
type Call struct {
	PluginName string
	Invoke     func(ctx context.Context) (any, error)
}

// Reducer is the opaque user-supplied reduction contract: it receives the
// ordered list of not-yet-executed calls and owns their execution
// entirely; it may run them out of order or skip some.
type Reducer func(ctx context.Context, hookName string, calls []Call) (any, error)

// Run executes s against candidates in canonical order and returns the
// reduced value. routingKey is only consulted by ScopeSingle.
func Run(ctx context.Context, s Strategy, hookName string, candidates []Candidate, routingKey string, invoke Invoke, sink diag.Sink) (any, error) {
	switch s.Scope {
	case ScopeAll:
		outcomes, err := runAll(ctx, candidates, invoke)
		if err != nil {
			return nil, err
		}
		return reduce(s, hookName, outcomes)
	case ScopeFirst:
		return runAt(ctx, s, hookName, candidates, invoke, 0)
	case ScopeLast:
		return runAt(ctx, s, hookName, candidates, invoke, len(candidates)-1)
	case ScopeFirstAvail:
		return runAvail(ctx, s, hookName, candidates, invoke, false)
	case ScopeLastAvail:
		return runAvail(ctx, s, hookName, candidates, invoke, true)
	case ScopeSingle:
		return runSingle(ctx, s, hookName, candidates, invoke, routingKey, sink)
	}
	return nil, nil
}

func runAll(ctx context.Context, candidates []Candidate, invoke Invoke) ([]impl.Outcome, error) {
	outcomes := make([]impl.Outcome, 0, len(candidates))
	for _, c := range candidates {
		v, err := invoke(ctx, c)
		if err != nil {
			return nil, err
		}
		outcomes = append(outcomes, impl.Outcome{Value: v})
	}
	return outcomes, nil
}

func runAt(ctx context.Context, s Strategy, hookName string, candidates []Candidate, invoke Invoke, idx int) (any, error) {
	if idx < 0 || idx >= len(candidates) {
		return emptiness(s, hookName)
	}
	v, err := invoke(ctx, candidates[idx])
	if err != nil {
		return nil, err
	}
	return v, nil
}

func runAvail(ctx context.Context, s Strategy, hookName string, candidates []Candidate, invoke Invoke, fromEnd bool) (any, error) {
	n := len(candidates)
	for i := 0; i < n; i++ {
		idx := i
		if fromEnd {
			idx = n - 1 - i
		}
		v, err := invoke(ctx, candidates[idx])
		if err != nil {
			return nil, err
		}
		if v != nil {
			return v, nil
		}
	}
	return emptiness(s, hookName)
}

func runSingle(ctx context.Context, s Strategy, hookName string, candidates []Candidate, invoke Invoke, routingKey string, sink diag.Sink) (any, error) {
	var target *Candidate
	if routingKey == "" {
		if sink != nil {
			sink.Emit(diag.KindSingleWithoutTarget, "SINGLE dispatch without a routing key, falling back to last eligible impl", map[string]any{"hook": hookName})
		}
		if len(candidates) > 0 {
			target = &candidates[len(candidates)-1]
		}
	} else {
		for i := range candidates {
			if candidates[i].PluginName == routingKey {
				target = &candidates[i]
				break
			}
		}
	}
	if target == nil {
		return emptiness(s, hookName)
	}
	v, err := invoke(ctx, *target)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func reduce(s Strategy, hookName string, outcomes []impl.Outcome) (any, error) {
	switch s.Reduction {
	case ReduceList:
		out := make([]any, len(outcomes))
		for i, o := range outcomes {
			out[i] = o.Value
		}
		return out, nil
	case ReduceListAvail:
		out := make([]any, 0, len(outcomes))
		for _, o := range outcomes {
			if o.Value != nil {
				out = append(out, o.Value)
			}
		}
		return out, nil
	case ReduceFirst:
		if len(outcomes) == 0 {
			return emptiness(s, hookName)
		}
		return outcomes[0].Value, nil
	case ReduceLast:
		if len(outcomes) == 0 {
			return emptiness(s, hookName)
		}
		return outcomes[len(outcomes)-1].Value, nil
	case ReduceFirstAvail:
		for _, o := range outcomes {
			if o.Value != nil {
				return o.Value, nil
			}
		}
		return emptiness(s, hookName)
	case ReduceLastAvail:
		for i := len(outcomes) - 1; i >= 0; i-- {
			if outcomes[i].Value != nil {
				return outcomes[i].Value, nil
			}
		}
		return emptiness(s, hookName)
	}
	return nil, nil
}

func emptiness(s Strategy, hookName string) (any, error) {
	if s.Emptiness == EmptinessNull {
		return nil, nil
	}
	return nil, &errs.ResultUnavailableError{Name: hookName}
}
