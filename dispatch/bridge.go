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

package dispatch

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/thediveo/hookkernel/impl"
)

// bridgeSyncCallsAsync runs an async impl to completion on behalf of a
// sync hook spec. It owns a single-impl errgroup so that a cancelled ctx
// propagates into the wait the same way it would for a directly awaited
// impl, even though the caller of the overall Dispatch never suspends
// itself.
func bridgeSyncCallsAsync(ctx context.Context, iw *impl.Wrapper, args impl.Args) (any, error) {
	g, gctx := errgroup.WithContext(ctx)
	var outcome impl.Outcome
	g.Go(func() error {
		ch := iw.AsyncF(gctx, args)
		select {
		case outcome = <-ch:
			if err := gctx.Err(); err != nil {
				return err
			}
			return outcome.Err
		case <-gctx.Done():
			return gctx.Err()
		}
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcome.Value, nil
}

// awaitAsync awaits an async impl on behalf of an async hook spec.
// Cancellation of ctx surfaces as the same condition the caller raised,
// discarding any outcome that does arrive afterward.
func awaitAsync(ctx context.Context, iw *impl.Wrapper, args impl.Args) (any, error) {
	ch := iw.AsyncF(ctx, args)
	select {
	case outcome := <-ch:
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return outcome.Value, outcome.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
