/*
Copyright 2024-2026 the shrink authors
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package batch compresses independent payloads in parallel. The codecs
// are pure and share no state, so payloads fan out to a bounded set of
// workers with no locking; results keep the input order.
package batch

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/shrinklab/shrink"
	"github.com/shrinklab/shrink/artifact"
)

func workers(jobs int) int {
	if jobs <= 0 {
		return runtime.NumCPU()
	}

	return jobs
}

// Compress encodes every payload with the same technique using at most
// jobs workers (NumCPU when jobs <= 0). The first failure cancels the
// remaining work and is returned; on success results[i] is the artifact
// for payloads[i].
func Compress(ctx context.Context, payloads [][]byte, t shrink.Technique, jobs int, opts ...artifact.Option) ([]*artifact.Artifact, error) {
	results := make([]*artifact.Artifact, len(payloads))
	g, ctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, workers(jobs))

	for i := range payloads {
		idx := i

		g.Go(func() error {
			sem <- struct{}{}
			defer func() { <-sem }()

			// Another worker may have failed already
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			a, err := artifact.Compress(t, payloads[idx], opts...)

			if err != nil {
				return err
			}

			results[idx] = a
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// Decompress is the inverse fan-out: every artifact is decoded under
// the same bounded worker pool, results keeping the input order.
func Decompress(ctx context.Context, artifacts []*artifact.Artifact, jobs int) ([][]byte, error) {
	results := make([][]byte, len(artifacts))
	g, ctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, workers(jobs))

	for i := range artifacts {
		idx := i

		g.Go(func() error {
			sem <- struct{}{}
			defer func() { <-sem }()

			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			data, err := artifacts[idx].Decompress()

			if err != nil {
				return err
			}

			results[idx] = data
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
