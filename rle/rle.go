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

// Package rle implements run-length coding. Maximal runs of identical
// symbols are written as a decimal count followed by the symbol, so
// "AAAABBBCCDAA" becomes "4A3B2C1D2A".
//
// Because counts are written as plain decimal digits, an input alphabet
// containing the digit symbols '0'..'9' would make the encoded form
// ambiguous (a literal '4' is indistinguishable from a run count).
// Encode therefore rejects such inputs instead of producing text that
// cannot be decoded back.
package rle

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/shrinklab/shrink"
)

// RLE_MAX_RUN caps the run length accepted by Decode. Encode can never
// exceed it on realistic inputs; the cap only stops a corrupted count
// from driving a huge allocation.
const RLE_MAX_RUN = 1 << 30

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// Encode scans src left to right and emits count+symbol pairs for each
// maximal run. Empty input yields an empty string. Inputs containing
// ASCII digit symbols are rejected with ErrUnsupportedValue.
func Encode(src []byte) (string, error) {
	if len(src) == 0 {
		return "", nil
	}

	var sb strings.Builder
	sb.Grow(len(src))
	run := 1
	prev := src[0]

	if isDigit(prev) {
		return "", fmt.Errorf("%w: digit symbol '%c' at offset 0 would be ambiguous with a run count", shrink.ErrUnsupportedValue, prev)
	}

	for i := 1; i < len(src); i++ {
		cur := src[i]

		if isDigit(cur) {
			return "", fmt.Errorf("%w: digit symbol '%c' at offset %d would be ambiguous with a run count", shrink.ErrUnsupportedValue, cur, i)
		}

		if cur == prev {
			run++
			continue
		}

		sb.WriteString(strconv.Itoa(run))
		sb.WriteByte(prev)
		prev = cur
		run = 1
	}

	sb.WriteString(strconv.Itoa(run))
	sb.WriteByte(prev)
	return sb.String(), nil
}

// Decode reverses Encode: consecutive digits accumulate a run length and
// the first non-digit symbol is emitted that many times. Empty input
// yields empty output. Text that the encoder cannot have produced (a
// symbol with no count, a count with no symbol, a zero count) fails
// with ErrInvalidEncoding.
func Decode(text string) ([]byte, error) {
	out := make([]byte, 0, len(text))

	run := 0
	haveRun := false

	for i := 0; i < len(text); i++ {
		c := text[i]

		if isDigit(c) {
			run = run*10 + int(c-'0')
			haveRun = true

			if run > RLE_MAX_RUN {
				return nil, fmt.Errorf("%w: run length exceeds %d", shrink.ErrInvalidEncoding, RLE_MAX_RUN)
			}

			continue
		}

		if !haveRun {
			return nil, fmt.Errorf("%w: symbol '%c' at offset %d has no run length", shrink.ErrInvalidEncoding, c, i)
		}

		if run == 0 {
			return nil, fmt.Errorf("%w: zero run length at offset %d", shrink.ErrInvalidEncoding, i)
		}

		out = append(out, bytes.Repeat([]byte{c}, run)...)
		run = 0
		haveRun = false
	}

	if haveRun {
		return nil, fmt.Errorf("%w: trailing run length without a symbol", shrink.ErrInvalidEncoding)
	}

	return out, nil
}
