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

// Package lzw implements adaptive dictionary substitution (LZW). The
// encoder replaces repeated byte sequences with integer codes into a
// dictionary it grows as it scans; the decoder rebuilds the identical
// dictionary from the code stream alone, so no dictionary contents are
// ever transmitted.
//
// Codes are unbounded: the dictionary grows for as long as the input
// keeps producing new sequences. A maximum-code-width reset policy is a
// deliberate non-goal.
package lzw

import (
	"bytes"
	"fmt"

	"github.com/shrinklab/shrink"
)

// AlphabetSize is the number of seeded single-byte entries; codes 0-255
// map to their byte value and the first assigned code is 256.
const AlphabetSize = 256

// Dictionary is a bidirectional mapping between byte sequences and
// integer codes: an arena of entries indexed by code plus a growable
// reverse index from sequence to code. Entries are stored as strings of
// raw bytes (one byte per character, no UTF-8 interpretation).
type Dictionary struct {
	entries []string
	codes   map[string]int
}

// NewDictionary returns a dictionary seeded with the 256 single-byte
// entries. Both encoder and decoder start from this exact state.
func NewDictionary() *Dictionary {
	d := &Dictionary{
		entries: make([]string, 0, 2*AlphabetSize),
		codes:   make(map[string]int, 2*AlphabetSize),
	}

	for i := 0; i < AlphabetSize; i++ {
		d.add(string([]byte{byte(i)}))
	}

	return d
}

// add appends seq as the next entry and returns its code.
func (this *Dictionary) add(seq string) int {
	code := len(this.entries)
	this.entries = append(this.entries, seq)
	this.codes[seq] = code
	return code
}

// Size returns the number of entries, seeded plus assigned.
func (this *Dictionary) Size() int {
	return len(this.entries)
}

// NextCode returns the code the next new sequence will receive.
func (this *Dictionary) NextCode() int {
	return len(this.entries)
}

// Entry returns the sequence stored under code.
func (this *Dictionary) Entry(code int) (string, bool) {
	if code < 0 || code >= len(this.entries) {
		return "", false
	}

	return this.entries[code], true
}

// Code returns the code assigned to seq.
func (this *Dictionary) Code(seq string) (int, bool) {
	code, ok := this.codes[seq]
	return code, ok
}

// Encode scans src with greedy longest-match extension: the current
// match grows while current+symbol is still a dictionary entry; on a
// miss the current match's code is emitted, current+symbol becomes the
// next dictionary entry and the scan restarts at the symbol. The final
// pending match is flushed after the loop.
//
// The returned dictionary is the encoder's final state, exposed for
// inspection and statistics; Decode does not need it.
func Encode(src []byte) ([]int, *Dictionary) {
	dict := NewDictionary()
	codes := make([]int, 0, len(src)/2+1)

	if len(src) == 0 {
		return codes, dict
	}

	current := ""

	for _, sym := range src {
		candidate := current + string([]byte{sym})

		if _, ok := dict.codes[candidate]; ok {
			current = candidate
			continue
		}

		code, _ := dict.codes[current]
		codes = append(codes, code)
		dict.add(candidate)
		current = string([]byte{sym})
	}

	// current is never empty here since src is non-empty
	codes = append(codes, dict.codes[current])
	return codes, dict
}

// Decode rebuilds the dictionary in lock-step with the encoder, driven
// only by the code stream. A code equal to the next unassigned code is
// the one sequence the encoder created in the same step it emitted it,
// and decodes as previous + previous[0]. Any other unknown code fails
// with ErrInvalidCode.
func Decode(codes []int) ([]byte, error) {
	if len(codes) == 0 {
		return []byte{}, nil
	}

	dict := NewDictionary()
	previous, ok := dict.Entry(codes[0])

	if !ok {
		return nil, fmt.Errorf("%w: first code %d is not a seeded entry", shrink.ErrInvalidCode, codes[0])
	}

	var out bytes.Buffer
	out.WriteString(previous)

	for i := 1; i < len(codes); i++ {
		code := codes[i]
		var current string

		if entry, ok := dict.Entry(code); ok {
			current = entry
		} else if code == dict.NextCode() {
			// The encoder assigned this code in the same step it
			// emitted it; the sequence is previous plus its own first
			// byte.
			current = previous + previous[:1]
		} else {
			return nil, fmt.Errorf("%w: code %d at index %d (next unassigned is %d)", shrink.ErrInvalidCode, code, i, dict.NextCode())
		}

		out.WriteString(current)
		dict.add(previous + current[:1])
		previous = current
	}

	return out.Bytes(), nil
}
