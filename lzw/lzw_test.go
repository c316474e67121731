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

package lzw

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"github.com/shrinklab/shrink"
)

func TestSeededDictionary(t *testing.T) {
	d := NewDictionary()

	if d.Size() != AlphabetSize {
		t.Fatalf("seeded size = %d, want %d", d.Size(), AlphabetSize)
	}

	if d.NextCode() != AlphabetSize {
		t.Fatalf("next code = %d, want %d", d.NextCode(), AlphabetSize)
	}

	for i := 0; i < AlphabetSize; i++ {
		entry, ok := d.Entry(i)

		if !ok || len(entry) != 1 || entry[0] != byte(i) {
			t.Fatalf("entry %d = (%q, %v), want single byte 0x%02X", i, entry, ok, i)
		}

		code, ok := d.Code(entry)

		if !ok || code != i {
			t.Fatalf("reverse lookup of entry %d = (%d, %v)", i, code, ok)
		}
	}

	if _, ok := d.Entry(AlphabetSize); ok {
		t.Fatalf("unassigned code should not resolve")
	}

	if _, ok := d.Entry(-1); ok {
		t.Fatalf("negative code should not resolve")
	}
}

func TestEncodeReference(t *testing.T) {
	src := []byte("TOBEORNOTTOBEORTOBEORNOT")
	codes, dict := Encode(src)

	if len(codes) == 0 {
		t.Fatalf("no codes emitted")
	}

	// No code may reference an entry that did not exist when the code
	// was emitted: replaying the growth rule, code[i] must always be
	// below the dictionary size at step i.
	next := AlphabetSize

	for i, code := range codes {
		if code >= next {
			t.Fatalf("code %d at index %d references entry created later (next=%d)", code, i, next)
		}

		if i > 0 {
			next++
		}
	}

	// The input repeats, so at least one multi-byte substitution must
	// have been emitted.
	multi := false

	for _, code := range codes {
		if code >= AlphabetSize {
			multi = true
			break
		}
	}

	if !multi {
		t.Fatalf("expected at least one dictionary substitution in %v", codes)
	}

	if dict.Size() != AlphabetSize+len(codes)-1 {
		t.Fatalf("dictionary size = %d, want %d", dict.Size(), AlphabetSize+len(codes)-1)
	}

	decoded, err := Decode(codes)

	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if !bytes.Equal(decoded, src) {
		t.Fatalf("round trip mismatch: got %q", decoded)
	}
}

func TestNotYetCreatedCase(t *testing.T) {
	// Encoding "aaa" emits the code for "aa" in the same step that
	// created it, so the decoder meets a code equal to its next
	// unassigned code.
	codes, _ := Encode([]byte("aaa"))

	want := []int{'a', AlphabetSize}

	if len(codes) != 2 || codes[0] != want[0] || codes[1] != want[1] {
		t.Fatalf("Encode(\"aaa\") = %v, want %v", codes, want)
	}

	decoded, err := Decode(codes)

	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if string(decoded) != "aaa" {
		t.Fatalf("decoded = %q, want %q", decoded, "aaa")
	}
}

func TestDictionaryGrowth(t *testing.T) {
	// One entry is created per emitted code except the final flush.
	inputs := []string{"a", "ab", "aaa", "abcabcabc", "TOBEORNOTTOBEORTOBEORNOT"}

	for _, input := range inputs {
		codes, dict := Encode([]byte(input))

		if want := AlphabetSize + len(codes) - 1; dict.Size() != want {
			t.Fatalf("Encode(%q): dictionary size = %d, want %d", input, dict.Size(), want)
		}
	}
}

func TestDecodeInvalidCode(t *testing.T) {
	tests := []struct {
		name  string
		codes []int
	}{
		{"first code unassigned", []int{256}},
		{"negative", []int{'a', -1}},
		{"beyond next", []int{'a', 300}},
		{"skips one ahead", []int{'a', 'b', 259}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.codes); !errors.Is(err, shrink.ErrInvalidCode) {
				t.Fatalf("Decode(%v) = %v, want ErrInvalidCode", tt.codes, err)
			}
		})
	}
}

func TestEmptyInput(t *testing.T) {
	codes, dict := Encode(nil)

	if len(codes) != 0 {
		t.Fatalf("Encode(nil) = %v, want no codes", codes)
	}

	if dict.Size() != AlphabetSize {
		t.Fatalf("empty encode should leave the dictionary seeded only")
	}

	decoded, err := Decode(nil)

	if err != nil || len(decoded) != 0 {
		t.Fatalf("Decode(nil) = (%q, %v), want empty", decoded, err)
	}
}

func TestRoundTripBinary(t *testing.T) {
	r := rand.New(rand.NewSource(11))

	for iter := 0; iter < 20; iter++ {
		src := make([]byte, 1+r.Intn(2000))

		for i := range src {
			// Skewed distribution produces repeated sequences and
			// exercises high-value bytes that must not be split by any
			// UTF-8 interpretation.
			src[i] = byte(200 + r.Intn(56))
		}

		codes, _ := Encode(src)
		decoded, err := Decode(codes)

		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}

		if !bytes.Equal(decoded, src) {
			t.Fatalf("round trip mismatch at iteration %d", iter)
		}
	}
}
