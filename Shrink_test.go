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

package shrink

import "testing"

func TestParseTechnique(t *testing.T) {
	valid := map[string]Technique{
		"rle":       RunLength,
		"runlength": RunLength,
		"huffman":   Huffman,
		"huff":      Huffman,
		"golomb":    Golomb,
		"rice":      Golomb,
		"lzw":       LZW,
	}

	for name, want := range valid {
		got, err := ParseTechnique(name)

		if err != nil || got != want {
			t.Fatalf("ParseTechnique(%q) = (%v, %v), want %v", name, got, err, want)
		}

		if got.String() == "unknown" {
			t.Fatalf("%v has no name", got)
		}
	}

	if _, err := ParseTechnique("zip"); err == nil {
		t.Fatalf("ParseTechnique(\"zip\") succeeded")
	}

	if Technique(42).String() != "unknown" {
		t.Fatalf("unexpected name for invalid technique")
	}
}
