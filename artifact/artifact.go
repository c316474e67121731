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

// Package artifact bundles a compressed payload with the side channel
// the matching decode needs (Huffman code table or Golomb divisor) into
// one self-contained value. Neither codec embeds its side channel in
// the payload, so carrying both together is the caller's job; an
// Artifact makes that explicit instead of spreading state across a
// long-lived session.
//
// Artifacts serialize to JSON, which is also the on-disk format of the
// command line tool.
package artifact

import (
	"fmt"
	"io"
	"math/bits"

	"github.com/cespare/xxhash/v2"
	json "github.com/goccy/go-json"

	"github.com/shrinklab/shrink"
	"github.com/shrinklab/shrink/golomb"
	"github.com/shrinklab/shrink/huffman"
	"github.com/shrinklab/shrink/lzw"
	"github.com/shrinklab/shrink/rle"
)

// DefaultGolombParameter is the divisor used when the caller does not
// supply one. Byte payloads are dominated by small-to-mid values, where
// m = 4 keeps unary quotients short.
const DefaultGolombParameter = 4

// Option configures Compress.
type Option func(*config)

type config struct {
	golombM int
}

// WithGolombParameter sets the divisor m for the Golomb technique. It
// is validated by the codec when the technique is used.
func WithGolombParameter(m int) Option {
	return func(c *config) {
		c.golombM = m
	}
}

// Artifact is a self-contained compressed value: technique id, encoded
// payload and whatever side channel the paired decode requires, plus
// the original length and an XXH64 checksum of the original bytes for
// end-to-end verification.
type Artifact struct {
	Technique   shrink.Technique  `json:"technique"`
	Payload     string            `json:"payload,omitempty"`
	Codes       []int             `json:"codes,omitempty"`
	Table       huffman.CodeTable `json:"table,omitempty"`
	GolombM     int               `json:"golomb_m,omitempty"`
	OriginalLen int               `json:"original_len"`
	Checksum    uint64            `json:"checksum"`
}

// Compress encodes src with the selected technique and returns the
// bundled result. Empty input produces an empty but valid artifact.
func Compress(t shrink.Technique, src []byte, opts ...Option) (*Artifact, error) {
	cfg := config{golombM: DefaultGolombParameter}

	for _, opt := range opts {
		opt(&cfg)
	}

	a := &Artifact{
		Technique:   t,
		OriginalLen: len(src),
		Checksum:    xxhash.Sum64(src),
	}

	switch t {
	case shrink.RunLength:
		text, err := rle.Encode(src)

		if err != nil {
			return nil, err
		}

		a.Payload = text

	case shrink.Huffman:
		bitstr, table, err := huffman.Compress(src)

		if err != nil {
			return nil, err
		}

		a.Payload = bitstr
		a.Table = table

	case shrink.Golomb:
		values := make([]int, len(src))

		for i, b := range src {
			values[i] = int(b)
		}

		stream, err := golomb.EncodeAll(values, cfg.golombM)

		if err != nil {
			return nil, err
		}

		a.Payload = stream
		a.GolombM = cfg.golombM

	case shrink.LZW:
		codes, _ := lzw.Encode(src)
		a.Codes = codes

	default:
		return nil, fmt.Errorf("%w: unknown technique %d", shrink.ErrInvalidParameter, t)
	}

	return a, nil
}

// Decompress decodes the payload and verifies length and checksum
// against the values recorded at compress time. A missing side channel
// (Huffman table, Golomb divisor) fails with ErrMissingSideChannel
// before any decoding is attempted.
func (this *Artifact) Decompress() ([]byte, error) {
	var out []byte
	var err error

	switch this.Technique {
	case shrink.RunLength:
		out, err = rle.Decode(this.Payload)

	case shrink.Huffman:
		if this.OriginalLen > 0 && len(this.Table) == 0 {
			return nil, fmt.Errorf("%w: artifact carries no code table", shrink.ErrMissingSideChannel)
		}

		out, err = huffman.Decode(this.Payload, this.Table)

	case shrink.Golomb:
		if this.GolombM < 1 {
			return nil, fmt.Errorf("%w: artifact carries no Golomb divisor", shrink.ErrMissingSideChannel)
		}

		var values []int
		values, err = golomb.DecodeAll(this.Payload, this.GolombM)

		if err == nil {
			out = make([]byte, len(values))

			for i, v := range values {
				if v > 255 {
					return nil, fmt.Errorf("%w: decoded value %d at index %d exceeds a byte", shrink.ErrInvalidEncoding, v, i)
				}

				out[i] = byte(v)
			}
		}

	case shrink.LZW:
		out, err = lzw.Decode(this.Codes)

	default:
		return nil, fmt.Errorf("%w: unknown technique %d", shrink.ErrInvalidParameter, this.Technique)
	}

	if err != nil {
		return nil, err
	}

	if len(out) != this.OriginalLen || xxhash.Sum64(out) != this.Checksum {
		return nil, fmt.Errorf("%w: decoded payload does not match the recorded checksum", shrink.ErrInvalidEncoding)
	}

	return out, nil
}

// CompressedBits reports the information content of the encoded
// payload: bit-string techniques count one bit per character, run
// length text counts 8 bits per character and LZW counts each code at
// the width of the widest code emitted.
func (this *Artifact) CompressedBits() int {
	switch this.Technique {
	case shrink.RunLength:
		return 8 * len(this.Payload)

	case shrink.Huffman, shrink.Golomb:
		return len(this.Payload)

	case shrink.LZW:
		max := lzw.AlphabetSize - 1

		for _, c := range this.Codes {
			if c > max {
				max = c
			}
		}

		return len(this.Codes) * bits.Len(uint(max))
	}

	return 0
}

// Ratio returns original bits over compressed bits; 0 when either side
// is empty.
func (this *Artifact) Ratio() float64 {
	cb := this.CompressedBits()

	if cb == 0 || this.OriginalLen == 0 {
		return 0
	}

	return float64(8*this.OriginalLen) / float64(cb)
}

// Save writes the artifact as JSON.
func (this *Artifact) Save(w io.Writer) error {
	return json.NewEncoder(w).Encode(this)
}

// Load reads an artifact back from JSON.
func Load(r io.Reader) (*Artifact, error) {
	a := &Artifact{}

	if err := json.NewDecoder(r).Decode(a); err != nil {
		return nil, fmt.Errorf("%w: %v", shrink.ErrInvalidEncoding, err)
	}

	switch a.Technique {
	case shrink.RunLength, shrink.Huffman, shrink.Golomb, shrink.LZW:
		return a, nil
	}

	return nil, fmt.Errorf("%w: unknown technique %d", shrink.ErrInvalidParameter, a.Technique)
}
