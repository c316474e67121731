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

// Package golomb implements Golomb-Rice quotient/remainder coding of
// non-negative integers against a divisor m >= 1.
//
// A value n splits into q = n / m and r = n % m. The quotient is unary
// coded (q ones followed by a zero terminator); the remainder coding
// depends on m:
//
//   - m = 2^k: r is written as k fixed binary bits (Rice case).
//   - otherwise: truncated binary. With b = ceil(log2 m) and
//     T = 2^b - m, remainders below T take b-1 bits and the rest are
//     written as r+T in b bits.
//
// The divisor is a side channel: it is never embedded in a codeword and
// Decode must receive the same m the encoder used. Codewords are
// self-delimiting, so a concatenation of them decodes unambiguously
// (see EncodeAll / DecodeAll).
package golomb

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/shrinklab/shrink"
)

// divisor holds the derived per-m coding parameters.
type divisor struct {
	m         int
	width     int  // remainder width: k when pow2, b otherwise
	threshold int  // T = 2^b - m, meaningful only when pow2 is false
	pow2      bool // m is a power of two
}

func newDivisor(m int) (divisor, error) {
	if m < 1 {
		return divisor{}, fmt.Errorf("%w: divisor m must be at least 1, got %d", shrink.ErrInvalidParameter, m)
	}

	if m&(m-1) == 0 {
		return divisor{m: m, width: bits.TrailingZeros(uint(m)), pow2: true}, nil
	}

	b := bits.Len(uint(m - 1)) // ceil(log2 m) for m >= 2
	return divisor{m: m, width: b, threshold: (1 << b) - m}, nil
}

// appendBits writes val as width binary characters, most significant
// bit first. A width of zero writes nothing (remainder of m = 1).
func appendBits(sb *strings.Builder, val, width int) {
	for i := width - 1; i >= 0; i-- {
		if val&(1<<i) != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
}

func (this divisor) append(sb *strings.Builder, n int) {
	q := n / this.m
	r := n % this.m

	for i := 0; i < q; i++ {
		sb.WriteByte('1')
	}

	sb.WriteByte('0')

	if this.pow2 {
		appendBits(sb, r, this.width)
		return
	}

	if r < this.threshold {
		appendBits(sb, r, this.width-1)
	} else {
		appendBits(sb, r+this.threshold, this.width)
	}
}

// readBits parses width bits starting at pos, MSB first.
func readBits(code string, pos, width int) (int, int, error) {
	if pos+width > len(code) {
		return 0, 0, fmt.Errorf("%w: codeword truncated inside a %d-bit remainder", shrink.ErrInvalidEncoding, width)
	}

	val := 0

	for i := 0; i < width; i++ {
		switch code[pos+i] {
		case '1':
			val = (val << 1) | 1
		case '0':
			val <<= 1
		default:
			return 0, 0, fmt.Errorf("%w: unexpected character '%c' at offset %d", shrink.ErrInvalidEncoding, code[pos+i], pos+i)
		}
	}

	return val, pos + width, nil
}

// next decodes one codeword starting at pos and returns the value and
// the offset of the following codeword.
func (this divisor) next(code string, pos int) (int, int, error) {
	q := 0

	for pos < len(code) && code[pos] == '1' {
		q++
		pos++
	}

	if pos >= len(code) {
		return 0, 0, fmt.Errorf("%w: unary quotient is missing its zero terminator", shrink.ErrInvalidEncoding)
	}

	if code[pos] != '0' {
		return 0, 0, fmt.Errorf("%w: unexpected character '%c' at offset %d", shrink.ErrInvalidEncoding, code[pos], pos)
	}

	pos++

	var r int
	var err error

	if this.pow2 {
		r, pos, err = readBits(code, pos, this.width)

		if err != nil {
			return 0, 0, err
		}
	} else {
		// Read b-1 bits first; values at or above the threshold carry
		// one extra bit and are offset by T.
		r, pos, err = readBits(code, pos, this.width-1)

		if err != nil {
			return 0, 0, err
		}

		if r >= this.threshold {
			var extra int
			extra, pos, err = readBits(code, pos, 1)

			if err != nil {
				return 0, 0, err
			}

			r = (r << 1) | extra
			r -= this.threshold
		}
	}

	return q*this.m + r, pos, nil
}

// Encode produces the codeword for a single non-negative integer n
// under divisor m.
func Encode(n, m int) (string, error) {
	d, err := newDivisor(m)

	if err != nil {
		return "", err
	}

	if n < 0 {
		return "", fmt.Errorf("%w: negative value %d", shrink.ErrUnsupportedValue, n)
	}

	var sb strings.Builder
	d.append(&sb, n)
	return sb.String(), nil
}

// Decode recovers the integer from a single codeword. The whole string
// must be consumed; trailing bits mean the codeword was not produced by
// Encode with this m.
func Decode(code string, m int) (int, error) {
	d, err := newDivisor(m)

	if err != nil {
		return 0, err
	}

	if len(code) == 0 {
		return 0, fmt.Errorf("%w: empty codeword", shrink.ErrInvalidEncoding)
	}

	n, pos, err := d.next(code, 0)

	if err != nil {
		return 0, err
	}

	if pos != len(code) {
		return 0, fmt.Errorf("%w: %d trailing bits after the codeword", shrink.ErrInvalidEncoding, len(code)-pos)
	}

	return n, nil
}

// EncodeAll concatenates the codewords of values into one stream.
// Codewords are self-delimiting, so no separator is needed. An empty
// slice yields an empty string.
func EncodeAll(values []int, m int) (string, error) {
	d, err := newDivisor(m)

	if err != nil {
		return "", err
	}

	var sb strings.Builder

	for i, n := range values {
		if n < 0 {
			return "", fmt.Errorf("%w: negative value %d at index %d", shrink.ErrUnsupportedValue, n, i)
		}

		d.append(&sb, n)
	}

	return sb.String(), nil
}

// DecodeAll splits a concatenated codeword stream back into values.
// An empty stream yields an empty slice.
func DecodeAll(stream string, m int) ([]int, error) {
	d, err := newDivisor(m)

	if err != nil {
		return nil, err
	}

	values := make([]int, 0, len(stream)/2)
	pos := 0

	for pos < len(stream) {
		n, next, err := d.next(stream, pos)

		if err != nil {
			return nil, err
		}

		values = append(values, n)
		pos = next
	}

	return values, nil
}
