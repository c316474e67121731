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

// Package shrink provides shared types for a small family of classical
// lossless codecs: run-length coding, static Huffman prefix coding,
// Golomb-Rice quotient/remainder coding and LZW dictionary coding.
// Each codec lives in its own subpackage and is a pure, stateless
// transformation: encode builds every structure it needs from the input
// alone, and decode takes the same side channel (code table, divisor)
// the paired encode produced.
//
// Codewords are kept as character strings of '0' and '1' rather than
// packed bits. This keeps every intermediate form printable and easy to
// inspect at the cost of an 8x size overhead; a packed wire format is a
// deliberate non-goal.
package shrink

import "errors"

// Process exit codes for the command line tool.
const (
	ERR_MISSING_PARAM = 1
	ERR_INVALID_PARAM = 2
	ERR_OPEN_FILE     = 3
	ERR_READ_FILE     = 4
	ERR_WRITE_FILE    = 5
	ERR_ENCODE        = 6
	ERR_DECODE        = 7
	ERR_UNKNOWN       = 127
)

// Error kinds shared by all codecs. Codec packages wrap these with
// context via fmt.Errorf("...: %w", ...); callers match with errors.Is.
var (
	// ErrInvalidParameter reports a caller-supplied parameter outside its
	// documented domain (e.g. a Golomb divisor below 1).
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrUnsupportedValue reports an input value the codec deliberately
	// does not handle (e.g. a negative integer, or a digit symbol in
	// run-length input).
	ErrUnsupportedValue = errors.New("unsupported value")

	// ErrUnknownSymbol reports a symbol with no entry in the supplied
	// code table.
	ErrUnknownSymbol = errors.New("unknown symbol")

	// ErrInvalidEncoding reports an encoded payload that cannot have been
	// produced by the paired encoder (truncated codeword, alien
	// character, dangling prefix).
	ErrInvalidEncoding = errors.New("invalid encoding")

	// ErrInvalidCode reports a dictionary code that is neither known nor
	// the next code about to be assigned.
	ErrInvalidCode = errors.New("invalid code")

	// ErrMissingSideChannel reports a decode call without the code table
	// or parameter produced by the matching encode call.
	ErrMissingSideChannel = errors.New("missing side channel")
)

// Technique identifies one of the supported lossless codecs.
type Technique byte

const (
	RunLength Technique = iota
	Huffman
	Golomb
	LZW
)

func (t Technique) String() string {
	switch t {
	case RunLength:
		return "rle"
	case Huffman:
		return "huffman"
	case Golomb:
		return "golomb"
	case LZW:
		return "lzw"
	}

	return "unknown"
}

// ParseTechnique maps a command line name to a Technique.
func ParseTechnique(name string) (Technique, error) {
	switch name {
	case "rle", "runlength":
		return RunLength, nil
	case "huffman", "huff":
		return Huffman, nil
	case "golomb", "rice":
		return Golomb, nil
	case "lzw":
		return LZW, nil
	}

	return 0, errors.New("unknown technique '" + name + "' (expected rle, huffman, golomb or lzw)")
}
