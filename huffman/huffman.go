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

// Package huffman implements static-frequency prefix coding. A
// frequency table built from the input drives construction of a binary
// code tree; each symbol's code is its root-to-leaf path, '0' for left
// and '1' for right. The resulting code set is prefix-free, so decoding
// is a single greedy scan with no backtracking.
//
// The code table is a side channel: it is not embedded in the encoded
// payload and must be handed unmodified to the matching Decode call.
//
// Ties between equal weights are broken by insertion order (first-seen
// symbol wins), so identical input always yields identical codes across
// runs and platforms.
package huffman

import (
	"container/heap"
	"fmt"
	"strings"

	"github.com/shrinklab/shrink"
)

// FrequencyTable counts symbol occurrences while preserving the order
// in which symbols were first seen. The order is part of the contract:
// it seeds the deterministic tie-break during tree construction.
type FrequencyTable struct {
	counts map[byte]int
	order  []byte
}

// NewFrequencyTable returns an empty table.
func NewFrequencyTable() *FrequencyTable {
	return &FrequencyTable{counts: make(map[byte]int, 64)}
}

// CountFrequencies builds a table from src in one pass.
func CountFrequencies(src []byte) *FrequencyTable {
	ft := NewFrequencyTable()

	for _, s := range src {
		ft.Add(s)
	}

	return ft
}

// Add records one occurrence of sym.
func (this *FrequencyTable) Add(sym byte) {
	if _, ok := this.counts[sym]; !ok {
		this.order = append(this.order, sym)
	}

	this.counts[sym]++
}

// Count returns the recorded occurrences of sym.
func (this *FrequencyTable) Count(sym byte) int {
	return this.counts[sym]
}

// Len returns the number of distinct symbols.
func (this *FrequencyTable) Len() int {
	return len(this.order)
}

// Symbols returns the distinct symbols in first-seen order. The caller
// must not modify the returned slice.
func (this *FrequencyTable) Symbols() []byte {
	return this.order
}

// Node is one node of the code tree. Leaves carry a symbol; internal
// nodes carry the summed weight of their subtree.
type Node struct {
	Symbol byte
	Weight int
	Left   *Node
	Right  *Node
	leaf   bool
	seq    int // creation order, tie-break key after Weight
}

// Leaf reports whether the node carries a symbol.
func (this *Node) Leaf() bool {
	return this.leaf
}

// nodeHeap is a min-heap ordered by (weight, creation sequence).
type nodeHeap []*Node

func (h nodeHeap) Len() int { return len(h) }

func (h nodeHeap) Less(i, j int) bool {
	// Weight (natural order) as first key
	if h[i].Weight != h[j].Weight {
		return h[i].Weight < h[j].Weight
	}

	// Creation order as second key
	return h[i].seq < h[j].seq
}

func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *nodeHeap) Push(x any) { *h = append(*h, x.(*Node)) }

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// BuildTree constructs the code tree from a frequency table: one leaf
// per distinct symbol goes into a priority queue keyed by weight, then
// the two lightest nodes are merged repeatedly until a single root
// remains. The first extracted node becomes the left ('0') child.
func BuildTree(ft *FrequencyTable) (*Node, error) {
	if ft == nil || ft.Len() == 0 {
		return nil, fmt.Errorf("%w: empty frequency table", shrink.ErrInvalidParameter)
	}

	nh := make(nodeHeap, 0, ft.Len())
	seq := 0

	for _, sym := range ft.Symbols() {
		nh = append(nh, &Node{Symbol: sym, Weight: ft.Count(sym), leaf: true, seq: seq})
		seq++
	}

	heap.Init(&nh)

	for nh.Len() > 1 {
		left := heap.Pop(&nh).(*Node)
		right := heap.Pop(&nh).(*Node)
		heap.Push(&nh, &Node{Weight: left.Weight + right.Weight, Left: left, Right: right, seq: seq})
		seq++
	}

	return nh[0], nil
}

// CodeTable maps each symbol to its bit-string code.
type CodeTable map[byte]string

// BuildCodeTable derives the symbol codes from a code tree by
// root-to-leaf traversal. A single-leaf tree (one distinct symbol in
// the input) gets the explicit one-bit code "0", which the merge loop
// cannot produce on its own.
func BuildCodeTable(root *Node) CodeTable {
	if root == nil {
		return nil
	}

	table := make(CodeTable)

	if root.Leaf() {
		table[root.Symbol] = "0"
		return table
	}

	var walk func(n *Node, path []byte)

	walk = func(n *Node, path []byte) {
		if n.Leaf() {
			table[n.Symbol] = string(path)
			return
		}

		walk(n.Left, append(path, '0'))
		walk(n.Right, append(path, '1'))
	}

	walk(root, make([]byte, 0, 16))
	return table
}

// Encode concatenates the code of every symbol in src. A symbol with no
// table entry (the table was built from different data) fails with
// ErrUnknownSymbol. Empty input yields an empty bit-string.
func Encode(src []byte, table CodeTable) (string, error) {
	if len(src) == 0 {
		return "", nil
	}

	if len(table) == 0 {
		return "", fmt.Errorf("%w: no code table supplied", shrink.ErrMissingSideChannel)
	}

	var sb strings.Builder
	sb.Grow(len(src) * 4)

	for i, s := range src {
		code, ok := table[s]

		if !ok {
			return "", fmt.Errorf("%w: symbol 0x%02X at offset %d has no code", shrink.ErrUnknownSymbol, s, i)
		}

		sb.WriteString(code)
	}

	return sb.String(), nil
}

// Decode inverts the table to bit-string -> symbol and consumes bits one
// at a time, emitting a symbol whenever the accumulated candidate
// matches a code. Prefix-freedom makes the scan unambiguous. A
// non-empty unmatched candidate at end of input fails with
// ErrInvalidEncoding.
func Decode(bits string, table CodeTable) ([]byte, error) {
	if len(bits) == 0 {
		return []byte{}, nil
	}

	if len(table) == 0 {
		return nil, fmt.Errorf("%w: no code table supplied", shrink.ErrMissingSideChannel)
	}

	reverse := make(map[string]byte, len(table))
	maxLen := 0

	for sym, code := range table {
		reverse[code] = sym

		if len(code) > maxLen {
			maxLen = len(code)
		}
	}

	out := make([]byte, 0, len(bits)/2)
	start := 0

	for i := 0; i < len(bits); i++ {
		if c := bits[i]; c != '0' && c != '1' {
			return nil, fmt.Errorf("%w: unexpected character '%c' at offset %d", shrink.ErrInvalidEncoding, c, i)
		}

		candidate := bits[start : i+1]

		if sym, ok := reverse[candidate]; ok {
			out = append(out, sym)
			start = i + 1
			continue
		}

		if len(candidate) > maxLen {
			return nil, fmt.Errorf("%w: no code matches bits at offset %d", shrink.ErrInvalidEncoding, start)
		}
	}

	if start != len(bits) {
		return nil, fmt.Errorf("%w: input ends inside a codeword", shrink.ErrInvalidEncoding)
	}

	return out, nil
}

// Compress runs the full pipeline: frequency count, tree build, code
// table derivation and encoding. The returned table is the side channel
// the matching Decode call needs.
func Compress(src []byte) (string, CodeTable, error) {
	if len(src) == 0 {
		return "", CodeTable{}, nil
	}

	root, err := BuildTree(CountFrequencies(src))

	if err != nil {
		return "", nil, err
	}

	table := BuildCodeTable(root)
	bits, err := Encode(src, table)

	if err != nil {
		return "", nil, err
	}

	return bits, table, nil
}
