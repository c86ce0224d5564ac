/*
Copyright 2011-2026 Frederic Langlet
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

package transform

import (
	"encoding/binary"
	"errors"
)

// _BWT_HEADER_LEN is the size of the primary-index prefix every BWT block
// opens with.
const _BWT_HEADER_LEN = 4

// BWT is the Burrows-Wheeler block transform: every block is treated as one
// cyclic-rotation matrix, sorted lexicographically, whose last column (plus
// the row index the unrotated input sorted to, the primary index) is enough
// to invert it. The suffix array that sort comes from is built with the
// package's induced-sorting (SA-IS) engine rather than a naive rotation
// sort, so the cost stays linear in block size.
type BWT struct{}

// NewBWT creates a new BWT transform.
func NewBWT() (*BWT, error) {
	return &BWT{}, nil
}

// MaxEncodedLen returns the worst-case encoded size for an input of srcLen
// bytes: the transform doesn't grow the data itself, only prefixes it with
// the primary index.
func (t *BWT) MaxEncodedLen(srcLen int) int {
	return srcLen + _BWT_HEADER_LEN
}

// Forward computes the Burrows-Wheeler transform of src and writes it to
// dst, preceded by the 4-byte big-endian primary index.
func (t *BWT) Forward(src, dst []byte) (uint, uint, error) {
	n := len(src)

	if len(dst) < n+_BWT_HEADER_LEN {
		return 0, 0, errors.New("bwt: destination buffer too small")
	}

	if n == 0 {
		binary.BigEndian.PutUint32(dst[0:4], 0)
		return 0, uint(_BWT_HEADER_LEN), nil
	}

	// Suffixes of src+src that start in the first copy sort as the rotations of src.
	data := make([]int, 2*n)
	for i, b := range src {
		data[i] = int(b)
		data[n+i] = int(b)
	}

	sa := make([]int, 2*n)
	ComputeSuffixArray(data, sa, 0, 2*n, 256, false)

	row, pidx := 0, 0
	for _, p := range sa {
		if p < n {
			if p == 0 {
				pidx = row
			}
			dst[_BWT_HEADER_LEN+row] = src[(p+n-1)%n]
			row++
		}
	}

	binary.BigEndian.PutUint32(dst[0:4], uint32(pidx))

	return uint(n), uint(n + _BWT_HEADER_LEN), nil
}

// Inverse reconstructs the original block from a Burrows-Wheeler-transformed
// src (primary index prefix followed by the last column), via the standard
// count/cumulative-frequency LF-mapping.
func (t *BWT) Inverse(src, dst []byte) (uint, uint, error) {
	if len(src) < _BWT_HEADER_LEN {
		return 0, 0, errors.New("bwt: truncated header")
	}

	bwt := src[_BWT_HEADER_LEN:]
	n := len(bwt)

	if n == 0 {
		return uint(len(src)), 0, nil
	}

	if len(dst) < n {
		return 0, 0, errors.New("bwt: destination buffer too small")
	}

	pidx := int(binary.BigEndian.Uint32(src[0:4]))

	var starts [257]int
	for i := 0; i < n; i++ {
		starts[int(bwt[i])+1]++
	}
	for i := 0; i < 256; i++ {
		starts[i+1] += starts[i]
	}

	next := make([]int, n)
	cursor := starts
	for i := 0; i < n; i++ {
		c := bwt[i]
		next[cursor[c]] = i
		cursor[c]++
	}

	row := next[pidx]
	for i := 0; i < n; i++ {
		dst[i] = bwt[row]
		row = next[row]
	}

	return uint(len(src)), uint(n), nil
}
