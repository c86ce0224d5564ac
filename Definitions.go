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

// Package paqc defines the top level interfaces shared by every codec and
// transform in this module.
//
// Implementations live in sub-packages: entropy (the bit-history automaton,
// the FPAQ/LPAQ1 predictors and the shared range coder) and transform (the
// LZ77/LZW/FLZP/Huffman/BWT peer modes).
package paqc

// ByteTransform turns a source byte slice into a destination byte slice and
// back. The result may have a different size than the source. A transform
// must be stateless across calls: no information may be retained between
// one invocation of Forward or Inverse and the next.
type ByteTransform interface {
	// Forward applies the function to src and writes the result to dst.
	// Returns the number of bytes read, the number of bytes written, and
	// possibly an error.
	Forward(src, dst []byte) (uint, uint, error)

	// Inverse applies the reverse function to src and writes the result to
	// dst. Returns the number of bytes read, the number of bytes written,
	// and possibly an error.
	Inverse(src, dst []byte) (uint, uint, error)

	// MaxEncodedLen returns the maximum size required for the encoding
	// output buffer given a source length. Returns -1 if no bound is known.
	MaxEncodedLen(srcLen int) int
}

// Predictor predicts the probability of the next coded bit being 1.
type Predictor interface {
	// Update updates the internal probability model given the bit that was
	// actually coded.
	Update(bit int)

	// Get returns the current prediction that the next bit is 1, scaled to
	// [0..4095]. 2048 represents a 50% probability.
	Get() int
}

// EntropyEncoder arithmetic-codes a byte stream bit by bit, driven by a
// Predictor. Implementations own the coder's low/high range state; the
// Predictor owns the statistical model.
type EntropyEncoder interface {
	// Write encodes the bytes in block and returns the number of bytes
	// consumed, or an error.
	Write(block []byte) (int, error)

	// Dispose flushes any pending coder state. Must be called exactly once,
	// after the last call to Write. Encoding after Dispose is undefined.
	Dispose() error
}

// EntropyDecoder reverses an EntropyEncoder's output.
type EntropyDecoder interface {
	// Read decodes into block and returns the number of bytes produced, or
	// an error. Returns (0, io.EOF) once the encoded stream is exhausted.
	Read(block []byte) (int, error)
}
