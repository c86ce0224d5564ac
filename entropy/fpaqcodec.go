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

package entropy

import (
	"io"

	"github.com/pkg/errors"
)

// FPAQEncoder codes an arbitrary byte stream one byte at a time, preceding
// each with a continuation bit (1 = another byte follows, 0 = end of
// stream) so the decoder need not know the input length in advance.
type FPAQEncoder struct {
	re *RangeEncoder
}

// NewFPAQEncoder creates an FPAQEncoder writing coded bits to w.
func NewFPAQEncoder(w io.Writer) *FPAQEncoder {
	return &FPAQEncoder{re: NewRangeEncoder(w, NewFPAQPredictor())}
}

// Write codes every byte of block, each preceded by a continuation bit.
func (e *FPAQEncoder) Write(block []byte) (int, error) {
	for _, b := range block {
		if err := e.re.EncodeBit(1); err != nil {
			return 0, err
		}

		for i := 7; i >= 0; i-- {
			if err := e.re.EncodeBit(int(b>>uint(i)) & 1); err != nil {
				return 0, err
			}
		}
	}

	return len(block), nil
}

// Dispose codes the end-of-stream continuation bit and flushes the
// underlying range coder.
func (e *FPAQEncoder) Dispose() error {
	if err := e.re.EncodeBit(0); err != nil {
		return err
	}

	return e.re.Flush()
}

// FPAQDecoder is the inverse of FPAQEncoder.
type FPAQDecoder struct {
	rd *RangeDecoder
	eof bool
}

// NewFPAQDecoder creates an FPAQDecoder reading coded bits from r.
func NewFPAQDecoder(r io.Reader) (*FPAQDecoder, error) {
	rd, err := NewRangeDecoder(r, NewFPAQPredictor())
	if err != nil {
		return nil, errors.Wrap(err, "fpaq decoder: init")
	}

	return &FPAQDecoder{rd: rd}, nil
}

// Read fills block with decoded bytes, stopping at the end-of-stream
// continuation bit. It follows io.Reader convention: a short, non-error read
// is followed by a subsequent (0, io.EOF) once the stream is exhausted.
func (d *FPAQDecoder) Read(block []byte) (int, error) {
	if d.eof {
		return 0, io.EOF
	}

	n := 0

	for n < len(block) {
		cont, err := d.rd.DecodeBit()
		if err != nil {
			return n, errors.Wrap(err, "fpaq decoder: continuation bit")
		}

		if cont == 0 {
			d.eof = true
			if n == 0 {
				return 0, io.EOF
			}
			return n, nil
		}

		b := 1
		for i := 0; i < 8; i++ {
			bit, err := d.rd.DecodeBit()
			if err != nil {
				return n, errors.Wrap(err, "fpaq decoder: byte bit")
			}
			b = (b << 1) + bit
		}

		block[n] = byte(b - 256)
		n++
	}

	return n, nil
}
