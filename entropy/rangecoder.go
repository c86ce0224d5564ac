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
	"bufio"
	"io"

	"github.com/pkg/errors"

	paqc "github.com/aufdj/compression-algorithms"
)

// RangeEncoder is a carry-less 32-bit binary arithmetic coder. It narrows the
// [low, high] interval (both ends inclusive) toward whichever half a predictor's probability
// assigns to the observed bit, and emits a byte whenever low and high agree
// on their top byte. FPAQ and LPAQ1 differ only in the Predictor they drive
// this with; the coding arithmetic itself is shared between both.
type RangeEncoder struct {
	low, high uint32
	predictor paqc.Predictor
	w         *bufio.Writer
}

// NewRangeEncoder creates a RangeEncoder writing to w and driven by
// predictor.
func NewRangeEncoder(w io.Writer, predictor paqc.Predictor) *RangeEncoder {
	return &RangeEncoder{high: 0xFFFFFFFF, predictor: predictor, w: bufio.NewWriter(w)}
}

// EncodeBit codes a single bit against the predictor's current probability,
// then folds the bit into the predictor so it can predict the next one.
func (e *RangeEncoder) EncodeBit(bit int) error {
	p := uint32(e.predictor.Get())
	if p < 2048 {
		p++
	}

	r := e.high - e.low
	mid := e.low + (r>>12)*p + ((r & 0x0FFF) * p >> 12)

	if bit == 1 {
		e.high = mid
	} else {
		e.low = mid + 1
	}

	e.predictor.Update(bit)

	for (e.high^e.low)&0xFF000000 == 0 {
		if err := e.w.WriteByte(byte(e.high >> 24)); err != nil {
			return errors.Wrap(err, "range encoder: write byte")
		}

		e.high = (e.high << 8) + 255
		e.low <<= 8
	}

	return nil
}

// Flush writes the 4 bytes of high needed to unambiguously pin down the
// final interval, regardless of how few bits were coded, so the decoder's
// 4-byte priming read never runs past the end of the stream, then flushes
// the underlying writer.
func (e *RangeEncoder) Flush() error {
	for i := 0; i < 4; i++ {
		if err := e.w.WriteByte(byte(e.high >> 24)); err != nil {
			return errors.Wrap(err, "range encoder: write flush byte")
		}

		e.high <<= 8
	}

	return e.w.Flush()
}

// RangeDecoder is the inverse of RangeEncoder.
type RangeDecoder struct {
	low, high uint32
	x         uint32
	predictor paqc.Predictor
	r         *bufio.Reader
}

// NewRangeDecoder creates a RangeDecoder reading from r and driven by
// predictor. It primes the coder's 4-byte window immediately, so r must
// already be positioned at the first coded byte.
func NewRangeDecoder(r io.Reader, predictor paqc.Predictor) (*RangeDecoder, error) {
	d := &RangeDecoder{high: 0xFFFFFFFF, predictor: predictor, r: bufio.NewReader(r)}

	for i := 0; i < 4; i++ {
		b, err := d.r.ReadByte()
		if err != nil {
			return nil, errors.Wrap(err, "range decoder: prime window")
		}

		d.x = (d.x << 8) + uint32(b)
	}

	return d, nil
}

// DecodeBit decodes a single bit against the predictor's current
// probability, then folds the bit into the predictor so it can predict the
// next one.
func (d *RangeDecoder) DecodeBit() (int, error) {
	p := uint32(d.predictor.Get())
	if p < 2048 {
		p++
	}

	r := d.high - d.low
	mid := d.low + (r>>12)*p + ((r & 0x0FFF) * p >> 12)

	bit := 0
	if d.x <= mid {
		bit = 1
		d.high = mid
	} else {
		d.low = mid + 1
	}

	d.predictor.Update(bit)

	for (d.high^d.low)&0xFF000000 == 0 {
		d.high = (d.high << 8) + 255
		d.low <<= 8

		b, err := d.r.ReadByte()
		if err != nil {
			return 0, errors.Wrap(err, "range decoder: read byte")
		}

		d.x = (d.x << 8) + uint32(b)
	}

	return bit, nil
}
