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
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// lpaq1HeaderLen is the size in bytes of the block-data header written at
// the start of every LPAQ1 archive: final block size, base (all other
// blocks') size, and block count, each a little-endian uint64.
const lpaq1HeaderLen = 24

// LPAQ1Encoder codes an input stream block by block, each Write call coding
// one block. Since the size of the final block is only known once Dispose is
// called, the header is reserved as zeroes up front and rewritten in place
// once coding finishes, so w must support Seek.
type LPAQ1Encoder struct {
	re        *RangeEncoder
	w         io.WriteSeeker
	baseSize  uint64
	finalSize uint64
	count     uint64
}

// NewLPAQ1Encoder creates an LPAQ1Encoder writing to w, reserving the
// 24-byte block-data header at the current position.
func NewLPAQ1Encoder(w io.WriteSeeker) (*LPAQ1Encoder, error) {
	var hdr [lpaq1HeaderLen]byte
	if _, err := w.Write(hdr[:]); err != nil {
		return nil, errors.Wrap(err, "lpaq1 encoder: reserve header")
	}

	return &LPAQ1Encoder{re: NewRangeEncoder(w, NewLPAQ1Predictor()), w: w}, nil
}

// Write codes block as a single LPAQ1 block. The size of the first call
// becomes the archive's base block size; the size of whichever call turns
// out to be last becomes the final block size recorded in the header.
func (e *LPAQ1Encoder) Write(block []byte) (int, error) {
	if e.count == 0 {
		e.baseSize = uint64(len(block))
	}

	e.finalSize = uint64(len(block))
	e.count++

	for _, b := range block {
		for i := 7; i >= 0; i-- {
			if err := e.re.EncodeBit(int(b>>uint(i)) & 1); err != nil {
				return 0, err
			}
		}
	}

	return len(block), nil
}

// Dispose flushes the range coder, then seeks back to the start of the
// archive to fill in the block-data header now that every block's size is
// known.
func (e *LPAQ1Encoder) Dispose() error {
	if err := e.re.Flush(); err != nil {
		return err
	}

	if _, err := e.w.Seek(0, io.SeekStart); err != nil {
		return errors.Wrap(err, "lpaq1 encoder: seek to header")
	}

	var hdr [lpaq1HeaderLen]byte
	binary.LittleEndian.PutUint64(hdr[0:8], e.finalSize)
	binary.LittleEndian.PutUint64(hdr[8:16], e.baseSize)
	binary.LittleEndian.PutUint64(hdr[16:24], e.count)

	if _, err := e.w.Write(hdr[:]); err != nil {
		return errors.Wrap(err, "lpaq1 encoder: write header")
	}

	return nil
}

// LPAQ1Decoder is the inverse of LPAQ1Encoder.
type LPAQ1Decoder struct {
	rd        *RangeDecoder
	baseSize  uint64
	finalSize uint64
	count     uint64
	produced  uint64
}

// NewLPAQ1Decoder creates an LPAQ1Decoder reading from r, which must be
// positioned at the start of an LPAQ1 archive (its 24-byte header).
func NewLPAQ1Decoder(r io.Reader) (*LPAQ1Decoder, error) {
	var hdr [lpaq1HeaderLen]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, errors.Wrap(err, "lpaq1 decoder: read header")
	}

	finalSize := binary.LittleEndian.Uint64(hdr[0:8])
	baseSize := binary.LittleEndian.Uint64(hdr[8:16])
	count := binary.LittleEndian.Uint64(hdr[16:24])

	rd, err := NewRangeDecoder(r, NewLPAQ1Predictor())
	if err != nil {
		return nil, errors.Wrap(err, "lpaq1 decoder: init")
	}

	return &LPAQ1Decoder{rd: rd, baseSize: baseSize, finalSize: finalSize, count: count}, nil
}

// Read decodes the next block into block, which must be at least as large
// as BlockSize() reports for that call. It returns io.EOF once every block
// recorded in the header has been produced.
func (d *LPAQ1Decoder) Read(block []byte) (int, error) {
	if d.produced >= d.count {
		return 0, io.EOF
	}

	size := d.baseSize
	if d.produced == d.count-1 {
		size = d.finalSize
	}

	if uint64(len(block)) < size {
		return 0, errors.New("lpaq1 decoder: block buffer smaller than next block")
	}

	for i := uint64(0); i < size; i++ {
		b := 1
		for j := 0; j < 8; j++ {
			bit, err := d.rd.DecodeBit()
			if err != nil {
				return int(i), errors.Wrap(err, "lpaq1 decoder: byte bit")
			}
			b = (b << 1) + bit
		}
		block[i] = byte(b - 256)
	}

	d.produced++
	return int(size), nil
}

// BlockSize returns the size of the block the next Read call will produce,
// or 0 if every block has already been produced.
func (d *LPAQ1Decoder) BlockSize() int {
	if d.produced >= d.count {
		return 0
	}

	if d.produced == d.count-1 {
		return int(d.finalSize)
	}

	return int(d.baseSize)
}
