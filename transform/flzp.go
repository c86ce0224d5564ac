/*
Copyright 2011-2026 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License")
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
	"errors"
)

const (
	_FLZP_BUF_SIZE = 1 << 22
	_FLZP_HT_SIZE  = _FLZP_BUF_SIZE / 4
)

// flzpState is the order-4 LZP match engine shared by FLZP's compress and
// decompress paths: a rotating context buffer, a hash table mapping a
// 4-byte context hash to the last position it was seen at, and (while
// compressing) an in-progress match position/length pair.
type flzpState struct {
	buf    []byte
	ht     []uint32
	enc    [256]byte
	hash   int
	mPos   int
	mLen   int
	maxLen int
	p      int
	dst    []byte
	outPos int
}

func newFLZPState(dst []byte) *flzpState {
	return &flzpState{
		buf: make([]byte, _FLZP_BUF_SIZE),
		ht:  make([]uint32, _FLZP_HT_SIZE),
		dst: dst,
	}
}

func (s *flzpState) writeByte(b byte) error {
	if s.outPos >= len(s.dst) {
		return errors.New("flzp: destination buffer too small")
	}
	s.dst[s.outPos] = b
	s.outPos++
	return nil
}

func (s *flzpState) writeBytes(bs []byte) error {
	if s.outPos+len(bs) > len(s.dst) {
		return errors.New("flzp: destination buffer too small")
	}
	copy(s.dst[s.outPos:], bs)
	s.outPos += len(bs)
	return nil
}

// update folds b into the rotating buffer and the order-4 context hash,
// and records the position the hash's context last ended at.
func (s *flzpState) update(b byte) {
	s.ht[s.hash] = uint32(s.p)
	s.hash = (s.hash*96 + int(b)) % _FLZP_HT_SIZE
	s.buf[s.p%_FLZP_BUF_SIZE] = b
	s.p++
}

func (s *flzpState) updateAndWrite(b byte) error {
	if err := s.writeByte(b); err != nil {
		return err
	}
	s.update(b)
	return nil
}

// outputMatch flushes whatever pending match flzpState.compress has
// accumulated: a single matched byte is emitted as a literal (cheaper than a
// one-byte match code), longer runs as their encoded match-length byte.
func (s *flzpState) outputMatch() error {
	if s.mLen == 0 {
		return nil
	}

	var b byte
	if s.mLen == 1 {
		b = s.buf[(s.p-1)%_FLZP_BUF_SIZE]
	} else {
		b = s.enc[s.mLen]
	}

	s.mLen = 0
	return s.writeByte(b)
}

// compress extends the in-progress match if b continues it, otherwise
// flushes the pending match and starts a new one (or falls back to a
// literal) before folding b into the context model.
func (s *flzpState) compress(b byte) error {
	if s.mLen == 0 {
		s.mPos = int(s.ht[s.hash])
	}

	next := (s.mPos + s.mLen) % _FLZP_BUF_SIZE

	if s.mLen < s.maxLen && s.buf[next] == b {
		s.mLen++
	} else {
		if err := s.outputMatch(); err != nil {
			return err
		}

		s.mPos = int(s.ht[s.hash])

		if s.buf[s.mPos%_FLZP_BUF_SIZE] == b {
			s.mLen = 1
		} else if err := s.writeByte(b); err != nil {
			return err
		}
	}

	s.update(b)
	return nil
}

// FLZP is a byte-oriented LZP codec: every block opens with a 32-byte
// decoding-table header (a bitmap of which of the 256 byte values appear
// literally versus which code a match length) and closes with an
// end-of-block code, so the table can be tuned per block and match lengths
// can be packed into whichever codes the block's literal alphabet leaves
// unused.
type FLZP struct{}

// NewFLZP creates a new FLZP transform.
func NewFLZP() (*FLZP, error) {
	return &FLZP{}, nil
}

// MaxEncodedLen returns the worst-case encoded size for an input of srcLen
// bytes: one output byte per input byte, plus a 32-byte header and a
// terminator per block. A block closes at 64KiB or once 223 distinct byte
// values have appeared, so every block but the last holds at least 223
// bytes.
func (t *FLZP) MaxEncodedLen(srcLen int) int {
	return srcLen + (srcLen/223+1)*34
}

// Forward compresses src into dst.
func (t *FLZP) Forward(src, dst []byte) (uint, uint, error) {
	s := newFLZPState(dst)
	srcPos := 0

	for {
		var seen [32]byte
		maxLen := 255
		blockSize := 0
		start := srcPos

		for maxLen > 32 && blockSize < (1<<16) && srcPos < len(src) {
			b := src[srcPos]
			srcPos++
			blockSize++

			if seen[b>>3]&(1<<(b&7)) == 0 {
				maxLen--
				seen[b>>3] |= 1 << (b & 7)
			}
		}

		if blockSize < 1 {
			break
		}

		j := 0
		for i := 0; i < 256; i++ {
			if seen[i>>3]&(1<<(uint(i)&7)) == 0 {
				s.enc[j] = byte(i)
				j++
			}
		}

		if err := s.writeBytes(seen[:]); err != nil {
			return uint(start), uint(s.outPos), err
		}

		s.maxLen = maxLen

		for i := start; i < start+blockSize; i++ {
			if err := s.compress(src[i]); err != nil {
				return uint(i), uint(s.outPos), err
			}
		}

		if err := s.outputMatch(); err != nil {
			return uint(srcPos), uint(s.outPos), err
		}

		if err := s.writeByte(s.enc[0]); err != nil {
			return uint(srcPos), uint(s.outPos), err
		}
	}

	return uint(srcPos), uint(s.outPos), nil
}

// Inverse decompresses src into dst.
func (t *FLZP) Inverse(src, dst []byte) (uint, uint, error) {
	if len(src) == 0 {
		return 0, 0, nil
	}

	s := newFLZPState(dst)
	var dec [256]int32
	srcPos := 0

	readHeader := func() bool {
		if srcPos+32 > len(src) {
			return false
		}

		maxLen := int32(-1)
		for i := 0; i < 32; i++ {
			b := src[srcPos]
			srcPos++

			for j := 0; j < 8; j++ {
				if b&(1<<uint(j)) != 0 {
					dec[i*8+j] = -1
				} else {
					maxLen++
					dec[i*8+j] = maxLen
				}
			}
		}

		return true
	}

	if !readHeader() {
		return 0, 0, errors.New("flzp: truncated header")
	}

	for srcPos < len(src) {
		b := src[srcPos]
		srcPos++
		d := dec[b]

		switch {
		case d == 0:
			if !readHeader() {
				return uint(srcPos), uint(s.outPos), nil
			}
		case d < 0:
			if err := s.updateAndWrite(b); err != nil {
				return uint(srcPos), uint(s.outPos), err
			}
		default:
			mch := int(s.ht[s.hash])
			for i := int32(0); i < d; i++ {
				ob := s.buf[(mch+int(i))%_FLZP_BUF_SIZE]
				if err := s.updateAndWrite(ob); err != nil {
					return uint(srcPos), uint(s.outPos), err
				}
			}
		}
	}

	return uint(srcPos), uint(s.outPos), nil
}
