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

// A StateMap entry packs a probability into the high bits of a uint32 (22
// bits for LPAQ1, 23 for FPAQ) and an adaptation count into the low bits. p(bit, cxt) returns the
// prediction for cxt (as a 12-bit probability) and folds the outcome of the
// *previous* call into that previous context before switching to the new
// one, so a StateMap always trails its own prediction by one bit.
//
// FPAQ and LPAQ1 use the same update rule with different numeric widths: a
// 9-bit vs 10-bit count field, a 512 vs 1024 entry reciprocal table, and an
// extra >>3 damping term on the LPAQ1 side. stateMapKind carries those
// widths so StateMap itself is not forked between the two callers.
type stateMapKind struct {
	countMask  uint32
	countLimit uint32
	prShift    uint  // shift that extracts the probability (all 22 bits for LPAQ1, the top 18 of 23 for FPAQ)
	errShift   uint  // (bit << errShift) forms the target probability
	errDamp    uint  // extra right-shift applied to the prediction error
	recMask    uint32
	rec        []uint32
}

var fpaqStateMapKind = stateMapKind{
	countMask:  511,
	countLimit: 127,
	prShift:    14,
	errShift:   18,
	errDamp:    0,
	recMask:    0xFFFFFE00,
	rec:        buildReciprocals(512, 32768, 5),
}

var lpaqStateMapKind = stateMapKind{
	countMask:  1023,
	countLimit: 127,
	prShift:    10,
	errShift:   22,
	errDamp:    3,
	recMask:    0xFFFFFC00,
	rec:        buildReciprocals(1024, 16384, 3),
}

// buildReciprocals computes rec[i] = num/(2*i+den), the per-count learning
// rate used by StateMap.update: fast early on, slowing as a context accrues
// observations.
func buildReciprocals(n int, num uint32, den uint32) []uint32 {
	rec := make([]uint32, n)

	for i := 0; i < n; i++ {
		rec[i] = num / (uint32(2*i) + den)
	}

	return rec
}

// StateMap maps a discrete context to an adaptive 12-bit probability.
type StateMap struct {
	kind   *stateMapKind
	cxt    uint32
	cxtMap []uint32
}

func newStateMap(n int, kind *stateMapKind) *StateMap {
	cxtMap := make([]uint32, n)

	for i := range cxtMap {
		cxtMap[i] = 1 << 31
	}

	return &StateMap{kind: kind, cxtMap: cxtMap}
}

// NewFPAQStateMap creates a StateMap with FPAQ's 9-bit count / 512-entry
// reciprocal table.
func NewFPAQStateMap(n int) *StateMap {
	return newStateMap(n, &fpaqStateMapKind)
}

// NewLPAQStateMap creates a StateMap with LPAQ1's 10-bit count / 1024-entry
// reciprocal table.
func NewLPAQStateMap(n int) *StateMap {
	return newStateMap(n, &lpaqStateMapKind)
}

// P folds bit into the current context's entry, switches to cxt, and
// returns the prediction now stored for cxt.
func (s *StateMap) P(bit int, cxt uint32) int {
	s.update(bit)
	s.cxt = cxt
	return int(s.cxtMap[s.cxt] >> 20)
}

func (s *StateMap) update(bit int) {
	k := s.kind
	count := s.cxtMap[s.cxt] & k.countMask
	pr := int32(s.cxtMap[s.cxt] >> k.prShift)

	if count < k.countLimit {
		s.cxtMap[s.cxt]++
	}

	prErr := (int32(bit) << k.errShift) - pr

	if k.errDamp > 0 {
		prErr >>= k.errDamp
	}

	delta := uint32(prErr*int32(k.rec[count])) & k.recMask
	s.cxtMap[s.cxt] += delta
}
