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
	"github.com/aufdj/compression-algorithms/internal"
)

// APM (Adaptive Probability Map, also called SSE - Secondary Symbol
// Estimation) refines an existing prediction under a discrete context. Each
// context owns 33 anchors spaced across stretched-probability space; a
// lookup interpolates between the two anchors nearest the stretched input
// probability, and the update nudges only those two anchors.
type APM struct {
	bin  int
	cxts int
	bins []uint16
}

// NewAPM creates an APM with n contexts, each initialized so that an input
// probability maps back to (approximately) itself before any learning.
func NewAPM(n int) *APM {
	bins := make([]uint16, n*33)

	for c := 0; c < n; c++ {
		for i := 0; i < 33; i++ {
			bins[c*33+i] = uint16(internal.Squash((i-16)*128) * 16)
		}
	}

	return &APM{cxts: n, bins: bins}
}

// P refines pr under context cxt given the observed rate-of-adaptation rate,
// folding the previous call's bit into the previously selected bin first.
func (a *APM) P(bit, rate, pr, cxt int) int {
	a.update(bit, rate)

	pr = internal.Stretch[pr] // -2047..2047
	iw := pr & 127            // interpolation weight across 33 anchors
	a.bin = ((pr+2048)>>7 + cxt*33)

	lo := int(a.bins[a.bin])
	hi := int(a.bins[a.bin+1])
	return (lo*(128-iw) + hi*iw) >> 11
}

func (a *APM) update(bit, rate int) {
	// Target is 65536 if bit==1, 0 if bit==0; g biases the nudge toward that
	// target while weighting the learning rate by 'rate'.
	g := (bit << 16) + (bit << rate) - bit - bit
	lo := int(a.bins[a.bin])
	hi := int(a.bins[a.bin+1])
	a.bins[a.bin] = uint16(lo + ((g - lo) >> rate))
	a.bins[a.bin+1] = uint16(hi + ((g - hi) >> rate))
}
