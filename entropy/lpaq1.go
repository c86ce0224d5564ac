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

import "github.com/aufdj/compression-algorithms/internal"

// lpaq1Mem sizes the shared HashTable and MatchModel memory. Doubling the
// base unit for the HashTable (as upstream lpaq1 does) gives the order-2/3/4/6
// and word models enough slots to keep collisions rare at the default 8MiB
// working set.
const lpaq1Mem = 1 << 23

// LPAQ1Predictor is a context-mixing bit predictor: seven independent models
// (word, match, and context orders 1/2/3/4/6) each predict the next bit, a
// Mixer combines their stretched predictions under a small context, and two
// APM/SSE stages refine the mix before it is handed to the arithmetic coder.
type LPAQ1Predictor struct {
	pr   int
	wm   *wordModel
	mm   *MatchModel
	cm1  *order1Model
	cm2  *order2Model
	cm3  *order3Model
	cm4  *order4Model
	cm6  *order6Model
	mxr  *Mixer
	apm1 *APM
	apm2 *APM
}

// NewLPAQ1Predictor builds a Predictor with a freshly allocated, shared
// HashTable and MatchModel buffer.
func NewLPAQ1Predictor() *LPAQ1Predictor {
	ht := NewHashTable(lpaq1Mem * 2)

	cm1 := newOrder1Model()

	p := &LPAQ1Predictor{
		pr:   2048,
		cm1:  cm1,
		cm2:  newOrder2Model(ht),
		cm3:  newOrder3Model(ht),
		cm4:  newOrder4Model(ht),
		cm6:  newOrder6Model(ht),
		wm:   newWordModel(ht),
		mm:   NewMatchModel(lpaq1Mem),
		mxr:  NewMixer(7, 80),
		apm1: NewAPM(256),
		apm2: NewAPM(16384),
	}

	// Every hashed-order model's state pointer starts aliased onto the
	// order-1 model's own flat table, exactly as upstream initializes every
	// raw state pointer to &cm1.t0[0] before the first real byte boundary
	// reassigns it via a HashTable lookup.
	p.wm.state = statePtr{buf: cm1.t0, idx: 0}
	p.cm2.state = statePtr{buf: cm1.t0, idx: 0}
	p.cm3.state = statePtr{buf: cm1.t0, idx: 0}
	p.cm4.state = statePtr{buf: cm1.t0, idx: 0}
	p.cm6.state = statePtr{buf: cm1.t0, idx: 0}

	return p
}

// Get returns the predictor's current probability that the next bit is 1, as
// a 12-bit fixed-point value in [0, 4096).
func (p *LPAQ1Predictor) Get() int {
	return p.pr
}

// Update folds the just-observed bit into every submodel, mixes their
// predictions, and refines the mix through two SSE stages, leaving the new
// prediction in p.pr for the next bit.
func (p *LPAQ1Predictor) Update(bit int) {
	p.mxr.Update(bit)

	p.mxr.Add(internal.Stretch[p.mm.P(bit)])
	p.mxr.Add(internal.Stretch[p.wm.p(bit)])
	p.mxr.Add(internal.Stretch[p.cm1.p(bit)])
	p.mxr.Add(internal.Stretch[p.cm2.p(bit)])
	p.mxr.Add(internal.Stretch[p.cm3.p(bit)])
	p.mxr.Add(internal.Stretch[p.cm4.p(bit)])
	p.mxr.Add(internal.Stretch[p.cm6.p(bit)])

	order := p.order(p.mm.Len())
	p.mxr.Set(order + 10*(p.cm1.o1cxt>>13))

	p.pr = p.mxr.P()

	cxt := int(p.cm1.cxt)
	p.pr = (p.pr + 3*p.apm1.P(bit, 7, p.pr, cxt)) >> 2

	cxt = int(p.cm1.cxt ^ (p.cm1.o1cxt >> 2))
	p.pr = (p.pr + 3*p.apm2.P(bit, 7, p.pr, cxt)) >> 2
}

// order picks one of the Mixer's 80 weight sets: when the match model has no
// current match, order counts how many of the higher-order context models
// have a non-empty bit history; otherwise it scales with the match length.
func (p *LPAQ1Predictor) order(matchLen int) uint32 {
	var order uint32

	if matchLen == 0 {
		if p.cm2.state.get() != 0 {
			order++
		}
		if p.cm3.state.get() != 0 {
			order++
		}
		if p.cm4.state.get() != 0 {
			order++
		}
		if p.cm6.state.get() != 0 {
			order++
		}
	} else {
		order = 5
		if matchLen >= 8 {
			order++
		}
		if matchLen >= 12 {
			order++
		}
		if matchLen >= 16 {
			order++
		}
		if matchLen >= 32 {
			order++
		}
	}

	return order
}
