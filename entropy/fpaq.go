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

// FPAQPredictor is a single bitwise context model: cxt walks the partial
// current byte as a one-prefixed binary trie position, cxt4 keeps the last
// four whole bytes, a flat 256-entry bit-history table feeds a single
// StateMap, and five APM/SSE stages refine the StateMap's prediction under
// progressively longer contexts before it reaches the arithmetic coder.
//
// Go's shift operators bind tighter than +/- (the opposite of the source
// this is grounded on, where >> binds loosest of all), so every
// apm-combining expression below carries explicit parens even where the
// grounding source did not need them.
type FPAQPredictor struct {
	cxt   uint32
	cxt4  uint32
	pr    int
	state [256]uint8
	sm    *StateMap
	apm   [5]*APM
}

// NewFPAQPredictor builds an FPAQPredictor with freshly initialized state.
func NewFPAQPredictor() *FPAQPredictor {
	return &FPAQPredictor{
		pr: 2048,
		sm: NewFPAQStateMap(65536),
		apm: [5]*APM{
			NewAPM(256),
			NewAPM(256),
			NewAPM(65536),
			NewAPM(8192),
			NewAPM(16384),
		},
	}
}

// Get returns the predictor's current probability that the next bit is 1, as
// a 12-bit fixed-point value in [0, 4096).
func (p *FPAQPredictor) Get() int {
	return p.pr
}

// Update folds the just-observed bit into the bit-history table, the
// StateMap, and the five chained APM stages, leaving the new prediction in
// p.pr for the next bit.
func (p *FPAQPredictor) Update(bit int) {
	p.state[p.cxt] = nextState(p.state[p.cxt], bit)

	p.cxt = p.cxt + p.cxt + uint32(bit)
	if p.cxt >= 256 {
		p.cxt4 = (p.cxt4 << 8) | (p.cxt - 256)
		p.cxt = 0
	}

	p.pr = p.sm.P(bit, uint32(p.state[p.cxt]))

	cxt := p.cxt
	p.pr = (p.apm[0].P(bit, 5, p.pr, int(cxt)) + p.apm[1].P(bit, 9, p.pr, int(cxt)) + 1) >> 1

	cxt = p.cxt | ((p.cxt4 << 8) & 0xFF00)
	p.pr = p.apm[2].P(bit, 7, p.pr, int(cxt))

	cxt = p.cxt | (p.cxt4 & 0x1F00)
	p.pr = (p.apm[3].P(bit, 7, p.pr, int(cxt))*3 + p.pr + 2) >> 2

	hash := (p.cxt4 & 0xFFFFFF) * 123456791 >> 18
	cxt = p.cxt ^ hash
	p.pr = (p.apm[4].P(bit, 7, p.pr, int(cxt)) + p.pr + 1) >> 1
}
