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

// LPAQ1 predicts bitwise: an order-n context is the last n whole bytes plus
// whichever of the current byte's 0-7 most-significant bits have already
// been coded. cxt carries that partial byte as a one-prefixed binary trie
// position (1, then doubled-and-OR'd with each new bit) so it also doubles
// as the StateMap/HashTable sub-byte index; cxt4 keeps the last four whole
// bytes packed for the longer-order hashes.
//
// order2Model through order6Model and wordModel below share one shape
// (hashedOrderModel) and differ only in how they fold the completed byte
// into a context hash - this mirrors original_source's own per-order
// duplication by keeping one type and update method per order rather than a
// single generic model, since each order's fold is a distinct one-line
// formula, not shared behavior worth abstracting over.

// order1Model is the order-1 context model. Unlike the higher orders it
// owns its own flat 64K-entry state table directly instead of going through
// the shared HashTable, since an order-1 context (256 distinct previous
// bytes times 256 sub-byte trie positions) fits a flat array exactly.
type order1Model struct {
	bits  int
	cxt   uint32
	o1cxt uint32
	state statePtr
	t0    []uint8
	sm    *StateMap
}

func newOrder1Model() *order1Model {
	t0 := make([]uint8, 65536)
	return &order1Model{cxt: 1, t0: t0, state: statePtr{buf: t0, idx: 0}, sm: NewLPAQStateMap(256)}
}

func (c *order1Model) p(bit int) int {
	c.update(bit)
	return c.sm.P(bit, uint32(c.state.get()))
}

func (c *order1Model) update(bit int) {
	c.state.set(nextState(c.state.get(), bit))
	c.cxt = (c.cxt << 1) + uint32(bit)
	c.bits++

	if c.cxt >= 256 {
		c.cxt -= 256
		c.o1cxt = c.cxt << 8
		c.cxt = 1
		c.bits = 0
	}

	c.state = statePtr{buf: c.t0, idx: int(c.o1cxt + c.cxt)}
}

// hashedOrderModel is the shared shape of the order-2/3/4/6 and word
// context models: a HashTable-backed bit-history slot that rehashes at
// every byte boundary and again at the mid-byte (4-bit) mark.
type hashedOrderModel struct {
	bits  int
	cxt   uint32
	cxt4  uint32
	octx  uint32
	state statePtr
	sm    *StateMap
	ht    *HashTable
}

func newHashedOrderModel(ht *HashTable) hashedOrderModel {
	return hashedOrderModel{cxt: 1, sm: NewLPAQStateMap(256), ht: ht}
}

// advance folds bit into state and cxt/cxt4, and returns whether a byte
// just completed (so the caller can compute its order-specific hash).
func (m *hashedOrderModel) advance(bit int) bool {
	m.state.set(nextState(m.state.get(), bit))
	m.cxt = (m.cxt << 1) + uint32(bit)
	m.bits++

	if m.cxt >= 256 {
		m.cxt -= 256
		m.cxt4 = (m.cxt4 << 8) | m.cxt
		return true
	}

	return false
}

// rehashMidByte applies the mid-byte (bits==4) or sub-byte-offset update
// common to every hashed-order model once its order-specific octx is known
// for this byte.
func (m *hashedOrderModel) rehashMidByte(bit int) {
	if m.bits == 4 {
		m.state = m.ht.Slot(m.octx + m.cxt)
	} else if m.bits > 0 {
		j := (bit + 1) << ((m.bits & 3) - 1)
		m.state = m.state.add(j)
	}
}

type order2Model struct{ hashedOrderModel }

func newOrder2Model(ht *HashTable) *order2Model {
	return &order2Model{newHashedOrderModel(ht)}
}

func (m *order2Model) update(bit int) {
	if m.advance(bit) {
		m.octx = ((m.cxt4 & 0xFFFF) << 5) | 0x57000000
		m.state = m.ht.Slot(m.octx)
		m.cxt = 1
		m.bits = 0
	}

	m.rehashMidByte(bit)
}

func (m *order2Model) p(bit int) int {
	m.update(bit)
	return m.sm.P(bit, uint32(m.state.get()))
}

type order3Model struct{ hashedOrderModel }

func newOrder3Model(ht *HashTable) *order3Model {
	return &order3Model{newHashedOrderModel(ht)}
}

func (m *order3Model) update(bit int) {
	if m.advance(bit) {
		m.octx = (m.cxt4 << 8) * 3
		m.state = m.ht.Slot(m.octx)
		m.cxt = 1
		m.bits = 0
	}

	m.rehashMidByte(bit)
}

func (m *order3Model) p(bit int) int {
	m.update(bit)
	return m.sm.P(bit, uint32(m.state.get()))
}

type order4Model struct{ hashedOrderModel }

func newOrder4Model(ht *HashTable) *order4Model {
	return &order4Model{newHashedOrderModel(ht)}
}

func (m *order4Model) update(bit int) {
	if m.advance(bit) {
		m.octx = m.cxt4 * 5
		m.state = m.ht.Slot(m.octx)
		m.cxt = 1
		m.bits = 0
	}

	m.rehashMidByte(bit)
}

func (m *order4Model) p(bit int) int {
	m.update(bit)
	return m.sm.P(bit, uint32(m.state.get()))
}

type order6Model struct{ hashedOrderModel }

func newOrder6Model(ht *HashTable) *order6Model {
	return &order6Model{newHashedOrderModel(ht)}
}

func (m *order6Model) update(bit int) {
	if m.advance(bit) {
		m.octx = (m.octx*(11<<5) + m.cxt*13) & 0x3FFFFFFF
		m.state = m.ht.Slot(m.octx)
		m.cxt = 1
		m.bits = 0
	}

	m.rehashMidByte(bit)
}

func (m *order6Model) p(bit int) int {
	m.update(bit)
	return m.sm.P(bit, uint32(m.state.get()))
}

// wordModel folds consecutive ASCII letters (case-folded) into a rolling
// hash that resets on any non-letter byte, giving a unigram "current word"
// context useful for natural-language text.
type wordModel struct{ hashedOrderModel }

func newWordModel(ht *HashTable) *wordModel {
	return &wordModel{newHashedOrderModel(ht)}
}

func (m *wordModel) update(bit int) {
	if m.advance(bit) {
		switch {
		case m.cxt >= 'A' && m.cxt <= 'Z':
			m.cxt += 32 // fold to lowercase
			m.octx = (m.octx + m.cxt) * (7 << 3)
		case m.cxt >= 'a' && m.cxt <= 'z':
			m.octx = (m.octx + m.cxt) * (7 << 3)
		default:
			m.octx = 0
		}

		m.state = m.ht.Slot(m.octx)
		m.cxt = 1
		m.bits = 0
	}

	m.rehashMidByte(bit)
}

func (m *wordModel) p(bit int) int {
	m.update(bit)
	return m.sm.P(bit, uint32(m.state.get()))
}
