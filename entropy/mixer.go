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

// Mixer combines several independent stretched predictions with a single
// layer of logistic regression. Predictions p_i are stretched to log-odds
// t_i, combined as p = squash(sum(t_i * w_i)), and the weights are adjusted
// after the fact toward the observed bit. The weight set used for a given
// bit is chosen by a small context (e.g. model agreement / match length),
// which lets unrelated regions of the input train independent weight
// vectors.
type Mixer struct {
	maxIn   int
	inputs  []int32
	weights []int32
	whtSet  int
	pr      int32
}

// NewMixer creates a Mixer with m independent weight sets of n inputs each.
func NewMixer(n, m int) *Mixer {
	return &Mixer{
		maxIn:   n,
		inputs:  make([]int32, 0, n),
		weights: make([]int32, n*m),
		pr:      2048,
	}
}

// Add appends a stretched prediction to the current bit's input vector.
func (m *Mixer) Add(pr int) {
	m.inputs = append(m.inputs, int32(pr))
}

// Set selects the weight set used for the current bit's mix.
func (m *Mixer) Set(cxt uint32) {
	m.whtSet = int(cxt) * m.maxIn
}

// P computes the weighted mix of the accumulated inputs.
func (m *Mixer) P() int {
	var dot int32

	w := m.weights[m.whtSet:]

	for i, in := range m.inputs {
		dot += in * w[i]
	}

	m.pr = int32(internal.Squash(int(dot >> 16)))
	return int(m.pr)
}

// Update trains the active weight set toward bit and clears the input
// vector for the next bit.
func (m *Mixer) Update(bit int) {
	err := (int32(bit<<12) - m.pr) * 7
	w := m.weights[m.whtSet:]

	for i, in := range m.inputs {
		w[i] += (in*err + 0x8000) >> 16
	}

	m.inputs = m.inputs[:0]
}
