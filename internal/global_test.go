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

package internal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSquashStretchIdempotence(t *testing.T) {
	for p := 0; p <= 4095; p++ {
		d := Stretch[p]
		got := Squash(d)
		require.LessOrEqualf(t, abs(got-p), 1, "squash(stretch(%d)) = %d", p, got)
	}
}

func TestStretchSquashMonotonicity(t *testing.T) {
	prev := Squash(-2047)
	for d := -2046; d <= 2047; d++ {
		cur := Squash(d)
		require.GreaterOrEqual(t, cur, prev, "squash must be non-decreasing at d=%d", d)
		require.GreaterOrEqual(t, Stretch[cur], Stretch[prev], "stretch(squash(d)) must be non-decreasing at d=%d", d)
		prev = cur
	}
}

func TestSquashSaturatesAtBounds(t *testing.T) {
	require.Equal(t, 0, Squash(-2048))
	require.Equal(t, 4095, Squash(2048))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
