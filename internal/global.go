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

// Package internal holds fixed-point numeric tables shared by the entropy
// package: the logistic squash/stretch pair used to move predictions between
// probability space ([0,4095]) and stretched (log-odds) space ([-2047,2047]).
package internal

// squashAnchors are 33 samples of 4096/(1+exp(-x/256)) spaced every 128 units
// of stretched probability, from x=-2048 to x=2048.
var squashAnchors = [33]int{
	1, 2, 3, 6, 10, 16, 27, 45, 73, 120, 194, 310, 488, 747, 1101,
	1546, 2047, 2549, 2994, 3348, 3607, 3785, 3901, 3975, 4022,
	4050, 4068, 4079, 4085, 4089, 4092, 4093, 4094,
}

// Squash maps a stretched probability d in [-2047,2047] to a probability in
// [0,4095] by interpolating between the two nearest of the 33 anchors.
func Squash(d int) int {
	if d > 2047 {
		return 4095
	}

	if d < -2047 {
		return 0
	}

	iw := d & 127
	idx := (d >> 7) + 16
	return (squashAnchors[idx]*(128-iw) + squashAnchors[idx+1]*iw + 64) >> 7
}

// Stretch is the inverse of Squash, built once at init time by inverting the
// piecewise-linear Squash curve: Stretch[p] is the smallest x in
// [-2047,2047] with Squash(x) >= p, and Stretch[4095] = 2047 since Squash
// never exceeds 4094. Where several x share one Squash value, only the
// smallest of them is stored.
var Stretch [4096]int

func init() {
	pi := 0

	for x := -2047; x <= 2047; x++ {
		i := Squash(x)

		for j := pi; j <= i; j++ {
			Stretch[j] = x
		}

		pi = i + 1
	}

	Stretch[4095] = 2047
}
