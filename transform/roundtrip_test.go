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

package transform

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	paqc "github.com/aufdj/compression-algorithms"
)

func newTransforms(t *testing.T) map[string]paqc.ByteTransform {
	t.Helper()

	lz77, err := NewLZ77()
	require.NoError(t, err)
	lzw, err := NewLZW()
	require.NoError(t, err)
	flzp, err := NewFLZP()
	require.NoError(t, err)
	huff, err := NewHuffman()
	require.NoError(t, err)
	bwt, err := NewBWT()
	require.NoError(t, err)

	return map[string]paqc.ByteTransform{
		"lz77": lz77, "lzw": lzw, "flzp": flzp, "huffman": huff, "bwt": bwt,
	}
}

func roundTrip(t *testing.T, name string, tr paqc.ByteTransform, data []byte) {
	t.Helper()

	dst := make([]byte, tr.MaxEncodedLen(len(data)))
	_, n, err := tr.Forward(data, dst)
	require.NoError(t, err, "%s forward", name)

	back := make([]byte, len(data)*4+4096)
	_, m, err := tr.Inverse(dst[:n], back)
	require.NoError(t, err, "%s inverse", name)

	require.True(t, bytes.Equal(data, back[:m]), "%s round trip mismatch", name)
}

func TestTransformsRoundTripEmpty(t *testing.T) {
	for name, tr := range newTransforms(t) {
		roundTrip(t, name, tr, nil)
	}
}

func TestTransformsRoundTrip256Bytes(t *testing.T) {
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}

	for name, tr := range newTransforms(t) {
		roundTrip(t, name, tr, data)
	}
}

func TestTransformsRoundTripRepeated(t *testing.T) {
	data := bytes.Repeat([]byte("abcabcabcabc"), 2000)

	for name, tr := range newTransforms(t) {
		roundTrip(t, name, tr, data)
	}
}

func TestTransformsRoundTripRandom(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	data := make([]byte, 64*1024)
	r.Read(data)

	for name, tr := range newTransforms(t) {
		roundTrip(t, name, tr, data)
	}
}

func TestTransformsRoundTripText(t *testing.T) {
	data := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog "), 50)

	for name, tr := range newTransforms(t) {
		roundTrip(t, name, tr, data)
	}
}

func TestTransformsDeterministic(t *testing.T) {
	data := []byte("deterministic output check, deterministic output check")

	for name, tr := range newTransforms(t) {
		dst1 := make([]byte, tr.MaxEncodedLen(len(data)))
		_, n1, err := tr.Forward(data, dst1)
		require.NoError(t, err)

		dst2 := make([]byte, tr.MaxEncodedLen(len(data)))
		_, n2, err := tr.Forward(data, dst2)
		require.NoError(t, err)

		require.Equal(t, n1, n2, "%s", name)
		require.True(t, bytes.Equal(dst1[:n1], dst2[:n2]), "%s", name)
	}
}
