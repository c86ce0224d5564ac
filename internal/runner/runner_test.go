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

package runner

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestRunRoundTripAllAlgorithms(t *testing.T) {
	algos := []string{"-fpaq", "-lpaq1", "-lz77", "-lzw", "-flzp", "-huffman", "-bwt"}
	data := []byte("the quick brown fox jumps over the lazy dog, the quick brown fox jumps over the lazy dog")

	dir := t.TempDir()
	in := filepath.Join(dir, "in.bin")
	require.NoError(t, os.WriteFile(in, data, 0644))

	log := logrus.New()
	log.SetOutput(bytes.NewBuffer(nil))

	for _, algo := range algos {
		compressed := filepath.Join(dir, algo+".cmp")
		decompressed := filepath.Join(dir, algo+".out")

		require.NoError(t, Run(log, false, algo, "-c", in, compressed), algo)
		require.NoError(t, Run(log, false, algo, "-d", compressed, decompressed), algo)

		out, err := os.ReadFile(decompressed)
		require.NoError(t, err, algo)
		require.True(t, bytes.Equal(data, out), "%s round trip mismatch", algo)
	}
}

func TestAlgorithmAndMode(t *testing.T) {
	_, ok := Algorithm("-fpaq")
	require.True(t, ok)
	_, ok = Algorithm("-nope")
	require.False(t, ok)

	_, ok = Mode("-c")
	require.True(t, ok)
	_, ok = Mode("-x")
	require.False(t, ok)
}
