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
	"bytes"
	"io"
	"math/rand"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func fpaqRoundTrip(t *testing.T, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	enc := NewFPAQEncoder(&buf)
	_, err := enc.Write(data)
	require.NoError(t, err)
	require.NoError(t, enc.Dispose())

	dec, err := NewFPAQDecoder(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	out, err := io.ReadAll(readerFunc(dec.Read))
	require.NoError(t, err)

	require.True(t, bytes.Equal(data, out))
	return buf.Bytes()
}

type readerFunc func([]byte) (int, error)

func (f readerFunc) Read(p []byte) (int, error) { return f(p) }

func TestFPAQRoundTripEmpty(t *testing.T) {
	compressed := fpaqRoundTrip(t, nil)
	require.GreaterOrEqual(t, len(compressed), 1, "FPAQ must emit at least the flush byte for an empty input")
}

func TestFPAQRoundTripSingleByte(t *testing.T) {
	fpaqRoundTrip(t, []byte{0x00})
}

func TestFPAQRoundTrip256Bytes(t *testing.T) {
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}
	fpaqRoundTrip(t, data)
}

func TestFPAQRoundTripRandom1MiB(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	data := make([]byte, 1<<20)
	r.Read(data)

	compressed := fpaqRoundTrip(t, data)
	require.GreaterOrEqual(t, len(compressed), len(data)-1024)
}

func TestFPAQRoundTripDeterministic(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")

	var b1, b2 bytes.Buffer
	e1 := NewFPAQEncoder(&b1)
	_, _ = e1.Write(data)
	_ = e1.Dispose()

	e2 := NewFPAQEncoder(&b2)
	_, _ = e2.Write(data)
	_ = e2.Dispose()

	require.True(t, bytes.Equal(b1.Bytes(), b2.Bytes()))
}

func lpaq1RoundTrip(t *testing.T, data []byte) {
	t.Helper()

	f, err := os.CreateTemp("", "lpaq1-test-*")
	require.NoError(t, err)
	defer os.Remove(f.Name())
	defer f.Close()

	enc, err := NewLPAQ1Encoder(f)
	require.NoError(t, err)
	_, err = enc.Write(data)
	require.NoError(t, err)
	require.NoError(t, enc.Dispose())

	_, err = f.Seek(0, io.SeekStart)
	require.NoError(t, err)

	dec, err := NewLPAQ1Decoder(f)
	require.NoError(t, err)

	var out bytes.Buffer
	buf := make([]byte, dec.BlockSize()+1)
	for {
		n, err := dec.Read(buf)
		if n > 0 {
			out.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
	}

	require.True(t, bytes.Equal(data, out.Bytes()))
}

func TestLPAQ1RoundTripSingleByte(t *testing.T) {
	lpaq1RoundTrip(t, []byte{0x00})
}

func TestLPAQ1RoundTripRepeatedByte(t *testing.T) {
	data := bytes.Repeat([]byte{'A'}, 4096)
	lpaq1RoundTrip(t, data)
}

func TestLPAQ1RoundTripWordModelText(t *testing.T) {
	data := []byte(strings.Repeat("the quick brown fox jumps over the lazy dog ", 100))
	lpaq1RoundTrip(t, data)
}

func TestLPAQ1RoundTrip256Bytes(t *testing.T) {
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}
	lpaq1RoundTrip(t, data)
}

func TestLPAQ1RoundTripRandom1MiB(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	data := make([]byte, 1<<20)
	r.Read(data)
	lpaq1RoundTrip(t, data)
}
