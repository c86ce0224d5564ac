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

// Package runner wires the CLI's ALGO/MODE positional contract to the
// codecs and peer transforms in entropy and transform.
package runner

import (
	"bytes"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	paqc "github.com/aufdj/compression-algorithms"
	"github.com/aufdj/compression-algorithms/entropy"
	"github.com/aufdj/compression-algorithms/transform"
)

var algorithms = map[string]bool{
	"-fpaq": true, "-lpaq1": true, "-lz77": true, "-lzw": true,
	"-flzp": true, "-huffman": true, "-bwt": true,
}

var modes = map[string]bool{"-c": true, "-d": true}

// Algorithm reports whether s is one of the driver's recognized ALGO
// tokens.
func Algorithm(s string) (string, bool) {
	return s, algorithms[s]
}

// Mode reports whether s is one of the driver's recognized MODE tokens.
func Mode(s string) (string, bool) {
	return s, modes[s]
}

func newTransform(algo string) (paqc.ByteTransform, error) {
	switch algo {
	case "-lz77":
		return transform.NewLZ77()
	case "-lzw":
		return transform.NewLZW()
	case "-flzp":
		return transform.NewFLZP()
	case "-huffman":
		return transform.NewHuffman()
	case "-bwt":
		return transform.NewBWT()
	default:
		return nil, errors.Errorf("runner: unknown transform algorithm %q", algo)
	}
}

// Run compresses or decompresses input into output with algo under mode.
func Run(log *logrus.Logger, verbose bool, algo, mode, input, output string) error {
	start := time.Now()

	src, err := os.ReadFile(input)
	if err != nil {
		return errors.Wrapf(err, "opening %s", input)
	}

	out, err := os.Create(output)
	if err != nil {
		return errors.Wrapf(err, "creating %s", output)
	}
	defer out.Close()

	var written int

	switch algo {
	case "-fpaq":
		written, err = runFPAQ(mode, src, out)
	case "-lpaq1":
		written, err = runLPAQ1(mode, src, out)
	default:
		written, err = runTransform(algo, mode, src, out)
	}

	if err != nil {
		return errors.Wrapf(err, "%s %s %s", algo, mode, input)
	}

	if verbose {
		log.WithFields(logrus.Fields{
			"algorithm": algo,
			"mode":      mode,
			"bytes_in":  len(src),
			"bytes_out": written,
			"elapsed":   time.Since(start),
		}).Info("paqc: run complete")
	}

	return nil
}

func runFPAQ(mode string, src []byte, out io.Writer) (int, error) {
	switch mode {
	case "-c":
		enc := entropy.NewFPAQEncoder(out)
		if _, err := enc.Write(src); err != nil {
			return 0, errors.Wrap(err, "fpaq encode")
		}
		if err := enc.Dispose(); err != nil {
			return 0, errors.Wrap(err, "fpaq flush")
		}
		return len(src), nil
	case "-d":
		dec, err := entropy.NewFPAQDecoder(bytes.NewReader(src))
		if err != nil {
			return 0, errors.Wrap(err, "fpaq decoder init")
		}
		return drainDecoder(dec.Read, out)
	default:
		return 0, errors.Errorf("runner: unknown mode %q", mode)
	}
}

func runLPAQ1(mode string, src []byte, out *os.File) (int, error) {
	switch mode {
	case "-c":
		enc, err := entropy.NewLPAQ1Encoder(out)
		if err != nil {
			return 0, errors.Wrap(err, "lpaq1 encoder init")
		}
		if _, err := enc.Write(src); err != nil {
			return 0, errors.Wrap(err, "lpaq1 encode")
		}
		if err := enc.Dispose(); err != nil {
			return 0, errors.Wrap(err, "lpaq1 flush")
		}
		return len(src), nil
	case "-d":
		dec, err := entropy.NewLPAQ1Decoder(bytes.NewReader(src))
		if err != nil {
			return 0, errors.Wrap(err, "lpaq1 decoder init")
		}
		return drainDecoder(dec.Read, out)
	default:
		return 0, errors.Errorf("runner: unknown mode %q", mode)
	}
}

// drainDecoder repeatedly calls read into a fixed-size scratch buffer until
// io.EOF, writing each chunk to out as it arrives.
func drainDecoder(read func([]byte) (int, error), out io.Writer) (int, error) {
	buf := make([]byte, 64*1024)
	total := 0

	for {
		n, err := read(buf)
		if n > 0 {
			if _, werr := out.Write(buf[:n]); werr != nil {
				return total, errors.Wrap(werr, "write decoded output")
			}
			total += n
		}

		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

func runTransform(algo, mode string, src []byte, out io.Writer) (int, error) {
	t, err := newTransform(algo)
	if err != nil {
		return 0, err
	}

	switch mode {
	case "-c":
		dst := make([]byte, t.MaxEncodedLen(len(src)))
		_, n, err := t.Forward(src, dst)
		if err != nil {
			return 0, errors.Wrap(err, "transform forward")
		}
		if _, err := out.Write(dst[:n]); err != nil {
			return 0, errors.Wrap(err, "write transform output")
		}
		return int(n), nil
	case "-d":
		// The original length isn't recorded, so start from a generous
		// buffer, double it for as long as Inverse reports it too small,
		// and rely on Inverse reporting exactly how much it produced.
		dst := make([]byte, len(src)*8+4096)
		_, n, err := t.Inverse(src, dst)
		for err != nil && strings.Contains(err.Error(), "destination buffer too small") {
			dst = make([]byte, len(dst)*2)
			_, n, err = t.Inverse(src, dst)
		}
		if err != nil {
			return 0, errors.Wrap(err, "transform inverse")
		}
		if _, err := out.Write(dst[:n]); err != nil {
			return 0, errors.Wrap(err, "write transform output")
		}
		return int(n), nil
	default:
		return 0, errors.Errorf("runner: unknown mode %q", mode)
	}
}

// Bench runs every algorithm's compress path over input and logs the
// compressed size and elapsed time for each, one structured line per
// algorithm.
func Bench(log *logrus.Logger, verbose bool, input string) error {
	src, err := os.ReadFile(input)
	if err != nil {
		return errors.Wrapf(err, "opening %s", input)
	}

	for algo := range algorithms {
		start := time.Now()
		var buf bytes.Buffer
		var n int

		switch algo {
		case "-fpaq":
			n, err = runFPAQ("-c", src, &buf)
		case "-lpaq1":
			n, err = runLPAQ1WithTempFile(src, &buf)
		default:
			n, err = runTransform(algo, "-c", src, &buf)
		}

		if err != nil {
			log.WithError(err).WithField("algorithm", algo).Error("paqc: bench failed")
			continue
		}

		log.WithFields(logrus.Fields{
			"algorithm":      algo,
			"bytes_in":       len(src),
			"bytes_out":      buf.Len(),
			"reported_bytes": n,
			"elapsed":        time.Since(start),
		}).Info("paqc: bench result")
	}

	return nil
}

// runLPAQ1WithTempFile runs LPAQ1 compression through a temp file since
// LPAQ1Encoder needs to seek back and rewrite its header after coding
// finishes, which an in-memory bytes.Buffer can't do.
func runLPAQ1WithTempFile(src []byte, out *bytes.Buffer) (int, error) {
	f, err := os.CreateTemp("", "paqc-bench-lpaq1-*")
	if err != nil {
		return 0, errors.Wrap(err, "bench: create temp file")
	}
	defer os.Remove(f.Name())
	defer f.Close()

	n, err := runLPAQ1("-c", src, f)
	if err != nil {
		return 0, err
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return 0, errors.Wrap(err, "bench: rewind temp file")
	}
	if _, err := io.Copy(out, f); err != nil {
		return 0, errors.Wrap(err, "bench: read temp file")
	}

	return n, nil
}
