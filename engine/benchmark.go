package engine

import (
	"bytes"
	"context"
	"errors"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/FitrahHaque/huffman-engine/compressor/huffman"
)

// ErrMismatch is reported when a benchmark round trip does not reproduce its
// input.
var ErrMismatch = errors.New("engine: round trip mismatch")

// BenchmarkResult is one in-memory round trip.
type BenchmarkResult struct {
	Source         string
	Stats          Stats
	CompressTime   time.Duration
	DecompressTime time.Duration
	Err            error
}

func (r BenchmarkResult) CompressThroughput() float64 {
	return throughput(r.Stats.Original, r.CompressTime)
}

func (r BenchmarkResult) DecompressThroughput() float64 {
	return throughput(r.Stats.Original, r.DecompressTime)
}

func throughput(n int, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(n) / d.Seconds()
}

// Benchmark round trips every file in memory without writing anything.
func (e *Engine) Benchmark(ctx context.Context, files []string) []BenchmarkResult {
	results := make([]BenchmarkResult, len(files))
	for i, file := range files {
		results[i] = e.benchmarkFile(ctx, file)
	}
	return results
}

func (e *Engine) benchmarkFile(ctx context.Context, filePath string) BenchmarkResult {
	res := BenchmarkResult{Source: filePath}
	defer func() {
		entry := e.log.WithFields(logrus.Fields{"op": "benchmark", "file": filePath})
		if res.Err != nil {
			entry.WithError(res.Err).Error("benchmark failed")
			return
		}
		entry.WithFields(logrus.Fields{
			"original":   res.Stats.Original,
			"compressed": res.Stats.Compressed,
			"compress":   res.CompressTime,
			"decompress": res.DecompressTime,
		}).Info("benchmark complete")
	}()
	if res.Err = ctx.Err(); res.Err != nil {
		return res
	}
	content, err := LoadBytes(filePath)
	if err != nil {
		res.Err = err
		return res
	}
	res.Stats.Original = len(content)

	start := time.Now()
	compressed, err := compress(content)
	if err != nil {
		res.Err = err
		return res
	}
	res.CompressTime = time.Since(start)
	res.Stats.Compressed = len(compressed)
	if res.Err = ctx.Err(); res.Err != nil {
		return res
	}

	start = time.Now()
	r, w := huffman.NewDecompressionReaderAndWriter()
	defer r.Close()
	if _, err := w.Write(compressed); err != nil {
		res.Err = err
		return res
	}
	if err := w.Close(); err != nil {
		res.Err = err
		return res
	}
	restored, err := io.ReadAll(r)
	if err != nil {
		res.Err = err
		return res
	}
	res.DecompressTime = time.Since(start)
	res.Stats.Duration = res.CompressTime + res.DecompressTime
	if !bytes.Equal(content, restored) {
		res.Err = ErrMismatch
	}
	return res
}
