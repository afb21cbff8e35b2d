package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/FitrahHaque/huffman-engine/engine"
)

// reporter prints outcome strings, green on success and red on failure.
type reporter struct {
	out    io.Writer
	errOut io.Writer
	ok     *color.Color
	fail   *color.Color
	colors bool
}

func newReporter(out, errOut *os.File) *reporter {
	r := &reporter{
		out:    colorable.NewColorable(out),
		errOut: colorable.NewColorable(errOut),
		ok:     color.New(color.FgGreen),
		fail:   color.New(color.FgRed, color.Bold),
		colors: isTerminal(out),
	}
	if !r.colors {
		r.ok.DisableColor()
		r.fail.DisableColor()
	}
	return r
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (r *reporter) result(res engine.Result) {
	if res.Err != nil {
		r.fail.Fprintln(r.errOut, res.Outcome())
		return
	}
	r.ok.Fprintln(r.out, res.Outcome())
	fmt.Fprintf(r.out, "Original size (in bytes): %v\n", res.Stats.Original)
	fmt.Fprintf(r.out, "Compressed size (in bytes): %v\n", res.Stats.Compressed)
	fmt.Fprintf(r.out, "Compression ratio: %.2f%%\n", res.Stats.Ratio())
}

func (r *reporter) benchmark(res engine.BenchmarkResult) {
	if res.Err != nil {
		r.fail.Fprintf(r.errOut, "Benchmark failed: %s: %v\n", res.Source, res.Err)
		return
	}
	r.ok.Fprintf(r.out, "%s\n", res.Source)
	fmt.Fprintf(r.out, "  original %d bytes, compressed %d bytes (%.2f%%)\n",
		res.Stats.Original, res.Stats.Compressed, res.Stats.Ratio())
	fmt.Fprintf(r.out, "  compress %v (%.2f MB/s), decompress %v (%.2f MB/s)\n",
		res.CompressTime, res.CompressThroughput()/1e6,
		res.DecompressTime, res.DecompressThroughput()/1e6)
}
