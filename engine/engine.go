package engine

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/cheggaaa/pb/v3"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/FitrahHaque/huffman-engine/compressor/huffman"
)

// Engine compresses and decompresses files. It is safe for concurrent use.
type Engine struct {
	cfg      Config
	log      *logrus.Logger
	trees    *lru.Cache[uint64, huffman.Node]
	progress io.Writer
}

// New returns an Engine. A nil logger discards log output.
func New(cfg Config, log *logrus.Logger) (*Engine, error) {
	cfg = cfg.normalize()
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	trees, err := lru.New[uint64, huffman.Node](cfg.TreeCacheSize)
	if err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg, log: log, trees: trees}, nil
}

// SetProgressOutput sets where batch progress bars go.
func (e *Engine) SetProgressOutput(w io.Writer) {
	e.progress = w
}

func (e *Engine) Config() Config {
	return e.cfg
}

// Stats describes the sizes involved in one operation.
type Stats struct {
	Original   int
	Compressed int
	Duration   time.Duration
}

// Ratio returns compressed size relative to original size, in percent.
func (s Stats) Ratio() float64 {
	if s.Original == 0 {
		return 0
	}
	return float64(s.Compressed) / float64(s.Original) * 100
}

type Op string

const (
	OpCompress   Op = "compress"
	OpDecompress Op = "decompress"
)

// Result is the outcome of processing one file.
type Result struct {
	Op          Op
	Source      string
	Destination string
	Stats       Stats
	Err         error
}

// Outcome renders r as the human-readable message shown to the user.
func (r Result) Outcome() string {
	switch {
	case r.Op == OpCompress && r.Err == nil:
		return "File compressed and saved to: " + r.Destination
	case r.Op == OpCompress:
		return "Compression failed: " + r.Err.Error()
	case r.Err == nil:
		return "File decompressed and saved to: " + r.Destination
	default:
		return "Decompression failed: " + r.Err.Error()
	}
}

func (e *Engine) CompressedName(path string) string {
	return path + e.cfg.Extension
}

// DecompressedName strips the compressed extension from path and appends
// the decompress suffix.
func (e *Engine) DecompressedName(path string) string {
	return strings.TrimSuffix(path, e.cfg.Extension) + e.cfg.DecompressSuffix
}

// CompressFile compresses the file at filePath into CompressedName(filePath).
func (e *Engine) CompressFile(ctx context.Context, filePath string) Result {
	res := Result{Op: OpCompress, Source: filePath, Destination: e.CompressedName(filePath)}
	res.Stats, res.Err = e.compressFile(ctx, filePath, res.Destination)
	e.logResult(res)
	return res
}

func (e *Engine) compressFile(ctx context.Context, filePath, outputFileName string) (Stats, error) {
	var stats Stats
	if err := ctx.Err(); err != nil {
		return stats, err
	}
	fileContent, err := LoadBytes(filePath)
	if err != nil {
		return stats, err
	}
	stats.Original = len(fileContent)
	if err := ctx.Err(); err != nil {
		return stats, err
	}
	start := time.Now()
	compressed, err := compress(fileContent)
	if err != nil {
		return stats, err
	}
	stats.Duration = time.Since(start)
	stats.Compressed = len(compressed)
	if err := ctx.Err(); err != nil {
		return stats, err
	}
	if err := StoreBytes(compressed, outputFileName); err != nil {
		return stats, err
	}
	if e.cfg.DeleteSource {
		if err := removeFile(filePath); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

func compress(content []byte) ([]byte, error) {
	var b bytes.Buffer
	w := huffman.NewCompressionWriter(&b)
	if _, err := w.Write(content); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func (e *Engine) DecompressFile(ctx context.Context, filePath string) Result {
	res := Result{Op: OpDecompress, Source: filePath, Destination: e.DecompressedName(filePath)}
	res.Stats, res.Err = e.decompressFile(ctx, filePath, res.Destination)
	e.logResult(res)
	return res
}

func (e *Engine) decompressFile(ctx context.Context, filePath, outputFileName string) (Stats, error) {
	var stats Stats
	if err := ctx.Err(); err != nil {
		return stats, err
	}
	data, err := LoadBytes(filePath)
	if err != nil {
		return stats, err
	}
	stats.Compressed = len(data)
	if err := ctx.Err(); err != nil {
		return stats, err
	}
	start := time.Now()
	content, err := e.decompress(data)
	if err != nil {
		return stats, err
	}
	stats.Duration = time.Since(start)
	stats.Original = len(content)
	if err := ctx.Err(); err != nil {
		return stats, err
	}
	return stats, StoreBytes(content, outputFileName)
}

// decompress decodes data, reusing the tree of an earlier container with
// the same descriptor when one is cached.
func (e *Engine) decompress(data []byte) ([]byte, error) {
	c, err := huffman.ParseContainer(data)
	if err != nil {
		return nil, err
	}
	key := xxhash.Sum64(c.Descriptor)
	tree, ok := e.trees.Get(key)
	if !ok {
		if tree, err = huffman.UnmarshalTree(c.Descriptor); err != nil {
			return nil, err
		}
		e.trees.Add(key, tree)
	}
	return huffman.DecodeWithTree(c, tree)
}

// CompressFiles compresses every file, Config.Workers at a time. Results are
// returned in the order of files.
func (e *Engine) CompressFiles(ctx context.Context, files []string) []Result {
	return e.each(ctx, files, e.CompressFile)
}

func (e *Engine) DecompressFiles(ctx context.Context, files []string) []Result {
	return e.each(ctx, files, e.DecompressFile)
}

func (e *Engine) each(ctx context.Context, files []string, fn func(context.Context, string) Result) []Result {
	results := make([]Result, len(files))
	var bar *pb.ProgressBar
	if e.cfg.Progress && e.progress != nil && len(files) > 1 {
		bar = pb.New(len(files)).SetWriter(e.progress).Start()
		defer bar.Finish()
	}
	var g errgroup.Group
	g.SetLimit(e.cfg.Workers)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			results[i] = fn(ctx, file)
			if bar != nil {
				bar.Increment()
			}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (e *Engine) logResult(res Result) {
	entry := e.log.WithFields(logrus.Fields{
		"op":   string(res.Op),
		"file": res.Source,
	})
	if res.Err != nil {
		entry.WithError(res.Err).Error("operation failed")
		return
	}
	entry.WithFields(logrus.Fields{
		"output":     res.Destination,
		"original":   res.Stats.Original,
		"compressed": res.Stats.Compressed,
		"ratio":      fmt.Sprintf("%.2f%%", res.Stats.Ratio()),
		"elapsed":    res.Stats.Duration,
	}).Info("operation complete")
}
