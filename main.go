package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/FitrahHaque/huffman-engine/compressor/huffman"
	"github.com/FitrahHaque/huffman-engine/engine"
)

var (
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	verbosityFlag = &cli.StringFlag{
		Name:  "verbosity",
		Usage: "Log level (panic, fatal, error, warn, info, debug, trace)",
	}
	workersFlag = &cli.IntFlag{
		Name:  "workers",
		Usage: "Number of files processed at once",
	}
	noProgressFlag = &cli.BoolFlag{
		Name:  "no-progress",
		Usage: "Do not draw a progress bar",
	}
	extFlag = &cli.StringFlag{
		Name:  "ext",
		Usage: "Extension of compressed files",
	}
	suffixFlag = &cli.StringFlag{
		Name:  "suffix",
		Usage: "Suffix replacing the extension on decompressed files",
	}
	deleteFlag = &cli.BoolFlag{
		Name:  "delete",
		Usage: "Delete file after compression",
	}
)

func newApp() *cli.App {
	return &cli.App{
		Name:      "huffman",
		Usage:     "Huffman file compressor",
		ArgsUsage: "<file(s)>",
		Flags:     []cli.Flag{configFlag, verbosityFlag, workersFlag, noProgressFlag},
		Commands: []*cli.Command{
			{
				Name:      "compress",
				Usage:     "Compress files",
				ArgsUsage: "<file(s)>",
				Flags:     []cli.Flag{extFlag, deleteFlag},
				Action:    compressAction,
			},
			{
				Name:      "decompress",
				Usage:     "Decompress files",
				ArgsUsage: "<file(s)>",
				Flags:     []cli.Flag{extFlag, suffixFlag},
				Action:    decompressAction,
			},
			{
				Name:      "benchmark",
				Usage:     "Round trip files in memory and report ratio and speed",
				ArgsUsage: "<file(s)>",
				Action:    benchmarkAction,
			},
		},
		Action: func(ctx *cli.Context) error {
			if ctx.NArg() == 0 {
				return cli.ShowAppHelp(ctx)
			}
			fmt.Println("No command is selected. Compression by default")
			return compressAction(ctx)
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode is 2 for malformed containers and 1 for anything else.
func exitCode(err error) int {
	if errors.Is(err, huffman.ErrFormat) {
		return 2
	}
	return 1
}

// setup builds the engine from the config file and flags shared by every
// command.
func setup(ctx *cli.Context) (*engine.Engine, *reporter, error) {
	cfg := engine.DefaultConfig()
	if path := ctx.String(configFlag.Name); path != "" {
		var err error
		if cfg, err = engine.LoadConfig(path); err != nil {
			return nil, nil, err
		}
	}
	if ctx.IsSet(verbosityFlag.Name) {
		cfg.LogLevel = ctx.String(verbosityFlag.Name)
	}
	if ctx.IsSet(workersFlag.Name) {
		cfg.Workers = ctx.Int(workersFlag.Name)
	}
	if ctx.Bool(noProgressFlag.Name) {
		cfg.Progress = false
	}
	if ctx.IsSet(extFlag.Name) {
		cfg.Extension = ctx.String(extFlag.Name)
	}
	if ctx.IsSet(suffixFlag.Name) {
		cfg.DecompressSuffix = ctx.String(suffixFlag.Name)
	}
	if ctx.IsSet(deleteFlag.Name) {
		cfg.DeleteSource = ctx.Bool(deleteFlag.Name)
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	rep := newReporter(os.Stdout, os.Stderr)
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{DisableColors: !rep.colors})

	eng, err := engine.New(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	if rep.colors {
		eng.SetProgressOutput(os.Stderr)
	}
	return eng, rep, nil
}

// fileArgs accepts files as separate arguments or comma separated.
func fileArgs(ctx *cli.Context) ([]string, error) {
	var files []string
	for _, arg := range ctx.Args().Slice() {
		for _, f := range strings.Split(arg, ",") {
			if f = strings.TrimSpace(f); f != "" {
				files = append(files, f)
			}
		}
	}
	if len(files) == 0 {
		return nil, errors.New("no file provided")
	}
	return files, nil
}

func compressAction(ctx *cli.Context) error {
	return runBatch(ctx, (*engine.Engine).CompressFiles)
}

func decompressAction(ctx *cli.Context) error {
	return runBatch(ctx, (*engine.Engine).DecompressFiles)
}

func runBatch(ctx *cli.Context, batch func(*engine.Engine, context.Context, []string) []engine.Result) error {
	files, err := fileArgs(ctx)
	if err != nil {
		return err
	}
	eng, rep, err := setup(ctx)
	if err != nil {
		return err
	}
	var errs []error
	for _, res := range batch(eng, ctx.Context, files) {
		rep.result(res)
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
	}
	return failed(errs)
}

func benchmarkAction(ctx *cli.Context) error {
	files, err := fileArgs(ctx)
	if err != nil {
		return err
	}
	eng, rep, err := setup(ctx)
	if err != nil {
		return err
	}
	var errs []error
	for _, res := range eng.Benchmark(ctx.Context, files) {
		rep.benchmark(res)
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
	}
	return failed(errs)
}

// failed turns per-file errors, already reported, into a silent exit status.
func failed(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return cli.Exit("", exitCode(errors.Join(errs...)))
}
