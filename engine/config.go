package engine

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/BurntSushi/toml"
)

// ErrConfig is matched by errors caused by the content of a config file.
var ErrConfig = errors.New("engine: invalid config")

// Config controls file naming and batch behaviour.
type Config struct {
	Extension string `toml:"extension"`
	// DecompressSuffix replaces Extension on decompressed files.
	DecompressSuffix string `toml:"decompress_suffix"`
	// DeleteSource removes the source file after a successful compression.
	DeleteSource bool `toml:"delete_source"`
	Workers int `toml:"workers"`
	// Progress shows a progress bar for batches of more than one file.
	Progress bool `toml:"progress"`
	// TreeCacheSize is the number of decoded trees kept for reuse.
	TreeCacheSize int    `toml:"tree_cache_size"`
	LogLevel      string `toml:"log_level"`
}

func DefaultConfig() Config {
	return Config{
		Extension:        ".huffman",
		DecompressSuffix: "_decompressed",
		Workers:          runtime.NumCPU(),
		Progress:         true,
		TreeCacheSize:    64,
		LogLevel:         "info",
	}
}

// LoadConfig reads a TOML file on top of DefaultConfig. Keys missing from
// the file keep their default.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &IOError{Op: "load config", Path: path, Err: err}
	}
	cfg := DefaultConfig()
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Config{}, fmt.Errorf("%w %s: %w", ErrConfig, path, err)
	}
	return cfg.normalize(), nil
}

func (c Config) normalize() Config {
	def := DefaultConfig()
	if c.Extension == "" {
		c.Extension = def.Extension
	}
	if c.DecompressSuffix == "" {
		c.DecompressSuffix = def.DecompressSuffix
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.TreeCacheSize < 1 {
		c.TreeCacheSize = def.TreeCacheSize
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	return c
}
