package webopt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/absfs/absfs"
)

// Algorithm represents a compression algorithm
type Algorithm string

const (
	AlgorithmGzip   Algorithm = "gzip"
	AlgorithmZstd   Algorithm = "zstd"
	AlgorithmLZ4    Algorithm = "lz4"
	AlgorithmBrotli Algorithm = "brotli"
	AlgorithmSnappy Algorithm = "snappy"
)

// Algorithms lists every supported algorithm in a stable order.
var Algorithms = []Algorithm{
	AlgorithmGzip,
	AlgorithmZstd,
	AlgorithmLZ4,
	AlgorithmBrotli,
	AlgorithmSnappy,
}

// ParseAlgorithm parses an algorithm name or its artifact suffix ("br", ".gz").
func ParseAlgorithm(s string) (Algorithm, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, algo := range Algorithms {
		if s == string(algo) {
			return algo, nil
		}
	}
	if algo, ok := reverseExtensionMap["."+strings.TrimPrefix(s, ".")]; ok {
		return algo, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, s)
}

// Config holds the settings for one optimisation run
type Config struct {
	// Directory containing the assets. Every entry name is relative to it.
	Dir string

	// Files to process. Empty means DefaultEntries, or discovery when Scan is set.
	Files []string

	// Walk Dir instead of using a fixed file list
	Scan bool

	// Compress files that have no minifier (images, fonts, ...) when scanning
	IncludeOpaque bool

	// Compression format. The level is always the maximum for the format.
	Algorithm Algorithm

	// Minification engine: pattern (default) or parser
	Engine EngineName

	// Files processed concurrently; 1 is the sequential reference behaviour
	Workers int

	// Optional path of a YAML manifest with the run summary
	Manifest string
}

// DefaultConfig returns the reference configuration: gzip level 9 over the
// default asset list in ./data, processed sequentially.
func DefaultConfig() *Config {
	return &Config{
		Dir:       "data",
		Algorithm: AlgorithmGzip,
		Engine:    EnginePattern,
		Workers:   1,
	}
}

// Validate checks the configuration and fills zero values with defaults.
func (c *Config) Validate() error {
	if c.Dir == "" {
		return ErrNoDirectory
	}
	if c.Algorithm == "" {
		c.Algorithm = AlgorithmGzip
	}
	if _, ok := extensionMap[c.Algorithm]; !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, c.Algorithm)
	}
	if c.Engine == "" {
		c.Engine = EnginePattern
	}
	if _, err := NewEngine(c.Engine); err != nil {
		return err
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	if c.Scan && len(c.Files) > 0 {
		return ErrScanWithFiles
	}
	return nil
}

var (
	ErrUnsupportedAlgorithm = errors.New("webopt: unsupported compression algorithm")
	ErrInvalidLevel         = errors.New("webopt: invalid compression level")
	ErrUnknownKind          = errors.New("webopt: unknown content kind")
	ErrUnknownEngine        = errors.New("webopt: unknown minification engine")
	ErrInvalidEncoding      = errors.New("webopt: source is not valid UTF-8")
	ErrNoDirectory          = errors.New("webopt: no asset directory given")
	ErrScanWithFiles        = errors.New("webopt: scan and an explicit file list are mutually exclusive")
	ErrArtifactMismatch     = errors.New("webopt: artifact does not match minified source")
)

// extend returns filer as a full absfs.FileSystem. Names are slash
// separated and relative to the root of filer.
func extend(filer absfs.Filer) absfs.FileSystem {
	if fsys, ok := filer.(absfs.FileSystem); ok {
		return fsys
	}
	return absfs.ExtendFiler(filer)
}
