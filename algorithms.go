package webopt

import (
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Maximum levels. Artifacts are always produced at these.
const (
	GzipBestLevel   = gzip.BestCompression
	ZstdBestLevel   = 22
	LZ4BestLevel    = 9
	BrotliBestLevel = brotli.BestCompression
)

// MaxLevel returns the highest compression level of algo. Snappy has no
// levels and reports 0.
func MaxLevel(algo Algorithm) int {
	switch algo {
	case AlgorithmGzip:
		return GzipBestLevel
	case AlgorithmZstd:
		return ZstdBestLevel
	case AlgorithmLZ4:
		return LZ4BestLevel
	case AlgorithmBrotli:
		return BrotliBestLevel
	default:
		return 0
	}
}

func checkLevel(algo Algorithm, level int) error {
	if level < 0 || level > MaxLevel(algo) {
		return fmt.Errorf("%w: %s accepts 0-%d, got %d", ErrInvalidLevel, algo, MaxLevel(algo), level)
	}
	return nil
}

// createCompressor creates a compressor for the specified algorithm.
// Level 0 selects the library default.
func createCompressor(algo Algorithm, w io.Writer, level int) (io.WriteCloser, error) {
	if _, ok := extensionMap[algo]; !ok {
		return nil, ErrUnsupportedAlgorithm
	}
	if err := checkLevel(algo, level); err != nil {
		return nil, err
	}

	switch algo {
	case AlgorithmGzip:
		return createGzipCompressor(w, level)
	case AlgorithmZstd:
		return createZstdCompressor(w, level)
	case AlgorithmLZ4:
		return createLZ4Compressor(w, level)
	case AlgorithmBrotli:
		return createBrotliCompressor(w, level)
	default:
		return createSnappyCompressor(w)
	}
}

// createDecompressor creates a decompressor for the specified algorithm
func createDecompressor(algo Algorithm, r io.Reader) (io.ReadCloser, error) {
	switch algo {
	case AlgorithmGzip:
		return gzip.NewReader(r)
	case AlgorithmZstd:
		dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	case AlgorithmLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	case AlgorithmBrotli:
		return io.NopCloser(brotli.NewReader(r)), nil
	case AlgorithmSnappy:
		return io.NopCloser(snappy.NewReader(r)), nil
	default:
		return nil, ErrUnsupportedAlgorithm
	}
}

// The gzip header is left without name or mtime so equal input gives
// byte-identical artifacts.
func createGzipCompressor(w io.Writer, level int) (io.WriteCloser, error) {
	if level == 0 {
		level = gzip.DefaultCompression
	}
	return gzip.NewWriterLevel(w, level)
}

func createZstdCompressor(w io.Writer, level int) (io.WriteCloser, error) {
	encLevel := zstd.SpeedDefault
	if level > 0 {
		encLevel = zstd.EncoderLevelFromZstd(level)
	}
	return zstd.NewWriter(w,
		zstd.WithEncoderLevel(encLevel),
		zstd.WithEncoderConcurrency(1),
	)
}

var lz4Levels = []lz4.CompressionLevel{
	lz4.Fast,
	lz4.Level1, lz4.Level2, lz4.Level3,
	lz4.Level4, lz4.Level5, lz4.Level6,
	lz4.Level7, lz4.Level8, lz4.Level9,
}

func createLZ4Compressor(w io.Writer, level int) (io.WriteCloser, error) {
	zw := lz4.NewWriter(w)
	if err := zw.Apply(
		lz4.CompressionLevelOption(lz4Levels[level]),
		lz4.ConcurrencyOption(1),
	); err != nil {
		return nil, err
	}
	return zw, nil
}

func createBrotliCompressor(w io.Writer, level int) (io.WriteCloser, error) {
	if level == 0 {
		level = brotli.DefaultCompression
	}
	return brotli.NewWriterLevel(w, level), nil
}

// Snappy uses the framed stream format so artifacts carry a magic header.
func createSnappyCompressor(w io.Writer) (io.WriteCloser, error) {
	return snappy.NewBufferedWriter(w), nil
}
