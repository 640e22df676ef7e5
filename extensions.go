package webopt

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
)

// Extension mapping
var extensionMap = map[Algorithm]string{
	AlgorithmGzip:   ".gz",
	AlgorithmZstd:   ".zst",
	AlgorithmLZ4:    ".lz4",
	AlgorithmBrotli: ".br",
	AlgorithmSnappy: ".sz",
}

// Reverse extension mapping (extension -> algorithm)
var reverseExtensionMap = map[string]Algorithm{
	".gz":     AlgorithmGzip,
	".gzip":   AlgorithmGzip,
	".zst":    AlgorithmZstd,
	".zstd":   AlgorithmZstd,
	".lz4":    AlgorithmLZ4,
	".br":     AlgorithmBrotli,
	".sz":     AlgorithmSnappy,
	".snappy": AlgorithmSnappy,
}

// Magic bytes for compression format detection. Brotli streams have no
// signature and are recognised by suffix only.
var magicBytes = []struct {
	algo  Algorithm
	magic []byte
}{
	{AlgorithmGzip, []byte{0x1f, 0x8b}},
	{AlgorithmZstd, []byte{0x28, 0xb5, 0x2f, 0xfd}},
	{AlgorithmLZ4, []byte{0x04, 0x22, 0x4d, 0x18}},
	{AlgorithmSnappy, []byte{0xff, 0x06, 0x00, 0x00, 0x73, 0x4e, 0x61, 0x50, 0x70, 0x59}},
}

// GetExtension returns the file extension for an algorithm
func GetExtension(algo Algorithm) string {
	return extensionMap[algo]
}

// ArtifactName returns where the compressed form of name is stored: the
// source name with the algorithm suffix appended (index.html -> index.html.gz).
func ArtifactName(name string, algo Algorithm) string {
	return name + GetExtension(algo)
}

// DetectAlgorithmFromExtension detects the algorithm from file extension
func DetectAlgorithmFromExtension(name string) (Algorithm, bool) {
	algo, ok := reverseExtensionMap[strings.ToLower(filepath.Ext(name))]
	return algo, ok
}

// HasCompressionExtension checks if filename has a compression extension
func HasCompressionExtension(name string) bool {
	_, ok := DetectAlgorithmFromExtension(name)
	return ok
}

// SourceName strips a compression suffix from an artifact name.
func SourceName(artifact string) (string, Algorithm, bool) {
	ext := filepath.Ext(artifact)
	algo, ok := reverseExtensionMap[strings.ToLower(ext)]
	if !ok {
		return artifact, "", false
	}
	return strings.TrimSuffix(artifact, ext), algo, true
}

// DetectAlgorithm detects compression algorithm from magic bytes
func DetectAlgorithm(r io.Reader) (Algorithm, error) {
	buf := make([]byte, 10)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}
	algo, _ := IsCompressed(buf[:n])
	return algo, nil
}

// IsCompressed checks if data appears to be compressed based on magic bytes
func IsCompressed(data []byte) (Algorithm, bool) {
	for _, m := range magicBytes {
		if bytes.HasPrefix(data, m.magic) {
			return m.algo, true
		}
	}
	return "", false
}
