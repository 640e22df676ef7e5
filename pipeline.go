package webopt

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/absfs/absfs"
)

// SizeReport holds the measured byte counts of one file at each stage.
type SizeReport struct {
	Original   int64 `yaml:"original"`
	Minified   int64 `yaml:"minified"`
	Compressed int64 `yaml:"compressed"`
}

// MinifiedPercent is the reduction achieved by minification alone.
func (r SizeReport) MinifiedPercent() float64 {
	return GetCompressionPercentage(r.Original, r.Minified)
}

// CompressedPercent is the total reduction from the original size.
func (r SizeReport) CompressedPercent() float64 {
	return GetCompressionPercentage(r.Original, r.Compressed)
}

// Pipeline minifies and compresses single files. It holds no per-file
// state and may be shared between goroutines.
type Pipeline struct {
	Algorithm Algorithm
	Engine    Engine
}

// NewPipeline builds a pipeline from a validated config.
func NewPipeline(cfg *Config) (*Pipeline, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	engine, err := NewEngine(cfg.Engine)
	if err != nil {
		return nil, err
	}
	return &Pipeline{Algorithm: cfg.Algorithm, Engine: engine}, nil
}

func (p *Pipeline) algorithm() Algorithm {
	if p.Algorithm == "" {
		return AlgorithmGzip
	}
	return p.Algorithm
}

// Process reads name from fsys, minifies it according to kind, compresses
// the result and returns the sizes along with the compressed bytes.
// Nothing is written.
func (p *Pipeline) Process(fsys absfs.Filer, name string, kind ContentKind) (SizeReport, []byte, error) {
	engine := p.Engine
	if engine == nil {
		engine = PatternEngine{}
	}
	return p.process(fsys, name, func(src string) (string, error) {
		return engine.Minify(kind, src)
	})
}

// ProcessWith is Process with an explicit minifier. A nil fn compresses
// the source unchanged.
func (p *Pipeline) ProcessWith(fsys absfs.Filer, name string, fn MinifyFunc) (SizeReport, []byte, error) {
	return p.process(fsys, name, func(src string) (string, error) {
		if fn == nil {
			return src, nil
		}
		return fn(src), nil
	})
}

func (p *Pipeline) process(fsys absfs.Filer, name string, minify func(string) (string, error)) (SizeReport, []byte, error) {
	var report SizeReport

	text, err := ReadSource(fsys, name)
	if err != nil {
		return report, nil, err
	}
	report.Original = int64(len(text))

	working, err := minify(text)
	if err != nil {
		return report, nil, newFileError(name, ErrorMinify, err)
	}
	report.Minified = int64(len(working))

	compressed, err := CompressBest([]byte(working), p.algorithm())
	if err != nil {
		return report, nil, newFileError(name, ErrorCompress, err)
	}
	report.Compressed = int64(len(compressed))

	return report, compressed, nil
}

// ReadSource reads name as UTF-8 text with universal newlines: \r\n and a
// lone \r both become \n.
func ReadSource(fsys absfs.Filer, name string) (string, error) {
	f, err := extend(fsys).Open(name)
	if err != nil {
		return "", newFileError(name, ErrorRead, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", newFileError(name, ErrorRead, err)
	}
	if !utf8.Valid(data) {
		return "", newFileError(name, ErrorRead, ErrInvalidEncoding)
	}
	return normalizeNewlines(string(data)), nil
}

var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

func normalizeNewlines(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	return newlines.Replace(s)
}
