package webopt

import (
	"bytes"
	"errors"
	"testing"
)

func TestExtensionDetection(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		wantAlgo Algorithm
		wantOk   bool
	}{
		{"gzip", "index.html.gz", AlgorithmGzip, true},
		{"zstd", "style.css.zst", AlgorithmZstd, true},
		{"lz4", "file.lz4", AlgorithmLZ4, true},
		{"brotli", "script.js.br", AlgorithmBrotli, true},
		{"snappy", "file.sz", AlgorithmSnappy, true},
		{"upper case", "FILE.GZ", AlgorithmGzip, true},
		{"none", "index.html", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			algo, ok := DetectAlgorithmFromExtension(tt.filename)
			if ok != tt.wantOk {
				t.Errorf("Expected ok=%v, got %v", tt.wantOk, ok)
			}
			if algo != tt.wantAlgo {
				t.Errorf("Expected algorithm=%s, got %s", tt.wantAlgo, algo)
			}
		})
	}
}

func TestArtifactName(t *testing.T) {
	tests := []struct {
		name string
		algo Algorithm
		want string
	}{
		{"index.html", AlgorithmGzip, "index.html.gz"},
		{"css/style.css", AlgorithmBrotli, "css/style.css.br"},
		{"script.js", AlgorithmZstd, "script.js.zst"},
	}

	for _, tt := range tests {
		got := ArtifactName(tt.name, tt.algo)
		if got != tt.want {
			t.Errorf("ArtifactName(%q, %s) = %q, want %q", tt.name, tt.algo, got, tt.want)
		}
		src, algo, ok := SourceName(got)
		if !ok || src != tt.name || algo != tt.algo {
			t.Errorf("SourceName(%q) = %q, %s, %v", got, src, algo, ok)
		}
	}
}

func TestMagicBytesDetection(t *testing.T) {
	for _, algo := range []Algorithm{AlgorithmGzip, AlgorithmZstd, AlgorithmLZ4, AlgorithmSnappy} {
		t.Run(string(algo), func(t *testing.T) {
			compressed, err := CompressBest([]byte("magic bytes test data"), algo)
			if err != nil {
				t.Fatalf("Failed to compress: %v", err)
			}

			got, ok := IsCompressed(compressed)
			if !ok || got != algo {
				t.Errorf("IsCompressed = %s, %v; want %s", got, ok, algo)
			}

			got, err = DetectAlgorithm(bytes.NewReader(compressed))
			if err != nil {
				t.Fatalf("DetectAlgorithm failed: %v", err)
			}
			if got != algo {
				t.Errorf("DetectAlgorithm = %s, want %s", got, algo)
			}
		})
	}

	if algo, ok := DetectCompressionAlgorithm([]byte("plain text")); ok {
		t.Errorf("Plain text detected as %s", algo)
	}
	if algo, err := DetectAlgorithm(bytes.NewReader(nil)); err != nil || algo != "" {
		t.Errorf("Empty input detected as %q (err %v)", algo, err)
	}
}

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		in      string
		want    Algorithm
		wantErr bool
	}{
		{"gzip", AlgorithmGzip, false},
		{"GZIP", AlgorithmGzip, false},
		{"br", AlgorithmBrotli, false},
		{".zst", AlgorithmZstd, false},
		{"snappy", AlgorithmSnappy, false},
		{"bzip2", "", true},
	}

	for _, tt := range tests {
		got, err := ParseAlgorithm(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseAlgorithm(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if tt.wantErr && !errors.Is(err, ErrUnsupportedAlgorithm) {
			t.Errorf("ParseAlgorithm(%q) error = %v, want ErrUnsupportedAlgorithm", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseAlgorithm(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestGetCompressionRatio(t *testing.T) {
	tests := []struct {
		name       string
		original   int64
		compressed int64
		wantRatio  float64
		wantPct    float64
	}{
		{"half", 1000, 500, 0.5, 50},
		{"none", 1000, 1000, 1, 0},
		{"grew", 100, 150, 1.5, -50},
		{"empty", 0, 20, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCompressionRatio(tt.original, tt.compressed); got != tt.wantRatio {
				t.Errorf("Expected ratio %v, got %v", tt.wantRatio, got)
			}
			if got := GetCompressionPercentage(tt.original, tt.compressed); got != tt.wantPct {
				t.Errorf("Expected percentage %v, got %v", tt.wantPct, got)
			}
		})
	}
}

func TestKindFromName(t *testing.T) {
	tests := []struct {
		name string
		want ContentKind
	}{
		{"index.html", KindMarkup},
		{"about.HTM", KindMarkup},
		{"style.css", KindStylesheet},
		{"app.js", KindScript},
		{"module.mjs", KindScript},
		{"logo.svg", KindOpaque},
		{"README", KindOpaque},
	}

	for _, tt := range tests {
		if got := KindFromName(tt.name); got != tt.want {
			t.Errorf("KindFromName(%q) = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestParseEntry(t *testing.T) {
	tests := []struct {
		in      string
		want    Entry
		wantErr bool
	}{
		{"index.html", Entry{"index.html", KindMarkup}, false},
		{"app.txt=js", Entry{"app.txt", KindScript}, false},
		{"page.tpl = markup", Entry{"page.tpl", KindMarkup}, false},
		{"font.woff2", Entry{"font.woff2", KindOpaque}, false},
		{"x.css=sass", Entry{}, true},
	}

	for _, tt := range tests {
		got, err := ParseEntry(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseEntry(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseEntry(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := &Config{Dir: "data"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if cfg.Algorithm != AlgorithmGzip || cfg.Engine != EnginePattern || cfg.Workers != 1 {
		t.Errorf("Defaults not applied: %+v", cfg)
	}

	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{"no dir", Config{}, ErrNoDirectory},
		{"bad algorithm", Config{Dir: "d", Algorithm: "rar"}, ErrUnsupportedAlgorithm},
		{"bad engine", Config{Dir: "d", Engine: "magic"}, ErrUnknownEngine},
		{"scan with files", Config{Dir: "d", Scan: true, Files: []string{"a.js"}}, ErrScanWithFiles},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}
