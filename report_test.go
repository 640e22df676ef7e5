package webopt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
)

func TestWriteText(t *testing.T) {
	summary := &Summary{
		Algorithm: AlgorithmGzip,
		Results: []Result{
			{Entry: Entry{"index.html", KindMarkup}, Status: StatusProcessed, Report: SizeReport{1000, 800, 300}},
			{Entry: Entry{"success.html", KindMarkup}, Status: StatusSkipped},
			{Entry: Entry{"script.js", KindScript}, Status: StatusFailed,
				Err: &FileError{Name: "script.js", Kind: ErrorRead, Err: ErrInvalidEncoding}},
		},
	}
	summary.Total.Add(summary.Results[0].Report)

	var buf bytes.Buffer
	if err := WriteText(&buf, summary); err != nil {
		t.Fatalf("WriteText failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"✓ index.html:\n",
		"  Original:      1000 bytes\n",
		"  Minified:       800 bytes ( 20.0% reduction)\n",
		"  Compressed:     300 bytes ( 70.0% total reduction)\n",
		"⚠ Skipping success.html (not found)\n",
		"✗ Error processing script.js: webopt: source is not valid UTF-8\n",
		"Total Original:      1000 bytes\n",
		"Total Compressed:     300 bytes ( 70.0% total reduction)\n",
		"Total savings: 700 bytes\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Report missing %q\nGot:\n%s", want, out)
		}
	}
}

func TestWriteTextNoTotalsWhenNothingProcessed(t *testing.T) {
	summary := &Summary{Results: []Result{{Entry: Entry{"a.css", KindStylesheet}, Status: StatusSkipped}}}

	var buf bytes.Buffer
	if err := WriteText(&buf, summary); err != nil {
		t.Fatalf("WriteText failed: %v", err)
	}
	if strings.Contains(buf.String(), "Total") {
		t.Errorf("Expected no totals section, got:\n%s", buf.String())
	}
}

func TestManifestRoundTrip(t *testing.T) {
	b := newTestBatch(t, newSite(), 1)
	summary := b.Run(context.Background(), DefaultEntries())

	var buf bytes.Buffer
	if err := WriteYAML(&buf, summary); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}
	if !strings.Contains(buf.String(), "kind: markup") || !strings.Contains(buf.String(), "status: skipped") {
		t.Errorf("Manifest should name kinds and statuses:\n%s", buf.String())
	}

	got, err := ReadManifest(&buf)
	if err != nil {
		t.Fatalf("ReadManifest failed: %v", err)
	}
	if got.Total != summary.Total {
		t.Errorf("Totals differ: %+v vs %+v", got.Total, summary.Total)
	}
	if got.Algorithm != AlgorithmGzip {
		t.Errorf("Expected gzip, got %s", got.Algorithm)
	}
	if len(got.Results) != len(summary.Results) {
		t.Fatalf("Expected %d results, got %d", len(summary.Results), len(got.Results))
	}
	for i := range got.Results {
		if got.Results[i].Entry != summary.Results[i].Entry || got.Results[i].Status != summary.Results[i].Status {
			t.Errorf("Result %d differs: %+v vs %+v", i, got.Results[i], summary.Results[i])
		}
		if summary.Results[i].Status == StatusProcessed && got.Results[i].Report != summary.Results[i].Report {
			t.Errorf("Result %d sizes differ: %+v vs %+v", i, got.Results[i].Report, summary.Results[i].Report)
		}
	}

	var text, fromManifest bytes.Buffer
	WriteText(&text, summary)
	WriteText(&fromManifest, got)
	if text.String() != fromManifest.String() {
		t.Errorf("Text report from manifest differs.\nWant:\n%s\nGot:\n%s", text.String(), fromManifest.String())
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{ErrorMissingSource, "missing source"},
		{ErrorRead, "read"},
		{ErrorMinify, "minify"},
		{ErrorCompress, "compress"},
		{ErrorWrite, "write"},
		{ErrorKind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}

	err := &FileError{Name: "style.css", Kind: ErrorWrite, Err: ErrArtifactMismatch}
	if !errors.Is(err, ErrArtifactMismatch) {
		t.Error("FileError should unwrap to its cause")
	}
	if err.Error() != "style.css: write error: webopt: artifact does not match minified source" {
		t.Errorf("Unexpected message %q", err.Error())
	}
}

func TestWriteTextStripsWrappedFileError(t *testing.T) {
	fe := &FileError{Name: "style.css", Kind: ErrorWrite, Err: fs.ErrPermission}
	summary := &Summary{Results: []Result{{
		Entry:  Entry{"style.css", KindStylesheet},
		Status: StatusFailed,
		Err:    fmt.Errorf("batch: %w", fe),
	}}}

	var buf bytes.Buffer
	if err := WriteText(&buf, summary); err != nil {
		t.Fatalf("WriteText failed: %v", err)
	}
	want := "✗ Error processing style.css: permission denied\n"
	if !strings.Contains(buf.String(), want) {
		t.Errorf("Expected %q, got:\n%s", want, buf.String())
	}
}
