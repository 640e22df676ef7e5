package webopt

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// WriteText renders a human-readable report of s.
func WriteText(w io.Writer, s *Summary) error {
	var b strings.Builder

	for _, r := range s.Results {
		switch r.Status {
		case StatusSkipped:
			fmt.Fprintf(&b, "⚠ Skipping %s (not found)\n", r.Entry.Name)
		case StatusFailed:
			fmt.Fprintf(&b, "✗ Error processing %s: %v\n\n", r.Entry.Name, cause(r.Err))
		default:
			rep := r.Report
			fmt.Fprintf(&b, "✓ %s:\n", r.Entry.Name)
			fmt.Fprintf(&b, "  Original:    %6d bytes\n", rep.Original)
			fmt.Fprintf(&b, "  Minified:    %6d bytes (%5.1f%% reduction)\n", rep.Minified, rep.MinifiedPercent())
			fmt.Fprintf(&b, "  Compressed:  %6d bytes (%5.1f%% total reduction)\n\n", rep.Compressed, rep.CompressedPercent())
		}
	}

	if t := s.Total; t.Original > 0 {
		b.WriteString(strings.Repeat("=", 40) + "\n")
		fmt.Fprintf(&b, "Total Original:    %6d bytes\n", t.Original)
		fmt.Fprintf(&b, "Total Minified:    %6d bytes (%5.1f%% reduction)\n", t.Minified, t.MinifiedPercent())
		fmt.Fprintf(&b, "Total Compressed:  %6d bytes (%5.1f%% total reduction)\n", t.Compressed, t.CompressedPercent())
		fmt.Fprintf(&b, "\nTotal savings: %d bytes\n", t.Saved())
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// cause drops the file name from a FileError; the report already shows it.
func cause(err error) error {
	var fe *FileError
	if errors.As(err, &fe) {
		return fe.Err
	}
	return err
}

type manifestFile struct {
	Entry    `yaml:",inline"`
	Status   Status      `yaml:"status"`
	Artifact string      `yaml:"artifact,omitempty"`
	Sizes    *SizeReport `yaml:"sizes,omitempty"`
	Error    string      `yaml:"error,omitempty"`
}

type manifest struct {
	Algorithm Algorithm      `yaml:"algorithm"`
	Files     []manifestFile `yaml:"files"`
	Total     TotalReport    `yaml:"total"`
	Saved     int64          `yaml:"saved"`
}

// WriteYAML writes s as a YAML manifest.
func WriteYAML(w io.Writer, s *Summary) error {
	m := manifest{
		Algorithm: s.Algorithm,
		Files:     make([]manifestFile, 0, len(s.Results)),
		Total:     s.Total,
		Saved:     s.Total.Saved(),
	}
	for _, r := range s.Results {
		f := manifestFile{Entry: r.Entry, Status: r.Status}
		if r.Status == StatusProcessed {
			sizes := r.Report
			f.Sizes = &sizes
			f.Artifact = r.Artifact
		}
		if r.Err != nil {
			f.Error = cause(r.Err).Error()
		}
		m.Files = append(m.Files, f)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&m); err != nil {
		return err
	}
	return enc.Close()
}

// ReadManifest decodes a manifest written by WriteYAML.
func ReadManifest(r io.Reader) (*Summary, error) {
	var m manifest
	if err := yaml.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("webopt: decoding manifest: %w", err)
	}
	s := &Summary{Algorithm: m.Algorithm, Total: m.Total}
	for _, f := range m.Files {
		res := Result{Entry: f.Entry, Status: f.Status, Artifact: f.Artifact}
		if f.Sizes != nil {
			res.Report = *f.Sizes
		}
		if f.Error != "" {
			res.Err = fmt.Errorf("%s", f.Error)
		}
		s.Results = append(s.Results, res)
	}
	return s, nil
}
