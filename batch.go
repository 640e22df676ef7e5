package webopt

import (
	"context"
	"fmt"
	"sync"

	"github.com/absfs/absfs"
	"go.uber.org/zap"
)

// Status is the outcome of one file in a batch
type Status int

const (
	StatusProcessed Status = iota
	StatusSkipped
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusProcessed:
		return "processed"
	case StatusSkipped:
		return "skipped"
	default:
		return "failed"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	for _, st := range []Status{StatusProcessed, StatusSkipped, StatusFailed} {
		if string(text) == st.String() {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("webopt: unknown status %q", text)
}

// Result describes what happened to one entry.
type Result struct {
	Entry    Entry
	Status   Status
	Report   SizeReport
	Artifact string
	Err      error
}

// TotalReport sums the reports of every processed file.
type TotalReport struct {
	Files      int   `yaml:"files"`
	Original   int64 `yaml:"original"`
	Minified   int64 `yaml:"minified"`
	Compressed int64 `yaml:"compressed"`
}

// Add accumulates one file.
func (t *TotalReport) Add(r SizeReport) {
	t.Files++
	t.Original += r.Original
	t.Minified += r.Minified
	t.Compressed += r.Compressed
}

// Saved is the number of bytes the artifacts save over the originals.
func (t TotalReport) Saved() int64 {
	return t.Original - t.Compressed
}

func (t TotalReport) MinifiedPercent() float64 {
	return GetCompressionPercentage(t.Original, t.Minified)
}

func (t TotalReport) CompressedPercent() float64 {
	return GetCompressionPercentage(t.Original, t.Compressed)
}

// Summary is the outcome of a batch, in entry order.
type Summary struct {
	Algorithm Algorithm
	Results   []Result
	Total     TotalReport
}

func (s *Summary) count(status Status) int {
	n := 0
	for _, r := range s.Results {
		if r.Status == status {
			n++
		}
	}
	return n
}

func (s *Summary) Processed() int { return s.count(StatusProcessed) }
func (s *Summary) Skipped() int   { return s.count(StatusSkipped) }
func (s *Summary) Failed() int    { return s.count(StatusFailed) }

// Batch runs a pipeline over a list of entries and writes the artifacts
// next to their sources.
type Batch struct {
	Pipeline *Pipeline
	FS       absfs.FileSystem

	// Workers > 1 processes files concurrently. Results and totals do not
	// depend on it.
	Workers int

	Logger *zap.Logger
}

// NewBatch creates a batch over fsys for cfg.
func NewBatch(fsys absfs.Filer, cfg *Config, logger *zap.Logger) (*Batch, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	pipeline, err := NewPipeline(cfg)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Batch{Pipeline: pipeline, FS: extend(fsys), Workers: cfg.Workers, Logger: logger}, nil
}

// Run processes every entry. A failing file never stops the batch; it is
// recorded in its Result and contributes nothing to the totals.
func (b *Batch) Run(ctx context.Context, entries []Entry) *Summary {
	logger := b.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	results := make([]Result, len(entries))
	workers := b.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(entries) {
		workers = len(entries)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = b.runOne(entries[i], logger)
			}
		}()
	}

	next := 0
schedule:
	for ; next < len(entries); next++ {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			break schedule
		case jobs <- next:
		}
	}
	close(jobs)
	wg.Wait()

	for i := next; i < len(entries); i++ {
		results[i] = Result{Entry: entries[i], Status: StatusFailed, Err: ctx.Err()}
	}

	summary := &Summary{Algorithm: b.Pipeline.algorithm(), Results: results}
	for _, r := range results {
		if r.Status == StatusProcessed {
			summary.Total.Add(r.Report)
		}
	}
	return summary
}

func (b *Batch) runOne(entry Entry, logger *zap.Logger) Result {
	res := Result{Entry: entry}
	log := logger.With(zap.String("file", entry.Name), zap.Stringer("kind", entry.Kind))

	report, compressed, err := b.Pipeline.Process(b.FS, entry.Name, entry.Kind)
	if err != nil {
		if ErrorKindOf(err) == ErrorMissingSource {
			res.Status = StatusSkipped
			res.Err = err
			log.Warn("source not found, skipping")
			return res
		}
		res.Status = StatusFailed
		res.Err = err
		log.Error("processing failed", zap.Error(err))
		return res
	}
	res.Report = report

	res.Artifact = ArtifactName(entry.Name, b.Pipeline.algorithm())
	if err := writeArtifact(b.FS, res.Artifact, compressed); err != nil {
		res.Status = StatusFailed
		res.Err = newFileError(entry.Name, ErrorWrite, err)
		log.Error("writing artifact failed", zap.String("artifact", res.Artifact), zap.Error(err))
		return res
	}

	res.Status = StatusProcessed
	log.Debug("processed",
		zap.Int64("original", report.Original),
		zap.Int64("minified", report.Minified),
		zap.Int64("compressed", report.Compressed),
		zap.String("artifact", res.Artifact),
	)
	return res
}

func writeArtifact(fsys absfs.FileSystem, name string, data []byte) error {
	f, err := fsys.Create(name)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
