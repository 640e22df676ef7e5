package webopt

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrorKind classifies what went wrong with a single file. None of them is
// fatal to a batch.
type ErrorKind int

const (
	// ErrorMissingSource means the listed file does not exist. The file is
	// reported as skipped.
	ErrorMissingSource ErrorKind = iota + 1

	// ErrorRead covers permission problems, I/O failures and sources that
	// are not valid UTF-8.
	ErrorRead

	// ErrorMinify is only produced by the parser engine.
	ErrorMinify

	// ErrorCompress means the encoder rejected the input or failed to flush.
	ErrorCompress

	// ErrorWrite means the artifact could not be persisted.
	ErrorWrite
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorMissingSource:
		return "missing source"
	case ErrorRead:
		return "read"
	case ErrorMinify:
		return "minify"
	case ErrorCompress:
		return "compress"
	case ErrorWrite:
		return "write"
	default:
		return "unknown"
	}
}

// FileError ties a failure to the file it happened on.
type FileError struct {
	Name string
	Kind ErrorKind
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %s error: %v", e.Name, e.Kind, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

func newFileError(name string, kind ErrorKind, err error) *FileError {
	if kind == ErrorRead && errors.Is(err, fs.ErrNotExist) {
		kind = ErrorMissingSource
	}
	return &FileError{Name: name, Kind: kind, Err: err}
}

// ErrorKindOf returns the kind of the first FileError in err's chain, or 0.
func ErrorKindOf(err error) ErrorKind {
	var fe *FileError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return 0
}
