package webopt

import (
	"bytes"
	"fmt"
	"io"

	"github.com/absfs/absfs"
)

// Verify checks that the artifact of entry decompresses to exactly the
// minified source. The algorithm comes from the artifact suffix when it has
// one and from its magic bytes otherwise.
func Verify(fsys absfs.Filer, p *Pipeline, entry Entry, artifact string) error {
	algo, ok := DetectAlgorithmFromExtension(artifact)

	f, err := extend(fsys).Open(artifact)
	if err != nil {
		return newFileError(entry.Name, ErrorRead, err)
	}
	data, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		return newFileError(entry.Name, ErrorRead, err)
	}

	if !ok {
		if algo, err = DetectAlgorithm(bytes.NewReader(data)); err != nil || algo == "" {
			return newFileError(entry.Name, ErrorRead, fmt.Errorf("%w: cannot identify %s", ErrUnsupportedAlgorithm, artifact))
		}
	}

	got, err := DecompressBytes(data, algo)
	if err != nil {
		return newFileError(entry.Name, ErrorCompress, err)
	}

	src, err := ReadSource(fsys, entry.Name)
	if err != nil {
		return err
	}
	engine := p.Engine
	if engine == nil {
		engine = PatternEngine{}
	}
	want, err := engine.Minify(entry.Kind, src)
	if err != nil {
		return newFileError(entry.Name, ErrorMinify, err)
	}

	if !bytes.Equal(got, []byte(want)) {
		return newFileError(entry.Name, ErrorCompress, ErrArtifactMismatch)
	}
	return nil
}
