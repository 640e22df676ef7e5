package webopt

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	gitignore "github.com/monochromegane/go-gitignore"
)

// DiscoverOptions controls Discover.
type DiscoverOptions struct {
	// Also return files without a minifier. They are compressed as-is.
	IncludeOpaque bool

	// Include dot files and descend into dot directories
	ShowHidden bool

	// Ignore .gitignore at the root of the tree
	NoIgnore bool
}

// Discover walks fsys and returns an entry for every asset found, in
// lexical path order. Existing artifacts (.gz, .br, ...) are never returned.
func Discover(fsys fs.FS, opts DiscoverOptions) ([]Entry, error) {
	var matcher gitignore.IgnoreMatcher
	if !opts.NoIgnore {
		f, err := fsys.Open(".gitignore")
		switch {
		case err == nil:
			matcher = gitignore.NewGitIgnoreFromReader(".", f)
			f.Close()
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("webopt: reading .gitignore: %w", err)
		}
	}

	var entries []Entry
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == "." {
			return nil
		}

		isDir := d.IsDir()
		if !opts.ShowHidden && strings.HasPrefix(d.Name(), ".") {
			if isDir {
				return fs.SkipDir
			}
			return nil
		}
		if matcher != nil && matcher.Match(path, isDir) {
			if isDir {
				return fs.SkipDir
			}
			return nil
		}
		if isDir || !d.Type().IsRegular() {
			return nil
		}
		if HasCompressionExtension(path) {
			return nil
		}

		entry := EntryFor(path)
		if entry.Kind == KindOpaque && !opts.IncludeOpaque {
			return nil
		}
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}
