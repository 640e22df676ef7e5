package webopt

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/absfs/absfs"
)

// normalizePath normalizes a path for consistent storage/lookup
// It removes leading slashes and cleans the path
func normalizePath(name string) string {
	name = path.Clean(strings.ReplaceAll(name, "\\", "/"))
	name = strings.TrimPrefix(name, "/")
	if name == "" {
		name = "."
	}
	return name
}

// MemFS is an in-memory absfs.Filer for tests and dry runs. Directories are
// implicit.
type MemFS struct {
	files map[string]*memNode
	mu    sync.RWMutex
}

// NewMemFS creates a new in-memory filesystem
func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string]*memNode)}
}

type memNode struct {
	data    []byte
	mode    fs.FileMode
	modTime time.Time
}

func (n *memNode) info(name string) *memFileInfo {
	return &memFileInfo{
		name:    path.Base(name),
		size:    int64(len(n.data)),
		mode:    n.mode,
		modTime: n.modTime,
	}
}

// WriteFile stores data under name, replacing any previous content.
func (mfs *MemFS) WriteFile(name string, data []byte) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	mfs.files[normalizePath(name)] = &memNode{
		data:    bytes.Clone(data),
		mode:    0o644,
		modTime: time.Now(),
	}
}

// ReadFile returns a copy of the content stored under name.
func (mfs *MemFS) ReadFile(name string) ([]byte, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	name = normalizePath(name)
	node, exists := mfs.files[name]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return bytes.Clone(node.data), nil
}

// Names lists stored files in lexical order.
func (mfs *MemFS) Names() []string {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	names := make([]string, 0, len(mfs.files))
	for name := range mfs.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (mfs *MemFS) Open(name string) (absfs.File, error) {
	return mfs.OpenFile(name, os.O_RDONLY, 0)
}

func (mfs *MemFS) Create(name string) (absfs.File, error) {
	return mfs.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
}

func (mfs *MemFS) OpenFile(name string, flag int, perm os.FileMode) (absfs.File, error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	name = normalizePath(name)
	node, exists := mfs.files[name]

	switch {
	case exists && flag&(os.O_CREATE|os.O_EXCL) == os.O_CREATE|os.O_EXCL:
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrExist}
	case !exists && flag&os.O_CREATE == 0:
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	case !exists:
		node = &memNode{mode: perm, modTime: time.Now()}
		mfs.files[name] = node
	}

	if flag&os.O_TRUNC != 0 && flag&(os.O_WRONLY|os.O_RDWR) != 0 {
		node.data = node.data[:0]
		node.modTime = time.Now()
	}

	return &memFile{mfs: mfs, name: name, node: node, flag: flag}, nil
}

// Mkdir is a no-op; directories exist as long as a file lives below them.
func (mfs *MemFS) Mkdir(name string, perm os.FileMode) error {
	return nil
}

func (mfs *MemFS) Remove(name string) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	name = normalizePath(name)
	if _, exists := mfs.files[name]; !exists {
		return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrNotExist}
	}
	delete(mfs.files, name)
	return nil
}

func (mfs *MemFS) Rename(oldpath, newpath string) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	oldpath = normalizePath(oldpath)
	node, exists := mfs.files[oldpath]
	if !exists {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: fs.ErrNotExist}
	}
	delete(mfs.files, oldpath)
	mfs.files[normalizePath(newpath)] = node
	return nil
}

func (mfs *MemFS) Stat(name string) (os.FileInfo, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	name = normalizePath(name)
	node, exists := mfs.files[name]
	if !exists {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
	}
	return node.info(name), nil
}

func (mfs *MemFS) Chmod(name string, mode os.FileMode) error {
	return mfs.update("chmod", name, func(n *memNode) { n.mode = mode })
}

func (mfs *MemFS) Chtimes(name string, atime time.Time, mtime time.Time) error {
	return mfs.update("chtimes", name, func(n *memNode) { n.modTime = mtime })
}

// Chown only checks that name exists.
func (mfs *MemFS) Chown(name string, uid, gid int) error {
	return mfs.update("chown", name, func(*memNode) {})
}

func (mfs *MemFS) update(op, name string, fn func(*memNode)) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	name = normalizePath(name)
	node, exists := mfs.files[name]
	if !exists {
		return &fs.PathError{Op: op, Path: name, Err: fs.ErrNotExist}
	}
	fn(node)
	return nil
}

// memFile is an open handle on a memNode. Handles share the node, so a
// write through one is visible to every other handle on the same file.
type memFile struct {
	mfs    *MemFS
	name   string
	node   *memNode
	flag   int
	pos    int64
	closed bool
}

func (f *memFile) readable() bool { return f.flag&os.O_WRONLY == 0 }
func (f *memFile) writable() bool { return f.flag&(os.O_WRONLY|os.O_RDWR) != 0 }

func (f *memFile) check(op string, write bool) error {
	if f.closed {
		return &fs.PathError{Op: op, Path: f.name, Err: fs.ErrClosed}
	}
	if (write && !f.writable()) || (!write && !f.readable()) {
		return &fs.PathError{Op: op, Path: f.name, Err: fs.ErrPermission}
	}
	return nil
}

func (f *memFile) Name() string { return f.name }

func (f *memFile) Read(p []byte) (int, error) {
	f.mfs.mu.RLock()
	defer f.mfs.mu.RUnlock()

	if err := f.check("read", false); err != nil {
		return 0, err
	}
	if f.pos >= int64(len(f.node.data)) {
		return 0, io.EOF
	}
	n := copy(p, f.node.data[f.pos:])
	f.pos += int64(n)
	return n, nil
}

func (f *memFile) ReadAt(b []byte, off int64) (int, error) {
	f.mfs.mu.RLock()
	defer f.mfs.mu.RUnlock()

	if err := f.check("read", false); err != nil {
		return 0, err
	}
	if off < 0 {
		return 0, &fs.PathError{Op: "read", Path: f.name, Err: errors.New("negative offset")}
	}
	if off >= int64(len(f.node.data)) {
		return 0, io.EOF
	}
	n := copy(b, f.node.data[off:])
	if n < len(b) {
		return n, io.EOF
	}
	return n, nil
}

func (f *memFile) Write(p []byte) (int, error) {
	f.mfs.mu.Lock()
	defer f.mfs.mu.Unlock()

	if err := f.check("write", true); err != nil {
		return 0, err
	}
	if f.flag&os.O_APPEND != 0 {
		f.pos = int64(len(f.node.data))
	}
	f.writeAt(p, f.pos)
	f.pos += int64(len(p))
	return len(p), nil
}

func (f *memFile) WriteAt(b []byte, off int64) (int, error) {
	f.mfs.mu.Lock()
	defer f.mfs.mu.Unlock()

	if err := f.check("write", true); err != nil {
		return 0, err
	}
	if off < 0 {
		return 0, &fs.PathError{Op: "write", Path: f.name, Err: errors.New("negative offset")}
	}
	f.writeAt(b, off)
	return len(b), nil
}

// writeAt grows the node with zeros as needed. The caller holds the lock.
func (f *memFile) writeAt(p []byte, off int64) {
	if end := off + int64(len(p)); end > int64(len(f.node.data)) {
		f.node.data = append(f.node.data, make([]byte, end-int64(len(f.node.data)))...)
	}
	copy(f.node.data[off:], p)
	f.node.modTime = time.Now()
}

func (f *memFile) WriteString(s string) (int, error) {
	return f.Write([]byte(s))
}

func (f *memFile) Truncate(size int64) error {
	f.mfs.mu.Lock()
	defer f.mfs.mu.Unlock()

	if err := f.check("truncate", true); err != nil {
		return err
	}
	if size < 0 {
		return &fs.PathError{Op: "truncate", Path: f.name, Err: fs.ErrInvalid}
	}
	if size <= int64(len(f.node.data)) {
		f.node.data = f.node.data[:size]
	} else {
		f.node.data = append(f.node.data, make([]byte, size-int64(len(f.node.data)))...)
	}
	f.node.modTime = time.Now()
	return nil
}

func (f *memFile) Seek(offset int64, whence int) (int64, error) {
	f.mfs.mu.RLock()
	defer f.mfs.mu.RUnlock()

	if f.closed {
		return 0, &fs.PathError{Op: "seek", Path: f.name, Err: fs.ErrClosed}
	}

	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = f.pos + offset
	case io.SeekEnd:
		pos = int64(len(f.node.data)) + offset
	default:
		return 0, &fs.PathError{Op: "seek", Path: f.name, Err: fs.ErrInvalid}
	}
	if pos < 0 {
		return 0, &fs.PathError{Op: "seek", Path: f.name, Err: fs.ErrInvalid}
	}
	f.pos = pos
	return pos, nil
}

func (f *memFile) Stat() (os.FileInfo, error) {
	f.mfs.mu.RLock()
	defer f.mfs.mu.RUnlock()

	return f.node.info(f.name), nil
}

func (f *memFile) Close() error {
	if f.closed {
		return fs.ErrClosed
	}
	f.closed = true
	return nil
}

func (f *memFile) Sync() error { return nil }

func (f *memFile) Readdir(int) ([]os.FileInfo, error) {
	return nil, &fs.PathError{Op: "readdir", Path: f.name, Err: os.ErrInvalid}
}

func (f *memFile) Readdirnames(int) ([]string, error) {
	return nil, &fs.PathError{Op: "readdirnames", Path: f.name, Err: os.ErrInvalid}
}

// memFileInfo implements fs.FileInfo
type memFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
}

func (fi *memFileInfo) Name() string       { return fi.name }
func (fi *memFileInfo) Size() int64        { return fi.size }
func (fi *memFileInfo) Mode() fs.FileMode  { return fi.mode }
func (fi *memFileInfo) ModTime() time.Time { return fi.modTime }
func (fi *memFileInfo) IsDir() bool        { return fi.mode.IsDir() }
func (fi *memFileInfo) Sys() interface{}   { return nil }
