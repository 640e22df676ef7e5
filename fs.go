package webopt

import (
	"os"
	"path/filepath"
	"time"

	"github.com/absfs/absfs"
)

// dirFiler is an absfs.Filer rooted at a directory on disk. Names never
// resolve outside the root.
type dirFiler struct {
	root string
}

// DirFS returns a FileSystem for the files under root.
func DirFS(root string) absfs.FileSystem {
	return absfs.ExtendFiler(&dirFiler{root: root})
}

func (d *dirFiler) path(name string) string {
	sep := string(filepath.Separator)
	return filepath.Join(d.root, filepath.Clean(sep+filepath.FromSlash(name)))
}

func (d *dirFiler) OpenFile(name string, flag int, perm os.FileMode) (absfs.File, error) {
	f, err := os.OpenFile(d.path(name), flag, perm)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (d *dirFiler) Mkdir(name string, perm os.FileMode) error {
	return os.Mkdir(d.path(name), perm)
}

func (d *dirFiler) Remove(name string) error {
	return os.Remove(d.path(name))
}

func (d *dirFiler) Rename(oldpath, newpath string) error {
	return os.Rename(d.path(oldpath), d.path(newpath))
}

func (d *dirFiler) Stat(name string) (os.FileInfo, error) {
	return os.Stat(d.path(name))
}

func (d *dirFiler) Chmod(name string, mode os.FileMode) error {
	return os.Chmod(d.path(name), mode)
}

func (d *dirFiler) Chtimes(name string, atime time.Time, mtime time.Time) error {
	return os.Chtimes(d.path(name), atime, mtime)
}

func (d *dirFiler) Chown(name string, uid, gid int) error {
	return os.Chown(d.path(name), uid, gid)
}
