package filesystem

import "io/fs"

// FS abstracts the filesystem operations used by the tree walkers.
//
// Mkdir is deliberately non-recursive: the walker creates destination
// directories top-down, and callers treat fs.ErrExist as success so
// the creation call itself arbitrates existence (no stat-then-create
// race).
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadDir(name string) ([]fs.DirEntry, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	Mkdir(name string, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	Chmod(name string, mode fs.FileMode) error
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)
	Remove(name string) error
}
