package fs

import (
	"io"
	"os"
)

// File represents an open file that can back a memory mapping.
type File interface {
	io.Closer
	// Fd returns the descriptor (unix) or handle (windows) the mapping
	// primitives operate on.
	Fd() uintptr
	Stat() (os.FileInfo, error)
}

// FileSystem abstracts file opening for testability.
type FileSystem interface {
	OpenFile(name string, flag int, perm os.FileMode) (File, error)
}

// LocalFS implements FileSystem using the standard os package.
type LocalFS struct{}

func (LocalFS) OpenFile(name string, flag int, perm os.FileMode) (File, error) {
	return os.OpenFile(name, flag, perm)
}

// Default is the default local file system.
var Default FileSystem = LocalFS{}
