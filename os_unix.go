//go:build unix || linux || darwin || freebsd || openbsd || netbsd

package dmmap

import (
	"golang.org/x/sys/unix"

	"github.com/dezashibi-c-projects/a-simple-xplat-mmap/internal/fs"
)

// handle is the platform token a live mapping holds until Close. On unix
// the descriptor of the mapped file stays open for the lifetime of the
// mapping and is closed together with it.
type handle struct {
	f fs.File
}

// osMap maps size bytes of f with protection matching mode. On success
// ownership of f passes to the returned handle; on failure f is left open
// for the caller to release.
func osMap(f fs.File, size int, mode Mode) ([]byte, handle, error) {
	prot := unix.PROT_READ
	if mode == ReadWrite {
		prot |= unix.PROT_WRITE
	}

	// Note: Fd() returns uintptr, Mmap expects int on some platforms, but unix package handles it.
	data, err := unix.Mmap(int(f.Fd()), 0, size, prot, unix.MAP_SHARED)
	if err != nil {
		return nil, handle{}, err
	}

	return data, handle{f: f}, nil
}

// release unmaps data and closes the retained descriptor. Both steps are
// always attempted; the first error wins.
func (h handle) release(data []byte) error {
	var err error
	if data != nil {
		err = unix.Munmap(data)
	}
	if h.f != nil {
		if cerr := h.f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
