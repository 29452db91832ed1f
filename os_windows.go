//go:build windows

package dmmap

import (
	"os"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/dezashibi-c-projects/a-simple-xplat-mmap/internal/fs"
)

// handle is the platform token a live mapping holds until Close. On
// windows the file handle is closed as soon as the view exists and the
// mapping object handle is retained instead.
type handle struct {
	h    windows.Handle
	addr uintptr
}

// osMap maps size bytes of f with protection matching mode. On success
// ownership of f passes to osMap, which closes it right away (the view keeps
// its own reference to the file); on failure f is left open for the caller
// to release.
func osMap(f fs.File, size int, mode Mode) ([]byte, handle, error) {
	prot := uint32(windows.PAGE_READONLY)
	access := uint32(windows.FILE_MAP_READ)
	if mode == ReadWrite {
		prot = windows.PAGE_READWRITE
		access = windows.FILE_MAP_WRITE
	}

	low, high := uint32(size), uint32(uint64(size)>>32)
	h, err := windows.CreateFileMapping(windows.Handle(f.Fd()), nil, prot, high, low, nil)
	if err != nil {
		return nil, handle{}, os.NewSyscallError("CreateFileMapping", err)
	}

	addr, err := windows.MapViewOfFile(h, access, 0, 0, uintptr(size))
	if err != nil {
		windows.CloseHandle(h)
		return nil, handle{}, os.NewSyscallError("MapViewOfFile", err)
	}

	// Convert uintptr to []byte.
	data := unsafe.Slice((*byte)(unsafe.Pointer(addr)), size)

	f.Close()
	return data, handle{h: h, addr: addr}, nil
}

// release unmaps the view and closes the mapping object handle. Both steps
// are always attempted; the first error wins. We unmap through the captured
// address, which is safer than reconstructing it from the slice.
func (h handle) release(data []byte) error {
	var err error
	if h.addr != 0 {
		if uerr := windows.UnmapViewOfFile(h.addr); uerr != nil {
			err = os.NewSyscallError("UnmapViewOfFile", uerr)
		}
	}
	if h.h != 0 {
		if cerr := windows.CloseHandle(h.h); cerr != nil && err == nil {
			err = os.NewSyscallError("CloseHandle", cerr)
		}
	}
	return err
}
