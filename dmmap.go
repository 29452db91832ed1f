package dmmap

import (
	"io"
	"sync/atomic"
	"time"

	"github.com/dezashibi-c-projects/a-simple-xplat-mmap/resource"
)

// File represents a memory-mapped file.
// It owns the mapped byte slice and the platform resource needed to release
// it, and is responsible for both on Close.
//
// A File is either live or empty. Closed, failed and zero-length Files are
// empty: no bytes, no resource, nothing left to release.
type File struct {
	data []byte
	size int
	mode Mode
	path string
	res  handle

	closed  atomic.Bool
	logger  *Logger
	metrics MetricsCollector
	rc      *resource.Controller
}

// Open maps the whole file at path into memory with protection matching
// mode.
//
// On failure Open returns a nil File and the underlying error; everything
// acquired before the failing step has been released by the time Open
// returns. A zero-length file maps to a valid empty File.
func Open(path string, mode Mode, optFns ...Option) (*File, error) {
	o := applyOptions(optFns)

	start := time.Now()
	m, err := open(o, path, mode)
	duration := time.Since(start)

	if err != nil {
		if o.metricsCollector != nil {
			o.metricsCollector.RecordOpen(0, duration, err)
		}
		if o.logger != nil {
			o.logger.LogOpen(path, mode, 0, err)
		}
		return nil, err
	}

	m.logger = o.logger
	m.metrics = o.metricsCollector
	if o.metricsCollector != nil {
		o.metricsCollector.RecordOpen(int64(m.size), duration, nil)
	}
	if o.logger != nil {
		o.logger.LogOpen(path, mode, int64(m.size), nil)
	}
	return m, nil
}

func open(o options, path string, mode Mode) (*File, error) {
	if !mode.valid() {
		return nil, ErrInvalidMode
	}

	f, err := o.fsys.OpenFile(path, mode.flag(), 0)
	if err != nil {
		return nil, err
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if fi.IsDir() {
		f.Close()
		return nil, ErrIsDirectory
	}

	size := fi.Size()
	if size < 0 {
		f.Close()
		return nil, ErrInvalidSize
	}
	if size > maxMapSize {
		f.Close()
		return nil, ErrTooLarge
	}
	if size == 0 {
		// Mapping primitives reject zero-length requests, so an empty file
		// becomes an empty File that holds no resource and costs no budget.
		f.Close()
		return &File{mode: mode, path: path}, nil
	}

	if err := o.rc.Acquire(size); err != nil {
		f.Close()
		return nil, err
	}

	// Platform-specific mapping. On success the handle takes over f.
	data, res, err := osMap(f, int(size), mode)
	if err != nil {
		o.rc.Release(size)
		f.Close()
		return nil, err
	}

	return &File{
		data: data,
		size: int(size),
		mode: mode,
		path: path,
		res:  res,
		rc:   o.rc,
	}, nil
}

// Close releases the mapping and its platform resource. It is idempotent
// and nil-safe: closing a closed, empty or zero-value File is a no-op.
func (m *File) Close() error {
	if m == nil {
		return nil
	}
	if m.closed.Swap(true) {
		return nil // Already closed
	}

	start := time.Now()
	data := m.data
	size := m.size
	m.data = nil
	m.size = 0
	err := m.res.release(data)
	m.res = handle{}
	if data != nil {
		m.rc.Release(int64(size))
	}
	duration := time.Since(start)

	if m.metrics != nil {
		m.metrics.RecordClose(duration, err)
	}
	if m.logger != nil {
		m.logger.LogClose(m.path, err)
	}
	return err
}

// Bytes returns the mapped region as a byte slice. It is nil for empty and
// closed Files.
//
// Warning: The slice is valid only until Close() is called.
// Accessing the slice after Close() results in undefined behavior (likely a crash).
func (m *File) Bytes() []byte {
	if m == nil || m.closed.Load() {
		return nil
	}
	return m.data
}

// Len returns the length of the mapped region in bytes. It reports 0 for
// empty and closed Files.
func (m *File) Len() int {
	if m == nil || m.closed.Load() {
		return 0
	}
	return m.size
}

// Mode returns the protection the File was opened with.
func (m *File) Mode() Mode {
	return m.mode
}

// Name returns the path passed to Open.
func (m *File) Name() string {
	return m.path
}

// ReadAt implements io.ReaderAt.
func (m *File) ReadAt(p []byte, off int64) (n int, err error) {
	if m.closed.Load() {
		return 0, ErrClosed
	}
	if off < 0 {
		return 0, ErrInvalidOffset
	}
	if off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n = copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// WriteAt implements io.WriterAt for read-write mappings. Stores go straight
// into the mapped region, so they are visible to every holder of the slice
// immediately and to later opens of the file once the mapping is closed.
func (m *File) WriteAt(p []byte, off int64) (n int, err error) {
	if m.closed.Load() {
		return 0, ErrClosed
	}
	if m.mode != ReadWrite {
		return 0, ErrReadOnly
	}
	if off < 0 {
		return 0, ErrInvalidOffset
	}
	if off >= int64(len(m.data)) {
		return 0, ErrOutOfBounds
	}
	n = copy(m.data[off:], p)
	if n < len(p) {
		return n, io.ErrShortWrite
	}
	return n, nil
}
