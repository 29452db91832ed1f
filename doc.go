// Package dmmap provides cross-platform memory-mapped file access.
//
// # Overview
//
// Memory mapping allows direct access to file contents without copying data
// through read and write syscalls. The package maps whole files only and
// keeps the lifecycle minimal: [Open] maps a file, [File.Close] releases it,
// and everything in between is plain byte-slice access.
//
// # Usage
//
//	m, err := dmmap.Open("data.bin", dmmap.ReadOnly)
//	if err != nil { ... }
//	defer m.Close()
//
//	// Zero-copy access to file contents
//	data := m.Bytes()
//
// Read-write mappings write through to the file:
//
//	m, err := dmmap.Open("data.bin", dmmap.ReadWrite)
//	if err != nil { ... }
//	m.Bytes()[0] = 0xFF
//	m.Close()
//
// # Platform Support
//
// The package provides a unified API across platforms:
//
//   - Unix (Linux, macOS, BSD): Uses mmap(2) with MAP_SHARED. The file
//     descriptor stays open for the lifetime of the mapping and is closed
//     together with it.
//   - Windows: Uses CreateFileMapping/MapViewOfFile. The file handle is
//     closed as soon as the view exists; the mapping object handle is held
//     until Close.
//
// # Thread Safety
//
// A File is safe for concurrent read access through Bytes and ReadAt. Writes
// to a read-write mapping follow ordinary memory visibility rules and must
// be synchronized by the caller. The Close() method is idempotent and
// protected by atomic operations. However, callers must ensure no goroutines
// access Bytes() after Close() returns.
//
// # Zero-Length Files
//
// Opening a zero-length file succeeds and yields an empty File: Len reports
// 0, Bytes returns nil and Close is a no-op. The mapping primitives on both
// platforms reject zero-length requests, so none is made.
//
// # Durability
//
// Closing a read-write File makes its stores visible to subsequent opens of
// the file. It does not force them to stable storage: the package offers no
// flush control and leaves write-back timing to the operating system.
package dmmap
