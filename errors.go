package dmmap

import "errors"

var (
	// ErrClosed is returned when accessing a closed File.
	ErrClosed = errors.New("dmmap: file is closed")

	// ErrReadOnly is returned when writing through a read-only mapping.
	ErrReadOnly = errors.New("dmmap: file is mapped read-only")

	// ErrInvalidMode is returned when the mode passed to Open is neither
	// ReadOnly nor ReadWrite.
	ErrInvalidMode = errors.New("dmmap: invalid mode")

	// ErrInvalidOffset is returned when an offset is negative.
	ErrInvalidOffset = errors.New("dmmap: invalid offset")

	// ErrOutOfBounds is returned when a write would start beyond the end of
	// the mapping.
	ErrOutOfBounds = errors.New("dmmap: offset out of bounds")

	// ErrInvalidSize is returned when the backing file reports a negative
	// size.
	ErrInvalidSize = errors.New("dmmap: invalid file size")

	// ErrIsDirectory is returned when the path names a directory.
	ErrIsDirectory = errors.New("dmmap: path is a directory")

	// ErrTooLarge is returned when the file exceeds the platform mapping
	// ceiling.
	ErrTooLarge = errors.New("dmmap: file too large to map")
)
