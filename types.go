package dmmap

import "os"

// Mode selects the protection of a mapping.
type Mode int

const (
	// ReadOnly maps the file for reading. Stores through the mapping fault.
	ReadOnly Mode = iota
	// ReadWrite maps the file for reading and writing. The mapping is
	// shared, so stores land in the file and are visible to later opens.
	ReadWrite
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case ReadOnly:
		return "read-only"
	case ReadWrite:
		return "read-write"
	default:
		return "invalid"
	}
}

func (m Mode) valid() bool {
	return m == ReadOnly || m == ReadWrite
}

// flag returns the access flag the backing file is opened with.
func (m Mode) flag() int {
	if m == ReadWrite {
		return os.O_RDWR
	}
	return os.O_RDONLY
}
