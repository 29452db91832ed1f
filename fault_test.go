package dmmap

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/dezashibi-c-projects/a-simple-xplat-mmap/internal/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOpen_FaultCleanup drives Open into every failure step after the file
// has been opened and proves the descriptor never survives the failure.
func TestOpen_FaultCleanup(t *testing.T) {
	tests := []struct {
		name    string
		fault   fs.Fault
		wantErr error // nil accepts any error
	}{
		{name: "stat fails", fault: fs.Fault{FailOnStat: true}},
		{name: "stat fails and close fails too", fault: fs.Fault{FailOnStat: true, FailOnClose: true}},
		{name: "negative size", fault: fs.Fault{OverrideSize: true, StatSize: -1}, wantErr: ErrInvalidSize},
		{name: "size beyond mapping ceiling", fault: fs.Fault{OverrideSize: true, StatSize: int64(maxMapSize) + 1}, wantErr: ErrTooLarge},
		{name: "mapping step fails", fault: fs.Fault{BadFd: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "data.bin")
			require.NoError(t, os.WriteFile(path, make([]byte, 64), 0o600))

			ffs := fs.NewFaultyFS(nil)
			ffs.AddRule("data.bin", tt.fault)

			m, err := Open(path, ReadOnly, WithFileSystem(ffs))
			require.Error(t, err)
			assert.Nil(t, m)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}

			assert.Equal(t, int64(1), ffs.OpenCount())
			assert.Equal(t, ffs.OpenCount(), ffs.CloseCount())
		})
	}
}

func TestOpen_FaultOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, 64), 0o600))

	ffs := fs.NewFaultyFS(nil)
	ffs.AddRule("data.bin", fs.Fault{FailOnOpen: true})

	m, err := Open(path, ReadOnly, WithFileSystem(ffs))
	assert.Nil(t, m)
	require.Error(t, err)

	assert.Equal(t, int64(0), ffs.OpenCount())
	assert.Equal(t, int64(0), ffs.CloseCount())
}

// TestOpen_DescriptorBalance checks that every descriptor opened through the
// file system seam is closed exactly once, on success paths included.
func TestOpen_DescriptorBalance(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, 64), 0o600))

	ffs := fs.NewFaultyFS(nil)

	m, err := Open(path, ReadOnly, WithFileSystem(ffs))
	require.NoError(t, err)
	require.NoError(t, m.Close())

	assert.Equal(t, int64(1), ffs.OpenCount())
	assert.Equal(t, int64(1), ffs.CloseCount())

	// Empty files never hold a descriptor past Open.
	empty := filepath.Join(t.TempDir(), "empty.bin")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))

	m, err = Open(empty, ReadOnly, WithFileSystem(ffs))
	require.NoError(t, err)
	assert.Equal(t, int64(2), ffs.OpenCount())
	assert.Equal(t, int64(2), ffs.CloseCount())
	require.NoError(t, m.Close())
	assert.Equal(t, int64(2), ffs.CloseCount())
}

func TestFile_CloseError(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("the file handle is already released during open on windows")
	}

	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, 64), 0o600))

	ffs := fs.NewFaultyFS(nil)
	ffs.AddRule("data.bin", fs.Fault{FailOnClose: true})
	metrics := &BasicMetricsCollector{}

	m, err := Open(path, ReadOnly, WithFileSystem(ffs), WithMetricsCollector(metrics))
	require.NoError(t, err)

	err = m.Close()
	require.Error(t, err)

	// The mapping is gone regardless of the close error.
	assert.Nil(t, m.Bytes())
	assert.Equal(t, 0, m.Len())
	assert.NoError(t, m.Close())

	assert.Equal(t, int64(1), ffs.CloseCount())
	assert.Equal(t, int64(1), metrics.CloseErrors.Load())
}
