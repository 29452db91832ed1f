package dmmap

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/dezashibi-c-projects/a-simple-xplat-mmap/internal/fs"
	"github.com/dezashibi-c-projects/a-simple-xplat-mmap/resource"
	"github.com/dezashibi-c-projects/a-simple-xplat-mmap/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_MappingBudget(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.bin")
	second := filepath.Join(dir, "second.bin")
	require.NoError(t, os.WriteFile(first, make([]byte, 128), 0o600))
	require.NoError(t, os.WriteFile(second, make([]byte, 128), 0o600))

	rc := resource.NewController(resource.Config{MaxMappings: 1})

	m1, err := Open(first, ReadOnly, WithResourceController(rc))
	require.NoError(t, err)
	assert.Equal(t, int64(1), rc.Mappings())
	assert.Equal(t, int64(128), rc.MappedBytes())

	m2, err := Open(second, ReadOnly, WithResourceController(rc))
	require.ErrorIs(t, err, resource.ErrMappingsLimit)
	assert.Nil(t, m2)

	// Closing the first mapping frees the slot for the second.
	require.NoError(t, m1.Close())
	assert.Equal(t, int64(0), rc.Mappings())
	assert.Equal(t, int64(0), rc.MappedBytes())

	m2, err = Open(second, ReadOnly, WithResourceController(rc))
	require.NoError(t, err)
	require.NoError(t, m2.Close())
}

func TestOpen_MappedBytesBudget(t *testing.T) {
	dir := t.TempDir()
	small := filepath.Join(dir, "small.bin")
	large := filepath.Join(dir, "large.bin")
	empty := filepath.Join(dir, "empty.bin")
	require.NoError(t, os.WriteFile(small, make([]byte, 1024), 0o600))
	require.NoError(t, os.WriteFile(large, make([]byte, 4096), 0o600))
	require.NoError(t, os.WriteFile(empty, nil, 0o600))

	rc := resource.NewController(resource.Config{MappedBytesLimit: 4096})

	m, err := Open(small, ReadOnly, WithResourceController(rc))
	require.NoError(t, err)
	assert.Equal(t, int64(1024), rc.MappedBytes())

	_, err = Open(large, ReadOnly, WithResourceController(rc))
	require.ErrorIs(t, err, resource.ErrMappedBytesLimit)
	assert.Equal(t, int64(1024), rc.MappedBytes())
	assert.Equal(t, int64(1), rc.Mappings())

	// Empty files hold no mapping and cost no budget.
	e, err := Open(empty, ReadOnly, WithResourceController(rc))
	require.NoError(t, err)
	assert.Equal(t, int64(1024), rc.MappedBytes())
	assert.Equal(t, int64(1), rc.Mappings())
	require.NoError(t, e.Close())

	require.NoError(t, m.Close())
	assert.Equal(t, int64(0), rc.MappedBytes())

	m, err = Open(large, ReadOnly, WithResourceController(rc))
	require.NoError(t, err)
	assert.Equal(t, int64(4096), rc.MappedBytes())
	require.NoError(t, m.Close())
}

// TestOpen_BudgetReleasedOnFailure proves a failed mapping attempt returns
// its reservation, so the budget cannot leak through error paths.
func TestOpen_BudgetReleasedOnFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, 64), 0o600))

	ffs := fs.NewFaultyFS(nil)
	ffs.AddRule("data.bin", fs.Fault{BadFd: true})
	rc := resource.NewController(resource.Config{MaxMappings: 1, MappedBytesLimit: 64})

	m, err := Open(path, ReadOnly, WithFileSystem(ffs), WithResourceController(rc))
	require.Error(t, err)
	assert.Nil(t, m)
	assert.Equal(t, int64(0), rc.Mappings())
	assert.Equal(t, int64(0), rc.MappedBytes())

	// The whole budget is available again.
	m, err = Open(path, ReadOnly, WithResourceController(rc))
	require.NoError(t, err)
	require.NoError(t, m.Close())
}

func TestFile_PacedScan(t *testing.T) {
	content := testutil.Pattern(8192)
	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	m, err := Open(path, ReadOnly)
	require.NoError(t, err)
	defer m.Close()

	rc := resource.NewController(resource.Config{PageInBytesPerSec: 1 << 20})
	pr := resource.NewPacedReader(context.Background(), m, rc)

	var out bytes.Buffer
	n, err := io.CopyBuffer(&out, pr, make([]byte, 1024))
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), n)
	assert.True(t, bytes.Equal(content, out.Bytes()))
}
