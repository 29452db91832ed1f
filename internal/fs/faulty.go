package fs

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// Invalid descriptor handed out by the BadFd fault. A descriptor this high
// is never open in a test process, so mapping it fails on every platform.
const badFd = uintptr(1) << 20

// Fault defines specific failure behavior for files whose name matches a rule.
type Fault struct {
	FailOnOpen   bool  // OpenFile fails outright; no file is opened
	FailOnStat   bool  // Stat fails after a successful open
	FailOnClose  bool  // Close reports an error (the file is still closed)
	BadFd        bool  // Fd returns an invalid descriptor so the mapping step fails
	StatSize     int64 // reported instead of the real size when OverrideSize is set
	OverrideSize bool
	Err          error
}

// FaultyFS is a FileSystem wrapper that can inject errors and that counts
// open and close calls, so tests can prove no descriptor survives a failed
// multi-step open.
type FaultyFS struct {
	FS FileSystem

	// Err is the fallback error used by rules that do not set their own.
	Err error

	mu     sync.Mutex
	rules  map[string]Fault
	opens  int64
	closes int64
}

// NewFaultyFS creates a new FaultyFS wrapping the provided FS (or Default if nil).
func NewFaultyFS(fsys FileSystem) *FaultyFS {
	if fsys == nil {
		fsys = Default
	}
	return &FaultyFS{
		FS:    fsys,
		Err:   fmt.Errorf("injected fault error"),
		rules: make(map[string]Fault),
	}
}

// AddRule adds a fault injection rule for files whose name contains pattern.
func (f *FaultyFS) AddRule(pattern string, fault Fault) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules[pattern] = fault
}

// OpenCount returns the number of successful OpenFile calls.
func (f *FaultyFS) OpenCount() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.opens
}

// CloseCount returns the number of Close calls made on files opened through
// this file system, whether or not the close itself was made to fail.
func (f *FaultyFS) CloseCount() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closes
}

func (f *FaultyFS) OpenFile(name string, flag int, perm os.FileMode) (File, error) {
	f.mu.Lock()
	var fault Fault
	for pattern, rule := range f.rules {
		if strings.Contains(name, pattern) {
			fault = rule
		}
	}
	if fault.Err == nil {
		fault.Err = f.Err
	}
	f.mu.Unlock()

	if fault.FailOnOpen {
		return nil, fault.Err
	}

	file, err := f.FS.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.opens++
	f.mu.Unlock()

	return &faultyFile{File: file, fs: f, fault: fault}, nil
}

type faultyFile struct {
	File
	fs    *FaultyFS
	fault Fault
}

func (ff *faultyFile) Fd() uintptr {
	if ff.fault.BadFd {
		return badFd
	}
	return ff.File.Fd()
}

func (ff *faultyFile) Stat() (os.FileInfo, error) {
	if ff.fault.FailOnStat {
		return nil, ff.fault.Err
	}
	fi, err := ff.File.Stat()
	if err != nil {
		return nil, err
	}
	if ff.fault.OverrideSize {
		return sizedFileInfo{FileInfo: fi, size: ff.fault.StatSize}, nil
	}
	return fi, nil
}

func (ff *faultyFile) Close() error {
	ff.fs.mu.Lock()
	ff.fs.closes++
	ff.fs.mu.Unlock()

	err := ff.File.Close()
	if ff.fault.FailOnClose {
		return ff.fault.Err
	}
	return err
}

// sizedFileInfo reports a fabricated size while delegating everything else.
type sizedFileInfo struct {
	os.FileInfo
	size int64
}

func (s sizedFileInfo) Size() int64 { return s.size }
