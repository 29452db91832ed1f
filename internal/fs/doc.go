// Package fs provides the filesystem seam behind the mapping layer, for
// testability and fault injection.
//
// The package defines two interfaces:
//
//   - [File]: an open file exposing the descriptor the mapping primitives need
//   - [FileSystem]: abstracts how such files are opened
//
// # Implementations
//
//   - [LocalFS]: production implementation using the standard os package
//   - [FaultyFS]: test utility for fault injection (failing opens, stats,
//     closes, or the mapping step itself via an invalid descriptor)
//
// Production code uses fs.Default (which is [LocalFS]). Tests inject
// [FaultyFS] to drive the failure paths of a multi-step open and to verify,
// via its open/close counters, that no descriptor leaks when a step fails:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule("victim.bin", fs.Fault{FailOnStat: true})
//	// inject ffs into the component under test, then assert
//	// ffs.OpenCount() == ffs.CloseCount()
//
// # Design Notes
//
// The interfaces intentionally carry no context.Context. Opening and statting
// local files completes in microseconds and is not interruptible at the
// syscall level, so a context would add surface without cancellation value.
package fs
