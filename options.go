package dmmap

import (
	"log/slog"

	"github.com/dezashibi-c-projects/a-simple-xplat-mmap/internal/fs"
	"github.com/dezashibi-c-projects/a-simple-xplat-mmap/resource"
)

type options struct {
	fsys             fs.FileSystem
	metricsCollector MetricsCollector
	logger           *Logger
	rc               *resource.Controller
}

// Option configures Open behavior.
type Option func(*options)

// WithFileSystem configures the file system used to open the backing file.
// This is primarily used for testing and fault injection.
//
// If nil is passed, fs.Default is used.
func WithFileSystem(fsys fs.FileSystem) Option {
	return func(o *options) {
		if fsys == nil {
			fsys = fs.Default
		}
		o.fsys = fsys
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// open and close operations. Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &dmmap.BasicMetricsCollector{}
//	m, _ := dmmap.Open("data.bin", dmmap.ReadOnly, dmmap.WithMetricsCollector(metrics))
//	// ... use m ...
//	stats := metrics.GetStats()
//	fmt.Printf("Opens: %d, Avg latency: %dns\n", stats.OpenCount, stats.OpenAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for open and close operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := dmmap.NewJSONLogger(slog.LevelInfo)
//	m, _ := dmmap.Open("data.bin", dmmap.ReadOnly, dmmap.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithResourceController enforces a shared budget on the number of live
// mappings and the total bytes they cover. Open fails with
// resource.ErrMappingsLimit or resource.ErrMappedBytesLimit once the budget
// is exhausted, and Close returns the File's share. Pass nil to disable
// budget enforcement.
//
// A single controller may be shared across many Open calls:
//
//	rc := resource.NewController(resource.Config{MappedBytesLimit: 1 << 30})
//	m, err := dmmap.Open("data.bin", dmmap.ReadOnly, dmmap.WithResourceController(rc))
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.rc = rc
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		fsys:             fs.Default,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
