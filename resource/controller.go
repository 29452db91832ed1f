// Package resource provides budget enforcement for memory mappings.
//
// A Controller tracks how many mappings are live and how many bytes they
// cover, and can reject new mappings once a configured budget is spent.
// All methods are safe on a nil Controller, which behaves as "no budget".
package resource

import (
	"context"
	"errors"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

var (
	// ErrMappedBytesLimit is returned when a mapping would push the total
	// mapped bytes over the configured limit.
	ErrMappedBytesLimit = errors.New("resource: mapped bytes limit exceeded")

	// ErrMappingsLimit is returned when the configured number of
	// simultaneous mappings is already live.
	ErrMappingsLimit = errors.New("resource: mapping count limit exceeded")
)

// Config holds mapping budgets.
type Config struct {
	// MappedBytesLimit is the hard limit for total mapped bytes.
	// If 0, no hard limit is enforced (only tracking).
	MappedBytesLimit int64

	// MaxMappings is the maximum number of simultaneously live mappings.
	// If 0, unlimited.
	MaxMappings int64

	// PageInBytesPerSec is the maximum throughput for paced reads and
	// writes. If 0, unlimited.
	PageInBytesPerSec int64
}

// Controller tracks and limits the mappings of a process.
type Controller struct {
	cfg Config

	// Mapped bytes
	memSem  *semaphore.Weighted // nil if unlimited
	memUsed atomic.Int64

	// Mapping slots
	mapSem   *semaphore.Weighted // nil if unlimited
	mappings atomic.Int64

	// Paced page-in
	ioLimiter *rate.Limiter
}

// NewController creates a new mapping budget controller.
func NewController(cfg Config) *Controller {
	c := &Controller{cfg: cfg}

	if cfg.MappedBytesLimit > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MappedBytesLimit)
	}
	if cfg.MaxMappings > 0 {
		c.mapSem = semaphore.NewWeighted(cfg.MaxMappings)
	}
	if cfg.PageInBytesPerSec > 0 {
		c.ioLimiter = rate.NewLimiter(rate.Limit(cfg.PageInBytesPerSec), int(cfg.PageInBytesPerSec))
	}

	return c
}

// Acquire reserves one mapping slot and its byte weight without blocking.
// Acquisition is all-or-nothing: on error nothing stays reserved.
func (c *Controller) Acquire(bytes int64) error {
	if c == nil {
		return nil
	}
	if bytes < 0 {
		bytes = 0
	}

	if c.mapSem != nil && !c.mapSem.TryAcquire(1) {
		return ErrMappingsLimit
	}
	if c.memSem != nil && bytes > 0 && !c.memSem.TryAcquire(bytes) {
		if c.mapSem != nil {
			c.mapSem.Release(1)
		}
		return ErrMappedBytesLimit
	}

	c.mappings.Add(1)
	c.memUsed.Add(bytes)
	return nil
}

// Release returns one mapping slot and its byte weight. bytes must match
// the amount passed to the corresponding Acquire.
func (c *Controller) Release(bytes int64) {
	if c == nil {
		return
	}
	if bytes < 0 {
		bytes = 0
	}

	if c.memSem != nil && bytes > 0 {
		c.memSem.Release(bytes)
	}
	if c.mapSem != nil {
		c.mapSem.Release(1)
	}
	c.mappings.Add(-1)
	c.memUsed.Add(-bytes)
}

// MappedBytes returns the total bytes currently mapped under this controller.
func (c *Controller) MappedBytes() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

// Mappings returns the number of currently live mappings under this controller.
func (c *Controller) Mappings() int64 {
	if c == nil {
		return 0
	}
	return c.mappings.Load()
}

// AcquireIO waits until the page-in limit allows the specified number of bytes.
func (c *Controller) AcquireIO(ctx context.Context, bytes int) error {
	if c == nil || c.ioLimiter == nil {
		return nil
	}
	return c.ioLimiter.WaitN(ctx, bytes)
}
