package resource

import (
	"context"
	"io"
)

// PacedReader reads sequentially through an io.ReaderAt under the
// controller's page-in throughput limit. Scanning a cold mapping through it
// turns the page faults into a steady trickle instead of an IO burst.
type PacedReader struct {
	r   io.ReaderAt
	rc  *Controller
	ctx context.Context
	off int64
}

// NewPacedReader creates a PacedReader starting at offset 0.
func NewPacedReader(ctx context.Context, r io.ReaderAt, rc *Controller) *PacedReader {
	return &PacedReader{
		r:   r,
		rc:  rc,
		ctx: ctx,
	}
}

func (p *PacedReader) Read(b []byte) (n int, err error) {
	// Wait for len(b), the most this call can fault in. Buffers larger
	// than the limiter burst are rejected by the limiter.
	if err := p.rc.AcquireIO(p.ctx, len(b)); err != nil {
		return 0, err
	}
	n, err = p.r.ReadAt(b, p.off)
	p.off += int64(n)
	return n, err
}

// PacedWriter writes sequentially through an io.WriterAt under the same
// limit, keeping dirty-page bursts in check.
type PacedWriter struct {
	w   io.WriterAt
	rc  *Controller
	ctx context.Context
	off int64
}

// NewPacedWriter creates a PacedWriter starting at offset 0.
func NewPacedWriter(ctx context.Context, w io.WriterAt, rc *Controller) *PacedWriter {
	return &PacedWriter{
		w:   w,
		rc:  rc,
		ctx: ctx,
	}
}

func (p *PacedWriter) Write(b []byte) (n int, err error) {
	if err := p.rc.AcquireIO(p.ctx, len(b)); err != nil {
		return 0, err
	}
	n, err = p.w.WriteAt(b, p.off)
	p.off += int64(n)
	return n, err
}
