package resource

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// rangeReader adapts a ranged-request backend into an io.ReadSeekCloser.
// The remote body is opened lazily at the current offset; seeking away
// from the current position drops the body so the next read reopens with a
// new range. A seek therefore costs one request, not a download of the
// skipped prefix.
type rangeReader struct {
	ctx  context.Context
	open func(ctx context.Context, off int64) (io.ReadCloser, error)
	size int64
	off  int64
	body io.ReadCloser
}

func (r *rangeReader) Read(p []byte) (int, error) {
	if r.off >= r.size {
		return 0, io.EOF
	}
	if r.body == nil {
		body, err := r.open(r.ctx, r.off)
		if err != nil {
			return 0, err
		}
		r.body = body
	}
	n, err := r.body.Read(p)
	r.off += int64(n)
	return n, err
}

func (r *rangeReader) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = r.off + offset
	case io.SeekEnd:
		abs = r.size + offset
	default:
		return 0, fmt.Errorf("invalid whence %d", whence)
	}
	if abs < 0 {
		return 0, errors.New("negative seek offset")
	}
	if abs != r.off && r.body != nil {
		r.body.Close()
		r.body = nil
	}
	r.off = abs
	return abs, nil
}

func (r *rangeReader) Close() error {
	if r.body == nil {
		return nil
	}
	err := r.body.Close()
	r.body = nil
	return err
}
