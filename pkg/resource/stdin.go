package resource

import (
	"bytes"
	"context"
	"io"
	"os"
	"sync"
)

// Stdin buffers standard input in memory. The engine needs a total unit
// count before extraction and a pipe cannot be read twice, so the stream
// is slurped once on first use; every Open replays the buffer, which also
// makes the byte-seek strategy work on piped input.
type Stdin struct {
	src  io.Reader
	once sync.Once
	buf  []byte
	err  error
}

// NewStdin returns the standard-input resource. src overrides os.Stdin,
// for tests.
func NewStdin(src io.Reader) *Stdin {
	if src == nil {
		src = os.Stdin
	}
	return &Stdin{src: src}
}

func (s *Stdin) Name() string { return "standard input" }

func (s *Stdin) slurp() ([]byte, error) {
	s.once.Do(func() {
		s.buf, s.err = io.ReadAll(s.src)
	})
	return s.buf, s.err
}

func (s *Stdin) Open(ctx context.Context) (io.ReadCloser, error) {
	buf, err := s.slurp()
	if err != nil {
		return nil, err
	}
	return nopSeekCloser{bytes.NewReader(buf)}, nil
}

func (s *Stdin) Size(ctx context.Context) (uint64, error) {
	buf, err := s.slurp()
	if err != nil {
		return 0, err
	}
	return uint64(len(buf)), nil
}

type nopSeekCloser struct {
	*bytes.Reader
}

func (nopSeekCloser) Close() error { return nil }
