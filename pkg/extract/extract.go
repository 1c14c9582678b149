// Package extract implements the two windowed-extraction strategies of the
// tail engine: a forward line scan for line units and a direct seek for
// byte units. Both consume the start index produced by pkg/window and emit
// the window verbatim.
package extract

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"unicode/utf8"
)

var eol = []byte("\n")

// Unit is the addressable unit a window is expressed in.
type Unit int

const (
	Lines Unit = iota
	Bytes
)

func (u Unit) String() string {
	if u == Bytes {
		return "bytes"
	}
	return "lines"
}

// Strategy emits the trailing window of src, from the resolved start index
// (in the strategy's unit) through the end, to dst. Strategies hold no
// state; one value may serve many resources, concurrently.
type Strategy interface {
	Extract(dst io.Writer, src io.Reader, start uint64) error
}

// ForUnit returns the strategy for a unit: line scan for Lines, direct
// seek for Bytes.
func ForUnit(u Unit) Strategy {
	if u == Bytes {
		return ByteStrategy{}
	}
	return LineStrategy{}
}

// DecodeError reports content that could not be interpreted as text when
// line-unit extraction required it.
type DecodeError struct{}

func (*DecodeError) Error() string { return "invalid UTF-8 in line content" }

// LineStrategy reads and discards whole lines (terminator included) up to
// the start index, then copies the remainder. It never seeks, so it works
// on forward-only streams. The emitted window must be valid UTF-8;
// otherwise extraction fails with a DecodeError.
type LineStrategy struct{}

func (LineStrategy) Extract(dst io.Writer, src io.Reader, start uint64) error {
	br := bufio.NewReader(src)
	for skipped := uint64(0); skipped < start; skipped++ {
		if err := skipLine(br); err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("skipping line %d: %w", skipped+1, err)
		}
	}
	rest, err := io.ReadAll(br)
	if err != nil {
		return err
	}
	if !utf8.Valid(rest) {
		return &DecodeError{}
	}
	_, err = dst.Write(rest)
	return err
}

// skipLine consumes one line including its terminator.
func skipLine(br *bufio.Reader) error {
	for {
		_, err := br.ReadSlice('\n')
		if err != bufio.ErrBufferFull {
			return err
		}
	}
}

// ByteStrategy seeks src to the absolute start index and copies the
// remainder verbatim, tolerating bytes that do not form valid text. src
// must implement io.Seeker; non-seekable streams only support the line
// strategy.
type ByteStrategy struct{}

func (ByteStrategy) Extract(dst io.Writer, src io.Reader, start uint64) error {
	s, ok := src.(io.Seeker)
	if !ok {
		return errors.New("source is not seekable")
	}
	if start > math.MaxInt64 {
		return fmt.Errorf("start index %d exceeds the seekable range", start)
	}
	if _, err := s.Seek(int64(start), io.SeekStart); err != nil {
		return fmt.Errorf("seeking to byte %d: %w", start, err)
	}
	_, err := io.Copy(dst, src)
	return err
}

// Count reads r to the end and returns its line and byte totals in a
// single pass. A final line without a terminator still counts as a line.
func Count(r io.Reader) (lines, size uint64, err error) {
	buf := make([]byte, 32*1024)
	var last byte
	for {
		n, rerr := r.Read(buf)
		if n > 0 {
			size += uint64(n)
			lines += uint64(bytes.Count(buf[:n], eol))
			last = buf[n-1]
		}
		if rerr == io.EOF {
			if size > 0 && last != '\n' {
				lines++
			}
			return lines, size, nil
		}
		if rerr != nil {
			return 0, 0, rerr
		}
	}
}
