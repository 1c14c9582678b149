// Package tailr implements the offset-resolution and windowed-extraction
// engine behind a tail-style tool.
//
// An offset specification is parsed once:
//
//	off, err := tailr.ParseOffset("+5")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// and each resource is then tailed independently:
//
//	t := tailr.Tailer{Request: tailr.Request{Lines: off}}
//	err = t.Tail(ctx, resource.NewFile("app.log"), os.Stdout)
//
// Window resolution is a pure function of the parsed offset and the
// resource's total unit count, and extraction holds no state between
// calls, so independent resources may be processed concurrently.
package tailr

import (
	"context"
	"io"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/oddbit-io/tailr/pkg/extract"
	"github.com/oddbit-io/tailr/pkg/offset"
	"github.com/oddbit-io/tailr/pkg/resource"
	"github.com/oddbit-io/tailr/pkg/window"
)

// Re-export commonly used types for convenience. Callers can import just
// "github.com/oddbit-io/tailr" without subpackages.
type (
	// Offset is a parsed offset specification.
	Offset = offset.Value
	// InvalidOffsetError reports a malformed offset specification.
	InvalidOffsetError = offset.InvalidError
	// DecodeError reports line content that is not valid text.
	DecodeError = extract.DecodeError
	// Unit is the addressable unit a window is expressed in.
	Unit = extract.Unit
	// Resource is a byte-addressable input.
	Resource = resource.Resource
)

const (
	Lines = extract.Lines
	Bytes = extract.Bytes
)

// ParseOffset converts a textual offset specification into an Offset.
func ParseOffset(spec string) (Offset, error) { return offset.Parse(spec) }

// Request describes what to emit from each resource. Byte mode applies
// when Bytes is set; otherwise Lines applies.
type Request struct {
	Lines Offset
	Bytes *Offset
}

// DefaultRequest emits the last ten lines, the tool default.
func DefaultRequest() Request { return Request{Lines: offset.Signed(-10)} }

func (r Request) unit() extract.Unit {
	if r.Bytes != nil {
		return extract.Bytes
	}
	return extract.Lines
}

func (r Request) offset() offset.Value {
	if r.Bytes != nil {
		return *r.Bytes
	}
	return r.Lines
}

// Tailer extracts trailing windows per a fixed Request. It holds no state
// between calls; one Tailer may serve many resources, concurrently.
type Tailer struct {
	Request Request
}

// Tail computes the resource's total unit count, resolves the window start
// against it and streams the window to w. Nothing is written when the
// resolved window is empty.
func (t Tailer) Tail(ctx context.Context, res resource.Resource, w io.Writer) error {
	total, err := Total(ctx, res, t.Request.unit())
	if err != nil {
		return err
	}
	return t.TailTotal(ctx, res, total, w)
}

// TailTotal is Tail with a precomputed total unit count, sparing the
// counting pass. The total must be in the Request's unit.
func (t Tailer) TailTotal(ctx context.Context, res resource.Resource, total uint64, w io.Writer) error {
	start, ok := window.Resolve(t.Request.offset(), total)
	if !ok {
		return nil
	}
	rc, err := res.Open(ctx)
	if err != nil {
		return err
	}
	defer rc.Close()
	return extract.ForUnit(t.Request.unit()).Extract(w, rc, start)
}

// Total computes a resource's unit count. Byte totals use the resource's
// size probe when it has one; line totals always take one counting pass.
func Total(ctx context.Context, res resource.Resource, unit extract.Unit) (uint64, error) {
	if unit == extract.Bytes {
		if s, ok := res.(resource.Sizer); ok {
			return s.Size(ctx)
		}
	}
	rc, err := res.Open(ctx)
	if err != nil {
		return 0, err
	}
	defer rc.Close()
	lines, size, err := extract.Count(rc)
	if err != nil {
		return 0, err
	}
	if unit == extract.Bytes {
		return size, nil
	}
	return lines, nil
}

// Count is one resource's precomputed total, or the error that prevented
// computing it.
type Count struct {
	Total uint64
	Err   error
}

// Precount computes totals for independent resources in parallel. Each
// slot carries its own result; one resource's failure never affects its
// siblings.
func Precount(ctx context.Context, resources []resource.Resource, unit Unit) []Count {
	counts := make([]Count, len(resources))
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, res := range resources {
		i, res := i, res
		g.Go(func() error {
			counts[i].Total, counts[i].Err = Total(ctx, res, unit)
			return nil
		})
	}
	g.Wait()
	return counts
}
