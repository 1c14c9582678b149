// Package resource abstracts the byte-addressable inputs a trailing window
// is extracted from: local files, standard input, S3 objects and Azure
// blobs. Counting and extraction each open the resource independently, so
// backends must return a fresh reader positioned at the first byte from
// every Open call.
package resource

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Resource is a byte-addressable input.
type Resource interface {
	// Name identifies the resource in headers and error messages.
	Name() string
	// Open returns an independent reader over the whole resource. The
	// returned reader implements io.Seeker for backends that support the
	// byte-seek strategy.
	Open(ctx context.Context) (io.ReadCloser, error)
}

// Sizer is implemented by resources that can report their byte size
// without a full read.
type Sizer interface {
	Size(ctx context.Context) (uint64, error)
}

// Opener maps command-line arguments to resources. Remote clients are
// optional; resolving an argument whose backend has no client configured
// is an error.
type Opener struct {
	// Stdin serves the "-" argument. os.Stdin when nil.
	Stdin io.Reader
	S3    S3API
	Azure AzureAPI

	stdin *Stdin
}

// Resolve returns the resource an argument names: "-" for standard input,
// s3://bucket/key, az://container/blob, anything else a file path. All "-"
// arguments share one buffered stdin resource.
func (o *Opener) Resolve(arg string) (Resource, error) {
	switch {
	case arg == "-":
		if o.stdin == nil {
			o.stdin = NewStdin(o.Stdin)
		}
		return o.stdin, nil
	case strings.HasPrefix(arg, "s3://"):
		if o.S3 == nil {
			return nil, fmt.Errorf("%s: no S3 client configured", arg)
		}
		bucket, key, err := splitObjectURL(arg, "s3://")
		if err != nil {
			return nil, err
		}
		return &S3Object{Client: o.S3, Bucket: bucket, Key: key}, nil
	case strings.HasPrefix(arg, "az://"):
		if o.Azure == nil {
			return nil, fmt.Errorf("%s: no Azure client configured", arg)
		}
		container, blob, err := splitObjectURL(arg, "az://")
		if err != nil {
			return nil, err
		}
		return &AzureBlob{Client: o.Azure, Container: container, Blob: blob}, nil
	default:
		return NewFile(arg), nil
	}
}

func splitObjectURL(raw, scheme string) (string, string, error) {
	first, rest, ok := strings.Cut(strings.TrimPrefix(raw, scheme), "/")
	if !ok || first == "" || rest == "" {
		return "", "", fmt.Errorf("malformed object URL %q", raw)
	}
	return first, rest, nil
}
