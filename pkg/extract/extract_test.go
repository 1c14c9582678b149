package extract

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

const tenLines = "one\ntwo\nthree\nfour\nfive\nsix\nseven\neight\nnine\nten\n"

func TestLineStrategy(t *testing.T) {
	tests := []struct {
		name  string
		input string
		start uint64
		want  string
	}{
		{
			name:  "start at zero emits everything",
			input: tenLines,
			start: 0,
			want:  tenLines,
		},
		{
			name:  "skips whole lines including terminators",
			input: tenLines,
			start: 5,
			want:  "six\nseven\neight\nnine\nten\n",
		},
		{
			name:  "last line only",
			input: tenLines,
			start: 9,
			want:  "ten\n",
		},
		{
			name:  "unterminated final line is emitted as-is",
			input: "a\nb\nno newline",
			start: 2,
			want:  "no newline",
		},
		{
			name:  "skipping everything emits nothing",
			input: "a\nb\n",
			start: 2,
			want:  "",
		},
		{
			name:  "skip past the end is not an error",
			input: "a\nb\n",
			start: 5,
			want:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := (LineStrategy{}).Extract(&out, strings.NewReader(tt.input), tt.start)
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			if out.String() != tt.want {
				t.Errorf("Extract() = %q, want %q", out.String(), tt.want)
			}
		})
	}
}

func TestLineStrategyLongLines(t *testing.T) {
	// Lines longer than the bufio buffer must still count as one line.
	long := strings.Repeat("x", 64*1024)
	input := long + "\n" + "tail\n"
	var out bytes.Buffer
	if err := (LineStrategy{}).Extract(&out, strings.NewReader(input), 1); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if out.String() != "tail\n" {
		t.Errorf("Extract() = %q, want %q", out.String(), "tail\n")
	}
}

func TestLineStrategyInvalidUTF8(t *testing.T) {
	input := append([]byte("ok\n"), 0xff, 0xfe, '\n')
	var out bytes.Buffer
	err := (LineStrategy{}).Extract(&out, bytes.NewReader(input), 1)
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("Extract() error = %v, want *DecodeError", err)
	}
}

func TestByteStrategy(t *testing.T) {
	tests := []struct {
		name  string
		input string
		start uint64
		want  string
	}{
		{
			name:  "start at zero emits everything",
			input: "hello world",
			start: 0,
			want:  "hello world",
		},
		{
			name:  "seeks past the skipped prefix",
			input: "hello world",
			start: 6,
			want:  "world",
		},
		{
			name:  "start at the last byte",
			input: "hello",
			start: 4,
			want:  "o",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := (ByteStrategy{}).Extract(&out, strings.NewReader(tt.input), tt.start)
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			if out.String() != tt.want {
				t.Errorf("Extract() = %q, want %q", out.String(), tt.want)
			}
		})
	}
}

func TestByteStrategyBinary(t *testing.T) {
	// Byte windows pass through invalid text unmodified.
	input := []byte{0x00, 0xff, 0xfe, 0x01, 0x02}
	var out bytes.Buffer
	if err := (ByteStrategy{}).Extract(&out, bytes.NewReader(input), 2); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if !bytes.Equal(out.Bytes(), input[2:]) {
		t.Errorf("Extract() = %v, want %v", out.Bytes(), input[2:])
	}
}

func TestByteStrategyNotSeekable(t *testing.T) {
	var out bytes.Buffer
	err := (ByteStrategy{}).Extract(&out, noSeekReader{}, 0)
	if err == nil {
		t.Fatal("Extract() succeeded on a non-seekable source")
	}
}

// noSeekReader deliberately lacks Seek.
type noSeekReader struct{}

func (noSeekReader) Read(p []byte) (int, error) { return 0, io.EOF }

func TestCount(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantLines uint64
		wantSize  uint64
	}{
		{"empty", "", 0, 0},
		{"single line with terminator", "hello\n", 1, 6},
		{"single line without terminator", "hello", 1, 5},
		{"ten lines", tenLines, 10, uint64(len(tenLines))},
		{"trailing partial line", "a\nb", 2, 3},
		{"blank lines count", "\n\n\n", 3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, size, err := Count(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("Count() error = %v", err)
			}
			if lines != tt.wantLines || size != tt.wantSize {
				t.Errorf("Count() = (%d, %d), want (%d, %d)", lines, size, tt.wantLines, tt.wantSize)
			}
		})
	}
}

func TestForUnit(t *testing.T) {
	if _, ok := ForUnit(Lines).(LineStrategy); !ok {
		t.Error("ForUnit(Lines) is not LineStrategy")
	}
	if _, ok := ForUnit(Bytes).(ByteStrategy); !ok {
		t.Error("ForUnit(Bytes) is not ByteStrategy")
	}
}
