package ryu

import (
	"bytes"
	"math"
	"testing"
)

// cstring reads the destination the way a C caller would, up to the first
// NUL.
func cstring(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return string(b[:i])
	}
	return string(b)
}

func TestWriteTruncation(t *testing.T) {
	const full = "-112.89123883"
	v := -112.89123883

	if n := Write(nil, v, Fixed); n != len(full) {
		t.Fatalf("nil destination: got %d want %d", n, len(full))
	}

	for c := 1; c <= len(full)+3; c++ {
		dst := make([]byte, c)
		n := Write(dst, v, Fixed)
		if n != len(full) {
			t.Fatalf("cap %d: count got %d want %d", c, n, len(full))
		}
		want := full
		if c-1 < len(full) {
			want = full[:c-1]
		}
		if got := cstring(dst); got != want {
			t.Fatalf("cap %d: got %q want %q", c, got, want)
		}
	}
}

func TestWriteTerminator(t *testing.T) {
	dst := make([]byte, 20)
	for i := range dst {
		dst[i] = 'x'
	}
	n := Write(dst, 1.5, Fixed)
	if n != 3 {
		t.Fatalf("count: got %d want 3", n)
	}
	if string(dst[:3]) != "1.5" || dst[3] != 0 {
		t.Fatalf("destination: got %q terminator=%d", dst[:3], dst[3])
	}
	if dst[4] != 'x' {
		t.Fatal("bytes past the terminator must stay untouched")
	}
}

func TestWriteSizing(t *testing.T) {
	cases := []struct {
		v     float64
		style Style
		want  int
	}{
		{-5e-324, Fixed, 327},
		{5e-324, Fixed, 326},
		{math.MaxFloat64, Fixed, 309},
		{-math.MaxFloat64, Fixed, 310},
		{math.MaxFloat64, ExpUpper, 22},
		{0, Fixed, 1},
		{math.Inf(-1), Fixed, 9},
	}
	for _, c := range cases {
		if got := Write(nil, c.v, c.style); got != c.want {
			t.Fatalf("Write(nil, %v, %d): got %d want %d", c.v, c.style, got, c.want)
		}
	}
}

func TestAppend(t *testing.T) {
	if got := Append([]byte("x="), 0.25, Fixed); string(got) != "x=0.25" {
		t.Fatalf("append with prefix: got %q", got)
	}
	v := -112.89123883
	if s := string(Append(nil, v, ExpUpper)); s != Format(v, ExpUpper) {
		t.Fatalf("append/format mismatch: %q", s)
	}
	// The appended form carries no terminator.
	if b := Append(nil, 1.5, Fixed); len(b) != 3 {
		t.Fatalf("appended length: got %d want 3", len(b))
	}
}
