package ryu_test

import (
	"bytes"
	"encoding/binary"
	"math"
	"strconv"
	"testing"

	"github.com/tidwall/ryu"
)

// FuzzFormatRoundTrip: uint64 bits → format in every style → parse →
// verify bit identity.
func FuzzFormatRoundTrip(f *testing.F) {
	seeds := []uint64{
		0x0000000000000000, // +0
		0x8000000000000000, // -0
		0x0000000000000001, // smallest subnormal
		0x7fefffffffffffff, // largest finite
		0x3ff0000000000000, // 1.0
		0x444b1ae4d6e2ef50, // 1e21
		0x3eb0c6f7a0b5ed8d, // 1e-6
		0x7ff0000000000000, // +Inf
		0x7ff8000000000001, // NaN
	}
	for _, s := range seeds {
		b := make([]byte, 8)
		binary.BigEndian.PutUint64(b, s)
		f.Add(b)
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		if len(data) < 8 {
			return
		}
		bits := binary.BigEndian.Uint64(data[:8])
		v := math.Float64frombits(bits)

		sci := ryu.Format(v, ryu.ExpUpper)
		fixed := ryu.Format(v, ryu.Fixed)

		if math.IsNaN(v) {
			// Every NaN pattern collapses to the same unsigned token.
			if sci != "NaN" || fixed != "NaN" {
				t.Fatalf("NaN bits=%016x: sci=%q fixed=%q", bits, sci, fixed)
			}
			return
		}

		for _, text := range []string{sci, fixed, ryu.Format(v, ryu.ExpLower)} {
			parsed, err := strconv.ParseFloat(text, 64)
			if err != nil {
				t.Fatalf("ParseFloat(%q) bits=%016x: %v", text, bits, err)
			}
			if math.Float64bits(parsed) != math.Float64bits(v) {
				t.Fatalf("round-trip bits=%016x → %q → bits=%016x",
					bits, text, math.Float64bits(parsed))
			}
		}

		if n := ryu.Write(nil, v, ryu.Fixed); n != len(fixed) {
			t.Fatalf("sizing bits=%016x: Write=%d len=%d", bits, n, len(fixed))
		}
	})
}

// FuzzWriteTruncation: any capacity must return the untruncated count and
// leave a terminated prefix of the full rendering behind.
func FuzzWriteTruncation(f *testing.F) {
	f.Add(uint64(0xc05c390a0e96f19f), uint16(5))
	f.Add(uint64(0x3ff0000000000001), uint16(0))
	f.Add(uint64(0x0000000000000001), uint16(330))

	f.Fuzz(func(t *testing.T, bits uint64, capacity uint16) {
		v := math.Float64frombits(bits)
		full := ryu.Format(v, ryu.Fixed)
		c := int(capacity) % 512
		dst := make([]byte, c)
		if n := ryu.Write(dst, v, ryu.Fixed); n != len(full) {
			t.Fatalf("bits=%016x cap=%d: count %d want %d", bits, c, n, len(full))
		}
		if c == 0 {
			return
		}
		want := full
		if c-1 < len(full) {
			want = full[:c-1]
		}
		i := bytes.IndexByte(dst, 0)
		if i < 0 {
			t.Fatalf("bits=%016x cap=%d: unterminated destination", bits, c)
		}
		if got := string(dst[:i]); got != want {
			t.Fatalf("bits=%016x cap=%d: got %q want %q", bits, c, got, want)
		}
	})
}
