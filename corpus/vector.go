package corpus

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/ryu"
)

const maxVectorLineBytes = 1024 * 1024

// Vector is one recorded conversion: the input bit pattern and its expected
// rendering in both notations.
type Vector struct {
	Bits       uint64
	Scientific string
	Fixed      string
}

// ReadVectors parses a vector CSV from r. Each line is
// <16 hex digits>,<scientific>,<fixed>; blank lines and lines starting with
// '#' are skipped. Errors carry the 1-based line number.
func ReadVectors(r io.Reader) ([]Vector, error) {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxVectorLineBytes)

	var out []Vector
	lineNo := 0
	for s.Scan() {
		lineNo++
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		v, err := parseVectorLine(line)
		if err != nil {
			return nil, Wrap(InvalidVector, lineNo, fmt.Sprintf("malformed vector %q", line), err)
		}
		out = append(out, v)
	}
	if err := s.Err(); err != nil {
		return nil, Wrap(InternalIO, -1, "scan vectors", err)
	}
	if len(out) == 0 {
		return nil, New(InvalidVector, -1, "corpus holds no vectors")
	}
	return out, nil
}

func parseVectorLine(line string) (Vector, error) {
	parts := strings.SplitN(line, ",", 3)
	if len(parts) != 3 {
		return Vector{}, fmt.Errorf("want 3 comma-separated fields, have %d", len(parts))
	}
	if len(parts[0]) != 16 {
		return Vector{}, fmt.Errorf("bits field must be 16 hex digits, have %d", len(parts[0]))
	}
	bits, err := strconv.ParseUint(parts[0], 16, 64)
	if err != nil {
		return Vector{}, fmt.Errorf("bits field: %w", err)
	}
	if parts[1] == "" || parts[2] == "" {
		return Vector{}, fmt.Errorf("empty rendering field")
	}
	return Vector{Bits: bits, Scientific: parts[1], Fixed: parts[2]}, nil
}

// WriteVectors writes the CSV form of vectors to w, one line per vector.
func WriteVectors(w io.Writer, vectors []Vector) error {
	bw := bufio.NewWriter(w)
	for _, v := range vectors {
		if _, err := fmt.Fprintf(bw, "%016x,%s,%s\n", v.Bits, v.Scientific, v.Fixed); err != nil {
			return Wrap(InternalIO, -1, "write vector", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return Wrap(InternalIO, -1, "flush vectors", err)
	}
	return nil
}

// notablePatterns open every generated corpus: zeros, specials, subnormal
// and normal boundaries, and historically troublesome values.
var notablePatterns = []uint64{
	0x0000000000000000, // +0
	0x8000000000000000, // -0
	0x0000000000000001, // smallest subnormal
	0x000fffffffffffff, // largest subnormal
	0x0010000000000000, // smallest normal
	0x7fefffffffffffff, // largest finite
	0x3ff0000000000000, // 1.0
	0xbff0000000000000, // -1.0
	0x3ff0000000000001, // 1.0 + ulp
	0x4340000000000000, // 2^53
	0x43e0000000000000, // 2^63
	0x444b1ae4d6e2ef50, // 1e21
	0x3eb0c6f7a0b5ed8d, // 1e-6
	0xc05c390a0e96f19f, // -112.89123883
	0x7ff0000000000000, // +Inf
	0xfff0000000000000, // -Inf
	0x7ff8000000000000, // NaN
}

// Generate renders a deterministic corpus of count vectors: the notable
// patterns first, then a golden-ratio bit sweep.
func Generate(count int) []Vector {
	out := make([]Vector, 0, count)
	for _, bits := range notablePatterns {
		if len(out) == count {
			return out
		}
		out = append(out, record(bits))
	}
	for i := uint64(1); len(out) < count; i++ {
		out = append(out, record(i*0x9e3779b97f4a7c15))
	}
	return out
}

func record(bits uint64) Vector {
	f := math.Float64frombits(bits)
	return Vector{
		Bits:       bits,
		Scientific: ryu.Format(f, ryu.ExpUpper),
		Fixed:      ryu.Format(f, ryu.Fixed),
	}
}
