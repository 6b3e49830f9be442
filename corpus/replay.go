package corpus

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"

	"github.com/tidwall/ryu"
)

// digestAccumulator hashes rows of unit-separator-joined fields, one row
// per Add call.
type digestAccumulator struct {
	buf bytes.Buffer
}

func (d *digestAccumulator) Add(parts ...string) {
	for i, part := range parts {
		if i > 0 {
			d.buf.WriteByte('\x1f')
		}
		d.buf.WriteString(part)
	}
	d.buf.WriteByte('\n')
}

func (d *digestAccumulator) Hex() string {
	sum := sha256.Sum256(d.buf.Bytes())
	return hex.EncodeToString(sum[:])
}

// Mismatch is one vector whose recorded rendering no longer matches the
// converter.
type Mismatch struct {
	Index int
	Bits  uint64
	Style string
	Got   string
	Want  string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("vector %d bits=%016x %s: got %q want %q", m.Index, m.Bits, m.Style, m.Got, m.Want)
}

// Report summarizes a corpus replay.
type Report struct {
	CaseCount  int
	Mismatches []Mismatch
	Digest     string
}

// Replay renders every vector with the current converter, records any drift
// from the recorded text, and folds the produced rows into the result
// digest. The digest covers what the converter produced, so drift moves the
// digest even when a caller ignores Mismatches.
func Replay(vectors []Vector) Report {
	acc := &digestAccumulator{}
	rep := Report{}
	for i, vec := range vectors {
		f := math.Float64frombits(vec.Bits)
		sci := ryu.Format(f, ryu.ExpUpper)
		fixed := ryu.Format(f, ryu.Fixed)
		if sci != vec.Scientific {
			rep.Mismatches = append(rep.Mismatches, Mismatch{
				Index: i, Bits: vec.Bits, Style: "scientific", Got: sci, Want: vec.Scientific,
			})
		}
		if fixed != vec.Fixed {
			rep.Mismatches = append(rep.Mismatches, Mismatch{
				Index: i, Bits: vec.Bits, Style: "fixed", Got: fixed, Want: vec.Fixed,
			})
		}
		acc.Add(fmt.Sprintf("%016x", vec.Bits), sci, fixed)
		rep.CaseCount++
	}
	rep.Digest = acc.Hex()
	return rep
}
