//go:build !ryu_optimize_size

package ryu

import (
	"math/big"
	"testing"
)

// Full-table entries are 125-bit fixed-point slices: pow5Split[i] holds
// floor(5^i * 2^125 / 2^pow5Bits(i)) and pow5InvSplit[q] holds
// floor(2^(pow5Bits(q)-1+125) / 5^q) + 1, each split into 64-bit halves,
// low word first.

func TestPow5SplitGroundTruth(t *testing.T) {
	mask64 := new(big.Int).SetUint64(^uint64(0))
	for i := range pow5Split {
		v := new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(i)), nil)
		v.Lsh(v, 125)
		v.Rsh(v, uint(pow5Bits(int32(i))))
		wantLo := new(big.Int).And(v, mask64).Uint64()
		wantHi := new(big.Int).Rsh(v, 64).Uint64()
		if pow5Split[i][0] != wantLo || pow5Split[i][1] != wantHi {
			t.Fatalf("pow5Split[%d]: got {%d, %d} want {%d, %d}",
				i, pow5Split[i][0], pow5Split[i][1], wantLo, wantHi)
		}
	}
}

func TestPow5InvSplitGroundTruth(t *testing.T) {
	mask64 := new(big.Int).SetUint64(^uint64(0))
	for q := range pow5InvSplit {
		den := new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(q)), nil)
		v := new(big.Int).Lsh(big.NewInt(1), uint(pow5Bits(int32(q))-1+125))
		v.Div(v, den)
		v.Add(v, big.NewInt(1))
		wantLo := new(big.Int).And(v, mask64).Uint64()
		wantHi := new(big.Int).Rsh(v, 64).Uint64()
		if pow5InvSplit[q][0] != wantLo || pow5InvSplit[q][1] != wantHi {
			t.Fatalf("pow5InvSplit[%d]: got {%d, %d} want {%d, %d}",
				q, pow5InvSplit[q][0], pow5InvSplit[q][1], wantLo, wantHi)
		}
	}
}

// The compressed tables plus their correction offsets must reproduce the
// full tables exactly at every index, or the two build modes would disagree
// on output.
func TestCompactComputeMatchesFullTables(t *testing.T) {
	for i := range pow5Split {
		if got := computePow5(uint32(i)); got != pow5Split[i] {
			t.Fatalf("computePow5(%d): got {%d, %d} want {%d, %d}",
				i, got[0], got[1], pow5Split[i][0], pow5Split[i][1])
		}
	}
	for q := range pow5InvSplit {
		if got := computeInvPow5(uint32(q)); got != pow5InvSplit[q] {
			t.Fatalf("computeInvPow5(%d): got {%d, %d} want {%d, %d}",
				q, got[0], got[1], pow5InvSplit[q][0], pow5InvSplit[q][1])
		}
	}
}
